/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/friendsincode/bragi_curation/internal/curation"
	"github.com/friendsincode/bragi_curation/internal/models"
	"github.com/friendsincode/bragi_curation/internal/telemetry"
)

type moodPlaylistRequest struct {
	Mood            string `json:"mood"`
	Size            int    `json:"size"`
	Genre           string `json:"genre"`
	MinPopularity   int    `json:"min_popularity"`
	DurationMinutes int    `json:"duration_minutes"`
}

type genrePlaylistRequest struct {
	Genres    []string `json:"genres"`
	Size      int      `json:"size"`
	Diversity string   `json:"diversity"`
}

func (a *API) handleMoodPlaylist(w http.ResponseWriter, r *http.Request) {
	var req moodPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if req.Size <= 0 {
		writeError(w, http.StatusBadRequest, "size_must_be_positive")
		return
	}
	if req.MinPopularity < 0 || req.MinPopularity > 100 {
		writeError(w, http.StatusBadRequest, "min_popularity_out_of_range")
		return
	}

	mood, err := models.ParseMood(req.Mood)
	if err != nil {
		a.writeCurationError(w, "create_mood_playlist", err)
		return
	}

	q := models.Query{
		Mood:             mood,
		Genre:            req.Genre,
		Size:             req.Size,
		MinPopularity:    req.MinPopularity,
		TargetMinutes:    req.DurationMinutes,
		ToleranceMinutes: curation.DefaultDurationToleranceMinutes,
	}

	playlist, err := a.assembler.MoodPlaylist(r.Context(), q)
	if err != nil {
		a.writeCurationError(w, "create_mood_playlist", err)
		return
	}

	telemetry.ObserveCuration("create_mood_playlist", "ok", len(playlist.Tracks))
	writeJSON(w, http.StatusOK, playlist)
}

func (a *API) handleGenrePlaylist(w http.ResponseWriter, r *http.Request) {
	var req genrePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if len(req.Genres) == 0 {
		writeError(w, http.StatusBadRequest, "genres_required")
		return
	}
	if req.Size <= 0 {
		writeError(w, http.StatusBadRequest, "size_must_be_positive")
		return
	}

	diversity, err := models.ParseDiversityLevel(req.Diversity)
	if err != nil {
		a.writeCurationError(w, "create_genre_playlist", err)
		return
	}

	q := models.Query{
		Genres:    req.Genres,
		Size:      req.Size,
		Diversity: diversity,
	}

	playlist, err := a.assembler.GenrePlaylist(r.Context(), q)
	if err != nil {
		a.writeCurationError(w, "create_genre_playlist", err)
		return
	}

	telemetry.ObserveCuration("create_genre_playlist", "ok", len(playlist.Tracks))
	writeJSON(w, http.StatusOK, playlist)
}
