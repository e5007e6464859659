/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"net/http"
	"strconv"

	"github.com/friendsincode/bragi_curation/internal/models"
	"github.com/friendsincode/bragi_curation/internal/telemetry"
)

const defaultSimilarCount = 10

type similarSongsResponse struct {
	Seed    models.Track         `json:"seed"`
	Results []models.ScoredTrack `json:"results"`
}

func (a *API) handleSimilarSongs(w http.ResponseWriter, r *http.Request) {
	song := r.URL.Query().Get("song")
	artist := r.URL.Query().Get("artist")
	if song == "" {
		writeError(w, http.StatusBadRequest, "song_required")
		return
	}

	count := defaultSimilarCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "count_must_be_positive")
			return
		}
		count = parsed
	}

	q := models.Query{
		SeedName:   song,
		SeedArtist: artist,
		Count:      count,
	}

	seed, results, err := a.assembler.SimilarSongs(r.Context(), q)
	if err != nil {
		a.writeCurationError(w, "find_similar_songs", err)
		return
	}

	telemetry.ObserveCuration("find_similar_songs", "ok", len(results))
	writeJSON(w, http.StatusOK, similarSongsResponse{Seed: seed, Results: results})
}

func (a *API) handleSongAnalysis(w http.ResponseWriter, r *http.Request) {
	song := r.URL.Query().Get("song")
	artist := r.URL.Query().Get("artist")
	if song == "" {
		writeError(w, http.StatusBadRequest, "song_required")
		return
	}

	analysis, err := a.assembler.AnalyzeSong(r.Context(), song, artist)
	if err != nil {
		a.writeCurationError(w, "analyze_song", err)
		return
	}

	telemetry.ObserveCuration("analyze_song", "ok", 1)
	writeJSON(w, http.StatusOK, analysis)
}
