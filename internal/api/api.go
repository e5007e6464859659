/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/friendsincode/bragi_curation/internal/auth"
	"github.com/friendsincode/bragi_curation/internal/catalog"
	"github.com/friendsincode/bragi_curation/internal/curation"
	"github.com/friendsincode/bragi_curation/internal/insights"
	"github.com/friendsincode/bragi_curation/internal/models"
	"github.com/friendsincode/bragi_curation/internal/telemetry"
)

// API exposes HTTP handlers.
type API struct {
	assembler    *curation.Assembler
	store        *catalog.Store
	clusters     []insights.ClusterSummary
	jwtSecret    []byte
	apiKeyHashes []string
	logger       zerolog.Logger
}

// New creates the API router wrapper. clusters may be nil when the
// catalog was too small to cluster at startup.
func New(assembler *curation.Assembler, store *catalog.Store, clusters []insights.ClusterSummary, jwtSecret []byte, apiKeyHashes []string, logger zerolog.Logger) *API {
	return &API{
		assembler:    assembler,
		store:        store,
		clusters:     clusters,
		jwtSecret:    jwtSecret,
		apiKeyHashes: apiKeyHashes,
		logger:       logger,
	}
}

// Routes mounts API routes on the provided router.
func (a *API) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", a.handleHealth)

		// Public endpoints (no auth required)
		r.Get("/stats", a.handleStats)

		r.Group(func(pr chi.Router) {
			pr.Use(a.authMiddleware())

			pr.Route("/playlists", func(r chi.Router) {
				r.Post("/mood", a.handleMoodPlaylist)
				r.Post("/genre", a.handleGenrePlaylist)
			})

			pr.Route("/songs", func(r chi.Router) {
				r.Get("/similar", a.handleSimilarSongs)
				r.Get("/analysis", a.handleSongAnalysis)
			})
		})
	})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) authMiddleware() func(http.Handler) http.Handler {
	return auth.Middleware(a.apiKeyHashes, a.jwtSecret)
}

// writeCurationError maps engine errors onto HTTP statuses. Bad enum
// input is the caller's fault; a missing seed track is a lookup miss;
// filters that strand the request with zero candidates are
// unprocessable rather than malformed.
func (a *API) writeCurationError(w http.ResponseWriter, operation string, err error) {
	var notFound *models.TrackNotFoundError

	switch {
	case errors.Is(err, models.ErrUnknownMood),
		errors.Is(err, models.ErrUnknownGenre),
		errors.Is(err, models.ErrUnknownDiversity):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInsufficientCandidates):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		a.logger.Error().Err(err).Str("operation", operation).Msg("curation request failed")
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
	telemetry.ObserveCuration(operation, "error", 0)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
