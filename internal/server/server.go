/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/friendsincode/bragi_curation/internal/api"
	"github.com/friendsincode/bragi_curation/internal/catalog"
	"github.com/friendsincode/bragi_curation/internal/config"
	"github.com/friendsincode/bragi_curation/internal/curation"
	"github.com/friendsincode/bragi_curation/internal/insights"
	"github.com/friendsincode/bragi_curation/internal/telemetry"
)

// Server bundles HTTP and the curation services behind it.
type Server struct {
	cfg        *config.Config
	logger     zerolog.Logger
	router     chi.Router
	httpServer *http.Server

	store     *catalog.Store
	assembler *curation.Assembler
	api       *api.API
}

// New constructs the server and wires dependencies. The catalog is
// loaded once here and treated as immutable for the process lifetime.
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	tuning, err := curation.LoadTuning(cfg.TuningPath)
	if err != nil {
		return nil, err
	}

	storeCfg := catalog.DefaultConfig()
	storeCfg.FuzzyFloor = tuning.FuzzyFloor
	store, err := catalog.Load(cfg.CatalogPath, storeCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	telemetry.CatalogTracks.Set(float64(store.Len()))

	assembler := curation.NewAssembler(store, tuning, logger)

	clusters, err := insights.Cluster(store, insights.DefaultConfig(), logger)
	if err != nil {
		// Clustering is supplemental; a tiny catalog should not stop the server.
		logger.Warn().Err(err).Msg("catalog clustering skipped")
	}

	srv := &Server{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		assembler: assembler,
		api:       api.New(assembler, store, clusters, []byte(cfg.JWTSigningKey), cfg.APIKeys, logger),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(securityHeadersMiddleware)
	router.Use(telemetry.TracingMiddleware("bragi-curation-api"))
	router.Use(telemetry.MetricsMiddleware)
	router.Use(middleware.Timeout(30 * time.Second))
	srv.router = router

	srv.configureRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.HTTPBind, cfg.HTTPPort)
	srv.httpServer = &http.Server{
		Addr:              addr,
		Handler:           srv.router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return srv, nil
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("X-Frame-Options", "DENY")

		// Only advertise HSTS for requests served over HTTPS.
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) configureRoutes() {
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	s.router.Handle("/metrics", telemetry.Handler())

	s.api.Routes(s.router)
}

// HTTPServer exposes the underlying net/http server.
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// Store exposes the loaded catalog, mainly for CLI subcommands that
// reuse server wiring without serving HTTP.
func (s *Server) Store() *catalog.Store {
	return s.store
}

// Assembler exposes the curation engine.
func (s *Server) Assembler() *curation.Assembler {
	return s.assembler
}
