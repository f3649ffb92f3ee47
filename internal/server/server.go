/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package server exposes the daemon's operational HTTP surface: health,
// metrics, and a manual invocation trigger.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/config"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/launcher"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/models"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/telemetry"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/version"
)

// Server bundles the router and the scheduler it fronts.
type Server struct {
	cfg        *config.Config
	logger     zerolog.Logger
	router     chi.Router
	httpServer *http.Server
	scheduler  *launcher.Service
}

// New constructs the server and wires routes.
func New(cfg *config.Config, scheduler *launcher.Service, logger zerolog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(telemetry.MetricsMiddleware)
	router.Use(middleware.Timeout(60 * time.Second))

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		router:    router,
		scheduler: scheduler,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.HTTPBind, cfg.HTTPPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	s.configureRoutes()
	return s
}

// HTTPServer exposes the underlying net/http server.
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

func (s *Server) configureRoutes() {
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"status":"ok","version":%q}`, version.Version)
	})

	s.router.Handle("/metrics", telemetry.Handler())

	// Manual trigger for operators; the loop in the daemon remains the
	// normal driver.
	s.router.Post("/invoke", s.handleInvoke)
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	inv := models.Invocation{ID: uuid.NewString(), Time: time.Now().UTC()}

	summary, err := s.scheduler.RunOnce(r.Context(), inv)
	if err != nil {
		s.logger.Error().Err(err).Str("invocation_id", inv.ID).Msg("manual invocation failed")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"invocation_id": inv.ID,
			"error":         err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(summary)
}
