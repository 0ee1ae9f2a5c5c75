// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package api serves the current configuration record over HTTP while
// tailcfg runs in watch mode.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ManuGH/tailcfg/internal/api/middleware"
	"github.com/ManuGH/tailcfg/internal/config"
	"github.com/ManuGH/tailcfg/internal/theme"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// HeaderFingerprint carries the fingerprint of the served record.
const HeaderFingerprint = "X-Config-Fingerprint"

// ConfigSource provides the current record and its fingerprint as one
// consistent pair.
type ConfigSource interface {
	Snapshot() (config.Config, string)
}

// Config configures the server.
type Config struct {
	ListenAddr string
	Source     ConfigSource
	Logger     zerolog.Logger
}

// Server is the watch-mode HTTP server.
type Server struct {
	addr       string
	source     ConfigSource
	logger     zerolog.Logger
	httpServer *http.Server
}

// New validates cfg and builds the server.
func New(cfg Config) (*Server, error) {
	if cfg.ListenAddr == "" {
		return nil, fmt.Errorf("listen address is required")
	}
	if cfg.Source == nil {
		return nil, fmt.Errorf("config source is required")
	}

	s := &Server{
		addr:   cfg.ListenAddr,
		source: cfg.Source,
		logger: cfg.Logger,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ReadRateLimit())
		r.Get("/config", s.handleConfig)
		r.Get("/theme", s.handleTheme)
	})
	return r
}

// Start serves until Shutdown. It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.addr).Msg("starting config server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("config server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down config server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	cfg, fp := s.source.Snapshot()
	data, err := config.Marshal(cfg, config.FormatJSON)
	if err != nil {
		s.logger.Error().Err(err).Msg("encode config")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "encode_failed"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(HeaderFingerprint, fp)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleTheme(w http.ResponseWriter, _ *http.Request) {
	cfg, fp := s.source.Snapshot()
	resolved := theme.Resolve(theme.Defaults(), cfg.Theme)
	w.Header().Set(HeaderFingerprint, fp)
	writeJSON(w, http.StatusOK, resolved)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
