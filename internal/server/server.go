// Package server exposes the compiled band model over HTTP: selection
// queries, table introspection, health and metrics. The model is
// compiled before the listener starts and never mutated, so handlers
// share it without locking.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/calummace/rfband/internal/config"
	"github.com/calummace/rfband/internal/health"
	"github.com/calummace/rfband/internal/middleware"
	"github.com/calummace/rfband/internal/observability"
	"github.com/calummace/rfband/pkg/band"
)

type Server struct {
	model *band.Model
	log   zerolog.Logger
	cache *selectCache
}

func New(m *band.Model, log zerolog.Logger, cacheSize int) *Server {
	return &Server{
		model: m,
		log:   log,
		cache: newSelectCache(cacheSize),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recover(s.log))
	r.Use(middleware.Logging(s.log))
	r.Use(middleware.CORS())

	r.Get("/healthz", health.Liveness())
	r.Get("/readyz", health.Readiness(s.model))
	r.Method(http.MethodGet, "/metrics", observability.Handler())

	r.Get("/v1/select", s.handleSelect)
	r.Get("/v1/bands", s.handleBands)
	r.Get("/v1/bands/{id}", s.handleBand)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config, m *band.Model, log zerolog.Logger) error {
	s := New(m, log, cfg.SelectCacheSize)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("http listen")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
