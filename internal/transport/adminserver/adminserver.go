// Package adminserver exposes the engine's operations over a JSON HTTP API
// for administrative use: record reads/writes, pagination, uniques, and
// view lifecycle management, grounded on the teacher's apiserver package.
package adminserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/soltiHQ/gridstore/engine"
)

// AdminServer is the admin JSON HTTP surface over one *engine.Engine.
type AdminServer struct {
	http *http.Server

	engine  *engine.Engine
	schemas map[string]engine.EntityConfig
	cfg     Config
	logger  zerolog.Logger
}

// NewAdminServer wires an AdminServer around eng. schemas maps entity name
// to its configuration, used to decide field kinds (datetime vs plain)
// when decoding JSON request bodies and query parameters.
func NewAdminServer(cfg Config, logger zerolog.Logger, eng *engine.Engine, schemas map[string]engine.EntityConfig) *AdminServer {
	logger = logger.Level(cfg.logLevel)

	s := &AdminServer{
		engine:  eng,
		schemas: schemas,
		cfg:     cfg,
		logger:  logger.With().Str("server", "admin").Logger(),
	}

	if cfg.addrHTTP != "" {
		s.http = &http.Server{
			Addr:              cfg.addrHTTP,
			Handler:           s.newRouter(),
			ReadHeaderTimeout: cfg.readHeaderTimeout,
			ReadTimeout:       cfg.readTimeout,
			WriteTimeout:      cfg.writeTimeout,
			IdleTimeout:       cfg.idleTimeout,
		}
	}
	return s
}

// Run starts the configured HTTP endpoint and blocks until ctx is canceled
// or the server returns a fatal error.
func (s *AdminServer) Run(ctx context.Context) error {
	if s.http == nil {
		s.logger.Warn().Msg("admin server: no endpoint configured; nothing to start")
		return nil
	}

	s.logger.Info().Msg("admin server: starting")
	errCh := make(chan error, 1)

	go s.runHTTP(errCh)
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("admin server: context cancelled, starting graceful shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.shutdown(shutdownCtx)
		return nil

	case err := <-errCh:
		if err != nil {
			s.logger.Error().Err(err).Msg("admin server: transport terminated with error")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			s.shutdown(shutdownCtx)
			return err
		}
		s.logger.Info().Msg("admin server: HTTP server stopped cleanly")
		return nil
	}
}

func (s *AdminServer) runHTTP(errCh chan<- error) {
	s.logger.Info().Str("addr", s.http.Addr).Msg("starting admin HTTP endpoint")

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errCh <- fmt.Errorf("admin http listener error: %w", err)
		return
	}
	errCh <- nil
}

func (s *AdminServer) shutdown(ctx context.Context) {
	if s.http == nil {
		return
	}
	s.logger.Info().Msg("admin server: HTTP graceful shutdown started")
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("admin server: HTTP graceful shutdown failed; forcing close")
		_ = s.http.Close()
	} else {
		s.logger.Info().Msg("admin server: HTTP graceful shutdown completed")
	}
}
