// Package server provides the HTTP surface of bomtally: upload two tables,
// get the reconciliation back as JSON and download the CSV exports.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/bomtally/internal/server/cache"
	"github.com/agentstation/bomtally/internal/server/handlers"
	"github.com/agentstation/bomtally/pkg/constants"
)

// Application is what the server needs from the host application.
type Application = handlers.Application

// Server holds the HTTP server state and dependencies.
type Server struct {
	app       Application
	cache     *cache.Cache
	logger    *zerolog.Logger
	config    Config
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// New creates a new server instance with the given configuration.
func New(app Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = constants.ResultTTL
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = constants.MaxUploadMB
	}
	if err := app.Rules().Validate(); err != nil {
		return nil, err
	}

	// Background work (rate limiter cleanup) stops with this context
	ctx, cancel := context.WithCancel(context.Background())

	logger.Debug().
		Dur("result_ttl", cfg.ResultTTL).
		Int64("max_upload_mb", cfg.MaxUploadMB).
		Msg("Server instance created")

	return &Server{
		app:       app,
		cache:     cache.New(cfg.ResultTTL, constants.CacheCleanupInterval),
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}, nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops background work and drops stored runs.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info().Int("runs", s.cache.ItemCount()).Msg("Shutting down server background services")
	s.cancel()
	s.cache.Clear()
	return nil
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
