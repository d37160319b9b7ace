// Package handlers provides HTTP request handlers for the bomtally API.
package handlers

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/bomtally/internal/report"
	"github.com/agentstation/bomtally/internal/server/cache"
	"github.com/agentstation/bomtally/internal/tables"
	"github.com/agentstation/bomtally/pkg/bom"
)

// Application is what the handlers need from the host application.
type Application interface {
	Rules() bom.Rules
	TableOptions() tables.Options
	ExportFiles() report.Files
	Logger() *zerolog.Logger
	Version() string
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	app         Application
	cache       *cache.Cache
	logger      *zerolog.Logger
	pathPrefix  string
	maxUploadMB int64
	startTime   time.Time
}

// New creates a new Handlers instance.
func New(app Application, cache *cache.Cache, pathPrefix string, maxUploadMB int64) *Handlers {
	return &Handlers{
		app:         app,
		cache:       cache,
		logger:      app.Logger(),
		pathPrefix:  pathPrefix,
		maxUploadMB: maxUploadMB,
		startTime:   time.Now(),
	}
}
