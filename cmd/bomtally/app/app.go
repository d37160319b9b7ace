// Package app provides the application context and dependency management
// for the bomtally CLI. It centralizes configuration, logging and the
// reconciliation settings every command reads.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/bomtally/internal/appcontext"
	"github.com/agentstation/bomtally/internal/report"
	"github.com/agentstation/bomtally/internal/server"
	"github.com/agentstation/bomtally/internal/tables"
	"github.com/agentstation/bomtally/pkg/bom"
	"github.com/agentstation/bomtally/pkg/errors"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// App represents the bomtally application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and the default config file
// locations; options can replace it.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the format selected by --format or the config.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Rules returns the configured reconciliation rules.
func (a *App) Rules() bom.Rules {
	return a.config.Rules
}

// TableOptions returns the configured input reader options.
func (a *App) TableOptions() tables.Options {
	return a.config.TableOptions()
}

// OutputDir returns the configured export directory.
func (a *App) OutputDir() string {
	return a.config.Output.Dir
}

// ExportFiles returns the configured export file names.
func (a *App) ExportFiles() report.Files {
	return report.Files{
		Unmatched: a.config.Output.UnmatchedFile,
		Totals:    a.config.Output.TotalsFile,
	}
}

// ServerConfig returns the configured HTTP server settings.
func (a *App) ServerConfig() server.Config {
	return a.config.Server
}

// Shutdown performs graceful shutdown of the application. Commands own
// their resources, so there is nothing to release beyond a final log line.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Application shutdown")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if err := config.Validate(); err != nil {
			return err
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
