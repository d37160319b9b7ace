// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/bomtally/internal/report"
	"github.com/agentstation/bomtally/internal/server"
	"github.com/agentstation/bomtally/internal/tables"
	"github.com/agentstation/bomtally/pkg/bom"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/bomtally/app automatically implements this interface,
// providing dependency injection for commands while maintaining testability.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Interface interface {
	// Rules returns the configured reconciliation rules.
	Rules() bom.Rules

	// TableOptions returns how input files are read (delimiter, sheet).
	TableOptions() tables.Options

	// OutputDir returns the directory CSV exports are written to.
	OutputDir() string

	// ExportFiles returns the configured export file names.
	ExportFiles() report.Files

	// ServerConfig returns the HTTP server configuration.
	ServerConfig() server.Config

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, csv).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
