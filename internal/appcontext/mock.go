package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/bomtally/internal/report"
	"github.com/agentstation/bomtally/internal/server"
	"github.com/agentstation/bomtally/internal/tables"
	"github.com/agentstation/bomtally/pkg/bom"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	RulesFunc        func() bom.Rules
	TableOptionsFunc func() tables.Options
	OutputDirFunc    func() string
	ServerConfigFunc func() server.Config
	LoggerFunc       func() *zerolog.Logger
	Format           string
}

var _ Interface = (*Mock)(nil)

// Rules returns the mock rules or the defaults.
func (m *Mock) Rules() bom.Rules {
	if m.RulesFunc != nil {
		return m.RulesFunc()
	}
	return bom.DefaultRules()
}

// TableOptions returns the mock options or the defaults.
func (m *Mock) TableOptions() tables.Options {
	if m.TableOptionsFunc != nil {
		return m.TableOptionsFunc()
	}
	return tables.DefaultOptions()
}

// OutputDir returns the mock directory or ".".
func (m *Mock) OutputDir() string {
	if m.OutputDirFunc != nil {
		return m.OutputDirFunc()
	}
	return "."
}

// ExportFiles returns the default file names.
func (m *Mock) ExportFiles() report.Files {
	return report.DefaultFiles()
}

// ServerConfig returns the mock config or the defaults.
func (m *Mock) ServerConfig() server.Config {
	if m.ServerConfigFunc != nil {
		return m.ServerConfigFunc()
	}
	return server.DefaultConfig()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the mock format.
func (m *Mock) OutputFormat() string {
	return m.Format
}

// Version returns "dev".
func (m *Mock) Version() string { return "dev" }

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
