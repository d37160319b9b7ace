// Package logging provides structured logging for bomtally using zerolog.
// Console output is used when the log destination is a terminal and JSON
// otherwise, so the same binary reads well interactively and inside log
// pipelines.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("file", "counts.csv").Int("rows", 120).Msg("Loaded count report")
//
//	ctx := logging.WithRunID(context.Background(), runID)
//	logging.FromContext(ctx).Debug().Msg("Aggregating")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is used wherever no logger travels in a context.
var defaultLogger = NewLoggerFromConfig(envConfig())

// envConfig derives the pre-flag configuration from LOG_* variables, so
// packages that log during init behave like the CLI will.
func envConfig() *Config {
	cfg := DefaultConfig()
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.Level = lvl
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if f := os.Getenv("LOG_FORMAT"); f != "" {
		cfg.Format = f
	}
	return cfg
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger, zerolog's global included.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Info starts an info event on the default logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a warning event on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
