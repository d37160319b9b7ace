package server

import (
	"time"

	"github.com/agentstation/bomtally/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	// API settings
	PathPrefix string `mapstructure:"path_prefix"`

	// CORS settings; an empty origin list disables CORS
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Upload and storage settings
	MaxUploadMB int64         `mapstructure:"max_upload_mb"`
	ResultTTL   time.Duration `mapstructure:"result_ttl"`
	RateLimit   int           `mapstructure:"rate_limit"` // Reconcile requests per minute per IP (0 to disable)

	// HTTP timeouts
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`

	// Features
	MetricsEnabled bool `mapstructure:"metrics_enabled"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:           constants.DefaultHost,
		Port:           constants.DefaultPort,
		PathPrefix:     constants.DefaultPathPrefix,
		CORSOrigins:    []string{},
		MaxUploadMB:    constants.MaxUploadMB,
		ResultTTL:      constants.ResultTTL,
		RateLimit:      constants.DefaultRateLimit,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MetricsEnabled: true,
	}
}

// CORSEnabled reports whether any origin is allowed.
func (c Config) CORSEnabled() bool {
	return len(c.CORSOrigins) > 0
}

// maxUploadBytes returns the request body cap in bytes.
func (c Config) maxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
