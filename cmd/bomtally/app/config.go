package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/bomtally/internal/cmd/cmdutil"
	"github.com/agentstation/bomtally/internal/server"
	"github.com/agentstation/bomtally/internal/tables"
	"github.com/agentstation/bomtally/pkg/bom"
	"github.com/agentstation/bomtally/pkg/constants"
	"github.com/agentstation/bomtally/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Reconciliation
	Rules  bom.Rules    `mapstructure:"rules"`
	Input  InputConfig  `mapstructure:"input"`
	Output OutputConfig `mapstructure:"output"`
	Server server.Config `mapstructure:"server"`

	// Logging configuration; LogLevel is only set by --log-level
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// InputConfig controls how input tables are read.
type InputConfig struct {
	Delimiter string `mapstructure:"delimiter"`
	Sheet     string `mapstructure:"sheet"`
}

// OutputConfig controls where exports are written.
type OutputConfig struct {
	Dir           string `mapstructure:"dir"`
	UnmatchedFile string `mapstructure:"unmatched_file"`
	TotalsFile    string `mapstructure:"totals_file"`
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (BOMTALLY_RULES_THRESHOLD, ...)
// 3. .env files
// 4. Config file (configFile, or .bomtally.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		configFile = os.Getenv(constants.EnvPrefix + "_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit file must exist; the search locations are optional
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "failed to read config file", err)
		}
	}

	config := &Config{
		ConfigFile: v.ConfigFileUsed(),

		// Logging configuration
		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	// Unmarshal walks every known key, so environment overrides of nested
	// keys are applied; UnmarshalKey on a section would miss them.
	var sections struct {
		Rules  bom.Rules     `mapstructure:"rules"`
		Input  InputConfig   `mapstructure:"input"`
		Output OutputConfig  `mapstructure:"output"`
		Server server.Config `mapstructure:"server"`
	}
	if err := v.Unmarshal(&sections); err != nil {
		return nil, errors.NewConfigError("config", "invalid configuration", err)
	}
	config.Rules = sections.Rules
	config.Input = sections.Input
	config.Output = sections.Output
	config.Server = sections.Server

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// setDefaults registers every known key; Unmarshal only applies
// environment overrides to keys viper knows about.
func setDefaults(v *viper.Viper) {
	rules := bom.DefaultRules()
	v.SetDefault("rules.prefix_a", rules.PrefixA)
	v.SetDefault("rules.prefix_b", rules.PrefixB)
	v.SetDefault("rules.threshold", rules.Threshold)
	v.SetDefault("rules.reserved_code", rules.ReservedCode)

	v.SetDefault("input.delimiter", constants.DefaultDelimiter)
	v.SetDefault("input.sheet", "")

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.unmatched_file", constants.UnmatchedFileName)
	v.SetDefault("output.totals_file", constants.TotalsFileName)

	srv := server.DefaultConfig()
	v.SetDefault("server.host", srv.Host)
	v.SetDefault("server.port", srv.Port)
	v.SetDefault("server.path_prefix", srv.PathPrefix)
	v.SetDefault("server.cors_origins", srv.CORSOrigins)
	v.SetDefault("server.max_upload_mb", srv.MaxUploadMB)
	v.SetDefault("server.result_ttl", srv.ResultTTL)
	v.SetDefault("server.rate_limit", srv.RateLimit)
	v.SetDefault("server.read_timeout", srv.ReadTimeout)
	v.SetDefault("server.write_timeout", srv.WriteTimeout)
	v.SetDefault("server.idle_timeout", srv.IdleTimeout)
	v.SetDefault("server.metrics_enabled", srv.MetricsEnabled)
}

// Validate checks the loaded values that commands rely on.
func (c *Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return errors.NewConfigError("rules", err.Error(), err)
	}
	if _, err := cmdutil.ParseDelimiter(c.Input.Delimiter); err != nil {
		return errors.NewConfigError("input", err.Error(), err)
	}
	if c.Output.UnmatchedFile == "" || c.Output.TotalsFile == "" {
		return errors.NewConfigError("output", "export file names cannot be empty", nil)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.NewConfigError("server", "port out of range", nil)
	}
	return nil
}

// TableOptions converts the input section to reader options.
func (c *Config) TableOptions() tables.Options {
	opts := tables.DefaultOptions()
	if r, err := cmdutil.ParseDelimiter(c.Input.Delimiter); err == nil {
		opts.Delimiter = r
	}
	opts.Sheet = c.Input.Sheet
	return opts
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	c.LogLevel = logLevel
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides a variable that is already set, so the process
// environment wins, then .env.local, then .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
