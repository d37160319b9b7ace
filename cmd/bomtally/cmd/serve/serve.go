// Package serve provides the HTTP server command.
package serve

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/bomtally/internal/appcontext"
	"github.com/agentstation/bomtally/internal/cmd/emoji"
	"github.com/agentstation/bomtally/internal/server"
	"github.com/agentstation/bomtally/pkg/constants"
	"github.com/agentstation/bomtally/pkg/errors"
)

// NewCommand creates the serve command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	def := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Start the reconciliation HTTP API",
		Long: `Start an HTTP API that accepts a count report and a lookup table as a
multipart upload, runs the reconciliation and returns the report as JSON.

Finished runs are kept in memory for --result-ttl so their CSV exports can
be downloaded:

  POST {prefix}/reconcile                 multipart fields "counts" and "lookup"
  GET  {prefix}/runs/{id}                 the stored report
  GET  {prefix}/runs/{id}/unmatched.csv   codigos_nao_encontrados.csv
  GET  {prefix}/runs/{id}/totals.csv      resumo_materiais.csv
  GET  {prefix}/health, {prefix}/ready    liveness and readiness
  GET  /metrics                           Prometheus metrics

Flags override the server section of the configuration file.`,
		Example: `  # Start on the default port
  bomtally serve

  # Bind to all interfaces and allow a browser front end
  bomtally serve --host 0.0.0.0 --cors-origins https://estoque.example.com

  # Upload a pair of files
  curl -F counts=@contagem.csv -F lookup=@lookup.xlsx localhost:8080/api/v1/reconcile`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := parseConfig(cmd, app.ServerConfig())
			if err != nil {
				return err
			}
			return runServer(cmd, app, cfg)
		},
	}

	cmd.Flags().Int("port", def.Port, "Server port")
	cmd.Flags().String("host", def.Host, "Bind address")
	cmd.Flags().String("prefix", def.PathPrefix, "API path prefix")
	cmd.Flags().StringSlice("cors-origins", nil, "Allowed CORS origins (comma-separated, * for any)")
	cmd.Flags().Int("rate-limit", def.RateLimit, "Reconcile requests per minute per IP (0 to disable)")
	cmd.Flags().Int64("max-upload-mb", def.MaxUploadMB, "Maximum upload size in MiB")
	cmd.Flags().Duration("result-ttl", def.ResultTTL, "How long finished runs stay downloadable")
	cmd.Flags().Duration("read-timeout", def.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", def.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", def.IdleTimeout, "HTTP idle timeout")
	cmd.Flags().Bool("metrics", def.MetricsEnabled, "Expose Prometheus metrics on /metrics")

	return cmd
}

// parseConfig overlays the flags the user set onto the configured server
// settings.
func parseConfig(cmd *cobra.Command, base server.Config) (server.Config, error) {
	cfg := base
	flags := cmd.Flags()

	if flags.Changed("port") {
		cfg.Port = mustGet(flags.GetInt, "port")
	}
	if flags.Changed("host") {
		cfg.Host = mustGet(flags.GetString, "host")
	}
	if flags.Changed("prefix") {
		cfg.PathPrefix = mustGet(flags.GetString, "prefix")
	}
	if flags.Changed("cors-origins") {
		cfg.CORSOrigins = mustGet(flags.GetStringSlice, "cors-origins")
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit = mustGet(flags.GetInt, "rate-limit")
	}
	if flags.Changed("max-upload-mb") {
		cfg.MaxUploadMB = mustGet(flags.GetInt64, "max-upload-mb")
	}
	if flags.Changed("result-ttl") {
		cfg.ResultTTL = mustGet(flags.GetDuration, "result-ttl")
	}
	if flags.Changed("read-timeout") {
		cfg.ReadTimeout = mustGet(flags.GetDuration, "read-timeout")
	}
	if flags.Changed("write-timeout") {
		cfg.WriteTimeout = mustGet(flags.GetDuration, "write-timeout")
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = mustGet(flags.GetDuration, "idle-timeout")
	}
	if flags.Changed("metrics") {
		cfg.MetricsEnabled = mustGet(flags.GetBool, "metrics")
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return server.Config{}, errors.NewValidationError("port", cfg.Port, "must be between 1 and 65535")
	}
	if cfg.MaxUploadMB <= 0 {
		return server.Config{}, errors.NewValidationError("max-upload-mb", cfg.MaxUploadMB, "must be positive")
	}
	if cfg.RateLimit < 0 {
		return server.Config{}, errors.NewValidationError("rate-limit", cfg.RateLimit, "must not be negative")
	}
	return cfg, nil
}

// runServer starts the API server and blocks until the command context ends.
func runServer(cmd *cobra.Command, app appcontext.Interface, cfg server.Config) error {
	logger := app.Logger()

	logger.Info().
		Int("port", cfg.Port).
		Str("host", cfg.Host).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled()).
		Int("rate_limit", cfg.RateLimit).
		Dur("result_ttl", cfg.ResultTTL).
		Bool("metrics", cfg.MetricsEnabled).
		Msg("Starting API server")

	srv, err := server.New(app, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           srv.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return startWithGracefulShutdown(cmd.Context(), httpServer, srv, logger, cmd.OutOrStdout())
}

// startWithGracefulShutdown serves until ctx is cancelled, then drains
// connections for at most constants.ShutdownTimeout.
func startWithGracefulShutdown(ctx context.Context, httpServer *http.Server, srv *server.Server, logger *zerolog.Logger, out io.Writer) error {
	serverErr := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		fmt.Fprintf(out, "%s API server listening on %s\n", emoji.Info, httpServer.Addr)
		fmt.Fprintln(out, "  Press Ctrl+C to stop")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received via context")
		fmt.Fprintf(out, "\n%s Shutting down API server...\n", emoji.Info)

		// The parent context is already done.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Server cleanup had issues")
		}

		logger.Info().Dur("uptime", time.Since(srv.StartTime())).Msg("Server stopped gracefully")
		fmt.Fprintf(out, "%s API server stopped gracefully\n", emoji.Success)
		return nil
	}
}

// mustGet reads a flag defined by this package; a lookup failure is a
// programming error.
func mustGet[T any](get func(string) (T, error), name string) T {
	val, err := get(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}
