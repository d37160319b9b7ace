package server

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agentstation/bomtally/internal/server/handlers"
	"github.com/agentstation/bomtally/internal/server/middleware"
	"github.com/agentstation/bomtally/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(s.app, s.cache, s.config.PathPrefix, s.config.MaxUploadMB)
	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health endpoints
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/ready", h.HandleReady)

	// Reconciliation endpoints; uploads are size-capped and rate limited
	var reconcile http.Handler = http.HandlerFunc(h.HandleReconcile)
	reconcile = middleware.MaxBytes(s.config.maxUploadBytes())(reconcile)
	if s.config.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(s.ctx, s.config.RateLimit, s.logger)
		reconcile = middleware.RateLimit(limiter)(reconcile)
	}
	mux.Handle(prefix+"/reconcile", reconcile)
	mux.HandleFunc(prefix+"/runs/", h.HandleRuns)

	// Metrics endpoint (optional)
	if s.config.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Not found", r.URL.Path)
	})
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	}
	if s.config.MetricsEnabled {
		chain = append(chain, middleware.Metrics(s.routeLabel))
	}
	if s.config.CORSEnabled() {
		corsConfig := middleware.DefaultCORSConfig()
		corsConfig.AllowedOrigins = s.config.CORSOrigins
		chain = append(chain, middleware.CORS(corsConfig))
	}
	return middleware.Chain(chain...)(handler)
}

// routeLabel maps a request path to its route pattern for metrics.
func (s *Server) routeLabel(r *http.Request) string {
	prefix := s.config.PathPrefix
	path := r.URL.Path
	switch {
	case path == "/health", path == "/metrics", path == "/favicon.ico":
		return path
	case path == prefix+"/health", path == prefix+"/ready", path == prefix+"/reconcile":
		return path
	case strings.HasPrefix(path, prefix+"/runs/"):
		switch {
		case strings.HasSuffix(path, "/unmatched.csv"):
			return prefix + "/runs/{id}/unmatched.csv"
		case strings.HasSuffix(path, "/totals.csv"):
			return prefix + "/runs/{id}/totals.csv"
		default:
			return prefix + "/runs/{id}"
		}
	default:
		return "other"
	}
}
