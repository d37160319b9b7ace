package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/bomtally/internal/server/response"
)

// HandleHealth handles GET /health and GET /api/v1/health (liveness).
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w, r.Method)
		return
	}
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "bomtally-api",
		"version": h.app.Version(),
	})
}

// HandleReady handles GET /api/v1/ready. The service is ready when its
// reconciliation rules are valid.
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w, r.Method)
		return
	}
	rules := h.app.Rules()
	if err := rules.Validate(); err != nil {
		response.ServiceUnavailable(w, err.Error())
		return
	}

	response.OK(w, map[string]any{
		"status": "ready",
		"rules":  rules,
		"cache":  h.cache.GetStats(),
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}
