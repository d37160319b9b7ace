package handlers

import (
	"net/http"
	"strings"

	"github.com/agentstation/bomtally/internal/report"
	"github.com/agentstation/bomtally/internal/server/response"
	"github.com/agentstation/bomtally/pkg/errors"
)

// HandleRuns dispatches GET /api/v1/runs/{id} and its CSV downloads.
func (h *Handlers) HandleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w, r.Method)
		return
	}

	parts := splitPath(strings.TrimPrefix(r.URL.Path, h.pathPrefix+"/runs/"))
	if len(parts) == 0 || len(parts) > 2 {
		response.NotFound(w, "Not found", r.URL.Path)
		return
	}

	run, ok := h.cache.Get(parts[0])
	if !ok {
		response.ErrorFromType(w, errors.NewNotFoundError("run", parts[0]))
		return
	}

	if len(parts) == 1 {
		response.OK(w, h.runResponse(run))
		return
	}

	switch parts[1] {
	case "unmatched.csv":
		h.writeUnmatched(w, run)
	case "totals.csv":
		h.writeTotals(w, run)
	default:
		response.NotFound(w, "Not found", r.URL.Path)
	}
}

func (h *Handlers) writeUnmatched(w http.ResponseWriter, run *report.Report) {
	response.Attachment(w, h.app.ExportFiles().Unmatched)
	if err := report.WriteUnmatchedCSV(w, run.Unmatched); err != nil {
		h.logger.Error().Err(err).Str("run_id", run.RunID).Msg("Failed to write unmatched CSV")
	}
}

func (h *Handlers) writeTotals(w http.ResponseWriter, run *report.Report) {
	response.Attachment(w, h.app.ExportFiles().Totals)
	if err := report.WriteTotalsCSV(w, run.Totals); err != nil {
		h.logger.Error().Err(err).Str("run_id", run.RunID).Msg("Failed to write totals CSV")
	}
}

// splitPath splits a URL path into parts, removing empty strings.
func splitPath(path string) []string {
	parts := []string{}
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
