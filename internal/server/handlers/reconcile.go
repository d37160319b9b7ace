package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/agentstation/bomtally/internal/report"
	"github.com/agentstation/bomtally/internal/server/response"
	"github.com/agentstation/bomtally/internal/tables"
	"github.com/agentstation/bomtally/pkg/errors"
	"github.com/agentstation/bomtally/pkg/logging"
)

// Multipart field names of a reconcile request.
const (
	CountsField = "counts"
	LookupField = "lookup"
)

// RunResponse is a stored run plus its download links.
type RunResponse struct {
	*report.Report
	Coverage  string    `json:"coverage"`
	Downloads Downloads `json:"downloads"`
}

// Downloads links the CSV exports of a run.
type Downloads struct {
	Unmatched string `json:"unmatched"`
	Totals    string `json:"totals"`
}

func (h *Handlers) runResponse(r *report.Report) RunResponse {
	base := h.pathPrefix + "/runs/" + r.RunID
	return RunResponse{
		Report:   r,
		Coverage: r.CoverageMessage(),
		Downloads: Downloads{
			Unmatched: base + "/unmatched.csv",
			Totals:    base + "/totals.csv",
		},
	}
}

// HandleReconcile handles POST /api/v1/reconcile.
// The body is multipart/form-data with a "counts" and a "lookup" file.
func (h *Handlers) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.MethodNotAllowed(w, r.Method)
		return
	}
	logger := logging.FromContext(r.Context())

	if err := r.ParseMultipartForm(h.maxUploadMB << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.PayloadTooLarge(w, h.maxUploadMB)
			return
		}
		response.BadRequest(w, "Invalid multipart form", err.Error())
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	opts := h.app.TableOptions()
	counts, err := readUpload(r, CountsField, opts)
	if err != nil {
		logger.Warn().Err(err).Str("field", CountsField).Msg("Rejected upload")
		response.ErrorFromType(w, err)
		return
	}
	lookup, err := readUpload(r, LookupField, opts)
	if err != nil {
		logger.Warn().Err(err).Str("field", LookupField).Msg("Rejected upload")
		response.ErrorFromType(w, err)
		return
	}

	run, err := report.Reconcile(r.Context(), "http", counts, lookup, h.app.Rules())
	if err != nil {
		logger.Warn().Err(err).Msg("Reconciliation failed")
		response.ErrorFromType(w, err)
		return
	}

	h.cache.Put(run)
	response.Created(w, h.runResponse(run))
}

// readUpload reads the table uploaded under field.
func readUpload(r *http.Request, field string, opts tables.Options) (*tables.Table, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, errors.NewValidationError(field, nil, "file is required")
		}
		return nil, errors.WrapIO("read", field, err)
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	return tables.Read(file, header.Filename, opts)
}
