package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/bomtally/internal/report"
	"github.com/agentstation/bomtally/internal/server"
	"github.com/agentstation/bomtally/internal/server/cache"
	"github.com/agentstation/bomtally/internal/tables"
	"github.com/agentstation/bomtally/pkg/bom"
)

type testApp struct {
	rules bom.Rules
}

func (a *testApp) Rules() bom.Rules             { return a.rules }
func (a *testApp) TableOptions() tables.Options { return tables.DefaultOptions() }
func (a *testApp) ExportFiles() report.Files    { return report.DefaultFiles() }
func (a *testApp) Version() string              { return "test" }
func (a *testApp) Logger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

type runData struct {
	RunID          string     `json:"run_id"`
	Unmatched      []string   `json:"unmatched"`
	Totals         []bom.Line `json:"totals"`
	SyntheticUnits int        `json:"synthetic_units"`
	Combined       float64    `json:"combined"`
	Message        string     `json:"message"`
	Coverage       string     `json:"coverage"`
	Downloads      struct {
		Unmatched string `json:"unmatched"`
		Totals    string `json:"totals"`
	} `json:"downloads"`
}

func newTestServer(t *testing.T, mutate ...func(*server.Config)) *httptest.Server {
	t.Helper()
	cfg := server.DefaultConfig()
	cfg.RateLimit = 0
	for _, m := range mutate {
		m(&cfg)
	}
	srv, err := server.New(&testApp{rules: bom.DefaultRules()}, cfg)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Shutdown(t.Context())
	})
	return ts
}

func lookupXLSX(t *testing.T, rows ...[]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	header := make([]any, 0, 31)
	for _, col := range bom.RequiredLookupColumns() {
		header = append(header, col)
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

type upload struct {
	field, filename string
	body            []byte
}

func postReconcile(t *testing.T, ts *httptest.Server, files ...upload) (*http.Response, envelope) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write(f.body)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/api/v1/reconcile", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

const countsCSV = "Codigo_Montagem,Contagem\nX001,2\nE0141,20\nV0942,10\nZ999,1\n"

func TestReconcileRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	resp, env := postReconcile(t, ts,
		upload{"counts", "counts.csv", []byte(countsCSV)},
		upload{"lookup", "lookup.xlsx", lookupXLSX(t, []any{"X001", "M1", 1.5, "M2", 3})},
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Nil(t, env.Error)

	var run runData
	require.NoError(t, json.Unmarshal(env.Data, &run))
	assert.Equal(t, []string{"E0141", "V0942", "Z999"}, run.Unmatched)
	assert.Equal(t, []bom.Line{
		{Material: "EPC-23004-01", Quantity: 1},
		{Material: "M1", Quantity: 3},
		{Material: "M2", Quantity: 6},
	}, run.Totals)
	assert.Equal(t, 1, run.SyntheticUnits)
	assert.Equal(t, 30.0, run.Combined)
	assert.Equal(t, "3 count report codes were not found in the lookup table.", run.Coverage)

	t.Run("get run", func(t *testing.T) {
		resp, b := get(t, ts.URL+"/api/v1/runs/"+run.RunID)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var env envelope
		require.NoError(t, json.Unmarshal(b, &env))
		var again runData
		require.NoError(t, json.Unmarshal(env.Data, &again))
		assert.Equal(t, run.RunID, again.RunID)
	})

	t.Run("totals csv", func(t *testing.T) {
		resp, b := get(t, ts.URL+run.Downloads.Totals)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, `attachment; filename="resumo_materiais.csv"`, resp.Header.Get("Content-Disposition"))
		assert.Equal(t, "Código Material,Quantidade Total\nEPC-23004-01,1.0\nM1,3.0\nM2,6.0\n", string(b))
	})

	t.Run("unmatched csv", func(t *testing.T) {
		resp, b := get(t, ts.URL+run.Downloads.Unmatched)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, `attachment; filename="codigos_nao_encontrados.csv"`, resp.Header.Get("Content-Disposition"))
		assert.Equal(t, "Códigos Não Encontrados no Excel\nE0141\nV0942\nZ999\n", string(b))
	})

	t.Run("unknown download", func(t *testing.T) {
		resp, _ := get(t, ts.URL+"/api/v1/runs/"+run.RunID+"/other.csv")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestReconcileErrors(t *testing.T) {
	ts := newTestServer(t)

	t.Run("missing lookup file", func(t *testing.T) {
		resp, env := postReconcile(t, ts, upload{"counts", "counts.csv", []byte(countsCSV)})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Message, "lookup")
	})

	t.Run("missing columns", func(t *testing.T) {
		resp, env := postReconcile(t, ts,
			upload{"counts", "counts.csv", []byte("Codigo,Contagem\nX001,2\n")},
			upload{"lookup", "lookup.xlsx", lookupXLSX(t)},
		)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_TABLE", env.Error.Code)
		assert.Equal(t, "Codigo_Montagem", env.Error.Details)
	})

	t.Run("unsupported file type", func(t *testing.T) {
		resp, env := postReconcile(t, ts,
			upload{"counts", "counts.pdf", []byte("%PDF")},
			upload{"lookup", "lookup.xlsx", lookupXLSX(t)},
		)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NotNil(t, env.Error)
	})

	t.Run("wrong method", func(t *testing.T) {
		resp, _ := get(t, ts.URL+"/api/v1/reconcile")
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("unknown run", func(t *testing.T) {
		resp, _ := get(t, ts.URL+"/api/v1/runs/does-not-exist")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/health", "/api/v1/health", "/api/v1/ready"} {
		resp, _ := get(t, ts.URL+path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp, b := get(t, ts.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), "bomtally_http_requests_total")
}

func TestReadyReportsStoredRuns(t *testing.T) {
	ts := newTestServer(t, func(c *server.Config) { c.ResultTTL = 2 * time.Minute })

	resp, _ := postReconcile(t, ts,
		upload{"counts", "counts.csv", []byte(countsCSV)},
		upload{"lookup", "lookup.xlsx", lookupXLSX(t, []any{"X001", "M1", 1.5})},
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, b := get(t, ts.URL+"/api/v1/ready")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env envelope
	require.NoError(t, json.Unmarshal(b, &env))
	var ready struct {
		Status string      `json:"status"`
		Cache  cache.Stats `json:"cache"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &ready))
	assert.Equal(t, "ready", ready.Status)
	assert.Equal(t, cache.Stats{Runs: 1, TTL: "2m0s"}, ready.Cache)
}

func TestMetricsDisabled(t *testing.T) {
	ts := newTestServer(t, func(c *server.Config) { c.MetricsEnabled = false })

	resp, _ := get(t, ts.URL+"/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, func(c *server.Config) { c.CORSOrigins = []string{"https://app.example.com"} })

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/reconcile", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestNewRejectsInvalidRules(t *testing.T) {
	_, err := server.New(&testApp{rules: bom.Rules{}}, server.DefaultConfig())
	assert.Error(t, err)
}
