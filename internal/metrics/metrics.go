// Package metrics provides Prometheus metrics for reconciliation runs and
// the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

var (
	// Run metrics
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bomtally_runs_total",
			Help: "Total number of reconciliation runs",
		},
		[]string{"source", "status"},
	)

	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bomtally_run_duration_seconds",
			Help:    "Time taken to read, reconcile and aggregate one run",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"source"},
	)

	// Data metrics
	RowsRead = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bomtally_rows_read_total",
			Help: "Total number of input rows read",
		},
		[]string{"table"},
	)

	UnmatchedCodes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bomtally_unmatched_codes_total",
			Help: "Total number of assembly codes without a lookup row",
		},
	)

	SyntheticUnits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bomtally_synthetic_units_total",
			Help: "Total number of reserved-code units added from prefix totals",
		},
	)

	// HTTP metrics
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bomtally_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bomtally_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Run describes one finished reconciliation for recording.
type Run struct {
	Source         string
	CountRows      int
	LookupRows     int
	Unmatched      int
	SyntheticUnits int
	Duration       time.Duration
	Err            error
}

// RecordRun records the outcome of a reconciliation run.
func RecordRun(r Run) {
	status := StatusOK
	if r.Err != nil {
		status = StatusError
	}
	RunsTotal.WithLabelValues(r.Source, status).Inc()
	RunDuration.WithLabelValues(r.Source).Observe(r.Duration.Seconds())
	if r.Err != nil {
		return
	}
	RowsRead.WithLabelValues("counts").Add(float64(r.CountRows))
	RowsRead.WithLabelValues("lookup").Add(float64(r.LookupRows))
	UnmatchedCodes.Add(float64(r.Unmatched))
	SyntheticUnits.Add(float64(r.SyntheticUnits))
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, route string, status int, d time.Duration) {
	RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
