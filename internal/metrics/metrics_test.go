package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRun(t *testing.T) {
	runsBefore := testutil.ToFloat64(RunsTotal.WithLabelValues("test", StatusOK))
	unitsBefore := testutil.ToFloat64(SyntheticUnits)
	countsBefore := testutil.ToFloat64(RowsRead.WithLabelValues("counts"))

	RecordRun(Run{
		Source:         "test",
		CountRows:      4,
		LookupRows:     2,
		Unmatched:      1,
		SyntheticUnits: 3,
		Duration:       20 * time.Millisecond,
	})

	assert.Equal(t, runsBefore+1, testutil.ToFloat64(RunsTotal.WithLabelValues("test", StatusOK)))
	assert.Equal(t, unitsBefore+3, testutil.ToFloat64(SyntheticUnits))
	assert.Equal(t, countsBefore+4, testutil.ToFloat64(RowsRead.WithLabelValues("counts")))
}

func TestRecordRunError(t *testing.T) {
	errBefore := testutil.ToFloat64(RunsTotal.WithLabelValues("test", StatusError))
	unitsBefore := testutil.ToFloat64(SyntheticUnits)

	RecordRun(Run{Source: "test", SyntheticUnits: 9, Err: errors.New("boom")})

	assert.Equal(t, errBefore+1, testutil.ToFloat64(RunsTotal.WithLabelValues("test", StatusError)))
	assert.Equal(t, unitsBefore, testutil.ToFloat64(SyntheticUnits), "failed runs do not add units")
}

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/health", "200"))
	ObserveRequest("GET", "/health", 200, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/health", "200")))
}
