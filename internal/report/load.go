package report

import (
	"context"
	"time"

	"github.com/agentstation/bomtally/internal/metrics"
	"github.com/agentstation/bomtally/internal/tables"
	"github.com/agentstation/bomtally/pkg/bom"
	"github.com/agentstation/bomtally/pkg/logging"
)

// Load extracts the cleaned count rows and the lookup rows from the two
// input tables. Both tables are checked for their required columns before
// any row is read.
func Load(ctx context.Context, counts, lookup *tables.Table) (Input, error) {
	logger := logging.FromContext(ctx)

	rows, stats, err := tables.Counts(counts)
	if err != nil {
		return Input{}, err
	}
	logger.Debug().
		Str("table", counts.Name).
		Int("rows", stats.Rows).
		Int("kept", stats.Kept).
		Int("non_numeric", stats.NonNumeric).
		Int("non_positive", stats.NonPositive).
		Int("missing_code", stats.MissingCode).
		Msg("Count report cleaned")

	lk, err := tables.Lookup(lookup)
	if err != nil {
		return Input{}, err
	}
	logger.Debug().
		Str("table", lookup.Name).
		Int("rows", len(lk)).
		Msg("Lookup table loaded")

	return Input{Counts: rows, CountStats: stats, Lookup: lk}, nil
}

// Reconcile loads both tables, runs the reconciliation and records the
// outcome under source ("cli" or "http").
func Reconcile(ctx context.Context, source string, counts, lookup *tables.Table, rules bom.Rules) (*Report, error) {
	start := time.Now()

	in, err := Load(ctx, counts, lookup)
	if err != nil {
		metrics.RecordRun(metrics.Run{Source: source, Duration: time.Since(start), Err: err})
		return nil, err
	}

	r := Run(ctx, in, rules)
	metrics.RecordRun(metrics.Run{
		Source:         source,
		CountRows:      in.CountStats.Rows,
		LookupRows:     r.LookupRows,
		Unmatched:      len(r.Unmatched),
		SyntheticUnits: r.SyntheticUnits,
		Duration:       time.Since(start),
	})
	return r, nil
}
