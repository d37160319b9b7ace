// Package report assembles the outcome of a reconciliation run into the two
// output tables (unmatched codes and material totals), renders the summary
// message and exports both tables as CSV.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/bomtally/internal/tables"
	"github.com/agentstation/bomtally/pkg/bom"
	"github.com/agentstation/bomtally/pkg/logging"
)

// Report is one reconciliation run, ready to display or export.
type Report struct {
	RunID          string            `json:"run_id" yaml:"run_id"`
	GeneratedAt    time.Time         `json:"generated_at" yaml:"generated_at"`
	Rules          bom.Rules         `json:"rules" yaml:"rules"`
	CountStats     tables.CountStats `json:"count_stats" yaml:"count_stats"`
	LookupRows     int               `json:"lookup_rows" yaml:"lookup_rows"`
	Unmatched      []string          `json:"unmatched" yaml:"unmatched"`
	Totals         []bom.Line        `json:"totals" yaml:"totals"`
	SyntheticUnits int               `json:"synthetic_units" yaml:"synthetic_units"`
	Combined       float64           `json:"combined" yaml:"combined"`
	Message        string            `json:"message" yaml:"message"`
}

// Input holds the cleaned tables of a run.
type Input struct {
	Counts     []bom.CountRow
	CountStats tables.CountStats
	Lookup     []bom.LookupRow
}

// Run validates and aggregates in one pass and returns the assembled report.
func Run(ctx context.Context, in Input, rules bom.Rules) *Report {
	runID := uuid.NewString()
	logger := logging.FromContext(logging.WithRunID(ctx, runID))

	unmatched := bom.Unmatched(in.Counts, in.Lookup)
	result := bom.Aggregate(in.Counts, in.Lookup, rules)

	r := &Report{
		RunID:          runID,
		GeneratedAt:    time.Now().UTC(),
		Rules:          rules,
		CountStats:     in.CountStats,
		LookupRows:     len(in.Lookup),
		Unmatched:      unmatched,
		Totals:         result.Totals.Lines(),
		SyntheticUnits: result.SyntheticUnits,
		Combined:       result.Combined,
		Message:        SyntheticMessage(result, rules),
	}

	logger.Info().
		Int("count_rows", len(in.Counts)).
		Int("lookup_rows", r.LookupRows).
		Int("unmatched", len(unmatched)).
		Int("materials", len(r.Totals)).
		Int("synthetic_units", r.SyntheticUnits).
		Float64("combined", r.Combined).
		Msg("Reconciliation complete")

	return r
}

// SyntheticMessage explains whether the synthetic-unit rule fired.
func SyntheticMessage(result bom.Result, rules bom.Rules) string {
	if result.SyntheticUnits > 0 {
		return fmt.Sprintf("Added %d units of %s based on a combined total of %s units of %s* and %s*.",
			result.SyntheticUnits, rules.ReservedCode, FormatQuantity(result.Combined), rules.PrefixA, rules.PrefixB)
	}
	return fmt.Sprintf("No units of %s were added because the combined count of %s* and %s* was below %d.",
		rules.ReservedCode, rules.PrefixA, rules.PrefixB, rules.Threshold)
}

// CoverageMessage summarises the unmatched-codes check.
func (r *Report) CoverageMessage() string {
	if len(r.Unmatched) == 0 {
		return "All count report codes were found in the lookup table."
	}
	return fmt.Sprintf("%d count report codes were not found in the lookup table.", len(r.Unmatched))
}
