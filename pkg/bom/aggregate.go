package bom

import (
	"math"
	"strings"
)

// Result is the outcome of one aggregation run.
type Result struct {
	// Totals maps material code to accumulated quantity, synthetic units included.
	Totals Totals `json:"totals" yaml:"totals"`

	// SyntheticUnits is the number of ReservedCode units added by the rule.
	SyntheticUnits int `json:"synthetic_units" yaml:"synthetic_units"`

	// Combined is the prefix subtotal that gated SyntheticUnits.
	Combined float64 `json:"combined" yaml:"combined"`
}

// Aggregate expands every count row through its first matching lookup row
// and accumulates the material totals, then applies the synthetic-unit rule.
//
// Rows without a lookup match still feed the prefix subtotals. Slots with a
// missing material, a missing quantity or a quantity that does not parse are
// skipped. Aggregate never fails and does not modify its arguments.
func Aggregate(counts []CountRow, lookup []LookupRow, rules Rules) Result {
	totals := make(Totals)
	idx := index(lookup)

	var countA, countB float64
	for _, row := range counts {
		if rules.PrefixA != "" && strings.HasPrefix(row.AssemblyCode, rules.PrefixA) {
			countA += row.Count
		}
		if rules.PrefixB != "" && strings.HasPrefix(row.AssemblyCode, rules.PrefixB) {
			countB += row.Count
		}

		match, ok := idx[row.AssemblyCode]
		if !ok {
			continue
		}
		for _, slot := range match.Slots {
			perUnit, ok := slot.PerUnit()
			if !ok {
				continue
			}
			totals[slot.Material] += perUnit * row.Count
		}
	}

	combined := countA + countB
	units := SyntheticUnits(combined, rules.Threshold)
	if units > 0 {
		totals[rules.ReservedCode] += float64(units)
	}

	return Result{
		Totals:         totals,
		SyntheticUnits: units,
		Combined:       combined,
	}
}

// SyntheticUnits returns floor(combined / threshold) once combined reaches
// threshold, and 0 below it or for a non-positive threshold.
func SyntheticUnits(combined float64, threshold int) int {
	if threshold <= 0 || combined < float64(threshold) {
		return 0
	}
	return int(math.Floor(combined / float64(threshold)))
}
