package tables

import (
	"github.com/agentstation/bomtally/pkg/bom"
)

// CountStats describes what cleaning did to a count report.
type CountStats struct {
	Rows        int `json:"rows" yaml:"rows"`
	Kept        int `json:"kept" yaml:"kept"`
	NonNumeric  int `json:"non_numeric" yaml:"non_numeric"`
	NonPositive int `json:"non_positive" yaml:"non_positive"`
	MissingCode int `json:"missing_code" yaml:"missing_code"`
}

// Counts extracts and cleans the count report rows of t.
// Non-numeric counts count as 0; rows with a count <= 0 or without an
// assembly code are dropped.
func Counts(t *Table) ([]bom.CountRow, CountStats, error) {
	idx, err := t.Require("count", bom.RequiredCountColumns()...)
	if err != nil {
		return nil, CountStats{}, err
	}
	codeCol, countCol := idx[0], idx[1]

	stats := CountStats{Rows: len(t.Rows)}
	raw := make([]bom.RawCountRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		r := bom.RawCountRow{
			AssemblyCode: Value(row[codeCol]),
			Count:        Value(row[countCol]),
		}
		count, ok := bom.ParseNumber(r.Count)
		switch {
		case !ok:
			stats.NonNumeric++
		case count <= 0:
			stats.NonPositive++
		case r.AssemblyCode == "":
			stats.MissingCode++
		}
		raw = append(raw, r)
	}

	rows := bom.CleanCounts(raw)
	stats.Kept = len(rows)
	return rows, stats, nil
}
