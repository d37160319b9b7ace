package table

import (
	"fmt"
	"strconv"

	"github.com/agentstation/bomtally/internal/report"
	"github.com/agentstation/bomtally/internal/tables"
	"github.com/agentstation/bomtally/pkg/constants"
)

// UnmatchedToTableData lists the assembly codes absent from the lookup table.
func UnmatchedToTableData(codes []string) Data {
	rows := make([][]string, 0, len(codes))
	for _, code := range codes {
		rows = append(rows, []string{code})
	}
	return Data{
		Headers: []string{constants.UnmatchedHeader},
		Rows:    rows,
	}
}

// TotalsToTableData converts the material summary to table format.
func TotalsToTableData(r *report.Report) Data {
	rows := make([][]string, 0, len(r.Totals))
	for _, line := range r.Totals {
		rows = append(rows, []string{line.Material, report.FormatQuantity(line.Quantity)})
	}
	return Data{
		Headers:         []string{constants.MaterialHeader, constants.QuantityHeader},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// SummaryToTableData condenses a report into property/value rows.
func SummaryToTableData(r *report.Report) Data {
	rows := [][]string{
		{"Run", r.RunID},
		{"Count rows", strconv.Itoa(r.CountStats.Rows)},
		{"Counts kept", strconv.Itoa(r.CountStats.Kept)},
		{"Lookup rows", strconv.Itoa(r.LookupRows)},
		{"Unmatched codes", strconv.Itoa(len(r.Unmatched))},
		{"Materials", strconv.Itoa(len(r.Totals))},
		{"Combined " + r.Rules.PrefixA + "*/" + r.Rules.PrefixB + "*", report.FormatQuantity(r.Combined)},
		{"Units of " + r.Rules.ReservedCode + " added", strconv.Itoa(r.SyntheticUnits)},
	}
	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// PreviewToTableData shows the header and the first rows of a table.
func PreviewToTableData(t *tables.Table, n int) Data {
	head := t.Head(n)
	rows := make([][]string, 0, len(head))
	for _, rec := range head {
		row := make([]string, len(rec))
		copy(row, rec)
		rows = append(rows, row)
	}
	return Data{
		Headers: t.Headers,
		Rows:    rows,
	}
}

// ColumnsToTableData lists the columns of a table with their position.
func ColumnsToTableData(t *tables.Table) Data {
	rows := make([][]string, 0, len(t.Headers))
	for i, h := range t.Headers {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), h})
	}
	return Data{
		Headers:         []string{"#", "Column"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft},
	}
}
