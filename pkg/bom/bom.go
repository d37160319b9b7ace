// Package bom reconciles a count report against a bill-of-materials lookup
// table and aggregates the material quantities it implies.
//
// The package is pure: every function builds its result from its arguments
// and never mutates them. Ingestion, rendering and export live elsewhere.
//
// Example usage:
//
//	counts := bom.CleanCounts(rawCounts)
//	missing := bom.Unmatched(counts, lookup)
//	result := bom.Aggregate(counts, lookup, bom.DefaultRules())
//	for _, line := range result.Totals.Lines() {
//	    fmt.Println(line.Material, line.Quantity)
//	}
package bom

// SlotCount is the number of material slots carried by a lookup row.
const SlotCount = 15

// CountRow is one cleaned record of the count report.
type CountRow struct {
	AssemblyCode string  `json:"assembly_code" yaml:"assembly_code"`
	Count        float64 `json:"count" yaml:"count"`
}

// RawCountRow is a count report record before numeric coercion.
type RawCountRow struct {
	AssemblyCode string
	Count        string
}

// Slot is one material position of a lookup row. An empty Material or
// Quantity means the cell was absent.
type Slot struct {
	Material string `json:"material,omitempty" yaml:"material,omitempty"`
	Quantity string `json:"quantity,omitempty" yaml:"quantity,omitempty"`
}

// LookupRow is the expansion recipe for one instance code.
type LookupRow struct {
	InstanceCode string          `json:"instance_code" yaml:"instance_code"`
	Slots        [SlotCount]Slot `json:"slots" yaml:"slots"`
}

// CleanCounts coerces raw count records and drops the ones that must not
// reach the aggregation: non-numeric counts become 0, then rows with a count
// <= 0 or an empty assembly code are removed. Order is preserved.
func CleanCounts(raw []RawCountRow) []CountRow {
	rows := make([]CountRow, 0, len(raw))
	for _, r := range raw {
		count, ok := ParseNumber(r.Count)
		if !ok {
			count = 0
		}
		if count <= 0 || r.AssemblyCode == "" {
			continue
		}
		rows = append(rows, CountRow{AssemblyCode: r.AssemblyCode, Count: count})
	}
	return rows
}

// index maps each instance code to its first lookup row.
func index(lookup []LookupRow) map[string]*LookupRow {
	idx := make(map[string]*LookupRow, len(lookup))
	for i := range lookup {
		code := lookup[i].InstanceCode
		if code == "" {
			continue
		}
		if _, seen := idx[code]; !seen {
			idx[code] = &lookup[i]
		}
	}
	return idx
}
