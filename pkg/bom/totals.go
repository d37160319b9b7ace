package bom

import (
	"math"
	"sort"
)

// Totals maps a material code to its accumulated quantity.
type Totals map[string]float64

// Line is one material total.
type Line struct {
	Material string  `json:"material" yaml:"material"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
}

// Lines returns the totals sorted by material code with quantities rounded
// to two decimals.
func (t Totals) Lines() []Line {
	lines := make([]Line, 0, len(t))
	for code, qty := range t {
		lines = append(lines, Line{Material: code, Quantity: Round2(qty)})
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Material < lines[j].Material
	})
	return lines
}

// Merge returns a new Totals holding the entrywise sum of t and other.
func (t Totals) Merge(other Totals) Totals {
	out := make(Totals, len(t)+len(other))
	for code, qty := range t {
		out[code] += qty
	}
	for code, qty := range other {
		out[code] += qty
	}
	return out
}

// Without returns a copy of t without the given material code.
func (t Totals) Without(code string) Totals {
	out := make(Totals, len(t))
	for c, qty := range t {
		if c != code {
			out[c] = qty
		}
	}
	return out
}

// Round2 rounds v to two decimals, ties to even.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
