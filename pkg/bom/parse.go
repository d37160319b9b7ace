package bom

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses a numeric-like cell. Surrounding whitespace is ignored.
// It reports false for empty, non-numeric, hexadecimal, NaN and infinite
// values so that callers can skip the value instead of failing.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || isHex(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// isHex reports whether s carries a 0x prefix after an optional sign.
// Spreadsheet cells never hold hex floats; ParseFloat would accept them.
func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// PerUnit returns the parsed per-unit quantity of a slot when both the
// material code and the quantity are present and usable.
func (s Slot) PerUnit() (float64, bool) {
	if s.Material == "" || s.Quantity == "" {
		return 0, false
	}
	return ParseNumber(s.Quantity)
}
