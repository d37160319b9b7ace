package bom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bomtally/pkg/bom"
	"github.com/agentstation/bomtally/pkg/errors"
)

// lookupRow builds a lookup row from material/quantity pairs, slot 1 first.
func lookupRow(code string, pairs ...string) bom.LookupRow {
	row := bom.LookupRow{InstanceCode: code}
	for i := 0; i+1 < len(pairs); i += 2 {
		row.Slots[i/2] = bom.Slot{Material: pairs[i], Quantity: pairs[i+1]}
	}
	return row
}

func TestAggregateScenarios(t *testing.T) {
	rules := bom.DefaultRules()

	t.Run("prefix counts without lookup matches add synthetic units", func(t *testing.T) {
		counts := []bom.CountRow{
			{AssemblyCode: "E0141", Count: 10},
			{AssemblyCode: "V0941", Count: 20},
		}

		result := bom.Aggregate(counts, nil, rules)

		assert.Equal(t, bom.Totals{"EPC-23004-01": 1}, result.Totals)
		assert.Equal(t, 1, result.SyntheticUnits)
		assert.Equal(t, 30.0, result.Combined)
		assert.Equal(t, []string{"E0141", "V0941"}, bom.Unmatched(counts, nil))
	})

	t.Run("textual quantity is parsed and multiplied", func(t *testing.T) {
		counts := []bom.CountRow{{AssemblyCode: "X001", Count: 5}}
		lookup := []bom.LookupRow{lookupRow("X001", "M1", "2.5")}

		result := bom.Aggregate(counts, lookup, rules)

		assert.Equal(t, bom.Totals{"M1": 12.5}, result.Totals)
		assert.Equal(t, 0, result.SyntheticUnits)
		assert.Equal(t, 0.0, result.Combined)
	})

	t.Run("non-numeric quantity skips only that slot", func(t *testing.T) {
		counts := []bom.CountRow{{AssemblyCode: "X001", Count: 2}}
		lookup := []bom.LookupRow{lookupRow("X001", "M1", "abc", "M2", "3", "M3", "", "", "4")}

		result := bom.Aggregate(counts, lookup, rules)

		assert.Equal(t, bom.Totals{"M2": 6}, result.Totals)
	})
}

func TestAggregateSlots(t *testing.T) {
	rules := bom.DefaultRules()

	t.Run("all fifteen slots contribute", func(t *testing.T) {
		var pairs []string
		for i := 0; i < bom.SlotCount; i++ {
			pairs = append(pairs, string(rune('A'+i)), "1")
		}
		lookup := []bom.LookupRow{lookupRow("K", pairs...)}

		result := bom.Aggregate([]bom.CountRow{{AssemblyCode: "K", Count: 3}}, lookup, rules)

		require.Len(t, result.Totals, bom.SlotCount)
		assert.Equal(t, 3.0, result.Totals["A"])
		assert.Equal(t, 3.0, result.Totals["O"])
	})

	t.Run("repeated material across slots accumulates", func(t *testing.T) {
		lookup := []bom.LookupRow{lookupRow("K", "M1", "1", "M1", "0.5")}

		result := bom.Aggregate([]bom.CountRow{{AssemblyCode: "K", Count: 4}}, lookup, rules)

		assert.Equal(t, bom.Totals{"M1": 6}, result.Totals)
	})

	t.Run("first lookup row wins", func(t *testing.T) {
		lookup := []bom.LookupRow{
			lookupRow("K", "M1", "1"),
			lookupRow("K", "M2", "100"),
		}

		result := bom.Aggregate([]bom.CountRow{{AssemblyCode: "K", Count: 2}}, lookup, rules)

		assert.Equal(t, bom.Totals{"M1": 2}, result.Totals)
	})

	t.Run("synthetic units stack on an organic total", func(t *testing.T) {
		lookup := []bom.LookupRow{lookupRow("E0140", bom.DefaultReservedCode, "0.5")}

		result := bom.Aggregate([]bom.CountRow{{AssemblyCode: "E0140", Count: 50}}, lookup, rules)

		assert.Equal(t, 2, result.SyntheticUnits)
		assert.Equal(t, bom.Totals{bom.DefaultReservedCode: 27}, result.Totals)
	})

	t.Run("prefix match is case sensitive", func(t *testing.T) {
		counts := []bom.CountRow{{AssemblyCode: "e0141", Count: 30}, {AssemblyCode: "v0941", Count: 30}}

		result := bom.Aggregate(counts, nil, rules)

		assert.Equal(t, 0.0, result.Combined)
		assert.Empty(t, result.Totals)
	})

	t.Run("code matching both prefixes counts twice", func(t *testing.T) {
		custom := rules
		custom.PrefixA = "AB"
		custom.PrefixB = "ABC"

		result := bom.Aggregate([]bom.CountRow{{AssemblyCode: "ABCD", Count: 13}}, nil, custom)

		assert.Equal(t, 26.0, result.Combined)
		assert.Equal(t, 1, result.SyntheticUnits)
	})

	t.Run("inputs are not modified", func(t *testing.T) {
		counts := []bom.CountRow{{AssemblyCode: "K", Count: 2}}
		lookup := []bom.LookupRow{lookupRow("K", "M1", "1")}
		countsCopy := append([]bom.CountRow(nil), counts...)
		lookupCopy := append([]bom.LookupRow(nil), lookup...)

		_ = bom.Aggregate(counts, lookup, rules)

		assert.Equal(t, countsCopy, counts)
		assert.Equal(t, lookupCopy, lookup)
	})
}

func TestSyntheticUnitsThreshold(t *testing.T) {
	tests := []struct {
		combined float64
		want     int
	}{
		{0, 0},
		{24, 0},
		{24.99, 0},
		{25, 1},
		{49, 1},
		{49.5, 1},
		{50, 2},
		{124, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bom.SyntheticUnits(tt.combined, bom.DefaultThreshold), "combined=%v", tt.combined)
	}
	assert.Equal(t, 0, bom.SyntheticUnits(100, 0))
}

func TestAggregateThresholdBoundaries(t *testing.T) {
	for combined, want := range map[float64]int{24: 0, 25: 1, 49: 1, 50: 2} {
		counts := []bom.CountRow{
			{AssemblyCode: "E014-A", Count: combined - 4},
			{AssemblyCode: "V094-B", Count: 4},
		}

		result := bom.Aggregate(counts, nil, bom.DefaultRules())

		assert.Equal(t, want, result.SyntheticUnits, "combined=%v", combined)
		if want == 0 {
			assert.NotContains(t, result.Totals, bom.DefaultReservedCode)
		} else {
			assert.Equal(t, float64(want), result.Totals[bom.DefaultReservedCode])
		}
	}
}

func TestAggregateAdditive(t *testing.T) {
	lookup := []bom.LookupRow{
		lookupRow("A1", "M1", "1.5", "M2", "2"),
		lookupRow("B1", "M2", "0.25", "M3", "4"),
		lookupRow("E0141", "M1", "1"),
	}
	partA := []bom.CountRow{{AssemblyCode: "A1", Count: 2}, {AssemblyCode: "E0141", Count: 20}}
	partB := []bom.CountRow{{AssemblyCode: "B1", Count: 8}, {AssemblyCode: "A1", Count: 1}, {AssemblyCode: "V0941", Count: 10}}
	rules := bom.DefaultRules()

	whole := bom.Aggregate(append(append([]bom.CountRow{}, partA...), partB...), lookup, rules)
	sum := bom.Aggregate(partA, lookup, rules).Totals.Merge(bom.Aggregate(partB, lookup, rules).Totals)

	got := whole.Totals.Without(rules.ReservedCode)
	want := sum.Without(rules.ReservedCode)
	require.Len(t, got, len(want))
	for code, qty := range want {
		assert.InDelta(t, qty, got[code], 1e-9, code)
	}
	assert.Equal(t, 1, whole.SyntheticUnits)
}

func TestAggregateIdempotent(t *testing.T) {
	lookup := []bom.LookupRow{lookupRow("A1", "M1", "1.1", "M2", "x")}
	counts := []bom.CountRow{{AssemblyCode: "A1", Count: 3}, {AssemblyCode: "V0942", Count: 26}}

	first := bom.Aggregate(counts, lookup, bom.DefaultRules())
	second := bom.Aggregate(counts, lookup, bom.DefaultRules())

	assert.Equal(t, first, second)
}

func TestMissing(t *testing.T) {
	tests := []struct {
		name string
		have []string
		want []string
		exp  []string
	}{
		{"both empty", nil, nil, []string{}},
		{"full coverage", []string{"A", "B"}, []string{"B", "A", "C"}, []string{}},
		{"duplicates reported once", []string{"Z", "A", "Z"}, []string{"B"}, []string{"A", "Z"}},
		{"exact match only", []string{"7", "07", "a"}, []string{"7", "A"}, []string{"07", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bom.Missing(tt.have, tt.want)
			assert.Equal(t, tt.exp, got)
			for _, code := range got {
				assert.Contains(t, tt.have, code)
				assert.NotContains(t, tt.want, code)
			}
		})
	}
}

func TestUnmatchedIgnoresBlankInstanceCodes(t *testing.T) {
	counts := []bom.CountRow{{AssemblyCode: "A", Count: 1}}
	lookup := []bom.LookupRow{{InstanceCode: ""}, lookupRow("A")}

	assert.Empty(t, bom.Unmatched(counts, lookup))
	assert.Equal(t, []string{"A"}, bom.InstanceCodes(lookup))
}

func TestCleanCounts(t *testing.T) {
	raw := []bom.RawCountRow{
		{AssemblyCode: "A", Count: "3"},
		{AssemblyCode: "B", Count: "abc"},
		{AssemblyCode: "C", Count: "0"},
		{AssemblyCode: "D", Count: "-2"},
		{AssemblyCode: "", Count: "5"},
		{AssemblyCode: "E", Count: " 1.5 "},
	}

	got := bom.CleanCounts(raw)

	assert.Equal(t, []bom.CountRow{
		{AssemblyCode: "A", Count: 3},
		{AssemblyCode: "E", Count: 1.5},
	}, got)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2.5", 2.5, true},
		{" 4 ", 4, true},
		{"1e2", 100, true},
		{"-3", -3, true},
		{"", 0, false},
		{"abc", 0, false},
		{"2,5", 0, false},
		{"NaN", 0, false},
		{"inf", 0, false},
		{"0x1p-2", 0, false},
		{"-0X10", 0, false},
		{"+0x1", 0, false},
		{"0.5", 0.5, true},
	}
	for _, tt := range tests {
		got, ok := bom.ParseNumber(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestTotalsLines(t *testing.T) {
	totals := bom.Totals{"M2": 1.005, "M10": 2.675, "A": 3.333333, "M1": 0.125}

	lines := totals.Lines()

	require.Len(t, lines, 4)
	assert.Equal(t, []string{"A", "M1", "M10", "M2"}, []string{lines[0].Material, lines[1].Material, lines[2].Material, lines[3].Material})
	assert.Equal(t, 3.33, lines[0].Quantity)
	assert.Equal(t, 0.12, lines[1].Quantity)
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, bom.DefaultRules().Validate())

	bad := bom.DefaultRules()
	bad.Threshold = 0
	err := bad.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	bad = bom.DefaultRules()
	bad.ReservedCode = ""
	assert.Error(t, bad.Validate())
}

func TestRequiredLookupColumns(t *testing.T) {
	cols := bom.RequiredLookupColumns()

	require.Len(t, cols, 1+2*bom.SlotCount)
	assert.Equal(t, bom.InstanceColumn, cols[0])
	assert.Equal(t, "CODIGO MONTAGEM 01", cols[1])
	assert.Equal(t, "QUANTIDADE MONTAGEM 15", cols[len(cols)-1])
}
