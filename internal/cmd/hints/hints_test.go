package hints

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/bomtally/internal/report"
	"github.com/agentstation/bomtally/internal/tables"
	"github.com/agentstation/bomtally/pkg/bom"
)

func TestForReport(t *testing.T) {
	t.Run("clean run", func(t *testing.T) {
		r := &report.Report{
			CountStats: tables.CountStats{Rows: 2, Kept: 2},
			Totals:     []bom.Line{{Material: "M1", Quantity: 1}},
		}
		assert.Empty(t, ForReport(r, ""))
	})

	t.Run("unmatched with export", func(t *testing.T) {
		r := &report.Report{
			CountStats: tables.CountStats{Rows: 3, Kept: 2, NonNumeric: 1},
			Unmatched:  []string{"A", "B"},
			Totals:     []bom.Line{{Material: "M1", Quantity: 1}},
		}
		hs := ForReport(r, "out/codigos_nao_encontrados.csv")
		if assert.Len(t, hs, 2) {
			assert.Equal(t, "cat out/codigos_nao_encontrados.csv", hs[0].Command)
			assert.Contains(t, hs[1].Message, "1 count rows")
		}
	})

	t.Run("no totals", func(t *testing.T) {
		r := &report.Report{CountStats: tables.CountStats{Rows: 1, Kept: 1}}
		hs := ForReport(r, "")
		if assert.Len(t, hs, 1) {
			assert.Contains(t, hs[0].Command, "bomtally inspect")
		}
	})
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, []*Hint{New("first"), NewCommand("second:", "run it")})
	assert.Equal(t, "i first\ni second:\n    run it\n", buf.String())
}
