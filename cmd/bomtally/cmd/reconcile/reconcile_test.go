package reconcile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bomtally/internal/appcontext"
	"github.com/agentstation/bomtally/internal/cmd/globals"
	"github.com/agentstation/bomtally/internal/report"
	"github.com/agentstation/bomtally/pkg/bom"
	"github.com/agentstation/bomtally/pkg/constants"
)

const countsCSV = "Codigo_Montagem,Contagem\nX001,2\nE0141,20\nV0942,10\n"

func writeInputs(t *testing.T) (counts, lookup string) {
	t.Helper()
	dir := t.TempDir()

	header := []string{bom.InstanceColumn}
	for _, c := range bom.SlotColumns {
		header = append(header, c.Material, c.Quantity)
	}
	row := make([]string, len(header))
	copy(row, []string{"X001", "M1", "1.5"})

	counts = filepath.Join(dir, "contagem.csv")
	lookup = filepath.Join(dir, "lookup.csv")
	require.NoError(t, os.WriteFile(counts, []byte(countsCSV), 0o600))
	require.NoError(t, os.WriteFile(lookup, []byte(strings.Join(header, ",")+"\n"+strings.Join(row, ",")+"\n"), 0o600))
	return counts, lookup
}

// execute runs the command under a root carrying the global flags.
func execute(t *testing.T, app appcontext.Interface, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "bomtally", SilenceUsage: true, SilenceErrors: true}
	root.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	globals.AddFlags(root)
	root.AddCommand(NewCommand(app))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"reconcile"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestReconcileUsesAppRules(t *testing.T) {
	counts, lookup := writeInputs(t)
	app := &appcontext.Mock{
		Format: "json",
		RulesFunc: func() bom.Rules {
			rules := bom.DefaultRules()
			rules.Threshold = 10
			return rules
		},
	}

	out, err := execute(t, app, counts, lookup, "--no-export")
	require.NoError(t, err)

	var r report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 3, r.SyntheticUnits)
	assert.Equal(t, 30.0, r.Combined)
	assert.Equal(t, []bom.Line{
		{Material: "EPC-23004-01", Quantity: 3},
		{Material: "M1", Quantity: 3},
	}, r.Totals)
}

func TestReconcileFlagOverridesAppRules(t *testing.T) {
	counts, lookup := writeInputs(t)
	app := &appcontext.Mock{
		Format: "json",
		RulesFunc: func() bom.Rules {
			rules := bom.DefaultRules()
			rules.Threshold = 10
			return rules
		},
	}

	out, err := execute(t, app, counts, lookup, "--no-export", "--threshold", "15")
	require.NoError(t, err)

	var r report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 2, r.SyntheticUnits)
}

func TestReconcileExportsToAppOutputDir(t *testing.T) {
	counts, lookup := writeInputs(t)
	outDir := t.TempDir()
	app := &appcontext.Mock{
		Format:        "table",
		OutputDirFunc: func() string { return outDir },
	}

	out, err := execute(t, app, counts, lookup)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, constants.UnmatchedFileName))
	assert.FileExists(t, filepath.Join(outDir, constants.TotalsFileName))
	assert.Contains(t, out, "Wrote "+filepath.Join(outDir, constants.TotalsFileName))
}

func TestReconcileInvalidOutputWritesNothing(t *testing.T) {
	counts, lookup := writeInputs(t)
	outDir := t.TempDir()
	app := &appcontext.Mock{OutputDirFunc: func() string { return outDir }}

	_, err := execute(t, app, counts, lookup, "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
