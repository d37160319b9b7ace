// Package reconcile provides the reconcile command.
package reconcile

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/bomtally/internal/appcontext"
	"github.com/agentstation/bomtally/internal/cmd/cmdutil"
	"github.com/agentstation/bomtally/internal/cmd/emoji"
	"github.com/agentstation/bomtally/internal/cmd/globals"
	"github.com/agentstation/bomtally/internal/cmd/hints"
	"github.com/agentstation/bomtally/internal/cmd/output"
	"github.com/agentstation/bomtally/internal/cmd/table"
	"github.com/agentstation/bomtally/internal/report"
	"github.com/agentstation/bomtally/internal/tables"
	"github.com/agentstation/bomtally/pkg/logging"
)

type options struct {
	rules  *cmdutil.RulesFlags
	input  *cmdutil.InputFlags
	export *cmdutil.ExportFlags
}

// NewCommand creates the reconcile command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:     "reconcile <counts-file> <lookup-file>",
		Aliases: []string{"run"},
		GroupID: "core",
		Short:   "Reconcile a count report against the lookup table",
		Long: `Reconcile reads the count report and the lookup table, lists the
assembly codes missing from the lookup table and totals the material
quantities the counts imply.

Counted codes starting with either watched prefix are summed; every full
threshold of that sum adds one unit of the reserved material code.

Both tables are exported as CSV into --out-dir unless --no-export is set.
Inputs may be CSV (.csv, .txt) or Excel workbooks (.xlsx, .xlsm).`,
		Example: `  bomtally reconcile contagem.csv lookup.xlsx
  bomtally reconcile contagem.csv lookup.xlsx --out-dir reports/
  bomtally reconcile contagem.csv lookup.xlsx --threshold 30 --format json
  bomtally reconcile contagem.csv lookup.xlsx --no-export -o csv > totals.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, app, opts)
		},
	}

	opts.rules = cmdutil.AddRulesFlags(cmd)
	opts.input = cmdutil.AddInputFlags(cmd)
	opts.export = cmdutil.AddExportFlags(cmd)

	return cmd
}

func run(cmd *cobra.Command, args []string, app appcontext.Interface, opts *options) error {
	// Output settings are resolved first so a bad --output fails before
	// any file is written.
	flags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	format, err := output.Resolve(flags.Output, app.OutputFormat())
	if err != nil {
		return err
	}

	rules, err := opts.rules.Apply(cmd, app.Rules())
	if err != nil {
		return err
	}
	tableOpts, err := opts.input.Options(cmd, app.TableOptions())
	if err != nil {
		return err
	}
	ctx := logging.WithLogger(cmd.Context(), app.Logger())

	counts, err := tables.Open(args[0], tableOpts)
	if err != nil {
		return err
	}
	lookup, err := tables.Open(args[1], tableOpts)
	if err != nil {
		return err
	}

	r, err := report.Reconcile(ctx, "cli", counts, lookup, rules)
	if err != nil {
		return err
	}

	var written []string
	if !opts.export.NoExport {
		dir := opts.export.OutDir
		if dir == "" {
			dir = app.OutputDir()
		}
		written, err = r.Export(dir, app.ExportFiles())
		if err != nil {
			return err
		}
		app.Logger().Debug().Strs("files", written).Msg("Report exported")
	}

	w := cmd.OutOrStdout()

	switch format {
	case output.FormatTable:
		unmatchedFile := ""
		if len(written) > 0 && len(r.Unmatched) > 0 {
			unmatchedFile = written[0]
		}
		return renderTable(w, r, written, unmatchedFile, flags)
	case output.FormatCSV:
		return output.NewFormatter(format).Format(w, table.TotalsToTableData(r))
	default:
		return output.NewFormatter(format).Format(w, r)
	}
}

// renderTable prints the run the way an operator reads it: coverage first,
// then the missing codes, the totals and the synthetic-unit note.
func renderTable(w io.Writer, r *report.Report, written []string, unmatchedFile string, flags *globals.Flags) error {
	formatter := output.NewFormatter(output.FormatTable)

	if flags.Verbose {
		if err := formatter.Format(w, table.SummaryToTableData(r)); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if len(r.Unmatched) == 0 {
		fmt.Fprintf(w, "%s %s\n\n", emoji.Success, r.CoverageMessage())
	} else {
		fmt.Fprintf(w, "%s %s\n", emoji.Warning, r.CoverageMessage())
		if err := formatter.Format(w, table.UnmatchedToTableData(r.Unmatched)); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if err := formatter.Format(w, table.TotalsToTableData(r)); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%s %s\n", emoji.Info, r.Message)

	for _, path := range written {
		fmt.Fprintf(w, "%s Wrote %s\n", emoji.Success, path)
	}

	if !flags.Quiet {
		if hs := hints.ForReport(r, unmatchedFile); len(hs) > 0 {
			fmt.Fprintln(w)
			hints.Render(w, hs)
		}
	}
	return nil
}
