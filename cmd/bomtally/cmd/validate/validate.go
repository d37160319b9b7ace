// Package validate provides the validate command.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/bomtally/internal/appcontext"
	"github.com/agentstation/bomtally/internal/cmd/cmdutil"
	"github.com/agentstation/bomtally/internal/cmd/emoji"
	"github.com/agentstation/bomtally/internal/cmd/globals"
	"github.com/agentstation/bomtally/internal/cmd/output"
	"github.com/agentstation/bomtally/internal/cmd/table"
	"github.com/agentstation/bomtally/internal/report"
	"github.com/agentstation/bomtally/internal/tables"
	"github.com/agentstation/bomtally/pkg/bom"
	"github.com/agentstation/bomtally/pkg/errors"
	"github.com/agentstation/bomtally/pkg/logging"
)

// Result is the machine-readable outcome of a validation.
type Result struct {
	CountRows  int      `json:"count_rows" yaml:"count_rows"`
	LookupRows int      `json:"lookup_rows" yaml:"lookup_rows"`
	Unmatched  []string `json:"unmatched" yaml:"unmatched"`
	Valid      bool     `json:"valid" yaml:"valid"`
}

// NewCommand creates the validate command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var strict bool
	var input *cmdutil.InputFlags

	cmd := &cobra.Command{
		Use:     "validate <counts-file> <lookup-file>",
		Aliases: []string{"check"},
		GroupID: "core",
		Short:   "List counted assembly codes missing from the lookup table",
		Long: `Validate checks lookup coverage without computing totals or writing
any file. Every counted assembly code without a lookup row is listed once,
in the order it first appears.

With --strict the command fails when any code is missing, which makes it
usable as a gate in scripts.`,
		Example: `  bomtally validate contagem.csv lookup.xlsx
  bomtally validate contagem.csv lookup.xlsx --strict`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tableOpts, err := input.Options(cmd, app.TableOptions())
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
			in, err := report.Load(ctx, counts, lookup)
			if err != nil {
				return err
			}

			res := Result{
				CountRows:  in.CountStats.Kept,
				LookupRows: len(in.Lookup),
				Unmatched:  bom.Unmatched(in.Counts, in.Lookup),
			}
			res.Valid = len(res.Unmatched) == 0

			if err := render(cmd, app, res); err != nil {
				return err
			}
			if strict && !res.Valid {
				return &errors.UnmatchedError{Codes: res.Unmatched}
			}
			return nil
		},
	}

	input = cmdutil.AddInputFlags(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when any code is unmatched")

	return cmd
}

func render(cmd *cobra.Command, app appcontext.Interface, res Result) error {
	flags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	format, err := output.Resolve(flags.Output, app.OutputFormat())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	switch format {
	case output.FormatTable:
		if res.Valid {
			fmt.Fprintf(w, "%s All %d counted codes have a lookup row\n", emoji.Success, res.CountRows)
			return nil
		}
		fmt.Fprintf(w, "%s %d assembly codes are missing from the lookup table\n", emoji.Warning, len(res.Unmatched))
		return output.NewFormatter(format).Format(w, table.UnmatchedToTableData(res.Unmatched))
	case output.FormatCSV:
		return output.NewFormatter(format).Format(w, table.UnmatchedToTableData(res.Unmatched))
	default:
		return output.NewFormatter(format).Format(w, res)
	}
}
