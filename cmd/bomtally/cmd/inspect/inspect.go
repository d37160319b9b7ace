// Package inspect provides the inspect command.
package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/bomtally/internal/appcontext"
	"github.com/agentstation/bomtally/internal/cmd/cmdutil"
	"github.com/agentstation/bomtally/internal/cmd/emoji"
	"github.com/agentstation/bomtally/internal/cmd/globals"
	"github.com/agentstation/bomtally/internal/cmd/output"
	"github.com/agentstation/bomtally/internal/cmd/table"
	"github.com/agentstation/bomtally/internal/tables"
	"github.com/agentstation/bomtally/pkg/bom"
	"github.com/agentstation/bomtally/pkg/constants"
	"github.com/agentstation/bomtally/pkg/errors"
)

// Role reports whether a table carries the columns of one input role.
type Role struct {
	Name    string   `json:"name" yaml:"name"`
	Ready   bool     `json:"ready" yaml:"ready"`
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Summary describes an input file.
type Summary struct {
	File    string     `json:"file" yaml:"file"`
	Columns []string   `json:"columns" yaml:"columns"`
	Rows    int        `json:"rows" yaml:"rows"`
	Roles   []Role     `json:"roles" yaml:"roles"`
	Preview [][]string `json:"preview" yaml:"preview"`
}

// NewCommand creates the inspect command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var rows int
	var input *cmdutil.InputFlags

	cmd := &cobra.Command{
		Use:     "inspect <file>",
		GroupID: "management",
		Short:   "Show the columns and first rows of an input file",
		Long: `Inspect reads one input file the same way reconcile does and shows its
normalised columns, a preview of its first rows and whether it carries the
columns required of a count report or a lookup table.`,
		Example: `  bomtally inspect contagem.csv
  bomtally inspect lookup.xlsx --sheet Plan1 --rows 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows < 0 {
				return errors.NewValidationError("rows", rows, "must not be negative")
			}
			tableOpts, err := input.Options(cmd, app.TableOptions())
			if err != nil {
				return err
			}
			t, err := tables.Open(args[0], tableOpts)
			if err != nil {
				return err
			}
			app.Logger().Debug().
				Str("file", t.Name).
				Int("columns", len(t.Headers)).
				Int("rows", len(t.Rows)).
				Msg("Table read")

			return render(cmd, app, t, rows)
		},
	}

	input = cmdutil.AddInputFlags(cmd)
	cmd.Flags().IntVarP(&rows, "rows", "n", constants.DefaultPreviewRows, "Number of rows to preview")

	return cmd
}

// Summarize builds the inspection summary of t.
func Summarize(t *tables.Table, rows int) Summary {
	return Summary{
		File:    t.Name,
		Columns: t.Headers,
		Rows:    len(t.Rows),
		Roles: []Role{
			role(t, "count report", bom.RequiredCountColumns()),
			role(t, "lookup table", bom.RequiredLookupColumns()),
		},
		Preview: t.Head(rows),
	}
}

func role(t *tables.Table, name string, required []string) Role {
	r := Role{Name: name}
	if _, err := t.Require(name, required...); err != nil {
		var mc *errors.MissingColumnsError
		if errors.As(err, &mc) {
			r.Missing = mc.Columns
		}
		return r
	}
	r.Ready = true
	return r
}

func render(cmd *cobra.Command, app appcontext.Interface, t *tables.Table, rows int) error {
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
		return renderTable(w, t, rows, flags.Quiet)
	case output.FormatCSV:
		return output.NewFormatter(format).Format(w, table.PreviewToTableData(t, rows))
	default:
		return output.NewFormatter(format).Format(w, Summarize(t, rows))
	}
}

func renderTable(w io.Writer, t *tables.Table, rows int, quiet bool) error {
	formatter := output.NewFormatter(output.FormatTable)
	s := Summarize(t, rows)

	fmt.Fprintf(w, "%s: %d columns, %d rows\n\n", s.File, len(s.Columns), s.Rows)
	if !quiet {
		if err := formatter.Format(w, table.ColumnsToTableData(t)); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	if rows > 0 && s.Rows > 0 {
		if err := formatter.Format(w, table.PreviewToTableData(t, rows)); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	for _, r := range s.Roles {
		if r.Ready {
			fmt.Fprintf(w, "%s Usable as %s\n", emoji.Status(true), r.Name)
			continue
		}
		missing := r.Missing
		if len(missing) > 4 {
			missing = append(missing[:4:4], fmt.Sprintf("and %d more", len(r.Missing)-4))
		}
		fmt.Fprintf(w, "%s Not a %s: missing %s\n", emoji.Status(false), r.Name, strings.Join(missing, ", "))
	}
	return nil
}
