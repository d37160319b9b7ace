// Package cmdutil provides shared flags and configuration utilities for bomtally commands.
package cmdutil

import (
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/agentstation/bomtally/internal/tables"
	"github.com/agentstation/bomtally/pkg/bom"
	"github.com/agentstation/bomtally/pkg/errors"
)

// RulesFlags holds per-invocation overrides of the reconciliation rules.
type RulesFlags struct {
	PrefixA      string
	PrefixB      string
	Threshold    int
	ReservedCode string
}

// AddRulesFlags adds the rule override flags to a command.
func AddRulesFlags(cmd *cobra.Command) *RulesFlags {
	flags := &RulesFlags{}
	def := bom.DefaultRules()

	cmd.Flags().StringVar(&flags.PrefixA, "prefix-a", def.PrefixA,
		"First material prefix counted toward synthetic units")
	cmd.Flags().StringVar(&flags.PrefixB, "prefix-b", def.PrefixB,
		"Second material prefix counted toward synthetic units")
	cmd.Flags().IntVar(&flags.Threshold, "threshold", def.Threshold,
		"Combined quantity that yields one synthetic unit")
	cmd.Flags().StringVar(&flags.ReservedCode, "reserved-code", def.ReservedCode,
		"Material code credited with synthetic units")

	return flags
}

// Apply overlays the flags the user set explicitly onto base.
func (f *RulesFlags) Apply(cmd *cobra.Command, base bom.Rules) (bom.Rules, error) {
	rules := base
	if cmd.Flags().Changed("prefix-a") {
		rules.PrefixA = f.PrefixA
	}
	if cmd.Flags().Changed("prefix-b") {
		rules.PrefixB = f.PrefixB
	}
	if cmd.Flags().Changed("threshold") {
		rules.Threshold = f.Threshold
	}
	if cmd.Flags().Changed("reserved-code") {
		rules.ReservedCode = f.ReservedCode
	}
	if err := rules.Validate(); err != nil {
		return bom.Rules{}, err
	}
	return rules, nil
}

// InputFlags holds options for reading input tables.
type InputFlags struct {
	Sheet     string
	Delimiter string
}

// AddInputFlags adds table reading flags to a command.
func AddInputFlags(cmd *cobra.Command) *InputFlags {
	flags := &InputFlags{}

	cmd.Flags().StringVar(&flags.Sheet, "sheet", "",
		"Worksheet to read from spreadsheet inputs (default: first sheet)")
	cmd.Flags().StringVar(&flags.Delimiter, "delimiter", "",
		"Field delimiter for delimited text inputs (default: ,)")

	return flags
}

// Options merges the flags the user set onto base.
func (f *InputFlags) Options(cmd *cobra.Command, base tables.Options) (tables.Options, error) {
	opts := base
	if cmd.Flags().Changed("sheet") {
		opts.Sheet = f.Sheet
	}
	if cmd.Flags().Changed("delimiter") {
		r, err := ParseDelimiter(f.Delimiter)
		if err != nil {
			return tables.Options{}, err
		}
		opts.Delimiter = r
	}
	return opts, nil
}

// ParseDelimiter converts a one-character string to a delimiter rune.
// The literal "\t" is accepted for tab.
func ParseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.NewValidationError("delimiter", s, "must be a single character")
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '\r' || r == '\n' || r == '"' || r == utf8.RuneError {
		return 0, errors.NewValidationError("delimiter", s, "not a valid field delimiter")
	}
	return r, nil
}

// ExportFlags controls where report files are written.
type ExportFlags struct {
	OutDir   string
	NoExport bool
}

// AddExportFlags adds export flags to a command.
func AddExportFlags(cmd *cobra.Command) *ExportFlags {
	flags := &ExportFlags{}

	cmd.Flags().StringVar(&flags.OutDir, "out-dir", "",
		"Directory for exported CSV files (default: current directory)")
	cmd.Flags().BoolVar(&flags.NoExport, "no-export", false,
		"Skip writing CSV files")

	return flags
}
