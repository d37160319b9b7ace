// Package tables ingests the two input files of a reconciliation run: the
// delimited count report and the lookup spreadsheet. It turns them into the
// row types of package bom and reports file-format problems as typed errors
// before any aggregation runs.
package tables

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/bomtally/pkg/errors"
)

// Table is a parsed input file: a header row and string cells.
// Every row has exactly len(Headers) cells.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Options controls how input files are read.
type Options struct {
	// Delimiter separates fields in delimited text files.
	Delimiter rune

	// Sheet selects the spreadsheet sheet; empty means the first one.
	Sheet string
}

// DefaultOptions returns comma-delimited, first-sheet options.
func DefaultOptions() Options {
	return Options{Delimiter: ','}
}

// Format identifies an input file type.
type Format string

const (
	// FormatCSV is delimited text.
	FormatCSV Format = "csv"
	// FormatXLSX is an Office Open XML workbook.
	FormatXLSX Format = "xlsx"
)

// DetectFormat maps a file name to its format by extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", errors.NewValidationError("file", name, "unsupported file type: "+errors.ErrUnsupportedFormat.Error())
	}
}

// Read parses r according to the extension of name.
func Read(r io.Reader, name string, opts Options) (*Table, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatXLSX:
		return ReadXLSX(r, name, opts.Sheet)
	default:
		return ReadCSV(r, name, opts.Delimiter)
	}
}

// Open reads the table stored at path.
func Open(path string, opts Options) (*Table, error) {
	if _, err := DetectFormat(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck

	return Read(f, path, opts)
}

// Column returns the index of the header matching name, or -1.
// Headers are compared after Unicode NFC normalisation and trimming, so a
// spreadsheet that stores "Â" decomposed still matches.
func (t *Table) Column(name string) int {
	want := normalizeHeader(name)
	for i, h := range t.Headers {
		if h == want {
			return i
		}
	}
	return -1
}

// Require returns the index of every named column, or a
// MissingColumnsError listing the absent ones.
func (t *Table) Require(table string, names ...string) ([]int, error) {
	idx := make([]int, len(names))
	var missing []string
	for i, name := range names {
		idx[i] = t.Column(name)
		if idx[i] < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewMissingColumnsError(table, missing)
	}
	return idx, nil
}

// Head returns at most n rows.
func (t *Table) Head(n int) [][]string {
	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// newTable normalises headers and pads or trims rows to the header width.
func newTable(name string, records [][]string) *Table {
	t := &Table{Name: name}
	if len(records) == 0 {
		return t
	}

	t.Headers = make([]string, len(records[0]))
	for i, h := range records[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		t.Headers[i] = normalizeHeader(h)
	}

	width := len(t.Headers)
	t.Rows = make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlankRecord(rec) {
			continue
		}
		row := make([]string, width)
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t
}

func normalizeHeader(h string) string {
	return norm.NFC.String(strings.TrimSpace(h))
}

func isBlankRecord(rec []string) bool {
	for _, cell := range rec {
		if cell != "" {
			return false
		}
	}
	return true
}

// missingMarkers are the cell values read as "no value", the same tokens a
// dataframe reader treats as NA by default.
var missingMarkers = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// Value returns cell, or "" when the cell holds a missing-value marker.
func Value(cell string) string {
	if _, missing := missingMarkers[cell]; missing {
		return ""
	}
	return cell
}
