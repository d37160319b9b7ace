package report

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agentstation/bomtally/pkg/bom"
	"github.com/agentstation/bomtally/pkg/constants"
	"github.com/agentstation/bomtally/pkg/errors"
)

// WriteUnmatchedCSV writes the single-column unmatched-codes table.
func WriteUnmatchedCSV(w io.Writer, codes []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{constants.UnmatchedHeader}); err != nil {
		return err
	}
	for _, code := range codes {
		if err := cw.Write([]string{code}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTotalsCSV writes the material totals table.
func WriteTotalsCSV(w io.Writer, lines []bom.Line) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{constants.MaterialHeader, constants.QuantityHeader}); err != nil {
		return err
	}
	for _, line := range lines {
		if err := cw.Write([]string{line.Material, FormatQuantity(line.Quantity)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatQuantity renders a quantity in its shortest form, always with a
// decimal part: 12.5 -> "12.5", 3 -> "3.0".
func FormatQuantity(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Files names the two exported CSV files.
type Files struct {
	Unmatched string
	Totals    string
}

// DefaultFiles returns the standard export file names.
func DefaultFiles() Files {
	return Files{
		Unmatched: constants.UnmatchedFileName,
		Totals:    constants.TotalsFileName,
	}
}

// Export writes both tables into dir and returns the written paths. The
// unmatched file is only written when there are unmatched codes.
func (r *Report) Export(dir string, files Files) ([]string, error) {
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}

	var written []string
	if len(r.Unmatched) > 0 {
		path := filepath.Join(dir, files.Unmatched)
		if err := writeFile(path, func(w io.Writer) error { return WriteUnmatchedCSV(w, r.Unmatched) }); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	path := filepath.Join(dir, files.Totals)
	if err := writeFile(path, func(w io.Writer) error { return WriteTotalsCSV(w, r.Totals) }); err != nil {
		return written, err
	}
	return append(written, path), nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	return errors.WrapIO("close", path, f.Close())
}
