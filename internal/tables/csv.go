package tables

import (
	"encoding/csv"
	"io"

	"github.com/agentstation/bomtally/pkg/errors"
)

// ReadCSV parses delimited text. The first record is the header row; a
// leading UTF-8 byte order mark is dropped and ragged rows are padded.
func ReadCSV(r io.Reader, name string, delimiter rune) (*Table, error) {
	if delimiter == 0 {
		delimiter = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, &errors.ParseError{
				Format:  string(FormatCSV),
				File:    name,
				Line:    perr.Line,
				Column:  perr.Column,
				Message: perr.Err.Error(),
				Err:     err,
			}
		}
		return nil, errors.WrapParse(string(FormatCSV), name, err)
	}
	if len(records) == 0 {
		return nil, errors.NewParseError(string(FormatCSV), name, "no header row", nil)
	}

	return newTable(name, records), nil
}
