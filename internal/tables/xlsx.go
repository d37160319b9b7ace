package tables

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/bomtally/pkg/errors"
)

// ReadXLSX parses one sheet of a workbook; an empty sheet name selects the
// first sheet. Cells are read raw, so numbers keep their stored value rather
// than the sheet's display format.
func ReadXLSX(r io.Reader, name, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.WrapParse(string(FormatXLSX), name, err)
	}
	defer f.Close() //nolint:errcheck

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.NewParseError(string(FormatXLSX), name, "workbook has no sheets", nil)
		}
		sheet = sheets[0]
	}

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, errors.NewNotFoundError("sheet", sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.WrapParse(string(FormatXLSX), name, err)
	}
	if len(rows) == 0 {
		return nil, errors.NewParseError(string(FormatXLSX), name, "sheet "+sheet+" has no header row", nil)
	}

	return newTable(name, rows), nil
}
