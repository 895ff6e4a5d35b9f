package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WorkbookOptions selects the sheet and header row of a workbook source.
type WorkbookOptions struct {
	// Sheet names the sheet to read; empty means the first sheet.
	Sheet     string
	HeaderRow int
}

// ReadWorkbook loads one sheet of an .xlsx workbook. Cells are read as their
// formatted text, so percent-formatted cells arrive as "45.2%" and go through
// the same coercion as delimited text.
func ReadWorkbook(path string, opts WorkbookOptions) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, loadErr(path, "open", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, loadErr(path, "sheet", fmt.Errorf("%w: workbook has no sheets", ErrMalformed))
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, loadErr(path, "sheet", fmt.Errorf("%w: %v", ErrMalformed, err))
	}
	return fromRows(path, rows, opts.HeaderRow)
}
