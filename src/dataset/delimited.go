package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DelimitedOptions controls how delimited text is read.
type DelimitedOptions struct {
	// HeaderRow is the 0-based index of the header line. Lines before it are
	// preamble (e.g. a grouping row above the real header) and are discarded.
	HeaderRow int
	// Comma is the field delimiter; zero means ','.
	Comma rune
}

// ReadDelimited parses delimited text into a Dataset. name is used in errors.
// Every cell is kept as raw text; typing is the Normalizer's job.
func ReadDelimited(r io.Reader, name string, opts DelimitedOptions) (*Dataset, error) {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	// Preamble lines are usually narrower than the header.
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, loadErr(name, "read", fmt.Errorf("%w: %v", ErrMalformed, err))
		}
		rows = append(rows, row)
	}
	return fromRows(name, rows, opts.HeaderRow)
}

// fromRows builds a Dataset from a grid of text cells, with the header at
// rows[headerRow]. Short rows are padded with missing cells; rows that are
// entirely blank are skipped.
func fromRows(name string, rows [][]string, headerRow int) (*Dataset, error) {
	if headerRow < 0 {
		return nil, loadErr(name, "header", fmt.Errorf("%w: negative header row %d", ErrMalformed, headerRow))
	}
	if headerRow >= len(rows) {
		return nil, loadErr(name, "header", fmt.Errorf("%w: header row %d not found (%d rows)", ErrMalformed, headerRow, len(rows)))
	}
	header := rows[headerRow]
	if isBlankRow(header) {
		return nil, loadErr(name, "header", fmt.Errorf("%w: header row %d is empty", ErrMalformed, headerRow))
	}
	columns := uniqueNames(header)
	ds := New(name, columns)
	for i, row := range rows[headerRow+1:] {
		if isBlankRow(row) {
			continue
		}
		if extra := trimTrailingBlank(row); len(extra) > len(columns) {
			return nil, loadErr(name, "read", fmt.Errorf("%w: line %d has %d fields, header has %d",
				ErrMalformed, headerRow+i+2, len(extra), len(columns)))
		}
		rec := make(Record, len(columns))
		for c, col := range columns {
			if c < len(row) {
				rec[col] = Text(row[c])
			} else {
				rec[col] = Missing()
			}
		}
		ds.Append(rec)
	}
	return ds, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimTrailingBlank(row []string) []string {
	n := len(row)
	for n > 0 && strings.TrimSpace(row[n-1]) == "" {
		n--
	}
	return row[:n]
}
