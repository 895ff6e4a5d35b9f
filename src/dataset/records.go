package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// provenancePrefix marks footnote lines in a sidecar column list.
const provenancePrefix = "[source"

// ReadColumnNames reads a sidecar column list: one name per line. Blank lines
// and provenance lines starting with "[source" are skipped.
func ReadColumnNames(r io.Reader) ([]string, error) {
	var cols []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, provenancePrefix) {
			continue
		}
		cols = append(cols, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cols, nil
}

// ReadRecords parses a JSON array of positional records and applies columns
// to each by position. JSON numbers become numeric cells, strings text, null
// missing. A record whose width differs from len(columns) is malformed.
func ReadRecords(r io.Reader, name string, columns []string) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, loadErr(name, "columns", fmt.Errorf("%w: empty column list", ErrMalformed))
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, loadErr(name, "decode", fmt.Errorf("%w: %v", ErrMalformed, err))
	}
	cols := uniqueNames(columns)
	ds := New(name, cols)
	for i, msg := range raw {
		var fields []interface{}
		d := json.NewDecoder(bytes.NewReader(msg))
		d.UseNumber()
		if err := d.Decode(&fields); err != nil {
			return nil, loadErr(name, "decode", fmt.Errorf("%w: record %d: %v", ErrMalformed, i, err))
		}
		if len(fields) != len(cols) {
			return nil, loadErr(name, "decode", fmt.Errorf("%w: record %d has %d fields, want %d",
				ErrMalformed, i, len(fields), len(cols)))
		}
		rec := make(Record, len(cols))
		for c, col := range cols {
			v, err := jsonValue(fields[c])
			if err != nil {
				return nil, loadErr(name, "decode", fmt.Errorf("%w: record %d column %q: %v", ErrMalformed, i, col, err))
			}
			rec[col] = v
		}
		ds.Append(rec)
	}
	return ds, nil
}

func jsonValue(v interface{}) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Missing(), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Text(t.String()), nil
		}
		return Number(f), nil
	case string:
		return Text(t), nil
	case bool:
		if t {
			return Text("true"), nil
		}
		return Text("false"), nil
	default:
		return Missing(), fmt.Errorf("nested value of type %T", v)
	}
}
