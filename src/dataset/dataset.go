// Package dataset holds the tabular model shared by every pipeline stage and
// the loaders that build it from delimited text, JSON record lists and
// spreadsheet workbooks.
//
// A Dataset is deliberately schemaless at load time: columns are runtime
// names and cells are Values that may be text, numbers or missing. Callers
// declare the columns they depend on with a Schema and check it with
// Schema.Validate before using them.
package dataset

import (
	"strconv"
	"strings"
)

// Kind classifies a Value.
type Kind uint8

const (
	KindMissing Kind = iota
	KindText
	KindNumber
)

// Value is one cell.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Missing returns the null cell.
func Missing() Value { return Value{} }

// Text returns a raw text cell. The empty string is still text; only the
// Normalizer decides it is unparsable.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number returns a numeric cell.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric content. ok is false for text and missing cells.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// String renders the cell as text; missing cells render as "".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	default:
		return ""
	}
}

// Record is one row keyed by column name.
type Record map[string]Value

// Get returns the cell for col, or a missing Value when the record has none.
func (r Record) Get(col string) Value {
	if v, ok := r[col]; ok {
		return v
	}
	return Missing()
}

// Dataset is an ordered set of Records sharing one column list.
type Dataset struct {
	// Name identifies the source in logs and errors (usually the file path).
	Name    string
	Records []Record

	columns    []string
	fractional map[string]bool
}

// New creates an empty Dataset with the given column order.
func New(name string, columns []string) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Dataset{Name: name, columns: cols, fractional: map[string]bool{}}
}

// Columns returns a copy of the column order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// HasColumn reports whether col is part of the column list.
func (d *Dataset) HasColumn(col string) bool {
	for _, c := range d.columns {
		if c == col {
			return true
		}
	}
	return false
}

// AddColumn appends col to the column list if it is not present yet.
func (d *Dataset) AddColumn(col string) {
	if !d.HasColumn(col) {
		d.columns = append(d.columns, col)
	}
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Records) }

// Append adds a record. Cells for unknown columns are kept but not listed.
func (d *Dataset) Append(r Record) { d.Records = append(d.Records, r) }

// Values returns the column's cells in record order.
func (d *Dataset) Values(col string) []Value {
	out := make([]Value, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Get(col)
	}
	return out
}

// Floats returns the numeric cells of col, skipping anything else.
func (d *Dataset) Floats(col string) []float64 {
	out := make([]float64, 0, len(d.Records))
	for _, r := range d.Records {
		if f, ok := r.Get(col).Float(); ok {
			out = append(out, f)
		}
	}
	return out
}

// MarkFractional records that col is on the canonical 0-1 scale.
func (d *Dataset) MarkFractional(col string) {
	if d.fractional == nil {
		d.fractional = map[string]bool{}
	}
	d.fractional[col] = true
}

// IsFractional reports whether col was already converted to the 0-1 scale.
func (d *Dataset) IsFractional(col string) bool { return d.fractional[col] }

// Filter returns a Dataset holding the records for which keep is true. The
// records themselves are shared, not copied.
func (d *Dataset) Filter(keep func(Record) bool) *Dataset {
	out := New(d.Name, d.columns)
	for c := range d.fractional {
		out.fractional[c] = true
	}
	for _, r := range d.Records {
		if keep(r) {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// uniqueNames disambiguates repeated header names as Name, Name.1, Name.2 and
// names blank headers "Unnamed: <index>".
func uniqueNames(raw []string) []string {
	out := make([]string, len(raw))
	seen := map[string]int{}
	for i, n := range raw {
		n = strings.TrimSpace(n)
		if n == "" {
			n = "Unnamed: " + strconv.Itoa(i)
		}
		name := n
		for {
			cnt, dup := seen[name]
			if !dup {
				break
			}
			seen[name] = cnt + 1
			name = n + "." + strconv.Itoa(cnt+1)
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}
