package dataset

import (
	"fmt"
	"strings"
)

// ColumnType is the declared role of a column.
type ColumnType uint8

const (
	TypeText ColumnType = iota
	TypeNumeric
	// TypePercent is numeric data whose canonical form is a 0-1 fraction.
	TypePercent
)

func (t ColumnType) String() string {
	switch t {
	case TypeNumeric:
		return "numeric"
	case TypePercent:
		return "percent"
	default:
		return "text"
	}
}

// Column describes one declared column.
type Column struct {
	Name string
	Type ColumnType
}

// Schema is the ordered list of columns a chart depends on.
type Schema []Column

// With returns s plus the named column. A column declared twice keeps its
// first position; a numeric declaration upgrades to percent, never back.
func (s Schema) With(name string, t ColumnType) Schema {
	if name == "" {
		return s
	}
	for i, c := range s {
		if c.Name != name {
			continue
		}
		if t > c.Type {
			s[i].Type = t
		}
		return s
	}
	return append(s, Column{Name: name, Type: t})
}

// Lookup returns the declaration for name.
func (s Schema) Lookup(name string) (Column, bool) {
	for _, c := range s {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Names returns the declared columns of the given types, in order.
func (s Schema) Names(types ...ColumnType) []string {
	var out []string
	for _, c := range s {
		for _, t := range types {
			if c.Type == t {
				out = append(out, c.Name)
				break
			}
		}
	}
	return out
}

// Validate fails with a LoadError listing every declared column d lacks.
func (s Schema) Validate(d *Dataset) error {
	var missing []string
	for _, c := range s {
		if !d.HasColumn(c.Name) {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		return loadErr(d.Name, "validate", fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", ")))
	}
	return nil
}
