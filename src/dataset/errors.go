package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is wrapped when a declared column or join key is absent.
	ErrMissingColumn = errors.New("missing column")
	// ErrMalformed is wrapped when a source cannot be parsed into rows.
	ErrMalformed = errors.New("malformed source")
	// ErrUnsupportedFormat is wrapped when the source format cannot be handled.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// LoadError is the fatal error class of the loader: the source is unreadable,
// malformed, or lacks a declared column. It aborts the chart request.
type LoadError struct {
	Source string
	Op     string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s: %v", e.Source, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func loadErr(source, op string, err error) error {
	return &LoadError{Source: source, Op: op, Err: err}
}
