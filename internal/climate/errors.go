package climate

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is returned when a non-empty field cannot be converted to
	// a number or a date.
	ErrParse = errors.New("parse error")

	// ErrFormat is returned when a data line does not have exactly four fields.
	ErrFormat = errors.New("format error")

	// ErrEmptyInput is returned by Reduce when no row survived filtering.
	ErrEmptyInput = errors.New("no usable rows in input")
)

// RowError ties an error to the 1-based line of the input it came from.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
