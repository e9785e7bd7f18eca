package proposals

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput marks failures caused by the input file itself: unreadable,
// malformed, or missing expected columns.
var ErrInvalidInput = errors.New("invalid input")

// ErrMissingColumn is matched by errors.Is for any MissingColumnsError.
var ErrMissingColumn = fmt.Errorf("%w: missing column", ErrInvalidInput)

// MissingColumnsError lists every expected column absent from the input.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	quoted := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return fmt.Sprintf("missing column(s): %s", strings.Join(quoted, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumn }

// ParseError reports a cell that could not be interpreted. Row is the 1-based
// data row (the header is not counted).
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, column %q: cannot parse %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrInvalidInput }

func inputError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidInput, op, err)
}
