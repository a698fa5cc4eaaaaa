package resolve

import (
	"errors"
	"fmt"
)

// ErrValueMissing indicates a bound field has no value at the requested row.
var ErrValueMissing = errors.New("value missing")

// ErrTypeMismatch indicates a value does not have the type its field declares.
var ErrTypeMismatch = errors.New("type mismatch")

// RowError represents a failure while projecting a single row.
type RowError struct {
	Row   int
	Field string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, field %q: %v", e.Row, e.Field, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// NewRowError creates a new RowError.
func NewRowError(row int, field string, err error) *RowError {
	return &RowError{
		Row:   row,
		Field: field,
		Err:   err,
	}
}
