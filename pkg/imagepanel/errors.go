package imagepanel

import (
	"errors"
	"fmt"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/resolve"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidOptions indicates the options violate an invariant or could not be parsed.
var ErrInvalidOptions = errors.New("invalid options")

// ErrUnsupportedSource indicates the table source format is not recognised.
var ErrUnsupportedSource = errors.New("unsupported table source")

// Row projection errors.
var (
	ErrValueMissing = resolve.ErrValueMissing
	ErrTypeMismatch = resolve.ErrTypeMismatch
)

// RowError is the error returned when a row cannot be projected.
type RowError = resolve.RowError

// SourceError represents an error while loading a result table.
type SourceError struct {
	Path      string
	Component string // "open", "sheet", "query", "decode"
	Err       error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("load error in %q (%s): %v", e.Path, e.Component, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError.
func NewSourceError(path, component string, err error) *SourceError {
	return &SourceError{
		Path:      path,
		Component: component,
		Err:       err,
	}
}
