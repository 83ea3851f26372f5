package backend

import (
	"errors"
	"fmt"
)

// ErrNoHeader indicates that tabular input did not start with a header row.
var ErrNoHeader = errors.New("missing header row")

// ErrUnsupportedFormat indicates a file whose extension has no loader.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// LoadError describes a failure to load rows from a source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %q: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
