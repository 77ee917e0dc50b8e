package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSource means the input dataset does not exist. Fatal.
	ErrMissingSource = errors.New("missing source dataset")

	// ErrSchemaMismatch means a required column is absent from the dataset header. Fatal.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrModelUnavailable means no classifier is configured or the model server
	// could not be reached.
	ErrModelUnavailable = errors.New("prediction model unavailable")
)

// WriteError records a single artifact that failed to persist. It never
// aborts the remaining writes.
type WriteError struct {
	Report string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write report %s: %v", e.Report, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
