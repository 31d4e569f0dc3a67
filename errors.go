package netcmp

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("worker count must be positive")

	// ErrNoEntities is returned when the store holds no signature files.
	ErrNoEntities = errors.New("no signature files found")
)

// MissingNetworkError indicates a signature without its graph file.
type MissingNetworkError struct {
	Entity string
	Key    string
}

func (e *MissingNetworkError) Error() string {
	return fmt.Sprintf("network file missing for %s: %s", e.Entity, e.Key)
}

// StageError wraps a failure of one run stage.
//
// The original underlying error (usually an *engine.BatchError) can be
// accessed via errors.Unwrap.
type StageError struct {
	Stage string
	cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.cause)
}

func (e *StageError) Unwrap() error { return e.cause }
