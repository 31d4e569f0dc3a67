package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPoolClosed is returned when submitting to a closed WorkerPool.
	ErrPoolClosed = errors.New("worker pool closed")

	// ErrIncomplete is reported when items never produced a result.
	ErrIncomplete = errors.New("batch incomplete")

	// ErrDuplicateResult is reported when an item produced more than one result.
	ErrDuplicateResult = errors.New("duplicate result")
)

// PanicError wraps a value recovered from a panicking item.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// ItemError records the final failure of one item.
type ItemError struct {
	Index    int
	Attempts int
	Err      error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("item %d failed after %d attempt(s): %v", e.Index, e.Attempts, e.Err)
}

func (e ItemError) Unwrap() error { return e.Err }

// BatchError aggregates the failures of a batch.
type BatchError struct {
	Total      int
	Failed     []ItemError
	Missing    []int
	Duplicates int
}

func (e *BatchError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d of %d items failed", len(e.Failed), e.Total)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&sb, ", %d without result", len(e.Missing))
	}
	if e.Duplicates > 0 {
		fmt.Fprintf(&sb, ", %d duplicate result(s)", e.Duplicates)
	}
	if len(e.Failed) > 0 {
		fmt.Fprintf(&sb, " (first: %v)", e.Failed[0])
	}
	return sb.String()
}

// Unwrap exposes every item error plus ErrIncomplete and ErrDuplicateResult
// when applicable, so errors.Is and errors.As see through the batch.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed)+2)
	for _, f := range e.Failed {
		errs = append(errs, f)
	}
	if len(e.Missing) > 0 {
		errs = append(errs, ErrIncomplete)
	}
	if e.Duplicates > 0 {
		errs = append(errs, ErrDuplicateResult)
	}
	return errs
}
