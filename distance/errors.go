package distance

import "fmt"

// ErrUnknownMetric is returned when a selector does not name a supported metric.
type ErrUnknownMetric struct {
	Name string
}

func (e *ErrUnknownMetric) Error() string {
	return fmt.Sprintf("unknown network distance type: %q", e.Name)
}

// ErrDimensionMismatch indicates that two derived objects cannot be compared
// because their sizes differ.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}
