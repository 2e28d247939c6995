package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration signals invalid construction input: empty or
	// non-numeric data, a missing combiner or an unknown aggregation mode.
	ErrConfiguration = errors.New("tree: invalid configuration")
	// ErrIndexOutOfBounds signals an update or query outside [0, size).
	ErrIndexOutOfBounds = errors.New("tree: index out of bounds")
	// ErrInvalidOperation signals an operation the structure does not support
	// in the current context.
	ErrInvalidOperation = errors.New("tree: invalid operation")
	// ErrInvariant is reported by Check when an internal node is stale.
	ErrInvariant = errors.New("tree: invariant violated")
)

// ConfigurationError describes rejected construction input.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// IndexOutOfBoundsError carries the offending index and the tree size.
// For range queries Range is set and Left/Right hold the requested bounds;
// Index is then the first bound found to be invalid.
type IndexOutOfBoundsError struct {
	Index int
	Left  int
	Right int
	Size  int
	Range bool
}

func (e *IndexOutOfBoundsError) Error() string {
	if e.Range {
		return fmt.Sprintf("range [%d, %d] is out of bounds for data size %d", e.Left, e.Right, e.Size)
	}
	return fmt.Sprintf("index %d is out of bounds for data size %d", e.Index, e.Size)
}

func (e *IndexOutOfBoundsError) Is(target error) bool {
	return target == ErrIndexOutOfBounds
}

// InvalidOperationError names an operation that is not valid here, such
// as an unknown aggregation mode. Err optionally classifies it further.
type InvalidOperationError struct {
	Operation string
	Err       error
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid operation: %q", e.Operation)
}

func (e *InvalidOperationError) Is(target error) bool {
	return target == ErrInvalidOperation
}

func (e *InvalidOperationError) Unwrap() error {
	return e.Err
}
