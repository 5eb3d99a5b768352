package nn

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every error Apply returns.
var ErrInvalidInput = errors.New("invalid layer input")

// ShapeError reports an input that violates a layer's structural precondition.
type ShapeError struct {
	Layer  Kind   // Layer that rejected the input
	Reason string // Violated rule, including the offending dims
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Layer, e.Reason)
}

// Unwrap returns ErrInvalidInput.
func (e *ShapeError) Unwrap() error {
	return ErrInvalidInput
}

func shapeErrorf(kind Kind, format string, args ...any) *ShapeError {
	return &ShapeError{Layer: kind, Reason: fmt.Sprintf(format, args...)}
}
