package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch  = errors.New("checksum mismatch: file may be corrupted")
	ErrZeroExtent        = errors.New("tensor extent must be greater than zero")
	ErrInvalidRank       = errors.New("invalid tensor rank")
	ErrUnknownLayer      = errors.New("unknown layer tag")
	ErrUnknownActivation = errors.New("unknown activation tag")
	ErrShapeMismatch     = errors.New("parameter shapes do not match")
	ErrTrailingData      = errors.New("unexpected data after last layer")
	ErrEmptyModel        = errors.New("model has no layers")
	ErrTensorTooLarge    = errors.New("tensor element count exceeds limit")
)

// FieldError reports which field of a block failed to parse.
type FieldError struct {
	Block string // Block being parsed (e.g., "dense", "tensor")
	Field string // Field inside the block (e.g., "weights", "extent 1")
	Err   error  // Underlying cause
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Block, e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FieldError) Unwrap() error {
	return e.Err
}
