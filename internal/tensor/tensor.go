// Package tensor implements the dense row-major tensor used by the pocket inference engine.
//
// A Tensor owns its dimensions and its flat storage exclusively. Operations never allocate
// a new receiver: results are written into an explicitly supplied output tensor, which is
// resized as needed.
//
// Contract violations (zero extents, mismatched operand shapes, wrong rank) are programming
// errors and panic. Malformed input data is reported through errors by Read.
package tensor

import (
	"fmt"
)

// Tensor is a dense N-dimensional array stored in row-major order.
//
// The zero value is an empty tensor: it has no dimensions and is not valid until it is
// resized, read from a stream, or filled by an operation.
type Tensor struct {
	dims Shape
	data []Type
}

// New creates a tensor with the given extents. Element values are zero.
func New(dims ...int) *Tensor {
	t := &Tensor{}
	t.Resize(dims...)
	return t
}

// FromSlice creates a tensor that takes ownership of data.
func FromSlice(data []Type, dims ...int) (*Tensor, error) {
	shape := Shape(dims)
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), dims, shape.NumElements())
	}
	return &Tensor{dims: shape.Clone(), data: data}, nil
}

// Dims returns the tensor's extents. The slice must not be modified.
func (t *Tensor) Dims() Shape {
	return t.dims
}

// Data returns the flat row-major storage.
func (t *Tensor) Data() []Type {
	return t.data
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return len(t.dims)
}

// Size returns the total number of elements.
func (t *Tensor) Size() int {
	return len(t.data)
}

// IsValid reports whether the tensor has at least one dimension.
func (t *Tensor) IsValid() bool {
	return len(t.dims) > 0
}

// At returns the element at the given multi-index.
func (t *Tensor) At(idx ...int) Type {
	return t.data[t.offset(idx)]
}

// Set stores v at the given multi-index.
func (t *Tensor) Set(v Type, idx ...int) {
	t.data[t.offset(idx)] = v
}

func (t *Tensor) offset(idx []int) int {
	if len(idx) != len(t.dims) {
		panic(fmt.Sprintf("tensor: index %v has rank %d, tensor dims %v", idx, len(idx), t.dims))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= t.dims[i] {
			panic(fmt.Sprintf("tensor: index %v out of range for dims %v", idx, t.dims))
		}
		off = off*t.dims[i] + v
	}
	return off
}

// CopyTo makes out a deep copy of t.
func (t *Tensor) CopyTo(out *Tensor) {
	if out == t {
		return
	}
	out.dims = append(out.dims[:0], t.dims...)
	out.data = append(out.data[:0], t.data...)
}

// MoveTo transfers t's storage to out and leaves t empty.
func (t *Tensor) MoveTo(out *Tensor) {
	if out == t {
		return
	}
	out.dims, out.data = t.dims, t.data
	t.dims, t.data = nil, nil
}

// Resize replaces the dimensions with 1 to 4 extents, each > 0.
//
// Existing storage is reused when large enough, so element values are unspecified
// afterwards; callers fill what they need.
func (t *Tensor) Resize(dims ...int) {
	if len(dims) < 1 || len(dims) > 4 {
		panic(fmt.Sprintf("resize: expected 1 to 4 extents, got %d", len(dims)))
	}
	for i, d := range dims {
		if d <= 0 {
			panic(fmt.Sprintf("resize: extent %d at index %d must be > 0", d, i))
		}
	}

	t.dims = append(t.dims[:0], dims...)
	size := t.dims.NumElements()
	if cap(t.data) >= size {
		t.data = t.data[:size]
	} else {
		t.data = make([]Type, size)
	}
}

// Fill sets every element to value.
func (t *Tensor) Fill(value Type) {
	for i := range t.data {
		t.data[i] = value
	}
}

// Clear releases dimensions and storage.
func (t *Tensor) Clear() {
	t.dims = nil
	t.data = nil
}
