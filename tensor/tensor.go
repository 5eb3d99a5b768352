// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense tensors consumed and produced by
// pocket models.
//
// Elements are float32 unless the module is built with the pocket_double tag, which
// switches storage to float64. Streams always carry float32.
//
// Example:
//
//	x, err := tensor.FromSlice([]tensor.Type{1, 2, 3, 4}, 2, 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(x) // [[1, 2], [3, 4]]
package tensor

import (
	"io"

	"github.com/born-ml/pocket/internal/tensor"
)

// Type is the element type of every tensor.
type Type = tensor.Type

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a dense row-major N-dimensional array.
type Tensor = tensor.Tensor

// Kernel identifies an arithmetic loop strategy.
type Kernel = tensor.Kernel

// New creates a zero-filled tensor with 1 to 4 positive extents.
func New(dims ...int) *Tensor {
	return tensor.New(dims...)
}

// FromSlice creates a tensor that takes ownership of data.
func FromSlice(data []Type, dims ...int) (*Tensor, error) {
	return tensor.FromSlice(data, dims...)
}

// Read decodes a tensor block of the given rank.
func Read(r io.Reader, rank int) (*Tensor, error) {
	return tensor.Read(r, rank)
}

// ReadRanked decodes a uint32 rank followed by a tensor block, the input file format of
// the pocket CLI. Tensor.WriteRanked is its inverse.
func ReadRanked(r io.Reader) (*Tensor, error) {
	return tensor.ReadRanked(r)
}

// VectorSize returns the number of elements processed per vector step on this CPU.
func VectorSize() int {
	return tensor.VectorSize()
}

// SelectKernel reports the strategy used for a contiguous extent of n elements.
func SelectKernel(n int) Kernel {
	return tensor.SelectKernel(n)
}
