// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"io"

	"github.com/born-ml/pocket/internal/nn"
	"github.com/born-ml/pocket/internal/tensor"
)

// Layer is one stage of a feed-forward computation.
type Layer = nn.Layer

// Kind is the tag identifying a layer in a model stream.
type Kind = nn.Kind

// Layer tags.
const (
	KindDense              = nn.KindDense
	KindLocallyConnected1D = nn.KindLocallyConnected1D
	KindActivation         = nn.KindActivation
	KindEmbedding          = nn.KindEmbedding
	KindGlobalMaxPooling2D = nn.KindGlobalMaxPooling2D
	KindInput              = nn.KindInput
)

// ActivationType selects a nonlinearity.
type ActivationType = nn.ActivationType

// Activation types.
const (
	Linear      = nn.Linear
	ReLU        = nn.ReLU
	ELU         = nn.ELU
	SoftPlus    = nn.SoftPlus
	SoftSign    = nn.SoftSign
	Sigmoid     = nn.Sigmoid
	Tanh        = nn.Tanh
	HardSigmoid = nn.HardSigmoid
	Softmax     = nn.Softmax
)

// ShapeError reports an input a layer rejected.
type ShapeError = nn.ShapeError

// ErrInvalidInput is matched by every error a layer's Apply returns.
var ErrInvalidInput = nn.ErrInvalidInput

// Layers

// Input passes its input through unchanged.
type Input = nn.Input

// NewInput creates an input layer.
func NewInput() *Input {
	return &nn.Input{}
}

// Activation is an elementwise or row-normalizing nonlinearity.
type Activation = nn.Activation

// NewActivation creates an activation layer.
func NewActivation(typ ActivationType) (*Activation, error) {
	return nn.NewActivation(typ)
}

// Dense is a fully connected layer.
type Dense = nn.Dense

// NewDense creates a dense layer from (outputs, inputs) weights and (outputs) biases.
func NewDense(weights, biases *tensor.Tensor, activation *Activation) (*Dense, error) {
	return nn.NewDense(weights, biases, activation)
}

// Embedding maps indices to rows of a lookup table.
type Embedding = nn.Embedding

// NewEmbedding creates an embedding layer from a (vocabulary, dim) table.
func NewEmbedding(weights *tensor.Tensor) (*Embedding, error) {
	return nn.NewEmbedding(weights)
}

// LocallyConnected1D is a 1D convolution with unshared weights.
type LocallyConnected1D = nn.LocallyConnected1D

// NewLocallyConnected1D creates the layer from (positions, filters, window) weights and
// (positions, filters) biases.
func NewLocallyConnected1D(weights, biases *tensor.Tensor, activation *Activation) (*LocallyConnected1D, error) {
	return nn.NewLocallyConnected1D(weights, biases, activation)
}

// GlobalMaxPooling2D reduces (height, width, channels) to per-channel maxima.
type GlobalMaxPooling2D = nn.GlobalMaxPooling2D

// NewGlobalMaxPooling2D creates a global max pooling layer.
func NewGlobalMaxPooling2D() *GlobalMaxPooling2D {
	return &nn.GlobalMaxPooling2D{}
}

// Read decodes one tagged layer block.
func Read(r io.Reader) (Layer, error) {
	return nn.Read(r)
}
