package nn

import (
	"fmt"
	"io"

	"github.com/born-ml/pocket/internal/parallel"
	"github.com/born-ml/pocket/internal/serialization"
	"github.com/born-ml/pocket/internal/tensor"
)

// Dense is a fully connected layer: out = activation(biases + weights · in).
//
// Weights have shape (outputs, inputs), biases (outputs). Output rows are independent,
// so they are split across the dispatcher once there are enough of them.
type Dense struct {
	weights    *tensor.Tensor
	biases     *tensor.Tensor
	activation *Activation
}

// NewDense validates and assembles a dense layer. It takes ownership of the tensors.
func NewDense(weights, biases *tensor.Tensor, activation *Activation) (*Dense, error) {
	if weights.Rank() != 2 || biases.Rank() != 1 {
		return nil, fmt.Errorf("%w: weights dims %v, biases dims %v",
			serialization.ErrInvalidRank, weights.Dims(), biases.Dims())
	}
	if biases.Dims()[0] != weights.Dims()[0] {
		return nil, fmt.Errorf("%w: biases dims %v do not match weights dims %v",
			serialization.ErrShapeMismatch, biases.Dims(), weights.Dims())
	}
	if activation == nil {
		return nil, fmt.Errorf("dense: missing activation")
	}
	return &Dense{weights: weights, biases: biases, activation: activation}, nil
}

// ReadDense decodes weights, biases and the activation tag.
func ReadDense(r io.Reader) (*Dense, error) {
	weights, err := tensor.Read(r, 2)
	if err != nil {
		return nil, fieldError("dense", "weights", err)
	}
	biases, err := tensor.Read(r, 1)
	if err != nil {
		return nil, fieldError("dense", "biases", err)
	}
	activation, err := ReadActivation(r)
	if err != nil {
		return nil, fieldError("dense", "activation", err)
	}

	d, err := NewDense(weights, biases, activation)
	if err != nil {
		return nil, fieldError("dense", "parameters", err)
	}
	return d, nil
}

// Kind returns KindDense.
func (d *Dense) Kind() Kind {
	return KindDense
}

// Weights returns the (outputs, inputs) weight matrix.
func (d *Dense) Weights() *tensor.Tensor {
	return d.weights
}

// Biases returns the bias vector.
func (d *Dense) Biases() *tensor.Tensor {
	return d.biases
}

// Activation returns the nonlinearity applied last.
func (d *Dense) Activation() *Activation {
	return d.activation
}

// Apply computes the layer for a rank-1 input of length inputs.
func (d *Dense) Apply(ld *LayerData) error {
	ld.check(KindDense)
	in, out := ld.In, ld.Out

	iw := in.Dims()
	if len(iw) != 1 {
		return shapeErrorf(KindDense, "input tensor dims count must be 1 (input dims: %v)", iw)
	}
	ww := d.weights.Dims()
	if iw[0] != ww[1] {
		return shapeErrorf(KindDense,
			"input tensor dims[0] must be the same as weights dims[1] (input dims: %v) (weights dims: %v)", iw, ww)
	}

	d.biases.CopyTo(out)

	k := ww[1]
	multiplyAdd := tensor.MultiplyAddFunc(k)
	x, w, o := in.Data(), d.weights.Data(), out.Data()

	parallel.For(ld.Dispatcher, ww[0], ld.minChunkSize(), func(begin, end int) {
		for row := begin; row < end; row++ {
			o[row] += multiplyAdd(x, w[row*k:(row+1)*k])
		}
	})

	d.activation.ApplyInPlace(out)
	return nil
}
