package nn

import (
	"fmt"
	"io"

	"github.com/born-ml/pocket/internal/parallel"
	"github.com/born-ml/pocket/internal/serialization"
	"github.com/born-ml/pocket/internal/tensor"
)

// LocallyConnected1D is a 1D convolution whose weights differ at every output position.
//
// Weights have shape (positions, channels, window) where window = kernel * input channels,
// biases (positions, channels). The input window at position p is the window contiguous
// values starting at row p.
type LocallyConnected1D struct {
	weights    *tensor.Tensor
	biases     *tensor.Tensor
	activation *Activation
}

// NewLocallyConnected1D validates and assembles the layer. It takes ownership of the tensors.
func NewLocallyConnected1D(weights, biases *tensor.Tensor, activation *Activation) (*LocallyConnected1D, error) {
	if weights.Rank() != 3 || biases.Rank() != 2 {
		return nil, fmt.Errorf("%w: weights dims %v, biases dims %v",
			serialization.ErrInvalidRank, weights.Dims(), biases.Dims())
	}
	if !biases.Dims().Equal(weights.Dims()[:2]) {
		return nil, fmt.Errorf("%w: biases dims %v do not match weights dims %v",
			serialization.ErrShapeMismatch, biases.Dims(), weights.Dims())
	}
	if activation == nil {
		return nil, fmt.Errorf("locally connected 1d: missing activation")
	}
	return &LocallyConnected1D{weights: weights, biases: biases, activation: activation}, nil
}

// ReadLocallyConnected1D decodes weights, biases and the activation tag.
func ReadLocallyConnected1D(r io.Reader) (*LocallyConnected1D, error) {
	weights, err := tensor.Read(r, 3)
	if err != nil {
		return nil, fieldError("locally_connected_1d", "weights", err)
	}
	biases, err := tensor.Read(r, 2)
	if err != nil {
		return nil, fieldError("locally_connected_1d", "biases", err)
	}
	activation, err := ReadActivation(r)
	if err != nil {
		return nil, fieldError("locally_connected_1d", "activation", err)
	}

	l, err := NewLocallyConnected1D(weights, biases, activation)
	if err != nil {
		return nil, fieldError("locally_connected_1d", "parameters", err)
	}
	return l, nil
}

// Kind returns KindLocallyConnected1D.
func (l *LocallyConnected1D) Kind() Kind {
	return KindLocallyConnected1D
}

// Weights returns the (positions, channels, window) weight tensor.
func (l *LocallyConnected1D) Weights() *tensor.Tensor {
	return l.weights
}

// Biases returns the (positions, channels) bias tensor.
func (l *LocallyConnected1D) Biases() *tensor.Tensor {
	return l.biases
}

// Activation returns the nonlinearity applied last.
func (l *LocallyConnected1D) Activation() *Activation {
	return l.activation
}

// Apply computes out[p][c] = biases[p][c] + Σ window(p) * weights[p][c], then the activation.
func (l *LocallyConnected1D) Apply(ld *LayerData) error {
	ld.check(KindLocallyConnected1D)
	in, out := ld.In, ld.Out

	iw := in.Dims()
	if len(iw) != 2 {
		return shapeErrorf(KindLocallyConnected1D, "input tensor dims count must be 2 (input dims: %v)", iw)
	}
	ww := l.weights.Dims()
	if ww[2]%iw[1] != 0 {
		return shapeErrorf(KindLocallyConnected1D,
			"weights dims[2] must be a multiple of input dims[1] (input dims: %v) (weights dims: %v)", iw, ww)
	}
	offset := ww[2]/iw[1] - 1
	if iw[0] != ww[0]+offset {
		return shapeErrorf(KindLocallyConnected1D,
			"input tensor dims[0] must be the same as weights dims[0] + offset (input dims: %v) (weights dims: %v) (offset: %d)",
			iw, ww, offset)
	}

	positions, channels, window := ww[0], ww[1], ww[2]
	out.Resize(positions, channels)

	multiplyAdd := tensor.MultiplyAddFunc(window)
	x, w, b, o := in.Data(), l.weights.Data(), l.biases.Data(), out.Data()
	stride := iw[1]

	parallel.For(ld.Dispatcher, positions, ld.minChunkSize(), func(begin, end int) {
		for p := begin; p < end; p++ {
			win := x[p*stride : p*stride+window]
			for c := 0; c < channels; c++ {
				idx := p*channels + c
				o[idx] = b[idx] + multiplyAdd(win, w[idx*window:(idx+1)*window])
			}
		}
	})

	l.activation.ApplyInPlace(out)
	return nil
}
