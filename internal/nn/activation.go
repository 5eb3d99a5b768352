package nn

import (
	"fmt"
	"io"
	"math"

	"github.com/born-ml/pocket/internal/serialization"
	"github.com/born-ml/pocket/internal/tensor"
)

// ActivationType selects the nonlinearity of an Activation.
type ActivationType uint32

// Activation tags as written in model streams.
const (
	Linear      ActivationType = 1
	ReLU        ActivationType = 2
	ELU         ActivationType = 3
	SoftPlus    ActivationType = 4
	SoftSign    ActivationType = 5
	Sigmoid     ActivationType = 6
	Tanh        ActivationType = 7
	HardSigmoid ActivationType = 8
	Softmax     ActivationType = 9
)

// String returns a human-readable activation name.
func (t ActivationType) String() string {
	switch t {
	case Linear:
		return "linear"
	case ReLU:
		return "relu"
	case ELU:
		return "elu"
	case SoftPlus:
		return "softplus"
	case SoftSign:
		return "softsign"
	case Sigmoid:
		return "sigmoid"
	case Tanh:
		return "tanh"
	case HardSigmoid:
		return "hard_sigmoid"
	case Softmax:
		return "softmax"
	default:
		return fmt.Sprintf("ActivationType(%d)", uint32(t))
	}
}

// Activation applies a stateless nonlinearity.
//
// Every type is elementwise except Softmax, which normalizes each row of the last
// dimension. Dense and LocallyConnected1D embed an Activation as their final step.
type Activation struct {
	typ ActivationType
}

// NewActivation creates an activation of the given type.
func NewActivation(typ ActivationType) (*Activation, error) {
	if typ < Linear || typ > Softmax {
		return nil, fmt.Errorf("%w: %d", serialization.ErrUnknownActivation, uint32(typ))
	}
	return &Activation{typ: typ}, nil
}

// ReadActivation decodes an activation tag.
func ReadActivation(r io.Reader) (*Activation, error) {
	v, err := serialization.ReadUint32(r)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, fieldError("activation", "type", err)
	}
	a, err := NewActivation(ActivationType(v))
	if err != nil {
		return nil, fieldError("activation", "type", err)
	}
	return a, nil
}

// Kind returns KindActivation.
func (a *Activation) Kind() Kind {
	return KindActivation
}

// Type returns the nonlinearity.
func (a *Activation) Type() ActivationType {
	return a.typ
}

// Apply copies the input to the output and applies the nonlinearity there.
func (a *Activation) Apply(ld *LayerData) error {
	ld.check(KindActivation)
	if !ld.In.IsValid() {
		return shapeErrorf(KindActivation, "input tensor is empty")
	}
	ld.In.CopyTo(ld.Out)
	a.ApplyInPlace(ld.Out)
	return nil
}

// ApplyInPlace transforms every element of t.
func (a *Activation) ApplyInPlace(t *tensor.Tensor) {
	data := t.Data()

	switch a.typ {
	case Linear:
		// identity
	case ReLU:
		for i, x := range data {
			if x < 0 {
				data[i] = 0
			}
		}
	case ELU:
		for i, x := range data {
			if x < 0 {
				data[i] = tensor.Type(math.Expm1(float64(x)))
			}
		}
	case SoftPlus:
		for i, x := range data {
			v := float64(x)
			data[i] = tensor.Type(math.Max(v, 0) + math.Log1p(math.Exp(-math.Abs(v))))
		}
	case SoftSign:
		for i, x := range data {
			data[i] = x / (1 + tensor.Type(math.Abs(float64(x))))
		}
	case Sigmoid:
		for i, x := range data {
			data[i] = tensor.Type(1 / (1 + math.Exp(-float64(x))))
		}
	case Tanh:
		for i, x := range data {
			data[i] = tensor.Type(math.Tanh(float64(x)))
		}
	case HardSigmoid:
		for i, x := range data {
			data[i] = tensor.Type(math.Min(math.Max(0.2*float64(x)+0.5, 0), 1))
		}
	case Softmax:
		dims := t.Dims()
		if len(dims) == 0 {
			return
		}
		softmaxRows(data, dims[len(dims)-1])
	}
}

// softmaxRows normalizes each consecutive run of n values.
func softmaxRows(data []tensor.Type, n int) {
	for start := 0; start+n <= len(data); start += n {
		row := data[start : start+n]

		peak := row[0]
		for _, x := range row[1:] {
			peak = max(peak, x)
		}

		var sum float64
		for i, x := range row {
			e := math.Exp(float64(x - peak))
			row[i] = tensor.Type(e)
			sum += e
		}
		for i := range row {
			row[i] = tensor.Type(float64(row[i]) / sum)
		}
	}
}
