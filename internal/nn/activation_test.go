package nn

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/pocket/internal/serialization"
	"github.com/born-ml/pocket/internal/tensor"
)

func TestActivation_Elementwise(t *testing.T) {
	inputs := []tensor.Type{-2, -0.5, 0, 0.5, 2}

	tests := []struct {
		typ ActivationType
		f   func(x float64) float64
	}{
		{Linear, func(x float64) float64 { return x }},
		{ReLU, func(x float64) float64 { return math.Max(x, 0) }},
		{ELU, func(x float64) float64 {
			if x < 0 {
				return math.Exp(x) - 1
			}
			return x
		}},
		{SoftPlus, func(x float64) float64 { return math.Log(1 + math.Exp(x)) }},
		{SoftSign, func(x float64) float64 { return x / (1 + math.Abs(x)) }},
		{Sigmoid, func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }},
		{Tanh, math.Tanh},
		{HardSigmoid, func(x float64) float64 { return math.Min(math.Max(0.2*x+0.5, 0), 1) }},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			a, err := NewActivation(tt.typ)
			require.NoError(t, err)

			out, err := applyWith(t, a, mustTensor(t, append([]tensor.Type(nil), inputs...), len(inputs)), 1)
			require.NoError(t, err)

			for i, x := range inputs {
				assert.InDelta(t, tt.f(float64(x)), float64(out.Data()[i]), 1e-6, "x=%v", x)
			}
		})
	}
}

func TestActivation_SoftmaxRows(t *testing.T) {
	a, err := NewActivation(Softmax)
	require.NoError(t, err)

	x := mustTensor(t, []tensor.Type{1, 2, 3, 1000, 1000, 1000}, 2, 3)
	a.ApplyInPlace(x)

	row0 := x.Data()[:3]
	var sum float64
	for _, v := range row0 {
		sum += float64(v)
	}
	assert.InDelta(t, 1, sum, 1e-6)
	assert.Less(t, row0[0], row0[1])
	assert.Less(t, row0[1], row0[2])

	for _, v := range x.Data()[3:] {
		assert.InDelta(t, 1.0/3, float64(v), 1e-6, "large inputs must not overflow")
	}
}

func TestActivation_EmptyInput(t *testing.T) {
	a, err := NewActivation(ReLU)
	require.NoError(t, err)

	_, err = applyWith(t, a, &tensor.Tensor{}, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReadActivation(t *testing.T) {
	a, err := ReadActivation(bytes.NewReader(newStream(t).uint32(uint32(Sigmoid)).bytes()))
	require.NoError(t, err)
	assert.Equal(t, Sigmoid, a.Type())
	assert.Equal(t, KindActivation, a.Kind())

	for _, tag := range []uint32{0, 10, 1 << 20} {
		_, err := ReadActivation(bytes.NewReader(newStream(t).uint32(tag).bytes()))
		assert.ErrorIs(t, err, serialization.ErrUnknownActivation, "tag %d", tag)
	}
}
