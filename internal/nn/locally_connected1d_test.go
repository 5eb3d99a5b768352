package nn

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/pocket/internal/serialization"
	"github.com/born-ml/pocket/internal/tensor"
)

// referenceLocallyConnected1D evaluates the layer with explicit kernel indexing.
func referenceLocallyConnected1D(w, b, in *tensor.Tensor) []float64 {
	positions, channels, window := w.Dims()[0], w.Dims()[1], w.Dims()[2]
	inChannels := in.Dims()[1]
	kernel := window / inChannels

	out := make([]float64, positions*channels)
	for p := 0; p < positions; p++ {
		for c := 0; c < channels; c++ {
			sum := float64(b.At(p, c))
			for k := 0; k < kernel; k++ {
				for ic := 0; ic < inChannels; ic++ {
					sum += float64(w.At(p, c, k*inChannels+ic)) * float64(in.At(p+k, ic))
				}
			}
			out[p*channels+c] = sum
		}
	}
	return out
}

func TestLocallyConnected1D_MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	tests := []struct {
		name                                   string
		positions, channels, kernel, inChannel int
	}{
		{"kernel 1", 5, 3, 1, 4},
		{"kernel 3", 6, 2, 3, 2},
		{"wide window", 4, 5, 4, 8},
		{"single position", 1, 1, 2, 3},
	}

	for _, tt := range tests {
		for _, threads := range []int{1, 2, 4} {
			w := randomTensor(rng, tt.positions, tt.channels, tt.kernel*tt.inChannel)
			b := randomTensor(rng, tt.positions, tt.channels)
			in := randomTensor(rng, tt.positions+tt.kernel-1, tt.inChannel)

			layer, err := NewLocallyConnected1D(w, b, linear(t))
			require.NoError(t, err)

			out, err := applyWith(t, layer, in, threads)
			require.NoError(t, err, tt.name)
			require.Equal(t, tensor.Shape{tt.positions, tt.channels}, out.Dims(), tt.name)

			want := referenceLocallyConnected1D(w, b, in)
			for i := range want {
				assert.InDelta(t, want[i], float64(out.Data()[i]), 1e-4, "%s threads=%d i=%d", tt.name, threads, i)
			}
		}
	}
}

func TestLocallyConnected1D_ShapeErrors(t *testing.T) {
	// 4 positions, kernel 2 over 3 input channels.
	layer, err := NewLocallyConnected1D(tensor.New(4, 2, 6), tensor.New(4, 2), linear(t))
	require.NoError(t, err)

	tests := []struct {
		name string
		in   *tensor.Tensor
	}{
		{"rank 1", tensor.New(15)},
		{"window not a multiple", tensor.New(5, 4)},
		{"wrong length", tensor.New(4, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := applyWith(t, layer, tt.in, 1)
			var shapeErr *ShapeError
			require.ErrorAs(t, err, &shapeErr)
			assert.Equal(t, KindLocallyConnected1D, shapeErr.Layer)
		})
	}

	_, err = applyWith(t, layer, tensor.New(5, 3), 1)
	assert.NoError(t, err)
}

func TestReadLocallyConnected1D(t *testing.T) {
	w := tensor.New(3, 2, 4)
	b := tensor.New(3, 2)

	layer, err := ReadLocallyConnected1D(bytes.NewReader(
		newStream(t).tensor(w).tensor(b).uint32(uint32(ELU)).bytes()))
	require.NoError(t, err)
	assert.Equal(t, KindLocallyConnected1D, layer.Kind())

	_, err = ReadLocallyConnected1D(bytes.NewReader(
		newStream(t).tensor(w).tensor(tensor.New(3, 3)).uint32(uint32(ELU)).bytes()))
	assert.ErrorIs(t, err, serialization.ErrShapeMismatch)
}
