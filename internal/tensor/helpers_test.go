package tensor

import (
	"math/rand"
	"testing"
)

// withVectorSize forces the lane count for the duration of a test.
func withVectorSize(t *testing.T, lanes int) {
	t.Helper()
	saved := vectorSize
	vectorSize = lanes
	t.Cleanup(func() { vectorSize = saved })
}

func randomTensor(rng *rand.Rand, dims ...int) *Tensor {
	t := New(dims...)
	for i := range t.data {
		t.data[i] = Type(rng.Float64()*2 - 1)
	}
	return t
}

func naiveDot(a, b *Tensor) [][]float64 {
	rows, cols, k := a.dims[0], b.dims[0], a.dims[1]
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			var sum float64
			for p := 0; p < k; p++ {
				sum += float64(a.At(i, p)) * float64(b.At(j, p))
			}
			out[i][j] = sum
		}
	}
	return out
}
