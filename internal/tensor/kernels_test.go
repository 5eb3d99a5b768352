package tensor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectKernel(t *testing.T) {
	withVectorSize(t, 4)

	tests := []struct {
		n    int
		want Kernel
	}{
		{0, ScalarKernel},
		{3, ScalarKernel},
		{4, VectorKernel},
		{12, VectorKernel},
		{8, Vector2Kernel},
		{16, Vector2Kernel},
		{13, ScalarKernel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SelectKernel(tt.n), "n=%d", tt.n)
	}
}

func TestVectorSize_Bounds(t *testing.T) {
	assert.GreaterOrEqual(t, VectorSize(), 1)
	assert.LessOrEqual(t, VectorSize(), maxLanes)
	assert.Equal(t, 1, lanesFor(0))
	assert.Equal(t, maxLanes, lanesFor(1024))
}

func TestKernel_String(t *testing.T) {
	assert.Equal(t, "scalar", ScalarKernel.String())
	assert.Equal(t, "vector", VectorKernel.String())
	assert.Equal(t, "vector2", Vector2Kernel.String())
	assert.Equal(t, "Kernel(7)", Kernel(7).String())
}

// Every strategy must agree with the scalar one on lengths it accepts.
func TestKernels_Equivalent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, lanes := range []int{1, 4, 8, 16} {
		withVectorSize(t, lanes)
		n := 2 * lanes * 5

		a := randomTensor(rng, n).Data()
		b := randomTensor(rng, n).Data()
		c := randomTensor(rng, n).Data()

		want := multiplyAddScalar(a, b)
		assert.InDelta(t, float64(want), float64(multiplyAddVector(a, b)), 1e-4, "lanes=%d", lanes)
		assert.InDelta(t, float64(want), float64(multiplyAddVector2(a, b)), 1e-4, "lanes=%d", lanes)

		for k := ScalarKernel; k <= Vector2Kernel; k++ {
			added := append([]Type(nil), c...)
			addKernels[k](a, added)
			multiplied := append([]Type(nil), c...)
			multiplyKernels[k](a, multiplied)
			fused := append([]Type(nil), c...)
			fmaKernels[k](a, b, fused)

			for i := range c {
				assert.InDelta(t, float64(c[i]+a[i]), float64(added[i]), 1e-6)
				assert.InDelta(t, float64(c[i]*a[i]), float64(multiplied[i]), 1e-6)
				assert.InDelta(t, float64(c[i]+a[i]*b[i]), float64(fused[i]), 1e-6)
			}
		}
	}
}
