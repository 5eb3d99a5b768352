package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Dims(t *testing.T) {
	tests := []struct {
		name string
		dims []int
		size int
	}{
		{"1d", []int{5}, 5},
		{"2d", []int{2, 3}, 6},
		{"3d", []int{2, 3, 4}, 24},
		{"4d", []int{1, 2, 3, 4}, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := New(tt.dims...)
			assert.Equal(t, Shape(tt.dims), x.Dims())
			assert.Equal(t, tt.size, x.Size())
			assert.Equal(t, len(tt.dims), x.Rank())
			assert.True(t, x.IsValid())
		})
	}
}

func TestZeroValue_IsEmpty(t *testing.T) {
	var x Tensor
	assert.False(t, x.IsValid())
	assert.Equal(t, 0, x.Size())
	assert.Equal(t, "[]", x.String())
}

func TestResize_Panics(t *testing.T) {
	var x Tensor
	assert.Panics(t, func() { x.Resize() })
	assert.Panics(t, func() { x.Resize(1, 2, 3, 4, 5) })
	assert.Panics(t, func() { x.Resize(3, 0) })
	assert.Panics(t, func() { x.Resize(-1) })
}

func TestResize_ReusesStorage(t *testing.T) {
	x := New(4, 4)
	before := &x.Data()[0]
	x.Resize(2, 3)
	assert.Equal(t, Shape{2, 3}, x.Dims())
	assert.Len(t, x.Data(), 6)
	assert.Same(t, before, &x.Data()[0])
}

func TestAtSet_RowMajor(t *testing.T) {
	x := New(2, 3, 4)
	x.Set(7, 1, 2, 3)
	assert.Equal(t, Type(7), x.Data()[1*12+2*4+3])
	assert.Equal(t, Type(7), x.At(1, 2, 3))

	assert.Panics(t, func() { x.At(1, 2) })
	assert.Panics(t, func() { x.At(2, 0, 0) })
}

func TestFill(t *testing.T) {
	x := New(3, 2)
	x.Fill(1.5)
	for _, v := range x.Data() {
		assert.Equal(t, Type(1.5), v)
	}
}

func TestCopyTo_DeepCopy(t *testing.T) {
	src, err := FromSlice([]Type{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	var dst Tensor
	src.CopyTo(&dst)
	assert.Equal(t, src.Dims(), dst.Dims())
	assert.Equal(t, src.Data(), dst.Data())

	dst.Set(100, 0, 0)
	dst.Resize(6)
	assert.Equal(t, Type(1), src.At(0, 0))
	assert.Equal(t, Shape{2, 3}, src.Dims())
}

func TestMoveTo_LeavesSourceEmpty(t *testing.T) {
	src, err := FromSlice([]Type{1, 2}, 2)
	require.NoError(t, err)

	var dst Tensor
	src.MoveTo(&dst)
	assert.False(t, src.IsValid())
	assert.Equal(t, 0, src.Size())
	assert.Equal(t, []Type{1, 2}, dst.Data())
}

func TestFromSlice_Errors(t *testing.T) {
	_, err := FromSlice([]Type{1, 2, 3}, 2, 2)
	assert.Error(t, err)

	_, err = FromSlice([]Type{}, 0)
	assert.Error(t, err)

	_, err = FromSlice([]Type{1})
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	x := New(2, 2)
	x.Clear()
	assert.False(t, x.IsValid())
	assert.Nil(t, x.Data())
}
