package tensor

import "fmt"

// Add writes t + other into out. Both operands must have identical dims; out may be t
// but not other.
func (t *Tensor) Add(other, out *Tensor) {
	if !t.dims.Equal(other.dims) {
		panic(fmt.Sprintf("add: dims mismatch %v vs %v", t.dims, other.dims))
	}
	if out == other && other != t {
		panic("add: output aliases an operand")
	}
	t.CopyTo(out)
	addKernels[SelectKernel(len(out.data))](other.data, out.data)
}

// Multiply writes the elementwise product t * other into out.
func (t *Tensor) Multiply(other, out *Tensor) {
	if !t.IsValid() {
		panic("multiply: tensor is empty")
	}
	if !t.dims.Equal(other.dims) {
		panic(fmt.Sprintf("multiply: dims mismatch %v vs %v", t.dims, other.dims))
	}
	if out == other && other != t {
		panic("multiply: output aliases an operand")
	}
	t.CopyTo(out)
	multiplyKernels[SelectKernel(len(out.data))](other.data, out.data)
}

// Dot multiplies a (rows, k) tensor by a pre-transposed (cols, k) tensor.
//
// Both operands expose the contraction axis second, so
// out[i][j] = Σ_p t[i][p] * other[j][p] and out has dims (rows, cols).
func (t *Tensor) Dot(other, out *Tensor) {
	if len(t.dims) != 2 || len(other.dims) != 2 {
		panic(fmt.Sprintf("dot: expected rank 2 operands, got dims %v and %v", t.dims, other.dims))
	}
	if t.dims[1] != other.dims[1] {
		panic(fmt.Sprintf("dot: contraction mismatch %v vs %v", t.dims, other.dims))
	}
	if out == t || out == other {
		panic("dot: output aliases an operand")
	}

	rows, cols, k := t.dims[0], other.dims[0], t.dims[1]
	out.Resize(rows, cols)
	multiplyAdd := MultiplyAddFunc(k)

	for i := 0; i < rows; i++ {
		a := t.data[i*k : (i+1)*k]
		o := out.data[i*cols : (i+1)*cols]
		for j := range o {
			o[j] = multiplyAdd(a, other.data[j*k:(j+1)*k])
		}
	}
}

// Fma writes bias + t*scale into out, elementwise.
func (t *Tensor) Fma(scale, bias, out *Tensor) {
	if !t.dims.Equal(scale.dims) || !t.dims.Equal(bias.dims) {
		panic(fmt.Sprintf("fma: dims mismatch %v, scale %v, bias %v", t.dims, scale.dims, bias.dims))
	}
	if out == t || out == scale {
		panic("fma: output aliases an operand")
	}
	bias.CopyTo(out)
	fmaKernels[SelectKernel(len(out.data))](t.data, scale.data, out.data)
}
