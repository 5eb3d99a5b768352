package tensor

import (
	"fmt"
	"unsafe"
)

// Kernel identifies one of the interchangeable strategies used by the arithmetic loops.
//
// All strategies compute the same result; they differ in how many independent
// accumulators they keep. Summation order differs between them, so results agree
// within floating-point tolerance, not bit for bit.
type Kernel int

// Kernel strategies.
const (
	ScalarKernel  Kernel = iota // one element per step
	VectorKernel                // VectorSize lanes per step
	Vector2Kernel               // two banks of VectorSize lanes per step
)

// String returns a human-readable kernel name.
func (k Kernel) String() string {
	switch k {
	case ScalarKernel:
		return "scalar"
	case VectorKernel:
		return "vector"
	case Vector2Kernel:
		return "vector2"
	default:
		return fmt.Sprintf("Kernel(%d)", int(k))
	}
}

// maxLanes bounds the lane count: a 64-byte register holding the narrowest Type.
const maxLanes = 64 / 4

// vectorSize is the number of Type elements in one hardware vector.
var vectorSize = lanesFor(detectVectorBytes())

func lanesFor(vectorBytes int) int {
	lanes := vectorBytes / int(unsafe.Sizeof(Type(0)))
	return min(max(lanes, 1), maxLanes)
}

// VectorSize returns the number of elements processed per vector step on this CPU.
func VectorSize() int {
	return vectorSize
}

// SelectKernel picks the strategy for a contiguous extent of n elements.
func SelectKernel(n int) Kernel {
	switch {
	case n > 0 && n%(2*vectorSize) == 0:
		return Vector2Kernel
	case n > 0 && n%vectorSize == 0:
		return VectorKernel
	default:
		return ScalarKernel
	}
}

// MultiplyAdd computes Σ a[i]*b[i] over len(a) elements. b must be at least as long as a.
type MultiplyAdd func(a, b []Type) Type

var (
	addKernels         = [...]func(in, out []Type){addScalar, addVector, addVector2}
	multiplyKernels    = [...]func(in, out []Type){multiplyScalar, multiplyVector, multiplyVector2}
	multiplyAddKernels = [...]MultiplyAdd{multiplyAddScalar, multiplyAddVector, multiplyAddVector2}
	fmaKernels         = [...]func(in, scale, out []Type){fmaScalar, fmaVector, fmaVector2}
)

// MultiplyAddFunc returns the multiply-accumulate strategy for a contraction of length n.
func MultiplyAddFunc(n int) MultiplyAdd {
	return multiplyAddKernels[SelectKernel(n)]
}

// add: out[i] += in[i]

func addScalar(in, out []Type) {
	in = in[:len(out)]
	for i := range out {
		out[i] += in[i]
	}
}

func addVector(in, out []Type) {
	v := vectorSize
	for i := 0; i < len(out); i += v {
		o := out[i : i+v]
		x := in[i : i+v]
		for l := range o {
			o[l] += x[l]
		}
	}
}

func addVector2(in, out []Type) {
	v := vectorSize
	for i := 0; i < len(out); i += 2 * v {
		o0, o1 := out[i:i+v], out[i+v:i+2*v]
		x0, x1 := in[i:i+v], in[i+v:i+2*v]
		for l := range o0 {
			o0[l] += x0[l]
			o1[l] += x1[l]
		}
	}
}

// multiply: out[i] *= in[i]

func multiplyScalar(in, out []Type) {
	in = in[:len(out)]
	for i := range out {
		out[i] *= in[i]
	}
}

func multiplyVector(in, out []Type) {
	v := vectorSize
	for i := 0; i < len(out); i += v {
		o := out[i : i+v]
		x := in[i : i+v]
		for l := range o {
			o[l] *= x[l]
		}
	}
}

func multiplyVector2(in, out []Type) {
	v := vectorSize
	for i := 0; i < len(out); i += 2 * v {
		o0, o1 := out[i:i+v], out[i+v:i+2*v]
		x0, x1 := in[i:i+v], in[i+v:i+2*v]
		for l := range o0 {
			o0[l] *= x0[l]
			o1[l] *= x1[l]
		}
	}
}

// multiply-add: Σ a[i]*b[i]

func multiplyAddScalar(a, b []Type) Type {
	b = b[:len(a)]
	var sum Type
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func multiplyAddVector(a, b []Type) Type {
	v := vectorSize
	var acc [maxLanes]Type
	lanes := acc[:v]
	for i := 0; i < len(a); i += v {
		x := a[i : i+v]
		y := b[i : i+v]
		for l := range lanes {
			lanes[l] += x[l] * y[l]
		}
	}
	return sumLanes(lanes)
}

func multiplyAddVector2(a, b []Type) Type {
	v := vectorSize
	var acc0, acc1 [maxLanes]Type
	lanes0, lanes1 := acc0[:v], acc1[:v]
	for i := 0; i < len(a); i += 2 * v {
		x0, x1 := a[i:i+v], a[i+v:i+2*v]
		y0, y1 := b[i:i+v], b[i+v:i+2*v]
		for l := range lanes0 {
			lanes0[l] += x0[l] * y0[l]
			lanes1[l] += x1[l] * y1[l]
		}
	}
	for l := range lanes0 {
		lanes0[l] += lanes1[l]
	}
	return sumLanes(lanes0)
}

func sumLanes(lanes []Type) Type {
	var sum Type
	for _, x := range lanes {
		sum += x
	}
	return sum
}

// fma: out[i] += in[i]*scale[i]

func fmaScalar(in, scale, out []Type) {
	in = in[:len(out)]
	scale = scale[:len(out)]
	for i := range out {
		out[i] += in[i] * scale[i]
	}
}

func fmaVector(in, scale, out []Type) {
	v := vectorSize
	for i := 0; i < len(out); i += v {
		o := out[i : i+v]
		x := in[i : i+v]
		s := scale[i : i+v]
		for l := range o {
			o[l] += x[l] * s[l]
		}
	}
}

func fmaVector2(in, scale, out []Type) {
	v := vectorSize
	for i := 0; i < len(out); i += 2 * v {
		o0, o1 := out[i:i+v], out[i+v:i+2*v]
		x0, x1 := in[i:i+v], in[i+v:i+2*v]
		s0, s1 := scale[i:i+v], scale[i+v:i+2*v]
		for l := range o0 {
			o0[l] += x0[l] * s0[l]
			o1[l] += x1[l] * s1[l]
		}
	}
}
