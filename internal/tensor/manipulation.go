package tensor

import "fmt"

// Pad grows a (height, width, channel) tensor by padHeight rows above and below and
// padWidth columns left and right. The border is set to value, the existing content is
// copied into the interior.
func (t *Tensor) Pad(padHeight, padWidth int, value Type) {
	if len(t.dims) != 3 {
		panic(fmt.Sprintf("pad: expected rank 3 (height, width, channel), got dims %v", t.dims))
	}
	if padHeight < 0 || padWidth < 0 {
		panic(fmt.Sprintf("pad: negative padding %dx%d", padHeight, padWidth))
	}

	h, w, c := t.dims[0], t.dims[1], t.dims[2]
	var result Tensor
	result.Resize(h+2*padHeight, w+2*padWidth, c)
	result.Fill(value)

	outW := w + 2*padWidth
	for y := 0; y < h; y++ {
		src := t.data[y*w*c : (y+1)*w*c]
		dst := ((y+padHeight)*outW + padWidth) * c
		copy(result.data[dst:dst+w*c], src)
	}

	t.dims = result.dims
	t.data = result.data
}

// Flatten collapses all dimensions into one.
func (t *Tensor) Flatten() {
	if !t.IsValid() {
		panic("flatten: tensor is empty")
	}
	size := len(t.data)
	t.dims = append(t.dims[:0], size)
}

// Unpack copies row along the first dimension into out, dropping that dimension.
func (t *Tensor) Unpack(row int, out *Tensor) {
	if len(t.dims) < 2 {
		panic(fmt.Sprintf("unpack: expected rank >= 2, got dims %v", t.dims))
	}
	if row < 0 || row >= t.dims[0] {
		panic(fmt.Sprintf("unpack: row %d out of range for dims %v", row, t.dims))
	}

	packSize := t.dims[1:].NumElements()
	base := row * packSize

	out.dims = append(out.dims[:0], t.dims[1:]...)
	out.data = append(out.data[:0], t.data[base:base+packSize]...)
}

// Select copies row along the first dimension into out, keeping a leading extent of 1.
func (t *Tensor) Select(row int, out *Tensor) {
	t.Unpack(row, out)
	out.dims = append(out.dims, 0)
	copy(out.dims[1:], out.dims)
	out.dims[0] = 1
}

// EraseDummyDims removes every extent equal to 1 except the last one.
func (t *Tensor) EraseDummyDims() {
	if len(t.dims) <= 1 {
		return
	}
	last := t.dims[len(t.dims)-1]
	kept := t.dims[:0]
	for _, d := range t.dims[:len(t.dims)-1] {
		if d != 1 {
			kept = append(kept, d)
		}
	}
	t.dims = append(kept, last)
}
