package nn

import (
	"io"
	"math"

	"github.com/born-ml/pocket/internal/parallel"
	"github.com/born-ml/pocket/internal/tensor"
)

// GlobalMaxPooling2D reduces a (height, width, channel) tensor to the per-channel maximum.
//
// Channels are split into one contiguous range per dispatcher worker.
type GlobalMaxPooling2D struct{}

// ReadGlobalMaxPooling2D creates the layer. Its block is empty.
func ReadGlobalMaxPooling2D(io.Reader) (*GlobalMaxPooling2D, error) {
	return &GlobalMaxPooling2D{}, nil
}

// Kind returns KindGlobalMaxPooling2D.
func (*GlobalMaxPooling2D) Kind() Kind {
	return KindGlobalMaxPooling2D
}

// Apply writes a rank-1 tensor of channel maxima. NaN values are skipped.
func (*GlobalMaxPooling2D) Apply(ld *LayerData) error {
	ld.check(KindGlobalMaxPooling2D)
	in, out := ld.In, ld.Out

	iw := in.Dims()
	if len(iw) != 3 {
		return shapeErrorf(KindGlobalMaxPooling2D, "input tensor dims count must be 3 (input dims: %v)", iw)
	}

	pixels, channels := iw[0]*iw[1], iw[2]
	out.Resize(1, 1, channels)
	out.Fill(tensor.Type(math.Inf(-1)))

	x, o := in.Data(), out.Data()
	parallel.For(ld.Dispatcher, channels, 0, func(begin, end int) {
		for z := begin; z < end; z++ {
			m := o[z]
			for p := 0; p < pixels; p++ {
				if v := x[p*channels+z]; v > m {
					m = v
				}
			}
			o[z] = m
		}
	})

	out.Flatten()
	return nil
}
