//go:build pocket_double

package tensor

import (
	"io"

	"github.com/born-ml/pocket/internal/serialization"
)

// Type is the storage element type. The wire format is always float32.
type Type = float64

// typeBits is the bit size of Type, used when formatting values.
const typeBits = 64

// decodeValues reads len(dst) float32 wire values and widens them one by one.
func decodeValues(r io.Reader, dst []Type) error {
	wire := make([]float32, len(dst))
	if err := serialization.ReadFloat32s(r, wire); err != nil {
		return err
	}
	for i, v := range wire {
		dst[i] = Type(v)
	}
	return nil
}

// encodeValues narrows src to float32 for the wire.
func encodeValues(w io.Writer, src []Type) error {
	wire := make([]float32, len(src))
	for i, v := range src {
		wire[i] = float32(v)
	}
	return serialization.WriteFloat32s(w, wire)
}
