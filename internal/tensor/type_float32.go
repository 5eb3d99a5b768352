//go:build !pocket_double

package tensor

import (
	"io"

	"github.com/born-ml/pocket/internal/serialization"
)

// Type is the storage element type. The wire format is always float32.
type Type = float32

// typeBits is the bit size of Type, used when formatting values.
const typeBits = 32

// decodeValues reads len(dst) wire values straight into storage.
func decodeValues(r io.Reader, dst []Type) error {
	return serialization.ReadFloat32s(r, dst)
}

// encodeValues writes src in wire precision.
func encodeValues(w io.Writer, src []Type) error {
	return serialization.WriteFloat32s(w, src)
}
