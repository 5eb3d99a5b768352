package serialization

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// chunkValues bounds the scratch buffer used when decoding float arrays.
const chunkValues = 4096

// ReadUint32 reads one little-endian uint32.
// A stream that ends inside the value yields io.ErrUnexpectedEOF, an empty one io.EOF.
func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteUint32 writes one little-endian uint32.
func WriteUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadFloat32s fills dst with little-endian float32 values.
//
// Running out of input at any point, including before the first value, is reported as
// io.ErrUnexpectedEOF: the caller always knows the exact count it expects.
func ReadFloat32s(r io.Reader, dst []float32) error {
	buf := make([]byte, 4*min(len(dst), chunkValues))
	for done := 0; done < len(dst); {
		n := min(len(dst)-done, chunkValues)
		if _, err := io.ReadFull(r, buf[:4*n]); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return fmt.Errorf("read values %d..%d of %d: %w", done, done+n, len(dst), err)
		}
		for i := 0; i < n; i++ {
			dst[done+i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
		}
		done += n
	}
	return nil
}

// WriteFloat32s writes src as little-endian float32 values.
func WriteFloat32s(w io.Writer, src []float32) error {
	buf := make([]byte, 4*min(len(src), chunkValues))
	for done := 0; done < len(src); {
		n := min(len(src)-done, chunkValues)
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(src[done+i]))
		}
		if _, err := w.Write(buf[:4*n]); err != nil {
			return err
		}
		done += n
	}
	return nil
}

// CheckEnd returns ErrTrailingData unless r is exhausted.
// A MappedFile reports its remaining length without consuming anything.
func CheckEnd(r io.Reader) error {
	if f, ok := r.(interface{ Remaining() int64 }); ok {
		if n := f.Remaining(); n > 0 {
			return fmt.Errorf("%w: %d bytes", ErrTrailingData, n)
		}
		return nil
	}

	var b [1]byte
	switch _, err := io.ReadFull(r, b[:]); err {
	case io.EOF:
		return nil
	case nil:
		return ErrTrailingData
	default:
		return err
	}
}
