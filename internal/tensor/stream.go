package tensor

import (
	"fmt"
	"io"
	"math"

	"github.com/born-ml/pocket/internal/serialization"
)

// maxElements caps the element count a stream may declare.
const maxElements = math.MaxInt32

// Read decodes a tensor block of the given rank: rank uint32 extents followed by
// product(extents) float32 values.
//
// Returns a nil tensor and an error if rank is not positive, an extent is zero, or the
// stream ends early. On failure r may have been partially consumed.
func Read(r io.Reader, rank int) (*Tensor, error) {
	if rank <= 0 {
		return nil, fmt.Errorf("%w: %d", serialization.ErrInvalidRank, rank)
	}

	dims := make(Shape, rank)
	size := 1
	for i := range dims {
		extent, err := serialization.ReadUint32(r)
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, &serialization.FieldError{Block: "tensor", Field: fmt.Sprintf("extent %d", i), Err: err}
		}
		if extent == 0 {
			return nil, &serialization.FieldError{
				Block: "tensor", Field: fmt.Sprintf("extent %d", i), Err: serialization.ErrZeroExtent,
			}
		}
		if uint64(size)*uint64(extent) > maxElements {
			return nil, &serialization.FieldError{
				Block: "tensor", Field: fmt.Sprintf("extent %d", i), Err: serialization.ErrTensorTooLarge,
			}
		}
		dims[i] = int(extent)
		size *= int(extent)
	}

	data := make([]Type, size)
	if err := decodeValues(r, data); err != nil {
		return nil, &serialization.FieldError{Block: "tensor", Field: "data", Err: err}
	}
	return &Tensor{dims: dims, data: data}, nil
}

// WriteTo encodes t as a tensor block (extents, then values), the inverse of Read.
// It implements io.WriterTo.
func (t *Tensor) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	for _, d := range t.dims {
		if err := serialization.WriteUint32(cw, uint32(d)); err != nil {
			return cw.n, err
		}
	}
	err := encodeValues(cw, t.data)
	return cw.n, err
}

// ReadRanked decodes a uint32 rank followed by a tensor block of that rank.
func ReadRanked(r io.Reader) (*Tensor, error) {
	rank, err := serialization.ReadUint32(r)
	if err != nil {
		return nil, &serialization.FieldError{Block: "tensor", Field: "rank", Err: err}
	}
	if rank == 0 || rank > 8 {
		return nil, &serialization.FieldError{
			Block: "tensor", Field: "rank", Err: fmt.Errorf("%w: %d", serialization.ErrInvalidRank, rank),
		}
	}
	return Read(r, int(rank))
}

// WriteRanked encodes t prefixed by its rank, the inverse of ReadRanked.
func (t *Tensor) WriteRanked(w io.Writer) error {
	if err := serialization.WriteUint32(w, uint32(len(t.dims))); err != nil {
		return err
	}
	_, err := t.WriteTo(w)
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
