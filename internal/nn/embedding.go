package nn

import (
	"fmt"
	"io"

	"github.com/born-ml/pocket/internal/serialization"
	"github.com/born-ml/pocket/internal/tensor"
)

// Embedding maps integer indices to rows of a lookup table.
//
// Input: (sequence_len, features) tensor of indices stored as floats.
// Output: (sequence_len, features, embedding_dim).
type Embedding struct {
	weights *tensor.Tensor
}

// NewEmbedding wraps a (vocabulary, embedding_dim) table.
func NewEmbedding(weights *tensor.Tensor) (*Embedding, error) {
	if weights.Rank() != 2 {
		return nil, fmt.Errorf("%w: embedding weights dims %v", serialization.ErrInvalidRank, weights.Dims())
	}
	return &Embedding{weights: weights}, nil
}

// ReadEmbedding decodes the lookup table.
func ReadEmbedding(r io.Reader) (*Embedding, error) {
	weights, err := tensor.Read(r, 2)
	if err != nil {
		return nil, fieldError("embedding", "weights", err)
	}
	return &Embedding{weights: weights}, nil
}

// Kind returns KindEmbedding.
func (e *Embedding) Kind() Kind {
	return KindEmbedding
}

// Weights returns the lookup table.
func (e *Embedding) Weights() *tensor.Tensor {
	return e.weights
}

// Apply copies table row int(in[i][j]) into out[i][j]. Indices truncate toward zero.
func (e *Embedding) Apply(ld *LayerData) error {
	ld.check(KindEmbedding)
	in, out := ld.In, ld.Out

	iw := in.Dims()
	if len(iw) != 2 {
		return shapeErrorf(KindEmbedding, "input tensor dims count must be 2 (input dims: %v)", iw)
	}

	vocab, dim := e.weights.Dims()[0], e.weights.Dims()[1]
	table := e.weights.Data()

	out.Resize(iw[0], iw[1], dim)
	o := out.Data()

	for i, v := range in.Data() {
		// int truncates toward zero, so (-1, vocab) covers exactly the valid rows; NaN fails both.
		if !(v > -1 && v < tensor.Type(vocab)) {
			return shapeErrorf(KindEmbedding, "index %v at position %d outside table of %d rows (weights dims: %v)",
				v, i, vocab, e.weights.Dims())
		}
		row := int(v)
		copy(o[i*dim:(i+1)*dim], table[row*dim:(row+1)*dim])
	}
	return nil
}
