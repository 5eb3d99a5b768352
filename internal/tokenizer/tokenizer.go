package tokenizer

import (
	"errors"
	"fmt"

	"github.com/born-ml/pocket/internal/tensor"
)

// Errors returned by Indices and CheckVocabulary.
var (
	ErrEmptyText     = errors.New("text produced no tokens")
	ErrVocabTooLarge = errors.New("tokenizer vocabulary exceeds embedding table")
)

// Tokenizer converts text to token IDs.
type Tokenizer interface {
	// Encode converts text to token IDs.
	Encode(text string) ([]int32, error)

	// VocabSize returns one past the largest ID Encode can produce.
	VocabSize() int
}

// maxExactIndex is the largest integer every tensor.Type represents exactly.
const maxExactIndex = 1 << 24

// Indices encodes text into a (tokens, 1) tensor of token IDs stored as floats,
// the input layout of nn.Embedding.
func Indices(tok Tokenizer, text string) (*tensor.Tensor, error) {
	ids, err := tok.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if len(ids) == 0 {
		return nil, ErrEmptyText
	}

	data := make([]tensor.Type, len(ids))
	for i, id := range ids {
		if id < 0 || id > maxExactIndex {
			return nil, fmt.Errorf("token %d at position %d is not representable as an index", id, i)
		}
		data[i] = tensor.Type(id)
	}
	return tensor.FromSlice(data, len(ids), 1)
}

// CheckVocabulary reports whether every ID tok can produce has a row in an embedding
// table of the given size.
func CheckVocabulary(tok Tokenizer, rows int) error {
	if n := tok.VocabSize(); n > rows {
		return fmt.Errorf("%w: %d token IDs, %d rows", ErrVocabTooLarge, n, rows)
	}
	return nil
}
