// Package tokenizer converts text into index tensors for pocket models that begin
// with an Embedding layer.
//
// Example usage:
//
//	import "github.com/born-ml/pocket/tokenizer"
//
//	tok, err := tokenizer.NewTikToken("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	in, err := tokenizer.Indices(tok, "Hello, world!")
//	if err != nil {
//	    log.Fatal(err)
//	}
package tokenizer

import (
	"github.com/born-ml/pocket/internal/tensor"
	"github.com/born-ml/pocket/internal/tokenizer"
)

// Tokenizer converts text to token IDs.
type Tokenizer = tokenizer.Tokenizer

// Errors returned by Indices and CheckVocabulary.
var (
	ErrEmptyText     = tokenizer.ErrEmptyText
	ErrVocabTooLarge = tokenizer.ErrVocabTooLarge
)

// NewTikToken creates a new TikToken tokenizer with the specified encoding.
//
// Supported encodings: "cl100k_base" (GPT-4), "p50k_base" (GPT-3), "r50k_base".
func NewTikToken(encodingName string) (Tokenizer, error) {
	tok, err := tokenizer.NewTikToken(encodingName)
	if err != nil {
		return nil, err
	}
	return tok, nil
}

// Indices encodes text into a (tokens, 1) tensor of token IDs.
func Indices(tok Tokenizer, text string) (*tensor.Tensor, error) {
	return tokenizer.Indices(tok, text)
}

// CheckVocabulary reports whether every ID tok can produce has a row in an embedding
// table of the given size.
func CheckVocabulary(tok Tokenizer, rows int) error {
	return tokenizer.CheckVocabulary(tok, rows)
}
