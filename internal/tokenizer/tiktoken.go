package tokenizer

import (
	"fmt"
	"sort"

	"github.com/pkoukk/tiktoken-go"
)

// EncodingCL100kBase is the encoding of GPT-4 and GPT-3.5-turbo.
const EncodingCL100kBase = "cl100k_base"

// idBounds maps each supported encoding to one past its largest ordinary token ID.
// Special tokens are never produced by Encode, so they are not counted.
var idBounds = map[string]int{
	EncodingCL100kBase: 100256,
	"p50k_base":        50281,
	"r50k_base":        50256,
}

// Encodings returns the supported encoding names in sorted order.
func Encodings() []string {
	names := make([]string, 0, len(idBounds))
	for name := range idBounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TikToken encodes text with one of OpenAI's BPE encodings.
//
// The BPE ranks are fetched on first use and cached by tiktoken-go
// (see TIKTOKEN_CACHE_DIR).
type TikToken struct {
	bpe   *tiktoken.Tiktoken
	bound int
}

// NewTikToken loads the named encoding. Only encodings with a known ID bound are
// accepted, since Embedding tables are sized against it.
func NewTikToken(encoding string) (*TikToken, error) {
	bound, ok := idBounds[encoding]
	if !ok {
		return nil, fmt.Errorf("unsupported encoding %q (supported: %v)", encoding, Encodings())
	}
	bpe, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load encoding %q: %w", encoding, err)
	}
	return &TikToken{bpe: bpe, bound: bound}, nil
}

// Encode converts text to token IDs. Special-token markers are encoded as plain text.
func (t *TikToken) Encode(text string) ([]int32, error) {
	ids := t.bpe.Encode(text, nil, nil)

	out := make([]int32, len(ids))
	for i, id := range ids {
		if id < 0 || id >= t.bound {
			return nil, fmt.Errorf("token %d at position %d outside encoding range [0, %d)", id, i, t.bound)
		}
		out[i] = int32(id) //nolint:gosec // G115: bounded by t.bound above.
	}
	return out, nil
}

// VocabSize returns one past the largest token ID Encode can produce.
func (t *TikToken) VocabSize() int {
	return t.bound
}
