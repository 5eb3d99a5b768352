// Package tokenizer turns text into index tensors for models that start with an
// Embedding layer.
//
// Token IDs come from OpenAI's BPE encodings through tiktoken:
//
//	tok, err := tokenizer.NewTikToken("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// (tokens, 1) tensor, one index per row.
//	in, err := tokenizer.Indices(tok, "Hello, world!")
//	if err != nil {
//	    log.Fatal(err)
//	}
package tokenizer
