// Package main provides the pocket inference CLI.
//
// Usage:
//
//	pocket -model classifier.model -input sample.tensor
//	pocket -model sentiment.model -text "great movie" -encoding cl100k_base
//
// The input file holds a uint32 rank followed by a tensor block. Text input is
// tokenized into a (tokens, 1) index tensor for models that start with an Embedding
// layer. The output tensor is printed in bracketed form.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"k8s.io/klog/v2"

	"github.com/born-ml/pocket/internal/model"
	"github.com/born-ml/pocket/internal/serialization"
	"github.com/born-ml/pocket/internal/tensor"
	"github.com/born-ml/pocket/internal/tokenizer"
)

const version = "v0.1.0-dev"

var (
	errUsage       = errors.New("usage")
	errNoEmbedding = errors.New("-text needs a model whose first layer is an embedding")
)

type options struct {
	model    string
	input    string
	text     string
	encoding string
	checksum string
	threads  int
	minChunk int
	summary  bool
	version  bool
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	klog.Flush()

	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "pocket: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("pocket", flag.ContinueOnError)
	fs.SetOutput(stderr)
	klog.InitFlags(fs)

	opts := &options{}
	defaults := model.DefaultConfig()
	fs.StringVar(&opts.model, "model", "", "model file")
	fs.StringVar(&opts.input, "input", "", "input tensor file (uint32 rank + tensor block)")
	fs.StringVar(&opts.text, "text", "", "text to tokenize into an index tensor")
	fs.StringVar(&opts.encoding, "encoding", tokenizer.EncodingCL100kBase, "tiktoken encoding used with -text")
	fs.StringVar(&opts.checksum, "sha256", "", "expected SHA-256 of the model file, hex")
	fs.IntVar(&opts.threads, "threads", defaults.Parallel.Threads, "dispatcher worker count")
	fs.IntVar(&opts.minChunk, "min-chunk", defaults.Parallel.MinChunkSize, "minimum rows before a layer loop is split across workers")
	fs.BoolVar(&opts.summary, "summary", false, "print the model layers")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.version {
		return opts, nil
	}
	if opts.model == "" || (opts.input == "") == (opts.text == "") {
		fmt.Fprintln(stderr, "pocket: -model and exactly one of -input or -text are required")
		fs.Usage()
		return nil, errUsage
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.version {
		fmt.Fprintf(stdout, "pocket %s\n", version)
		return nil
	}

	sum, err := fileChecksum(opts.model)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "model sha256: %s\n", serialization.FormatChecksum(sum))
	if opts.checksum != "" {
		expected, err := serialization.ParseChecksum(opts.checksum)
		if err != nil {
			return err
		}
		if err := serialization.ValidateChecksum(sum, expected); err != nil {
			return fmt.Errorf("%s: %w", opts.model, err)
		}
	}

	cfg := model.DefaultConfig()
	cfg.Parallel.Threads = opts.threads
	cfg.Parallel.MinChunkSize = opts.minChunk

	m, err := model.Open(opts.model, cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if opts.summary {
		fmt.Fprintln(stdout, m)
	}

	in, err := loadInput(opts, m)
	if err != nil {
		return err
	}
	klog.V(1).Infof("input dims %v", in.Dims())

	out := &tensor.Tensor{}
	if err := m.Predict(in, out); err != nil {
		return err
	}
	fmt.Fprintln(stdout, out)
	return nil
}

func fileChecksum(path string) ([32]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return [32]byte{}, err
	}
	defer f.Close()

	return serialization.ComputeChecksumReader(f)
}

func loadInput(opts *options, m *model.Model) (*tensor.Tensor, error) {
	if opts.text != "" {
		rows, ok := m.EmbeddingRows()
		if !ok {
			return nil, errNoEmbedding
		}
		tok, err := tokenizer.NewTikToken(opts.encoding)
		if err != nil {
			return nil, err
		}
		return textInput(tok, rows, opts.text)
	}

	f, err := os.Open(opts.input)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	in, err := tensor.ReadRanked(f)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", opts.input, err)
	}
	return in, nil
}

// textInput tokenizes text for an embedding table of the given size. The whole encoding
// must fit the table, not just the tokens of this text.
func textInput(tok tokenizer.Tokenizer, rows int, text string) (*tensor.Tensor, error) {
	if err := tokenizer.CheckVocabulary(tok, rows); err != nil {
		return nil, err
	}
	return tokenizer.Indices(tok, text)
}
