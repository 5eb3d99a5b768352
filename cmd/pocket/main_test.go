package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/pocket/internal/nn"
	"github.com/born-ml/pocket/internal/serialization"
	"github.com/born-ml/pocket/internal/tensor"
	"github.com/born-ml/pocket/internal/tokenizer"
)

// writeFixtures writes a two-layer model (Input → Dense(2→1)) and a matching input file.
func writeFixtures(t *testing.T) (modelPath, inputPath string) {
	t.Helper()
	dir := t.TempDir()

	var buf bytes.Buffer
	require.NoError(t, serialization.WriteUint32(&buf, 2))
	require.NoError(t, serialization.WriteUint32(&buf, uint32(nn.KindInput)))
	require.NoError(t, serialization.WriteUint32(&buf, uint32(nn.KindDense)))
	_, err := tensor.New(1, 2).WriteTo(&buf) // zero weights
	require.NoError(t, err)
	bias, err := tensor.FromSlice([]tensor.Type{1.5}, 1)
	require.NoError(t, err)
	_, err = bias.WriteTo(&buf)
	require.NoError(t, err)
	require.NoError(t, serialization.WriteUint32(&buf, uint32(nn.Linear)))

	modelPath = filepath.Join(dir, "bias.model")
	require.NoError(t, os.WriteFile(modelPath, buf.Bytes(), 0o600))

	buf.Reset()
	require.NoError(t, tensor.New(2).WriteRanked(&buf))
	inputPath = filepath.Join(dir, "input.tensor")
	require.NoError(t, os.WriteFile(inputPath, buf.Bytes(), 0o600))

	return modelPath, inputPath
}

func TestRun_Predict(t *testing.T) {
	modelPath, inputPath := writeFixtures(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{"-model", modelPath, "-input", inputPath, "-threads", "2", "-summary"}, &stdout, &stderr)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "model sha256: "))
	assert.Contains(t, stdout.String(), "model: 2 layers")
	assert.Equal(t, "[1.5]", lines[len(lines)-1])
}

func TestRun_Checksum(t *testing.T) {
	modelPath, inputPath := writeFixtures(t)
	data, err := os.ReadFile(modelPath)
	require.NoError(t, err)
	good := serialization.FormatChecksum(serialization.ComputeChecksum(data))

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-model", modelPath, "-input", inputPath, "-sha256", good}, &stdout, &stderr))

	bad := serialization.FormatChecksum(serialization.ComputeChecksum([]byte("other")))
	err = run([]string{"-model", modelPath, "-input", inputPath, "-sha256", bad}, &stdout, &stderr)
	assert.ErrorIs(t, err, serialization.ErrChecksumMismatch)
}

func TestRun_Usage(t *testing.T) {
	modelPath, inputPath := writeFixtures(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no model", []string{"-input", inputPath}},
		{"no input", []string{"-model", modelPath}},
		{"both inputs", []string{"-model", modelPath, "-input", inputPath, "-text", "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(tt.args, &stdout, &stderr)
			assert.ErrorIs(t, err, errUsage)
			assert.Contains(t, stderr.String(), "exactly one of -input or -text")
		})
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-version"}, &stdout, &stderr))
	assert.Equal(t, "pocket "+version+"\n", stdout.String())
}

func TestRun_BadInput(t *testing.T) {
	modelPath, _ := writeFixtures(t)

	path := filepath.Join(t.TempDir(), "wide.tensor")
	var buf bytes.Buffer
	require.NoError(t, tensor.New(3).WriteRanked(&buf))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	var stdout, stderr bytes.Buffer
	err := run([]string{"-model", modelPath, "-input", path}, &stdout, &stderr)
	assert.ErrorIs(t, err, nn.ErrInvalidInput)
}

func TestRun_TextNeedsEmbedding(t *testing.T) {
	modelPath, _ := writeFixtures(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{"-model", modelPath, "-text", "hello"}, &stdout, &stderr)
	assert.ErrorIs(t, err, errNoEmbedding)
}

// letters maps a..z to IDs 0..25.
type letters struct{}

func (letters) Encode(text string) ([]int32, error) {
	ids := make([]int32, 0, len(text))
	for _, r := range text {
		ids = append(ids, r-'a')
	}
	return ids, nil
}

func (letters) VocabSize() int {
	return 26
}

func TestTextInput(t *testing.T) {
	in, err := textInput(letters{}, 26, "cab")
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 1}, in.Dims())
	assert.Equal(t, []tensor.Type{2, 0, 1}, in.Data())

	_, err = textInput(letters{}, 10, "abc")
	assert.ErrorIs(t, err, tokenizer.ErrVocabTooLarge)
}
