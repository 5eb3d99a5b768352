package nn

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/born-ml/pocket/internal/parallel"
	"github.com/born-ml/pocket/internal/serialization"
	"github.com/born-ml/pocket/internal/tensor"
)

func mustTensor(t *testing.T, data []tensor.Type, dims ...int) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromSlice(data, dims...)
	require.NoError(t, err)
	return x
}

func randomTensor(rng *rand.Rand, dims ...int) *tensor.Tensor {
	x := tensor.New(dims...)
	for i := range x.Data() {
		x.Data()[i] = tensor.Type(rng.Float64()*2 - 1)
	}
	return x
}

// streamBuilder assembles layer blocks for factory tests.
type streamBuilder struct {
	t   *testing.T
	buf bytes.Buffer
}

func newStream(t *testing.T) *streamBuilder {
	return &streamBuilder{t: t}
}

func (s *streamBuilder) uint32(v uint32) *streamBuilder {
	require.NoError(s.t, serialization.WriteUint32(&s.buf, v))
	return s
}

func (s *streamBuilder) tensor(x *tensor.Tensor) *streamBuilder {
	_, err := x.WriteTo(&s.buf)
	require.NoError(s.t, err)
	return s
}

func (s *streamBuilder) bytes() []byte {
	return s.buf.Bytes()
}

// applyWith runs layer on in with a dispatcher of the given size.
// MinChunkSize 1 forces every splittable loop onto the workers.
func applyWith(t *testing.T, layer Layer, in *tensor.Tensor, threads int) (*tensor.Tensor, error) {
	t.Helper()
	d := parallel.NewDispatcher(threads)
	defer d.Close()

	cfg := Config{Parallel: parallel.Config{Threads: threads, MinChunkSize: 1}}
	out := &tensor.Tensor{}
	err := layer.Apply(&LayerData{In: in, Out: out, Config: &cfg, Dispatcher: d})
	return out, err
}
