// Package nn implements the layers of the pocket inference engine.
//
// Every layer is created once from a binary stream and is immutable afterwards. A forward
// pass threads a LayerData through the layers in order:
//
//	ld := &nn.LayerData{In: in, Out: out, Config: &cfg, Dispatcher: d}
//	if err := layer.Apply(ld); err != nil {
//	    // input shape rejected, out is unspecified
//	}
//
// Parameter tensors are shared read-only between concurrent tasks; outputs are written
// through disjoint index ranges only.
package nn

import (
	"fmt"
	"io"

	"k8s.io/klog/v2"

	"github.com/born-ml/pocket/internal/parallel"
	"github.com/born-ml/pocket/internal/serialization"
	"github.com/born-ml/pocket/internal/tensor"
)

// Kind is the layer tag written in front of every layer block of a model stream.
type Kind uint32

// Layer tags.
const (
	KindDense              Kind = 1
	KindLocallyConnected1D Kind = 4
	KindActivation         Kind = 8
	KindEmbedding          Kind = 11
	KindGlobalMaxPooling2D Kind = 16
	KindInput              Kind = 17
)

// String returns a human-readable layer name.
func (k Kind) String() string {
	switch k {
	case KindDense:
		return "dense"
	case KindLocallyConnected1D:
		return "locally_connected_1d"
	case KindActivation:
		return "activation"
	case KindEmbedding:
		return "embedding"
	case KindGlobalMaxPooling2D:
		return "global_max_pooling_2d"
	case KindInput:
		return "input"
	default:
		return fmt.Sprintf("Kind(%d)", uint32(k))
	}
}

// Layer is one stage of a feed-forward computation.
type Layer interface {
	// Kind returns the layer tag.
	Kind() Kind

	// Apply reads ld.In and writes a fully resized ld.Out.
	//
	// Returns a *ShapeError, leaving ld.Out unspecified, if the input violates the
	// layer's structural precondition.
	Apply(ld *LayerData) error
}

// Config is read-only configuration shared by every layer during a forward pass.
type Config struct {
	Parallel parallel.Config
}

// DefaultConfig returns the configuration used when LayerData carries none.
func DefaultConfig() Config {
	return Config{Parallel: parallel.DefaultConfig()}
}

// LayerData is the execution context of one Apply call. It owns none of its fields.
//
// In and Out must be distinct tensors. A nil Dispatcher runs everything on the calling
// goroutine.
type LayerData struct {
	In         *tensor.Tensor
	Out        *tensor.Tensor
	Config     *Config
	Dispatcher *parallel.Dispatcher
}

func (ld *LayerData) check(kind Kind) {
	if ld.In == nil || ld.Out == nil {
		panic(fmt.Sprintf("%s: layer data needs both input and output tensors", kind))
	}
	if ld.In == ld.Out {
		panic(fmt.Sprintf("%s: input and output tensors alias", kind))
	}
}

func (ld *LayerData) minChunkSize() int {
	if ld.Config == nil {
		return parallel.DefaultConfig().MinChunkSize
	}
	return ld.Config.Parallel.MinChunkSize
}

// Factory decodes one layer block, the layer tag already consumed.
type Factory func(r io.Reader) (Layer, error)

var factories = map[Kind]Factory{
	KindInput:              factory(ReadInput),
	KindDense:              factory(ReadDense),
	KindEmbedding:          factory(ReadEmbedding),
	KindLocallyConnected1D: factory(ReadLocallyConnected1D),
	KindGlobalMaxPooling2D: factory(ReadGlobalMaxPooling2D),
	KindActivation:         factory(ReadActivation),
}

// factory adapts a concrete reader so that failures yield a nil Layer, not a typed nil.
func factory[L Layer](read func(io.Reader) (L, error)) Factory {
	return func(r io.Reader) (Layer, error) {
		l, err := read(r)
		if err != nil {
			return nil, err
		}
		return l, nil
	}
}

// ReadTag reads a layer tag and checks that a factory exists for it.
func ReadTag(r io.Reader) (Kind, error) {
	v, err := serialization.ReadUint32(r)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err == nil {
		if _, ok := factories[Kind(v)]; !ok {
			err = fmt.Errorf("%w: %d", serialization.ErrUnknownLayer, v)
		}
	}
	if err != nil {
		err = fieldError("layer", "tag", err)
		klog.Errorf("layer parse failed: %v", err)
		return 0, err
	}
	return Kind(v), nil
}

// ReadKind decodes the block of a layer whose tag has already been read.
// Failures are logged here, once per layer.
func ReadKind(r io.Reader, kind Kind) (Layer, error) {
	f, ok := factories[kind]
	if !ok {
		err := fieldError("layer", "tag", fmt.Errorf("%w: %d", serialization.ErrUnknownLayer, uint32(kind)))
		klog.Errorf("layer parse failed: %v", err)
		return nil, err
	}
	l, err := f(r)
	if err != nil {
		klog.Errorf("%s parse failed: %v", kind, err)
		return nil, err
	}
	return l, nil
}

// Read decodes a tagged layer block.
func Read(r io.Reader) (Layer, error) {
	kind, err := ReadTag(r)
	if err != nil {
		return nil, err
	}
	return ReadKind(r, kind)
}

func fieldError(block, field string, err error) error {
	return &serialization.FieldError{Block: block, Field: field, Err: err}
}
