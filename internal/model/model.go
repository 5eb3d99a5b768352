// Package model loads a sequence of layers from a binary stream and runs inference over it.
//
// Stream layout:
//
//	uint32 layerCount
//	layerCount × { uint32 layerTag, layer block }
//
// Nothing may follow the last layer block.
package model

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/pocket/internal/nn"
	"github.com/born-ml/pocket/internal/parallel"
	"github.com/born-ml/pocket/internal/serialization"
	"github.com/born-ml/pocket/internal/tensor"
)

// maxLayers caps the layer count a stream may declare.
const maxLayers = 1 << 16

// Config controls how a model executes its layers.
type Config = nn.Config

// DefaultConfig returns a configuration using every CPU.
func DefaultConfig() Config {
	return nn.DefaultConfig()
}

// Model is an ordered, immutable sequence of layers plus the dispatcher they share.
//
// Predict is not safe for concurrent use: the dispatcher joins one batch at a time.
type Model struct {
	layers     []nn.Layer
	cfg        Config
	dispatcher *parallel.Dispatcher
}

// New assembles a model from layers built in code, applied in the given order.
// The returned model owns a dispatcher; call Close when done.
func New(layers []nn.Layer, cfg Config) (*Model, error) {
	if len(layers) == 0 {
		return nil, serialization.ErrEmptyModel
	}
	for i, l := range layers {
		if l == nil {
			return nil, errors.Errorf("layer %d is nil", i)
		}
	}

	return &Model{
		layers:     append([]nn.Layer(nil), layers...),
		cfg:        cfg,
		dispatcher: parallel.NewDispatcher(cfg.Parallel.Threads),
	}, nil
}

// Load decodes a model stream. The returned model owns a dispatcher; call Close when done.
func Load(r io.Reader, cfg Config) (*Model, error) {
	layers, err := readLayers(r)
	if err != nil {
		return nil, err
	}

	m, err := New(layers, cfg)
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("model loaded: %d layers, %d threads", len(layers), m.dispatcher.Threads())
	return m, nil
}

// Open memory-maps the model file at path and loads it.
func Open(path string, cfg Config) (*Model, error) {
	f, err := serialization.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open model")
	}
	defer f.Close()

	klog.V(2).Infof("mapped %s (%d bytes)", path, f.Size())
	m, err := Load(f, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return m, nil
}

func readLayers(r io.Reader) ([]nn.Layer, error) {
	count, err := serialization.ReadUint32(r)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, errors.Wrap(err, "read layer count")
	}
	if count == 0 {
		return nil, serialization.ErrEmptyModel
	}
	if count > maxLayers {
		return nil, errors.Errorf("layer count %d exceeds limit %d", count, maxLayers)
	}

	layers := make([]nn.Layer, 0, count)
	for i := 0; i < int(count); i++ {
		kind, err := nn.ReadTag(r)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d", i)
		}
		layer, err := nn.ReadKind(r, kind)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d (%s)", i, kind)
		}
		klog.V(2).Infof("layer %d: %s", i, kind)
		layers = append(layers, layer)
	}

	if err := serialization.CheckEnd(r); err != nil {
		klog.Errorf("model stream: %v", err)
		return nil, errors.Wrapf(err, "after layer %d", count-1)
	}
	return layers, nil
}

// Layers returns the layers in execution order. The slice must not be modified.
func (m *Model) Layers() []nn.Layer {
	return m.layers
}

// EmbeddingRows returns the lookup-table size of the first layer after any Input
// layers, if that layer is an Embedding.
func (m *Model) EmbeddingRows() (int, bool) {
	for _, l := range m.layers {
		if _, ok := l.(*nn.Input); ok {
			continue
		}
		if e, ok := l.(*nn.Embedding); ok {
			return e.Weights().Dims()[0], true
		}
		break
	}
	return 0, false
}

// Config returns the execution configuration.
func (m *Model) Config() Config {
	return m.cfg
}

// Predict runs every layer in order, feeding each output into the next layer, and stores
// the final output in out. in is not modified; out may be the same tensor as in.
//
// A layer that rejects its input aborts the pass; the returned error matches
// nn.ErrInvalidInput and names the layer.
func (m *Model) Predict(in, out *tensor.Tensor) error {
	if !in.IsValid() {
		return errors.Wrap(nn.ErrInvalidInput, "predict: input tensor is empty")
	}

	var a, b tensor.Tensor
	in.CopyTo(&a)

	ld := nn.LayerData{In: &a, Out: &b, Config: &m.cfg, Dispatcher: m.dispatcher}
	for i, layer := range m.layers {
		if err := layer.Apply(&ld); err != nil {
			klog.Errorf("layer %d (%s) apply failed: %v", i, layer.Kind(), err)
			return errors.Wrapf(err, "layer %d (%s)", i, layer.Kind())
		}
		a, b = b, a
	}

	a.MoveTo(out)
	return nil
}

// Close stops the dispatcher workers. The model must not be used afterwards.
func (m *Model) Close() {
	m.dispatcher.Close()
}

// String lists the layers and their parameter shapes.
func (m *Model) String() string {
	s := fmt.Sprintf("model: %d layers", len(m.layers))
	for i, layer := range m.layers {
		s += fmt.Sprintf("\n  %d: %s", i, describe(layer))
	}
	return s
}

func describe(layer nn.Layer) string {
	switch l := layer.(type) {
	case *nn.Dense:
		return fmt.Sprintf("dense weights=%v activation=%s", l.Weights().Dims(), l.Activation().Type())
	case *nn.LocallyConnected1D:
		return fmt.Sprintf("locally_connected_1d weights=%v activation=%s", l.Weights().Dims(), l.Activation().Type())
	case *nn.Embedding:
		return fmt.Sprintf("embedding weights=%v", l.Weights().Dims())
	case *nn.Activation:
		return fmt.Sprintf("activation %s", l.Type())
	default:
		return layer.Kind().String()
	}
}
