// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model provides the public API for loading and running pocket models.
//
// Example:
//
//	m, err := model.Open("classifier.model", model.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//
//	out := &tensor.Tensor{}
//	if err := m.Predict(in, out); err != nil {
//	    log.Fatal(err)
//	}
package model

import (
	"io"

	"github.com/born-ml/pocket/internal/model"
	"github.com/born-ml/pocket/internal/nn"
)

// Model is a loaded layer sequence ready for inference.
type Model = model.Model

// Config controls how a model executes its layers.
type Config = model.Config

// ErrInvalidInput is matched by Predict errors caused by an input a layer rejects.
var ErrInvalidInput = nn.ErrInvalidInput

// DefaultConfig returns a configuration using every CPU.
func DefaultConfig() Config {
	return model.DefaultConfig()
}

// New assembles a model from layers built in code.
func New(layers []nn.Layer, cfg Config) (*Model, error) {
	return model.New(layers, cfg)
}

// Load decodes a model stream.
func Load(r io.Reader, cfg Config) (*Model, error) {
	return model.Load(r, cfg)
}

// Open memory-maps and loads the model file at path.
func Open(path string, cfg Config) (*Model, error) {
	return model.Open(path, cfg)
}
