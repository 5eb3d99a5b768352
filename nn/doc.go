// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layers pocket models are made of.
//
// # Overview
//
// This package contains:
//   - Layers: Input, Dense, Embedding, LocallyConnected1D, GlobalMaxPooling2D
//   - Activations: Linear, ReLU, ELU, SoftPlus, SoftSign, Sigmoid, Tanh, HardSigmoid, Softmax
//   - Stream decoding: Read, one tagged layer block at a time
//
// Layers are normally decoded from a model file by model.Open. They can also be built
// in code and assembled with model.New:
//
//	relu, _ := nn.NewActivation(nn.ReLU)
//	hidden, err := nn.NewDense(weights, biases, relu)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m, err := model.New([]nn.Layer{nn.NewInput(), hidden}, model.DefaultConfig())
//
// # Shapes
//
// Dense: (inputs) → (outputs)
//
// Embedding: (sequence, features) → (sequence, features, dim)
//
// LocallyConnected1D: (steps, channels) → (positions, filters)
//
// GlobalMaxPooling2D: (height, width, channels) → (channels)
//
// Apply returns an error matching ErrInvalidInput when the input shape is rejected.
package nn
