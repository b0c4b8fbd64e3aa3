// Copyright 2025 QuatNN Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// It wraps any backend with a gradient tape that records operations during
// the forward pass and replays them in reverse to compute gradients. The
// quaternion and plain linear layers are recorded as single fused
// operations with custom backward rules.
//
// Example:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
//	backend.Tape().StartRecording()
//
//	x := tensor.Randn[float32](tensor.Shape{2, 8}, backend)
//	y := x.Mul(x)
//
//	grads := autodiff.Backward(y, backend)
//	grad := grads[x.Raw()]
package autodiff

import (
	"github.com/quatnn-ml/quatnn/internal/autodiff"
	"github.com/quatnn-ml/quatnn/tensor"
)

// Backend is the autodiff-enabled backend decorator.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New creates an autodiff backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// BackwardCapable is satisfied by backends that carry a gradient tape.
type BackwardCapable = autodiff.BackwardCapable

// Backward seeds the output gradient with ones and runs the tape backward
// from t, returning a map from RawTensor to its gradient.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(t, backend)
}
