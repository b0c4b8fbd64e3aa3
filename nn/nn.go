// Copyright 2025 QuatNN Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for the QuatNN layers.
package nn

import (
	"github.com/quatnn-ml/quatnn/internal/nn"
	"github.com/quatnn-ml/quatnn/internal/quaternion"
	"github.com/quatnn-ml/quatnn/tensor"
)

// Module is the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter is a trainable parameter of a layer.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Linear is a plain fully connected layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a linear layer with Xavier-initialized weights and a
// zero bias.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	layer := nn.NewLinear(64, 32, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// QuaternionLinear is a quaternion-valued fully connected layer.
type QuaternionLinear[B tensor.Backend] = nn.QuaternionLinear[B]

// InitScheme selects the quaternion weight initialization scheme.
type InitScheme = nn.InitScheme

// Supported initialization schemes.
const (
	InitUnitary    = nn.InitUnitary
	InitQuaternion = nn.InitQuaternion
)

// NewQuaternionLinear creates a quaternion linear layer. Feature counts
// are in quaternion units: the layer maps a last axis of width
// 4·inFeatures to one of width 4·outFeatures.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	layer, err := nn.NewQuaternionLinear(16, 8, true, nn.InitQuaternion, quaternion.Glorot, 42, backend)
func NewQuaternionLinear[B tensor.Backend](
	inFeatures, outFeatures int,
	withBias bool,
	scheme InitScheme,
	criterion quaternion.Criterion,
	seed int64,
	backend B,
) (*QuaternionLinear[B], error) {
	return nn.NewQuaternionLinear(inFeatures, outFeatures, withBias, scheme, criterion, seed, backend)
}

// Initialization helpers.

// Xavier creates a tensor initialized from the Glorot uniform distribution.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// Zeros creates a zero-filled tensor.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Ones(shape, backend)
}
