// Copyright 2025 QuatNN Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// RawTensor is the low-level tensor representation backends operate on.
type RawTensor = tensor.RawTensor

// DataType identifies a tensor element type at runtime.
type DataType = tensor.DataType

// Supported data types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
)

// Device represents the compute device for tensor operations.
type Device = tensor.Device

// Supported compute devices.
const (
	CPU    = tensor.CPU
	WebGPU = tensor.WebGPU
)

// NewRaw creates a zero-initialized raw tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}
