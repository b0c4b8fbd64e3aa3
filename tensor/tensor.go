// Copyright 2025 QuatNN Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor operations in the
// QuatNN framework.
//
// The package defines the core types for type-safe tensor work:
//   - Tensor[T, B]: high-level generic tensor
//   - RawTensor: low-level typed byte buffer the backends operate on
//   - Backend: interface every compute backend implements
//   - Shape: tensor dimensions with broadcasting rules
package tensor

import (
	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// Tensor is a generic tensor with element type T computed by backend B.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// DType is the constraint for supported tensor element types.
type DType = tensor.DType

// Shape represents tensor dimensions.
type Shape = tensor.Shape

// New creates a tensor from a raw tensor and a backend.
func New[T DType, B Backend](raw *RawTensor, backend B) *Tensor[T, B] {
	return tensor.New[T, B](raw, backend)
}

// FromSlice creates a tensor from a data slice and shape.
func FromSlice[T DType, B Backend](data []T, shape Shape, backend B) (*Tensor[T, B], error) {
	return tensor.FromSlice(data, shape, backend)
}

// Zeros creates a zero-filled tensor.
func Zeros[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	return tensor.Zeros[T](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	return tensor.Ones[T](shape, backend)
}

// Full creates a tensor filled with the given value.
func Full[T DType, B Backend](shape Shape, value T, backend B) *Tensor[T, B] {
	return tensor.Full(shape, value, backend)
}

// Randn creates a tensor with standard normal random values.
func Randn[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	return tensor.Randn[T](shape, backend)
}

// Cat concatenates tensors along the given dimension.
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	return tensor.Cat(tensors, dim)
}
