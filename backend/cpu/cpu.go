// Copyright 2025 QuatNN Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the CPU compute backend.
package cpu

import (
	internalcpu "github.com/quatnn-ml/quatnn/internal/backend/cpu"
	"github.com/quatnn-ml/quatnn/tensor"
)

// Backend is the CPU backend implementation. It runs element-wise kernels
// in parallel chunks and dispatches matrix products to BLAS.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func New() *Backend {
	return internalcpu.New()
}
