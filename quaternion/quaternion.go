// Copyright 2025 QuatNN Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package quaternion provides the public API for quaternion-valued linear
// algebra: component views over real tensors, the Hamilton product, the
// block-matrix encoding, and quaternion-aware weight initialization.
package quaternion

import (
	"math/rand"

	"github.com/quatnn-ml/quatnn/internal/quaternion"
	"github.com/quatnn-ml/quatnn/tensor"
)

// Component selects one of the four quaternion channels along the last axis.
type Component = quaternion.Component

// Quaternion components in storage order.
const (
	R = quaternion.R
	I = quaternion.I
	J = quaternion.J
	K = quaternion.K
)

// Error types raised by quaternion operations.
type (
	// ShapeError reports a tensor that cannot be viewed as a quaternion
	// tensor.
	ShapeError = quaternion.ShapeError
	// SizeMismatchError reports component weight tensors with differing
	// shapes.
	SizeMismatchError = quaternion.SizeMismatchError
	// InvalidCriterionError reports an unrecognized initialization
	// criterion.
	InvalidCriterionError = quaternion.InvalidCriterionError
	// InvalidOperationError reports an unrecognized mode string.
	InvalidOperationError = quaternion.InvalidOperationError
)

// CheckInput validates that t can be viewed as a quaternion tensor:
// rank 2 or 3 with a last-axis length divisible by 4.
func CheckInput(t *tensor.RawTensor) error {
	return quaternion.CheckInput(t)
}

// GetComponent extracts one component channel of width last/4.
func GetComponent(b tensor.Backend, t *tensor.RawTensor, c Component) (*tensor.RawTensor, error) {
	return quaternion.GetComponent(b, t, c)
}

// Modulus computes the quaternion modulus, elementwise in vector form or
// reduced along axis 0 otherwise.
func Modulus(b tensor.Backend, t *tensor.RawTensor, vectorForm bool) (*tensor.RawTensor, error) {
	return quaternion.Modulus(b, t, vectorForm)
}

// Normalize divides t by its axis-0-reduced modulus plus eps.
func Normalize(b tensor.Backend, t *tensor.RawTensor, eps float64) (*tensor.RawTensor, error) {
	return quaternion.Normalize(b, t, eps)
}

// Hamilton applies the quaternion product q0 ⊗ q1 elementwise. This is an
// unchecked fast path: the caller guarantees matching quaternion shapes.
func Hamilton(b tensor.Backend, q0, q1 *tensor.RawTensor) *tensor.RawTensor {
	return quaternion.Hamilton(b, q0, q1)
}

// BuildEncoding assembles the 4R×4C block-encoding matrix from four R×C
// component blocks.
func BuildEncoding(b tensor.Backend, r, i, j, k *tensor.RawTensor) (*tensor.RawTensor, error) {
	return quaternion.BuildEncoding(b, r, i, j, k)
}

// LinearForward applies the quaternion linear transformation
// output = input ⊗ weight (+ bias) without gradient tracking.
func LinearForward(b tensor.Backend, input, rWeight, iWeight, jWeight, kWeight, bias *tensor.RawTensor) (*tensor.RawTensor, error) {
	return quaternion.LinearForward(b, input, rWeight, iWeight, jWeight, kWeight, bias)
}

// Criterion selects the variance scaling rule for weight initialization.
type Criterion = quaternion.Criterion

// Supported initialization criteria.
const (
	Glorot = quaternion.Glorot
	He     = quaternion.He
)

// InitFunc produces four [in,out] component weight blocks.
type InitFunc = quaternion.InitFunc

// UnitaryInit draws unit quaternion weights scaled by the criterion scale.
func UnitaryInit(inFeatures, outFeatures int, rng *rand.Rand, criterion Criterion, dtype tensor.DataType) (r, i, j, k *tensor.RawTensor, err error) {
	return quaternion.UnitaryInit(inFeatures, outFeatures, rng, criterion, dtype)
}

// QuaternionInit draws weights in polar form with an explicit modulus and
// phase per element.
func QuaternionInit(inFeatures, outFeatures int, rng *rand.Rand, criterion Criterion, dtype tensor.DataType) (r, i, j, k *tensor.RawTensor, err error) {
	return quaternion.QuaternionInit(inFeatures, outFeatures, rng, criterion, dtype)
}

// AffectInit fills four existing equal-shape weight matrices with a fresh
// draw from initFn.
func AffectInit(rWeight, iWeight, jWeight, kWeight *tensor.RawTensor, initFn InitFunc, rng *rand.Rand, criterion Criterion) error {
	return quaternion.AffectInit(rWeight, iWeight, jWeight, kWeight, initFn, rng, criterion)
}

// Dropout kinds.
const (
	DropoutQuaternion = quaternion.DropoutQuaternion
	DropoutRegular    = quaternion.DropoutRegular
)

// DropoutMask draws a binomial(1, 1-p) keep mask of the given shape.
func DropoutMask(p float64, shape tensor.Shape, rng *rand.Rand, dtype tensor.DataType, operation string) (*tensor.RawTensor, error) {
	return quaternion.DropoutMask(p, shape, rng, dtype, operation)
}

// ApplyDropout masks t with a fresh dropout mask and rescales survivors by
// 1/(1-p).
func ApplyDropout(b tensor.Backend, t *tensor.RawTensor, p float64, rng *rand.Rand, kind string, train bool) (*tensor.RawTensor, error) {
	return quaternion.ApplyDropout(b, t, p, rng, kind, train)
}
