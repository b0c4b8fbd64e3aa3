package quaternion

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// Criterion selects the variance scaling rule for weight initialization.
type Criterion string

// Supported initialization criteria.
const (
	Glorot Criterion = "glorot"
	He     Criterion = "he"
)

// InitFunc produces four [in,out] component weight blocks.
type InitFunc func(inFeatures, outFeatures int, rng *rand.Rand, criterion Criterion, dtype tensor.DataType) (r, i, j, k *tensor.RawTensor, err error)

// criterionScale maps a criterion to its weight scale.
func criterionScale(criterion Criterion, inFeatures, outFeatures int) (float64, error) {
	switch criterion {
	case Glorot:
		return 1.0 / math.Sqrt(float64(2*(inFeatures+outFeatures))), nil
	case He:
		return 1.0 / math.Sqrt(float64(2*inFeatures)), nil
	default:
		return 0, &InvalidCriterionError{Criterion: string(criterion)}
	}
}

// UnitaryInit draws four independent uniform(0,1) samples per weight
// element, normalizes each quadruple to a unit quaternion, and scales all
// four blocks by the criterion scale. All randomness comes from rng, so a
// fixed seed reproduces the weights exactly.
func UnitaryInit(inFeatures, outFeatures int, rng *rand.Rand, criterion Criterion, dtype tensor.DataType) (r, i, j, k *tensor.RawTensor, err error) {
	s, err := criterionScale(criterion, inFeatures, outFeatures)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	n := inFeatures * outFeatures
	vr := uniform(rng, n)
	vi := uniform(rng, n)
	vj := uniform(rng, n)
	vk := uniform(rng, n)

	for idx := 0; idx < n; idx++ {
		norm := math.Sqrt(vr[idx]*vr[idx]+vi[idx]*vi[idx]+vj[idx]*vj[idx]+vk[idx]*vk[idx]) + 1e-4
		vr[idx] = vr[idx] / norm * s
		vi[idx] = vi[idx] / norm * s
		vj[idx] = vj[idx] / norm * s
		vk[idx] = vk[idx] / norm * s
	}

	return newBlocks(inFeatures, outFeatures, dtype, vr, vi, vj, vk)
}

// QuaternionInit draws weights in polar form: the imaginary triple is
// normalized to a unit vector, then an independent modulus ~ uniform(-s,s)
// and phase ~ uniform(-π,π) set each element's magnitude and angle:
//
//	w_r = modulus·cos(phase)
//	w_x = modulus·v_x·sin(phase)   for x ∈ {i,j,k}
//
// This controls the quaternion magnitude distribution directly instead of
// renormalizing four free draws.
func QuaternionInit(inFeatures, outFeatures int, rng *rand.Rand, criterion Criterion, dtype tensor.DataType) (r, i, j, k *tensor.RawTensor, err error) {
	s, err := criterionScale(criterion, inFeatures, outFeatures)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	n := inFeatures * outFeatures
	vi := uniform(rng, n)
	vj := uniform(rng, n)
	vk := uniform(rng, n)

	for idx := 0; idx < n; idx++ {
		norm := math.Sqrt(vi[idx]*vi[idx]+vj[idx]*vj[idx]+vk[idx]*vk[idx]) + 1e-4
		vi[idx] /= norm
		vj[idx] /= norm
		vk[idx] /= norm
	}

	wr := make([]float64, n)
	wi := make([]float64, n)
	wj := make([]float64, n)
	wk := make([]float64, n)
	for idx := 0; idx < n; idx++ {
		modulus := -s + rng.Float64()*2*s
		phase := -math.Pi + rng.Float64()*2*math.Pi
		sin := math.Sin(phase)
		wr[idx] = modulus * math.Cos(phase)
		wi[idx] = modulus * vi[idx] * sin
		wj[idx] = modulus * vj[idx] * sin
		wk[idx] = modulus * vk[idx] * sin
	}

	return newBlocks(inFeatures, outFeatures, dtype, wr, wi, wj, wk)
}

// AffectInit fills four existing equal-shape weight matrices with a fresh
// draw from initFn. Shapes are validated before any sampling so a failed
// call never consumes rng state.
func AffectInit(rWeight, iWeight, jWeight, kWeight *tensor.RawTensor, initFn InitFunc, rng *rand.Rand, criterion Criterion) error {
	if !rWeight.Shape().Equal(iWeight.Shape()) ||
		!rWeight.Shape().Equal(jWeight.Shape()) ||
		!rWeight.Shape().Equal(kWeight.Shape()) {
		return &SizeMismatchError{
			R: rWeight.Shape(), I: iWeight.Shape(), J: jWeight.Shape(), K: kWeight.Shape(),
		}
	}
	if len(rWeight.Shape()) != 2 {
		return fmt.Errorf("weight initialization accepts only matrices, got rank %d", len(rWeight.Shape()))
	}

	r, i, j, k, err := initFn(rWeight.Shape()[0], rWeight.Shape()[1], rng, criterion, rWeight.DType())
	if err != nil {
		return err
	}
	copy(rWeight.Data(), r.Data())
	copy(iWeight.Data(), i.Data())
	copy(jWeight.Data(), j.Data())
	copy(kWeight.Data(), k.Data())
	return nil
}

// uniform draws n samples from uniform(0,1).
func uniform(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for idx := range out {
		out[idx] = rng.Float64()
	}
	return out
}

// newBlocks packs four float64 slices into [in,out] tensors of dtype.
func newBlocks(inFeatures, outFeatures int, dtype tensor.DataType, vr, vi, vj, vk []float64) (r, i, j, k *tensor.RawTensor, err error) {
	shape := tensor.Shape{inFeatures, outFeatures}
	blocks := make([]*tensor.RawTensor, 4)
	for bi, vals := range [][]float64{vr, vi, vj, vk} {
		t, err := tensor.NewRaw(shape, dtype, tensor.CPU)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		fillRaw(t, vals)
		blocks[bi] = t
	}
	return blocks[0], blocks[1], blocks[2], blocks[3], nil
}

// fillRaw copies float64 values into a tensor, converting to its dtype.
func fillRaw(t *tensor.RawTensor, vals []float64) {
	switch t.DType() {
	case tensor.Float32:
		dst := t.AsFloat32()
		for idx, v := range vals {
			dst[idx] = float32(v)
		}
	case tensor.Float64:
		copy(t.AsFloat64(), vals)
	}
}
