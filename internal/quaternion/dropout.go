package quaternion

import (
	"math/rand"

	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// Dropout kinds.
const (
	DropoutQuaternion = "quaternion" // one mask per quaternion, shared by all four components
	DropoutRegular    = "regular"    // independent mask per tensor element
)

// DropoutMask draws a binomial(1, 1-p) keep mask of the given shape.
// The only supported operation mode is "linear".
func DropoutMask(p float64, shape tensor.Shape, rng *rand.Rand, dtype tensor.DataType, operation string) (*tensor.RawTensor, error) {
	if operation != "linear" {
		return nil, &InvalidOperationError{Operation: operation}
	}

	mask, err := tensor.NewRaw(shape, dtype, tensor.CPU)
	if err != nil {
		return nil, err
	}
	switch dtype {
	case tensor.Float32:
		data := mask.AsFloat32()
		for idx := range data {
			if rng.Float64() >= p {
				data[idx] = 1
			}
		}
	case tensor.Float64:
		data := mask.AsFloat64()
		for idx := range data {
			if rng.Float64() >= p {
				data[idx] = 1
			}
		}
	}
	return mask, nil
}

// ApplyDropout masks t with a fresh dropout mask and rescales the survivors
// by 1/(1-p). The quaternion kind draws one mask of component width and
// applies it to all four components, dropping whole quaternions at a time;
// the regular kind masks every element independently. When train is false
// the input is returned unchanged.
func ApplyDropout(b tensor.Backend, t *tensor.RawTensor, p float64, rng *rand.Rand, kind string, train bool) (*tensor.RawTensor, error) {
	if !train {
		return t, nil
	}

	switch kind {
	case DropoutQuaternion:
		if err := CheckInput(t); err != nil {
			return nil, err
		}
		shape := t.Shape().Clone()
		dim := len(shape) - 1
		shape[dim] /= 4
		mask, err := DropoutMask(p, shape, rng, t.DType(), "linear")
		if err != nil {
			return nil, err
		}
		masked := b.Cat([]*tensor.RawTensor{
			b.Mul(component(b, t, R), mask),
			b.Mul(component(b, t, I), mask),
			b.Mul(component(b, t, J), mask),
			b.Mul(component(b, t, K), mask),
		}, dim)
		return b.DivScalar(masked, scalarFor(t.DType(), 1-p)), nil
	case DropoutRegular:
		mask, err := DropoutMask(p, t.Shape(), rng, t.DType(), "linear")
		if err != nil {
			return nil, err
		}
		return b.DivScalar(b.Mul(t, mask), scalarFor(t.DType(), 1-p)), nil
	default:
		return nil, &InvalidOperationError{Operation: kind}
	}
}
