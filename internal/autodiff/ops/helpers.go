package ops

import (
	"fmt"

	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// reduceBroadcast reduces a gradient to the target shape, summing along
// axes that were broadcast in the forward pass.
//
// Example:
//
//	Forward:  a[4] + b[3,4] -> c[3,4]  (a was broadcast along dim 0)
//	Backward: grad_c[3,4] -> grad_a[4] (sum along dim 0)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(targetShape) {
		return grad
	}
	if len(targetShape) == 0 {
		return backend.Sum(grad)
	}

	// Broadcasting aligns shapes from the right: extra leading axes are
	// summed away first, then axes where the target is 1.
	result := grad
	for len(result.Shape()) > len(targetShape) {
		result = backend.SumDim(result, 0, false)
	}
	for d, size := range targetShape {
		if size == 1 && result.Shape()[d] > 1 {
			result = backend.SumDim(result, d, true)
		}
	}

	if !result.Shape().Equal(targetShape) {
		result = backend.Reshape(result, targetShape)
	}
	return result
}

// negate returns -t.
func negate(t *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	return backend.MulScalar(t, scalarOf(t.DType(), -1))
}

// scalarOf converts a float64 constant to the scalar type matching dtype.
func scalarOf(dtype tensor.DataType, v float64) any {
	switch dtype {
	case tensor.Float32:
		return float32(v)
	case tensor.Float64:
		return v
	default:
		panic(fmt.Sprintf("unsupported dtype %s (only float32/float64 supported)", dtype))
	}
}

// zerosLike allocates a zero tensor with the given shape and dtype.
func zerosLike(shape tensor.Shape, dtype tensor.DataType, device tensor.Device) *tensor.RawTensor {
	t, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		panic(fmt.Sprintf("zerosLike: %v", err))
	}
	return t
}
