package cpu

import (
	"fmt"

	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// Sum reduces all tensor elements to a scalar (0-D) tensor.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sum: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		var sum float32
		for _, v := range x.AsFloat32() {
			sum += v
		}
		result.AsFloat32()[0] = sum
	case tensor.Float64:
		var sum float64
		for _, v := range x.AsFloat64() {
			sum += v
		}
		result.AsFloat64()[0] = sum
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
//
// Example:
//
//	x := tensor.Randn[float32](tensor.Shape{2, 3, 4}, backend)
//	y := backend.SumDim(x, -1, true)   // shape: [2, 3, 1]
//	z := backend.SumDim(x, -1, false)  // shape: [2, 3]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	// Normalize negative dimension
	if dim < 0 {
		dim = ndim + dim
	}

	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("sumdim: dimension %d out of range for %dD tensor", dim, ndim))
	}

	// Calculate output shape
	var outShape tensor.Shape
	if keepDim {
		outShape = shape.Clone()
		outShape[dim] = 1
	} else if ndim == 1 {
		outShape = tensor.Shape{1}
	} else {
		outShape = make(tensor.Shape, 0, ndim-1)
		for i := 0; i < ndim; i++ {
			if i != dim {
				outShape = append(outShape, shape[i])
			}
		}
	}

	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sumdim: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		sumDimFloat32(x.AsFloat32(), result.AsFloat32(), shape, dim)
	case tensor.Float64:
		sumDimFloat64(x.AsFloat64(), result.AsFloat64(), shape, dim)
	default:
		panic(fmt.Sprintf("sumdim: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// sumDimFloat32 accumulates float32 data along a dimension.
// Flat input index i decomposes into (outer, reduced, inner); the output
// index is outer*inner_size + inner.
func sumDimFloat32(data, result []float32, shape tensor.Shape, dim int) {
	inner := 1
	for d := dim + 1; d < len(shape); d++ {
		inner *= shape[d]
	}
	dimSize := shape[dim]
	outer := len(data) / (inner * dimSize)

	for o := 0; o < outer; o++ {
		for r := 0; r < dimSize; r++ {
			base := (o*dimSize + r) * inner
			outBase := o * inner
			for i := 0; i < inner; i++ {
				result[outBase+i] += data[base+i]
			}
		}
	}
}

// sumDimFloat64 accumulates float64 data along a dimension.
func sumDimFloat64(data, result []float64, shape tensor.Shape, dim int) {
	inner := 1
	for d := dim + 1; d < len(shape); d++ {
		inner *= shape[d]
	}
	dimSize := shape[dim]
	outer := len(data) / (inner * dimSize)

	for o := 0; o < outer; o++ {
		for r := 0; r < dimSize; r++ {
			base := (o*dimSize + r) * inner
			outBase := o * inner
			for i := 0; i < inner; i++ {
				result[outBase+i] += data[base+i]
			}
		}
	}
}
