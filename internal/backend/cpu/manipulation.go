package cpu

import (
	"fmt"

	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// Cat concatenates tensors along the specified dimension.
// All tensors must have identical shapes except in the concatenation
// dimension, and identical dtypes.
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: empty tensor list")
	}

	first := tensors[0]
	ndim := len(first.Shape())

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("cat: dimension %d out of range for %dD tensor", dim, ndim))
	}

	// Validate shapes and accumulate the concat dimension.
	catDimSize := 0
	for idx, t := range tensors {
		shape := t.Shape()
		if len(shape) != ndim {
			panic(fmt.Sprintf("cat: tensor %d has %d dimensions, expected %d", idx, len(shape), ndim))
		}
		if t.DType() != first.DType() {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, expected %s", idx, t.DType(), first.DType()))
		}
		for d := 0; d < ndim; d++ {
			if d != dim && shape[d] != first.Shape()[d] {
				panic(fmt.Sprintf("cat: tensor %d has size %d in dimension %d, expected %d",
					idx, shape[d], d, first.Shape()[d]))
			}
		}
		catDimSize += shape[dim]
	}

	outShape := first.Shape().Clone()
	outShape[dim] = catDimSize

	result, err := tensor.NewRaw(outShape, first.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	elemSize := first.DType().Size()
	innerBytes := elemSize
	for d := dim + 1; d < ndim; d++ {
		innerBytes *= first.Shape()[d]
	}
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= first.Shape()[d]
	}

	// Row-major layout: each outer index contributes one contiguous block
	// per source tensor of shape[dim]*innerBytes bytes.
	outBlockBytes := catDimSize * innerBytes
	dst := result.Data()
	dstOffset := 0
	for _, t := range tensors {
		srcBlockBytes := t.Shape()[dim] * innerBytes
		src := t.Data()
		for o := 0; o < outer; o++ {
			copy(dst[o*outBlockBytes+dstOffset:], src[o*srcBlockBytes:(o+1)*srcBlockBytes])
		}
		dstOffset += srcBlockBytes
	}

	return result
}

// Narrow returns a copy of the tensor restricted to length elements of
// dimension dim, starting at start.
func (cpu *CPUBackend) Narrow(x *tensor.RawTensor, dim, start, length int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("narrow: dimension %d out of range for %dD tensor", dim, ndim))
	}
	if start < 0 || length < 0 || start+length > shape[dim] {
		panic(fmt.Sprintf("narrow: range [%d, %d) out of bounds for dimension %d with size %d",
			start, start+length, dim, shape[dim]))
	}

	outShape := shape.Clone()
	outShape[dim] = length

	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("narrow: %v", err))
	}

	elemSize := x.DType().Size()
	innerBytes := elemSize
	for d := dim + 1; d < ndim; d++ {
		innerBytes *= shape[d]
	}
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}

	dimSize := shape[dim]
	src := x.Data()
	dst := result.Data()
	for o := 0; o < outer; o++ {
		srcOffset := (o*dimSize + start) * innerBytes
		dstOffset := o * length * innerBytes
		copy(dst[dstOffset:dstOffset+length*innerBytes], src[srcOffset:srcOffset+length*innerBytes])
	}

	return result
}
