// Package cpu implements the CPU backend with BLAS-backed matrix multiplication.
package cpu

import (
	"fmt"

	"github.com/quatnn-ml/quatnn/internal/parallel"
	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("sub", a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("div", a, b,
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y })
}

// binaryOp applies an element-wise binary operation with broadcasting.
func (cpu *CPUBackend) binaryOp(
	name string,
	a, b *tensor.RawTensor,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	if !needsBroadcast && a.Shape().Equal(b.Shape()) {
		// Fast path: same shape, flat vectorized loop.
		switch a.DType() {
		case tensor.Float32:
			x, y, dst := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
			parallel.ForRange(len(dst), func(s, e int) {
				for i := s; i < e; i++ {
					dst[i] = f32(x[i], y[i])
				}
			}, cpu.parallel)
		case tensor.Float64:
			x, y, dst := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
			parallel.ForRange(len(dst), func(s, e int) {
				for i := s; i < e; i++ {
					dst[i] = f64(x[i], y[i])
				}
			}, cpu.parallel)
		default:
			panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
		}
		return result
	}

	// Slow path: broadcasting required.
	switch a.DType() {
	case tensor.Float32:
		broadcastFloat32(result, a, b, outShape, f32)
	case tensor.Float64:
		broadcastFloat64(result, a, b, outShape, f64)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}
	return result
}

// Reshape returns a tensor with the same data but different shape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}

	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v (different number of elements)",
			t.Shape(), newShape))
	}

	result, err := tensor.NewRaw(newShape, t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}

	copy(result.Data(), t.Data())
	return result
}

// Transpose transposes the tensor by permuting its dimensions.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	// Default: reverse all dimensions
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result, err := tensor.NewRaw(newShape, t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	transposeData(result, t, axes)

	return result
}

// transposeData permutes tensor data according to axes.
func transposeData(dst, src *tensor.RawTensor, axes []int) {
	srcShape := src.Shape()
	srcStrides := srcShape.ComputeStrides()
	dstStrides := dst.Shape().ComputeStrides()
	numElements := srcShape.NumElements()

	switch src.DType() {
	case tensor.Float32:
		in, out := src.AsFloat32(), dst.AsFloat32()
		for i := 0; i < numElements; i++ {
			out[permutedIndex(i, axes, srcStrides, dstStrides)] = in[i]
		}
	case tensor.Float64:
		in, out := src.AsFloat64(), dst.AsFloat64()
		for i := 0; i < numElements; i++ {
			out[permutedIndex(i, axes, srcStrides, dstStrides)] = in[i]
		}
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", src.DType()))
	}
}

// permutedIndex maps a flat source index to the flat destination index
// after permuting dimensions by axes.
func permutedIndex(flat int, axes, srcStrides, dstStrides []int) int {
	out := 0
	temp := flat
	coords := make([]int, len(srcStrides))
	for d := 0; d < len(srcStrides); d++ {
		coords[d] = temp / srcStrides[d]
		temp %= srcStrides[d]
	}
	for d, ax := range axes {
		out += coords[ax] * dstStrides[d]
	}
	return out
}
