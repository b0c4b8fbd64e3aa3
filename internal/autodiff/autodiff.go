// Package autodiff implements reverse-mode automatic differentiation using
// the decorator pattern.
//
// AutodiffBackend wraps any Backend implementation and adds gradient
// tracking through a GradientTape:
//   - every primitive operation is recorded as a tape entry with its own
//     backward rule
//   - the quaternion and plain linear layers are recorded as single fused
//     operations carrying their custom gradients
//   - Backward walks the tape in reverse and accumulates gradients
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	x := tensor.FromSlice([]float32{2}, tensor.Shape{1}, backend)
//	y := x.Mul(x)
//	grads := autodiff.Backward(y, backend)
//	fmt.Println(grads[x.Raw()]) // dy/dx = 2x = 4
package autodiff

import (
	"github.com/quatnn-ml/quatnn/internal/autodiff/ops"
	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// AutodiffBackend wraps a Backend and adds automatic differentiation.
// It implements tensor.Backend itself, so it can stand in anywhere the
// wrapped backend is accepted.
type AutodiffBackend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New creates an AutodiffBackend wrapping the given backend.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control: starting and stopping
// recording, clearing between iterations, inspecting recorded operations.
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend for direct access.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Add(x, y)
	b.tape.Record(ops.NewAddOp(x, y, result))
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *AutodiffBackend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sub(x, y)
	b.tape.Record(ops.NewSubOp(x, y, result))
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *AutodiffBackend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mul(x, y)
	b.tape.Record(ops.NewMulOp(x, y, result))
	return result
}

// Div performs element-wise division and records the operation.
func (b *AutodiffBackend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Div(x, y)
	b.tape.Record(ops.NewDivOp(x, y, result))
	return result
}

// MatMul performs matrix multiplication and records the operation.
func (b *AutodiffBackend[B]) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.MatMul(x, y)
	b.tape.Record(ops.NewMatMulOp(x, y, result))
	return result
}

// Reshape changes the tensor shape and records the operation.
func (b *AutodiffBackend[B]) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result := b.inner.Reshape(t, newShape)
	b.tape.Record(ops.NewReshapeOp(t, result))
	return result
}

// Transpose permutes tensor axes and records the operation.
func (b *AutodiffBackend[B]) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	result := b.inner.Transpose(t, axes...)
	b.tape.Record(ops.NewTransposeOp(t, result, axes))
	return result
}

// Cat concatenates tensors along a dimension and records the operation.
func (b *AutodiffBackend[B]) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	result := b.inner.Cat(tensors, dim)
	if dim < 0 {
		dim += len(result.Shape())
	}
	b.tape.Record(ops.NewCatOp(tensors, result, dim))
	return result
}

// Narrow slices a tensor along a dimension and records the operation.
func (b *AutodiffBackend[B]) Narrow(t *tensor.RawTensor, dim, start, length int) *tensor.RawTensor {
	result := b.inner.Narrow(t, dim, start, length)
	if dim < 0 {
		dim += len(t.Shape())
	}
	b.tape.Record(ops.NewNarrowOp(t, result, dim, start, length))
	return result
}

// MulScalar multiplies by a scalar and records the operation.
func (b *AutodiffBackend[B]) MulScalar(t *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.inner.MulScalar(t, scalar)
	b.tape.Record(ops.NewMulScalarOp(t, result, scalar))
	return result
}

// AddScalar adds a scalar and records the operation.
func (b *AutodiffBackend[B]) AddScalar(t *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.inner.AddScalar(t, scalar)
	b.tape.Record(ops.NewAddScalarOp(t, result))
	return result
}

// SubScalar subtracts a scalar and records the operation.
func (b *AutodiffBackend[B]) SubScalar(t *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.inner.SubScalar(t, scalar)
	b.tape.Record(ops.NewSubScalarOp(t, result))
	return result
}

// DivScalar divides by a scalar and records the operation.
func (b *AutodiffBackend[B]) DivScalar(t *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.inner.DivScalar(t, scalar)
	b.tape.Record(ops.NewDivScalarOp(t, result, scalar))
	return result
}

// Sqrt computes the element-wise square root and records the operation.
func (b *AutodiffBackend[B]) Sqrt(t *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sqrt(t)
	b.tape.Record(ops.NewSqrtOp(t, result))
	return result
}

// Sum reduces to a scalar and records the operation.
func (b *AutodiffBackend[B]) Sum(t *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sum(t)
	b.tape.Record(ops.NewSumOp(t, result))
	return result
}

// SumDim sums along a dimension and records the operation.
func (b *AutodiffBackend[B]) SumDim(t *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	result := b.inner.SumDim(t, dim, keepDim)
	if dim < 0 {
		dim += len(t.Shape())
	}
	b.tape.Record(ops.NewSumDimOp(t, result, dim, keepDim))
	return result
}

// QuaternionLinear computes the quaternion linear layer on the wrapped
// backend and records it as a single fused tape unit with the custom
// block-encoding backward.
func (b *AutodiffBackend[B]) QuaternionLinear(input, rWeight, iWeight, jWeight, kWeight, bias *tensor.RawTensor, needs [6]bool) (*tensor.RawTensor, error) {
	result, err := b.inner.QuaternionLinear(input, rWeight, iWeight, jWeight, kWeight, bias, needs)
	if err != nil {
		return nil, err
	}
	b.tape.Record(ops.NewQuaternionLinearOp(input, rWeight, iWeight, jWeight, kWeight, bias, result, needs))
	return result, nil
}

// Linear computes the plain affine layer on the wrapped backend and
// records it as a single fused tape unit.
func (b *AutodiffBackend[B]) Linear(input, weight, bias *tensor.RawTensor, needs [3]bool) (*tensor.RawTensor, error) {
	result, err := b.inner.Linear(input, weight, bias, needs)
	if err != nil {
		return nil, err
	}
	b.tape.Record(ops.NewLinearOp(input, weight, bias, result, needs))
	return result, nil
}
