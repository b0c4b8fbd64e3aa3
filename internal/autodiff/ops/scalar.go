package ops

import "github.com/quatnn-ml/quatnn/internal/tensor"

// scalarFloat widens a backend scalar argument to float64 for gradient math.
func scalarFloat(scalar any) float64 {
	switch s := scalar.(type) {
	case float32:
		return float64(s)
	case float64:
		return s
	default:
		panic("unsupported scalar type (only float32/float64 supported)")
	}
}

// MulScalarOp records output = x * scalar. Backward: grad_x = outputGrad * scalar.
type MulScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	scalar float64
}

// NewMulScalarOp creates a new MulScalarOp.
func NewMulScalarOp(input, output *tensor.RawTensor, scalar any) *MulScalarOp {
	return &MulScalarOp{input: input, output: output, scalar: scalarFloat(scalar)}
}

// Backward computes the input gradient for scalar multiplication.
func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, scalarOf(outputGrad.DType(), op.scalar))}
}

// Inputs returns the input tensor [x].
func (op *MulScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the scaled tensor.
func (op *MulScalarOp) Output() *tensor.RawTensor { return op.output }

// AddScalarOp records output = x + scalar. Backward: grad_x = outputGrad.
type AddScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewAddScalarOp creates a new AddScalarOp.
func NewAddScalarOp(input, output *tensor.RawTensor) *AddScalarOp {
	return &AddScalarOp{input: input, output: output}
}

// Backward passes the output gradient through unchanged.
func (op *AddScalarOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad}
}

// Inputs returns the input tensor [x].
func (op *AddScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the shifted tensor.
func (op *AddScalarOp) Output() *tensor.RawTensor { return op.output }

// SubScalarOp records output = x - scalar. Backward: grad_x = outputGrad.
type SubScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSubScalarOp creates a new SubScalarOp.
func NewSubScalarOp(input, output *tensor.RawTensor) *SubScalarOp {
	return &SubScalarOp{input: input, output: output}
}

// Backward passes the output gradient through unchanged.
func (op *SubScalarOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad}
}

// Inputs returns the input tensor [x].
func (op *SubScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the shifted tensor.
func (op *SubScalarOp) Output() *tensor.RawTensor { return op.output }

// DivScalarOp records output = x / scalar. Backward: grad_x = outputGrad / scalar.
type DivScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	scalar float64
}

// NewDivScalarOp creates a new DivScalarOp.
func NewDivScalarOp(input, output *tensor.RawTensor, scalar any) *DivScalarOp {
	return &DivScalarOp{input: input, output: output, scalar: scalarFloat(scalar)}
}

// Backward computes the input gradient for scalar division.
func (op *DivScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.DivScalar(outputGrad, scalarOf(outputGrad.DType(), op.scalar))}
}

// Inputs returns the input tensor [x].
func (op *DivScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the scaled tensor.
func (op *DivScalarOp) Output() *tensor.RawTensor { return op.output }
