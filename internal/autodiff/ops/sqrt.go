package ops

import "github.com/quatnn-ml/quatnn/internal/tensor"

// SqrtOp records an element-wise square root: output = sqrt(x).
//
// Backward: d(sqrt(x))/dx = 0.5 / sqrt(x), so
// grad_input = outputGrad * 0.5 / output.
type SqrtOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSqrtOp creates a new SqrtOp.
func NewSqrtOp(input, output *tensor.RawTensor) *SqrtOp {
	return &SqrtOp{input: input, output: output}
}

// Backward computes the input gradient for sqrt.
func (op *SqrtOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	half := backend.MulScalar(outputGrad, scalarOf(outputGrad.DType(), 0.5))
	return []*tensor.RawTensor{backend.Div(half, op.output)}
}

// Inputs returns the input tensor [x].
func (op *SqrtOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor sqrt(x).
func (op *SqrtOp) Output() *tensor.RawTensor { return op.output }
