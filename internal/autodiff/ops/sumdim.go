package ops

import "github.com/quatnn-ml/quatnn/internal/tensor"

// SumDimOp records a sum reduction along one dimension.
//
// Backward: every input element contributes with weight 1, so the output
// gradient is broadcast back over the reduced dimension. When keepDim was
// false the gradient is first reshaped to reintroduce the reduced axis.
type SumDimOp struct {
	input   *tensor.RawTensor
	output  *tensor.RawTensor
	dim     int
	keepDim bool
}

// NewSumDimOp creates a new SumDimOp. dim must already be normalized to a
// non-negative axis index.
func NewSumDimOp(input, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{input: input, output: output, dim: dim, keepDim: keepDim}
}

// Backward broadcasts the output gradient over the reduced dimension.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := outputGrad
	if !op.keepDim {
		shape := op.input.Shape().Clone()
		shape[op.dim] = 1
		grad = backend.Reshape(grad, shape)
	}
	expanded := backend.Add(zerosLike(op.input.Shape(), op.input.DType(), backend.Device()), grad)
	return []*tensor.RawTensor{expanded}
}

// Inputs returns the input tensor [x].
func (op *SumDimOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the reduced tensor.
func (op *SumDimOp) Output() *tensor.RawTensor { return op.output }

// SumOp records a full reduction to a scalar.
//
// Backward: the scalar gradient is broadcast to the input shape.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{input: input, output: output}
}

// Backward broadcasts the scalar gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	expanded := backend.Add(zerosLike(op.input.Shape(), op.input.DType(), backend.Device()), outputGrad)
	return []*tensor.RawTensor{expanded}
}

// Inputs returns the input tensor [x].
func (op *SumOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the scalar sum.
func (op *SumOp) Output() *tensor.RawTensor { return op.output }
