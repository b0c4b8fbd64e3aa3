package ops

import "github.com/quatnn-ml/quatnn/internal/tensor"

// TransposeOp records an axis permutation: output = transpose(x, axes).
//
// Backward: the gradient is permuted by the inverse permutation.
type TransposeOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	axes   []int // permutation applied in the forward pass
}

// NewTransposeOp creates a new TransposeOp. An empty axes slice means the
// forward pass reversed all axes.
func NewTransposeOp(input, output *tensor.RawTensor, axes []int) *TransposeOp {
	return &TransposeOp{input: input, output: output, axes: axes}
}

// Backward computes the input gradient by inverting the permutation.
func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	if len(op.axes) == 0 {
		// Reversal is its own inverse.
		return []*tensor.RawTensor{backend.Transpose(outputGrad)}
	}
	inverse := make([]int, len(op.axes))
	for i, axis := range op.axes {
		inverse[axis] = i
	}
	return []*tensor.RawTensor{backend.Transpose(outputGrad, inverse...)}
}

// Inputs returns the input tensor [x].
func (op *TransposeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the permuted tensor.
func (op *TransposeOp) Output() *tensor.RawTensor { return op.output }
