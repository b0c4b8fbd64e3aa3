package ops

import "github.com/quatnn-ml/quatnn/internal/tensor"

// CatOp records a concatenation of tensors along a dimension.
//
// Backward: the gradient is split back into the input segments by
// narrowing along the concatenation dimension.
type CatOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
	dim    int
}

// NewCatOp creates a new CatOp. dim must already be normalized to a
// non-negative axis index.
func NewCatOp(inputs []*tensor.RawTensor, output *tensor.RawTensor, dim int) *CatOp {
	return &CatOp{inputs: inputs, output: output, dim: dim}
}

// Backward slices the output gradient into per-input gradients.
func (op *CatOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grads := make([]*tensor.RawTensor, len(op.inputs))
	offset := 0
	for i, input := range op.inputs {
		length := input.Shape()[op.dim]
		grads[i] = backend.Narrow(outputGrad, op.dim, offset, length)
		offset += length
	}
	return grads
}

// Inputs returns the concatenated tensors.
func (op *CatOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the concatenated tensor.
func (op *CatOp) Output() *tensor.RawTensor { return op.output }
