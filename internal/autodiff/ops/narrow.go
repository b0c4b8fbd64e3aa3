package ops

import "github.com/quatnn-ml/quatnn/internal/tensor"

// NarrowOp records a slice along a dimension: output = x[.., start:start+length, ..].
//
// Backward: the gradient is padded with zeros on both sides of the slice
// so it matches the input shape.
type NarrowOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	dim    int
	start  int
	length int
}

// NewNarrowOp creates a new NarrowOp. dim must already be normalized to a
// non-negative axis index.
func NewNarrowOp(input, output *tensor.RawTensor, dim, start, length int) *NarrowOp {
	return &NarrowOp{input: input, output: output, dim: dim, start: start, length: length}
}

// Backward pads the output gradient back to the input extent.
func (op *NarrowOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	dimSize := op.input.Shape()[op.dim]
	if op.start == 0 && op.length == dimSize {
		return []*tensor.RawTensor{outputGrad}
	}

	pieces := make([]*tensor.RawTensor, 0, 3)
	if op.start > 0 {
		shape := op.input.Shape().Clone()
		shape[op.dim] = op.start
		pieces = append(pieces, zerosLike(shape, op.input.DType(), backend.Device()))
	}
	pieces = append(pieces, outputGrad)
	if tail := dimSize - op.start - op.length; tail > 0 {
		shape := op.input.Shape().Clone()
		shape[op.dim] = tail
		pieces = append(pieces, zerosLike(shape, op.input.DType(), backend.Device()))
	}
	return []*tensor.RawTensor{backend.Cat(pieces, op.dim)}
}

// Inputs returns the input tensor [x].
func (op *NarrowOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the sliced tensor.
func (op *NarrowOp) Output() *tensor.RawTensor { return op.output }
