package ops

import "github.com/quatnn-ml/quatnn/internal/tensor"

// LinearOp records a plain affine layer application as a single tape
// unit: output = input · Wᵀ (+ bias), with weight stored as [out,in].
//
// Backward:
//   - grad_input  = outputGrad · W, mirroring the input shape
//   - grad_weight = outputGradᵀ · input, summed over batch-like axes
//   - grad_bias   = outputGrad summed over all batch-like axes
//
// The needs flags gate each slot; a false flag yields a nil gradient.
type LinearOp struct {
	input  *tensor.RawTensor
	weight *tensor.RawTensor
	bias   *tensor.RawTensor // nil when the layer has no bias
	output *tensor.RawTensor
	needs  [3]bool // input, weight, bias
}

// NewLinearOp creates a new LinearOp.
func NewLinearOp(input, weight, bias, output *tensor.RawTensor, needs [3]bool) *LinearOp {
	return &LinearOp{input: input, weight: weight, bias: bias, output: output, needs: needs}
}

// Backward computes the gated input gradients.
func (op *LinearOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inShape := op.input.Shape()
	rank := len(inShape)

	x := op.input
	g := outputGrad
	if rank == 3 {
		x = backend.Reshape(x, tensor.Shape{inShape[0] * inShape[1], inShape[2]})
		g = backend.Reshape(g, tensor.Shape{inShape[0] * inShape[1], outputGrad.Shape()[2]})
	}

	grads := make([]*tensor.RawTensor, 0, 3)

	if op.needs[0] {
		gradInput := backend.MatMul(g, op.weight)
		if rank == 3 {
			gradInput = backend.Reshape(gradInput, inShape)
		}
		grads = append(grads, gradInput)
	} else {
		grads = append(grads, nil)
	}

	if op.needs[1] {
		grads = append(grads, backend.MatMul(backend.Transpose(g, 1, 0), x))
	} else {
		grads = append(grads, nil)
	}

	if op.bias != nil {
		if op.needs[2] {
			grads = append(grads, backend.SumDim(g, 0, false))
		} else {
			grads = append(grads, nil)
		}
	}

	return grads
}

// Inputs returns the saved forward tensors, bias excluded when absent.
func (op *LinearOp) Inputs() []*tensor.RawTensor {
	inputs := []*tensor.RawTensor{op.input, op.weight}
	if op.bias != nil {
		inputs = append(inputs, op.bias)
	}
	return inputs
}

// Output returns the layer output.
func (op *LinearOp) Output() *tensor.RawTensor { return op.output }
