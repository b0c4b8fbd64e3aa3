package ops

import (
	"fmt"

	"github.com/quatnn-ml/quatnn/internal/quaternion"
	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// QuaternionLinearOp records a quaternion linear layer application as a
// single tape unit: output = input ⊗ weight (+ bias), where the weight
// quaternion is stored as four real component blocks and the product is
// realized through the block encoding.
//
// Backward, with E the encoding of the weights:
//   - grad_input  = outputGrad · Eᵀ
//   - grad_weight = encode(input)ᵀ · encode(outputGrad), a [4F,4G] matrix
//     whose top F rows split into the four [F,G] component gradients
//   - grad_bias   = outputGrad summed over all batch-like axes
//
// The needs flags gate each slot; a false flag yields a nil gradient.
// All saved context lives on the op instance, so concurrent forwards
// through shared weights record independent ops.
type QuaternionLinearOp struct {
	input   *tensor.RawTensor
	rWeight *tensor.RawTensor
	iWeight *tensor.RawTensor
	jWeight *tensor.RawTensor
	kWeight *tensor.RawTensor
	bias    *tensor.RawTensor // nil when the layer has no bias
	output  *tensor.RawTensor
	needs   [6]bool // input, r, i, j, k, bias
}

// NewQuaternionLinearOp creates a new QuaternionLinearOp.
func NewQuaternionLinearOp(input, rWeight, iWeight, jWeight, kWeight, bias, output *tensor.RawTensor, needs [6]bool) *QuaternionLinearOp {
	return &QuaternionLinearOp{
		input:   input,
		rWeight: rWeight,
		iWeight: iWeight,
		jWeight: jWeight,
		kWeight: kWeight,
		bias:    bias,
		output:  output,
		needs:   needs,
	}
}

// Backward computes the gated input gradients.
func (op *QuaternionLinearOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inShape := op.input.Shape()
	rank := len(inShape)

	// Rank-3 tensors are flattened so every product below is an ordinary
	// matrix multiplication.
	x := op.input
	g := outputGrad
	if rank == 3 {
		x = backend.Reshape(x, tensor.Shape{inShape[0] * inShape[1], inShape[2]})
		g = backend.Reshape(g, tensor.Shape{inShape[0] * inShape[1], outputGrad.Shape()[2]})
	}

	grads := make([]*tensor.RawTensor, 0, 6)

	if op.needs[0] {
		encoding := mustEncode(backend, op.rWeight, op.iWeight, op.jWeight, op.kWeight)
		gradInput := backend.MatMul(g, backend.Transpose(encoding, 1, 0))
		if rank == 3 {
			gradInput = backend.Reshape(gradInput, inShape)
		}
		grads = append(grads, gradInput)
	} else {
		grads = append(grads, nil)
	}

	if op.needs[1] || op.needs[2] || op.needs[3] || op.needs[4] {
		rows := op.rWeight.Shape()[0]
		cols := op.rWeight.Shape()[1]
		inputEnc := encodeChannels(backend, x)
		gradEnc := encodeChannels(backend, g)
		gradMat := backend.MatMul(backend.Transpose(inputEnc, 1, 0), gradEnc)
		top := backend.Narrow(gradMat, 0, 0, rows)
		for c := 0; c < 4; c++ {
			if op.needs[1+c] {
				grads = append(grads, backend.Narrow(top, 1, c*cols, cols))
			} else {
				grads = append(grads, nil)
			}
		}
	} else {
		grads = append(grads, nil, nil, nil, nil)
	}

	if op.bias != nil {
		if op.needs[5] {
			grads = append(grads, backend.SumDim(g, 0, false))
		} else {
			grads = append(grads, nil)
		}
	}

	return grads
}

// Inputs returns the saved forward tensors, bias excluded when absent.
func (op *QuaternionLinearOp) Inputs() []*tensor.RawTensor {
	inputs := []*tensor.RawTensor{op.input, op.rWeight, op.iWeight, op.jWeight, op.kWeight}
	if op.bias != nil {
		inputs = append(inputs, op.bias)
	}
	return inputs
}

// Output returns the layer output.
func (op *QuaternionLinearOp) Output() *tensor.RawTensor { return op.output }

// encodeChannels block-encodes the four channels of a [N,4H] tensor into a
// [4N,4H] matrix using the Hamilton pattern.
func encodeChannels(backend tensor.Backend, t *tensor.RawTensor) *tensor.RawTensor {
	h := t.Shape()[1] / 4
	r := backend.Narrow(t, 1, 0, h)
	i := backend.Narrow(t, 1, h, h)
	j := backend.Narrow(t, 1, 2*h, h)
	k := backend.Narrow(t, 1, 3*h, h)
	return mustEncode(backend, r, i, j, k)
}

// mustEncode builds the block encoding of four equal-shape matrices. The
// shapes were validated during the forward pass, so failure here is a bug.
func mustEncode(backend tensor.Backend, r, i, j, k *tensor.RawTensor) *tensor.RawTensor {
	encoding, err := quaternion.BuildEncoding(backend, r, i, j, k)
	if err != nil {
		panic(fmt.Sprintf("quaternion linear backward: %v", err))
	}
	return encoding
}
