// Package ops defines the differentiable operations recorded by the
// gradient tape.
//
// Each operation captures its input and output tensors during the forward
// pass (the backend computes the forward result) and knows how to turn the
// output gradient into input gradients during the backward pass. Fused
// layer operations such as QuaternionLinearOp differentiate a whole layer
// as a single tape unit.
package ops

import "github.com/quatnn-ml/quatnn/internal/tensor"

// Operation is one differentiable step in the computation graph.
type Operation interface {
	// Backward computes gradients for the inputs given the output
	// gradient. The returned slice is index-aligned with Inputs(); a nil
	// entry means no gradient flows to that input.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors of this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the tensor produced by this operation.
	Output() *tensor.RawTensor
}
