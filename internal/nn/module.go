// Package nn implements the neural network layers of the QuatNN framework.
//
// The package provides the externally visible building blocks:
//   - Module interface: base interface for all layers
//   - Parameter: trainable parameter handle
//   - QuaternionLinear: quaternion-valued fully connected layer
//   - Linear: plain fully connected baseline layer
//
// Layers validate their inputs and return errors instead of panicking, so
// a model-assembly caller can recover from malformed shapes.
package nn

import (
	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	// It returns an error when the input violates the module's shape
	// contract.
	Forward(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error)

	// Parameters returns all trainable parameters of this module.
	// Modules without trainable parameters return an empty slice.
	Parameters() []*Parameter[B]
}
