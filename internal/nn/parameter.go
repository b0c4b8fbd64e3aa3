package nn

import (
	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// Parameter is a trainable tensor of a layer, typically a weight block or
// a bias. The wrapped tensor is marked as requiring gradients.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
	grad   *tensor.Tensor[float32, B] // set after a backward pass
}

// NewParameter creates a new trainable parameter around an initialized
// tensor and marks it as requiring gradients.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	t.RequireGrad()
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Grad returns the gradient tensor, or nil before the first backward pass.
func (p *Parameter[B]) Grad() *tensor.Tensor[float32, B] {
	return p.grad
}

// SetGrad sets the gradient tensor.
func (p *Parameter[B]) SetGrad(grad *tensor.Tensor[float32, B]) {
	p.grad = grad
}

// ZeroGrad clears the gradient so iterations do not accumulate into each
// other.
func (p *Parameter[B]) ZeroGrad() {
	p.grad = nil
}
