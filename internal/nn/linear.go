package nn

import (
	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// Linear is a plain fully connected layer: y = x·Wᵀ + b.
//
// Shapes:
//   - input:  [batch, in_features] or [batch, seq, in_features]
//   - weight: [out_features, in_features]
//   - bias:   [out_features]
//   - output: input shape with the last axis replaced by out_features
//
// Weights use Xavier initialization, biases start at zero.
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B]
	bias        *Parameter[B] // nil when constructed without bias
	backend     B
}

// NewLinear creates a Linear layer with a bias term.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	weight := NewParameter("weight", Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, backend))
	bias := NewParameter("bias", Zeros(tensor.Shape{outFeatures}, backend))

	return &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
		backend:     backend,
	}
}

// Forward applies the affine transformation. The layer is recorded as one
// fused unit on differentiating backends.
func (l *Linear[B]) Forward(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	var biasRaw *tensor.RawTensor
	needs := [3]bool{
		input.RequiresGrad(),
		l.weight.Tensor().RequiresGrad(),
		false,
	}
	if l.bias != nil {
		biasRaw = l.bias.Tensor().Raw()
		needs[2] = l.bias.Tensor().RequiresGrad()
	}

	out, err := l.backend.Linear(input.Raw(), l.weight.Tensor().Raw(), biasRaw, needs)
	if err != nil {
		return nil, err
	}
	return tensor.New[float32, B](out, l.backend), nil
}

// Parameters returns the weight and bias parameters.
func (l *Linear[B]) Parameters() []*Parameter[B] {
	params := []*Parameter[B]{l.weight}
	if l.bias != nil {
		params = append(params, l.bias)
	}
	return params
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] {
	return l.weight
}

// Bias returns the bias parameter, or nil when the layer has none.
func (l *Linear[B]) Bias() *Parameter[B] {
	return l.bias
}
