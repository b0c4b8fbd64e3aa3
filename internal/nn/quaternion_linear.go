package nn

import (
	"math/rand"

	"github.com/quatnn-ml/quatnn/internal/quaternion"
	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// InitScheme selects the quaternion weight initialization scheme.
type InitScheme string

// Supported initialization schemes.
const (
	InitUnitary    InitScheme = "unitary"    // four free draws renormalized per quadruple
	InitQuaternion InitScheme = "quaternion" // polar form: modulus and phase drawn directly
)

// QuaternionLinear is a quaternion-valued fully connected layer.
//
// The weight quaternion is stored as four real component blocks of shape
// [in_features, out_features], where features count quaternion units: an
// input of width 4·in_features produces an output of width 4·out_features.
//
// Shapes:
//   - input:  [batch, 4·in_features] or [batch, seq, 4·in_features]
//   - bias:   [4·out_features]
//   - output: input shape with the last axis replaced by 4·out_features
type QuaternionLinear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	rWeight     *Parameter[B]
	iWeight     *Parameter[B]
	jWeight     *Parameter[B]
	kWeight     *Parameter[B]
	bias        *Parameter[B] // nil when constructed without bias
	backend     B
}

// NewQuaternionLinear creates a QuaternionLinear layer. The four weight
// blocks are drawn by the chosen scheme and criterion from a generator
// seeded with seed, so the same seed reproduces the same weights. The bias
// starts at zero.
func NewQuaternionLinear[B tensor.Backend](
	inFeatures, outFeatures int,
	withBias bool,
	scheme InitScheme,
	criterion quaternion.Criterion,
	seed int64,
	backend B,
) (*QuaternionLinear[B], error) {
	var initFn quaternion.InitFunc
	switch scheme {
	case InitUnitary:
		initFn = quaternion.UnitaryInit
	case InitQuaternion:
		initFn = quaternion.QuaternionInit
	default:
		return nil, &quaternion.InvalidOperationError{Operation: string(scheme)}
	}

	shape := tensor.Shape{inFeatures, outFeatures}
	r := Zeros(shape, backend)
	i := Zeros(shape, backend)
	j := Zeros(shape, backend)
	k := Zeros(shape, backend)

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic weight initialization
	if err := quaternion.AffectInit(r.Raw(), i.Raw(), j.Raw(), k.Raw(), initFn, rng, criterion); err != nil {
		return nil, err
	}

	layer := &QuaternionLinear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		rWeight:     NewParameter("r_weight", r),
		iWeight:     NewParameter("i_weight", i),
		jWeight:     NewParameter("j_weight", j),
		kWeight:     NewParameter("k_weight", k),
		backend:     backend,
	}
	if withBias {
		layer.bias = NewParameter("bias", Zeros(tensor.Shape{4 * outFeatures}, backend))
	}
	return layer, nil
}

// Forward applies the quaternion linear transformation. On differentiating
// backends the whole layer is recorded as one fused unit with the custom
// block-encoding backward.
func (l *QuaternionLinear[B]) Forward(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	if err := quaternion.CheckInput(input.Raw()); err != nil {
		return nil, err
	}

	var biasRaw *tensor.RawTensor
	needs := [6]bool{
		input.RequiresGrad(),
		l.rWeight.Tensor().RequiresGrad(),
		l.iWeight.Tensor().RequiresGrad(),
		l.jWeight.Tensor().RequiresGrad(),
		l.kWeight.Tensor().RequiresGrad(),
		false,
	}
	if l.bias != nil {
		biasRaw = l.bias.Tensor().Raw()
		needs[5] = l.bias.Tensor().RequiresGrad()
	}

	out, err := l.backend.QuaternionLinear(
		input.Raw(),
		l.rWeight.Tensor().Raw(),
		l.iWeight.Tensor().Raw(),
		l.jWeight.Tensor().Raw(),
		l.kWeight.Tensor().Raw(),
		biasRaw,
		needs,
	)
	if err != nil {
		return nil, err
	}
	return tensor.New[float32, B](out, l.backend), nil
}

// Parameters returns the four weight blocks and the bias when present.
func (l *QuaternionLinear[B]) Parameters() []*Parameter[B] {
	params := []*Parameter[B]{l.rWeight, l.iWeight, l.jWeight, l.kWeight}
	if l.bias != nil {
		params = append(params, l.bias)
	}
	return params
}

// Weights returns the r, i, j, k weight parameters in order.
func (l *QuaternionLinear[B]) Weights() [4]*Parameter[B] {
	return [4]*Parameter[B]{l.rWeight, l.iWeight, l.jWeight, l.kWeight}
}

// Bias returns the bias parameter, or nil when the layer has none.
func (l *QuaternionLinear[B]) Bias() *Parameter[B] {
	return l.bias
}
