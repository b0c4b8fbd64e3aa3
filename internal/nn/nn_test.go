package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quatnn-ml/quatnn/internal/autodiff"
	"github.com/quatnn-ml/quatnn/internal/backend/cpu"
	"github.com/quatnn-ml/quatnn/internal/nn"
	"github.com/quatnn-ml/quatnn/internal/quaternion"
	"github.com/quatnn-ml/quatnn/internal/tensor"
)

func TestNewQuaternionLinear(t *testing.T) {
	backend := cpu.New()
	layer, err := nn.NewQuaternionLinear(2, 3, true, nn.InitUnitary, quaternion.Glorot, 42, backend)
	require.NoError(t, err)

	weights := layer.Weights()
	for _, w := range weights {
		assert.Equal(t, tensor.Shape{2, 3}, w.Tensor().Shape())
		assert.True(t, w.Tensor().RequiresGrad())
	}
	require.NotNil(t, layer.Bias())
	assert.Equal(t, tensor.Shape{12}, layer.Bias().Tensor().Shape())
	assert.Len(t, layer.Parameters(), 5)
}

func TestNewQuaternionLinearNoBias(t *testing.T) {
	backend := cpu.New()
	layer, err := nn.NewQuaternionLinear(2, 3, false, nn.InitQuaternion, quaternion.He, 1, backend)
	require.NoError(t, err)

	assert.Nil(t, layer.Bias())
	assert.Len(t, layer.Parameters(), 4)
}

func TestNewQuaternionLinearSeedDeterminism(t *testing.T) {
	backend := cpu.New()
	a, err := nn.NewQuaternionLinear(3, 4, false, nn.InitUnitary, quaternion.Glorot, 7, backend)
	require.NoError(t, err)
	b, err := nn.NewQuaternionLinear(3, 4, false, nn.InitUnitary, quaternion.Glorot, 7, backend)
	require.NoError(t, err)

	for c := range a.Weights() {
		assert.Equal(t, a.Weights()[c].Tensor().Data(), b.Weights()[c].Tensor().Data())
	}

	other, err := nn.NewQuaternionLinear(3, 4, false, nn.InitUnitary, quaternion.Glorot, 8, backend)
	require.NoError(t, err)
	assert.NotEqual(t, a.Weights()[0].Tensor().Data(), other.Weights()[0].Tensor().Data())
}

func TestNewQuaternionLinearInvalidScheme(t *testing.T) {
	backend := cpu.New()
	var opErr *quaternion.InvalidOperationError
	_, err := nn.NewQuaternionLinear(2, 3, true, "orthogonal", quaternion.Glorot, 1, backend)
	require.ErrorAs(t, err, &opErr)
}

func TestNewQuaternionLinearInvalidCriterion(t *testing.T) {
	backend := cpu.New()
	var critErr *quaternion.InvalidCriterionError
	_, err := nn.NewQuaternionLinear(2, 3, true, nn.InitUnitary, "xavier", 1, backend)
	require.ErrorAs(t, err, &critErr)
}

func TestQuaternionLinearForward(t *testing.T) {
	backend := cpu.New()
	layer, err := nn.NewQuaternionLinear(2, 3, true, nn.InitUnitary, quaternion.Glorot, 42, backend)
	require.NoError(t, err)

	input, err := tensor.FromSlice(make([]float32, 16), tensor.Shape{2, 8}, backend)
	require.NoError(t, err)

	out, err := layer.Forward(input)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 12}, out.Shape())
}

func TestQuaternionLinearForwardRank3(t *testing.T) {
	backend := cpu.New()
	layer, err := nn.NewQuaternionLinear(2, 3, false, nn.InitQuaternion, quaternion.He, 3, backend)
	require.NoError(t, err)

	input, err := tensor.FromSlice(make([]float32, 5*7*8), tensor.Shape{5, 7, 8}, backend)
	require.NoError(t, err)

	out, err := layer.Forward(input)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{5, 7, 12}, out.Shape())
}

func TestQuaternionLinearForwardShapeError(t *testing.T) {
	backend := cpu.New()
	layer, err := nn.NewQuaternionLinear(2, 3, true, nn.InitUnitary, quaternion.Glorot, 42, backend)
	require.NoError(t, err)

	input, err := tensor.FromSlice(make([]float32, 12), tensor.Shape{2, 6}, backend)
	require.NoError(t, err)

	var shapeErr *quaternion.ShapeError
	_, err = layer.Forward(input)
	require.ErrorAs(t, err, &shapeErr)
}

func TestQuaternionLinearTraining(t *testing.T) {
	backend := autodiff.New(cpu.New())
	layer, err := nn.NewQuaternionLinear(2, 1, true, nn.InitUnitary, quaternion.Glorot, 42, backend)
	require.NoError(t, err)

	input, err := tensor.FromSlice([]float32{
		0.5, -1.2, 0.3, 0.8, -0.4, 1.1, 0.9, -0.7,
	}, tensor.Shape{1, 8}, backend)
	require.NoError(t, err)

	backend.Tape().StartRecording()
	out, err := layer.Forward(input)
	require.NoError(t, err)
	loss := backend.Sum(out.Raw())
	grads := autodiff.Backward(tensor.New[float32](loss, backend), backend)
	backend.Tape().StopRecording()

	// All parameters requested gradients via RequireGrad.
	for _, p := range layer.Parameters() {
		grad := grads[p.Tensor().Raw()]
		require.NotNil(t, grad, "no gradient for %s", p.Name())
		assert.True(t, grad.Shape().Equal(p.Tensor().Shape()),
			"gradient shape %v for %s, want %v", grad.Shape(), p.Name(), p.Tensor().Shape())
	}

	// The input did not call RequireGrad, so no gradient is produced for it.
	_, ok := grads[input.Raw()]
	assert.False(t, ok)
}

func TestLinearForward(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(3, 2, backend)

	assert.Equal(t, tensor.Shape{2, 3}, layer.Weight().Tensor().Shape())
	assert.Equal(t, tensor.Shape{2}, layer.Bias().Tensor().Shape())
	assert.Len(t, layer.Parameters(), 2)

	input, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)

	out, err := layer.Forward(input)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
}

func TestLinearForwardShapeError(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(3, 2, backend)

	input, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	_, err = layer.Forward(input)
	require.Error(t, err)
}

func TestLinearTraining(t *testing.T) {
	backend := autodiff.New(cpu.New())
	layer := nn.NewLinear(3, 2, backend)

	input, err := tensor.FromSlice([]float32{0.5, -1.2, 0.3}, tensor.Shape{1, 3}, backend)
	require.NoError(t, err)

	backend.Tape().StartRecording()
	out, err := layer.Forward(input)
	require.NoError(t, err)
	loss := backend.Sum(out.Raw())
	grads := autodiff.Backward(tensor.New[float32](loss, backend), backend)
	backend.Tape().StopRecording()

	require.NotNil(t, grads[layer.Weight().Tensor().Raw()])
	require.NotNil(t, grads[layer.Bias().Tensor().Raw()])

	// d(sum(x·Wᵀ + b))/db = 1 for every output feature.
	for _, v := range grads[layer.Bias().Tensor().Raw()].AsFloat32() {
		assert.Equal(t, float32(1), v)
	}
}

func TestParameter(t *testing.T) {
	backend := cpu.New()
	p := nn.NewParameter("weight", nn.Ones(tensor.Shape{2, 2}, backend))

	assert.Equal(t, "weight", p.Name())
	assert.True(t, p.Tensor().RequiresGrad())
	assert.Nil(t, p.Grad())

	grad := nn.Zeros(tensor.Shape{2, 2}, backend)
	p.SetGrad(grad)
	assert.Equal(t, grad, p.Grad())

	p.ZeroGrad()
	assert.Nil(t, p.Grad())
}
