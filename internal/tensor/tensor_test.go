package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quatnn-ml/quatnn/internal/backend/cpu"
	"github.com/quatnn-ml/quatnn/internal/tensor"
)

func TestShapeNumElements(t *testing.T) {
	assert.Equal(t, 12, tensor.Shape{3, 4}.NumElements())
	assert.Equal(t, 1, tensor.Shape{}.NumElements()) // scalar
	assert.Equal(t, 5, tensor.Shape{5}.NumElements())
}

func TestShapeValidate(t *testing.T) {
	assert.NoError(t, tensor.Shape{3, 4}.Validate())
	assert.NoError(t, tensor.Shape{}.Validate())
	assert.Error(t, tensor.Shape{3, 0}.Validate())
	assert.Error(t, tensor.Shape{-1, 4}.Validate())
}

func TestShapeEqualClone(t *testing.T) {
	s := tensor.Shape{2, 3}
	assert.True(t, s.Equal(tensor.Shape{2, 3}))
	assert.False(t, s.Equal(tensor.Shape{3, 2}))
	assert.False(t, s.Equal(tensor.Shape{2, 3, 1}))

	clone := s.Clone()
	clone[0] = 9
	assert.Equal(t, 2, s[0])
}

func TestComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, tensor.Shape{2, 3, 4}.ComputeStrides())
	assert.Equal(t, []int{1}, tensor.Shape{7}.ComputeStrides())
	assert.Empty(t, tensor.Shape{}.ComputeStrides())
}

func TestBroadcastShapes(t *testing.T) {
	out, needed, err := tensor.BroadcastShapes(tensor.Shape{3, 1}, tensor.Shape{3, 5})
	require.NoError(t, err)
	assert.True(t, needed)
	assert.Equal(t, tensor.Shape{3, 5}, out)

	out, needed, err = tensor.BroadcastShapes(tensor.Shape{2, 3}, tensor.Shape{3})
	require.NoError(t, err)
	assert.True(t, needed)
	assert.Equal(t, tensor.Shape{2, 3}, out)

	out, needed, err = tensor.BroadcastShapes(tensor.Shape{2, 3}, tensor.Shape{2, 3})
	require.NoError(t, err)
	assert.False(t, needed)
	assert.Equal(t, tensor.Shape{2, 3}, out)

	// A scalar broadcasts against anything.
	out, _, err = tensor.BroadcastShapes(tensor.Shape{2, 3}, tensor.Shape{})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, out)

	_, _, err = tensor.BroadcastShapes(tensor.Shape{3, 4}, tensor.Shape{3, 5})
	assert.Error(t, err)
}

func TestNewRaw(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, raw.Shape())
	assert.Equal(t, tensor.Float32, raw.DType())
	assert.Equal(t, 6, raw.NumElements())
	assert.Equal(t, 24, raw.ByteSize())
	assert.Len(t, raw.AsFloat32(), 6)

	_, err = tensor.NewRaw(tensor.Shape{2, 0}, tensor.Float32, tensor.CPU)
	assert.Error(t, err)
}

func TestRawClone(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	raw.AsFloat64()[0] = 5

	clone := raw.Clone()
	clone.AsFloat64()[0] = 9
	assert.Equal(t, 5.0, raw.AsFloat64()[0])
}

func TestFromSlice(t *testing.T) {
	backend := cpu.New()
	tt, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, tt.Shape())
	assert.Equal(t, float32(6), tt.At(1, 2))

	tt.Set(99, 0, 1)
	assert.Equal(t, float32(99), tt.At(0, 1))

	_, err = tensor.FromSlice([]float32{1, 2}, tensor.Shape{2, 3}, backend)
	assert.Error(t, err)
}

func TestCreation(t *testing.T) {
	backend := cpu.New()

	zeros := tensor.Zeros[float32](tensor.Shape{2, 2}, backend)
	for _, v := range zeros.Data() {
		assert.Zero(t, v)
	}

	ones := tensor.Ones[float64](tensor.Shape{3}, backend)
	assert.Equal(t, []float64{1, 1, 1}, ones.Data())

	full := tensor.Full[float32](tensor.Shape{2}, 3.5, backend)
	assert.Equal(t, []float32{3.5, 3.5}, full.Data())

	randn := tensor.Randn[float32](tensor.Shape{100}, backend)
	assert.Equal(t, 100, randn.NumElements())
}

func TestItem(t *testing.T) {
	backend := cpu.New()
	sum := tensor.Ones[float32](tensor.Shape{2, 3}, backend).Sum()
	assert.Equal(t, tensor.Shape{}, sum.Shape())
	assert.Equal(t, float32(6), sum.Item())

	assert.Panics(t, func() {
		tensor.Ones[float32](tensor.Shape{2}, backend).Item()
	})
}

func TestTensorOps(t *testing.T) {
	backend := cpu.New()
	a, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float32{5, 6, 7, 8}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	assert.Equal(t, []float32{6, 8, 10, 12}, a.Add(b).Data())
	assert.Equal(t, []float32{19, 22, 43, 50}, a.MatMul(b).Data())
	assert.Equal(t, []float32{1, 3, 2, 4}, a.T().Data())
	assert.Equal(t, tensor.Shape{4}, a.Reshape(4).Shape())
	assert.Equal(t, []float32{2, 4}, a.Narrow(1, 1, 1).Data())
	assert.Equal(t, []float32{4, 6}, a.SumDim(0, false).Data())

	joined := tensor.Cat([]*tensor.Tensor[float32, *cpu.CPUBackend]{a, b}, 0)
	assert.Equal(t, tensor.Shape{4, 2}, joined.Shape())
}

func TestRequiresGradAndDetach(t *testing.T) {
	backend := cpu.New()
	a := tensor.Ones[float32](tensor.Shape{2}, backend)

	assert.False(t, a.RequiresGrad())
	a.RequireGrad()
	assert.True(t, a.RequiresGrad())

	detached := a.Detach()
	assert.False(t, detached.RequiresGrad())
	// Detached tensors share storage.
	detached.Set(7, 0)
	assert.Equal(t, float32(7), a.At(0))
}

func TestClone(t *testing.T) {
	backend := cpu.New()
	a := tensor.Ones[float32](tensor.Shape{2}, backend)
	c := a.Clone()
	c.Set(5, 0)
	assert.Equal(t, float32(1), a.At(0))
}
