package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quatnn-ml/quatnn/internal/backend/cpu"
	"github.com/quatnn-ml/quatnn/internal/quaternion"
	"github.com/quatnn-ml/quatnn/internal/tensor"
)

func raw32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat32(), data)
	return raw
}

func raw64(t *testing.T, data []float64, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat64(), data)
	return raw
}

func TestBinaryOps(t *testing.T) {
	backend := cpu.New()
	a := raw32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := raw32(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	assert.Equal(t, []float32{6, 8, 10, 12}, backend.Add(a, b).AsFloat32())
	assert.Equal(t, []float32{-4, -4, -4, -4}, backend.Sub(a, b).AsFloat32())
	assert.Equal(t, []float32{5, 12, 21, 32}, backend.Mul(a, b).AsFloat32())
	assert.InDeltaSlice(t, []float32{0.2, 1.0 / 3, 3.0 / 7, 0.5}, backend.Div(a, b).AsFloat32(), 1e-6)
}

func TestBinaryOpsBroadcast(t *testing.T) {
	backend := cpu.New()
	a := raw32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := raw32(t, []float32{10, 20, 30}, tensor.Shape{3})

	sum := backend.Add(a, b)
	assert.Equal(t, tensor.Shape{2, 3}, sum.Shape())
	assert.Equal(t, []float32{11, 22, 33, 14, 25, 36}, sum.AsFloat32())

	// Broadcast against a size-1 dimension.
	col := raw32(t, []float32{100, 200}, tensor.Shape{2, 1})
	sum = backend.Add(a, col)
	assert.Equal(t, []float32{101, 102, 103, 204, 205, 206}, sum.AsFloat32())
}

func TestMatMul(t *testing.T) {
	backend := cpu.New()

	a := raw32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := raw32(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	out := backend.MatMul(a, b)
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.InDeltaSlice(t, []float32{58, 64, 139, 154}, out.AsFloat32(), 1e-5)
}

func TestMatMulFloat64(t *testing.T) {
	backend := cpu.New()

	a := raw64(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := raw64(t, []float64{5, 6, 7, 8}, tensor.Shape{2, 2})

	out := backend.MatMul(a, b)
	assert.InDeltaSlice(t, []float64{19, 22, 43, 50}, out.AsFloat64(), 1e-12)
}

func TestTranspose(t *testing.T) {
	backend := cpu.New()
	a := raw32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out := backend.Transpose(a)
	assert.Equal(t, tensor.Shape{3, 2}, out.Shape())
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, out.AsFloat32())
}

func TestTransposePermutation(t *testing.T) {
	backend := cpu.New()
	a := raw32(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{2, 2, 2})

	out := backend.Transpose(a, 1, 0, 2)
	assert.Equal(t, tensor.Shape{2, 2, 2}, out.Shape())
	assert.Equal(t, []float32{1, 2, 5, 6, 3, 4, 7, 8}, out.AsFloat32())
}

func TestReshape(t *testing.T) {
	backend := cpu.New()
	a := raw32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out := backend.Reshape(a, tensor.Shape{3, 2})
	assert.Equal(t, tensor.Shape{3, 2}, out.Shape())
	assert.Equal(t, a.AsFloat32(), out.AsFloat32())

	// Reshape copies; mutating the view must not touch the source.
	out.AsFloat32()[0] = 99
	assert.Equal(t, float32(1), a.AsFloat32()[0])
}

func TestCat(t *testing.T) {
	backend := cpu.New()
	a := raw32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := raw32(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	rows := backend.Cat([]*tensor.RawTensor{a, b}, 0)
	assert.Equal(t, tensor.Shape{4, 2}, rows.Shape())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, rows.AsFloat32())

	cols := backend.Cat([]*tensor.RawTensor{a, b}, 1)
	assert.Equal(t, tensor.Shape{2, 4}, cols.Shape())
	assert.Equal(t, []float32{1, 2, 5, 6, 3, 4, 7, 8}, cols.AsFloat32())
}

func TestNarrow(t *testing.T) {
	backend := cpu.New()
	a := raw32(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{2, 4})

	mid := backend.Narrow(a, 1, 1, 2)
	assert.Equal(t, tensor.Shape{2, 2}, mid.Shape())
	assert.Equal(t, []float32{2, 3, 6, 7}, mid.AsFloat32())

	row := backend.Narrow(a, 0, 1, 1)
	assert.Equal(t, tensor.Shape{1, 4}, row.Shape())
	assert.Equal(t, []float32{5, 6, 7, 8}, row.AsFloat32())
}

func TestNarrowCatRoundTrip(t *testing.T) {
	backend := cpu.New()
	a := raw32(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{2, 4})

	parts := []*tensor.RawTensor{
		backend.Narrow(a, 1, 0, 1),
		backend.Narrow(a, 1, 1, 2),
		backend.Narrow(a, 1, 3, 1),
	}
	assert.Equal(t, a.AsFloat32(), backend.Cat(parts, 1).AsFloat32())
}

func TestScalarOps(t *testing.T) {
	backend := cpu.New()
	a := raw32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	assert.Equal(t, []float32{2, 4, 6, 8}, backend.MulScalar(a, float32(2)).AsFloat32())
	assert.Equal(t, []float32{11, 12, 13, 14}, backend.AddScalar(a, float32(10)).AsFloat32())
	assert.Equal(t, []float32{0, 1, 2, 3}, backend.SubScalar(a, float32(1)).AsFloat32())
	assert.InDeltaSlice(t, []float32{0.5, 1, 1.5, 2}, backend.DivScalar(a, float32(2)).AsFloat32(), 1e-6)
}

func TestSqrt(t *testing.T) {
	backend := cpu.New()
	a := raw64(t, []float64{1, 4, 9, 16}, tensor.Shape{4})
	assert.InDeltaSlice(t, []float64{1, 2, 3, 4}, backend.Sqrt(a).AsFloat64(), 1e-12)
}

func TestSum(t *testing.T) {
	backend := cpu.New()
	a := raw32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out := backend.Sum(a)
	assert.Equal(t, tensor.Shape{}, out.Shape())
	assert.Equal(t, 1, out.NumElements())
	assert.Equal(t, float32(21), out.AsFloat32()[0])
}

func TestSumDim(t *testing.T) {
	backend := cpu.New()
	a := raw32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	d0 := backend.SumDim(a, 0, false)
	assert.Equal(t, tensor.Shape{3}, d0.Shape())
	assert.Equal(t, []float32{5, 7, 9}, d0.AsFloat32())

	d1 := backend.SumDim(a, 1, false)
	assert.Equal(t, tensor.Shape{2}, d1.Shape())
	assert.Equal(t, []float32{6, 15}, d1.AsFloat32())

	kept := backend.SumDim(a, 1, true)
	assert.Equal(t, tensor.Shape{2, 1}, kept.Shape())
	assert.Equal(t, []float32{6, 15}, kept.AsFloat32())

	neg := backend.SumDim(a, -1, false)
	assert.Equal(t, d1.AsFloat32(), neg.AsFloat32())
}

func TestSumDimRank3(t *testing.T) {
	backend := cpu.New()
	a := raw32(t, []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
	}, tensor.Shape{2, 2, 2})

	mid := backend.SumDim(a, 1, false)
	assert.Equal(t, tensor.Shape{2, 2}, mid.Shape())
	assert.Equal(t, []float32{4, 6, 12, 14}, mid.AsFloat32())
}

func TestLinear(t *testing.T) {
	backend := cpu.New()
	input := raw32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	weight := raw32(t, []float32{
		1, 0, 0,
		0, 1, 0,
	}, tensor.Shape{2, 3})
	bias := raw32(t, []float32{10, 20}, tensor.Shape{2})

	out, err := backend.Linear(input, weight, bias, [3]bool{})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.InDeltaSlice(t, []float32{11, 22, 14, 25}, out.AsFloat32(), 1e-5)
}

func TestLinearRank3(t *testing.T) {
	backend := cpu.New()
	input := raw32(t, []float32{
		1, 2,
		3, 4,
		5, 6,
		7, 8,
	}, tensor.Shape{2, 2, 2})
	weight := raw32(t, []float32{1, 1, 1, -1, 2, 0}, tensor.Shape{3, 2})

	out, err := backend.Linear(input, weight, nil, [3]bool{})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2, 3}, out.Shape())
	assert.InDeltaSlice(t, []float32{
		3, -1, 2,
		7, -1, 6,
		11, -1, 10,
		15, -1, 14,
	}, out.AsFloat32(), 1e-5)
}

func TestLinearShapeErrors(t *testing.T) {
	backend := cpu.New()
	input := raw32(t, []float32{1, 2, 3}, tensor.Shape{1, 3})
	weight := raw32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	_, err := backend.Linear(input, weight, nil, [3]bool{})
	require.Error(t, err)

	vec := raw32(t, []float32{1, 2, 3}, tensor.Shape{3})
	_, err = backend.Linear(vec, weight, nil, [3]bool{})
	require.Error(t, err)
}

func TestQuaternionLinearIdentity(t *testing.T) {
	backend := cpu.New()

	rW := raw32(t, []float32{1}, tensor.Shape{1, 1})
	zero := raw32(t, []float32{0}, tensor.Shape{1, 1})
	input := raw32(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{2, 4})

	out, err := backend.QuaternionLinear(input, rW, zero, zero, zero, nil, [6]bool{})
	require.NoError(t, err)
	assert.InDeltaSlice(t, input.AsFloat32(), out.AsFloat32(), 1e-6)
}

func TestQuaternionLinearShapes(t *testing.T) {
	backend := cpu.New()

	newW := func() *tensor.RawTensor {
		return raw32(t, make([]float32, 6), tensor.Shape{2, 3})
	}
	rW, iW, jW, kW := newW(), newW(), newW(), newW()
	input := raw32(t, make([]float32, 16), tensor.Shape{2, 8})

	out, err := backend.QuaternionLinear(input, rW, iW, jW, kW, nil, [6]bool{})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 12}, out.Shape())

	bad := raw32(t, make([]float32, 6), tensor.Shape{1, 6})
	var shapeErr *quaternion.ShapeError
	_, err = backend.QuaternionLinear(bad, rW, iW, jW, kW, nil, [6]bool{})
	require.ErrorAs(t, err, &shapeErr)
}

func TestQuaternionLinearBias(t *testing.T) {
	backend := cpu.New()

	rW := raw32(t, []float32{1}, tensor.Shape{1, 1})
	zero := raw32(t, []float32{0}, tensor.Shape{1, 1})
	bias := raw32(t, []float32{10, 20, 30, 40}, tensor.Shape{4})
	input := raw32(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 4})

	out, err := backend.QuaternionLinear(input, rW, zero, zero, zero, bias, [6]bool{})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{11, 22, 33, 44}, out.AsFloat32(), 1e-5)
}

func TestBackendMetadata(t *testing.T) {
	backend := cpu.New()
	assert.Equal(t, "CPU", backend.Name())
	assert.Equal(t, tensor.CPU, backend.Device())
}
