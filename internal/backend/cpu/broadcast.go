package cpu

import "github.com/quatnn-ml/quatnn/internal/tensor"

// broadcastFloat32 applies f element-wise with NumPy-style broadcasting.
// Shapes are aligned from the right; size-1 (or missing) dimensions repeat.
func broadcastFloat32(
	result, a, b *tensor.RawTensor,
	outShape tensor.Shape,
	f func(x, y float32) float32,
) {
	dst := result.AsFloat32()
	x := a.AsFloat32()
	y := b.AsFloat32()

	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)

	for i := range dst {
		ai, bi := 0, 0
		temp := i
		for d := 0; d < len(outShape); d++ {
			coord := temp / outStrides[d]
			temp %= outStrides[d]
			ai += coord * aStrides[d]
			bi += coord * bStrides[d]
		}
		dst[i] = f(x[ai], y[bi])
	}
}

// broadcastFloat64 is the float64 counterpart of broadcastFloat32.
func broadcastFloat64(
	result, a, b *tensor.RawTensor,
	outShape tensor.Shape,
	f func(x, y float64) float64,
) {
	dst := result.AsFloat64()
	x := a.AsFloat64()
	y := b.AsFloat64()

	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)

	for i := range dst {
		ai, bi := 0, 0
		temp := i
		for d := 0; d < len(outShape); d++ {
			coord := temp / outStrides[d]
			temp %= outStrides[d]
			ai += coord * aStrides[d]
			bi += coord * bStrides[d]
		}
		dst[i] = f(x[ai], y[bi])
	}
}

// broadcastStrides computes per-output-dimension strides for an input shape
// being broadcast to outShape. Broadcast dimensions get stride 0 so the same
// input element repeats along them.
func broadcastStrides(in tensor.Shape, out tensor.Shape) []int {
	inStrides := in.ComputeStrides()
	strides := make([]int, len(out))
	offset := len(out) - len(in)
	for d := range out {
		if d < offset {
			strides[d] = 0 // Missing leading dimension
			continue
		}
		if in[d-offset] == 1 && out[d] != 1 {
			strides[d] = 0 // Size-1 dimension repeats
			continue
		}
		strides[d] = inStrides[d-offset]
	}
	return strides
}
