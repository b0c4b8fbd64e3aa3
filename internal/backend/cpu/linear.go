package cpu

import (
	"fmt"

	"github.com/quatnn-ml/quatnn/internal/quaternion"
	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// QuaternionLinear applies the quaternion linear transformation without
// recording gradients. The needs flags only matter on differentiating
// backends, which wrap this computation in a taped operation.
func (cpu *CPUBackend) QuaternionLinear(input, rWeight, iWeight, jWeight, kWeight, bias *tensor.RawTensor, _ [6]bool) (*tensor.RawTensor, error) {
	return quaternion.LinearForward(cpu, input, rWeight, iWeight, jWeight, kWeight, bias)
}

// Linear computes y = x·Wᵀ + b for input [N,in] or [B,S,in] and weight
// [out,in]. Gradients are handled by differentiating backends.
func (cpu *CPUBackend) Linear(input, weight, bias *tensor.RawTensor, _ [3]bool) (*tensor.RawTensor, error) {
	shape := input.Shape()
	rank := len(shape)
	if rank != 2 && rank != 3 {
		return nil, fmt.Errorf("linear accepts only input of rank 2 or 3, got rank %d", rank)
	}
	if len(weight.Shape()) != 2 {
		return nil, fmt.Errorf("linear weight must be a matrix, got rank %d", len(weight.Shape()))
	}
	in := shape[rank-1]
	if in != weight.Shape()[1] {
		return nil, fmt.Errorf("input last axis %d does not match weight columns %d", in, weight.Shape()[1])
	}
	out := weight.Shape()[0]
	if bias != nil {
		biasShape := bias.Shape()
		if len(biasShape) != 1 || biasShape[0] != out {
			return nil, fmt.Errorf("bias shape %v does not match output width %d", biasShape, out)
		}
	}

	x := input
	if rank == 3 {
		x = cpu.Reshape(input, tensor.Shape{shape[0] * shape[1], in})
	}

	y := cpu.MatMul(x, cpu.Transpose(weight))
	if bias != nil {
		y = cpu.Add(y, bias)
	}
	if rank == 3 {
		y = cpu.Reshape(y, tensor.Shape{shape[0], shape[1], out})
	}
	return y, nil
}
