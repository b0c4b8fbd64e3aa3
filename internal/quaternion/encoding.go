package quaternion

import (
	"fmt"

	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// hamiltonPattern drives the block layout of the real encoding matrix.
// hamiltonPattern[col][row] picks the source component and sign of the
// block in column-block col, row-block row:
//
//	        col 0   col 1   col 2   col 3
//	row 0:    r       i       j       k
//	row 1:   -i       r       k      -j
//	row 2:   -j      -k       r       i
//	row 3:   -k       j      -i       r
//
// Multiplying a row vector of stacked components [r i j k] by this matrix
// reproduces the Hamilton product table. The same pattern encodes the
// weights in the forward pass and the inputs and output gradients in the
// backward pass.
var hamiltonPattern = [4][4]struct {
	comp   Component
	negate bool
}{
	{{R, false}, {I, true}, {J, true}, {K, true}},
	{{I, false}, {R, false}, {K, true}, {J, false}},
	{{J, false}, {K, false}, {R, false}, {I, true}},
	{{K, false}, {J, true}, {I, false}, {R, false}},
}

// BuildEncoding assembles the 4R×4C block-encoding matrix from four R×C
// component blocks. The matrix is ephemeral: it is rebuilt on every call
// rather than cached, so it can never go stale when weights change.
func BuildEncoding(b tensor.Backend, r, i, j, k *tensor.RawTensor) (*tensor.RawTensor, error) {
	if len(r.Shape()) != 2 {
		return nil, fmt.Errorf("encoding blocks must be matrices, got rank %d", len(r.Shape()))
	}
	if !r.Shape().Equal(i.Shape()) || !r.Shape().Equal(j.Shape()) || !r.Shape().Equal(k.Shape()) {
		return nil, &SizeMismatchError{R: r.Shape(), I: i.Shape(), J: j.Shape(), K: k.Shape()}
	}

	comps := [4]*tensor.RawTensor{r, i, j, k}
	neg := [4]*tensor.RawTensor{}
	negated := func(c Component) *tensor.RawTensor {
		if neg[c] == nil {
			neg[c] = b.MulScalar(comps[c], scalarFor(comps[c].DType(), -1))
		}
		return neg[c]
	}

	cols := make([]*tensor.RawTensor, 4)
	for c := range cols {
		blocks := make([]*tensor.RawTensor, 4)
		for row := range blocks {
			p := hamiltonPattern[c][row]
			if p.negate {
				blocks[row] = negated(p.comp)
			} else {
				blocks[row] = comps[p.comp]
			}
		}
		cols[c] = b.Cat(blocks, 0)
	}
	return b.Cat(cols, 1), nil
}

// LinearForward applies the quaternion linear transformation
// output = input ⊗ weight (+ bias), with input [N,4F] or [B,S,4F],
// component weights [F,G] each, and optional bias [4G]. The quaternion
// product is realized as a real matrix product with the block encoding
// of the weights.
func LinearForward(b tensor.Backend, input, rWeight, iWeight, jWeight, kWeight, bias *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := CheckInput(input); err != nil {
		return nil, err
	}

	encoding, err := BuildEncoding(b, rWeight, iWeight, jWeight, kWeight)
	if err != nil {
		return nil, err
	}

	shape := input.Shape()
	last := shape[len(shape)-1]
	if last != encoding.Shape()[0] {
		return nil, fmt.Errorf("input last axis %d does not match 4×%d weight rows", last, rWeight.Shape()[0])
	}
	outWidth := encoding.Shape()[1]
	if bias != nil {
		biasShape := bias.Shape()
		if len(biasShape) != 1 || biasShape[0] != outWidth {
			return nil, fmt.Errorf("bias shape %v does not match output width %d", biasShape, outWidth)
		}
	}

	// Rank-3 inputs are flattened for the matrix product and restored after.
	x := input
	if len(shape) == 3 {
		x = b.Reshape(input, tensor.Shape{shape[0] * shape[1], last})
	}

	out := b.MatMul(x, encoding)
	if bias != nil {
		out = b.Add(out, bias)
	}
	if len(shape) == 3 {
		out = b.Reshape(out, tensor.Shape{shape[0], shape[1], outWidth})
	}
	return out, nil
}
