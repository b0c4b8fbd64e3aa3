package quaternion

import (
	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// Hamilton applies the quaternion product q0 ⊗ q1 elementwise over two
// quaternion tensors of identical shape:
//
//	(rr' - xx' - yy' - zz')  +
//	(rx' + xr' + yz' - zy')i +
//	(ry' - xz' + yr' + zx')j +
//	(rz' + xy' - yx' + zr')k
//
// Each output component is produced by permuting q1's channels, multiplying
// elementwise by q0, and combining the four channels of the result with the
// sign pattern of the product table. The product is non-commutative, so
// argument order matters.
//
// This is an unchecked fast path: the caller is responsible for passing
// same-shaped tensors with a last axis divisible by 4.
func Hamilton(b tensor.Backend, q0, q1 *tensor.RawTensor) *tensor.RawTensor {
	dim := len(q0.Shape()) - 1
	h := q0.Shape()[dim] / 4
	chunk := func(t *tensor.RawTensor, c Component) *tensor.RawTensor {
		return b.Narrow(t, dim, int(c)*h, h)
	}

	q1r := chunk(q1, R)
	q1i := chunk(q1, I)
	q1j := chunk(q1, J)
	q1k := chunk(q1, K)

	// rr', xx', yy', zz'
	rBase := b.Mul(q0, q1)
	r := b.Sub(b.Sub(b.Sub(chunk(rBase, R), chunk(rBase, I)), chunk(rBase, J)), chunk(rBase, K))

	// rx', xr', yz', zy'
	iBase := b.Mul(q0, b.Cat([]*tensor.RawTensor{q1i, q1r, q1k, q1j}, dim))
	i := b.Sub(b.Add(b.Add(chunk(iBase, R), chunk(iBase, I)), chunk(iBase, J)), chunk(iBase, K))

	// ry', xz', yr', zx'
	jBase := b.Mul(q0, b.Cat([]*tensor.RawTensor{q1j, q1k, q1r, q1i}, dim))
	j := b.Add(b.Add(b.Sub(chunk(jBase, R), chunk(jBase, I)), chunk(jBase, J)), chunk(jBase, K))

	// rz', xy', yx', zr'
	kBase := b.Mul(q0, b.Cat([]*tensor.RawTensor{q1k, q1j, q1i, q1r}, dim))
	k := b.Add(b.Sub(b.Add(chunk(kBase, R), chunk(kBase, I)), chunk(kBase, J)), chunk(kBase, K))

	return b.Cat([]*tensor.RawTensor{r, i, j, k}, dim)
}
