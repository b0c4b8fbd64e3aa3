package quaternion

import (
	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// Component selects one of the four quaternion channels along the last axis.
type Component int

// Quaternion components in storage order.
const (
	R Component = iota
	I
	J
	K
)

// String returns the conventional single-letter component name.
func (c Component) String() string {
	switch c {
	case R:
		return "r"
	case I:
		return "i"
	case J:
		return "j"
	case K:
		return "k"
	default:
		return "?"
	}
}

// CheckInput validates that t can be viewed as a quaternion tensor:
// rank 2 or 3 with a last-axis length divisible by 4.
func CheckInput(t *tensor.RawTensor) error {
	shape := t.Shape()
	rank := len(shape)
	if rank != 2 && rank != 3 {
		return &ShapeError{Rank: rank}
	}
	last := shape[rank-1]
	if last%4 != 0 {
		return &ShapeError{Rank: rank, LastDim: last}
	}
	return nil
}

// GetComponent extracts one component channel of width last/4. The offset
// is c*(last/4) along the last axis.
func GetComponent(b tensor.Backend, t *tensor.RawTensor, c Component) (*tensor.RawTensor, error) {
	if err := CheckInput(t); err != nil {
		return nil, err
	}
	return component(b, t, c), nil
}

// component is the unchecked channel slice used internally after CheckInput.
func component(b tensor.Backend, t *tensor.RawTensor, c Component) *tensor.RawTensor {
	dim := len(t.Shape()) - 1
	h := t.Shape()[dim] / 4
	return b.Narrow(t, dim, int(c)*h, h)
}

// Modulus computes sqrt(r*r + i*i + j*j + k*k) over the component view.
// In vector form the result keeps the full component width (one modulus
// per quaternion element); otherwise the squared sum is reduced along
// axis 0 before the square root.
func Modulus(b tensor.Backend, t *tensor.RawTensor, vectorForm bool) (*tensor.RawTensor, error) {
	if err := CheckInput(t); err != nil {
		return nil, err
	}
	r := component(b, t, R)
	i := component(b, t, I)
	j := component(b, t, J)
	k := component(b, t, K)

	sq := b.Add(
		b.Add(b.Mul(r, r), b.Mul(i, i)),
		b.Add(b.Mul(j, j), b.Mul(k, k)),
	)
	if vectorForm {
		return b.Sqrt(sq), nil
	}
	return b.Sqrt(b.SumDim(sq, 0, false)), nil
}

// Normalize divides t by its axis-0-reduced modulus repeated across the
// four component slots, plus eps to guard against zero quaternions.
func Normalize(b tensor.Backend, t *tensor.RawTensor, eps float64) (*tensor.RawTensor, error) {
	mod, err := Modulus(b, t, false)
	if err != nil {
		return nil, err
	}
	// mod has the batch axis reduced away; repeating it four times along
	// its last axis matches the input width, and broadcasting restores
	// the batch axis in the division.
	repeated := b.Cat([]*tensor.RawTensor{mod, mod, mod, mod}, len(mod.Shape())-1)
	return b.Div(t, b.AddScalar(repeated, scalarFor(t.DType(), eps))), nil
}

// scalarFor converts a float64 constant to the scalar type matching dtype.
func scalarFor(dtype tensor.DataType, v float64) any {
	if dtype == tensor.Float32 {
		return float32(v)
	}
	return v
}
