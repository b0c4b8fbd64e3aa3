package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - CPU: Pure Go with BLAS-backed matrix multiplication
//   - Autodiff: Decorator that wraps any Backend and records operations
//
// Element-wise and shape primitives panic on contract misuse (mismatched
// shapes, unsupported dtypes); the fused layer operations return errors
// so callers can recover from malformed inputs.
type Backend interface {
	// Element-wise binary operations (NumPy-style broadcasting)
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Matrix operations
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Manipulation operations
	Cat(tensors []*RawTensor, dim int) *RawTensor           // concatenate along dimension
	Narrow(t *RawTensor, dim, start, length int) *RawTensor // slice along dimension by offset+length

	// Scalar operations (element-wise with scalar)
	MulScalar(x *RawTensor, scalar any) *RawTensor
	AddScalar(x *RawTensor, scalar any) *RawTensor
	SubScalar(x *RawTensor, scalar any) *RawTensor
	DivScalar(x *RawTensor, scalar any) *RawTensor

	// Math operations (element-wise)
	Sqrt(x *RawTensor) *RawTensor

	// Reduction operations
	Sum(x *RawTensor) *RawTensor                           // total sum (scalar result)
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor // sum along dimension

	// Fused layer operations. Each is differentiated as a single unit by
	// the autodiff backend; needs flags gate which gradient slots are
	// produced (a false flag yields a nil gradient, not zeros).
	//
	// QuaternionLinear: input [N,4F] or [B,S,4F], weight blocks [F,G],
	// optional bias [4G]. Slots: input, r, i, j, k, bias.
	QuaternionLinear(input, rWeight, iWeight, jWeight, kWeight, bias *RawTensor, needs [6]bool) (*RawTensor, error)
	// Linear: y = x·Wᵀ + b for input [N,in] or [B,S,in], weight [out,in],
	// optional bias [out]. Slots: input, weight, bias.
	Linear(input, weight, bias *RawTensor, needs [3]bool) (*RawTensor, error)

	// Metadata
	Name() string
	Device() Device
}
