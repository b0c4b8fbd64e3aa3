package quaternion

import (
	"fmt"

	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// ShapeError reports a tensor that cannot be viewed as a quaternion tensor.
type ShapeError struct {
	Rank    int // Tensor rank (must be 2 or 3)
	LastDim int // Last-axis length (must be divisible by 4)
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Rank != 2 && e.Rank != 3 {
		return fmt.Sprintf("quaternion tensors must have rank 2 or 3, got rank %d", e.Rank)
	}
	return fmt.Sprintf("quaternion tensor last axis must be divisible by 4, got %d", e.LastDim)
}

// SizeMismatchError reports component weight tensors with differing shapes.
type SizeMismatchError struct {
	R tensor.Shape
	I tensor.Shape
	J tensor.Shape
	K tensor.Shape
}

// Error implements the error interface.
func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("the real and imaginary weights must have the same shape, found r:%v i:%v j:%v k:%v",
		e.R, e.I, e.J, e.K)
}

// InvalidCriterionError reports an unrecognized initialization criterion.
type InvalidCriterionError struct {
	Criterion string
}

// Error implements the error interface.
func (e *InvalidCriterionError) Error() string {
	return fmt.Sprintf("invalid criterion %q (want %q or %q)", e.Criterion, Glorot, He)
}

// InvalidOperationError reports an unrecognized mode string passed to an
// operation that accepts an enumerated mode.
type InvalidOperationError struct {
	Operation string
}

// Error implements the error interface.
func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid operation %q", e.Operation)
}
