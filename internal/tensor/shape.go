package tensor

import "fmt"

// Shape lists the extents of an array, outermost dimension first. An empty
// Shape is a scalar.
type Shape []int

// NumElements returns the product of the extents, 1 for a scalar.
func (s Shape) NumElements() int {
	n := 1
	for _, extent := range s {
		n *= extent
	}
	return n
}

// Validate rejects non-positive extents.
func (s Shape) Validate() error {
	for i, extent := range s {
		if extent <= 0 {
			return fmt.Errorf("%w: dimension %d is %d (must be > 0)", ErrInvalidShape, i, extent)
		}
	}
	return nil
}

// DenseStrides returns the element strides of a dense array of this shape
// in the given order. Row-major strides shrink towards the last dimension,
// column-major strides grow from the first.
func (s Shape) DenseStrides(order Order) []int {
	strides := make([]int, len(s))
	step := 1
	for i := range s {
		k := len(s) - 1 - i
		if order == ColumnMajor {
			k = i
		}
		strides[k] = step
		step *= s[k]
	}
	return strides
}
