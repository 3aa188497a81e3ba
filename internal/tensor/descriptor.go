package tensor

import (
	"fmt"
	"slices"
	"strings"
)

// MaxRank is the highest rank a Descriptor can describe. Per-worker index
// scratch is sized to it, so it never touches the heap.
const MaxRank = 32

// Order is the memory-order tag of a descriptor.
type Order byte

// Memory orders.
const (
	RowMajor    Order = 'c'
	ColumnMajor Order = 'f'
)

// String returns the order tag as "c" or "f".
func (o Order) String() string {
	switch o {
	case RowMajor:
		return "c"
	case ColumnMajor:
		return "f"
	default:
		return "?"
	}
}

// Descriptor describes how the logical elements of an N-d array map onto
// physical element offsets of a buffer. It is immutable once built.
type Descriptor struct {
	shape   Shape
	strides []int
	order   Order
	offset  int
	ews     int // element-wise stride, 0 when none exists
	count   int
}

// NewDescriptor builds a descriptor from extents, signed element strides,
// a memory-order tag and a base offset. An empty shape describes a scalar
// and is stored as rank 1 with extent 1.
func NewDescriptor(shape Shape, strides []int, order Order, offset int) (*Descriptor, error) {
	if len(shape) > MaxRank {
		return nil, fmt.Errorf("%w: rank %d > %d", ErrRankOverflow, len(shape), MaxRank)
	}
	if len(strides) != len(shape) {
		return nil, fmt.Errorf("%w: %d strides for rank %d", ErrInvalidShape, len(strides), len(shape))
	}
	if order != RowMajor && order != ColumnMajor {
		return nil, fmt.Errorf("%w: unknown order %q", ErrInvalidShape, byte(order))
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: negative offset %d", ErrInvalidShape, offset)
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	if len(shape) == 0 {
		shape, strides = Shape{1}, []int{1}
	}

	d := &Descriptor{
		shape:   slices.Clone(shape),
		strides: append([]int(nil), strides...),
		order:   order,
		offset:  offset,
		count:   shape.NumElements(),
	}
	d.ews = elementWiseStride(d.shape, d.strides, d.order)
	return d, nil
}

// ContiguousDescriptor builds a dense descriptor with zero offset in the given order.
func ContiguousDescriptor(shape Shape, order Order) (*Descriptor, error) {
	return NewDescriptor(shape, shape.DenseStrides(order), order, 0)
}

// aliasedDim returns the first dimension whose zero stride maps several
// logical positions to one offset, or -1 when every position is distinct.
func (d *Descriptor) aliasedDim() int {
	for k, st := range d.strides {
		if st == 0 && d.shape[k] > 1 {
			return k
		}
	}
	return -1
}

// elementWiseStride returns the single stride that walks every element in
// the descriptor's own memory order, or 0 when the layout has none.
// Unit extents are skipped since their stride is never applied.
func elementWiseStride(shape Shape, strides []int, order Order) int {
	if shape.NumElements() == 1 {
		return 1
	}

	rank := len(shape)
	ews, expected := 0, 0
	for k := 0; k < rank; k++ {
		d := rank - 1 - k
		if order == ColumnMajor {
			d = k
		}
		if shape[d] == 1 {
			continue
		}
		if ews == 0 {
			ews = strides[d]
			if ews <= 0 {
				return 0
			}
			expected = ews * shape[d]
			continue
		}
		if strides[d] != expected {
			return 0
		}
		expected *= shape[d]
	}
	return ews
}

// Rank returns the number of dimensions.
func (d *Descriptor) Rank() int {
	return len(d.shape)
}

// Shape returns the extents. Callers must not modify the returned slice.
func (d *Descriptor) Shape() Shape {
	return d.shape
}

// Strides returns the element strides. Callers must not modify the returned slice.
func (d *Descriptor) Strides() []int {
	return d.strides
}

// Order returns the memory-order tag.
func (d *Descriptor) Order() Order {
	return d.order
}

// Offset returns the physical offset of logical position 0.
func (d *Descriptor) Offset() int {
	return d.offset
}

// Count returns the number of logical elements.
func (d *Descriptor) Count() int {
	return d.count
}

// ElementWiseStride returns the uniform stride and true, or 0 and false when
// the layout cannot be walked with a single stride.
func (d *Descriptor) ElementWiseStride() (int, bool) {
	return d.ews, d.ews > 0
}

// OffsetOf returns the physical offset of logical position i, where logical
// positions enumerate the extents in row-major order.
func (d *Descriptor) OffsetOf(i int) int {
	off := d.offset
	for k := len(d.shape) - 1; k >= 0; k-- {
		extent := d.shape[k]
		off += (i % extent) * d.strides[k]
		i /= extent
	}
	return off
}

// Span returns the lowest and highest physical offsets any logical position
// can reach.
func (d *Descriptor) Span() (lo, hi int) {
	lo, hi = d.offset, d.offset
	for k, extent := range d.shape {
		reach := (extent - 1) * d.strides[k]
		if reach < 0 {
			lo += reach
		} else {
			hi += reach
		}
	}
	return lo, hi
}

// String renders the descriptor for diagnostics.
func (d *Descriptor) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "shape=%v strides=%v order=%s offset=%d", []int(d.shape), d.strides, d.order, d.offset)
	if ews, ok := d.ElementWiseStride(); ok {
		fmt.Fprintf(&sb, " ews=%d", ews)
	} else {
		sb.WriteString(" ews=none")
	}
	return sb.String()
}
