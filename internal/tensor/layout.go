package tensor

import (
	"fmt"
	"slices"
)

// Strategy is the iteration scheme chosen for a set of cooperating arrays.
type Strategy int

// Iteration strategies, cheapest first.
const (
	// Contiguous walks every array with unit stride.
	Contiguous Strategy = iota
	// Strided walks every array with its own constant element-wise stride.
	Strided
	// General decomposes each logical position into a multi-index and
	// recomposes a physical offset per array.
	General
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case Contiguous:
		return "contiguous"
	case Strided:
		return "strided"
	case General:
		return "general"
	default:
		return "unknown"
	}
}

// Classify picks the cheapest strategy that is correct for all descriptors.
//
// The flat strategies pair positions in memory order, so they require every
// descriptor to have an element-wise stride and share one order. Column-major
// pairing only agrees with the row-major logical order when the extents are
// identical, so column-major sets with differing extents fall back to General.
func Classify(descs ...*Descriptor) Strategy {
	if len(descs) == 0 {
		return Contiguous
	}

	single := true
	for _, d := range descs {
		if d.count != 1 {
			single = false
			break
		}
	}
	if single {
		return Contiguous
	}

	first := descs[0]
	unit := true
	for _, d := range descs {
		ews, ok := d.ElementWiseStride()
		if !ok || d.order != first.order {
			return General
		}
		if d.order == ColumnMajor && !slices.Equal(d.shape, first.shape) {
			return General
		}
		if ews != 1 {
			unit = false
		}
	}
	if unit {
		return Contiguous
	}
	return Strided
}

// Plan validates an input/output pair for one transform call and returns the
// strategy the engine should run.
func Plan(in, out *RawView) (Strategy, error) {
	if err := checkViews(in, out); err != nil {
		return 0, err
	}
	if in.desc.count != out.desc.count {
		return 0, fmt.Errorf("%w: input has %d elements, output has %d", ErrShapeMismatch, in.desc.count, out.desc.count)
	}
	if k := out.desc.aliasedDim(); k >= 0 {
		return 0, fmt.Errorf("%w: output dimension %d has stride 0 over extent %d",
			ErrUnsupportedLayout, k, out.desc.shape[k])
	}

	s := Classify(in.desc, out.desc)
	if s == General && in.desc.Rank() != out.desc.Rank() {
		return 0, fmt.Errorf("%w: general iteration needs equal ranks, got %d and %d",
			ErrUnsupportedLayout, in.desc.Rank(), out.desc.Rank())
	}
	return s, nil
}

// PlanIndexed validates the index maps of an indexed transform. Both maps
// must hold one physical position per input element, inside their buffers.
func PlanIndexed(in *RawView, inIndex []int, out *RawView, outIndex []int) error {
	if err := checkViews(in, out); err != nil {
		return err
	}
	if len(inIndex) != in.desc.count {
		return fmt.Errorf("%w: input index map has %d entries for %d elements",
			ErrShapeMismatch, len(inIndex), in.desc.count)
	}
	if len(outIndex) != len(inIndex) {
		return fmt.Errorf("%w: index maps have %d and %d entries", ErrShapeMismatch, len(inIndex), len(outIndex))
	}
	if err := checkIndexMap(inIndex, in.Len()); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if err := checkIndexMap(outIndex, out.Len()); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

// checkViews rejects nil views, views without a descriptor (the zero View)
// and element types that disagree.
func checkViews(in, out *RawView) error {
	if in == nil || out == nil {
		return fmt.Errorf("%w: nil view", ErrInvalidShape)
	}
	if in.desc == nil || out.desc == nil {
		return fmt.Errorf("%w: view has no descriptor", ErrInvalidShape)
	}
	if in.dtype != out.dtype {
		return fmt.Errorf("%w: input %s, output %s", ErrTypeMismatch, in.dtype, out.dtype)
	}
	return nil
}

func checkIndexMap(index []int, limit int) error {
	for i, p := range index {
		if p < 0 || p >= limit {
			return fmt.Errorf("%w: index map entry %d is %d, buffer holds %d elements", ErrOutOfBounds, i, p, limit)
		}
	}
	return nil
}

// Cursor walks the physical offsets of consecutive logical positions of one
// descriptor. The multi-index lives inline, so a Cursor on a worker's stack
// costs no allocation.
type Cursor struct {
	desc   *Descriptor
	index  [MaxRank]int
	offset int
}

// Seek positions the cursor at logical position i of d.
func (c *Cursor) Seek(d *Descriptor, i int) {
	c.desc = d
	c.offset = d.offset
	for k := len(d.shape) - 1; k >= 0; k-- {
		extent := d.shape[k]
		c.index[k] = i % extent
		c.offset += c.index[k] * d.strides[k]
		i /= extent
	}
}

// Offset returns the physical offset of the current position.
func (c *Cursor) Offset() int {
	return c.offset
}

// Next advances to the following logical position without any division.
func (c *Cursor) Next() {
	d := c.desc
	for k := len(d.shape) - 1; k >= 0; k-- {
		c.index[k]++
		c.offset += d.strides[k]
		if c.index[k] < d.shape[k] {
			return
		}
		c.offset -= d.shape[k] * d.strides[k]
		c.index[k] = 0
	}
}
