package tensor

import (
	"fmt"

	"github.com/born-ml/ewise/internal/half"
	"github.com/born-ml/ewise/internal/ops"
)

// View is a typed window over a caller-owned slice.
type View[T Element] struct {
	data []T
	desc *Descriptor
}

// NewView wraps data with desc. Every physical offset reachable through
// desc must fall inside data.
func NewView[T Element](data []T, desc *Descriptor) (View[T], error) {
	if desc == nil {
		return View[T]{}, fmt.Errorf("%w: nil descriptor", ErrInvalidShape)
	}
	if err := checkSpan(desc, len(data)); err != nil {
		return View[T]{}, err
	}
	return View[T]{data: data, desc: desc}, nil
}

// FromSlice wraps data as a dense array of the given shape and order.
func FromSlice[T Element](data []T, shape Shape, order Order) (View[T], error) {
	desc, err := ContiguousDescriptor(shape, order)
	if err != nil {
		return View[T]{}, err
	}
	return NewView(data, desc)
}

// Data returns the underlying slice.
func (v View[T]) Data() []T {
	return v.data
}

// Desc returns the layout descriptor.
func (v View[T]) Desc() *Descriptor {
	return v.desc
}

// At returns the element at logical position i.
func (v View[T]) At(i int) T {
	return v.data[v.desc.OffsetOf(i)]
}

// Raw returns a RawView sharing the same memory.
func (v View[T]) Raw() *RawView {
	return &RawView{data: bytesOf(v.data), dtype: DataTypeOf[T](), desc: v.desc}
}

// ScalarTransform runs op over in with a typed scalar operand.
func ScalarTransform[T Element](b Backend, op ops.Code, in, out View[T], scalar T, extra ...T) error {
	return b.ScalarTransform(op, in.Raw(), out.Raw(), toFloat64(scalar), toFloat64s(extra))
}

// ParamTransform runs a parameter-array operation over in.
func ParamTransform[T Element](b Backend, op ops.Code, in, out View[T], params ...T) error {
	return b.ParamTransform(op, in.Raw(), out.Raw(), toFloat64s(params))
}

// IndexedTransform runs op between explicit physical positions of in and out.
func IndexedTransform[T Element](b Backend, op ops.Code, in View[T], inIndex []int, scalar T,
	out View[T], outIndex []int, extra ...T,
) error {
	return b.IndexedTransform(op, in.Raw(), inIndex, toFloat64(scalar), toFloat64s(extra), out.Raw(), outIndex)
}

// MetaTransform runs opB(opA(x)) over in in a single pass.
func MetaTransform[T Element](b Backend, opA, opB ops.Code, in, out View[T], paramsA, paramsB []T) error {
	return b.MetaTransform(opA, opB, in.Raw(), out.Raw(), toFloat64s(paramsA), toFloat64s(paramsB))
}

func toFloat64[T Element](v T) float64 {
	switch x := any(v).(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	case half.Float16:
		return x.Float64()
	default:
		panic(fmt.Sprintf("unsupported element type %T", v))
	}
}

func toFloat64s[T Element](vs []T) []float64 {
	if len(vs) == 0 {
		return nil
	}
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = toFloat64(v)
	}
	return out
}
