package tensor

import (
	"fmt"
	"unsafe"

	"github.com/born-ml/ewise/internal/half"
)

// Device represents the compute device a backend runs on.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// RawView bundles a caller-owned byte buffer with its element type and the
// descriptor that addresses it, so a buffer can never travel with the wrong
// layout. The engine reads input views and writes output views; it never
// allocates or retains them.
type RawView struct {
	data  []byte
	dtype DataType
	desc  *Descriptor
}

// NewRawView wraps data. Every physical offset reachable through desc must
// fall inside the buffer.
func NewRawView(data []byte, dtype DataType, desc *Descriptor) (*RawView, error) {
	if !dtype.Valid() {
		return nil, fmt.Errorf("%w: unsupported data type %d", ErrTypeMismatch, int(dtype))
	}
	if desc == nil {
		return nil, fmt.Errorf("%w: nil descriptor", ErrInvalidShape)
	}
	if len(data) > 0 && uintptr(unsafe.Pointer(unsafe.SliceData(data)))%uintptr(dtype.Size()) != 0 {
		return nil, fmt.Errorf("%w: buffer is not aligned to %s", ErrInvalidShape, dtype)
	}
	if err := checkSpan(desc, len(data)/dtype.Size()); err != nil {
		return nil, err
	}
	return &RawView{data: data, dtype: dtype, desc: desc}, nil
}

func checkSpan(desc *Descriptor, elements int) error {
	lo, hi := desc.Span()
	if lo < 0 || hi >= elements {
		return fmt.Errorf("%w: layout reaches [%d, %d], buffer holds %d elements", ErrOutOfBounds, lo, hi, elements)
	}
	return nil
}

// Data returns the underlying bytes.
func (r *RawView) Data() []byte {
	return r.data
}

// DType returns the element type.
func (r *RawView) DType() DataType {
	return r.dtype
}

// Desc returns the layout descriptor.
func (r *RawView) Desc() *Descriptor {
	return r.desc
}

// Len returns the number of whole elements the buffer can hold.
func (r *RawView) Len() int {
	return len(r.data) / r.dtype.Size()
}

// AsFloat32 reinterprets the buffer as []float32 without copying.
func (r *RawView) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("view dtype is %s, not float32", r.dtype))
	}
	return reinterpret[float32](r.data)
}

// AsFloat64 reinterprets the buffer as []float64 without copying.
func (r *RawView) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("view dtype is %s, not float64", r.dtype))
	}
	return reinterpret[float64](r.data)
}

// AsFloat16 reinterprets the buffer as []half.Float16 without copying.
func (r *RawView) AsFloat16() []half.Float16 {
	if r.dtype != Float16 {
		panic(fmt.Sprintf("view dtype is %s, not float16", r.dtype))
	}
	return reinterpret[half.Float16](r.data)
}

func reinterpret[T Element](data []byte) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if len(data) < size {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy conversion from []byte
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(data))), len(data)/size)
}

func bytesOf[T Element](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	//nolint:gosec // unsafe.Slice for zero-copy conversion to []byte
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(data))), len(data)*int(unsafe.Sizeof(zero)))
}
