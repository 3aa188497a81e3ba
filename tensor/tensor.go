// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/ewise/internal/tensor"
)

// Type aliases for public API

// Element is the constraint for element types the engine computes on:
// float32, float64 and half.Float16.
type Element = tensor.Element

// DataType represents the runtime element type of a buffer.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Float16 DataType = tensor.Float16
)

// Device represents the compute device a backend runs on.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	WebGPU Device = tensor.WebGPU
)

// Shape represents the extents of an array.
// Example: Shape{2, 3, 4} represents a 3D array with dimensions 2×3×4.
type Shape = tensor.Shape

// Order is the memory order used to derive an element-wise stride.
type Order = tensor.Order

// Memory orders.
const (
	RowMajor    Order = tensor.RowMajor
	ColumnMajor Order = tensor.ColumnMajor
)

// MaxRank is the largest supported number of dimensions.
const MaxRank = tensor.MaxRank

// Descriptor is an immutable description of a strided array: shape,
// strides, memory order and base offset.
type Descriptor = tensor.Descriptor

// Strategy is the iteration scheme a backend picks for a call.
type Strategy = tensor.Strategy

// Iteration strategies.
const (
	Contiguous Strategy = tensor.Contiguous
	Strided    Strategy = tensor.Strided
	General    Strategy = tensor.General
)

// Errors reported by validation. A call that returns one of them has not
// written to its output.
var (
	ErrShapeMismatch     = tensor.ErrShapeMismatch
	ErrRankOverflow      = tensor.ErrRankOverflow
	ErrUnsupportedLayout = tensor.ErrUnsupportedLayout
	ErrTypeMismatch      = tensor.ErrTypeMismatch
	ErrOutOfBounds       = tensor.ErrOutOfBounds
	ErrInvalidShape      = tensor.ErrInvalidShape
)

// NewDescriptor validates and builds a Descriptor. strides holds one signed
// element stride per dimension; use ContiguousDescriptor for dense arrays.
func NewDescriptor(shape Shape, strides []int, order Order, offset int) (*Descriptor, error) {
	return tensor.NewDescriptor(shape, strides, order, offset)
}

// ContiguousDescriptor builds a dense Descriptor for shape in order.
func ContiguousDescriptor(shape Shape, order Order) (*Descriptor, error) {
	return tensor.ContiguousDescriptor(shape, order)
}

// Classify returns the strategy a backend would use for descs.
func Classify(descs ...*Descriptor) Strategy {
	return tensor.Classify(descs...)
}
