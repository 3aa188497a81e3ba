// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package half provides the IEEE 754 binary16 type used for half-precision
// buffers.
//
// Values are stored as bit patterns and converted through float32 with
// round-to-nearest-even. Arithmetic promotes to float32, computes and rounds
// back, so overflow saturates to a signed infinity and NaN is preserved.
//
// Example:
//
//	h := half.FromFloat32(1.5)
//	sum := h.Add(half.One) // 2.5
//	f := sum.Float32()
package half

import "github.com/born-ml/ewise/internal/half"

// Float16 is a half-precision value identified only by its bit pattern.
type Float16 = half.Float16

// Frequently used values.
const (
	Zero            Float16 = half.Zero
	One             Float16 = half.One
	MinusOne        Float16 = half.MinusOne
	Inf             Float16 = half.Inf
	NegInf          Float16 = half.NegInf
	NaN             Float16 = half.NaN
	MaxValue        Float16 = half.MaxValue
	SmallestNonzero Float16 = half.SmallestNonzero
)

// FromBits returns the Float16 with the given bit pattern.
func FromBits(b uint16) Float16 {
	return half.FromBits(b)
}

// FromFloat32 rounds f to the nearest Float16, ties to even.
func FromFloat32(f float32) Float16 {
	return half.FromFloat32(f)
}

// FromFloat64 rounds f to the nearest Float16 through float32.
func FromFloat64(f float64) Float16 {
	return half.FromFloat64(f)
}

// FromFloat32s converts src into dst and returns the number of values written.
func FromFloat32s(dst []Float16, src []float32) int {
	return half.FromFloat32s(dst, src)
}

// ToFloat32s widens src into dst and returns the number of values written.
func ToFloat32s(dst []float32, src []Float16) int {
	return half.ToFloat32s(dst, src)
}
