// Package half implements the IEEE 754 binary16 storage type used by the
// elementwise engine.
//
// Float16 is a storage-precision type: arithmetic promotes both operands to
// float32, computes there, and rounds the result back to 16 bits. The only
// operations that never leave the 16-bit domain are Neg and Abs, which touch
// the sign bit directly.
package half

import (
	"math"
	"strconv"
)

// Float16 is a half-precision value identified only by its bit pattern:
// 1 sign bit, 5 exponent bits, 10 mantissa bits.
type Float16 uint16

// Bit layout.
const (
	signMask     = 0x8000
	exponentMask = 0x7c00
	mantissaMask = 0x03ff
)

// Frequently used values.
const (
	Zero            Float16 = 0x0000
	One             Float16 = 0x3c00
	MinusOne        Float16 = 0xbc00
	Inf             Float16 = 0x7c00
	NegInf          Float16 = 0xfc00
	NaN             Float16 = 0x7fff // canonical quiet NaN
	MaxValue        Float16 = 0x7bff // 65504
	SmallestNonzero Float16 = 0x0001 // 2^-24
)

// float32 bit thresholds.
const (
	f32NaNFloor      = 0x7f800000 // anything above is NaN
	f32OverflowFloor = 0x477fefff // above rounds to infinity (65520 and up)
	f32UnderflowCeil = 0x33000001 // below rounds to zero (2^-25 and down)
	f32BiasDelta     = 0x70       // 127 - 15
)

// FromBits returns the Float16 with the given bit pattern.
func FromBits(b uint16) Float16 {
	return Float16(b)
}

// Bits returns the raw bit pattern.
func (h Float16) Bits() uint16 {
	return uint16(h)
}

// FromFloat32 rounds f to the nearest half-precision value, ties to even.
//
// NaN maps to the canonical quiet NaN carrying f's sign. Magnitudes that round
// past 65504 saturate to a signed infinity and magnitudes at or below 2^-25
// flush to a signed zero. Values between those limits that fall under the
// minimum normal are produced as denormals.
func FromFloat32(f float32) Float16 {
	x := math.Float32bits(f)
	u := x & 0x7fffffff
	sign := (x >> 16) & signMask

	if u > f32NaNFloor {
		return Float16(sign | 0x7fff)
	}
	if u > f32OverflowFloor {
		return Float16(sign | exponentMask)
	}
	if u < f32UnderflowCeil {
		return Float16(sign)
	}

	exponent := u >> 23
	mantissa := u & 0x7fffff

	var shift uint32
	if exponent > f32BiasDelta {
		shift = 13
		exponent -= f32BiasDelta
	} else {
		// Denormal result: make the implicit bit explicit and shift it down.
		shift = 0x7e - exponent
		exponent = 0
		mantissa |= 0x800000
	}

	lsb := uint32(1) << shift
	halfway := lsb >> 1
	remainder := mantissa & (lsb - 1)
	mantissa >>= shift
	if remainder > halfway || (remainder == halfway && mantissa&1 != 0) {
		mantissa++
		if mantissa&mantissaMask == 0 {
			exponent++
			mantissa = 0
		}
	}

	return Float16(sign | exponent<<10 | mantissa)
}

// FromFloat64 converts through float32, matching the engine's compute type.
func FromFloat64(f float64) Float16 {
	return FromFloat32(float32(f))
}

// Float32 widens h to float32. The conversion is exact for every non-NaN value.
func (h Float16) Float32() float32 {
	sign := uint32(h&signMask) << 16
	exponent := uint32(h&exponentMask) >> 10
	mantissa := uint32(h&mantissaMask) << 13

	switch exponent {
	case 0x1f:
		if mantissa == 0 {
			return math.Float32frombits(sign | 0x7f800000)
		}
		return math.Float32frombits(sign | 0x7fc00000 | mantissa)
	case 0:
		if mantissa == 0 {
			return math.Float32frombits(sign)
		}
		// Denormal: renormalize into the float32 range.
		exponent = f32BiasDelta + 1
		for {
			msb := mantissa & 0x400000
			mantissa <<= 1
			exponent--
			if msb != 0 {
				break
			}
		}
		mantissa &= 0x7fffff
	default:
		exponent += f32BiasDelta
	}

	return math.Float32frombits(sign | exponent<<23 | mantissa)
}

// Float64 widens h to float64.
func (h Float16) Float64() float64 {
	return float64(h.Float32())
}

// IsNaN reports whether h is a NaN.
func (h Float16) IsNaN() bool {
	return h&exponentMask == exponentMask && h&mantissaMask != 0
}

// IsInf reports whether h is an infinity according to sign:
// sign > 0 checks +Inf, sign < 0 checks -Inf, sign == 0 checks either.
func (h Float16) IsInf(sign int) bool {
	switch {
	case sign > 0:
		return h == Inf
	case sign < 0:
		return h == NegInf
	default:
		return h&^signMask == Inf
	}
}

// Signbit reports whether the sign bit is set.
func (h Float16) Signbit() bool {
	return h&signMask != 0
}

// Neg flips the sign bit. NaN and zero are negated like any other value.
func (h Float16) Neg() Float16 {
	return h ^ signMask
}

// Abs clears the sign bit.
func (h Float16) Abs() Float16 {
	return h &^ signMask
}

// Add returns h + o rounded to half precision.
func (h Float16) Add(o Float16) Float16 {
	return FromFloat32(h.Float32() + o.Float32())
}

// Sub returns h - o rounded to half precision.
func (h Float16) Sub(o Float16) Float16 {
	return FromFloat32(h.Float32() - o.Float32())
}

// Mul returns h * o rounded to half precision.
func (h Float16) Mul(o Float16) Float16 {
	return FromFloat32(h.Float32() * o.Float32())
}

// Div returns h / o rounded to half precision.
func (h Float16) Div(o Float16) Float16 {
	return FromFloat32(h.Float32() / o.Float32())
}

// Equal compares numerically: NaN is unequal to everything and +0 == -0.
func (h Float16) Equal(o Float16) bool {
	return h.Float32() == o.Float32()
}

// Less reports h < o.
func (h Float16) Less(o Float16) bool {
	return h.Float32() < o.Float32()
}

// LessEqual reports h <= o.
func (h Float16) LessEqual(o Float16) bool {
	return h.Float32() <= o.Float32()
}

// Greater reports h > o.
func (h Float16) Greater(o Float16) bool {
	return h.Float32() > o.Float32()
}

// GreaterEqual reports h >= o.
func (h Float16) GreaterEqual(o Float16) bool {
	return h.Float32() >= o.Float32()
}

// String formats the value with the shortest float32 representation.
func (h Float16) String() string {
	return strconv.FormatFloat(float64(h.Float32()), 'g', -1, 32)
}
