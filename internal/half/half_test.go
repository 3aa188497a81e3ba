package half

import (
	"math"
	"testing"

	x448 "github.com/x448/float16"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripAllBitPatterns(t *testing.T) {
	for b := 0; b <= 0xffff; b++ {
		h := FromBits(uint16(b))
		back := FromFloat32(h.Float32())
		if h.IsNaN() {
			if !back.IsNaN() {
				t.Fatalf("0x%04x: NaN did not survive the round trip, got 0x%04x", b, back.Bits())
			}
			continue
		}
		if back.Bits() != uint16(b) {
			t.Fatalf("0x%04x: round trip produced 0x%04x", b, back.Bits())
		}
	}
}

func TestFloat32MatchesReference(t *testing.T) {
	for b := 0; b <= 0xffff; b++ {
		got := FromBits(uint16(b)).Float32()
		want := x448.Frombits(uint16(b)).Float32()
		if math.IsNaN(float64(want)) {
			require.True(t, math.IsNaN(float64(got)), "0x%04x", b)
			continue
		}
		require.Equal(t, math.Float32bits(want), math.Float32bits(got), "0x%04x", b)
	}
}

func TestFromFloat32MatchesReference(t *testing.T) {
	// Walk the float32 bit space with a stride coprime to the mantissa width so
	// that rounding boundaries in every binade get exercised.
	const step = 4099
	for bits := uint64(0); bits <= math.MaxUint32; bits += step {
		f := math.Float32frombits(uint32(bits))
		if math.IsNaN(float64(f)) {
			continue
		}
		got := FromFloat32(f).Bits()
		want := x448.Fromfloat32(f).Bits()
		if got != want {
			t.Fatalf("FromFloat32(%g [0x%08x]) = 0x%04x, want 0x%04x", f, uint32(bits), got, want)
		}
	}
}

func TestFromFloat32Rounding(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want uint16
	}{
		{"zero", 0, 0x0000},
		{"negative zero", float32(math.Copysign(0, -1)), 0x8000},
		{"one", 1, 0x3c00},
		{"minus two", -2, 0xc000},
		{"max value", 65504, 0x7bff},
		{"below overflow midpoint", 65519, 0x7bff},
		{"overflow midpoint", 65520, 0x7c00},
		{"large", 70000, 0x7c00},
		{"large negative", -1e6, 0xfc00},
		{"smallest normal", float32(math.Ldexp(1, -14)), 0x0400},
		{"smallest denormal", float32(math.Ldexp(1, -24)), 0x0001},
		{"half of smallest denormal ties to zero", float32(math.Ldexp(1, -25)), 0x0000},
		{"just above half of smallest denormal", math.Float32frombits(0x33000001), 0x0001},
		{"negative tiny", -float32(math.Ldexp(1, -26)), 0x8000},
		{"tie rounds to even (down)", 1 + float32(math.Ldexp(1, -11)), 0x3c00},
		{"tie rounds to even (up)", 1 + 3*float32(math.Ldexp(1, -11)), 0x3c02},
		{"denormal carries into normal", float32(math.Ldexp(1023.5, -24)), 0x0400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromFloat32(tt.in).Bits())
		})
	}
}

func TestOverflowSaturatesToSignedInfinity(t *testing.T) {
	for _, f := range []float32{65536, 1e5, 3.4e38, float32(math.Inf(1))} {
		pos := FromFloat32(f)
		neg := FromFloat32(-f)
		assert.True(t, pos.IsInf(1), "%g", f)
		assert.True(t, neg.IsInf(-1), "%g", -f)
		assert.True(t, math.IsInf(float64(pos.Float32()), 1))
		assert.True(t, math.IsInf(float64(neg.Float32()), -1))
	}
}

func TestNaN(t *testing.T) {
	positive := math.Float32frombits(0x7fc00001)
	negative := math.Float32frombits(0xff800123)

	h := FromFloat32(positive)
	assert.True(t, h.IsNaN())
	assert.False(t, h.Signbit())
	assert.Equal(t, NaN, h)
	assert.True(t, math.IsNaN(float64(h.Float32())))

	h = FromFloat32(negative)
	assert.True(t, h.IsNaN())
	assert.True(t, h.Signbit())
	back := h.Float32()
	assert.True(t, math.IsNaN(float64(back)))
	assert.True(t, math.Signbit(float64(back)))
}

func TestDenormalToFloat32(t *testing.T) {
	assert.Equal(t, float32(math.Ldexp(1, -24)), SmallestNonzero.Float32())
	assert.Equal(t, float32(math.Ldexp(1023, -24)), FromBits(0x03ff).Float32())
	assert.Equal(t, -float32(math.Ldexp(3, -24)), FromBits(0x8003).Float32())
}

func TestNegAndAbs(t *testing.T) {
	assert.Equal(t, uint16(0x8000), Zero.Neg().Bits())
	assert.Equal(t, MinusOne, One.Neg())
	assert.Equal(t, One, MinusOne.Abs())
	assert.Equal(t, NegInf, Inf.Neg())

	n := NaN.Neg()
	assert.True(t, n.IsNaN())
	assert.True(t, n.Signbit())
}

func TestArithmeticPromotes(t *testing.T) {
	two := FromFloat32(2)
	three := FromFloat32(3)

	assert.Equal(t, FromFloat32(5), two.Add(three))
	assert.Equal(t, MinusOne, two.Sub(three))
	assert.Equal(t, FromFloat32(6), two.Mul(three))
	assert.Equal(t, FromFloat32(2.0/3.0), two.Div(three))
	assert.True(t, MaxValue.Add(MaxValue).IsInf(1))
	assert.True(t, One.Div(Zero).IsInf(1))
	assert.True(t, Zero.Div(Zero).IsNaN())
}

func TestComparisons(t *testing.T) {
	two := FromFloat32(2)

	assert.True(t, One.Less(two))
	assert.True(t, One.LessEqual(One))
	assert.True(t, two.Greater(One))
	assert.True(t, two.GreaterEqual(two))
	assert.True(t, Zero.Equal(Zero.Neg()))
	assert.False(t, NaN.Equal(NaN))
	assert.False(t, NaN.Less(One))
	assert.False(t, NaN.Greater(One))
}

func TestFromFloat64(t *testing.T) {
	assert.Equal(t, One, FromFloat64(1))
	assert.Equal(t, Inf, FromFloat64(1e300))
	assert.True(t, FromFloat64(math.NaN()).IsNaN())
}

func TestString(t *testing.T) {
	assert.Equal(t, "1", One.String())
	assert.Equal(t, "-2", FromFloat32(-2).String())
	assert.Equal(t, "65504", MaxValue.String())
	assert.Equal(t, "+Inf", Inf.String())
}

func TestSliceHelpers(t *testing.T) {
	src := []float32{0.5, -1, 65504, 1e9}
	dst := make([]Float16, 3)

	n := FromFloat32s(dst, src)
	require.Equal(t, 3, n)
	assert.Equal(t, []Float16{FromFloat32(0.5), MinusOne, MaxValue}, dst)

	back := make([]float32, 5)
	n = ToFloat32s(back, dst)
	require.Equal(t, 3, n)
	assert.Equal(t, []float32{0.5, -1, 65504, 0, 0}, back)
}
