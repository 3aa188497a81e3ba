package ops

import "github.com/born-ml/ewise/internal/half"

// RoundToHalf returns s with its operand and extra parameters rounded to
// the nearest half-precision value, as half storage would hold them.
func RoundToHalf(s Stage) Stage {
	r := Stage{Op: s.Op, Operand: half.FromFloat64(s.Operand).Float64()}
	if len(s.Extra) > 0 {
		r.Extra = make([]float64, len(s.Extra))
		for i, e := range s.Extra {
			r.Extra[i] = half.FromFloat64(e).Float64()
		}
	}
	return r
}

// BuildHalf builds a kernel over half-precision storage. Each stage computes
// in float32 and rounds its result to half before the next stage reads it,
// so a composed kernel matches running the stages one pass at a time.
func BuildHalf(stages ...Stage) (Kernel[half.Float16], error) {
	if err := CheckStages(stages...); err != nil {
		return nil, err
	}
	var k Kernel[half.Float16]
	for _, s := range stages {
		k32, err := Build[float32](RoundToHalf(s))
		if err != nil {
			return nil, err
		}
		stage := func(x half.Float16) half.Float16 {
			return half.FromFloat32(k32(x.Float32()))
		}
		if k == nil {
			k = stage
			continue
		}
		k = Compose(k, stage)
	}
	if k == nil {
		return func(x half.Float16) half.Float16 { return x }, nil
	}
	return k, nil
}
