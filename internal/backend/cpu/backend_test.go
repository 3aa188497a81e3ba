package cpu

import (
	"math"
	"strings"
	"testing"

	"github.com/born-ml/ewise/internal/half"
	"github.com/born-ml/ewise/internal/ops"
	"github.com/born-ml/ewise/internal/parallel"
	"github.com/born-ml/ewise/internal/tensor"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// Helper to create a backend that splits even tiny inputs across workers.
func newTestBackend(workers int) *CPUBackend {
	return NewWithConfig(parallel.Config{Enabled: workers > 1, NumWorkers: workers, MinChunkSize: 1})
}

func newView[T tensor.Element](t *testing.T, data []T, shape tensor.Shape, strides []int, order tensor.Order, offset int) *tensor.RawView {
	t.Helper()
	desc, err := tensor.NewDescriptor(shape, strides, order, offset)
	require.NoError(t, err)
	v, err := tensor.NewView(data, desc)
	require.NoError(t, err)
	return v.Raw()
}

func dense[T tensor.Element](t *testing.T, data []T, shape ...int) *tensor.RawView {
	t.Helper()
	s := tensor.Shape(shape)
	return newView(t, data, s, s.DenseStrides(tensor.RowMajor), tensor.RowMajor, 0)
}

func ramp(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i%97) - 48.5
	}
	return out
}

func fill[T any](n int, v T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestCPUBackend_New(t *testing.T) {
	backend := New()
	require.NotNil(t, backend)
	assert.Equal(t, tensor.CPU, backend.Device())
	assert.True(t, strings.HasPrefix(backend.Name(), "CPU ("), backend.Name())
	assert.Equal(t, parallel.DefaultConfig().NumWorkers, backend.Config().NumWorkers)

	// A non-positive worker count still runs.
	b := NewWithConfig(parallel.Config{Enabled: true, NumWorkers: 0})
	assert.Equal(t, 1, b.Config().NumWorkers)
	assert.NotEmpty(t, Features())
}

func TestScalarTransform_Basic(t *testing.T) {
	backend := newTestBackend(2)

	t.Run("Add", func(t *testing.T) {
		out := make([]float32, 4)
		err := backend.ScalarTransform(ops.Add, dense(t, []float32{1, 2, 3, 4}, 4), dense(t, out, 4), 5, nil)
		require.NoError(t, err)
		assert.Equal(t, []float32{6, 7, 8, 9}, out)
	})

	t.Run("GreaterThan", func(t *testing.T) {
		out := make([]float32, 4)
		err := backend.ScalarTransform(ops.GreaterThan, dense(t, []float32{1, 2, 3, 4}, 4), dense(t, out, 4), 2.5, nil)
		require.NoError(t, err)
		assert.Equal(t, []float32{0, 0, 1, 1}, out)
	})

	t.Run("Clip", func(t *testing.T) {
		out := make([]float64, 5)
		err := backend.ScalarTransform(ops.Clip, dense(t, []float64{-3, -1, 0, 1, 3}, 5), dense(t, out, 5), 0, []float64{-2, 2})
		require.NoError(t, err)
		assert.Equal(t, []float64{-2, -1, 0, 1, 2}, out)
	})
}

func TestScalarTransform_RowMajorIntoTransposed(t *testing.T) {
	backend := newTestBackend(3)
	in := dense(t, []float32{1, 2, 3, 4, 5, 6}, 2, 3)
	out := make([]float32, 6)
	outView := newView(t, out, tensor.Shape{2, 3}, []int{1, 2}, tensor.ColumnMajor, 0)

	require.NoError(t, backend.ScalarTransform(ops.Add, in, outView, 0, nil))
	// Logical (r, c) lands at r + 2c.
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, out)
}

func TestScalarTransform_Strided(t *testing.T) {
	backend := newTestBackend(2)
	src := []float32{1, -1, 2, -1, 3, -1, 4, -1}
	in := newView(t, src, tensor.Shape{4}, []int{2}, tensor.RowMajor, 0)
	out := fill[float32](9, -7)
	outView := newView(t, out, tensor.Shape{4}, []int{2}, tensor.RowMajor, 1)

	require.NoError(t, backend.ScalarTransform(ops.Multiply, in, outView, 10, nil))
	assert.Equal(t, []float32{-7, 10, -7, 20, -7, 30, -7, 40, -7}, out)
}

func TestScalarTransform_NegativeStride(t *testing.T) {
	backend := newTestBackend(2)
	in := newView(t, []float32{1, 2, 3, 4}, tensor.Shape{4}, []int{-1}, tensor.RowMajor, 3)
	out := make([]float32, 4)

	require.NoError(t, backend.ScalarTransform(ops.Subtract, in, dense(t, out, 4), 1, nil))
	assert.Equal(t, []float32{3, 2, 1, 0}, out)
}

func TestScalarTransform_WorkerCountIndependence(t *testing.T) {
	const n = 10007
	src := ramp(n)

	// Each layout views a buffer of n elements; "general" pairs a row-major
	// input with a column-major output of the same 1 x n extents.
	layouts := map[string]struct {
		in, out func(t *testing.T, data []float32) *tensor.RawView
	}{
		"contiguous": {
			in:  func(t *testing.T, data []float32) *tensor.RawView { return dense(t, data, n) },
			out: func(t *testing.T, data []float32) *tensor.RawView { return dense(t, data, n) },
		},
		"general": {
			in: func(t *testing.T, data []float32) *tensor.RawView { return dense(t, data, 1, n) },
			out: func(t *testing.T, data []float32) *tensor.RawView {
				return newView(t, data, tensor.Shape{1, n}, []int{n, 1}, tensor.ColumnMajor, 0)
			},
		},
	}

	for name, layout := range layouts {
		t.Run(name, func(t *testing.T) {
			want := make([]float32, n)
			require.NoError(t, NewWithConfig(parallel.Sequential()).
				ScalarTransform(ops.Pow, layout.in(t, src), layout.out(t, want), 2, nil))

			for _, workers := range []int{2, 3, 8, 64} {
				got := make([]float32, n)
				require.NoError(t, newTestBackend(workers).
					ScalarTransform(ops.Pow, layout.in(t, src), layout.out(t, got), 2, nil))
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("workers=%d mismatch (-want +got):\n%s", workers, diff)
				}
			}
		})
	}
}

func TestScalarTransform_ContiguousMatchesGeneral(t *testing.T) {
	backend := newTestBackend(4)
	shape := tensor.Shape{3, 4, 5}
	n := shape.NumElements()
	logical := ramp(n)

	// Same logical values stored column-major but tagged row-major, so the
	// layout has no element-wise stride.
	scattered := make([]float32, n)
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 5; k++ {
				scattered[i+3*j+12*k] = logical[i*20+j*5+k]
			}
		}
	}
	general := newView(t, scattered, shape, []int{1, 3, 12}, tensor.RowMajor, 0)
	strategy, err := tensor.Plan(general, dense(t, make([]float32, n), 3, 4, 5))
	require.NoError(t, err)
	require.Equal(t, tensor.General, strategy)

	want := make([]float32, n)
	got := make([]float32, n)
	require.NoError(t, backend.ScalarTransform(ops.Sigmoid, dense(t, logical, 3, 4, 5), dense(t, want, 3, 4, 5), 0, nil))
	require.NoError(t, backend.ScalarTransform(ops.Sigmoid, general, dense(t, got, 3, 4, 5), 0, nil))
	assert.Empty(t, cmp.Diff(want, got))
}

func TestMetaTransform_MatchesTwoPass(t *testing.T) {
	backend := newTestBackend(3)
	pairs := []struct {
		a, b             ops.Code
		paramsA, paramsB []float64
	}{
		{ops.Add, ops.Abs, []float64{-3}, nil},
		{ops.Abs, ops.Add, nil, []float64{-3}},
		{ops.Multiply, ops.Clip, []float64{0.7}, []float64{-10, 10}},
		{ops.Square, ops.Sqrt, nil, nil},
		{ops.Relu, ops.Log, []float64{0}, nil},
	}

	for _, p := range pairs {
		t.Run(p.a.String()+"_"+p.b.String(), func(t *testing.T) {
			t.Run("float32", func(t *testing.T) {
				src := ramp(300)
				fused := make([]float32, 300)
				scratch := make([]float32, 300)
				twoPass := make([]float32, 300)

				require.NoError(t, backend.MetaTransform(p.a, p.b, dense(t, src, 300), dense(t, fused, 300), p.paramsA, p.paramsB))
				require.NoError(t, backend.ParamTransform(p.a, dense(t, src, 300), dense(t, scratch, 300), p.paramsA))
				require.NoError(t, backend.ParamTransform(p.b, dense(t, scratch, 300), dense(t, twoPass, 300), p.paramsB))
				assert.Empty(t, cmp.Diff(twoPass, fused, cmp.Comparer(sameFloat32)))
			})

			t.Run("float16", func(t *testing.T) {
				src := make([]half.Float16, 300)
				half.FromFloat32s(src, ramp(300))
				fused := make([]half.Float16, 300)
				scratch := make([]half.Float16, 300)
				twoPass := make([]half.Float16, 300)

				require.NoError(t, backend.MetaTransform(p.a, p.b, dense(t, src, 300), dense(t, fused, 300), p.paramsA, p.paramsB))
				require.NoError(t, backend.ParamTransform(p.a, dense(t, src, 300), dense(t, scratch, 300), p.paramsA))
				require.NoError(t, backend.ParamTransform(p.b, dense(t, scratch, 300), dense(t, twoPass, 300), p.paramsB))
				assert.Equal(t, twoPass, fused)
			})
		})
	}
}

// sameFloat32 treats NaNs as equal so fused and two-pass results compare.
func sameFloat32(a, b float32) bool {
	return a == b || (math.IsNaN(float64(a)) && math.IsNaN(float64(b)))
}

func TestScalarTransform_InPlace(t *testing.T) {
	backend := newTestBackend(4)
	src := ramp(1000)

	want := make([]float32, 1000)
	require.NoError(t, backend.ScalarTransform(ops.ReverseDivide, dense(t, src, 1000), dense(t, want, 1000), 3, nil))

	inPlace := append([]float32(nil), src...)
	view := dense(t, inPlace, 1000)
	require.NoError(t, backend.ScalarTransform(ops.ReverseDivide, view, view, 3, nil))
	assert.Equal(t, want, inPlace)

	// In place through a general layout.
	grid := append([]float32(nil), src[:20]...)
	gv := newView(t, grid, tensor.Shape{4, 5}, []int{1, 4}, tensor.RowMajor, 0)
	require.NoError(t, backend.ScalarTransform(ops.Neg, gv, gv, 0, nil))
	for i := range grid {
		assert.Equal(t, -src[i], grid[i])
	}
}

func TestScalarTransform_ErrorsWriteNothing(t *testing.T) {
	backend := newTestBackend(4)

	tests := []struct {
		name string
		run  func(t *testing.T, out *tensor.RawView) error
		want error
	}{
		{
			name: "unknown operation",
			run: func(t *testing.T, out *tensor.RawView) error {
				return backend.ScalarTransform(ops.Code(99), dense(t, ramp(100), 100), out, 1, nil)
			},
			want: ops.ErrInvalidOperation,
		},
		{
			name: "clip without bounds",
			run: func(t *testing.T, out *tensor.RawView) error {
				return backend.ScalarTransform(ops.Clip, dense(t, ramp(100), 100), out, 0, []float64{1})
			},
			want: ops.ErrInvalidOperation,
		},
		{
			name: "count mismatch",
			run: func(t *testing.T, out *tensor.RawView) error {
				return backend.ScalarTransform(ops.Add, dense(t, ramp(99), 99), out, 1, nil)
			},
			want: tensor.ErrShapeMismatch,
		},
		{
			name: "dtype mismatch",
			run: func(t *testing.T, out *tensor.RawView) error {
				return backend.ScalarTransform(ops.Add, dense(t, make([]float64, 100), 100), out, 1, nil)
			},
			want: tensor.ErrTypeMismatch,
		},
		{
			name: "general with unequal ranks",
			run: func(t *testing.T, out *tensor.RawView) error {
				in := newView(t, ramp(100), tensor.Shape{10, 10}, []int{1, 10}, tensor.RowMajor, 0)
				return backend.MetaTransform(ops.Add, ops.Abs, in, out, []float64{1}, nil)
			},
			want: tensor.ErrUnsupportedLayout,
		},
		{
			name: "operation checked before layout",
			run: func(t *testing.T, out *tensor.RawView) error {
				return backend.ParamTransform(ops.Code(-1), dense(t, ramp(99), 99), out, nil)
			},
			want: ops.ErrInvalidOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := fill[float32](100, -1)
			err := tt.run(t, dense(t, out, 100))
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, fill[float32](100, -1), out)
		})
	}
}

func TestIndexedTransform(t *testing.T) {
	backend := newTestBackend(2)
	in := dense(t, []float32{10, 20, 30, 40}, 4)

	out := make([]float32, 4)
	err := backend.IndexedTransform(ops.Add, in, []int{3, 2, 1, 0}, 1, nil, dense(t, out, 4), []int{0, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float32{41, 31, 21, 11}, out)

	// Scatter into every other slot of a larger buffer.
	wide := fill[float32](8, -1)
	err = backend.IndexedTransform(ops.Copy, in, []int{0, 1, 2, 3}, 5, nil, dense(t, wide, 8), []int{0, 2, 4, 6})
	require.NoError(t, err)
	assert.Equal(t, []float32{5, -1, 5, -1, 5, -1, 5, -1}, wide)
}

func TestIndexedTransform_Errors(t *testing.T) {
	backend := newTestBackend(2)
	in := dense(t, []float32{10, 20, 30, 40}, 4)
	out := fill[float32](4, -1)
	outView := dense(t, out, 4)

	err := backend.IndexedTransform(ops.Add, in, []int{0, 1, 2, 4}, 1, nil, outView, []int{0, 1, 2, 3})
	assert.ErrorIs(t, err, tensor.ErrOutOfBounds)

	err = backend.IndexedTransform(ops.Add, in, []int{0, 1, 2}, 1, nil, outView, []int{0, 1, 2})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	err = backend.IndexedTransform(ops.Code(64), in, []int{0, 1, 2, 3}, 1, nil, outView, []int{0, 1, 2, 3})
	assert.ErrorIs(t, err, ops.ErrInvalidOperation)

	assert.Equal(t, fill[float32](4, -1), out)
}

func TestScalarTransform_Float64MatchesGonum(t *testing.T) {
	backend := newTestBackend(4)
	n := 5000
	src := make([]float64, n)
	for i := range src {
		src[i] = math.Sin(float64(i)) * 100
	}

	got := make([]float64, n)
	require.NoError(t, backend.ScalarTransform(ops.Add, dense(t, src, n), dense(t, got, n), 2.5, nil))
	want := append([]float64(nil), src...)
	floats.AddConst(2.5, want)
	assert.True(t, floats.Equal(want, got))

	require.NoError(t, backend.ScalarTransform(ops.Multiply, dense(t, src, n), dense(t, got, n), -0.125, nil))
	want = append(want[:0], src...)
	floats.Scale(-0.125, want)
	assert.True(t, floats.Equal(want, got))

	require.NoError(t, backend.ScalarTransform(ops.Max, dense(t, src, n), dense(t, got, n), 0, nil))
	assert.InDelta(t, floats.Max(src), floats.Max(got), 0)
	assert.GreaterOrEqual(t, floats.Min(got), 0.0)
}

func TestScalarTransform_Half(t *testing.T) {
	backend := newTestBackend(2)

	src := []half.Float16{half.One, half.FromFloat32(2), half.FromFloat32(3), half.FromFloat32(4)}
	out := make([]half.Float16, 4)
	require.NoError(t, backend.ScalarTransform(ops.Add, dense(t, src, 4), dense(t, out, 4), 5, nil))
	got := make([]float32, 4)
	half.ToFloat32s(got, out)
	assert.Equal(t, []float32{6, 7, 8, 9}, got)

	// Overflow saturates to signed infinity, NaN stays NaN.
	edge := []half.Float16{half.MaxValue, half.MaxValue.Neg(), half.NaN, half.Zero}
	require.NoError(t, backend.ScalarTransform(ops.Multiply, dense(t, edge, 4), dense(t, out, 4), 2, nil))
	assert.Equal(t, half.Inf, out[0])
	assert.Equal(t, half.NegInf, out[1])
	assert.True(t, out[2].IsNaN())
	assert.Equal(t, half.Zero, out[3])
}

func BenchmarkScalarTransform(b *testing.B) {
	const n = 1 << 20
	src := make([]float32, n)
	dst := make([]float32, n)
	srcDesc, _ := tensor.ContiguousDescriptor(tensor.Shape{n}, tensor.RowMajor)
	in, _ := tensor.NewView(src, srcDesc)
	out, _ := tensor.NewView(dst, srcDesc)
	genDesc, _ := tensor.NewDescriptor(tensor.Shape{1024, 1024}, []int{1, 1024}, tensor.RowMajor, 0)
	gen, _ := tensor.NewView(src, genDesc)
	outDesc, _ := tensor.ContiguousDescriptor(tensor.Shape{1024, 1024}, tensor.RowMajor)
	genOut, _ := tensor.NewView(dst, outDesc)

	b.Run("contiguous", func(b *testing.B) {
		backend := New()
		for i := 0; i < b.N; i++ {
			_ = backend.ScalarTransform(ops.Add, in.Raw(), out.Raw(), 1, nil)
		}
	})

	b.Run("contiguous_sequential", func(b *testing.B) {
		backend := NewWithConfig(parallel.Sequential())
		for i := 0; i < b.N; i++ {
			_ = backend.ScalarTransform(ops.Add, in.Raw(), out.Raw(), 1, nil)
		}
	})

	b.Run("general", func(b *testing.B) {
		backend := New()
		for i := 0; i < b.N; i++ {
			_ = backend.ScalarTransform(ops.Add, gen.Raw(), genOut.Raw(), 1, nil)
		}
	})
}
