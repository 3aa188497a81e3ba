package cpu

import (
	"github.com/born-ml/ewise/internal/ops"
	"github.com/born-ml/ewise/internal/parallel"
	"github.com/born-ml/ewise/internal/tensor"
)

// apply runs k over every logical position. Each partition owns a disjoint
// range of positions, so workers never write the same element.
func apply[T any](cfg parallel.Config, s tensor.Strategy,
	src []T, sd *tensor.Descriptor, dst []T, dd *tensor.Descriptor, k ops.Kernel[T],
) {
	n := sd.Count()
	io, oo := sd.Offset(), dd.Offset()

	switch s {
	case tensor.Contiguous:
		parallel.ForRange(n, func(lo, hi int) {
			in := src[io+lo : io+hi]
			out := dst[oo+lo : oo+hi]
			for i, x := range in {
				out[i] = k(x)
			}
		}, cfg)

	case tensor.Strided:
		ie, _ := sd.ElementWiseStride()
		oe, _ := dd.ElementWiseStride()
		parallel.ForRange(n, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				dst[oo+i*oe] = k(src[io+i*ie])
			}
		}, cfg)

	default:
		parallel.ForRange(n, func(lo, hi int) {
			var ic, oc tensor.Cursor
			ic.Seek(sd, lo)
			oc.Seek(dd, lo)
			for i := lo; i < hi; i++ {
				dst[oc.Offset()] = k(src[ic.Offset()])
				ic.Next()
				oc.Next()
			}
		}, cfg)
	}
}

func applyIndexed[T any](cfg parallel.Config, src []T, inIndex []int, dst []T, outIndex []int, k ops.Kernel[T]) {
	parallel.ForRange(len(inIndex), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[outIndex[i]] = k(src[inIndex[i]])
		}
	}, cfg)
}
