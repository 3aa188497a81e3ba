package tensor

import "github.com/born-ml/ewise/internal/ops"

// Backend defines the interface that all elementwise engines implement.
// Every method validates the whole call before touching the output and is
// synchronous: the output is fully written when it returns nil.
//
// Implementations:
//   - CPU: pure Go over a bounded worker pool
//   - WebGPU: WGSL compute shaders via wgpu-native (Windows builds)
type Backend interface {
	// ScalarTransform computes out[i] = op(in[i], scalar, extra) for every
	// logical position i.
	ScalarTransform(op ops.Code, in, out *RawView, scalar float64, extra []float64) error

	// ParamTransform computes out[i] = op(in[i], params[0], params), for
	// operations driven by a parameter array.
	ParamTransform(op ops.Code, in, out *RawView, params []float64) error

	// IndexedTransform computes out[outIndex[i]] = op(in[inIndex[i]], scalar, extra)
	// for explicit physical positions.
	IndexedTransform(op ops.Code, in *RawView, inIndex []int, scalar float64, extra []float64,
		out *RawView, outIndex []int) error

	// MetaTransform computes out[i] = opB(opA(in[i], paramsA), paramsB) in
	// a single pass.
	MetaTransform(opA, opB ops.Code, in, out *RawView, paramsA, paramsB []float64) error

	// Name returns a human-readable backend description.
	Name() string

	// Device returns the compute device this backend uses.
	Device() Device
}
