// Package webgpu implements the elementwise engine as WGSL compute shaders
// dispatched through WebGPU.
package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/born-ml/ewise/internal/ops"
	"github.com/born-ml/ewise/internal/tensor"
)

// workgroupSize is the default number of threads per workgroup.
const workgroupSize = 256

// maxWorkgroups caps the dispatch; the kernel loops over whatever the grid
// does not cover.
const maxWorkgroups = 65535

// Layout of the dims buffer shared by every generated kernel.
const (
	dimsCount    = 0
	dimsMode     = 1
	dimsInRank   = 2
	dimsOutRank  = 3
	dimsInOff    = 4
	dimsOutOff   = 5
	dimsInEws    = 6
	dimsOutEws   = 7
	dimsInShape  = 8
	dimsInStride = dimsInShape + tensor.MaxRank
	dimsOutShape = dimsInStride + tensor.MaxRank
	dimsOutStrd  = dimsOutShape + tensor.MaxRank
	dimsLen      = dimsOutStrd + tensor.MaxRank
)

// Iteration modes understood by the kernel.
const (
	modeFlat    = 0
	modeGeneral = 1
	modeIndexed = 2
)

// operandStride is the number of f32 slots each stage owns in the operands
// buffer: y, extra[0], extra[1] and padding.
const operandStride = 4

// kernelTemplate is the single kernel body. %[1]s receives the stage
// functions, %[2]s the chained calls.
const kernelTemplate = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;
@group(0) @binding(2) var<storage, read> dims: array<i32>;
@group(0) @binding(3) var<storage, read> operands: array<f32>;
@group(0) @binding(4) var<storage, read> in_index: array<i32>;
@group(0) @binding(5) var<storage, read> out_index: array<i32>;

fn pow_c(x: f32, y: f32) -> f32 {
    if (x < 0.0 && y == trunc(y)) {
        let r = pow(-x, y);
        return select(r, -r, abs(y %% 2.0) == 1.0);
    }
    return pow(x, y);
}
%[1]s
fn run_stages(x: f32) -> f32 {
    var v = x;
%[2]s    return v;
}

fn offset_of(i: i32, rank: i32, base: i32, shape_at: i32, stride_at: i32) -> i32 {
    var rem = i;
    var off = base;
    for (var k = rank - 1; k >= 0; k = k - 1) {
        let extent = dims[shape_at + k];
        off = off + (rem %% extent) * dims[stride_at + k];
        rem = rem / extent;
    }
    return off;
}

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>, @builtin(num_workgroups) groups: vec3<u32>) {
    let count = dims[0];
    let mode = dims[1];
    let grid = i32(groups.x * 256u);
    for (var i = i32(global_id.x); i < count; i = i + grid) {
        if (mode == 2) {
            result[out_index[i]] = run_stages(input[in_index[i]]);
        } else if (mode == 1) {
            let src = offset_of(i, dims[2], dims[4], %[3]d, %[4]d);
            let dst = offset_of(i, dims[3], dims[5], %[5]d, %[6]d);
            result[dst] = run_stages(input[src]);
        } else {
            result[dims[5] + i * dims[7]] = run_stages(input[dims[4] + i * dims[6]]);
        }
    }
}
`

// wgslExpr returns the f32 expression of op over x, y, e0 and e1.
func wgslExpr(op ops.Code) (string, error) {
	switch op {
	case ops.Add:
		return "x + y", nil
	case ops.Subtract:
		return "x - y", nil
	case ops.Multiply:
		return "x * y", nil
	case ops.Divide:
		return "x / y", nil
	case ops.ReverseDivide:
		return "y / x", nil
	case ops.ReverseSubtract:
		return "y - x", nil
	case ops.Max:
		return "select(y, x, x > y)", nil
	case ops.LessThan:
		return "select(0.0, 1.0, x < y)", nil
	case ops.GreaterThan:
		return "select(0.0, 1.0, x > y)", nil
	case ops.EqualTo:
		return "select(0.0, 1.0, x == y)", nil
	case ops.LessThanOrEqual:
		return "select(0.0, 1.0, x <= y)", nil
	case ops.NotEqualTo:
		return "select(0.0, 1.0, x != y)", nil
	case ops.Min:
		return "select(y, x, x < y)", nil
	case ops.Copy:
		return "y", nil
	case ops.Mod:
		return "x % y", nil // WGSL float % truncates like C fmod.
	case ops.ReverseMod:
		return "y % x", nil
	case ops.GreaterThanOrEqual:
		return "select(0.0, 1.0, x >= y)", nil
	case ops.Abs:
		return "abs(x)", nil
	case ops.Neg:
		return "-x", nil
	case ops.Square:
		return "x * x", nil
	case ops.Sqrt:
		return "sqrt(x)", nil
	case ops.Exp:
		return "exp(x)", nil
	case ops.Log:
		return "log(x)", nil
	case ops.Sigmoid:
		return "1.0 / (1.0 + exp(-x))", nil
	case ops.Tanh:
		return "tanh(x)", nil
	case ops.Relu:
		return "select(0.0, x, x > y)", nil
	case ops.Pow:
		return "pow_c(x, y)", nil
	case ops.Clip:
		return "min(max(x, e0), e1)", nil
	default:
		return "", fmt.Errorf("%w: code %d", ops.ErrInvalidOperation, int(op))
	}
}

// generateShader builds the WGSL source running codes in order.
func generateShader(codes []ops.Code) (string, error) {
	var funcs, calls strings.Builder
	for i, c := range codes {
		expr, err := wgslExpr(c)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&funcs, "\n// %s\nfn stage%d(x: f32, y: f32, e0: f32, e1: f32) -> f32 {\n    return %s;\n}\n", c, i, expr)
		base := i * operandStride
		fmt.Fprintf(&calls, "    v = stage%d(v, operands[%d], operands[%d], operands[%d]);\n", i, base, base+1, base+2)
	}
	return fmt.Sprintf(kernelTemplate, funcs.String(), calls.String(),
		dimsInShape, dimsInStride, dimsOutShape, dimsOutStrd), nil
}

// shaderKey names the pipeline for a sequence of codes.
func shaderKey(codes []ops.Code) string {
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = c.String()
	}
	return strings.Join(names, "+")
}

func stageCodes(stages []ops.Stage) []ops.Code {
	codes := make([]ops.Code, len(stages))
	for i, s := range stages {
		codes[i] = s.Op
	}
	return codes
}

// packDims fills the dims buffer for a strided call.
func packDims(s tensor.Strategy, in, out *tensor.Descriptor) []int32 {
	dims := make([]int32, dimsLen)
	putDims(dims[dimsCount:], []int{in.Count(), 0, in.Rank(), out.Rank(), in.Offset(), out.Offset()})

	if s == tensor.General {
		dims[dimsMode] = modeGeneral
		putDims(dims[dimsInShape:], in.Shape())
		putDims(dims[dimsInStride:], in.Strides())
		putDims(dims[dimsOutShape:], out.Shape())
		putDims(dims[dimsOutStrd:], out.Strides())
		return dims
	}

	dims[dimsMode] = modeFlat
	ie, _ := in.ElementWiseStride()
	oe, _ := out.ElementWiseStride()
	putDims(dims[dimsInEws:], []int{ie, oe})
	return dims
}

// packIndexedDims fills the dims buffer for an indexed call.
func packIndexedDims(count int) []int32 {
	dims := make([]int32, dimsLen)
	dims[dimsCount] = int32(count) //nolint:gosec // G115: bounded by the input buffer.
	dims[dimsMode] = modeIndexed
	return dims
}

func putDims(dst []int32, src []int) {
	for i, v := range src {
		dst[i] = int32(v) //nolint:gosec // G115: extents and strides fit in i32 once the buffer does.
	}
}

// packOperands lays out each stage's operand and extra parameters,
// operandStride slots per stage.
func packOperands(stages []ops.Stage) []float32 {
	out := make([]float32, len(stages)*operandStride)
	for i, s := range stages {
		base := i * operandStride
		out[base] = float32(s.Operand)
		for j := 0; j < len(s.Extra) && j < operandStride-1; j++ {
			out[base+1+j] = float32(s.Extra[j])
		}
	}
	return out
}

func packIndex(index []int) []int32 {
	out := make([]int32, max(len(index), 1))
	for i, v := range index {
		out[i] = int32(v) //nolint:gosec // G115: positions are validated against the buffer length.
	}
	return out
}

// fitsInt32 reports whether every element of both views is addressable
// with i32 arithmetic in the kernel.
func fitsInt32(views ...*tensor.RawView) bool {
	for _, v := range views {
		if v.Len() > math.MaxInt32 {
			return false
		}
	}
	return true
}

func workgroups(count int) uint32 {
	n := (count + workgroupSize - 1) / workgroupSize
	return uint32(min(max(n, 1), maxWorkgroups)) //nolint:gosec // G115: clamped above.
}

func int32Bytes(v []int32) []byte {
	buf := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(x)) //nolint:gosec // G115: bit reinterpretation.
	}
	return buf
}

func float32Bytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(x))
	}
	return buf
}
