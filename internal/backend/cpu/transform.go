package cpu

import (
	"fmt"

	"github.com/born-ml/ewise/internal/ops"
	"github.com/born-ml/ewise/internal/tensor"
)

// ScalarTransform computes out[i] = op(in[i], scalar, extra).
func (cpu *CPUBackend) ScalarTransform(op ops.Code, in, out *tensor.RawView, scalar float64, extra []float64) error {
	return cpu.transform(in, out, ops.Stage{Op: op, Operand: scalar, Extra: extra})
}

// ParamTransform computes out[i] = op(in[i], params[0], params).
func (cpu *CPUBackend) ParamTransform(op ops.Code, in, out *tensor.RawView, params []float64) error {
	return cpu.transform(in, out, ops.ParamStage(op, params))
}

// MetaTransform computes out[i] = opB(opA(in[i])) in one pass, each
// operation bound to its own parameter array.
func (cpu *CPUBackend) MetaTransform(opA, opB ops.Code, in, out *tensor.RawView, paramsA, paramsB []float64) error {
	return cpu.transform(in, out, ops.ParamStage(opA, paramsA), ops.ParamStage(opB, paramsB))
}

// IndexedTransform computes out[outIndex[i]] = op(in[inIndex[i]], scalar, extra).
func (cpu *CPUBackend) IndexedTransform(op ops.Code, in *tensor.RawView, inIndex []int, scalar float64,
	extra []float64, out *tensor.RawView, outIndex []int,
) error {
	stage := ops.Stage{Op: op, Operand: scalar, Extra: extra}
	if err := ops.CheckStages(stage); err != nil {
		return err
	}
	if err := tensor.PlanIndexed(in, inIndex, out, outIndex); err != nil {
		return err
	}

	switch in.DType() {
	case tensor.Float32:
		k, err := ops.Build[float32](stage)
		if err != nil {
			return err
		}
		applyIndexed(cpu.cfg, in.AsFloat32(), inIndex, out.AsFloat32(), outIndex, k)
	case tensor.Float64:
		k, err := ops.Build[float64](stage)
		if err != nil {
			return err
		}
		applyIndexed(cpu.cfg, in.AsFloat64(), inIndex, out.AsFloat64(), outIndex, k)
	case tensor.Float16:
		k, err := ops.BuildHalf(stage)
		if err != nil {
			return err
		}
		applyIndexed(cpu.cfg, in.AsFloat16(), inIndex, out.AsFloat16(), outIndex, k)
	default:
		return fmt.Errorf("%w: unsupported dtype %s", tensor.ErrTypeMismatch, in.DType())
	}
	return nil
}

// Run executes a pipeline of stages as one pass over in and out. It is the
// entry point shared by every transform and by engines that fall back to
// the CPU.
func (cpu *CPUBackend) Run(in, out *tensor.RawView, stages ...ops.Stage) error {
	return cpu.transform(in, out, stages...)
}

func (cpu *CPUBackend) transform(in, out *tensor.RawView, stages ...ops.Stage) error {
	if err := ops.CheckStages(stages...); err != nil {
		return err
	}
	strategy, err := tensor.Plan(in, out)
	if err != nil {
		return err
	}

	switch in.DType() {
	case tensor.Float32:
		k, err := ops.Build[float32](stages...)
		if err != nil {
			return err
		}
		apply(cpu.cfg, strategy, in.AsFloat32(), in.Desc(), out.AsFloat32(), out.Desc(), k)
	case tensor.Float64:
		k, err := ops.Build[float64](stages...)
		if err != nil {
			return err
		}
		apply(cpu.cfg, strategy, in.AsFloat64(), in.Desc(), out.AsFloat64(), out.Desc(), k)
	case tensor.Float16:
		k, err := ops.BuildHalf(stages...)
		if err != nil {
			return err
		}
		apply(cpu.cfg, strategy, in.AsFloat16(), in.Desc(), out.AsFloat16(), out.Desc(), k)
	default:
		return fmt.Errorf("%w: unsupported dtype %s", tensor.ErrTypeMismatch, in.DType())
	}
	return nil
}
