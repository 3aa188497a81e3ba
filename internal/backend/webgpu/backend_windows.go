//go:build windows

package webgpu

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/born-ml/ewise/internal/backend/cpu"
	"github.com/born-ml/ewise/internal/ops"
	"github.com/born-ml/ewise/internal/tensor"
	"github.com/go-webgpu/webgpu/wgpu"
)

// Backend implements tensor.Backend with WGSL compute shaders. Float32
// arrays run on the device; other element types run on the embedded CPU
// engine with identical semantics.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline cache, keyed by the stage sequence.
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	// Submissions and read-back are serialized on the single queue.
	submitMu sync.Mutex
	staging  *StagingPool

	fallback *cpu.CPUBackend
}

// New creates a new WebGPU backend.
// Returns an error if WebGPU is not available or initialization fails.
func New() (backend *Backend, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("%w: native library: %v", ErrNotAvailable, r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: request adapter: %w", ErrNotAvailable, adapterErr)
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: request device: %w", ErrNotAvailable, deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: failed to get queue", ErrNotAvailable)
	}

	slog.Debug("webgpu backend ready")
	return &Backend{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
		staging:   NewStagingPool(device),
		fallback:  cpu.New(),
	}, nil
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() bool {
	b, err := New()
	if err != nil {
		return false
	}
	b.Release()
	return true
}

// Release frees the cached pipelines and the device.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range b.pipelines {
		p.Release()
	}
	for _, s := range b.shaders {
		s.Release()
	}
	b.pipelines = map[string]*wgpu.ComputePipeline{}
	b.shaders = map[string]*wgpu.ShaderModule{}

	if b.staging != nil {
		b.staging.Clear()
	}

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// ScalarTransform computes out[i] = op(in[i], scalar, extra).
func (b *Backend) ScalarTransform(op ops.Code, in, out *tensor.RawView, scalar float64, extra []float64) error {
	return b.transform(in, out, ops.Stage{Op: op, Operand: scalar, Extra: extra})
}

// ParamTransform computes out[i] = op(in[i], params[0], params).
func (b *Backend) ParamTransform(op ops.Code, in, out *tensor.RawView, params []float64) error {
	return b.transform(in, out, ops.ParamStage(op, params))
}

// MetaTransform computes out[i] = opB(opA(in[i])) in one dispatch.
func (b *Backend) MetaTransform(opA, opB ops.Code, in, out *tensor.RawView, paramsA, paramsB []float64) error {
	return b.transform(in, out, ops.ParamStage(opA, paramsA), ops.ParamStage(opB, paramsB))
}

// IndexedTransform computes out[outIndex[i]] = op(in[inIndex[i]], scalar, extra).
func (b *Backend) IndexedTransform(op ops.Code, in *tensor.RawView, inIndex []int, scalar float64,
	extra []float64, out *tensor.RawView, outIndex []int,
) error {
	stage := ops.Stage{Op: op, Operand: scalar, Extra: extra}
	if err := ops.CheckStages(stage); err != nil {
		return err
	}
	if err := tensor.PlanIndexed(in, inIndex, out, outIndex); err != nil {
		return err
	}
	if in.DType() != tensor.Float32 || !fitsInt32(in, out) {
		slog.Debug("webgpu: indexed transform on cpu", "dtype", in.DType())
		return b.fallback.IndexedTransform(op, in, inIndex, scalar, extra, out, outIndex)
	}

	return b.dispatch([]ops.Stage{stage}, in, out, packIndexedDims(len(inIndex)),
		packIndex(inIndex), packIndex(outIndex))
}

func (b *Backend) transform(in, out *tensor.RawView, stages ...ops.Stage) error {
	if err := ops.CheckStages(stages...); err != nil {
		return err
	}
	strategy, err := tensor.Plan(in, out)
	if err != nil {
		return err
	}
	if in.DType() != tensor.Float32 || !fitsInt32(in, out) {
		slog.Debug("webgpu: transform on cpu", "dtype", in.DType(), "ops", shaderKey(stageCodes(stages)))
		return b.fallback.Run(in, out, stages...)
	}

	return b.dispatch(stages, in, out, packDims(strategy, in.Desc(), out.Desc()), packIndex(nil), packIndex(nil))
}

// dispatch uploads both buffers, runs the kernel for stages and copies the
// device output back into out.
func (b *Backend) dispatch(stages []ops.Stage, in, out *tensor.RawView, dims, inIndex, outIndex []int32) error {
	pipeline, err := b.pipeline(stageCodes(stages))
	if err != nil {
		return err
	}

	inData := in.Data()[:in.Len()*4]
	outData := out.Data()[:out.Len()*4]
	operands := float32Bytes(packOperands(stages))
	dimsData := int32Bytes(dims)
	inIndexData := int32Bytes(inIndex)
	outIndexData := int32Bytes(outIndex)

	b.submitMu.Lock()
	defer b.submitMu.Unlock()

	bufferInput := b.createBuffer(inData, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferInput.Release()

	// The output buffer starts from the caller's contents so positions the
	// layout does not reach read back unchanged.
	bufferResult := b.createBuffer(outData, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
	defer bufferResult.Release()

	bufferDims := b.createBuffer(dimsData, wgpu.BufferUsageStorage)
	defer bufferDims.Release()

	bufferOperands := b.createBuffer(operands, wgpu.BufferUsageStorage)
	defer bufferOperands.Release()

	bufferInIndex := b.createBuffer(inIndexData, wgpu.BufferUsageStorage)
	defer bufferInIndex.Release()

	bufferOutIndex := b.createBuffer(outIndexData, wgpu.BufferUsageStorage)
	defer bufferOutIndex.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferInput, 0, uint64(len(inData))),
		wgpu.BufferBindingEntry(1, bufferResult, 0, uint64(len(outData))),
		wgpu.BufferBindingEntry(2, bufferDims, 0, uint64(len(dimsData))),
		wgpu.BufferBindingEntry(3, bufferOperands, 0, uint64(len(operands))),
		wgpu.BufferBindingEntry(4, bufferInIndex, 0, uint64(len(inIndexData))),
		wgpu.BufferBindingEntry(5, bufferOutIndex, 0, uint64(len(outIndexData))),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.DispatchWorkgroups(workgroups(int(dims[dimsCount])), 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	resultData, err := b.readBuffer(bufferResult, uint64(len(outData)))
	if err != nil {
		return err
	}
	copy(outData, resultData)
	return nil
}

// pipeline returns the cached pipeline for codes, compiling it on first use.
func (b *Backend) pipeline(codes []ops.Code) (*wgpu.ComputePipeline, error) {
	key := shaderKey(codes)

	b.mu.RLock()
	if p, exists := b.pipelines[key]; exists {
		b.mu.RUnlock()
		return p, nil
	}
	b.mu.RUnlock()

	code, err := generateShader(codes)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if p, exists := b.pipelines[key]; exists {
		return p, nil
	}
	shader := b.device.CreateShaderModuleWGSL(code)
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")
	b.shaders[key] = shader
	b.pipelines[key] = pipeline
	slog.Debug("webgpu: compiled kernel", "ops", key)
	return pipeline, nil
}

// createBuffer creates a GPU buffer and uploads its initial data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// readBuffer reads data back from a GPU buffer to CPU memory.
// Uses a pooled staging buffer since storage buffers can't be mapped directly.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	stagingBuffer := b.staging.Acquire(size)

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	if err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		stagingBuffer.Release()
		return nil, fmt.Errorf("webgpu: failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)
	stagingBuffer.Unmap()
	b.staging.Release(stagingBuffer, size)

	return result, nil
}
