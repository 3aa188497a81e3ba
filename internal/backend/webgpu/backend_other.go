//go:build !windows

package webgpu

import (
	"github.com/born-ml/ewise/internal/ops"
	"github.com/born-ml/ewise/internal/tensor"
)

// Backend is the WebGPU engine. wgpu-native bindings are only wired for
// Windows builds; elsewhere New always fails with ErrNotAvailable.
type Backend struct{}

// New returns ErrNotAvailable.
func New() (*Backend, error) {
	return nil, ErrNotAvailable
}

// IsAvailable reports false.
func IsAvailable() bool {
	return false
}

// Release does nothing.
func (b *Backend) Release() {}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

//nolint:revive // Parameters unused in stub implementation.
func (b *Backend) ScalarTransform(op ops.Code, in, out *tensor.RawView, scalar float64, extra []float64) error {
	return ErrNotAvailable
}

//nolint:revive // Parameters unused in stub implementation.
func (b *Backend) ParamTransform(op ops.Code, in, out *tensor.RawView, params []float64) error {
	return ErrNotAvailable
}

//nolint:revive // Parameters unused in stub implementation.
func (b *Backend) MetaTransform(opA, opB ops.Code, in, out *tensor.RawView, paramsA, paramsB []float64) error {
	return ErrNotAvailable
}

//nolint:revive // Parameters unused in stub implementation.
func (b *Backend) IndexedTransform(op ops.Code, in *tensor.RawView, inIndex []int, scalar float64,
	extra []float64, out *tensor.RawView, outIndex []int,
) error {
	return ErrNotAvailable
}
