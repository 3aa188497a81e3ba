// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/ewise/internal/tensor"

// Backend defines the interface that all elementwise engines implement.
//
// Implementations:
//   - backend/cpu: pure Go over a bounded worker pool
//   - backend/webgpu: WGSL compute shaders via WebGPU
//
// The methods take type-erased RawViews and float64 parameters. Most callers
// use the typed helpers in this package instead:
//
//	backend := cpu.New()
//	err := tensor.ParamTransform(backend, ops.Relu, in, out, 0)
type Backend = tensor.Backend

// RawView bundles a caller-owned byte buffer with its element type and
// Descriptor.
type RawView = tensor.RawView

// NewRawView wraps data as elements of dtype laid out by desc.
func NewRawView(data []byte, dtype DataType, desc *Descriptor) (*RawView, error) {
	return tensor.NewRawView(data, dtype, desc)
}
