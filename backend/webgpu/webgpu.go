// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated elementwise
// operations.
//
// WebGPU is a cross-platform graphics and compute API that works on:
//   - Windows (via D3D12)
//   - macOS (via Metal)
//   - Linux (via Vulkan)
//
// The device path is built for Windows, where wgpu-native is loaded at
// runtime. On other platforms New reports ErrNotAvailable. Float32 buffers
// run on the device; float64 and float16 buffers run on the CPU engine with
// identical semantics.
//
// Example:
//
//	import (
//	    "github.com/born-ml/ewise/backend/cpu"
//	    "github.com/born-ml/ewise/backend/webgpu"
//	    "github.com/born-ml/ewise/tensor"
//	)
//
//	func main() {
//	    var backend tensor.Backend = cpu.New()
//	    if gpu, err := webgpu.New(); err == nil {
//	        defer gpu.Release()
//	        backend = gpu
//	    }
//	}
package webgpu

import (
	internalwebgpu "github.com/born-ml/ewise/internal/backend/webgpu"
	"github.com/born-ml/ewise/tensor"
)

// Backend represents the WebGPU backend implementation for GPU-accelerated
// elementwise operations.
type Backend = internalwebgpu.Backend

// ErrNotAvailable is returned when no WebGPU adapter or device can be
// created.
var ErrNotAvailable = internalwebgpu.ErrNotAvailable

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
//
// This function initializes the WebGPU device and returns a backend
// ready for use. Call Release() when done to free GPU resources.
//
// Returns an error wrapping ErrNotAvailable if WebGPU initialization fails
// (e.g., no compatible GPU).
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// This function attempts to initialize a WebGPU adapter to verify
// that a compatible GPU and drivers are present. It's useful for
// graceful fallback to CPU backend when GPU is not available.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
