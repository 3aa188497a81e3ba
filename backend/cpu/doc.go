// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for elementwise operations.
//
// # Overview
//
// This package implements the CPU engine with:
//   - Pure Go implementation (no CGO)
//   - Float32, Float64 and Float16 buffers
//   - Contiguous, constant-stride and fully strided layouts
//   - Two-operation composition in a single pass
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/ewise/backend/cpu"
//	    "github.com/born-ml/ewise/ops"
//	    "github.com/born-ml/ewise/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    in, _ := tensor.FromSlice([]float32{-2, -1, 1, 2}, tensor.Shape{4}, tensor.RowMajor)
//	    out, _ := tensor.FromSlice(make([]float32, 4), tensor.Shape{4}, tensor.RowMajor)
//
//	    // out = |in + 1|
//	    err := tensor.MetaTransform(backend, ops.Add, ops.Abs, in, out, []float32{1}, nil)
//	}
//
// # Performance
//
// Each call picks the cheapest iteration strategy its layouts allow:
//   - Contiguous: plain slice loops
//   - Strided: one multiply per element
//   - General: an incremental multi-index cursor per worker
//
// Calls smaller than Config.MinChunkSize run on the caller's goroutine.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. It holds no mutable state;
// concurrent calls must not write overlapping outputs.
package cpu
