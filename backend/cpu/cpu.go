// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/ewise/internal/backend/cpu"
	"github.com/born-ml/ewise/internal/parallel"
	"github.com/born-ml/ewise/tensor"
)

// Backend represents the CPU backend implementation.
//
// CPU backend runs every operation in pure Go, splitting each call into
// disjoint ranges processed by a bounded set of workers.
type Backend = internalcpu.CPUBackend

// Config controls how a call is partitioned across workers.
type Config = parallel.Config

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend using DefaultConfig.
//
// Example:
//
//	import (
//	    "github.com/born-ml/ewise/backend/cpu"
//	    "github.com/born-ml/ewise/ops"
//	    "github.com/born-ml/ewise/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    in, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, tensor.RowMajor)
//	    _ = tensor.ScalarTransform(backend, ops.Multiply, in, in, 2)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with an explicit worker configuration.
func NewWithConfig(cfg Config) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// DefaultConfig returns one worker per CPU. Parallelism is enabled only when
// more than one CPU is available, and calls under 1024 elements stay on the
// caller's goroutine.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}

// Sequential returns a configuration that runs every call on the caller's
// goroutine.
func Sequential() Config {
	return parallel.Sequential()
}

// Features returns the vector extensions detected on this CPU.
func Features() string {
	return internalcpu.Features()
}
