// Package cpu implements the elementwise engine on the CPU, partitioning
// every call across a bounded worker pool.
package cpu

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/ewise/internal/parallel"
	"github.com/born-ml/ewise/internal/tensor"
)

// CPUBackend implements tensor.Backend on the CPU.
type CPUBackend struct {
	device tensor.Device
	cfg    parallel.Config
}

// New creates a CPU backend using parallel.DefaultConfig.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with an explicit worker configuration.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	if cfg.NumWorkers < 1 {
		cfg.NumWorkers = 1
	}
	slog.Debug("cpu backend", "workers", cfg.NumWorkers, "parallel", cfg.Enabled,
		"min_chunk", cfg.MinChunkSize, "features", Features())
	return &CPUBackend{
		device: tensor.CPU,
		cfg:    cfg,
	}
}

// Name returns the backend name with the detected vector features.
func (cpu *CPUBackend) Name() string {
	return fmt.Sprintf("CPU (%s, %d workers)", Features(), cpu.workers())
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Config returns the worker configuration.
func (cpu *CPUBackend) Config() parallel.Config {
	return cpu.cfg
}

func (cpu *CPUBackend) workers() int {
	if !cpu.cfg.Enabled {
		return 1
	}
	return cpu.cfg.NumWorkers
}
