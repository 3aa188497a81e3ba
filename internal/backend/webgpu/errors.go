package webgpu

import "errors"

// ErrNotAvailable is returned when no WebGPU device can be opened on this
// system or build.
var ErrNotAvailable = errors.New("webgpu: not available")
