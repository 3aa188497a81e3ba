// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API of the elementwise engine.
//
// The package defines the types every backend works on:
//   - Descriptor: shape, strides, memory order and base offset of an array
//   - View[T]: a typed, caller-owned buffer paired with its Descriptor
//   - RawView: the type-erased form backends receive
//   - Backend: interface implemented by backend/cpu and backend/webgpu
//
// Buffers are never allocated or owned by the engine. A call reads the input
// view, writes the output view and returns; a failed call writes nothing.
//
// Example:
//
//	backend := cpu.New()
//	in, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{4}, tensor.RowMajor)
//	out, _ := tensor.FromSlice(make([]float32, 4), tensor.Shape{4}, tensor.RowMajor)
//	err := tensor.ScalarTransform(backend, ops.Add, in, out, 5) // out = [6 7 8 9]
//
// Composition runs two operations in one pass without an intermediate buffer:
//
//	err = tensor.MetaTransform(backend, ops.Multiply, ops.Clip, in, out,
//	    []float32{2}, []float32{0, 5})
package tensor
