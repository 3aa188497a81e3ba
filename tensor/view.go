// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/ewise/internal/ops"
	"github.com/born-ml/ewise/internal/tensor"
)

// View is a typed, caller-owned buffer paired with its Descriptor.
type View[T Element] = tensor.View[T]

// NewView pairs data with desc after checking every reachable element lies
// inside data.
func NewView[T Element](data []T, desc *Descriptor) (View[T], error) {
	return tensor.NewView(data, desc)
}

// FromSlice wraps data as a dense array of the given shape.
func FromSlice[T Element](data []T, shape Shape, order Order) (View[T], error) {
	return tensor.FromSlice(data, shape, order)
}

// ScalarTransform computes out[i] = op(in[i], scalar, extra) on b.
func ScalarTransform[T Element](b Backend, op ops.Code, in, out View[T], scalar T, extra ...T) error {
	return tensor.ScalarTransform(b, op, in, out, scalar, extra...)
}

// ParamTransform computes out[i] = op(in[i], params[0], params) on b.
func ParamTransform[T Element](b Backend, op ops.Code, in, out View[T], params ...T) error {
	return tensor.ParamTransform(b, op, in, out, params...)
}

// IndexedTransform computes out[outIndex[i]] = op(in[inIndex[i]], scalar, extra)
// on b. Index entries are physical buffer positions.
func IndexedTransform[T Element](b Backend, op ops.Code, in View[T], inIndex []int, scalar T,
	out View[T], outIndex []int, extra ...T,
) error {
	return tensor.IndexedTransform(b, op, in, inIndex, scalar, out, outIndex, extra...)
}

// MetaTransform computes out[i] = opB(opA(in[i], paramsA), paramsB) on b in
// a single pass.
func MetaTransform[T Element](b Backend, opA, opB ops.Code, in, out View[T], paramsA, paramsB []T) error {
	return tensor.MetaTransform(b, opA, opB, in, out, paramsA, paramsB)
}
