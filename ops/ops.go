// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ops lists the elementwise operations every backend implements.
//
// An operation is identified by a stable numeric Code. The scalar family
// (Add through GreaterThanOrEqual) combines each element x with a broadcast
// operand y. The transform family (Abs through Clip) is driven by a
// parameter array and is what MetaTransform composes.
//
// Example:
//
//	op, err := ops.Parse("sigmoid")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(op, op.Arity()) // sigmoid 1
package ops

import "github.com/born-ml/ewise/internal/ops"

// Code selects one operation from the catalog.
type Code = ops.Code

// ErrInvalidOperation is returned for codes outside the catalog.
var ErrInvalidOperation = ops.ErrInvalidOperation

// Operation catalog.
const (
	Add                Code = ops.Add
	Subtract           Code = ops.Subtract
	Multiply           Code = ops.Multiply
	Divide             Code = ops.Divide
	ReverseDivide      Code = ops.ReverseDivide
	ReverseSubtract    Code = ops.ReverseSubtract
	Max                Code = ops.Max
	LessThan           Code = ops.LessThan
	GreaterThan        Code = ops.GreaterThan
	EqualTo            Code = ops.EqualTo
	LessThanOrEqual    Code = ops.LessThanOrEqual
	NotEqualTo         Code = ops.NotEqualTo
	Min                Code = ops.Min
	Copy               Code = ops.Copy
	Mod                Code = ops.Mod
	ReverseMod         Code = ops.ReverseMod
	GreaterThanOrEqual Code = ops.GreaterThanOrEqual
	Abs                Code = ops.Abs
	Neg                Code = ops.Neg
	Square             Code = ops.Square
	Sqrt               Code = ops.Sqrt
	Exp                Code = ops.Exp
	Log                Code = ops.Log
	Sigmoid            Code = ops.Sigmoid
	Tanh               Code = ops.Tanh
	Relu               Code = ops.Relu
	Pow                Code = ops.Pow
	Clip               Code = ops.Clip
)

// Catalog returns every operation code in numeric order.
func Catalog() []Code {
	return ops.Catalog()
}

// Parse returns the code whose name is s, for example "reverse_divide".
func Parse(s string) (Code, error) {
	return ops.Parse(s)
}
