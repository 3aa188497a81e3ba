// Package ops is the closed catalog of elementwise operations and the
// machinery that resolves an operation code to its implementation once per
// call.
package ops

import (
	"errors"
	"fmt"
)

// ErrInvalidOperation is returned for codes outside the catalog and for
// operations invoked without the extra parameters they need.
var ErrInvalidOperation = errors.New("invalid operation")

// Code selects one operation from the catalog.
//
// Codes 0-16 are the scalar family: f(x, y) with y a broadcast operand.
// Codes from Abs on form the transform family used as composition stages;
// most of them ignore y.
type Code int

// Operation catalog.
const (
	Add Code = iota
	Subtract
	Multiply
	Divide
	ReverseDivide
	ReverseSubtract
	Max
	LessThan
	GreaterThan
	EqualTo
	LessThanOrEqual
	NotEqualTo
	Min
	Copy
	Mod
	ReverseMod
	GreaterThanOrEqual
	Abs
	Neg
	Square
	Sqrt
	Exp
	Log
	Sigmoid
	Tanh
	Relu
	Pow
	Clip

	numCodes
)

var codeNames = [numCodes]string{
	Add:                "add",
	Subtract:           "subtract",
	Multiply:           "multiply",
	Divide:             "divide",
	ReverseDivide:      "reverse_divide",
	ReverseSubtract:    "reverse_subtract",
	Max:                "max",
	LessThan:           "less_than",
	GreaterThan:        "greater_than",
	EqualTo:            "equal_to",
	LessThanOrEqual:    "less_than_or_equal",
	NotEqualTo:         "not_equal_to",
	Min:                "min",
	Copy:               "copy",
	Mod:                "mod",
	ReverseMod:         "reverse_mod",
	GreaterThanOrEqual: "greater_than_or_equal",
	Abs:                "abs",
	Neg:                "neg",
	Square:             "square",
	Sqrt:               "sqrt",
	Exp:                "exp",
	Log:                "log",
	Sigmoid:            "sigmoid",
	Tanh:               "tanh",
	Relu:               "relu",
	Pow:                "pow",
	Clip:               "clip",
}

// Valid reports whether c is in the catalog.
func (c Code) Valid() bool {
	return c >= 0 && c < numCodes
}

// String returns the operation name, or "op(N)" for unknown codes.
func (c Code) String() string {
	if !c.Valid() {
		return fmt.Sprintf("op(%d)", int(c))
	}
	return codeNames[c]
}

// Catalog returns every operation code in numeric order.
func Catalog() []Code {
	codes := make([]Code, numCodes)
	for i := range codes {
		codes[i] = Code(i)
	}
	return codes
}

// Parse returns the code whose name is s.
func Parse(s string) (Code, error) {
	for i, name := range codeNames {
		if name == s {
			return Code(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown name %q", ErrInvalidOperation, s)
}

// UsesOperand reports whether the operation reads its second operand y.
func (c Code) UsesOperand() bool {
	switch c {
	case Abs, Neg, Square, Sqrt, Exp, Log, Sigmoid, Tanh, Clip:
		return false
	default:
		return c.Valid()
	}
}

// Arity returns 2 for operations of (x, y) and 1 for those of x alone.
func (c Code) Arity() int {
	if c.UsesOperand() {
		return 2
	}
	return 1
}

// ExtraLen returns how many extra parameters the operation reads.
func (c Code) ExtraLen() int {
	if c == Clip {
		return 2
	}
	return 0
}

// Check validates c against the number of extra parameters supplied.
func (c Code) Check(extra int) error {
	if !c.Valid() {
		return fmt.Errorf("%w: code %d", ErrInvalidOperation, int(c))
	}
	if need := c.ExtraLen(); extra < need {
		return fmt.Errorf("%w: %s needs %d extra parameters, got %d", ErrInvalidOperation, c, need, extra)
	}
	return nil
}
