package ops

import (
	"fmt"
	"math"
)

// Float is the constraint for compute types. Half-precision storage computes
// in float32 and is handled by the backends.
type Float interface {
	~float32 | ~float64
}

// Func is a resolved operation: a pure function of the element x, the
// broadcast operand y and the read-only extra parameters.
type Func[T Float] func(x, y T, extra []T) T

// Resolve maps a code to its implementation. The switch is the whole
// registry: there is no table lookup left once the Func is returned.
func Resolve[T Float](c Code) (Func[T], error) {
	switch c {
	case Add:
		return add[T], nil
	case Subtract:
		return subtract[T], nil
	case Multiply:
		return multiply[T], nil
	case Divide:
		return divide[T], nil
	case ReverseDivide:
		return reverseDivide[T], nil
	case ReverseSubtract:
		return reverseSubtract[T], nil
	case Max:
		return maxOp[T], nil
	case LessThan:
		return lessThan[T], nil
	case GreaterThan:
		return greaterThan[T], nil
	case EqualTo:
		return equalTo[T], nil
	case LessThanOrEqual:
		return lessThanOrEqual[T], nil
	case NotEqualTo:
		return notEqualTo[T], nil
	case Min:
		return minOp[T], nil
	case Copy:
		return copyOp[T], nil
	case Mod:
		return mod[T], nil
	case ReverseMod:
		return reverseMod[T], nil
	case GreaterThanOrEqual:
		return greaterThanOrEqual[T], nil
	case Abs:
		return abs[T], nil
	case Neg:
		return neg[T], nil
	case Square:
		return square[T], nil
	case Sqrt:
		return sqrt[T], nil
	case Exp:
		return exp[T], nil
	case Log:
		return log[T], nil
	case Sigmoid:
		return sigmoid[T], nil
	case Tanh:
		return tanh[T], nil
	case Relu:
		return relu[T], nil
	case Pow:
		return pow[T], nil
	case Clip:
		return clip[T], nil
	default:
		return nil, fmt.Errorf("%w: code %d", ErrInvalidOperation, int(c))
	}
}

func add[T Float](x, y T, _ []T) T { return x + y }

func subtract[T Float](x, y T, _ []T) T { return x - y }

func multiply[T Float](x, y T, _ []T) T { return x * y }

func divide[T Float](x, y T, _ []T) T { return x / y }

func reverseDivide[T Float](x, y T, _ []T) T { return y / x }

func reverseSubtract[T Float](x, y T, _ []T) T { return y - x }

func maxOp[T Float](x, y T, _ []T) T {
	if x > y {
		return x
	}
	return y
}

func minOp[T Float](x, y T, _ []T) T {
	if x < y {
		return x
	}
	return y
}

func lessThan[T Float](x, y T, _ []T) T { return indicator[T](x < y) }

func greaterThan[T Float](x, y T, _ []T) T { return indicator[T](x > y) }

func equalTo[T Float](x, y T, _ []T) T { return indicator[T](x == y) }

func lessThanOrEqual[T Float](x, y T, _ []T) T { return indicator[T](x <= y) }

func notEqualTo[T Float](x, y T, _ []T) T { return indicator[T](x != y) }

func greaterThanOrEqual[T Float](x, y T, _ []T) T { return indicator[T](x >= y) }

func copyOp[T Float](_, y T, _ []T) T { return y }

// mod follows C fmod: the result takes the sign of x.
func mod[T Float](x, y T, _ []T) T { return T(math.Mod(float64(x), float64(y))) }

func reverseMod[T Float](x, y T, _ []T) T { return T(math.Mod(float64(y), float64(x))) }

func abs[T Float](x, _ T, _ []T) T { return T(math.Abs(float64(x))) }

func neg[T Float](x, _ T, _ []T) T { return -x }

func square[T Float](x, _ T, _ []T) T { return x * x }

func sqrt[T Float](x, _ T, _ []T) T { return T(math.Sqrt(float64(x))) }

func exp[T Float](x, _ T, _ []T) T { return T(math.Exp(float64(x))) }

func log[T Float](x, _ T, _ []T) T { return T(math.Log(float64(x))) }

func sigmoid[T Float](x, _ T, _ []T) T { return T(1 / (1 + math.Exp(-float64(x)))) }

func tanh[T Float](x, _ T, _ []T) T { return T(math.Tanh(float64(x))) }

// relu keeps x above the cutoff y and zeroes everything else.
func relu[T Float](x, y T, _ []T) T {
	if x > y {
		return x
	}
	return 0
}

func pow[T Float](x, y T, _ []T) T { return T(math.Pow(float64(x), float64(y))) }

// clip is min(max(x, extra[0]), extra[1]); the upper bound wins when the
// bounds cross.
func clip[T Float](x, _ T, extra []T) T {
	if x < extra[0] {
		x = extra[0]
	}
	if x > extra[1] {
		x = extra[1]
	}
	return x
}

func indicator[T Float](b bool) T {
	if b {
		return 1
	}
	return 0
}
