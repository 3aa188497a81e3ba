package ops

// Kernel is an operation bound to its second operand and extra parameters.
// Engines run Kernels; they never see a Code.
type Kernel[T any] func(x T) T

// Bind fixes y and extra. extra is shared by every call of the kernel and
// must not be modified while it runs.
func Bind[T Float](f Func[T], y T, extra []T) Kernel[T] {
	return func(x T) T {
		return f(x, y, extra)
	}
}

// BindParams binds a parameter-array operation: params[0] is the operand
// (zero when params is empty) and the whole array is the extra parameters.
func BindParams[T Float](f Func[T], params []T) Kernel[T] {
	var y T
	if len(params) > 0 {
		y = params[0]
	}
	return Bind(f, y, params)
}

// Compose returns the kernel x -> b(a(x)).
func Compose[T any](a, b Kernel[T]) Kernel[T] {
	return func(x T) T {
		return b(a(x))
	}
}

// Stage is one step of a kernel pipeline, with parameters held in float64
// until the element type is known.
type Stage struct {
	Op      Code
	Operand float64
	Extra   []float64
}

// ParamStage builds the stage of a parameter-array operation.
func ParamStage(op Code, params []float64) Stage {
	s := Stage{Op: op, Extra: params}
	if len(params) > 0 {
		s.Operand = params[0]
	}
	return s
}

// CheckStages validates every stage before anything is resolved.
func CheckStages(stages ...Stage) error {
	for _, s := range stages {
		if err := s.Op.Check(len(s.Extra)); err != nil {
			return err
		}
	}
	return nil
}

// Convert converts parameters to the compute type once per call.
func Convert[T Float](params []float64) []T {
	if len(params) == 0 {
		return nil
	}
	out := make([]T, len(params))
	for i, p := range params {
		out[i] = T(p)
	}
	return out
}

// Build resolves and binds every stage and composes them in order.
func Build[T Float](stages ...Stage) (Kernel[T], error) {
	if err := CheckStages(stages...); err != nil {
		return nil, err
	}
	var k Kernel[T]
	for _, s := range stages {
		f, err := Resolve[T](s.Op)
		if err != nil {
			return nil, err
		}
		bound := Bind(f, T(s.Operand), Convert[T](s.Extra))
		if k == nil {
			k = bound
			continue
		}
		k = Compose(k, bound)
	}
	if k == nil {
		return func(x T) T { return x }, nil
	}
	return k, nil
}

// ResolvePair resolves a and b once and returns b(a(x)), each bound to its
// own parameter array.
func ResolvePair[T Float](a, b Code, paramsA, paramsB []float64) (Kernel[T], error) {
	return Build[T](ParamStage(a, paramsA), ParamStage(b, paramsB))
}
