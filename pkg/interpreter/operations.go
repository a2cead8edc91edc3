package interpreter

import (
	"balloon/interpreter-go/pkg/ast"
	"balloon/interpreter-go/pkg/runtime"
)

// Pure operator implementations over runtime values. Each returns a typed
// error on operand mismatch; positioning is the evaluator's job.

func unaryMinus(v runtime.Value) (runtime.Value, runtime.RuntimeError) {
	if n, ok := v.(runtime.NumberValue); ok {
		return n.Neg(), nil
	}
	return nil, runtime.UnaryTypeError{Op: string(ast.OpNeg), Type: v.Kind().String()}
}

func add(a, b runtime.Value) (runtime.Value, runtime.RuntimeError) {
	if an, ok := a.(runtime.NumberValue); ok {
		if bn, ok := b.(runtime.NumberValue); ok {
			return an.Add(bn), nil
		}
	}
	if at, ok := a.(*runtime.TupleValue); ok {
		if bt, ok := b.(*runtime.TupleValue); ok {
			elements := make([]runtime.Value, 0, len(at.Elements)+len(bt.Elements))
			elements = append(elements, at.Elements...)
			elements = append(elements, bt.Elements...)
			return &runtime.TupleValue{Elements: elements}, nil
		}
	}
	// A string on either side coerces the other operand to text.
	if as, ok := a.(runtime.StringValue); ok {
		return runtime.StringValue{Val: as.Val + runtime.ToString(b)}, nil
	}
	if bs, ok := b.(runtime.StringValue); ok {
		return runtime.StringValue{Val: runtime.ToString(a) + bs.Val}, nil
	}
	return nil, binaryTypeError(ast.OpAdd, a, b)
}

func subtract(a, b runtime.Value) (runtime.Value, runtime.RuntimeError) {
	return arithmetic(ast.OpSub, a, b, runtime.NumberValue.Sub)
}

func multiply(a, b runtime.Value) (runtime.Value, runtime.RuntimeError) {
	return arithmetic(ast.OpMul, a, b, runtime.NumberValue.Mul)
}

func divide(a, b runtime.Value) (runtime.Value, runtime.RuntimeError) {
	return arithmetic(ast.OpDiv, a, b, runtime.NumberValue.Div)
}

func floorDivide(a, b runtime.Value) (runtime.Value, runtime.RuntimeError) {
	return arithmetic(ast.OpFloorDiv, a, b, runtime.NumberValue.FloorDiv)
}

func arithmetic(op ast.BinaryOp, a, b runtime.Value, apply func(runtime.NumberValue, runtime.NumberValue) runtime.NumberValue) (runtime.Value, runtime.RuntimeError) {
	an, aok := a.(runtime.NumberValue)
	bn, bok := b.(runtime.NumberValue)
	if !aok || !bok {
		return nil, binaryTypeError(op, a, b)
	}
	return apply(an, bn), nil
}

func lessThan(a, b runtime.Value) (runtime.Value, runtime.RuntimeError) {
	return comparison(ast.OpLessThan, a, b, func(c int) bool { return c < 0 })
}

func lessThanOrEqual(a, b runtime.Value) (runtime.Value, runtime.RuntimeError) {
	return comparison(ast.OpLessThanOrEqual, a, b, func(c int) bool { return c <= 0 })
}

func greaterThan(a, b runtime.Value) (runtime.Value, runtime.RuntimeError) {
	return comparison(ast.OpGreaterThan, a, b, func(c int) bool { return c > 0 })
}

func greaterThanOrEqual(a, b runtime.Value) (runtime.Value, runtime.RuntimeError) {
	return comparison(ast.OpGreaterThanOrEqual, a, b, func(c int) bool { return c >= 0 })
}

func comparison(op ast.BinaryOp, a, b runtime.Value, accept func(int) bool) (runtime.Value, runtime.RuntimeError) {
	an, aok := a.(runtime.NumberValue)
	bn, bok := b.(runtime.NumberValue)
	if !aok || !bok {
		return nil, binaryTypeError(op, a, b)
	}
	return runtime.BoolValue{Val: accept(an.Cmp(bn))}, nil
}

func binaryOperation(op ast.BinaryOp, a, b runtime.Value) (runtime.Value, runtime.RuntimeError) {
	switch op {
	case ast.OpAdd:
		return add(a, b)
	case ast.OpSub:
		return subtract(a, b)
	case ast.OpMul:
		return multiply(a, b)
	case ast.OpDiv:
		return divide(a, b)
	case ast.OpFloorDiv:
		return floorDivide(a, b)
	case ast.OpLessThan:
		return lessThan(a, b)
	case ast.OpLessThanOrEqual:
		return lessThanOrEqual(a, b)
	case ast.OpGreaterThan:
		return greaterThan(a, b)
	case ast.OpGreaterThanOrEqual:
		return greaterThanOrEqual(a, b)
	case ast.OpStrictEquals:
		// Cross-kind equality is false, never an error.
		return runtime.BoolValue{Val: runtime.Equal(a, b)}, nil
	default:
		return nil, binaryTypeError(op, a, b)
	}
}

func binaryTypeError(op ast.BinaryOp, a, b runtime.Value) runtime.RuntimeError {
	return runtime.BinaryTypeError{Op: string(op), Left: a.Kind().String(), Right: b.Kind().String()}
}
