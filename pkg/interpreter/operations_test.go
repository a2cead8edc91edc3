package interpreter

import (
	"testing"

	"balloon/interpreter-go/pkg/ast"
	"balloon/interpreter-go/pkg/runtime"
)

func TestAddDispatch(t *testing.T) {
	cases := []struct {
		name string
		a, b runtime.Value
		want runtime.Value
	}{
		{"numbers", runtime.IntegerOf(1), runtime.IntegerOf(2), runtime.IntegerOf(3)},
		{"mixed numbers", runtime.IntegerOf(1), runtime.FloatOf(0.5), runtime.FloatOf(1.5)},
		{"strings", runtime.StringValue{Val: "a"}, runtime.StringValue{Val: "b"}, runtime.StringValue{Val: "ab"}},
		{"string coerces right", runtime.StringValue{Val: "x"}, runtime.IntegerOf(1), runtime.StringValue{Val: "x1"}},
		{"string coerces left", runtime.IntegerOf(1), runtime.StringValue{Val: "x"}, runtime.StringValue{Val: "1x"}},
		{"tuples concatenate", runtime.NewTuple(runtime.IntegerOf(1)), runtime.NewTuple(runtime.IntegerOf(2)), runtime.NewTuple(runtime.IntegerOf(1), runtime.IntegerOf(2))},
	}
	for _, tc := range cases {
		got, err := add(tc.a, tc.b)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !runtime.Equal(got, tc.want) {
			t.Fatalf("%s: got %#v, want %#v", tc.name, got, tc.want)
		}
	}
}

func TestAddTypeError(t *testing.T) {
	_, err := add(runtime.BoolValue{Val: true}, runtime.IntegerOf(1))
	bte, ok := err.(runtime.BinaryTypeError)
	if !ok {
		t.Fatalf("expected BinaryTypeError, got %#v", err)
	}
	if bte.Op != "+" || bte.Left != "Bool" || bte.Right != "Number" {
		t.Fatalf("unexpected error context %#v", bte)
	}
}

func TestArithmeticRequiresNumbers(t *testing.T) {
	ops := []func(a, b runtime.Value) (runtime.Value, runtime.RuntimeError){
		subtract, multiply, divide, floorDivide,
	}
	for _, op := range ops {
		if _, err := op(runtime.StringValue{Val: "a"}, runtime.IntegerOf(1)); err == nil {
			t.Fatalf("expected type error for string operand")
		}
	}
	got, err := floorDivide(runtime.IntegerOf(-7), runtime.IntegerOf(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !runtime.Equal(got, runtime.IntegerOf(-4)) {
		t.Fatalf("-7 // 2: got %#v", got)
	}
}

func TestComparisons(t *testing.T) {
	got, err := lessThan(runtime.IntegerOf(1), runtime.FloatOf(1.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !runtime.Equal(got, runtime.BoolValue{Val: true}) {
		t.Fatalf("1 < 1.5: got %#v", got)
	}
	if _, err := greaterThanOrEqual(runtime.BoolValue{Val: true}, runtime.IntegerOf(0)); err == nil {
		t.Fatalf("expected type error comparing bool")
	}
}

func TestStrictEqualsNeverErrors(t *testing.T) {
	got, err := binaryOperation(ast.OpStrictEquals, runtime.IntegerOf(1), runtime.StringValue{Val: "1"})
	if err != nil {
		t.Fatalf("cross-kind equality must not error: %v", err)
	}
	if !runtime.Equal(got, runtime.BoolValue{Val: false}) {
		t.Fatalf("cross-kind equality must be false, got %#v", got)
	}
}

func TestUnaryMinus(t *testing.T) {
	got, err := unaryMinus(runtime.IntegerOf(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !runtime.Equal(got, runtime.IntegerOf(-4)) {
		t.Fatalf("got %#v", got)
	}
	_, err = unaryMinus(runtime.StringValue{Val: "x"})
	ute, ok := err.(runtime.UnaryTypeError)
	if !ok || ute.Op != "-" || ute.Type != "String" {
		t.Fatalf("expected UnaryTypeError on String, got %#v", err)
	}
}
