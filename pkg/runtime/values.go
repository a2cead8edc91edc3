package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"balloon/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category. Integer and Float are
// sub-kinds of Number rather than kinds of their own; every dispatch site
// that cares about numeric width goes through NumberValue.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindString
	KindTuple
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	case KindTuple:
		return "Tuple"
	case KindFunction:
		return "Function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Numbers
//-----------------------------------------------------------------------------

// NumberValue carries either an integer or a float. Mixed-mode arithmetic
// promotes the integer side to float.
type NumberValue struct {
	IsFloat bool
	Int     int64
	Float   float64
}

func (NumberValue) Kind() Kind { return KindNumber }

func IntegerOf(v int64) NumberValue { return NumberValue{Int: v} }

func FloatOf(v float64) NumberValue { return NumberValue{IsFloat: true, Float: v} }

// AsFloat widens the number to float regardless of sub-kind.
func (n NumberValue) AsFloat() float64 {
	if n.IsFloat {
		return n.Float
	}
	return float64(n.Int)
}

func (n NumberValue) Add(other NumberValue) NumberValue {
	if n.IsFloat || other.IsFloat {
		return FloatOf(n.AsFloat() + other.AsFloat())
	}
	return IntegerOf(n.Int + other.Int)
}

func (n NumberValue) Sub(other NumberValue) NumberValue {
	if n.IsFloat || other.IsFloat {
		return FloatOf(n.AsFloat() - other.AsFloat())
	}
	return IntegerOf(n.Int - other.Int)
}

func (n NumberValue) Mul(other NumberValue) NumberValue {
	if n.IsFloat || other.IsFloat {
		return FloatOf(n.AsFloat() * other.AsFloat())
	}
	return IntegerOf(n.Int * other.Int)
}

func (n NumberValue) Div(other NumberValue) NumberValue {
	if n.IsFloat || other.IsFloat {
		return FloatOf(n.AsFloat() / other.AsFloat())
	}
	return IntegerOf(n.Int / other.Int)
}

// FloorDiv rounds the quotient toward negative infinity, for integers as
// well as floats.
func (n NumberValue) FloorDiv(other NumberValue) NumberValue {
	if n.IsFloat || other.IsFloat {
		return FloatOf(math.Floor(n.AsFloat() / other.AsFloat()))
	}
	q := n.Int / other.Int
	if (n.Int%other.Int != 0) && ((n.Int < 0) != (other.Int < 0)) {
		q--
	}
	return IntegerOf(q)
}

func (n NumberValue) Neg() NumberValue {
	if n.IsFloat {
		return FloatOf(-n.Float)
	}
	return IntegerOf(-n.Int)
}

// Cmp returns -1, 0 or 1; mixed sub-kinds compare in float space.
func (n NumberValue) Cmp(other NumberValue) int {
	if !n.IsFloat && !other.IsFloat {
		switch {
		case n.Int < other.Int:
			return -1
		case n.Int > other.Int:
			return 1
		}
		return 0
	}
	a, b := n.AsFloat(), other.AsFloat()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (n NumberValue) Equal(other NumberValue) bool { return n.Cmp(other) == 0 }

//-----------------------------------------------------------------------------
// Scalars and tuples
//-----------------------------------------------------------------------------

type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind { return KindBool }

type StringValue struct {
	Val string
}

func (StringValue) Kind() Kind { return KindString }

type TupleValue struct {
	Elements []Value
}

func (*TupleValue) Kind() Kind { return KindTuple }

func NewTuple(elements ...Value) *TupleValue {
	return &TupleValue{Elements: elements}
}

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// FunctionVariant is the closed set of callable shapes. Void-ness has to be
// known statically, before the call produces a value, so this is a tagged
// union with one dispatcher rather than an open interface.
type FunctionVariant int

const (
	FunctionNativeVoid FunctionVariant = iota
	FunctionNativeReturning
	FunctionUser
)

// CallSign describes a callable's calling convention.
type CallSign struct {
	NumParams  int
	Variadic   bool
	ParamTypes []*ast.TypeAnnotation
}

// Native callbacks report failures as RuntimeError so the evaluator can
// position them at the call site.
type NativeVoidFunc func(args []Value) RuntimeError

type NativeReturningFunc func(args []Value) (Value, RuntimeError)

type FunctionValue struct {
	Variant FunctionVariant
	Name    string // empty for anonymous user functions
	Sign    CallSign

	// Native variants.
	Void      NativeVoidFunc
	Returning NativeReturningFunc

	// User variant. Env is the defining environment, captured by shared
	// reference: its scope contents stay live and mutable after capture.
	ParamNames []string
	ReturnType *ast.TypeAnnotation
	Body       *ast.BlockStatement
	Env        *Environment
}

func (*FunctionValue) Kind() Kind { return KindFunction }

func NewNativeVoid(name string, sign CallSign, fn NativeVoidFunc) *FunctionValue {
	return &FunctionValue{Variant: FunctionNativeVoid, Name: name, Sign: sign, Void: fn}
}

func NewNativeReturning(name string, sign CallSign, fn NativeReturningFunc) *FunctionValue {
	return &FunctionValue{Variant: FunctionNativeReturning, Name: name, Sign: sign, Returning: fn}
}

func NewUserFunction(name string, sign CallSign, paramNames []string, returnType *ast.TypeAnnotation, body *ast.BlockStatement, env *Environment) *FunctionValue {
	return &FunctionValue{
		Variant:    FunctionUser,
		Name:       name,
		Sign:       sign,
		ParamNames: paramNames,
		ReturnType: returnType,
		Body:       body,
		Env:        env,
	}
}

//-----------------------------------------------------------------------------
// Truthiness, equality, rendering
//-----------------------------------------------------------------------------

// Truthy is total: numbers are truthy when non-zero, strings and tuples
// when non-empty, functions always.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case BoolValue:
		return val.Val
	case NumberValue:
		if val.IsFloat {
			return val.Float != 0
		}
		return val.Int != 0
	case StringValue:
		return val.Val != ""
	case *TupleValue:
		return len(val.Elements) > 0
	case *FunctionValue:
		return true
	default:
		return false
	}
}

// Equal is structural. Cross-kind comparisons are false, never an error;
// mixed integer/float numbers compare after promotion. Functions compare by
// identity.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Equal(bv)
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case *TupleValue:
		bv, ok := b.(*TupleValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *FunctionValue:
		bv, ok := b.(*FunctionValue)
		return ok && av == bv
	default:
		return false
	}
}

// ToString renders a value as text, the conversion used by string
// concatenation and by println.
func ToString(v Value) string {
	switch val := v.(type) {
	case NumberValue:
		if val.IsFloat {
			return strconv.FormatFloat(val.Float, 'g', -1, 64)
		}
		return strconv.FormatInt(val.Int, 10)
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case StringValue:
		return val.Val
	case *TupleValue:
		parts := make([]string, 0, len(val.Elements))
		for _, el := range val.Elements {
			parts = append(parts, ToString(el))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *FunctionValue:
		if val.Name != "" {
			return "<function " + val.Name + ">"
		}
		return "<function>"
	default:
		return fmt.Sprintf("%#v", v)
	}
}
