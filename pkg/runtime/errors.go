package runtime

import (
	"fmt"

	"balloon/interpreter-go/pkg/ast"
)

// RuntimeError is the closed set of evaluation failures. The same kinds,
// minus InsideFunctionCall, double as static issues in the type checker,
// which is why the type context fields are type names rather than value
// kinds.
type RuntimeError interface {
	error
	runtimeError()
}

type ReferenceError struct {
	Name string
}

func (e ReferenceError) Error() string {
	return fmt.Sprintf("reference to undeclared name '%s'", e.Name)
}

type UndeclaredAssignment struct {
	Name string
}

func (e UndeclaredAssignment) Error() string {
	return fmt.Sprintf("assignment to undeclared name '%s'", e.Name)
}

// NoneError reports a void result at a value-required site. Callee is empty
// when the void-producing call had no identifier callee.
type NoneError struct {
	Callee string
}

func (e NoneError) Error() string {
	if e.Callee != "" {
		return fmt.Sprintf("call to '%s' produced no value where one was required", e.Callee)
	}
	return "call produced no value where one was required"
}

type IndexOutOfBounds struct {
	Index int64
}

func (e IndexOutOfBounds) Error() string {
	return fmt.Sprintf("index %d out of bounds", e.Index)
}

type NonIntegralSubscript struct {
	Type string
}

func (e NonIntegralSubscript) Error() string {
	return fmt.Sprintf("subscript must be an integer, got %s", e.Type)
}

type SubscriptOnNonSubscriptable struct {
	Type string
}

func (e SubscriptOnNonSubscriptable) Error() string {
	return fmt.Sprintf("%s is not subscriptable", e.Type)
}

type CallToNonFunction struct {
	Callee string // empty when the callee was not an identifier
	Type   string
}

func (e CallToNonFunction) Error() string {
	if e.Callee != "" {
		return fmt.Sprintf("'%s' is a %s, not a function", e.Callee, e.Type)
	}
	return fmt.Sprintf("cannot call a %s", e.Type)
}

type ArgumentLength struct {
	Callee string // empty when the callee was not an identifier
}

func (e ArgumentLength) Error() string {
	if e.Callee != "" {
		return fmt.Sprintf("wrong number of arguments in call to '%s'", e.Callee)
	}
	return "wrong number of arguments in call"
}

type UnaryTypeError struct {
	Op   string
	Type string
}

func (e UnaryTypeError) Error() string {
	return fmt.Sprintf("unary '%s' is not defined for %s", e.Op, e.Type)
}

type BinaryTypeError struct {
	Op    string
	Left  string
	Right string
}

func (e BinaryTypeError) Error() string {
	return fmt.Sprintf("'%s' is not defined for %s and %s", e.Op, e.Left, e.Right)
}

// InsideFunctionCall wraps an error raised within a called function body,
// preserving the inner position while the wrapper is reported at the call
// site.
type InsideFunctionCall struct {
	Inner *PositionedError
}

func (e InsideFunctionCall) Error() string {
	return fmt.Sprintf("inside function call: %s", e.Inner.Error())
}

func (e InsideFunctionCall) Unwrap() error { return e.Inner }

func (ReferenceError) runtimeError()              {}
func (UndeclaredAssignment) runtimeError()        {}
func (NoneError) runtimeError()                   {}
func (IndexOutOfBounds) runtimeError()            {}
func (NonIntegralSubscript) runtimeError()        {}
func (SubscriptOnNonSubscriptable) runtimeError() {}
func (CallToNonFunction) runtimeError()           {}
func (ArgumentLength) runtimeError()              {}
func (UnaryTypeError) runtimeError()              {}
func (BinaryTypeError) runtimeError()             {}
func (InsideFunctionCall) runtimeError()          {}

// PositionedError pairs a runtime error with the source span it was raised
// at. Every error that escapes the evaluator is positioned.
type PositionedError struct {
	Err  RuntimeError
	Span ast.Span
}

func NewPositionedError(err RuntimeError, span ast.Span) *PositionedError {
	return &PositionedError{Err: err, Span: span}
}

func (e *PositionedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Err.Error())
}

func (e *PositionedError) Unwrap() error { return e.Err }

// Origin walks InsideFunctionCall wrappers down to the innermost positioned
// error, the one carrying the position the failure actually occurred at.
func (e *PositionedError) Origin() *PositionedError {
	cur := e
	for {
		inner, ok := cur.Err.(InsideFunctionCall)
		if !ok {
			return cur
		}
		cur = inner.Inner
	}
}
