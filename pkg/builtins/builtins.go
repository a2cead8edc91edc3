// Package builtins is the registry of native functions consulted by both
// the evaluator (which installs them into the root environment) and the
// type checker (which uses the void/returning classification and call
// signatures as its signature table).
package builtins

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"balloon/interpreter-go/pkg/runtime"
)

// Output receives everything println writes. Tests swap it for a buffer.
var Output io.Writer = os.Stdout

// Builtin describes one registered native function.
type Builtin struct {
	Name string
	Void bool
	Sign runtime.CallSign

	voidImpl      runtime.NativeVoidFunc
	returningImpl runtime.NativeReturningFunc
}

// Function wraps the builtin as a callable runtime value.
func (b Builtin) Function() *runtime.FunctionValue {
	if b.Void {
		return runtime.NewNativeVoid(b.Name, b.Sign, b.voidImpl)
	}
	return runtime.NewNativeReturning(b.Name, b.Sign, b.returningImpl)
}

var registry = map[string]Builtin{
	"println": {
		Name:     "println",
		Void:     true,
		Sign:     runtime.CallSign{Variadic: true},
		voidImpl: printlnImpl,
	},
	"len": {
		Name:          "len",
		Sign:          runtime.CallSign{NumParams: 1},
		returningImpl: lenImpl,
	},
}

// Lookup returns the builtin registered under name.
func Lookup(name string) (Builtin, bool) {
	b, ok := registry[name]
	return b, ok
}

// Names lists the registered builtins in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Install declares every builtin into env, normally the root environment.
func Install(env *runtime.Environment) {
	for _, name := range Names() {
		b := registry[name]
		env.Declare(name, b.Function())
	}
}

func printlnImpl(args []runtime.Value) runtime.RuntimeError {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, runtime.ToString(arg))
	}
	fmt.Fprintln(Output, strings.Join(parts, " "))
	return nil
}

func lenImpl(args []runtime.Value) (runtime.Value, runtime.RuntimeError) {
	switch v := args[0].(type) {
	case runtime.StringValue:
		return runtime.IntegerOf(int64(utf8.RuneCountInString(v.Val))), nil
	case *runtime.TupleValue:
		return runtime.IntegerOf(int64(len(v.Elements))), nil
	default:
		return nil, runtime.UnaryTypeError{Op: "len", Type: v.Kind().String()}
	}
}
