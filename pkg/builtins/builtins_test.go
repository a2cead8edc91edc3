package builtins

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"balloon/interpreter-go/pkg/runtime"
)

func TestLookupAndNames(t *testing.T) {
	if diff := cmp.Diff([]string{"len", "println"}, Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	b, ok := Lookup("println")
	if !ok || !b.Void || !b.Sign.Variadic {
		t.Fatalf("println misregistered: %#v", b)
	}
	if _, ok := Lookup("printf"); ok {
		t.Fatalf("unregistered name must miss")
	}
}

func TestInstallDeclaresCallables(t *testing.T) {
	env := runtime.NewRootEnvironment()
	Install(env)

	for _, name := range Names() {
		v, ok := env.Get(name)
		if !ok {
			t.Fatalf("%s not installed", name)
		}
		fn, ok := v.(*runtime.FunctionValue)
		if !ok || fn.Name != name {
			t.Fatalf("%s installed as %#v", name, v)
		}
	}
}

func TestPrintlnJoinsWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	old := Output
	Output = &buf
	defer func() { Output = old }()

	b, _ := Lookup("println")
	err := b.Function().Void([]runtime.Value{
		runtime.IntegerOf(1),
		runtime.StringValue{Val: "two"},
		runtime.BoolValue{Val: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "1 two true\n" {
		t.Fatalf("println wrote %q", got)
	}
}

func TestLen(t *testing.T) {
	b, _ := Lookup("len")
	impl := b.Function().Returning

	got, err := impl([]runtime.Value{runtime.StringValue{Val: "héllo"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !runtime.Equal(got, runtime.IntegerOf(5)) {
		t.Fatalf("len counts runes, got %#v", got)
	}

	got, err = impl([]runtime.Value{runtime.NewTuple(runtime.IntegerOf(1), runtime.IntegerOf(2))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !runtime.Equal(got, runtime.IntegerOf(2)) {
		t.Fatalf("len counts elements, got %#v", got)
	}

	_, err = impl([]runtime.Value{runtime.IntegerOf(7)})
	ute, ok := err.(runtime.UnaryTypeError)
	if !ok || ute.Op != "len" || ute.Type != "Number" {
		t.Fatalf("expected UnaryTypeError on Number, got %#v", err)
	}
}
