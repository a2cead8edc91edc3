package runtime

import "sort"

// Environment provides lexical scoping for balloon runtime values. Several
// live references, including closures that outlive their defining block,
// may share and mutate the same scope.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewRootEnvironment creates an empty, parentless scope.
func NewRootEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// CreateChild returns a new scope sharing this environment as its parent.
func (e *Environment) CreateChild() *Environment {
	return &Environment{values: make(map[string]Value), parent: e}
}

// Parent exposes the lexical parent (nil at the root).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Declare inserts or overwrites a binding in the innermost scope only. A
// declaration always shadows and never touches outer scopes.
func (e *Environment) Declare(name string, value Value) {
	e.values[name] = value
}

// Get retrieves a binding, searching innermost to outermost; the first
// match wins.
func (e *Environment) Get(name string) (Value, bool) {
	if v, ok := e.values[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, false
}

// Set mutates the first scope, innermost to outermost, that contains name.
// It reports whether a target was found; callers use a false return to
// reject assignment to an undeclared name.
func (e *Environment) Set(name string, value Value) bool {
	if _, ok := e.values[name]; ok {
		e.values[name] = value
		return true
	}
	if e.parent != nil {
		return e.parent.Set(name, value)
	}
	return false
}

// Keys returns this scope's bindings in sorted order (useful for
// determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the current scope's bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}
