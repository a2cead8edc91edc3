package typechecker

import "sort"

// TypeEnvironment mirrors the evaluator's environment nesting with one
// scope per block or call. It is a scope stack rather than a linked chain
// so the whole visible state can be cloned for branch-sensitive checking.
type TypeEnvironment struct {
	scopes []map[string]Type
}

func NewTypeEnvironment() *TypeEnvironment {
	return &TypeEnvironment{}
}

func (e *TypeEnvironment) StartScope() {
	e.scopes = append(e.scopes, make(map[string]Type))
}

func (e *TypeEnvironment) EndScope() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Declare binds a name in the innermost scope only.
func (e *TypeEnvironment) Declare(name string, typ Type) {
	e.scopes[len(e.scopes)-1][name] = typ
}

// Set updates the first scope, innermost to outermost, containing name and
// reports whether one was found.
func (e *TypeEnvironment) Set(name string, typ Type) bool {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i][name]; ok {
			e.scopes[i][name] = typ
			return true
		}
	}
	return false
}

// Lookup searches innermost to outermost; the first match wins.
func (e *TypeEnvironment) Lookup(name string) (Type, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if typ, ok := e.scopes[i][name]; ok {
			return typ, true
		}
	}
	return TypeAny, false
}

// AllKeys returns every visible name across the scope stack, sorted so
// branch-merge diagnostics come out in a deterministic order.
func (e *TypeEnvironment) AllKeys() []string {
	seen := make(map[string]struct{})
	for _, scope := range e.scopes {
		for name := range scope {
			seen[name] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for name := range seen {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}

// Clone deep-copies the scope stack. Branch checking runs each arm against
// its own clone so neither arm's declarations or mutations leak into the
// other before the merge.
func (e *TypeEnvironment) Clone() *TypeEnvironment {
	scopes := make([]map[string]Type, len(e.scopes))
	for i, scope := range e.scopes {
		copied := make(map[string]Type, len(scope))
		for name, typ := range scope {
			copied[name] = typ
		}
		scopes[i] = copied
	}
	return &TypeEnvironment{scopes: scopes}
}
