package lang

import (
	"iter"
	"maps"
	"slices"
)

// entry is one name in a scope: a bound value or a function definition.
type entry struct {
	fn    *FuncDef
	value Value
}

func (e entry) isFunc() bool { return e.fn != nil }

// Env is a lexical scope mapping names to bindings and functions, chained to
// an optional parent scope.
//
// Names are unique within one scope: defining a binding replaces a function
// of the same name in that scope, and vice versa. Lookups walk outward from
// the innermost scope and stop at the first entry of the requested kind, so
// binding and function resolution are independent of each other.
//
// A child scope never modifies its parent. Env is not safe for concurrent
// use.
type Env struct {
	parent *Env
	named  map[string]entry
	opts   *options
	depth  int // active function calls through this scope
}

// NewEnv returns an empty top-level scope configured with opts.
func NewEnv(opts ...Option) *Env {
	o := makeOptions(opts...)

	return &Env{
		named: make(map[string]entry),
		opts:  &o,
	}
}

// Child returns a new empty scope whose parent is e.
func (e *Env) Child() *Env {
	return &Env{
		parent: e,
		named:  make(map[string]entry),
		opts:   e.opts,
		depth:  e.depth,
	}
}

// Parent returns the enclosing scope, or nil for a top-level scope.
func (e *Env) Parent() *Env { return e.parent }

// AddBinding binds name to v in this scope.
func (e *Env) AddBinding(name string, v Value) {
	e.named[name] = entry{value: v}
}

// AddFunc defines a function in this scope.
func (e *Env) AddFunc(name string, params []string, body Statement) {
	e.named[name] = entry{fn: &FuncDef{Name: name, Params: params, Body: body}}
}

// GetBinding returns the value bound to name in the nearest scope that binds
// it.
func (e *Env) GetBinding(name string) (Value, error) {
	for s := e; s != nil; s = s.parent {
		if ent, ok := s.named[name]; ok && !ent.isFunc() {
			return ent.value, nil
		}
	}

	return Unit, ErrBindingNotFound.Wrapf("`%s`", name)
}

// GetFunc returns the definition of name in the nearest scope that defines
// it as a function.
func (e *Env) GetFunc(name string) (*FuncDef, error) {
	for s := e; s != nil; s = s.parent {
		if ent, ok := s.named[name]; ok && ent.isFunc() {
			return ent.fn, nil
		}
	}

	return nil, ErrFunctionNotFound.Wrapf("`%s`", name)
}

// Bindings iterates over the bindings defined directly in this scope in
// name order.
func (e *Env) Bindings() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, name := range slices.Sorted(maps.Keys(e.named)) {
			if ent := e.named[name]; !ent.isFunc() {
				if !yield(name, ent.value) {
					return
				}
			}
		}
	}
}

// Funcs iterates over the functions defined directly in this scope in name
// order.
func (e *Env) Funcs() iter.Seq[*FuncDef] {
	return func(yield func(*FuncDef) bool) {
		for _, name := range slices.Sorted(maps.Keys(e.named)) {
			if ent := e.named[name]; ent.isFunc() {
				if !yield(ent.fn) {
					return
				}
			}
		}
	}
}

// Names returns every name visible from e, innermost scope first, without
// duplicates.
func (e *Env) Names() []string {
	seen := make(map[string]struct{})

	var names []string

	for s := e; s != nil; s = s.parent {
		for _, name := range slices.Sorted(maps.Keys(s.named)) {
			if _, ok := seen[name]; ok {
				continue
			}

			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	return names
}

// Len returns the number of names defined directly in this scope.
func (e *Env) Len() int { return len(e.named) }
