package interp

import "fmt"

// Env is an explicit, finite scope. The chain a script can see bottoms out
// at whatever the caller built; lookups never fall through to anything else.
type Env struct {
	vars   map[string]Value
	parent *Env
}

// NewEnv returns a scope nested inside parent. A nil parent makes a root
// scope.
func NewEnv(parent *Env) *Env {
	return &Env{vars: make(map[string]Value), parent: parent}
}

// Bind installs a binding in this scope, shadowing any outer one.
func (e *Env) Bind(name string, v Value) {
	e.vars[name] = v
}

// Get resolves name through the scope chain.
func (e *Env) Get(name string) (Value, error) {
	for scope := e; scope != nil; scope = scope.parent {
		if v, ok := scope.vars[name]; ok {
			return v, nil
		}
	}
	return None, fmt.Errorf("name %q is not defined", name)
}

// Set updates the nearest enclosing binding of name, or defines it here if
// no scope binds it yet.
func (e *Env) Set(name string, v Value) {
	for scope := e; scope != nil; scope = scope.parent {
		if _, ok := scope.vars[name]; ok {
			scope.vars[name] = v
			return
		}
	}
	e.vars[name] = v
}
