package evaluator

// Env is a scoped environment for variable bindings with parent-chained
// lookup for lexical scoping. Children hold the only reference to their
// parent; a closure capturing an Env keeps the whole chain reachable for
// as long as the closure itself is.
type Env struct {
	bindings map[string]Value
	parent   *Env
}

// NewEnv creates a new environment with an optional parent scope.
func NewEnv(parent *Env) *Env {
	return &Env{
		bindings: make(map[string]Value),
		parent:   parent,
	}
}

// Child creates a new child scope whose parent is this environment.
func (e *Env) Child() *Env {
	return NewEnv(e)
}

// Declare binds a name in this scope only. It reports false if the name is
// already bound in this same scope; shadowing an outer scope is legal.
func (e *Env) Declare(name string, val Value) bool {
	if _, ok := e.bindings[name]; ok {
		return false
	}
	e.bindings[name] = val
	return true
}

// Assign mutates the binding in the nearest scope owning name, walking the
// parent chain. It reports false if no scope owns the name.
func (e *Env) Assign(name string, val Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.bindings[name]; ok {
			env.bindings[name] = val
			return true
		}
	}
	return false
}

// Lookup resolves a name by walking the parent chain.
func (e *Env) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.bindings[name]; ok {
			return val, true
		}
	}
	return nil, false
}
