package interp

import (
	"github.com/sdecook/golox/internal/loxerr"
	"github.com/sdecook/golox/internal/token"
)

// Environment is a name→value binding with an optional enclosing
// scope, forming the lexical chain described in spec.md §3. Go's
// garbage collector owns the lifetime of the chain — a closure simply
// holds a reference to the Environment it captured, including any
// cycles formed by a function referencing its own enclosing
// environment (spec.md §5).
type Environment struct {
	enclosing *Environment
	values    map[string]Object
}

// NewEnvironment returns an Environment nested inside enclosing, or a
// top-level one when enclosing is nil.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: make(map[string]Object)}
}

// Define binds name to value in this environment, overwriting any
// existing binding — convenient for a REPL re-declaring a name.
func (e *Environment) Define(name string, value Object) {
	e.values[name] = value
}

// Get looks up name, walking outward through enclosing environments.
func (e *Environment) Get(name token.Token) (Object, error) {
	for env := e; env != nil; env = env.enclosing {
		if value, ok := env.values[name.Lexeme]; ok {
			return value, nil
		}
	}
	return nil, loxerr.NewRuntimeError(name, "Undefined variable '"+name.Lexeme+"'.")
}

// Assign rebinds an existing name, walking outward through enclosing
// environments; assigning an undeclared name is a runtime error.
func (e *Environment) Assign(name token.Token, value Object) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value
			return nil
		}
	}
	return loxerr.NewRuntimeError(name, "Undefined variable '"+name.Lexeme+"'.")
}

// GetAt skips exactly distance hops before looking up name, per
// spec.md §3's "get_at(distance, name)" — used when the resolver
// recorded a depth for the access.
func (e *Environment) GetAt(distance int, name string) Object {
	env := e.ancestor(distance)
	return env.values[name]
}

// AssignAt skips exactly distance hops before assigning name.
func (e *Environment) AssignAt(distance int, name token.Token, value Object) {
	env := e.ancestor(distance)
	env.values[name.Lexeme] = value
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}
