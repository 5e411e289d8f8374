// Package interp implements the tree-walking evaluator of spec.md
// §4.4: environments, runtime values, callables, classes, instances,
// and the top-level interpret loop.
package interp

import (
	"fmt"
	"strconv"

	"github.com/sdecook/golox/internal/ast"
	"github.com/sdecook/golox/internal/loxerr"
	"github.com/sdecook/golox/internal/token"
)

// Object is a Lox runtime value. It is always one of: nil, bool,
// float64, string, *Function, *NativeFunction, *Class, or *Instance.
// A plain `any` (rather than the book's wrapper-object hierarchy) is
// the idiomatic Go representation for a closed, dynamically-typed
// value set — see DESIGN.md.
type Object = any

// Callable is anything invocable with `(args...)`. paren is the call's
// closing ')' token, passed through for natives that need to locate a
// runtime error at the call site.
type Callable interface {
	Call(in *Interpreter, args []Object, paren token.Token) (Object, error)
	Arity() int
}

// Function is a user-defined function or method value: a declaration
// closed over the environment active at its definition.
type Function struct {
	Decl          *ast.Function
	Closure       *Environment
	IsInitializer bool
}

// Arity is the number of declared parameters.
func (f *Function) Arity() int { return len(f.Decl.Params) }

func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.Decl.Name.Lexeme) }

// Bind returns a new Function whose closure nests the original one
// with `this` bound to instance, per spec.md §3.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Decl: f.Decl, Closure: env, IsInitializer: f.IsInitializer}
}

// NativeFunction wraps a host-implemented callable (spec.md §4's
// "Native callable" and §6's roster).
type NativeFunction struct {
	Name string
	Arg  int
	Fn   func(in *Interpreter, args []Object, paren token.Token) (Object, error)
}

func (n *NativeFunction) Arity() int { return n.Arg }

func (n *NativeFunction) Call(in *Interpreter, args []Object, paren token.Token) (Object, error) {
	return n.Fn(in, args, paren)
}

func (n *NativeFunction) String() string { return fmt.Sprintf("<native fn %s>", n.Name) }

// Class is a Lox class: a name, an optional superclass, and its own
// methods (not including inherited ones — FindMethod walks the
// superclass chain).
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) String() string { return fmt.Sprintf("<%s class>", c.Name) }

// FindMethod searches own methods, then the superclass chain.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is the arity of `init` if present, else 0.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance, running `init` (if any) against it.
func (c *Class) Call(in *Interpreter, args []Object, paren token.Token) (Object, error) {
	instance := &Instance{Class: c, Fields: make(map[string]Object)}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(in, args, paren); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a heap-allocated object: a class pointer plus its own
// fields, per spec.md §3.
type Instance struct {
	Class  *Class
	Fields map[string]Object
}

func (i *Instance) String() string { return fmt.Sprintf("<%s instance>", i.Class.Name) }

// Get resolves a property: own fields first, then a method (bound to
// this instance). A miss is a runtime error, per spec.md §4.4.
func (i *Instance) Get(name token.Token) (Object, error) {
	if value, ok := i.Fields[name.Lexeme]; ok {
		return value, nil
	}
	if method := i.Class.FindMethod(name.Lexeme); method != nil {
		return method.Bind(i), nil
	}
	return nil, loxerr.NewRuntimeError(name, "Undefined property '"+name.Lexeme+"'.")
}

// Set creates or overwrites a field; fields are not declared ahead of
// time (spec.md §4.4).
func (i *Instance) Set(name string, value Object) {
	i.Fields[name] = value
}

// IsTruthy implements spec.md §4.4: nil and false are false; every
// other value is true.
func IsTruthy(v Object) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	default:
		return true
	}
}

// IsEqual implements spec.md §3's value-equality rule.
func IsEqual(a, b Object) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// Stringify renders v the way `print` shows it, per spec.md §4.4.
// `+` never calls it: mixing a string with a non-string is a runtime
// error, not a coercion.
func Stringify(v Object) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
