package interp

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sdecook/golox/internal/ast"
	"github.com/sdecook/golox/internal/loxerr"
	"github.com/sdecook/golox/internal/resolver"
	"github.com/sdecook/golox/internal/token"
)

// Interpreter walks resolved statements, owning the global
// environment, the currently-active environment, and the resolver's
// side-table, per spec.md §4.4.
type Interpreter struct {
	Globals *Environment
	env     *Environment
	locals  resolver.Locals
	sink    *loxerr.Sink
	stdout  io.Writer
}

// New returns an Interpreter printing to stdout and reading `input()`
// from stdin, reporting runtime errors to sink.
func New(sink *loxerr.Sink, stdin io.Reader, stdout io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	defineNatives(globals, bufio.NewReader(stdin))
	return &Interpreter{Globals: globals, env: globals, sink: sink, stdout: stdout}
}

// Interpret runs stmts against locals, the resolver's side-table. A
// runtime error is reported via the sink and stops the run, matching
// spec.md §4.4/§7's tier-3 behavior; it never panics. Entries from
// earlier calls are kept, so functions declared by a previous REPL
// line still find their resolved local depths.
func (in *Interpreter) Interpret(stmts []ast.Stmt, locals resolver.Locals) {
	if in.locals == nil {
		in.locals = make(resolver.Locals, len(locals))
	}
	for expr, depth := range locals {
		in.locals[expr] = depth
	}
	for _, stmt := range stmts {
		if _, err := in.execute(stmt); err != nil {
			if rtErr, ok := err.(*loxerr.RuntimeError); ok {
				in.sink.RuntimeError(rtErr)
			}
			return
		}
	}
}

// execResult carries a statement's outcome: either normal completion
// or a `return` unwinding with its value, replacing the book's
// exception-driven return with an explicit carrier (spec.md §9).
type execResult struct {
	isReturn bool
	value    Object
}

var normalResult = execResult{}

func (in *Interpreter) execute(s ast.Stmt) (execResult, error) {
	switch n := s.(type) {
	case *ast.Block:
		return in.executeBlock(n.Stmts, NewEnvironment(in.env))

	case *ast.Class:
		return in.executeClass(n)

	case *ast.Expression:
		_, err := in.evaluate(n.Expr)
		return normalResult, err

	case *ast.Function:
		fn := &Function{Decl: n, Closure: in.env}
		in.env.Define(n.Name.Lexeme, fn)
		return normalResult, nil

	case *ast.If:
		cond, err := in.evaluate(n.Condition)
		if err != nil {
			return normalResult, err
		}
		if IsTruthy(cond) {
			return in.execute(n.Then)
		} else if n.Else != nil {
			return in.execute(n.Else)
		}
		return normalResult, nil

	case *ast.Print:
		value, err := in.evaluate(n.Expr)
		if err != nil {
			return normalResult, err
		}
		fmt.Fprintln(in.stdout, Stringify(value))
		return normalResult, nil

	case *ast.Return:
		var value Object
		if n.Value != nil {
			v, err := in.evaluate(n.Value)
			if err != nil {
				return normalResult, err
			}
			value = v
		}
		return execResult{isReturn: true, value: value}, nil

	case *ast.Var:
		var value Object
		if n.Init != nil {
			v, err := in.evaluate(n.Init)
			if err != nil {
				return normalResult, err
			}
			value = v
		}
		in.env.Define(n.Name.Lexeme, value)
		return normalResult, nil

	case *ast.While:
		for {
			cond, err := in.evaluate(n.Condition)
			if err != nil {
				return normalResult, err
			}
			if !IsTruthy(cond) {
				return normalResult, nil
			}
			result, err := in.execute(n.Body)
			if err != nil || result.isReturn {
				return result, err
			}
		}
	}
	return normalResult, nil
}

// executeBlock runs stmts with env as the active environment,
// restoring the prior environment on every exit path — normal,
// early return, or runtime error (spec.md §4.4/§5).
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) (execResult, error) {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		result, err := in.execute(stmt)
		if err != nil || result.isReturn {
			return result, err
		}
	}
	return normalResult, nil
}

func (in *Interpreter) executeClass(c *ast.Class) (execResult, error) {
	var superclass *Class
	if c.Superclass != nil {
		sc, err := in.evaluate(c.Superclass)
		if err != nil {
			return normalResult, err
		}
		class, ok := sc.(*Class)
		if !ok {
			return normalResult, loxerr.NewRuntimeError(c.Superclass.Name, "Superclass must be a class.")
		}
		superclass = class
	}

	in.env.Define(c.Name.Lexeme, nil)

	env := in.env
	if c.Superclass != nil {
		env = NewEnvironment(in.env)
		env.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(c.Methods))
	for _, m := range c.Methods {
		methods[m.Name.Lexeme] = &Function{
			Decl:          m,
			Closure:       env,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &Class{Name: c.Name.Lexeme, Superclass: superclass, Methods: methods}

	return normalResult, in.env.Assign(c.Name, class)
}

func (in *Interpreter) evaluate(e ast.Expr) (Object, error) {
	switch n := e.(type) {
	case *ast.Assign:
		value, err := in.evaluate(n.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := in.locals[n]; ok {
			in.env.AssignAt(distance, n.Name, value)
		} else if err := in.Globals.Assign(n.Name, value); err != nil {
			return nil, err
		}
		return value, nil

	case *ast.Binary:
		return in.evalBinary(n)

	case *ast.Call:
		return in.evalCall(n)

	case *ast.Get:
		obj, err := in.evaluate(n.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, loxerr.NewRuntimeError(n.Name, "Only instances have properties.")
		}
		return instance.Get(n.Name)

	case *ast.Grouping:
		return in.evaluate(n.Inner)

	case *ast.Literal:
		return n.Value, nil

	case *ast.Logical:
		left, err := in.evaluate(n.Left)
		if err != nil {
			return nil, err
		}
		if n.Op.Kind == token.Or {
			if IsTruthy(left) {
				return left, nil
			}
		} else if !IsTruthy(left) {
			return left, nil
		}
		return in.evaluate(n.Right)

	case *ast.Set:
		obj, err := in.evaluate(n.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, loxerr.NewRuntimeError(n.Name, "Only instances have fields.")
		}
		value, err := in.evaluate(n.Value)
		if err != nil {
			return nil, err
		}
		instance.Set(n.Name.Lexeme, value)
		return value, nil

	case *ast.Super:
		return in.evalSuper(n)

	case *ast.This:
		return in.lookUpVariable(n.Keyword, n)

	case *ast.Unary:
		return in.evalUnary(n)

	case *ast.Variable:
		return in.lookUpVariable(n.Name, n)
	}
	return nil, nil
}

func (in *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (Object, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.env.GetAt(distance, name.Lexeme), nil
	}
	return in.Globals.Get(name)
}

func (in *Interpreter) evalUnary(n *ast.Unary) (Object, error) {
	right, err := in.evaluate(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op.Kind {
	case token.Bang:
		return !IsTruthy(right), nil
	case token.Minus:
		num, ok := right.(float64)
		if !ok {
			return nil, loxerr.NewRuntimeError(n.Op, "Operand must be a number.")
		}
		return -num, nil
	}
	return nil, nil
}

func (in *Interpreter) evalBinary(n *ast.Binary) (Object, error) {
	left, err := in.evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op.Kind {
	case token.Plus:
		if lnum, ok := left.(float64); ok {
			if rnum, ok := right.(float64); ok {
				return lnum + rnum, nil
			}
		}
		if lstr, ok := left.(string); ok {
			if rstr, ok := right.(string); ok {
				return lstr + rstr, nil
			}
		}
		return nil, loxerr.NewRuntimeError(n.Op, "Operands must be two numbers or two strings.")
	case token.Minus:
		l, r, err := numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case token.Star:
		l, r, err := numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	case token.Slash:
		l, r, err := numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l / r, nil
	case token.Greater:
		l, r, err := numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l > r, nil
	case token.GreaterEqual:
		l, r, err := numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l >= r, nil
	case token.Less:
		l, r, err := numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l < r, nil
	case token.LessEqual:
		l, r, err := numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l <= r, nil
	case token.EqualEqual:
		return IsEqual(left, right), nil
	case token.BangEqual:
		return !IsEqual(left, right), nil
	}
	return nil, nil
}

func numberOperands(op token.Token, left, right Object) (float64, float64, error) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, loxerr.NewRuntimeError(op, "Operands must be numbers.")
	}
	return l, r, nil
}

func (in *Interpreter) evalCall(n *ast.Call) (Object, error) {
	callee, err := in.evaluate(n.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Object, len(n.Args))
	for i, a := range n.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, loxerr.NewRuntimeError(n.Paren, "Can only call functions and classes.")
	}

	if len(args) != callable.Arity() {
		return nil, arityError(n.Paren, callable.Arity(), len(args))
	}

	return callable.Call(in, args, n.Paren)
}

func (in *Interpreter) evalSuper(n *ast.Super) (Object, error) {
	distance, ok := in.locals[n]
	if !ok {
		return nil, loxerr.NewRuntimeError(n.Keyword, "Can't use 'super' outside of a class.")
	}
	superclass := in.env.GetAt(distance, "super").(*Class)
	this := in.env.GetAt(distance-1, "this").(*Instance)

	method := superclass.FindMethod(n.Method.Lexeme)
	if method == nil {
		return nil, loxerr.NewRuntimeError(n.Method, "Undefined property '"+n.Method.Lexeme+"'.")
	}
	return method.Bind(this), nil
}
