// Package resolver implements the static scope-resolution pass of
// spec.md §4.3: for every variable-referencing expression it records
// the number of enclosing scopes between the use and its binding.
package resolver

import (
	"github.com/sdecook/golox/internal/ast"
	"github.com/sdecook/golox/internal/loxerr"
	"github.com/sdecook/golox/internal/token"
)

type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcInitializer
	funcMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Locals is the resolver's side-table: for each variable-referencing
// expression not bound globally, the number of enclosing scopes
// between the use and its binding (0 = innermost).
type Locals map[ast.Expr]int

// Resolver walks a statement list and populates a Locals table.
type Resolver struct {
	sink         *loxerr.Sink
	scopes       []map[string]bool
	locals       Locals
	currentFunc  functionType
	currentClass classType
}

// New returns a Resolver reporting errors to sink.
func New(sink *loxerr.Sink) *Resolver {
	return &Resolver{sink: sink, locals: make(Locals)}
}

// Resolve walks stmts and returns the populated side-table.
func (r *Resolver) Resolve(stmts []ast.Stmt) Locals {
	r.resolveStmts(stmts)
	return r.locals
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(n.Stmts)
		r.endScope()
	case *ast.Class:
		r.resolveClass(n)
	case *ast.Expression:
		r.resolveExpr(n.Expr)
	case *ast.Function:
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n, funcFunction)
	case *ast.If:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Then)
		if n.Else != nil {
			r.resolveStmt(n.Else)
		}
	case *ast.Print:
		r.resolveExpr(n.Expr)
	case *ast.Return:
		if r.currentFunc == funcNone {
			r.sink.ErrorAt(n.Keyword, "Can't return from top-level code.")
		}
		if n.Value != nil {
			if r.currentFunc == funcInitializer {
				r.sink.ErrorAt(n.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(n.Value)
		}
	case *ast.Var:
		r.declare(n.Name)
		if n.Init != nil {
			r.resolveExpr(n.Init)
		}
		r.define(n.Name)
	case *ast.While:
		r.resolveExpr(n.Condition)
		r.resolveStmt(n.Body)
	}
}

func (r *Resolver) resolveClass(c *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(c.Name)
	r.define(c.Name)

	if c.Superclass != nil {
		if c.Superclass.Name.Lexeme == c.Name.Lexeme {
			r.sink.ErrorAt(c.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpr(c.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range c.Methods {
		fnType := funcMethod
		if method.Name.Lexeme == "init" {
			fnType = funcInitializer
		}
		r.resolveFunction(method, fnType)
	}

	r.endScope()

	if c.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.Function, fnType functionType) {
	enclosingFunc := r.currentFunc
	r.currentFunc = fnType

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunc = enclosingFunc
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Assign:
		r.resolveExpr(n.Value)
		r.resolveLocal(n, n.Name)
	case *ast.Binary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Call:
		r.resolveExpr(n.Callee)
		for _, arg := range n.Args {
			r.resolveExpr(arg)
		}
	case *ast.Get:
		r.resolveExpr(n.Object)
	case *ast.Grouping:
		r.resolveExpr(n.Inner)
	case *ast.Literal:
		// nothing to resolve
	case *ast.Logical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Set:
		r.resolveExpr(n.Value)
		r.resolveExpr(n.Object)
	case *ast.Super:
		if r.currentClass == classNone {
			r.sink.ErrorAt(n.Keyword, "Can't use 'super' outside of a class.")
		} else if r.currentClass != classSubclass {
			r.sink.ErrorAt(n.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(n, n.Keyword)
	case *ast.This:
		if r.currentClass == classNone {
			r.sink.ErrorAt(n.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(n, n.Keyword)
	case *ast.Unary:
		r.resolveExpr(n.Right)
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; declared && !defined {
				r.sink.ErrorAt(n.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(n, n.Name)
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.sink.ErrorAt(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal walks the scope stack outward from the innermost scope
// and records the distance to the first scope containing name. Not
// finding it leaves expr unrecorded, meaning "global" (spec.md §3/§4.4).
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}
