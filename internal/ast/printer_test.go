package ast_test

import (
	"testing"

	"github.com/sdecook/golox/internal/ast"
	"github.com/sdecook/golox/internal/lexer"
	"github.com/sdecook/golox/internal/loxerr"
	"github.com/sdecook/golox/internal/parser"
	"github.com/sdecook/golox/internal/token"
)

// reparse scans+parses src as a single expression, the inverse of
// ast.Print for the round-trip property of spec.md §8.
func reparse(t *testing.T, src string) ast.Expr {
	t.Helper()
	sink := loxerr.New(discard{})
	toks := lexer.New([]byte(src), sink).Scan()
	expr, ok := parser.New(toks, sink).ParseExpression()
	if !ok || sink.HadError {
		t.Fatalf("failed to reparse printed form %q", src)
	}
	return expr
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// equivalent compares two expressions structurally, unwrapping any
// *ast.Grouping introduced by re-parsing ast.Print's fully-parenthesized
// output — Print's own parens turn into real Grouping nodes on
// reparse, which the book's illustrative prefix notation never has to
// account for (see DESIGN.md).
func equivalent(a, b ast.Expr) bool {
	for {
		if g, ok := a.(*ast.Grouping); ok {
			a = g.Inner
			continue
		}
		break
	}
	for {
		if g, ok := b.(*ast.Grouping); ok {
			b = g.Inner
			continue
		}
		break
	}

	switch av := a.(type) {
	case *ast.Binary:
		bv, ok := b.(*ast.Binary)
		return ok && av.Op.Kind == bv.Op.Kind && equivalent(av.Left, bv.Left) && equivalent(av.Right, bv.Right)
	case *ast.Logical:
		bv, ok := b.(*ast.Logical)
		return ok && av.Op.Kind == bv.Op.Kind && equivalent(av.Left, bv.Left) && equivalent(av.Right, bv.Right)
	case *ast.Unary:
		bv, ok := b.(*ast.Unary)
		return ok && av.Op.Kind == bv.Op.Kind && equivalent(av.Right, bv.Right)
	case *ast.Assign:
		bv, ok := b.(*ast.Assign)
		return ok && av.Name.Lexeme == bv.Name.Lexeme && equivalent(av.Value, bv.Value)
	case *ast.Call:
		bv, ok := b.(*ast.Call)
		if !ok || len(av.Args) != len(bv.Args) || !equivalent(av.Callee, bv.Callee) {
			return false
		}
		for i := range av.Args {
			if !equivalent(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case *ast.Get:
		bv, ok := b.(*ast.Get)
		return ok && av.Name.Lexeme == bv.Name.Lexeme && equivalent(av.Object, bv.Object)
	case *ast.Set:
		bv, ok := b.(*ast.Set)
		return ok && av.Name.Lexeme == bv.Name.Lexeme && equivalent(av.Object, bv.Object) && equivalent(av.Value, bv.Value)
	case *ast.Variable:
		bv, ok := b.(*ast.Variable)
		return ok && av.Name.Lexeme == bv.Name.Lexeme
	case *ast.This:
		_, ok := b.(*ast.This)
		return ok
	case *ast.Super:
		bv, ok := b.(*ast.Super)
		return ok && av.Method.Lexeme == bv.Method.Lexeme
	case *ast.Literal:
		bv, ok := b.(*ast.Literal)
		return ok && av.Value == bv.Value
	default:
		return false
	}
}

func TestPrintReparseRoundTrip(t *testing.T) {
	sources := []string{
		`1 + 2 * 3`,
		`(1 + 2) * 3`,
		`-a.b.c`,
		`foo(1, 2, bar(3))`,
		`a = b = c`,
		`a.b = c + d`,
		`!true == false`,
		`x and y or z`,
	}

	for _, src := range sources {
		original := reparse(t, src)
		printed := ast.Print(original)
		reprinted := reparse(t, printed)

		if !equivalent(original, reprinted) {
			t.Errorf("round trip mismatch for %q: printed %q, reparsed differs", src, printed)
		}
	}
}

func TestPrintProducesParenthesizedForm(t *testing.T) {
	expr := &ast.Binary{
		Left:  &ast.Literal{Value: 1.0},
		Op:    token.New(token.Plus, "+", 1),
		Right: &ast.Literal{Value: 2.0},
	}
	if got := ast.Print(expr); got != "(1 + 2)" {
		t.Errorf("Print() = %q, want %q", got, "(1 + 2)")
	}
}
