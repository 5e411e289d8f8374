package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders e as a fully parenthesized expression using ordinary
// Lox infix/call syntax — deliberately valid Lox, not the book's
// prefix-call notation, so that spec.md §8's round-trip property
// ("re-scan and re-parse produce a structurally equivalent AST")
// actually holds: the book's illustrative "(group 45.67)" form isn't
// itself parseable Lox. See DESIGN.md for this resolution.
func Print(e Expr) string {
	switch n := e.(type) {
	case *Assign:
		return fmt.Sprintf("(%s = %s)", n.Name.Lexeme, Print(n.Value))
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", Print(n.Left), n.Op.Lexeme, Print(n.Right))
	case *Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = Print(a)
		}
		return fmt.Sprintf("(%s(%s))", Print(n.Callee), strings.Join(args, ", "))
	case *Get:
		return fmt.Sprintf("(%s.%s)", Print(n.Object), n.Name.Lexeme)
	case *Grouping:
		return fmt.Sprintf("(%s)", Print(n.Inner))
	case *Literal:
		return literalText(n.Value)
	case *Logical:
		return fmt.Sprintf("(%s %s %s)", Print(n.Left), n.Op.Lexeme, Print(n.Right))
	case *Set:
		return fmt.Sprintf("(%s.%s = %s)", Print(n.Object), n.Name.Lexeme, Print(n.Value))
	case *Super:
		return fmt.Sprintf("(super.%s)", n.Method.Lexeme)
	case *This:
		return "this"
	case *Unary:
		return fmt.Sprintf("(%s%s)", n.Op.Lexeme, Print(n.Right))
	case *Variable:
		return n.Name.Lexeme
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

func literalText(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return strconv.Quote(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
