// Package lexer implements the Lox scanner: spec.md §4.1.
package lexer

import (
	"strconv"

	"github.com/sdecook/golox/internal/loxerr"
	"github.com/sdecook/golox/internal/token"
)

// Lexer scans source bytes into a token stream.
type Lexer struct {
	source []byte
	start  int
	idx    int // current spot in the source; -1 before the first advance()
	ch     byte
	line   int
	sink   *loxerr.Sink
}

// New returns a Lexer over source that reports errors to sink.
func New(source []byte, sink *loxerr.Sink) *Lexer {
	return &Lexer{source: source, idx: -1, line: 1, sink: sink}
}

// Scan consumes the whole source and returns its tokens, terminated by
// a single EOF token.
func (l *Lexer) Scan() []token.Token {
	toks := make([]token.Token, 0, len(l.source)/4+1)

	for l.advance() {
		l.start = l.idx
		switch l.ch {
		case ' ', '\t', '\r':
			// whitespace
		case '\n':
			l.line++
		case '(':
			toks = append(toks, token.New(token.LeftParen, "(", l.line))
		case ')':
			toks = append(toks, token.New(token.RightParen, ")", l.line))
		case '{':
			toks = append(toks, token.New(token.LeftBrace, "{", l.line))
		case '}':
			toks = append(toks, token.New(token.RightBrace, "}", l.line))
		case ',':
			toks = append(toks, token.New(token.Comma, ",", l.line))
		case '.':
			toks = append(toks, token.New(token.Dot, ".", l.line))
		case '-':
			toks = append(toks, token.New(token.Minus, "-", l.line))
		case '+':
			toks = append(toks, token.New(token.Plus, "+", l.line))
		case ';':
			toks = append(toks, token.New(token.Semicolon, ";", l.line))
		case '*':
			toks = append(toks, token.New(token.Star, "*", l.line))
		case '/':
			if l.peek() == '/' {
				l.lineComment()
			} else {
				toks = append(toks, token.New(token.Slash, "/", l.line))
			}
		case '=':
			toks = append(toks, l.oneOrTwo('=', token.Equal, token.EqualEqual, "=", "=="))
		case '!':
			toks = append(toks, l.oneOrTwo('=', token.Bang, token.BangEqual, "!", "!="))
		case '<':
			toks = append(toks, l.oneOrTwo('=', token.Less, token.LessEqual, "<", "<="))
		case '>':
			toks = append(toks, l.oneOrTwo('=', token.Greater, token.GreaterEqual, ">", ">="))
		case '"':
			if tok, ok := l.stringLiteral(); ok {
				toks = append(toks, tok)
			}
		default:
			switch {
			case isDigit(l.ch):
				toks = append(toks, l.numberLiteral())
			case isAlpha(l.ch):
				toks = append(toks, l.identifier())
			default:
				l.sink.Error(l.line, "Unexpected character.")
			}
		}
	}

	toks = append(toks, token.New(token.EOF, "", l.line))
	return toks
}

// advance moves to the next byte, reporting whether one existed.
func (l *Lexer) advance() bool {
	if l.idx >= len(l.source)-1 {
		return false
	}
	l.idx++
	l.ch = l.source[l.idx]
	return true
}

func (l *Lexer) peek() byte {
	if l.idx >= len(l.source)-1 {
		return 0
	}
	return l.source[l.idx+1]
}

func (l *Lexer) peekNext() byte {
	if l.idx >= len(l.source)-2 {
		return 0
	}
	return l.source[l.idx+2]
}

func (l *Lexer) lineComment() {
	for l.peek() != '\n' && l.peek() != 0 {
		l.advance()
	}
}

func (l *Lexer) oneOrTwo(second byte, single, double token.Kind, singleLexeme, doubleLexeme string) token.Token {
	if l.peek() == second {
		l.advance()
		return token.New(double, doubleLexeme, l.line)
	}
	return token.New(single, singleLexeme, l.line)
}

func (l *Lexer) stringLiteral() (token.Token, bool) {
	startLine := l.line
	for {
		if l.peek() == 0 && l.idx >= len(l.source)-1 {
			l.sink.Error(startLine, "Unterminated string.")
			return token.Token{}, false
		}
		if !l.advance() {
			l.sink.Error(startLine, "Unterminated string.")
			return token.Token{}, false
		}
		if l.ch == '\n' {
			l.line++
		}
		if l.ch == '"' {
			break
		}
	}

	lexeme := string(l.source[l.start : l.idx+1])
	value := string(l.source[l.start+1 : l.idx])
	return token.NewString(lexeme, value, startLine), true
}

func (l *Lexer) numberLiteral() token.Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	lexeme := string(l.source[l.start : l.idx+1])
	value, _ := strconv.ParseFloat(lexeme, 64)
	return token.NewNumber(lexeme, value, l.line)
}

func (l *Lexer) identifier() token.Token {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}

	lexeme := string(l.source[l.start : l.idx+1])
	if kind, ok := token.Keywords[lexeme]; ok {
		return token.New(kind, lexeme, l.line)
	}
	return token.New(token.Identifier, lexeme, l.line)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
