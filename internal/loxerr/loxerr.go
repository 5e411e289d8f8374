// Package loxerr is the process-wide-in-spirit, but explicitly owned,
// error sink described in spec.md §4.5: it collects scan/parse/resolve
// errors and reports runtime errors, tracking the two had-error flags
// the pipeline stops on.
package loxerr

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/sdecook/golox/internal/token"
)

// RuntimeError is a typed runtime failure carrying the offending token
// for line reporting, per spec.md §3/§7.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// NewRuntimeError builds a RuntimeError at the given token.
func NewRuntimeError(tok token.Token, message string) *RuntimeError {
	return &RuntimeError{Token: tok, Message: message}
}

// Sink collects static errors and reports runtime errors. It is passed
// explicitly to the scanner, parser, resolver, and evaluator instead
// of living as global mutable state (spec.md §9's design note), which
// keeps it nestable: a REPL can construct one sink per line.
type Sink struct {
	Out             io.Writer
	HadError        bool
	HadRuntimeError bool
}

// New returns a Sink that reports to w.
func New(w io.Writer) *Sink {
	return &Sink{Out: w}
}

// Error reports a bare scanner-level error: no token, just a line.
func (s *Sink) Error(line int, message string) {
	s.report(line, "", message)
}

// ErrorAt reports a parser/resolver error located at tok.
func (s *Sink) ErrorAt(tok token.Token, message string) {
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Kind == token.EOF {
		where = " at end"
	}
	s.report(tok.Line, where, message)
}

func (s *Sink) report(line int, where, message string) {
	s.HadError = true
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	fmt.Fprintf(s.Out, "[line %d] %s%s: %s\n", line, red.Sprint("Error"), where, bold.Sprint(message))
}

// RuntimeError reports err and marks the sink as having hit a runtime
// failure, per spec.md §7's tier 3.
func (s *Sink) RuntimeError(err *RuntimeError) {
	s.HadRuntimeError = true
	fmt.Fprintf(s.Out, "%s\n[line %d]\n", err.Message, err.Token.Line)
}

// ResetLine clears HadError between REPL lines without touching
// HadRuntimeError, per spec.md §6/§7.
func (s *Sink) ResetLine() {
	s.HadError = false
}
