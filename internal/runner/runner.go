// Package runner ties the scan→parse→resolve→eval pipeline together
// for both file mode and REPL mode, and maps the error sink's flags to
// the process exit codes of spec.md §6.
package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sdecook/golox/internal/interp"
	"github.com/sdecook/golox/internal/lexer"
	"github.com/sdecook/golox/internal/loxerr"
	"github.com/sdecook/golox/internal/parser"
	"github.com/sdecook/golox/internal/resolver"
)

const (
	ExitOK          = 0
	ExitUsage       = 64
	ExitStaticError = 65
	ExitRuntime     = 70
)

// RunFile reads the script at path and runs it to completion, printing
// to stdout and reporting errors to stderr, returning the process exit
// code per spec.md §6's table.
func RunFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitUsage
	}
	return Run(source, os.Stdin, os.Stdout, os.Stderr)
}

// Run scans, parses, resolves, and evaluates source once, reading
// `input()` from stdin and writing `print` output to stdout. It
// returns the exit code spec.md §6 prescribes: 65 if a static error was
// reported, 70 if a runtime error was reported, 0 otherwise.
func Run(source []byte, stdin io.Reader, stdout, stderr io.Writer) int {
	sink := loxerr.New(stderr)

	toks := lexer.New(source, sink).Scan()
	stmts := parser.New(toks, sink).Parse()
	if sink.HadError {
		return ExitStaticError
	}

	locals := resolver.New(sink).Resolve(stmts)
	if sink.HadError {
		return ExitStaticError
	}

	in := interp.New(sink, stdin, stdout)
	in.Interpret(stmts, locals)
	if sink.HadRuntimeError {
		return ExitRuntime
	}
	return ExitOK
}

// RunREPL reads one line at a time from in, running each as its own
// program against a persistent Interpreter so top-level `var`
// declarations and functions survive across lines. had_error resets
// between lines; had_runtime_error does not, and the REPL never exits
// because of either (spec.md §6/§7). Prompts and `print` output go to
// out; errors go to os.Stderr.
func RunREPL(in io.Reader, out io.Writer) {
	sink := loxerr.New(os.Stderr)
	interpreter := interp.New(sink, in, out)

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := scanner.Text()

		toks := lexer.New([]byte(line), sink).Scan()
		stmts := parser.New(toks, sink).Parse()
		if !sink.HadError {
			locals := resolver.New(sink).Resolve(stmts)
			if !sink.HadError {
				interpreter.Interpret(stmts, locals)
			}
		}

		sink.ResetLine()
		fmt.Fprint(out, "> ")
	}
}
