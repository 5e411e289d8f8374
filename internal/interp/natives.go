package interp

import (
	"bufio"
	"fmt"
	"time"

	"github.com/sdecook/golox/internal/loxerr"
	"github.com/sdecook/golox/internal/token"
)

// defineNatives pre-binds the native roster of spec.md §6 (clock,
// plus the "optional extras" it names: input/length) in globals,
// grounded in original_source/src/native_functions.py's Clock/Input/
// Length classes.
func defineNatives(globals *Environment, stdin *bufio.Reader) {
	globals.Define("clock", &NativeFunction{
		Name: "clock",
		Arg:  0,
		Fn: func(*Interpreter, []Object, token.Token) (Object, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})

	globals.Define("input", &NativeFunction{
		Name: "input",
		Arg:  0,
		Fn: func(*Interpreter, []Object, token.Token) (Object, error) {
			line, err := stdin.ReadString('\n')
			if err != nil && line == "" {
				return nil, nil
			}
			for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
				line = line[:len(line)-1]
			}
			return line, nil
		},
	})

	globals.Define("length", &NativeFunction{
		Name: "length",
		Arg:  1,
		Fn: func(_ *Interpreter, args []Object, paren token.Token) (Object, error) {
			s, ok := args[0].(string)
			if !ok {
				return nil, loxerr.NewRuntimeError(paren, "Expect string argument.")
			}
			return float64(len(s)), nil
		},
	})
}

// arityError builds the "Expected N arguments but got M." runtime
// error located at the call's closing paren, per spec.md §4.4.
func arityError(paren token.Token, expected, got int) error {
	return loxerr.NewRuntimeError(paren, fmt.Sprintf("Expected %d arguments but got %d.", expected, got))
}
