// Command lox is a tree-walking Lox interpreter: a REPL with no
// arguments, or a script runner given one file path.
package main

import (
	"os"

	"github.com/sdecook/golox/cmd/lox/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
