// Package cmd is the cobra command tree for the lox CLI, grounded in
// the pack's dominant CLI shape (a root command, version info set by
// build flags, and an Execute entrypoint main.go calls).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdecook/golox/internal/runner"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "lox [script]",
	Short: "A tree-walking interpreter for the Lox language",
	Long: `lox runs Lox programs: a dynamically typed scripting language with
classes, closures, and inheritance.

With no arguments it starts an interactive REPL reading from stdin.
With one argument it runs the named script file.`,
	Version:       Version,
	Args:          tooManyArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// tooManyArgs rejects more than one positional argument with the exact
// message and exit code spec.md §6 prescribes, in place of cobra's
// default MaximumNArgs usage-dump behavior.
func tooManyArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "Too many arguments")
		return exitCodeErr{code: runner.ExitUsage}
	}
	return nil
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("lox version %s (%s)\n", Version, GitCommit))
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		if code := runner.RunFile(args[0]); code != runner.ExitOK {
			return exitCodeErr{code: code}
		}
		return nil
	}
	runner.RunREPL(os.Stdin, os.Stdout)
	return nil
}

// exitCodeErr carries a process exit code through cobra's error path;
// Execute unwraps it so main can os.Exit with the right code instead
// of cobra's blanket 1.
type exitCodeErr struct{ code int }

func (e exitCodeErr) Error() string { return fmt.Sprintf("exit %d", e.code) }

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if ec, ok := err.(exitCodeErr); ok {
			return ec.code
		}
		return runner.ExitUsage
	}
	return runner.ExitOK
}
