package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdecook/golox/internal/runner"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it, grounded in the teacher pack's
// os.Pipe-based capture idiom (CWBudde-go-dws's cmd/dwscript/cmd tests).
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// captureStderr mirrors captureStdout for os.Stderr.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stderr = w
	defer func() { os.Stderr = old }()

	fn()

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestTooManyArgsRejectsMoreThanOne(t *testing.T) {
	var err error
	stderr := captureStderr(t, func() {
		err = tooManyArgs(rootCmd, []string{"a.lox", "b.lox"})
	})

	if err == nil {
		t.Fatal("expected an error for more than one argument")
	}
	ec, ok := err.(exitCodeErr)
	if !ok || ec.code != runner.ExitUsage {
		t.Errorf("got error %v, want exitCodeErr{code: %d}", err, runner.ExitUsage)
	}
	if stderr != "Too many arguments\n" {
		t.Errorf("stderr = %q, want %q", stderr, "Too many arguments\n")
	}
}

func TestTooManyArgsAllowsZeroOrOne(t *testing.T) {
	if err := tooManyArgs(rootCmd, nil); err != nil {
		t.Errorf("zero args: got %v, want nil", err)
	}
	if err := tooManyArgs(rootCmd, []string{"a.lox"}); err != nil {
		t.Errorf("one arg: got %v, want nil", err)
	}
}

func TestExecuteTooManyArgumentsExitsUsage(t *testing.T) {
	rootCmd.SetArgs([]string{"one.lox", "two.lox"})
	defer rootCmd.SetArgs(nil)

	var code int
	stderr := captureStderr(t, func() {
		code = Execute()
	})

	if code != runner.ExitUsage {
		t.Errorf("Execute() = %d, want %d", code, runner.ExitUsage)
	}
	if stderr != "Too many arguments\n" {
		t.Errorf("stderr = %q, want %q", stderr, "Too many arguments\n")
	}
}

func TestExecuteRunsScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.lox")
	if err := os.WriteFile(path, []byte(`print "hi";`), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	rootCmd.SetArgs([]string{path})
	defer rootCmd.SetArgs(nil)

	var code int
	stdout := captureStdout(t, func() {
		code = Execute()
	})

	if code != runner.ExitOK {
		t.Errorf("Execute() = %d, want %d", code, runner.ExitOK)
	}
	if stdout != "hi\n" {
		t.Errorf("stdout = %q, want %q", stdout, "hi\n")
	}
}

func TestExecuteScriptRuntimeErrorExitsRuntime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.lox")
	if err := os.WriteFile(path, []byte(`print nope;`), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	rootCmd.SetArgs([]string{path})
	defer rootCmd.SetArgs(nil)

	var code int
	captureStderr(t, func() {
		code = Execute()
	})

	if code != runner.ExitRuntime {
		t.Errorf("Execute() = %d, want %d", code, runner.ExitRuntime)
	}
}

func TestExecuteMissingFileExitsUsage(t *testing.T) {
	rootCmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.lox")})
	defer rootCmd.SetArgs(nil)

	var code int
	captureStderr(t, func() {
		code = Execute()
	})

	if code != runner.ExitUsage {
		t.Errorf("Execute() = %d, want %d", code, runner.ExitUsage)
	}
}
