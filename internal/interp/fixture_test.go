package interp_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/sdecook/golox/internal/interp"
	"github.com/sdecook/golox/internal/lexer"
	"github.com/sdecook/golox/internal/loxerr"
	"github.com/sdecook/golox/internal/parser"
	"github.com/sdecook/golox/internal/resolver"
)

// TestInterpFixtures runs every .lox program under testdata/ and
// snapshots its combined stdout + runtime-error output, the closest
// idiomatic analogue in this corpus to being checked against a
// reference implementation's golden output.
func TestInterpFixtures(t *testing.T) {
	files, err := filepath.Glob("testdata/*.lox")
	if err != nil {
		t.Fatalf("glob testdata: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no fixtures found under testdata/")
	}

	for _, path := range files {
		name := filepath.Base(path)
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}

			var stdout, stderr bytes.Buffer
			sink := loxerr.New(&stderr)

			toks := lexer.New(source, sink).Scan()
			stmts := parser.New(toks, sink).Parse()
			if sink.HadError {
				snaps.MatchSnapshot(t, fmt.Sprintf("%s/static-error", name), stderr.String())
				return
			}

			locals := resolver.New(sink).Resolve(stmts)
			if sink.HadError {
				snaps.MatchSnapshot(t, fmt.Sprintf("%s/resolve-error", name), stderr.String())
				return
			}

			in := interp.New(sink, bytes.NewReader(nil), &stdout)
			in.Interpret(stmts, locals)

			output := stdout.String()
			if sink.HadRuntimeError {
				output += "---\n" + stderr.String()
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("%s/output", name), output)
		})
	}
}

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}
