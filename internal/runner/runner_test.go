package runner_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sdecook/golox/internal/runner"
)

func TestRunPrintsConcatenatedStrings(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runner.Run([]byte(`print "one" + "two";`), nil, &stdout, &stderr)

	assert.Equal(t, runner.ExitOK, code)
	assert.Equal(t, "onetwo\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunClassesAndInheritance(t *testing.T) {
	src := `
class Animal {
  speak() {
    return "...";
  }
}

class Dog < Animal {
  speak() {
    return "Woof, " + super.speak();
  }
}

print Dog().speak();
`
	var stdout, stderr bytes.Buffer
	code := runner.Run([]byte(src), nil, &stdout, &stderr)

	assert.Equal(t, runner.ExitOK, code)
	assert.Equal(t, "Woof, ...\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunClosureCountsIndependently(t *testing.T) {
	src := `
fun makeCounter() {
  var n = 0;
  fun count() {
    n = n + 1;
    return n;
  }
  return count;
}

var a = makeCounter();
var b = makeCounter();
print a();
print a();
print b();
`
	var stdout, stderr bytes.Buffer
	code := runner.Run([]byte(src), nil, &stdout, &stderr)

	assert.Equal(t, runner.ExitOK, code)
	assert.Equal(t, "1\n2\n1\n", stdout.String())
}

func TestRunForLoopDesugarsToWhile(t *testing.T) {
	src := `
var sum = 0;
for (var i = 1; i <= 5; i = i + 1) {
  sum = sum + i;
}
print sum;
`
	var stdout, stderr bytes.Buffer
	code := runner.Run([]byte(src), nil, &stdout, &stderr)

	assert.Equal(t, runner.ExitOK, code)
	assert.Equal(t, "15\n", stdout.String())
}

func TestRunUndefinedVariableIsRuntimeError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runner.Run([]byte(`print nope;`), nil, &stdout, &stderr)

	assert.Equal(t, runner.ExitRuntime, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Undefined variable 'nope'.")
}

func TestRunParseErrorIsStaticExit(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runner.Run([]byte(`print ;`), nil, &stdout, &stderr)

	assert.Equal(t, runner.ExitStaticError, code)
	assert.Empty(t, stdout.String())
	assert.NotEmpty(t, stderr.String())
}

func TestRunResolverErrorIsStaticExit(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runner.Run([]byte(`{ var a = a; }`), nil, &stdout, &stderr)

	assert.Equal(t, runner.ExitStaticError, code)
	assert.Contains(t, stderr.String(), "Can't read local variable in its own initializer.")
}

func TestRunReturnOutsideFunctionIsStaticExit(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runner.Run([]byte(`return 1;`), nil, &stdout, &stderr)

	assert.Equal(t, runner.ExitStaticError, code)
	assert.Contains(t, stderr.String(), "Can't return from top-level code.")
}

func TestRunREPLResetsHadErrorBetweenLines(t *testing.T) {
	input := bytes.NewBufferString("print ;\nprint 1 + 1;\n")
	var out bytes.Buffer

	runner.RunREPL(input, &out)

	assert.Contains(t, out.String(), "2\n")
}
