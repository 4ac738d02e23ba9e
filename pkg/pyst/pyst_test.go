package pyst

import (
	"bytes"
	"testing"
)

func run(t *testing.T, src string) string {
	t.Helper()
	var buf bytes.Buffer
	in := New(&buf)
	_, raised, err := in.Run(src)
	if err != nil {
		t.Fatalf("Run(%q) error: %v", src, err)
	}
	if raised != nil {
		t.Fatalf("Run(%q) raised an exception: %v", src, raised.Str)
	}
	return buf.String()
}

func TestRunArithmeticPrintsResult(t *testing.T) {
	got := run(t, "x = 2 + 3 * 4\nprint(x)\n")
	if got != "14\n" {
		t.Errorf("output = %q, want %q", got, "14\n")
	}
}

func TestRunStringRepeat(t *testing.T) {
	got := run(t, "print('Hello ' * 4)\n")
	if got != "Hello Hello Hello Hello \n" {
		t.Errorf("output = %q, want %q", got, "Hello Hello Hello Hello \n")
	}
}

func TestRunIfElifElse(t *testing.T) {
	src := "x = 2\nif x == 1:\n    print('one')\nelif x == 2:\n    print('two')\nelse:\n    print('other')\n"
	if got := run(t, src); got != "two\n" {
		t.Errorf("output = %q, want %q", got, "two\n")
	}
}

func TestRunWhileElseRunsElseWhenLoopExitsNormally(t *testing.T) {
	src := "x = 3\nwhile x > 0:\n    x = x - 1\nelse:\n    print('done')\n"
	if got := run(t, src); got != "done\n" {
		t.Errorf("output = %q, want %q", got, "done\n")
	}
}

func TestRunForOverListAccumulates(t *testing.T) {
	src := "total = 0\nfor n in [1, 2, 3]:\n    total = total + n\nprint(total)\n"
	if got := run(t, src); got != "6\n" {
		t.Errorf("output = %q, want %q", got, "6\n")
	}
}

func TestRunFunctionDefAndCall(t *testing.T) {
	src := "def add(a, b):\n    return a + b\nprint(add(3, 4))\n"
	if got := run(t, src); got != "7\n" {
		t.Errorf("output = %q, want %q", got, "7\n")
	}
}

func TestRunRecursiveFunction(t *testing.T) {
	src := "def fact(n):\n    if n <= 1:\n        return 1\n    return n * fact(n - 1)\nprint(fact(5))\n"
	if got := run(t, src); got != "120\n" {
		t.Errorf("output = %q, want %q", got, "120\n")
	}
}

func TestRunChainedComparison(t *testing.T) {
	src := "print(1 < 2 < 3)\nprint(1 < 2 < 0)\n"
	if got := run(t, src); got != "True\nFalse\n" {
		t.Errorf("output = %q, want %q", got, "True\nFalse\n")
	}
}

func TestRunShortCircuitAndOr(t *testing.T) {
	src := "def noisy(name, v):\n    print(name)\n    return v\nif noisy('a', False) and noisy('b', True):\n    pass\nif noisy('c', True) or noisy('d', True):\n    pass\n"
	got := run(t, src)
	if got != "a\nc\n" {
		t.Errorf("output = %q, want %q (expected short-circuit to skip the second call)", got, "a\nc\n")
	}
}

func TestRunTryExceptCatchesMatchingType(t *testing.T) {
	src := "try:\n    raise TypeError('boom')\nexcept TypeError as e:\n    print('caught')\n"
	if got := run(t, src); got != "caught\n" {
		t.Errorf("output = %q, want %q", got, "caught\n")
	}
}

func TestRunTryExceptElseRunsWhenNoExceptionRaised(t *testing.T) {
	src := "try:\n    x = 1\nexcept TypeError:\n    print('caught')\nelse:\n    print('else')\n"
	if got := run(t, src); got != "else\n" {
		t.Errorf("output = %q, want %q", got, "else\n")
	}
}

func TestRunTryFinallyAlwaysRuns(t *testing.T) {
	src := "try:\n    x = 1\nfinally:\n    print('cleanup')\n"
	if got := run(t, src); got != "cleanup\n" {
		t.Errorf("output = %q, want %q", got, "cleanup\n")
	}
}

func TestRunClassDefinitionAndMethodCall(t *testing.T) {
	src := "class Point:\n    def __init__(self, x):\n        self.x = x\n    def getx(self):\n        return self.x\np = Point(5)\nprint(p.getx())\n"
	if got := run(t, src); got != "5\n" {
		t.Errorf("output = %q, want %q", got, "5\n")
	}
}

func TestRunImportFromBuiltinsPseudoModule(t *testing.T) {
	src := "from builtins import print\nprint('hi')\n"
	if got := run(t, src); got != "hi\n" {
		t.Errorf("output = %q, want %q", got, "hi\n")
	}
}

func TestRunExceptionArgsMemberDescriptorAppliesOnLookup(t *testing.T) {
	src := "try:\n    raise TypeError('bad')\nexcept TypeError as e:\n    print(e.args)\n"
	want := "(\"bad\",)\n"
	if got := run(t, src); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunClassOverridingNewSkipsInitOnMismatchedReturn(t *testing.T) {
	src := "class A:\n    def __new__(cls):\n        return 42\n    def __init__(self):\n        print('init ran')\na = A()\nprint(a)\n"
	if got := run(t, src); got != "42\n" {
		t.Errorf("output = %q, want %q (overriding __new__ should control what's constructed, and __init__ should not run against a non-instance result)", got, "42\n")
	}
}

func TestRunChainedAssignment(t *testing.T) {
	src := "a = b = 7\nprint(a)\nprint(b)\n"
	if got := run(t, src); got != "7\n7\n" {
		t.Errorf("output = %q, want %q", got, "7\n7\n")
	}
}

func TestRunUnhandledExceptionPropagatesAsRaised(t *testing.T) {
	var buf bytes.Buffer
	in := New(&buf)
	_, raised, err := in.Run("raise TypeError('bad')\n")
	if err != nil {
		t.Fatalf("unexpected compile/runtime abort: %v", err)
	}
	if raised == nil {
		t.Fatal("expected an unhandled exception to be returned, got nil")
	}
	if raised.Type.Name != "TypeError" {
		t.Errorf("raised exception type = %q, want %q", raised.Type.Name, "TypeError")
	}
	message, ok := raised.InstDict.Entries["message"]
	if !ok || message.Str != "bad" {
		t.Errorf("raised exception message = %v, want %q", message, "bad")
	}
}

func TestRunModeSingleReportsIncompleteInputForOpenBlock(t *testing.T) {
	in := New(&bytes.Buffer{})
	_, _, err := in.RunMode("if x:\n", ModeSingle)
	if err == nil {
		t.Fatal("expected an incomplete-input error for an unterminated block")
	}
}

func TestScopePersistsAcrossRuns(t *testing.T) {
	var buf bytes.Buffer
	in := New(&buf)
	if _, raised, err := in.Run("x = 10\n"); err != nil || raised != nil {
		t.Fatalf("first run failed: err=%v raised=%v", err, raised)
	}
	if _, raised, err := in.Run("print(x + 1)\n"); err != nil || raised != nil {
		t.Fatalf("second run failed: err=%v raised=%v", err, raised)
	}
	if got := buf.String(); got != "11\n" {
		t.Errorf("output = %q, want %q", got, "11\n")
	}
}
