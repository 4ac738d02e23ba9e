package vm

import (
	"strings"
	"testing"

	"github.com/jm-research/pyst/internal/bytecode"
	"github.com/jm-research/pyst/internal/object"
)

func runSource(t *testing.T, src string) (string, *object.Value, *object.Value) {
	t.Helper()
	code, err := bytecode.CompileProgram(src, bytecode.ModeExec)
	if err != nil {
		t.Fatalf("CompileProgram(%q) error: %v", src, err)
	}
	var out strings.Builder
	m := New()
	m.Stdout = func(s string) { out.WriteString(s) }
	result, raised := m.Run(code, m.NewScope())
	return out.String(), result, raised
}

func TestRunArithmeticAndPrint(t *testing.T) {
	out, _, raised := runSource(t, "x = 2 + 3 * 4\nprint(x)\n")
	if raised != nil {
		t.Fatalf("unexpected exception: %v", raised)
	}
	if out != "14\n" {
		t.Errorf("stdout = %q, want %q", out, "14\n")
	}
}

func TestRunReturnsFinalValue(t *testing.T) {
	_, result, raised := runSource(t, "x = 1\n")
	if raised != nil {
		t.Fatalf("unexpected exception: %v", raised)
	}
	if result.Kind != object.KindNone {
		t.Errorf("final result kind = %v, want KindNone (module-level code always ends RETURN_VALUE on the trailing None)", result.Kind)
	}
}

func TestInvokeRustFunctionDirectly(t *testing.T) {
	m := New()
	called := false
	fn := m.Context().NewRustFunction(func(mm object.Machine, args []*object.Value) (*object.Value, *object.Value) {
		called = true
		if len(args) != 1 || args[0].Int != 5 {
			t.Errorf("args = %v, want a single int 5", args)
		}
		return mm.Context().NewInt(args[0].Int * 2), nil
	})
	result, exc := m.Invoke(fn, []*object.Value{m.Context().NewInt(5)})
	if exc != nil {
		t.Fatalf("unexpected exception: %v", exc)
	}
	if !called {
		t.Fatal("expected the rust function to be called")
	}
	if result.Int != 10 {
		t.Errorf("result = %d, want 10", result.Int)
	}
}

func TestInvokeFunctionArityMismatchRaisesTypeError(t *testing.T) {
	out, _, raised := runSource(t, "def add(a, b):\n    return a + b\nadd(1)\n")
	_ = out
	if raised == nil {
		t.Fatal("expected a catchable arity-mismatch exception")
	}
	if raised.Kind != object.KindNameError || !strings.Contains(raised.Str, "TypeError") {
		t.Errorf("raised = %#v, want a NameError-kind value carrying a TypeError message", raised)
	}
}

func TestInvokeNonCallableRaisesTypeError(t *testing.T) {
	out, _, raised := runSource(t, "x = 1\nx()\n")
	_ = out
	if raised == nil {
		t.Fatal("expected calling a non-callable to raise")
	}
	if !strings.Contains(raised.Str, "not callable") {
		t.Errorf("raised = %v, want a message mentioning 'not callable'", raised.Str)
	}
}

func TestUndefinedNameRaisesNameError(t *testing.T) {
	_, _, raised := runSource(t, "print(undefined_name)\n")
	if raised == nil {
		t.Fatal("expected a NameError for an undefined name")
	}
	if raised.Kind != object.KindNameError || raised.Str != "undefined_name" {
		t.Errorf("raised = %#v, want a NameError carrying the missing name", raised)
	}
}

func TestBreakExitsLoopWithoutElse(t *testing.T) {
	out, _, raised := runSource(t, "for x in [1, 2, 3]:\n    if x == 2:\n        break\n    print(x)\nelse:\n    print('done')\n")
	if raised != nil {
		t.Fatalf("unexpected exception: %v", raised)
	}
	if out != "1\n" {
		t.Errorf("stdout = %q, want %q (break should skip both the rest of the loop and its else-clause)", out, "1\n")
	}
}

func TestContinueSkipsToNextIteration(t *testing.T) {
	out, _, raised := runSource(t, "for x in [1, 2, 3]:\n    if x == 2:\n        continue\n    print(x)\n")
	if raised != nil {
		t.Fatalf("unexpected exception: %v", raised)
	}
	if out != "1\n3\n" {
		t.Errorf("stdout = %q, want %q", out, "1\n3\n")
	}
}

func TestSliceWithStepSelectsEveryNth(t *testing.T) {
	out, _, raised := runSource(t, "print([1, 2, 3, 4, 5][::2])\n")
	if raised != nil {
		t.Fatalf("unexpected exception: %v", raised)
	}
	if out != "[1, 3, 5]\n" {
		t.Errorf("stdout = %q, want %q", out, "[1, 3, 5]\n")
	}
}

func TestSliceWithStartStopAndStep(t *testing.T) {
	out, _, raised := runSource(t, "print([0, 1, 2, 3, 4, 5, 6][1:6:2])\n")
	if raised != nil {
		t.Fatalf("unexpected exception: %v", raised)
	}
	if out != "[1, 3, 5]\n" {
		t.Errorf("stdout = %q, want %q", out, "[1, 3, 5]\n")
	}
}

func TestStringIteration(t *testing.T) {
	out, _, raised := runSource(t, "for c in 'ab':\n    print(c)\n")
	if raised != nil {
		t.Fatalf("unexpected exception: %v", raised)
	}
	if out != "a\nb\n" {
		t.Errorf("stdout = %q, want %q", out, "a\nb\n")
	}
}
