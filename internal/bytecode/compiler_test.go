package bytecode

import "testing"

// validateLabels checks that every Label referenced by an instruction in
// code (and recursively in any nested code constants) resolves through
// that code object's own LabelMap.
func validateLabels(t *testing.T, code *CodeObject) {
	t.Helper()
	check := func(l Label, used bool, field string) {
		if !used {
			return
		}
		if _, ok := code.LabelMap[l]; !ok {
			t.Errorf("%s: instruction references unresolved label %v in field %s", code.Name, l, field)
		}
	}
	for _, instr := range code.Instructions {
		switch instr.Op {
		case OpJump, OpJumpIf, OpJumpIfFalseOrPop:
			check(instr.Target, true, "Target")
		case OpSetupLoop:
			check(instr.Start, true, "Start")
			check(instr.End, true, "End")
			check(instr.Else, true, "Else")
		case OpSetupExcept:
			check(instr.Handler, true, "Handler")
		}
		if instr.Op == OpLoadConst && instr.Const.Kind == ConstCode {
			validateLabels(t, instr.Const.Code)
		}
	}
}

func mustCompile(t *testing.T, src string) *CodeObject {
	t.Helper()
	code, err := CompileProgram(src, ModeExec)
	if err != nil {
		t.Fatalf("CompileProgram(%q) error: %v", src, err)
	}
	return code
}

func TestCompileProgramArithmeticLabelsResolve(t *testing.T) {
	code := mustCompile(t, "x = 2 + 3 * 4\nprint(x)\n")
	validateLabels(t, code)
}

func TestCompileProgramIfElseLabelsResolve(t *testing.T) {
	code := mustCompile(t, "if x:\n    y = 1\nelif z:\n    y = 2\nelse:\n    y = 3\n")
	validateLabels(t, code)
}

func TestCompileProgramWhileElseLabelsResolve(t *testing.T) {
	code := mustCompile(t, "while x:\n    x = x - 1\nelse:\n    done = True\n")
	validateLabels(t, code)
}

func TestCompileProgramForElseLabelsResolve(t *testing.T) {
	code := mustCompile(t, "for x in items:\n    print(x)\nelse:\n    print('done')\n")
	validateLabels(t, code)
}

func TestCompileProgramTryExceptLabelsResolve(t *testing.T) {
	code := mustCompile(t, "try:\n    risky()\nexcept ValueError as e:\n    print(e)\nexcept:\n    pass\nelse:\n    ok()\nfinally:\n    cleanup()\n")
	validateLabels(t, code)
}

func TestCompileProgramFunctionDefLabelsResolve(t *testing.T) {
	code := mustCompile(t, "def add(a, b):\n    return a + b\n")
	validateLabels(t, code)
	found := false
	for _, instr := range code.Instructions {
		if instr.Op == OpLoadConst && instr.Const.Kind == ConstCode {
			found = true
			if instr.Const.Code.Name != "add" {
				t.Errorf("nested code object name = %q, want %q", instr.Const.Code.Name, "add")
			}
			if len(instr.Const.Code.Params) != 2 {
				t.Errorf("nested code object params = %v, want 2 entries", instr.Const.Code.Params)
			}
		}
	}
	if !found {
		t.Error("expected a nested ConstCode constant for the function body")
	}
}

func TestCompileProgramClassDefLabelsResolve(t *testing.T) {
	code := mustCompile(t, "class Point(object):\n    def __init__(self, x):\n        self.x = x\n")
	validateLabels(t, code)
}

func TestCompileProgramChainedAssignmentDuplicatesValue(t *testing.T) {
	code := mustCompile(t, "a = b = 1\n")
	dupCount := 0
	storeCount := 0
	for _, instr := range code.Instructions {
		if instr.Op == OpDupTop {
			dupCount++
		}
		if instr.Op == OpStoreName {
			storeCount++
		}
	}
	if dupCount != 1 {
		t.Errorf("DUP_TOP count = %d, want 1 (one fewer than the number of targets)", dupCount)
	}
	if storeCount != 2 {
		t.Errorf("STORE_NAME count = %d, want 2", storeCount)
	}
}

func TestCompileProgramChainedComparisonLabelsResolve(t *testing.T) {
	code := mustCompile(t, "ok = 1 < 2 < 3\n")
	validateLabels(t, code)
	hasRotThree := false
	for _, instr := range code.Instructions {
		if instr.Op == OpRotThree {
			hasRotThree = true
		}
	}
	if !hasRotThree {
		t.Error("expected a ROT_THREE in a chained comparison's lowering")
	}
}

func TestCompileProgramBareReturnPushesNone(t *testing.T) {
	code := mustCompile(t, "def f():\n    return\n")
	var body *CodeObject
	for _, instr := range code.Instructions {
		if instr.Op == OpLoadConst && instr.Const.Kind == ConstCode {
			body = instr.Const.Code
		}
	}
	if body == nil {
		t.Fatal("expected a nested code object for f")
	}
	// The bare return is the body's first statement, so its own lowering
	// is the first two instructions (the implicit epilogue follows it).
	n := len(body.Instructions)
	if n < 2 {
		t.Fatalf("function body too short: %d instructions", n)
	}
	first, second := body.Instructions[0], body.Instructions[1]
	if second.Op != OpReturnValue {
		t.Errorf("second instruction = %v, want RETURN_VALUE", second.Op)
	}
	if first.Op != OpLoadConst || first.Const.Kind != ConstNone {
		t.Errorf("instruction before RETURN_VALUE = %v, want LOAD_CONST None", first)
	}
}

func TestCompileProgramSyntaxErrorReturnsError(t *testing.T) {
	_, err := CompileProgram("if x\n    y = 1\n", ModeExec)
	if err == nil {
		t.Fatal("expected a parse error for a missing colon")
	}
}
