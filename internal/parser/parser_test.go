package parser

import (
	"testing"

	"github.com/jm-research/pyst/internal/ast"
	"github.com/jm-research/pyst/pkg/token"
)

func mustParseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram(%q) error: %v", src, err)
	}
	return prog
}

func TestParseProgramAssignStatement(t *testing.T) {
	prog := mustParseProgram(t, "x = 1\n")
	if len(prog.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Statements))
	}
	assign, ok := prog.Statements[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.AssignStatement", prog.Statements[0])
	}
	if len(assign.Targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(assign.Targets))
	}
	ident, ok := assign.Targets[0].(*ast.Identifier)
	if !ok || ident.Name != "x" {
		t.Errorf("target = %#v, want identifier %q", assign.Targets[0], "x")
	}
	if _, ok := assign.Value.(*ast.NumberLiteral); !ok {
		t.Errorf("value type = %T, want *ast.NumberLiteral", assign.Value)
	}
}

func TestParseProgramChainedAssignment(t *testing.T) {
	prog := mustParseProgram(t, "a = b = 1\n")
	assign := prog.Statements[0].(*ast.AssignStatement)
	if len(assign.Targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(assign.Targets))
	}
}

func TestParseProgramBinaryOpPrecedence(t *testing.T) {
	prog := mustParseProgram(t, "x = 2 + 3 * 4\n")
	assign := prog.Statements[0].(*ast.AssignStatement)
	top, ok := assign.Value.(*ast.BinaryOp)
	if !ok {
		t.Fatalf("value type = %T, want *ast.BinaryOp", assign.Value)
	}
	if top.Operator != token.PLUS {
		t.Errorf("top operator = %s, want PLUS", top.Operator)
	}
	right, ok := top.Right.(*ast.BinaryOp)
	if !ok || right.Operator != token.STAR {
		t.Errorf("right operand = %#v, want a STAR BinaryOp (multiplication should bind tighter)", top.Right)
	}
}

func TestParseProgramChainedComparison(t *testing.T) {
	prog := mustParseProgram(t, "ok = 1 < 2 < 3\n")
	assign := prog.Statements[0].(*ast.AssignStatement)
	cmp, ok := assign.Value.(*ast.Comparison)
	if !ok {
		t.Fatalf("value type = %T, want *ast.Comparison", assign.Value)
	}
	if len(cmp.Operands) != 3 || len(cmp.Ops) != 2 {
		t.Errorf("comparison shape = %d operands, %d ops; want 3 and 2", len(cmp.Operands), len(cmp.Ops))
	}
}

func TestParseProgramBoolOpShortCircuitShape(t *testing.T) {
	prog := mustParseProgram(t, "ok = a and b or c\n")
	assign := prog.Statements[0].(*ast.AssignStatement)
	top, ok := assign.Value.(*ast.BoolOp)
	if !ok || top.Operator != token.OR {
		t.Fatalf("value = %#v, want a top-level OR BoolOp (lower precedence than `and`)", assign.Value)
	}
	if _, ok := top.Left.(*ast.BoolOp); !ok {
		t.Errorf("left operand = %#v, want a nested `and` BoolOp", top.Left)
	}
}

func TestParseProgramIfElifElse(t *testing.T) {
	prog := mustParseProgram(t, "if x:\n    y = 1\nelif z:\n    y = 2\nelse:\n    y = 3\n")
	ifStmt, ok := prog.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.IfStatement", prog.Statements[0])
	}
	if len(ifStmt.ElseBody) != 1 {
		t.Fatalf("got %d else-body statements, want 1 (the nested elif IfStatement)", len(ifStmt.ElseBody))
	}
	elif, ok := ifStmt.ElseBody[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("elif representation = %T, want a nested *ast.IfStatement", ifStmt.ElseBody[0])
	}
	if len(elif.ElseBody) != 1 {
		t.Errorf("got %d nested else-body statements, want 1 (the final else)", len(elif.ElseBody))
	}
}

func TestParseProgramWhileElse(t *testing.T) {
	prog := mustParseProgram(t, "while x:\n    x = x - 1\nelse:\n    done = True\n")
	w, ok := prog.Statements[0].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.WhileStatement", prog.Statements[0])
	}
	if len(w.ElseBody) != 1 {
		t.Errorf("got %d else-body statements, want 1", len(w.ElseBody))
	}
}

func TestParseProgramForTargetsAndIterables(t *testing.T) {
	prog := mustParseProgram(t, "for x in items:\n    print(x)\n")
	f, ok := prog.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.ForStatement", prog.Statements[0])
	}
	if len(f.Targets) != 1 || len(f.Iterables) != 1 {
		t.Errorf("for-statement shape = %d targets, %d iterables; want 1 and 1", len(f.Targets), len(f.Iterables))
	}
}

func TestParseProgramFunctionDefParams(t *testing.T) {
	prog := mustParseProgram(t, "def add(a, b):\n    return a + b\n")
	fn, ok := prog.Statements[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.FunctionDef", prog.Statements[0])
	}
	if fn.Name != "add" {
		t.Errorf("name = %q, want %q", fn.Name, "add")
	}
	if len(fn.Params) != 2 || fn.Params[0] != "a" || fn.Params[1] != "b" {
		t.Errorf("params = %v, want [a b]", fn.Params)
	}
}

func TestParseProgramClassDefBases(t *testing.T) {
	prog := mustParseProgram(t, "class Point(object):\n    def __init__(self, x):\n        self.x = x\n")
	cls, ok := prog.Statements[0].(*ast.ClassDef)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.ClassDef", prog.Statements[0])
	}
	if cls.Name != "Point" {
		t.Errorf("name = %q, want %q", cls.Name, "Point")
	}
	if len(cls.Bases) != 1 || cls.Bases[0] != "object" {
		t.Errorf("bases = %v, want [object]", cls.Bases)
	}
}

func TestParseProgramTryExceptElseFinally(t *testing.T) {
	src := "try:\n    risky()\nexcept TypeError as e:\n    print(e)\nexcept:\n    pass\nelse:\n    ok()\nfinally:\n    cleanup()\n"
	prog := mustParseProgram(t, src)
	tryStmt, ok := prog.Statements[0].(*ast.TryStatement)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.TryStatement", prog.Statements[0])
	}
	if len(tryStmt.Handlers) != 2 {
		t.Fatalf("got %d handlers, want 2", len(tryStmt.Handlers))
	}
	if tryStmt.Handlers[0].Type == nil || tryStmt.Handlers[0].Name != "e" {
		t.Errorf("first handler = %#v, want a typed handler bound to %q", tryStmt.Handlers[0], "e")
	}
	if tryStmt.Handlers[1].Type != nil {
		t.Errorf("second handler type = %#v, want nil (bare except)", tryStmt.Handlers[1].Type)
	}
	if tryStmt.Else == nil {
		t.Error("expected an else-clause")
	}
	if tryStmt.Finally == nil {
		t.Error("expected a finally-clause")
	}
}

func TestParseProgramCallWithArgs(t *testing.T) {
	prog := mustParseProgram(t, "print(1, 2, 3)\n")
	exprStmt, ok := prog.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("statement type = %T, want *ast.ExpressionStatement", prog.Statements[0])
	}
	call, ok := exprStmt.Value.(*ast.Call)
	if !ok {
		t.Fatalf("value type = %T, want *ast.Call", exprStmt.Value)
	}
	if len(call.Args) != 3 {
		t.Errorf("got %d args, want 3", len(call.Args))
	}
}

func TestParseProgramAttributeAndSubscriptTrailers(t *testing.T) {
	prog := mustParseProgram(t, "y = x.attr[0]\n")
	assign := prog.Statements[0].(*ast.AssignStatement)
	sub, ok := assign.Value.(*ast.Subscript)
	if !ok {
		t.Fatalf("value type = %T, want *ast.Subscript", assign.Value)
	}
	if _, ok := sub.Value.(*ast.Attribute); !ok {
		t.Errorf("subscripted value = %#v, want *ast.Attribute", sub.Value)
	}
}

func TestParseProgramListAndDictLiterals(t *testing.T) {
	prog := mustParseProgram(t, "xs = [1, 2, 3]\nd = {'a': 1}\n")
	list := prog.Statements[0].(*ast.AssignStatement).Value.(*ast.ListLiteral)
	if len(list.Elements) != 3 {
		t.Errorf("list elements = %d, want 3", len(list.Elements))
	}
	dict := prog.Statements[1].(*ast.AssignStatement).Value.(*ast.DictLiteral)
	if len(dict.Entries) != 1 {
		t.Errorf("dict entries = %d, want 1", len(dict.Entries))
	}
}

func TestParseProgramMissingColonIsAnError(t *testing.T) {
	_, err := ParseProgram("if x\n    y = 1\n")
	if err == nil {
		t.Fatal("expected an error for a missing colon")
	}
}

func TestParseProgramUnterminatedBlockIsIncomplete(t *testing.T) {
	_, err := ParseProgram("if x:\n")
	if err == nil {
		t.Fatal("expected an incomplete-input error")
	}
	if err.Error() != incompleteInputMessage {
		t.Errorf("error = %q, want %q", err.Error(), incompleteInputMessage)
	}
}

func TestParseExpressionSimple(t *testing.T) {
	expr, err := ParseExpression("1 + 2")
	if err != nil {
		t.Fatalf("ParseExpression error: %v", err)
	}
	if _, ok := expr.(*ast.BinaryOp); !ok {
		t.Errorf("expression type = %T, want *ast.BinaryOp", expr)
	}
}

func TestParseStatementSimple(t *testing.T) {
	stmt, err := ParseStatement("x = 1")
	if err != nil {
		t.Fatalf("ParseStatement error: %v", err)
	}
	if _, ok := stmt.(*ast.AssignStatement); !ok {
		t.Errorf("statement type = %T, want *ast.AssignStatement", stmt)
	}
}
