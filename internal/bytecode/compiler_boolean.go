package bytecode

import (
	"github.com/jm-research/pyst/internal/ast"
	"github.com/jm-research/pyst/pkg/token"
)

// compileJumpIfFalse and compileJumpIfTrue compile a boolean test with a
// real short-circuit, jumping to target without ever materializing the
// remaining operands when the outcome is already decided, falling back
// to "compile value; negate; jump-if" for any expression that isn't
// itself a BoolOp, which also handles a leading `not` correctly through
// double negation.

func (c *Compiler) compileJumpIfFalse(expr ast.Expression, target Label) {
	if b, ok := expr.(*ast.BoolOp); ok {
		switch b.Operator {
		case token.AND:
			// a and b is false if a is false, or a is true and b is false.
			c.compileJumpIfFalse(b.Left, target)
			c.compileJumpIfFalse(b.Right, target)
			return
		case token.OR:
			// a or b is false only if both a and b are false: skip the
			// jump-to-target when a is true, fall through to test b.
			after := c.newLabel()
			c.compileJumpIfTrue(b.Left, after)
			c.compileJumpIfFalse(b.Right, target)
			c.setLabel(after)
			return
		}
	}
	c.compileExpression(expr)
	c.emit(Instruction{Op: OpUnaryOp, Operator: token.NOT})
	c.emit(Instruction{Op: OpJumpIf, Target: target})
}

func (c *Compiler) compileJumpIfTrue(expr ast.Expression, target Label) {
	if b, ok := expr.(*ast.BoolOp); ok {
		switch b.Operator {
		case token.OR:
			// a or b is true if a is true, or a is false and b is true.
			c.compileJumpIfTrue(b.Left, target)
			c.compileJumpIfTrue(b.Right, target)
			return
		case token.AND:
			// a and b is true only if both are true: skip past target when
			// a is false, fall through to test b.
			after := c.newLabel()
			c.compileJumpIfFalse(b.Left, after)
			c.compileJumpIfTrue(b.Right, target)
			c.setLabel(after)
			return
		}
	}
	c.compileExpression(expr)
	c.emit(Instruction{Op: OpJumpIf, Target: target})
}
