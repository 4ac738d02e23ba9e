package bytecode

import (
	"strconv"

	"github.com/jm-research/pyst/internal/ast"
)

// compileExpression lowers a single expression, leaving exactly one value
// on top of the stack.
func (c *Compiler) compileExpression(expr ast.Expression) {
	c.setLoc(expr.Pos())

	switch e := expr.(type) {
	case *ast.Identifier:
		c.emit(Instruction{Op: OpLoadName, Name: e.Name})

	case *ast.NumberLiteral:
		c.emit(Instruction{Op: OpLoadConst, Const: numberConstant(e.Literal)})

	case *ast.StringLiteral:
		c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstString, Str: e.Value}})

	case *ast.TrueLiteral:
		c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstBool, Bool: true}})

	case *ast.FalseLiteral:
		c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstBool, Bool: false}})

	case *ast.NoneLiteral:
		c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstNone}})

	case *ast.ListLiteral:
		for _, el := range e.Elements {
			c.compileExpression(el)
		}
		c.emit(Instruction{Op: OpBuildList, Size: len(e.Elements)})

	case *ast.TupleLiteral:
		for _, el := range e.Elements {
			c.compileExpression(el)
		}
		c.emit(Instruction{Op: OpBuildTuple, Size: len(e.Elements)})

	case *ast.DictLiteral:
		for _, entry := range e.Entries {
			c.compileExpression(entry.Key)
			c.compileExpression(entry.Value)
		}
		c.emit(Instruction{Op: OpBuildMap, Size: len(e.Entries)})

	case *ast.SliceLiteral:
		c.compileSlicePart(e.Start)
		c.compileSlicePart(e.Stop)
		c.compileSlicePart(e.Step)
		c.emit(Instruction{Op: OpBuildSlice, Size: 3})

	case *ast.BoolOp:
		// A BoolOp used as a plain value (not directly under an `if`/
		// `while` test) still needs a real boolean result: compile a
		// jump-if-true/false pair that lands on pushing True/False.
		trueLabel := c.newLabel()
		end := c.newLabel()
		c.compileJumpIfTrue(e, trueLabel)
		c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstBool, Bool: false}})
		c.emit(Instruction{Op: OpJump, Target: end})
		c.setLabel(trueLabel)
		c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstBool, Bool: true}})
		c.setLabel(end)

	case *ast.BinaryOp:
		c.compileExpression(e.Left)
		c.compileExpression(e.Right)
		c.emit(Instruction{Op: OpBinaryOp, Operator: e.Operator})

	case *ast.UnaryOp:
		c.compileExpression(e.Operand)
		c.emit(Instruction{Op: OpUnaryOp, Operator: e.Operator})

	case *ast.Comparison:
		c.compileComparison(e)

	case *ast.Subscript:
		c.compileExpression(e.Value)
		c.compileExpression(e.Index)
		c.emit(Instruction{Op: OpLoadSubscript})

	case *ast.Attribute:
		c.compileExpression(e.Value)
		c.emit(Instruction{Op: OpLoadAttr, Name: e.Name})

	case *ast.Call:
		c.compileExpression(e.Func)
		for _, arg := range e.Args {
			c.compileExpression(arg)
		}
		c.emit(Instruction{Op: OpCallFunction, Size: len(e.Args)})

	case *ast.Lambda:
		c.compileLambda(e)

	default:
		c.abort("unsupported expression %T at %s", expr, expr.Pos())
	}
}

func (c *Compiler) compileSlicePart(part ast.Expression) {
	if part == nil {
		c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstNone}})
		return
	}
	c.compileExpression(part)
}

// compileComparison lowers a chained comparison (`a < b < c`) into a
// left-to-right sequence of pairwise COMPARE_OP applications that
// short-circuits to a false result the instant one pair fails, without
// re-evaluating the shared middle operand (CPython-style chained
// comparison lowering; ).
func (c *Compiler) compileComparison(e *ast.Comparison) {
	if len(e.Ops) == 1 {
		c.compileExpression(e.Operands[0])
		c.compileExpression(e.Operands[1])
		c.emit(Instruction{Op: OpCompareOp, Operator: e.Ops[0]})
		return
	}

	cleanup := c.newLabel()
	end := c.newLabel()
	c.compileExpression(e.Operands[0])
	for i := 0; i < len(e.Ops)-1; i++ {
		c.compileExpression(e.Operands[i+1])
		// Duplicate the shared operand and rotate it below the pair
		// about to be compared, so it survives as the next pair's left
		// operand if this comparison doesn't already decide the result.
		c.emit(Instruction{Op: OpDupTop})
		c.emit(Instruction{Op: OpRotThree})
		c.emit(Instruction{Op: OpCompareOp, Operator: e.Ops[i]})
		c.emit(Instruction{Op: OpJumpIfFalseOrPop, Target: cleanup})
	}
	c.compileExpression(e.Operands[len(e.Ops)])
	c.emit(Instruction{Op: OpCompareOp, Operator: e.Ops[len(e.Ops)-1]})
	c.emit(Instruction{Op: OpJump, Target: end})

	c.setLabel(cleanup)
	// A short-circuit exit leaves [dupedOperand, False] on the stack;
	// discard the duped operand so only the boolean result remains.
	c.emit(Instruction{Op: OpRotTwo})
	c.emit(Instruction{Op: OpPop})

	c.setLabel(end)
}

func numberConstant(lexeme string) Constant {
	if isFloatLexeme(lexeme) {
		f, _ := strconv.ParseFloat(lexeme, 64)
		return Constant{Kind: ConstFloat, Float: f}
	}
	n, _ := strconv.ParseInt(lexeme, 0, 32)
	return Constant{Kind: ConstInt, Int: int32(n)}
}

func isFloatLexeme(s string) bool {
	for _, r := range s {
		if r == '.' || r == 'e' || r == 'E' {
			return true
		}
	}
	return false
}
