package bytecode

import (
	"github.com/jm-research/pyst/internal/ast"
	"github.com/jm-research/pyst/pkg/token"
)

func (c *Compiler) compileStatements(body ast.Block) {
	for _, stmt := range body {
		c.compileStatement(stmt)
	}
}

func (c *Compiler) compileStatement(stmt ast.Statement) {
	c.setLoc(stmt.Pos())

	switch s := stmt.(type) {
	case *ast.PassStatement:
		c.emit(Instruction{Op: OpPass})

	case *ast.BreakStatement:
		c.emit(Instruction{Op: OpBreak})

	case *ast.ContinueStatement:
		c.emit(Instruction{Op: OpContinue})

	case *ast.ReturnStatement:
		c.compileReturn(s)

	case *ast.RaiseStatement:
		if s.Value == nil {
			c.abort("bare raise is not supported at %s", s.Pos())
		}
		c.compileExpression(s.Value)
		c.emit(Instruction{Op: OpRaise, Size: 1})

	case *ast.DeleteStatement:
		// Removing names from a scope is not implemented; silently a
		// no-op at the bytecode level.

	case *ast.AssertStatement:
		c.compileAssert(s)

	case *ast.ImportStatement:
		c.compileImport(s)

	case *ast.ExpressionStatement:
		c.compileExpression(s.Value)
		c.emit(Instruction{Op: OpPop})

	case *ast.IfStatement:
		c.compileIf(s)

	case *ast.WhileStatement:
		c.compileWhile(s)

	case *ast.ForStatement:
		c.compileFor(s)

	case *ast.WithStatement:
		// Context-manager protocol (__enter__/__exit__) is unimplemented;
		// the body still runs so `with` is usable as scoping sugar
		// without resource cleanup.
		c.compileStatements(s.Body)

	case *ast.TryStatement:
		c.compileTry(s)

	case *ast.ClassDef:
		c.compileClassDef(s)

	case *ast.FunctionDef:
		c.compileFunctionDef(s)

	case *ast.AssignStatement:
		// Chained assignment (`a = b = value`) binds every target to the
		// same value: DUP_TOP before all but the last store so each
		// target consumes its own copy.
		c.compileExpression(s.Value)
		for i, target := range s.Targets {
			if i < len(s.Targets)-1 {
				c.emit(Instruction{Op: OpDupTop})
			}
			c.compileStore(target)
		}

	case *ast.AugAssignStatement:
		c.compileExpression(s.Target)
		c.compileExpression(s.Value)
		c.emit(Instruction{Op: OpBinaryOp, Operator: augToBinary(s.Operator)})
		c.compileStore(s.Target)

	default:
		c.abort("unsupported statement %T at %s", stmt, stmt.Pos())
	}
}

func (c *Compiler) compileReturn(s *ast.ReturnStatement) {
	switch len(s.Values) {
	case 0:
		// A bare `return` pushes None before RETURN_VALUE.
		c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstNone}})
	case 1:
		c.compileExpression(s.Values[0])
	default:
		for _, v := range s.Values {
			c.compileExpression(v)
		}
		c.emit(Instruction{Op: OpBuildTuple, Size: len(s.Values)})
	}
	c.emit(Instruction{Op: OpReturnValue})
}

func (c *Compiler) compileAssert(s *ast.AssertStatement) {
	c.compileExpression(s.Test)
	end := c.newLabel()
	c.emit(Instruction{Op: OpJumpIf, Target: end})
	c.emit(Instruction{Op: OpLoadName, Name: "AssertionError"})
	if s.Message != nil {
		c.compileExpression(s.Message)
		c.emit(Instruction{Op: OpCallFunction, Size: 1})
	} else {
		c.emit(Instruction{Op: OpCallFunction, Size: 0})
	}
	c.emit(Instruction{Op: OpRaise, Size: 1})
	c.setLabel(end)
}

func (c *Compiler) compileImport(s *ast.ImportStatement) {
	for _, item := range s.Items {
		c.emit(Instruction{Op: OpImport, Name: item.Module, Symbol: item.Symbol})
		name := item.Alias
		if name == "" {
			if item.Symbol != "" {
				name = item.Symbol
			} else {
				name = item.Module
			}
		}
		c.emit(Instruction{Op: OpStoreName, Name: name})
	}
}

func (c *Compiler) compileIf(s *ast.IfStatement) {
	end := c.newLabel()
	if s.ElseBody == nil {
		c.compileJumpIfFalse(s.Test, end)
		c.compileStatements(s.Body)
	} else {
		elseLabel := c.newLabel()
		c.compileJumpIfFalse(s.Test, elseLabel)
		c.compileStatements(s.Body)
		c.emit(Instruction{Op: OpJump, Target: end})
		c.setLabel(elseLabel)
		c.compileStatements(s.ElseBody)
	}
	c.setLabel(end)
}

// compileWhile implements while/while-else. The else-clause, if present,
// runs on normal test-false exit; `break` targets `end`, placed after the
// else-body, so a broken-out-of loop skips it.
func (c *Compiler) compileWhile(s *ast.WhileStatement) {
	start := c.newLabel()
	end := c.newLabel()
	elseLabel := end
	if s.ElseBody != nil {
		elseLabel = c.newLabel()
	}
	c.emit(Instruction{Op: OpSetupLoop, Start: start, End: end, Else: elseLabel})
	c.setLabel(start)
	c.compileJumpIfFalse(s.Test, elseLabel)
	c.compileStatements(s.Body)
	c.emit(Instruction{Op: OpJump, Target: start})
	if s.ElseBody != nil {
		c.setLabel(elseLabel)
		c.compileStatements(s.ElseBody)
	}
	c.setLabel(end)
	c.emit(Instruction{Op: OpPopBlock})
}

// compileFor implements for/for-else. FOR_ITER's exhaustion path jumps to
// the loop block's Else target (equal to End when no else-clause); break
// jumps to End directly, skipping the else-body.
func (c *Compiler) compileFor(s *ast.ForStatement) {
	for _, it := range s.Iterables {
		c.compileExpression(it)
	}
	c.emit(Instruction{Op: OpGetIter})

	start := c.newLabel()
	end := c.newLabel()
	elseLabel := end
	if s.ElseBody != nil {
		elseLabel = c.newLabel()
	}
	c.emit(Instruction{Op: OpSetupLoop, Start: start, End: end, Else: elseLabel})
	c.setLabel(start)
	c.emit(Instruction{Op: OpForIter})
	for _, target := range s.Targets {
		c.compileStore(target)
	}
	c.compileStatements(s.Body)
	c.emit(Instruction{Op: OpJump, Target: start})
	if s.ElseBody != nil {
		c.setLabel(elseLabel)
		c.compileStatements(s.ElseBody)
	}
	c.setLabel(end)
	c.emit(Instruction{Op: OpPopBlock})
}

// compileTry lowers try/except/else/finally. Each handler gets a
// placeholder-match test emitted as a real type comparison.
func (c *Compiler) compileTry(s *ast.TryStatement) {
	handlerLabel := c.newLabel()
	finallyLabel := c.newLabel()
	elseLabel := c.newLabel()
	reraiseLabel := c.newLabel()

	c.emit(Instruction{Op: OpSetupExcept, Handler: handlerLabel})
	c.compileStatements(s.Body)
	c.emit(Instruction{Op: OpPopBlock})
	c.emit(Instruction{Op: OpJump, Target: elseLabel})

	c.setLabel(handlerLabel)
	for i, h := range s.Handlers {
		last := i == len(s.Handlers)-1
		nextLabel := reraiseLabel
		if !last {
			nextLabel = c.newLabel()
		}
		if h.Type != nil {
			// Top of stack holds the propagating exception (pushed by the
			// VM when it catches into this handler); ExceptionMatch pops
			// the compiled type expression and pushes a match bool without
			// disturbing the exception value beneath it.
			c.compileExpression(h.Type)
			c.emit(Instruction{Op: OpExceptionMatch})
			c.emit(Instruction{Op: OpUnaryOp, Operator: token.NOT})
			c.emit(Instruction{Op: OpJumpIf, Target: nextLabel})
		}
		if h.Name != "" {
			c.emit(Instruction{Op: OpStoreName, Name: h.Name})
		} else {
			c.emit(Instruction{Op: OpPop})
		}
		c.compileStatements(h.Body)
		c.emit(Instruction{Op: OpJump, Target: finallyLabel})
		if !last {
			c.setLabel(nextLabel)
		}
	}
	// No handler matched: re-raise the exception still on top of stack.
	c.setLabel(reraiseLabel)
	c.emit(Instruction{Op: OpRaise, Size: 1})

	c.setLabel(elseLabel)
	if s.Else != nil {
		c.compileStatements(s.Else)
	}

	c.setLabel(finallyLabel)
	if s.Finally != nil {
		c.compileStatements(s.Finally)
	}
}

func (c *Compiler) compileStore(target ast.Expression) {
	switch t := target.(type) {
	case *ast.Identifier:
		c.emit(Instruction{Op: OpStoreName, Name: t.Name})
	case *ast.Subscript:
		c.compileExpression(t.Value)
		c.compileExpression(t.Index)
		c.emit(Instruction{Op: OpStoreSubscript})
	case *ast.Attribute:
		c.compileExpression(t.Value)
		c.emit(Instruction{Op: OpStoreAttr, Name: t.Name})
	default:
		c.abort("invalid assignment target %T at %s", target, target.Pos())
	}
}

func augToBinary(op token.Type) token.Type {
	switch op {
	case token.PLUS_EQ:
		return token.PLUS
	case token.MINUS_EQ:
		return token.MINUS
	case token.STAR_EQ:
		return token.STAR
	case token.SLASH_EQ:
		return token.SLASH
	case token.DSLASH_EQ:
		return token.DSLASH
	case token.PERCENT_EQ:
		return token.PERCENT
	case token.DSTAR_EQ:
		return token.DSTAR
	case token.AMP_EQ:
		return token.AMP
	case token.PIPE_EQ:
		return token.PIPE
	case token.CARET_EQ:
		return token.CARET
	case token.LSHIFT_EQ:
		return token.LSHIFT
	case token.RSHIFT_EQ:
		return token.RSHIFT
	}
	return op
}
