package bytecode

import (
	"fmt"

	"github.com/jm-research/pyst/internal/ast"
	"github.com/jm-research/pyst/internal/errors"
	"github.com/jm-research/pyst/internal/parser"
	"github.com/jm-research/pyst/pkg/token"
)

// Mode selects how the top level of a compilation unit is lowered: Exec
// runs a full program to completion, Single additionally prints the
// value of every bare expression-statement (REPL behavior).
type Mode int

const (
	ModeExec Mode = iota
	ModeSingle
)

// Compiler walks a syntax tree and emits one CodeObject per
// function/class/lambda body plus the top level, with labels scoped
// per CodeObject rather than shared across the whole compilation.
type Compiler struct {
	stack []*CodeObject
	loc   token.Position
}

// CompileProgram parses text with the parser collaborator and lowers it
// into a single top-level CodeObject (mode ModeExec or ModeSingle).
func CompileProgram(text string, mode Mode) (code *CodeObject, err error) {
	defer errors.Recover(&err)

	prog, perr := parser.ParseProgram(text)
	if perr != nil {
		return nil, perr
	}
	c := &Compiler{}
	c.push("<module>", nil)
	for _, stmt := range prog.Statements {
		if mode == ModeSingle {
			if exprStmt, ok := stmt.(*ast.ExpressionStatement); ok {
				c.setLoc(exprStmt.Pos())
				c.compileExpression(exprStmt.Value)
				c.emit(Instruction{Op: OpPrintExpr})
				continue
			}
		}
		c.compileStatement(stmt)
	}
	c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstNone}})
	c.emit(Instruction{Op: OpReturnValue})
	return c.pop(), nil
}

func (c *Compiler) push(name string, params []string) {
	c.stack = append(c.stack, newCodeObject(name, params))
}

func (c *Compiler) pop() *CodeObject {
	n := len(c.stack) - 1
	co := c.stack[n]
	c.stack = c.stack[:n]
	return co
}

func (c *Compiler) top() *CodeObject {
	return c.stack[len(c.stack)-1]
}

func (c *Compiler) setLoc(pos token.Position) {
	c.loc = pos
}

func (c *Compiler) emit(instr Instruction) {
	c.top().emit(instr, c.loc)
}

func (c *Compiler) newLabel() Label {
	return c.top().newLabel()
}

func (c *Compiler) setLabel(l Label) {
	c.top().setLabel(l)
}

func (c *Compiler) abort(format string, args ...any) {
	panic(&errors.CompileError{Message: fmt.Sprintf(format, args...)})
}
