package parser

import (
	"github.com/jm-research/pyst/internal/ast"
	"github.com/jm-research/pyst/pkg/token"
)

// Parser is a recursive-descent parser over a buffered token cursor.
type Parser struct {
	c *cursor
}

// ParseProgram implements the module's top-level entry point:
// `parse_program(text) → Program | error-message`.
func ParseProgram(text string) (prog *ast.Program, err error) {
	defer recoverError(&err)
	p := &Parser{c: newCursor(text)}
	prog = p.parseProgram()
	return prog, nil
}

// ParseStatement implements `parse_statement(text) → LocatedStatement | error-message`.
func ParseStatement(text string) (stmt ast.Statement, err error) {
	defer recoverError(&err)
	p := &Parser{c: newCursor(text)}
	p.skipNewlines()
	stmt = p.parseStatement()
	return stmt, nil
}

// ParseExpression implements `parse_expression(text) → Expression | error-message`.
func ParseExpression(text string) (expr ast.Expression, err error) {
	defer recoverError(&err)
	p := &Parser{c: newCursor(text)}
	expr = p.parseTestListExpr()
	return expr, nil
}

func (p *Parser) checkStringError() {
	if p.c.strErr != nil {
		fail("%s", p.c.strErr.Message)
	}
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipNewlines()
	for !p.c.is(token.EOF) {
		prog.Statements = append(prog.Statements, p.parseStatement())
		p.skipNewlines()
	}
	p.checkStringError()
	return prog
}

func (p *Parser) skipNewlines() {
	for p.c.is(token.NEWLINE) || p.c.is(token.SEMICOLON) {
		p.c.advance()
	}
}

// expect consumes the current token if it has type t, else fails. EOF in
// this position means the input is incomplete.
func (p *Parser) expect(t token.Type) token.Token {
	cur := p.c.cur()
	if cur.Type == token.EOF {
		p.checkStringError()
		failIncomplete()
	}
	if cur.Type != t {
		fail("expected %s, got %s at %s", t, cur.Type, cur.Start)
	}
	return p.c.advance()
}

func (p *Parser) accept(t token.Type) bool {
	if p.c.is(t) {
		p.c.advance()
		return true
	}
	return false
}

// parseBlock parses an indented suite: `:` NEWLINE INDENT stmt+ DEDENT, or
// one or more `;`-separated simple statements on the same line (`if x: y`).
func (p *Parser) parseBlock() ast.Block {
	p.expect(token.COLON)
	if p.c.is(token.NEWLINE) {
		p.c.advance()
		if p.c.is(token.EOF) {
			p.checkStringError()
			failIncomplete()
		}
		p.expect(token.INDENT)
		var block ast.Block
		p.skipNewlines()
		for !p.c.is(token.DEDENT) {
			if p.c.is(token.EOF) {
				p.checkStringError()
				failIncomplete()
			}
			block = append(block, p.parseStatement())
			p.skipNewlines()
		}
		p.expect(token.DEDENT)
		return block
	}
	// Single-line suite: one or more simple statements separated by `;`.
	var block ast.Block
	block = append(block, p.parseSimpleStatement())
	for p.accept(token.SEMICOLON) && !p.c.is(token.NEWLINE) && !p.c.is(token.EOF) {
		block = append(block, p.parseSimpleStatement())
	}
	if p.c.is(token.NEWLINE) {
		p.c.advance()
	}
	return block
}
