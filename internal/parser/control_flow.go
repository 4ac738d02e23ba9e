package parser

import (
	"github.com/jm-research/pyst/internal/ast"
	"github.com/jm-research/pyst/pkg/token"
)

// parseIf parses `if test: body [elif test: body]* [else: body]`. Each
// `elif` becomes a single-statement ElseBody containing a nested
// IfStatement.
func (p *Parser) parseIf() ast.Statement {
	pos := p.c.cur().Start
	p.c.advance() // if
	test := p.parseTestExpr()
	body := p.parseBlock()
	stmt := &ast.IfStatement{NodeBase: ast.NodeBase{Location: pos}, Test: test, Body: body}

	if p.c.is(token.ELIF) {
		elifPos := p.c.cur().Start
		p.c.advance()
		elifTest := p.parseTestExpr()
		elifBody := p.parseBlock()
		nested := p.parseElifChain()
		inner := &ast.IfStatement{NodeBase: ast.NodeBase{Location: elifPos}, Test: elifTest, Body: elifBody, ElseBody: nested}
		stmt.ElseBody = ast.Block{inner}
		return stmt
	}
	if p.c.is(token.ELSE) {
		p.c.advance()
		stmt.ElseBody = p.parseBlock()
	}
	return stmt
}

// parseElifChain parses any remaining `elif`/`else` clauses after the
// first `elif` has already been consumed by the caller.
func (p *Parser) parseElifChain() ast.Block {
	if p.c.is(token.ELIF) {
		pos := p.c.cur().Start
		p.c.advance()
		test := p.parseTestExpr()
		body := p.parseBlock()
		nested := p.parseElifChain()
		return ast.Block{&ast.IfStatement{NodeBase: ast.NodeBase{Location: pos}, Test: test, Body: body, ElseBody: nested}}
	}
	if p.c.is(token.ELSE) {
		p.c.advance()
		return p.parseBlock()
	}
	return nil
}

func (p *Parser) parseWhile() ast.Statement {
	pos := p.c.cur().Start
	p.c.advance() // while
	test := p.parseTestExpr()
	body := p.parseBlock()
	stmt := &ast.WhileStatement{NodeBase: ast.NodeBase{Location: pos}, Test: test, Body: body}
	if p.c.is(token.ELSE) {
		p.c.advance()
		stmt.ElseBody = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseFor() ast.Statement {
	pos := p.c.cur().Start
	p.c.advance() // for
	targets := p.parseTargetList()
	p.expect(token.IN)
	iterables := p.parseExpressionList()
	body := p.parseBlock()
	stmt := &ast.ForStatement{NodeBase: ast.NodeBase{Location: pos}, Targets: targets, Iterables: iterables, Body: body}
	if p.c.is(token.ELSE) {
		p.c.advance()
		stmt.ElseBody = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseTargetList() []ast.Expression {
	var targets []ast.Expression
	targets = append(targets, p.parseBitOr())
	for p.accept(token.COMMA) {
		if p.c.is(token.IN) {
			break
		}
		targets = append(targets, p.parseBitOr())
	}
	return targets
}

func (p *Parser) parseWith() ast.Statement {
	pos := p.c.cur().Start
	p.c.advance() // with
	stmt := &ast.WithStatement{NodeBase: ast.NodeBase{Location: pos}}
	for {
		item := ast.WithItem{Item: p.parseTestExpr()}
		if p.accept(token.AS) {
			item.Target = p.parseTestExpr()
		}
		stmt.Items = append(stmt.Items, item)
		if !p.accept(token.COMMA) {
			break
		}
	}
	stmt.Body = p.parseBlock()
	return stmt
}

func (p *Parser) parseTry() ast.Statement {
	pos := p.c.cur().Start
	p.c.advance() // try
	stmt := &ast.TryStatement{NodeBase: ast.NodeBase{Location: pos}}
	stmt.Body = p.parseBlock()

	for p.c.is(token.EXCEPT) {
		p.c.advance()
		h := ast.ExceptHandler{}
		if !p.c.is(token.COLON) {
			h.Type = p.parseTestExpr()
			if p.accept(token.AS) {
				h.Name = p.expect(token.IDENT).Literal
			}
		}
		h.Body = p.parseBlock()
		stmt.Handlers = append(stmt.Handlers, h)
	}
	if p.c.is(token.ELSE) {
		p.c.advance()
		stmt.Else = p.parseBlock()
	}
	if p.c.is(token.FINALLY) {
		p.c.advance()
		stmt.Finally = p.parseBlock()
	}
	return stmt
}
