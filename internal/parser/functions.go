package parser

import (
	"github.com/jm-research/pyst/internal/ast"
	"github.com/jm-research/pyst/pkg/token"
)

func (p *Parser) parseFunctionDef() ast.Statement {
	pos := p.c.cur().Start
	p.c.advance() // def
	name := p.expect(token.IDENT).Literal
	params := p.parseParamList()
	if p.c.is(token.ARROW) {
		p.c.advance()
		p.parseTestExpr() // return annotation, not represented in the tree
	}
	body := p.parseBlock()
	return &ast.FunctionDef{NodeBase: ast.NodeBase{Location: pos}, Name: name, Params: params, Body: body}
}

func (p *Parser) parseParamList() []string {
	p.expect(token.LPAREN)
	var params []string
	for !p.c.is(token.RPAREN) {
		if p.c.is(token.STAR) || p.c.is(token.DSTAR) {
			p.c.advance()
		}
		params = append(params, p.expect(token.IDENT).Literal)
		if p.accept(token.ASSIGN) {
			p.parseTestExpr() // default value, not represented in the tree
		}
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseClassDef() ast.Statement {
	pos := p.c.cur().Start
	p.c.advance() // class
	name := p.expect(token.IDENT).Literal
	var bases []string
	if p.accept(token.LPAREN) {
		for !p.c.is(token.RPAREN) {
			bases = append(bases, p.parseDottedName())
			if !p.accept(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}
	body := p.parseBlock()
	return &ast.ClassDef{NodeBase: ast.NodeBase{Location: pos}, Name: name, Bases: bases, Body: body}
}

// parseLambda parses `lambda [params]: body` as an expression.
func (p *Parser) parseLambda() ast.Expression {
	pos := p.c.cur().Start
	p.c.advance() // lambda
	var params []string
	for !p.c.is(token.COLON) {
		params = append(params, p.expect(token.IDENT).Literal)
		if p.accept(token.ASSIGN) {
			p.parseTestExpr()
		}
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.COLON)
	body := p.parseTestExpr()
	return &ast.Lambda{NodeBase: ast.NodeBase{Location: pos}, Params: params, Body: body}
}
