package parser

import (
	"github.com/jm-research/pyst/internal/ast"
	"github.com/jm-research/pyst/pkg/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.c.cur().Type {
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.TRY:
		return p.parseTry()
	case token.WITH:
		return p.parseWith()
	case token.DEF:
		return p.parseFunctionDef()
	case token.CLASS:
		return p.parseClassDef()
	default:
		// NEWLINE/SEMICOLON separators are consumed by the caller's
		// skipNewlines loop (parseProgram, parseBlock's multi-line path),
		// which is what lets `a; b; c` parse as three successive calls.
		return p.parseSimpleStatement()
	}
}

func (p *Parser) parseSimpleStatement() ast.Statement {
	pos := p.c.cur().Start
	switch p.c.cur().Type {
	case token.PASS:
		p.c.advance()
		return &ast.PassStatement{NodeBase: ast.NodeBase{Location: pos}}
	case token.BREAK:
		p.c.advance()
		return &ast.BreakStatement{NodeBase: ast.NodeBase{Location: pos}}
	case token.CONTINUE:
		p.c.advance()
		return &ast.ContinueStatement{NodeBase: ast.NodeBase{Location: pos}}
	case token.RETURN:
		p.c.advance()
		stmt := &ast.ReturnStatement{NodeBase: ast.NodeBase{Location: pos}}
		if !p.atStatementEnd() {
			stmt.Values = p.parseExpressionList()
		}
		return stmt
	case token.RAISE:
		p.c.advance()
		stmt := &ast.RaiseStatement{NodeBase: ast.NodeBase{Location: pos}}
		if !p.atStatementEnd() {
			stmt.Value = p.parseTestExpr()
		}
		return stmt
	case token.DEL:
		p.c.advance()
		stmt := &ast.DeleteStatement{NodeBase: ast.NodeBase{Location: pos}}
		stmt.Targets = p.parseExpressionList()
		return stmt
	case token.ASSERT:
		p.c.advance()
		stmt := &ast.AssertStatement{NodeBase: ast.NodeBase{Location: pos}}
		stmt.Test = p.parseTestExpr()
		if p.accept(token.COMMA) {
			stmt.Message = p.parseTestExpr()
		}
		return stmt
	case token.IMPORT:
		return p.parseImport(pos)
	case token.FROM:
		return p.parseFromImport(pos)
	default:
		return p.parseExprOrAssign(pos)
	}
}

func (p *Parser) atStatementEnd() bool {
	return p.c.is(token.NEWLINE) || p.c.is(token.SEMICOLON) || p.c.is(token.EOF) || p.c.is(token.DEDENT)
}

func (p *Parser) parseImport(pos token.Position) ast.Statement {
	p.c.advance() // import
	stmt := &ast.ImportStatement{NodeBase: ast.NodeBase{Location: pos}}
	for {
		item := ast.ImportAlias{Module: p.parseDottedName()}
		if p.accept(token.AS) {
			item.Alias = p.expect(token.IDENT).Literal
		}
		stmt.Items = append(stmt.Items, item)
		if !p.accept(token.COMMA) {
			break
		}
	}
	return stmt
}

func (p *Parser) parseFromImport(pos token.Position) ast.Statement {
	p.c.advance() // from
	module := p.parseDottedName()
	p.expect(token.IMPORT)
	stmt := &ast.ImportStatement{NodeBase: ast.NodeBase{Location: pos}}
	for {
		symbol := p.expect(token.IDENT).Literal
		alias := ""
		if p.accept(token.AS) {
			alias = p.expect(token.IDENT).Literal
		}
		stmt.Items = append(stmt.Items, ast.ImportAlias{Module: module, Symbol: symbol, Alias: alias})
		if !p.accept(token.COMMA) {
			break
		}
	}
	return stmt
}

func (p *Parser) parseDottedName() string {
	name := p.expect(token.IDENT).Literal
	for p.accept(token.DOT) {
		name += "." + p.expect(token.IDENT).Literal
	}
	return name
}

// parseExprOrAssign parses an expression-statement, assignment, or
// augmented assignment, all of which begin with an expression.
func (p *Parser) parseExprOrAssign(pos token.Position) ast.Statement {
	first := p.parseTestListExpr()

	if aug, ok := p.augAssignOp(); ok {
		p.c.advance()
		value := p.parseTestListExpr()
		return &ast.AugAssignStatement{NodeBase: ast.NodeBase{Location: pos}, Target: first, Operator: aug, Value: value}
	}

	if p.c.is(token.ASSIGN) {
		targets := []ast.Expression{first}
		var value ast.Expression
		for p.accept(token.ASSIGN) {
			value = p.parseTestListExpr()
			targets = append(targets, value)
		}
		// The last parsed expression is the value; everything before it is
		// a chained assignment target").
		value = targets[len(targets)-1]
		targets = targets[:len(targets)-1]
		return &ast.AssignStatement{NodeBase: ast.NodeBase{Location: pos}, Targets: targets, Value: value}
	}

	return &ast.ExpressionStatement{NodeBase: ast.NodeBase{Location: pos}, Value: first}
}

func (p *Parser) augAssignOp() (token.Type, bool) {
	switch p.c.cur().Type {
	case token.PLUS_EQ, token.MINUS_EQ, token.STAR_EQ, token.SLASH_EQ, token.DSLASH_EQ,
		token.PERCENT_EQ, token.DSTAR_EQ, token.AMP_EQ, token.PIPE_EQ, token.CARET_EQ,
		token.LSHIFT_EQ, token.RSHIFT_EQ:
		return p.c.cur().Type, true
	}
	return 0, false
}

// parseExpressionList parses a comma-separated list of test expressions,
// used by `return`, `del`, and a `for` statement's iterables.
func (p *Parser) parseExpressionList() []ast.Expression {
	var exprs []ast.Expression
	exprs = append(exprs, p.parseTestExpr())
	for p.accept(token.COMMA) {
		if p.atStatementEnd() {
			break
		}
		exprs = append(exprs, p.parseTestExpr())
	}
	return exprs
}
