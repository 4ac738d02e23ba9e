package parser

import (
	"github.com/jm-research/pyst/internal/ast"
	"github.com/jm-research/pyst/pkg/token"
)

// parseTestListExpr parses a comma-separated list of test expressions and
// folds it into a single TupleLiteral when more than one is present, or a
// trailing comma is seen").
func (p *Parser) parseTestListExpr() ast.Expression {
	pos := p.c.cur().Start
	first := p.parseTestExpr()
	if !p.c.is(token.COMMA) {
		return first
	}
	elems := []ast.Expression{first}
	for p.accept(token.COMMA) {
		if p.atStatementEnd() || p.c.is(token.ASSIGN) || p.c.is(token.COLON) {
			break
		}
		elems = append(elems, p.parseTestExpr())
	}
	return &ast.TupleLiteral{NodeBase: ast.NodeBase{Location: pos}, Elements: elems}
}

// parseTestExpr is the top of the expression-precedence chain: lambda, or
// a boolean `or_test`.
func (p *Parser) parseTestExpr() ast.Expression {
	if p.c.is(token.LAMBDA) {
		return p.parseLambda()
	}
	return p.parseOrTest()
}

func (p *Parser) parseOrTest() ast.Expression {
	left := p.parseAndTest()
	for p.c.is(token.OR) {
		pos := p.c.cur().Start
		p.c.advance()
		right := p.parseAndTest()
		left = &ast.BoolOp{NodeBase: ast.NodeBase{Location: pos}, Operator: token.OR, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAndTest() ast.Expression {
	left := p.parseNotTest()
	for p.c.is(token.AND) {
		pos := p.c.cur().Start
		p.c.advance()
		right := p.parseNotTest()
		left = &ast.BoolOp{NodeBase: ast.NodeBase{Location: pos}, Operator: token.AND, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseNotTest() ast.Expression {
	if p.c.is(token.NOT) {
		pos := p.c.cur().Start
		p.c.advance()
		operand := p.parseNotTest()
		return &ast.UnaryOp{NodeBase: ast.NodeBase{Location: pos}, Operator: token.NOT, Operand: operand}
	}
	return p.parseComparison()
}

var comparisonOps = map[token.Type]bool{
	token.LT: true, token.GT: true, token.LE: true, token.GE: true,
	token.EQ: true, token.NOTEQ: true, token.IN: true, token.IS: true,
}

func (p *Parser) parseComparison() ast.Expression {
	pos := p.c.cur().Start
	first := p.parseBitOr()
	var ops []token.Type
	var operands []ast.Expression
	for {
		op, ok := p.peekComparisonOp()
		if !ok {
			break
		}
		p.consumeComparisonOp()
		operands = append(operands, p.parseBitOr())
		ops = append(ops, op)
	}
	if len(ops) == 0 {
		return first
	}
	return &ast.Comparison{NodeBase: ast.NodeBase{Location: pos}, Operands: append([]ast.Expression{first}, operands...), Ops: ops}
}

// peekComparisonOp recognizes a comparison operator, including the two-word
// forms `not in` and `is not`.
func (p *Parser) peekComparisonOp() (token.Type, bool) {
	switch p.c.cur().Type {
	case token.LT, token.GT, token.LE, token.GE, token.EQ, token.NOTEQ, token.IN, token.IS:
		return p.c.cur().Type, true
	case token.NOT:
		if p.c.peek(1).Type == token.IN {
			return token.IN, true
		}
	}
	return 0, false
}

func (p *Parser) consumeComparisonOp() {
	if p.c.is(token.NOT) {
		p.c.advance() // not
		p.c.advance() // in
		return
	}
	if p.c.is(token.IS) && p.c.peek(1).Type == token.NOT {
		p.c.advance() // is
		p.c.advance() // not
		return
	}
	p.c.advance()
}

func (p *Parser) parseBitOr() ast.Expression {
	left := p.parseBitXor()
	for p.c.is(token.PIPE) {
		left = p.parseBinaryStep(left, p.parseBitXor)
	}
	return left
}

func (p *Parser) parseBitXor() ast.Expression {
	left := p.parseBitAnd()
	for p.c.is(token.CARET) {
		left = p.parseBinaryStep(left, p.parseBitAnd)
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Expression {
	left := p.parseShift()
	for p.c.is(token.AMP) {
		left = p.parseBinaryStep(left, p.parseShift)
	}
	return left
}

func (p *Parser) parseShift() ast.Expression {
	left := p.parseArith()
	for p.c.is(token.LSHIFT) || p.c.is(token.RSHIFT) {
		left = p.parseBinaryStep(left, p.parseArith)
	}
	return left
}

func (p *Parser) parseArith() ast.Expression {
	left := p.parseTerm()
	for p.c.is(token.PLUS) || p.c.is(token.MINUS) {
		left = p.parseBinaryStep(left, p.parseTerm)
	}
	return left
}

func (p *Parser) parseTerm() ast.Expression {
	left := p.parseFactor()
	for p.c.is(token.STAR) || p.c.is(token.SLASH) || p.c.is(token.DSLASH) || p.c.is(token.PERCENT) {
		left = p.parseBinaryStep(left, p.parseFactor)
	}
	return left
}

// parseBinaryStep consumes the operator at the cursor and parses the
// right-hand operand with next, wrapping left in a BinaryOp.
func (p *Parser) parseBinaryStep(left ast.Expression, next func() ast.Expression) ast.Expression {
	pos := p.c.cur().Start
	op := p.c.cur().Type
	p.c.advance()
	right := next()
	return &ast.BinaryOp{NodeBase: ast.NodeBase{Location: pos}, Operator: op, Left: left, Right: right}
}

func (p *Parser) parseFactor() ast.Expression {
	if p.c.is(token.PLUS) || p.c.is(token.MINUS) || p.c.is(token.TILDE) {
		pos := p.c.cur().Start
		op := p.c.cur().Type
		p.c.advance()
		operand := p.parseFactor()
		return &ast.UnaryOp{NodeBase: ast.NodeBase{Location: pos}, Operator: op, Operand: operand}
	}
	return p.parsePower()
}

func (p *Parser) parsePower() ast.Expression {
	left := p.parseUnaryPostfix()
	if p.c.is(token.DSTAR) {
		pos := p.c.cur().Start
		p.c.advance()
		right := p.parseFactor() // right-associative
		return &ast.BinaryOp{NodeBase: ast.NodeBase{Location: pos}, Operator: token.DSTAR, Left: left, Right: right}
	}
	return left
}

// parseUnaryPostfix parses an atom followed by any chain of call,
// subscript, and attribute trailers.
func (p *Parser) parseUnaryPostfix() ast.Expression {
	expr := p.parseAtom()
	for {
		switch p.c.cur().Type {
		case token.LPAREN:
			expr = p.parseCallTrailer(expr)
		case token.LBRACK:
			expr = p.parseSubscriptTrailer(expr)
		case token.DOT:
			expr = p.parseAttributeTrailer(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallTrailer(fn ast.Expression) ast.Expression {
	pos := p.c.cur().Start
	p.c.advance() // (
	call := &ast.Call{NodeBase: ast.NodeBase{Location: pos}, Func: fn}
	for !p.c.is(token.RPAREN) {
		if p.c.is(token.STAR) || p.c.is(token.DSTAR) {
			p.c.advance()
		}
		arg := p.parseTestExpr()
		if p.c.is(token.ASSIGN) {
			p.c.advance()
			arg = p.parseTestExpr() // keyword argument; name dropped, value kept positionally
		}
		call.Args = append(call.Args, arg)
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return call
}

func (p *Parser) parseSubscriptTrailer(value ast.Expression) ast.Expression {
	pos := p.c.cur().Start
	p.c.advance() // [
	index := p.parseSubscriptIndex()
	p.expect(token.RBRACK)
	return &ast.Subscript{NodeBase: ast.NodeBase{Location: pos}, Value: value, Index: index}
}

// parseSubscriptIndex parses either a plain index expression or a slice
// `start:stop:step`, each part optional.
func (p *Parser) parseSubscriptIndex() ast.Expression {
	pos := p.c.cur().Start
	var start ast.Expression
	if !p.c.is(token.COLON) {
		start = p.parseTestExpr()
	}
	if !p.c.is(token.COLON) {
		return start
	}
	slice := &ast.SliceLiteral{NodeBase: ast.NodeBase{Location: pos}, Start: start}
	p.c.advance() // :
	if !p.c.is(token.COLON) && !p.c.is(token.RBRACK) {
		slice.Stop = p.parseTestExpr()
	}
	if p.accept(token.COLON) {
		if !p.c.is(token.RBRACK) {
			slice.Step = p.parseTestExpr()
		}
	}
	return slice
}

func (p *Parser) parseAttributeTrailer(value ast.Expression) ast.Expression {
	pos := p.c.cur().Start
	p.c.advance() // .
	name := p.expect(token.IDENT).Literal
	return &ast.Attribute{NodeBase: ast.NodeBase{Location: pos}, Value: value, Name: name}
}

func (p *Parser) parseAtom() ast.Expression {
	tok := p.c.cur()
	pos := tok.Start
	switch tok.Type {
	case token.IDENT:
		p.c.advance()
		return &ast.Identifier{NodeBase: ast.NodeBase{Location: pos}, Name: tok.Literal}
	case token.NUMBER:
		p.c.advance()
		return &ast.NumberLiteral{NodeBase: ast.NodeBase{Location: pos}, Literal: tok.Literal}
	case token.STRING:
		p.c.advance()
		return &ast.StringLiteral{NodeBase: ast.NodeBase{Location: pos}, Value: tok.Literal}
	case token.TRUE:
		p.c.advance()
		return &ast.TrueLiteral{NodeBase: ast.NodeBase{Location: pos}}
	case token.FALSE:
		p.c.advance()
		return &ast.FalseLiteral{NodeBase: ast.NodeBase{Location: pos}}
	case token.NONE:
		p.c.advance()
		return &ast.NoneLiteral{NodeBase: ast.NodeBase{Location: pos}}
	case token.LPAREN:
		return p.parseParenOrTuple()
	case token.LBRACK:
		return p.parseListLiteral()
	case token.LBRACE:
		return p.parseDictLiteral()
	case token.EOF:
		p.checkStringError()
		failIncomplete()
	}
	fail("unexpected token %s at %s", tok.Type, pos)
	return nil
}

func (p *Parser) parseParenOrTuple() ast.Expression {
	pos := p.c.cur().Start
	p.c.advance() // (
	if p.c.is(token.RPAREN) {
		p.c.advance()
		return &ast.TupleLiteral{NodeBase: ast.NodeBase{Location: pos}}
	}
	first := p.parseTestExpr()
	if !p.c.is(token.COMMA) {
		p.expect(token.RPAREN)
		return first
	}
	elems := []ast.Expression{first}
	for p.accept(token.COMMA) {
		if p.c.is(token.RPAREN) {
			break
		}
		elems = append(elems, p.parseTestExpr())
	}
	p.expect(token.RPAREN)
	return &ast.TupleLiteral{NodeBase: ast.NodeBase{Location: pos}, Elements: elems}
}

func (p *Parser) parseListLiteral() ast.Expression {
	pos := p.c.cur().Start
	p.c.advance() // [
	lit := &ast.ListLiteral{NodeBase: ast.NodeBase{Location: pos}}
	for !p.c.is(token.RBRACK) {
		lit.Elements = append(lit.Elements, p.parseTestExpr())
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACK)
	return lit
}

func (p *Parser) parseDictLiteral() ast.Expression {
	pos := p.c.cur().Start
	p.c.advance() // {
	lit := &ast.DictLiteral{NodeBase: ast.NodeBase{Location: pos}}
	for !p.c.is(token.RBRACE) {
		key := p.parseTestExpr()
		p.expect(token.COLON)
		value := p.parseTestExpr()
		lit.Entries = append(lit.Entries, ast.DictEntry{Key: key, Value: value})
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)
	return lit
}
