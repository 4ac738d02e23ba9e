// Package parser bridges the lexer's token stream to the syntax tree
// via ParseProgram, ParseStatement, and ParseExpression. The grammar
// itself is a black box from the code generator's point of view; only
// this package's entry points are relied upon downstream.
package parser

import (
	"github.com/jm-research/pyst/internal/lexer"
	"github.com/jm-research/pyst/pkg/token"
)

// cursor is a buffered, lazily-filled view over the lexer's token stream:
// buffered lookahead with index-based positioning, kept mutable for a
// conventional recursive-descent walk.
type cursor struct {
	lex    *lexer.Lexer
	toks   []token.Token
	pos    int
	strErr *lexer.StringError
}

func newCursor(input string) *cursor {
	c := &cursor{lex: lexer.New(input)}
	c.fill(1)
	return c
}

// fill ensures at least n tokens beyond the current position are buffered.
func (c *cursor) fill(n int) {
	for len(c.toks)-c.pos < n {
		if len(c.toks) > 0 && c.toks[len(c.toks)-1].Type == token.EOF {
			return
		}
		tok, err := c.lex.NextToken()
		if err != nil {
			if se, ok := err.(*lexer.StringError); ok {
				c.strErr = se
			}
			c.toks = append(c.toks, token.Token{Type: token.EOF})
			return
		}
		c.toks = append(c.toks, tok)
	}
}

func (c *cursor) cur() token.Token {
	c.fill(1)
	return c.toks[c.pos]
}

func (c *cursor) peek(n int) token.Token {
	c.fill(n + 1)
	idx := c.pos + n
	if idx >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[idx]
}

func (c *cursor) advance() token.Token {
	t := c.cur()
	if t.Type != token.EOF {
		c.pos++
	}
	return t
}

func (c *cursor) is(t token.Type) bool {
	return c.cur().Type == t
}
