// Package ast defines the syntax tree produced by the parser and consumed
// by the code generator.
package ast

import "github.com/jm-research/pyst/pkg/token"

// Node is the common interface of every syntax tree node.
type Node interface {
	Pos() token.Position
}

// Statement is any node that performs an action but does not itself
// produce a value.
type Statement interface {
	Node
	statementNode()
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// NodeBase carries the source location every concrete node embeds.
type NodeBase struct {
	Location token.Position
}

func (b NodeBase) Pos() token.Position { return b.Location }

// Program is the root of a parsed module: a flat statement list.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Row: 1, Column: 1}
}
