package ast

import "github.com/jm-research/pyst/pkg/token"

// PassStatement is `pass`.
type PassStatement struct {
	NodeBase
}

func (s *PassStatement) statementNode() {}

// BreakStatement is `break`.
type BreakStatement struct {
	NodeBase
}

func (s *BreakStatement) statementNode() {}

// ContinueStatement is `continue`.
type ContinueStatement struct {
	NodeBase
}

func (s *ContinueStatement) statementNode() {}

// ReturnStatement is `return` with an optional list of expressions.
type ReturnStatement struct {
	NodeBase
	Values []Expression // nil means bare `return`
}

func (s *ReturnStatement) statementNode() {}

// ImportAlias is one `{module, symbol?, alias?}` entry of an import
// statement.
type ImportAlias struct {
	Module string
	Symbol string // "" if importing the whole module
	Alias  string // "" if no `as` clause
}

// ImportStatement is `import ...` / `from ... import ...`.
type ImportStatement struct {
	NodeBase
	Items []ImportAlias
}

func (s *ImportStatement) statementNode() {}

// AssertStatement is `assert test[, message]`.
type AssertStatement struct {
	NodeBase
	Test    Expression
	Message Expression // nil if absent
}

func (s *AssertStatement) statementNode() {}

// DeleteStatement is `del target, ...`.
type DeleteStatement struct {
	NodeBase
	Targets []Expression
}

func (s *DeleteStatement) statementNode() {}

// AssignStatement is `target, ... = value`.
type AssignStatement struct {
	NodeBase
	Targets []Expression
	Value   Expression
}

func (s *AssignStatement) statementNode() {}

// AugAssignStatement is `target OP= value` (e.g. `x += 1`).
type AugAssignStatement struct {
	NodeBase
	Target   Expression
	Operator token.Type
	Value    Expression
}

func (s *AugAssignStatement) statementNode() {}

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	NodeBase
	Value Expression
}

func (s *ExpressionStatement) statementNode() {}

// RaiseStatement is `raise [value]`.
type RaiseStatement struct {
	NodeBase
	Value Expression // nil for bare `raise`
}

func (s *RaiseStatement) statementNode() {}

