package ast

import "github.com/jm-research/pyst/pkg/token"

// Identifier is a bare name reference.
type Identifier struct {
	NodeBase
	Name string
}

func (e *Identifier) expressionNode() {}

// NumberLiteral carries the lexeme text unparsed; the code
// generator decides integer vs. float at compile time.
type NumberLiteral struct {
	NodeBase
	Literal string
}

func (e *NumberLiteral) expressionNode() {}

// StringLiteral is a processed string (escapes already resolved by the
// lexer).
type StringLiteral struct {
	NodeBase
	Value string
}

func (e *StringLiteral) expressionNode() {}

// TrueLiteral, FalseLiteral, NoneLiteral are the three singleton literals.
type TrueLiteral struct{ NodeBase }
type FalseLiteral struct{ NodeBase }
type NoneLiteral struct{ NodeBase }

func (e *TrueLiteral) expressionNode()  {}
func (e *FalseLiteral) expressionNode() {}
func (e *NoneLiteral) expressionNode()  {}

// ListLiteral is `[elem, ...]`.
type ListLiteral struct {
	NodeBase
	Elements []Expression
}

func (e *ListLiteral) expressionNode() {}

// TupleLiteral is `(elem, ...)`.
type TupleLiteral struct {
	NodeBase
	Elements []Expression
}

func (e *TupleLiteral) expressionNode() {}

// DictEntry is one `key: value` pair of a dict literal.
type DictEntry struct {
	Key   Expression
	Value Expression
}

// DictLiteral is `{key: value, ...}`.
type DictLiteral struct {
	NodeBase
	Entries []DictEntry
}

func (e *DictLiteral) expressionNode() {}

// SliceLiteral is the `start:stop:step` expression used inside a
// subscript; each part is optional.
type SliceLiteral struct {
	NodeBase
	Start Expression
	Stop  Expression
	Step  Expression
}

func (e *SliceLiteral) expressionNode() {}

// BoolOp is `a and b` / `a or b` (short-circuiting).
type BoolOp struct {
	NodeBase
	Operator token.Type // AND or OR
	Left     Expression
	Right    Expression
}

func (e *BoolOp) expressionNode() {}

// BinaryOp is a non-short-circuiting binary expression.
type BinaryOp struct {
	NodeBase
	Operator token.Type
	Left     Expression
	Right    Expression
}

func (e *BinaryOp) expressionNode() {}

// UnaryOp is `-x` / `not x`.
type UnaryOp struct {
	NodeBase
	Operator token.Type
	Operand  Expression
}

func (e *UnaryOp) expressionNode() {}

// Comparison is a chained or single comparison (`a < b`, `a is b`,
// `a in b`, ...). Ops[i] compares Operands[i] to Operands[i+1].
type Comparison struct {
	NodeBase
	Operands []Expression
	Ops      []token.Type
}

func (e *Comparison) expressionNode() {}

// Subscript is `value[index]`.
type Subscript struct {
	NodeBase
	Value Expression
	Index Expression
}

func (e *Subscript) expressionNode() {}

// Attribute is `value.name`.
type Attribute struct {
	NodeBase
	Value Expression
	Name  string
}

func (e *Attribute) expressionNode() {}

// Call is `fn(args...)`.
type Call struct {
	NodeBase
	Func Expression
	Args []Expression
}

func (e *Call) expressionNode() {}
