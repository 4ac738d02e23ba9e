// Package vm is the virtual machine: frame stack, value stack, block
// stack, the fetch-execute dispatch loop, exception unwinding, and
// invocation.
package vm

import (
	"github.com/jm-research/pyst/internal/bytecode"
	"github.com/jm-research/pyst/internal/object"
)

// BlockKind tags the two runtime block kinds a frame's block stack holds.
type BlockKind int

const (
	BlockLoop BlockKind = iota
	BlockExcept
)

// Block is a frame-local record routing break/continue/exception
// unwinding. Start/End/Else come from the SETUP_LOOP that pushed it;
// Handler comes from the SETUP_EXCEPT that pushed it. Else is distinct
// from End so FOR_ITER's exhaustion path (which should run an else-body)
// can be told apart from break's target (which must skip it).
type Block struct {
	Kind BlockKind

	Start bytecode.Label
	End   bytecode.Label
	Else  bytecode.Label

	Handler bytecode.Label
}

// Frame is one in-progress code object execution: program counter, value
// stack, block stack, and locals scope.
type Frame struct {
	Code   *bytecode.CodeObject
	PC     int
	Stack  []*object.Value
	Blocks []Block
	Scope  *object.Value
}

func newFrame(code *bytecode.CodeObject, scope *object.Value) *Frame {
	return &Frame{Code: code, Scope: scope}
}

func (f *Frame) push(v *object.Value) {
	f.Stack = append(f.Stack, v)
}

func (f *Frame) pop() *object.Value {
	n := len(f.Stack) - 1
	v := f.Stack[n]
	f.Stack = f.Stack[:n]
	return v
}

func (f *Frame) peek() *object.Value {
	return f.Stack[len(f.Stack)-1]
}

func (f *Frame) popN(n int) []*object.Value {
	start := len(f.Stack) - n
	vals := append([]*object.Value(nil), f.Stack[start:]...)
	f.Stack = f.Stack[:start]
	return vals
}

func (f *Frame) pushBlock(b Block) {
	f.Blocks = append(f.Blocks, b)
}

func (f *Frame) popBlock() Block {
	n := len(f.Blocks) - 1
	b := f.Blocks[n]
	f.Blocks = f.Blocks[:n]
	return b
}

func (f *Frame) jump(l bytecode.Label) {
	f.PC = f.Code.LabelMap[l]
}
