package bytecode

import "github.com/jm-research/pyst/pkg/token"

// Label is a symbolic jump target, fresh per code object, resolved to an
// instruction index through that code object's LabelMap at jump time —
// not patched at compile time.
type Label int

// Instruction is the single tagged-variant instruction type.
// Unused fields for a given Op are simply zero; a real capability-table
// refactor is possible but out of scope here.
type Instruction struct {
	Op OpCode

	Const Constant // LOAD_CONST

	Name   string // LOAD_NAME/STORE_NAME/LOAD_ATTR/STORE_ATTR/IMPORT module
	Symbol string // IMPORT symbol, "" if whole-module import

	Operator token.Type // BINARY_OP/UNARY_OP/COMPARE_OP embedded operator tag

	Size int // BUILD_LIST/TUPLE/MAP/SLICE count, CALL_FUNCTION arity

	Target  Label // JUMP/JUMP_IF_TRUE
	Start   Label // SETUP_LOOP: continue target
	End     Label // SETUP_LOOP: break target
	Else    Label // SETUP_LOOP: FOR_ITER-exhaustion / while-false-test target; equals End when no else-clause
	Handler Label // SETUP_EXCEPT
}

// CodeObject is the compiled representation of one lexical body: a flat
// instruction stream, a parallel per-instruction source location stream,
// a label-to-instruction-index map, and the ordered parameter names.
// Code objects nest: compiling a function/class/lambda body pushes a
// fresh CodeObject and pops it as a LOAD_CONST constant when the body
// is done.
type CodeObject struct {
	Name         string
	Params       []string
	Instructions []Instruction
	Locations    []token.Position
	LabelMap     map[Label]int

	nextLabel int
}

func newCodeObject(name string, params []string) *CodeObject {
	return &CodeObject{Name: name, Params: params, LabelMap: make(map[Label]int)}
}

func (c *CodeObject) emit(instr Instruction, loc token.Position) {
	c.Instructions = append(c.Instructions, instr)
	c.Locations = append(c.Locations, loc)
}

// newLabel allocates a fresh label scoped to this code object.
func (c *CodeObject) newLabel() Label {
	l := Label(c.nextLabel)
	c.nextLabel++
	return l
}

// setLabel records the current instruction index as the target of label.
func (c *CodeObject) setLabel(l Label) {
	c.LabelMap[l] = len(c.Instructions)
}
