// Package bytecode is the code model (instructions, constants, labels,
// code objects) and the code generator that lowers a syntax tree into it.
package bytecode

import "fmt"

// OpCode tags the stack-machine instruction categories a CodeObject's
// instruction stream can hold.
type OpCode uint8

const (
	OpLoadConst OpCode = iota
	OpLoadName
	OpStoreName
	OpLoadAttr
	OpStoreAttr
	OpLoadSubscript
	OpStoreSubscript
	OpBuildList
	OpBuildTuple
	OpBuildMap
	OpBuildSlice
	OpBinaryOp
	OpUnaryOp
	OpCompareOp
	OpJump
	OpJumpIf
	OpCallFunction
	OpMakeFunction
	OpReturnValue
	OpSetupLoop
	OpPopBlock
	OpSetupExcept
	OpRaise
	OpGetIter
	OpForIter
	OpBreak
	OpContinue
	OpPop
	OpPass
	OpPrintExpr
	OpImport
	OpLoadBuildClass
	OpStoreLocals
	OpExceptionMatch
	OpDupTop
	OpRotTwo
	OpRotThree
	OpJumpIfFalseOrPop
)

var opNames = map[OpCode]string{
	OpLoadConst: "LOAD_CONST", OpLoadName: "LOAD_NAME", OpStoreName: "STORE_NAME",
	OpLoadAttr: "LOAD_ATTR", OpStoreAttr: "STORE_ATTR",
	OpLoadSubscript: "LOAD_SUBSCRIPT", OpStoreSubscript: "STORE_SUBSCRIPT",
	OpBuildList: "BUILD_LIST", OpBuildTuple: "BUILD_TUPLE", OpBuildMap: "BUILD_MAP",
	OpBuildSlice: "BUILD_SLICE", OpBinaryOp: "BINARY_OP", OpUnaryOp: "UNARY_OP",
	OpCompareOp: "COMPARE_OP", OpJump: "JUMP", OpJumpIf: "JUMP_IF_TRUE",
	OpCallFunction: "CALL_FUNCTION",
	OpMakeFunction: "MAKE_FUNCTION", OpReturnValue: "RETURN_VALUE",
	OpSetupLoop: "SETUP_LOOP", OpPopBlock: "POP_BLOCK", OpSetupExcept: "SETUP_EXCEPT",
	OpRaise: "RAISE", OpGetIter: "GET_ITER", OpForIter: "FOR_ITER",
	OpBreak: "BREAK", OpContinue: "CONTINUE", OpPop: "POP", OpPass: "PASS",
	OpPrintExpr: "PRINT_EXPR", OpImport: "IMPORT", OpLoadBuildClass: "LOAD_BUILD_CLASS",
	OpStoreLocals: "STORE_LOCALS", OpExceptionMatch: "EXCEPTION_MATCH",
	OpDupTop: "DUP_TOP", OpRotTwo: "ROT_TWO", OpRotThree: "ROT_THREE",
	OpJumpIfFalseOrPop: "JUMP_IF_FALSE_OR_POP",
}

func (op OpCode) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("OpCode(%d)", int(op))
}

// ConstKind tags a compile-time constant embedded in a LOAD_CONST
// instruction.
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstString
	ConstBool
	ConstCode
	ConstNone
)

// Constant is the compile-time payload of a LOAD_CONST instruction; the
// VM turns it into a runtime value via the active object-model context.
type Constant struct {
	Kind  ConstKind
	Int   int32
	Float float64
	Str   string
	Bool  bool
	Code  *CodeObject
}
