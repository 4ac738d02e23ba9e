package bytecode

import (
	"fmt"
	"sort"
	"strings"
)

// Disassemble renders a code object's instruction stream as human
// readable text, one line per instruction, recursing into any
// LOAD_CONST-embedded nested code object. Used by `pyst disasm` and by
// snapshot tests of the compiler's output.
func Disassemble(code *CodeObject) string {
	var sb strings.Builder
	disassemble(&sb, code, "")
	return sb.String()
}

func disassemble(sb *strings.Builder, code *CodeObject, indent string) {
	fmt.Fprintf(sb, "%sCode %s(%s):\n", indent, code.Name, strings.Join(code.Params, ", "))

	labelsAt := invertLabelMap(code.LabelMap)
	var nested []*CodeObject

	for i, instr := range code.Instructions {
		for _, l := range labelsAt[i] {
			fmt.Fprintf(sb, "%s L%d:\n", indent, l)
		}
		fmt.Fprintf(sb, "%s  %4d %s%s\n", indent, i, instr.Op, operandText(instr))
		if instr.Op == OpLoadConst && instr.Const.Kind == ConstCode && instr.Const.Code != nil {
			nested = append(nested, instr.Const.Code)
		}
	}

	for _, n := range nested {
		disassemble(sb, n, indent+"  ")
	}
}

func invertLabelMap(m map[Label]int) map[int][]Label {
	out := map[int][]Label{}
	for l, idx := range m {
		out[idx] = append(out[idx], l)
	}
	for idx := range out {
		sort.Slice(out[idx], func(i, j int) bool { return out[idx][i] < out[idx][j] })
	}
	return out
}

func operandText(instr Instruction) string {
	switch instr.Op {
	case OpLoadConst:
		return " " + constText(instr.Const)
	case OpLoadName, OpStoreName, OpLoadAttr, OpStoreAttr:
		return " " + instr.Name
	case OpImport:
		if instr.Symbol != "" {
			return fmt.Sprintf(" %s.%s", instr.Name, instr.Symbol)
		}
		return " " + instr.Name
	case OpBinaryOp, OpUnaryOp, OpCompareOp:
		return " " + instr.Operator.String()
	case OpBuildList, OpBuildTuple, OpBuildMap, OpBuildSlice, OpCallFunction:
		return fmt.Sprintf(" %d", instr.Size)
	case OpJump, OpJumpIf, OpJumpIfFalseOrPop:
		return fmt.Sprintf(" L%d", instr.Target)
	case OpSetupLoop:
		return fmt.Sprintf(" start=L%d end=L%d else=L%d", instr.Start, instr.End, instr.Else)
	case OpSetupExcept:
		return fmt.Sprintf(" handler=L%d", instr.Handler)
	case OpRaise:
		return fmt.Sprintf(" %d", instr.Size)
	default:
		return ""
	}
}

func constText(c Constant) string {
	switch c.Kind {
	case ConstInt:
		return fmt.Sprintf("%d", c.Int)
	case ConstFloat:
		return fmt.Sprintf("%g", c.Float)
	case ConstString:
		return fmt.Sprintf("%q", c.Str)
	case ConstBool:
		return fmt.Sprintf("%t", c.Bool)
	case ConstNone:
		return "None"
	case ConstCode:
		if c.Code != nil {
			return fmt.Sprintf("<code %s>", c.Code.Name)
		}
		return "<code>"
	default:
		return "?"
	}
}
