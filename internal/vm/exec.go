package vm

import (
	"fmt"

	"github.com/jm-research/pyst/internal/bytecode"
	"github.com/jm-research/pyst/internal/object"
)

// execInstruction executes a single instruction against frame f, returning
// one of continue/return/raise, plus a propagating exception value when
// the outcome is raise.
func (vm *VM) execInstruction(f *Frame, instr bytecode.Instruction) (outcome, *object.Value) {
	switch instr.Op {
	case bytecode.OpLoadConst:
		f.push(vm.constValue(instr.Const))

	case bytecode.OpLoadName:
		val, _, ok := object.ScopeGet(f.Scope, instr.Name)
		if !ok {
			return outcomeRaise, vm.nameError(instr.Name)
		}
		f.push(val)

	case bytecode.OpStoreName:
		object.ScopeSet(f.Scope, instr.Name, f.pop())

	case bytecode.OpLoadAttr:
		recv := f.pop()
		val, ok := object.GetAttr(vm, recv, instr.Name)
		if !ok {
			return outcomeRaise, vm.nameError(fmt.Sprintf("AttributeError: %s", instr.Name))
		}
		f.push(val)

	case bytecode.OpStoreAttr:
		recv := f.pop()
		val := f.pop()
		if !object.SetAttr(recv, instr.Name, val) {
			return outcomeRaise, vm.nameError(fmt.Sprintf("AttributeError: %s", instr.Name))
		}

	case bytecode.OpLoadSubscript:
		index := f.pop()
		container := f.pop()
		result, exc := vm.loadSubscript(container, index)
		if exc != nil {
			return outcomeRaise, exc
		}
		f.push(result)

	case bytecode.OpStoreSubscript:
		index := f.pop()
		container := f.pop()
		val := f.pop()
		if exc := vm.storeSubscript(container, index, val); exc != nil {
			return outcomeRaise, exc
		}

	case bytecode.OpBuildList:
		f.push(vm.ctx.NewList(f.popN(instr.Size)))

	case bytecode.OpBuildTuple:
		f.push(vm.ctx.NewTuple(f.popN(instr.Size)))

	case bytecode.OpBuildMap:
		entries := f.popN(instr.Size * 2)
		dict := vm.ctx.NewDict()
		for i := 0; i < len(entries); i += 2 {
			key := entries[i]
			if key.Kind != object.KindString {
				return outcomeRaise, vm.nameError("TypeError: dict keys must be strings")
			}
			dict.Entries[key.Str] = entries[i+1]
		}
		f.push(dict)

	case bytecode.OpBuildSlice:
		parts := f.popN(3)
		f.push(vm.ctx.NewSlice(asIntPtr(parts[0]), asIntPtr(parts[1]), asIntPtr(parts[2])))

	case bytecode.OpBinaryOp:
		right := f.pop()
		left := f.pop()
		result, exc := vm.binaryOp(instr.Operator, left, right)
		if exc != nil {
			return outcomeRaise, exc
		}
		f.push(result)

	case bytecode.OpUnaryOp:
		val := f.pop()
		result, exc := vm.unaryOp(instr.Operator, val)
		if exc != nil {
			return outcomeRaise, exc
		}
		f.push(result)

	case bytecode.OpCompareOp:
		right := f.pop()
		left := f.pop()
		result, exc := vm.compareOp(instr.Operator, left, right)
		if exc != nil {
			return outcomeRaise, exc
		}
		f.push(result)

	case bytecode.OpExceptionMatch:
		typ := f.pop()
		exc := f.peek()
		f.push(vm.ctx.NewBool(vm.exceptionMatches(exc, typ)))

	case bytecode.OpJump:
		f.jump(instr.Target)

	case bytecode.OpJumpIf:
		if isTruthy(f.pop()) {
			f.jump(instr.Target)
		}

	case bytecode.OpJumpIfFalseOrPop:
		if !isTruthy(f.peek()) {
			f.jump(instr.Target)
		} else {
			f.pop()
		}

	case bytecode.OpDupTop:
		f.push(f.peek())

	case bytecode.OpRotTwo:
		n := len(f.Stack)
		f.Stack[n-1], f.Stack[n-2] = f.Stack[n-2], f.Stack[n-1]

	case bytecode.OpRotThree:
		n := len(f.Stack)
		top, second, third := f.Stack[n-1], f.Stack[n-2], f.Stack[n-3]
		f.Stack[n-1], f.Stack[n-2], f.Stack[n-3] = second, third, top

	case bytecode.OpCallFunction:
		args := f.popN(instr.Size)
		callee := f.pop()
		result, exc := vm.Invoke(callee, args)
		if exc != nil {
			return outcomeRaise, exc
		}
		f.push(result)

	case bytecode.OpMakeFunction:
		name := f.pop()
		code := f.pop()
		f.push(vm.ctx.NewFunction(code, f.Scope))
		_ = name // name is carried by the code object's own Name field

	case bytecode.OpReturnValue:
		return outcomeReturn, f.pop()

	case bytecode.OpSetupLoop:
		f.pushBlock(Block{Kind: BlockLoop, Start: instr.Start, End: instr.End, Else: instr.Else})

	case bytecode.OpPopBlock:
		f.popBlock()

	case bytecode.OpSetupExcept:
		f.pushBlock(Block{Kind: BlockExcept, Handler: instr.Handler})

	case bytecode.OpRaise:
		return outcomeRaise, f.pop()

	case bytecode.OpGetIter:
		f.push(vm.ctx.NewIterator(f.pop()))

	case bytecode.OpForIter:
		vm.execForIter(f)

	case bytecode.OpBreak:
		vm.execBreak(f)

	case bytecode.OpContinue:
		vm.execContinue(f)

	case bytecode.OpPop:
		f.pop()

	case bytecode.OpPass:
		// no-op

	case bytecode.OpPrintExpr:
		vm.Stdout(object.String(f.pop()) + "\n")

	case bytecode.OpImport:
		val, exc := vm.resolveImport(instr.Name, instr.Symbol)
		if exc != nil {
			return outcomeRaise, exc
		}
		f.push(val)

	case bytecode.OpLoadBuildClass:
		f.push(vm.buildClassFunc())

	case bytecode.OpStoreLocals:
		f.Scope.ScopeLocals = f.pop()

	default:
		panic(fmt.Sprintf("vm: unimplemented opcode %s", instr.Op))
	}

	return outcomeContinue, nil
}

// execForIter advances the innermost loop block's iterator (top of
// stack); on exhaustion it pops the iterator and jumps to the block's
// Else target, which equals End when there is no for-else clause.
func (vm *VM) execForIter(f *Frame) {
	iter := f.peek()
	switch iter.IterOf.Kind {
	case object.KindList, object.KindTuple:
		if iter.IterPos >= len(iter.IterOf.Elements) {
			f.pop()
			f.jump(f.Blocks[len(f.Blocks)-1].Else)
			return
		}
		val := iter.IterOf.Elements[iter.IterPos]
		iter.IterPos++
		f.push(val)
	case object.KindString:
		runes := []rune(iter.IterOf.Str)
		if iter.IterPos >= len(runes) {
			f.pop()
			f.jump(f.Blocks[len(f.Blocks)-1].Else)
			return
		}
		f.push(vm.ctx.NewString(string(runes[iter.IterPos])))
		iter.IterPos++
	default:
		f.pop()
		f.jump(f.Blocks[len(f.Blocks)-1].Else)
	}
}

func (vm *VM) execBreak(f *Frame) {
	for i := len(f.Blocks) - 1; i >= 0; i-- {
		if f.Blocks[i].Kind == BlockLoop {
			target := f.Blocks[i].End
			f.Blocks = f.Blocks[:i+1]
			f.jump(target)
			return
		}
	}
}

func (vm *VM) execContinue(f *Frame) {
	for i := len(f.Blocks) - 1; i >= 0; i-- {
		if f.Blocks[i].Kind == BlockLoop {
			target := f.Blocks[i].Start
			f.Blocks = f.Blocks[:i+1]
			f.jump(target)
			return
		}
	}
}

func (vm *VM) constValue(c bytecode.Constant) *object.Value {
	switch c.Kind {
	case bytecode.ConstInt:
		return vm.ctx.NewInt(c.Int)
	case bytecode.ConstFloat:
		return vm.ctx.NewFloat(c.Float)
	case bytecode.ConstString:
		return vm.ctx.NewString(c.Str)
	case bytecode.ConstBool:
		return vm.ctx.NewBool(c.Bool)
	case bytecode.ConstCode:
		return vm.ctx.NewCode(c.Code)
	default:
		return vm.ctx.None()
	}
}

func isTruthy(v *object.Value) bool {
	switch v.Kind {
	case object.KindNone:
		return false
	case object.KindBool:
		return v.Bool
	case object.KindInt:
		return v.Int != 0
	case object.KindFloat:
		return v.Float != 0
	case object.KindString:
		return v.Str != ""
	case object.KindList, object.KindTuple:
		return len(v.Elements) > 0
	case object.KindDict:
		return len(v.Entries) > 0
	default:
		return true
	}
}

func asIntPtr(v *object.Value) *int32 {
	if v.Kind != object.KindInt {
		return nil
	}
	n := v.Int
	return &n
}

// exceptionMatches backs EXCEPTION_MATCH: a raised value matches typ if
// typ is (or is an ancestor of, via MRO) the raised value's own type.
func (vm *VM) exceptionMatches(exc, typ *object.Value) bool {
	if typ.Kind != object.KindClass {
		return false
	}
	for _, anc := range exc.Type.MRO {
		if object.Is(anc, typ) {
			return true
		}
	}
	return false
}

