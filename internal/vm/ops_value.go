package vm

import (
	"fmt"
	"strings"

	"github.com/jm-research/pyst/internal/object"
	"github.com/jm-research/pyst/pkg/token"
)

// binaryOp dispatches BINARY_OP by operand kind. Unsupported operand
// combinations abort rather than raise a catchable exception, since a
// type error here reflects a malformed program rather than a condition
// a script could reasonably guard against.
func (vm *VM) binaryOp(op token.Type, left, right *object.Value) (*object.Value, *object.Value) {
	switch {
	case left.Kind == object.KindInt && right.Kind == object.KindInt:
		return vm.intBinary(op, left.Int, right.Int)

	case isFloatish(left) && isFloatish(right):
		return vm.floatBinary(op, floatOf(left), floatOf(right))

	case left.Kind == object.KindString && right.Kind == object.KindString && op == token.PLUS:
		return vm.ctx.NewString(left.Str + right.Str), nil

	case left.Kind == object.KindString && right.Kind == object.KindInt && op == token.STAR:
		return vm.ctx.NewString(strings.Repeat(left.Str, int(right.Int))), nil

	case left.Kind == object.KindInt && right.Kind == object.KindString && op == token.STAR:
		return vm.ctx.NewString(strings.Repeat(right.Str, int(left.Int))), nil

	case left.Kind == object.KindList && right.Kind == object.KindList && op == token.PLUS:
		return vm.ctx.NewList(append(append([]*object.Value{}, left.Elements...), right.Elements...)), nil

	default:
		panic(fmt.Sprintf("vm: unsupported binary operand types %s %s %s", left.Kind, op, right.Kind))
	}
}

func isFloatish(v *object.Value) bool {
	return v.Kind == object.KindFloat || v.Kind == object.KindInt
}

func floatOf(v *object.Value) float64 {
	if v.Kind == object.KindFloat {
		return v.Float
	}
	return float64(v.Int)
}

func (vm *VM) intBinary(op token.Type, a, b int32) (*object.Value, *object.Value) {
	switch op {
	case token.PLUS:
		return vm.ctx.NewInt(a + b), nil
	case token.MINUS:
		return vm.ctx.NewInt(a - b), nil
	case token.STAR:
		return vm.ctx.NewInt(a * b), nil
	case token.DSLASH, token.SLASH:
		if b == 0 {
			panic("vm: integer division by zero")
		}
		return vm.ctx.NewInt(a / b), nil
	case token.PERCENT:
		if b == 0 {
			panic("vm: integer modulo by zero")
		}
		return vm.ctx.NewInt(a % b), nil
	case token.AMP:
		return vm.ctx.NewInt(a & b), nil
	case token.PIPE:
		return vm.ctx.NewInt(a | b), nil
	case token.CARET:
		return vm.ctx.NewInt(a ^ b), nil
	case token.LSHIFT:
		return vm.ctx.NewInt(a << uint(b)), nil
	case token.RSHIFT:
		return vm.ctx.NewInt(a >> uint(b)), nil
	default:
		panic(fmt.Sprintf("vm: unsupported int operator %s", op))
	}
}

func (vm *VM) floatBinary(op token.Type, a, b float64) (*object.Value, *object.Value) {
	switch op {
	case token.PLUS:
		return vm.ctx.NewFloat(a + b), nil
	case token.MINUS:
		return vm.ctx.NewFloat(a - b), nil
	case token.STAR:
		return vm.ctx.NewFloat(a * b), nil
	case token.SLASH, token.DSLASH:
		return vm.ctx.NewFloat(a / b), nil
	default:
		panic(fmt.Sprintf("vm: unsupported float operator %s", op))
	}
}

// unaryOp dispatches UNARY_OP.
func (vm *VM) unaryOp(op token.Type, v *object.Value) (*object.Value, *object.Value) {
	switch op {
	case token.MINUS:
		switch v.Kind {
		case object.KindInt:
			return vm.ctx.NewInt(-v.Int), nil
		case object.KindFloat:
			return vm.ctx.NewFloat(-v.Float), nil
		}
	case token.NOT:
		return vm.ctx.NewBool(!isTruthy(v)), nil
	case token.TILDE:
		if v.Kind == object.KindInt {
			return vm.ctx.NewInt(^v.Int), nil
		}
	}
	panic(fmt.Sprintf("vm: unsupported unary operator %s on %s", op, v.Kind))
}

// compareOp dispatches COMPARE_OP.
func (vm *VM) compareOp(op token.Type, left, right *object.Value) (*object.Value, *object.Value) {
	switch op {
	case token.EQ:
		return vm.ctx.NewBool(object.Equal(left, right)), nil
	case token.NOTEQ:
		return vm.ctx.NewBool(!object.Equal(left, right)), nil
	case token.LT:
		less, ok := object.Less(left, right)
		if !ok {
			panic(fmt.Sprintf("vm: unorderable types %s < %s", left.Kind, right.Kind))
		}
		return vm.ctx.NewBool(less), nil
	case token.LE:
		less, ok := object.Less(left, right)
		if !ok {
			panic(fmt.Sprintf("vm: unorderable types %s <= %s", left.Kind, right.Kind))
		}
		return vm.ctx.NewBool(less || object.Equal(left, right)), nil
	case token.GT:
		less, ok := object.Less(right, left)
		if !ok {
			panic(fmt.Sprintf("vm: unorderable types %s > %s", left.Kind, right.Kind))
		}
		return vm.ctx.NewBool(less), nil
	case token.GE:
		less, ok := object.Less(right, left)
		if !ok {
			panic(fmt.Sprintf("vm: unorderable types %s >= %s", left.Kind, right.Kind))
		}
		return vm.ctx.NewBool(less || object.Equal(left, right)), nil
	case token.IS:
		return vm.ctx.NewBool(object.Is(left, right)), nil
	default:
		panic(fmt.Sprintf("vm: unsupported comparison operator %s", op))
	}
}

// loadSubscript implements LOAD_SUBSCRIPT: string/list/tuple indexing by
// integer (with negative-index normalization) or by slice, and dict
// lookup by string key.
func (vm *VM) loadSubscript(container, index *object.Value) (*object.Value, *object.Value) {
	switch container.Kind {
	case object.KindDict:
		if index.Kind != object.KindString {
			panic("vm: dict subscript requires a string key")
		}
		val, ok := container.Entries[index.Str]
		if !ok {
			return nil, vm.nameError(fmt.Sprintf("KeyError: %s", index.Str))
		}
		return val, nil

	case object.KindList, object.KindTuple:
		if index.Kind == object.KindSlice {
			return sliceElements(vm, container, index), nil
		}
		i, ok := normalizeIndex(index, len(container.Elements))
		if !ok {
			panic("vm: list index out of range")
		}
		return container.Elements[i], nil

	case object.KindString:
		runes := []rune(container.Str)
		if index.Kind == object.KindSlice {
			return sliceString(vm, runes, index), nil
		}
		i, ok := normalizeIndex(index, len(runes))
		if !ok {
			panic("vm: string index out of range")
		}
		return vm.ctx.NewString(string(runes[i])), nil

	default:
		panic(fmt.Sprintf("vm: '%s' is not subscriptable", container.Kind))
	}
}

func (vm *VM) storeSubscript(container, index, val *object.Value) *object.Value {
	switch container.Kind {
	case object.KindDict:
		if index.Kind != object.KindString {
			panic("vm: dict subscript requires a string key")
		}
		container.Entries[index.Str] = val
		return nil
	case object.KindList:
		i, ok := normalizeIndex(index, len(container.Elements))
		if !ok {
			panic("vm: list index out of range")
		}
		container.Elements[i] = val
		return nil
	default:
		panic(fmt.Sprintf("vm: '%s' does not support item assignment", container.Kind))
	}
}

// normalizeIndex applies 's negative-index normalization
// (negative counts from the end) and clamp rule (out-of-range positive
// indices clamp to length — here surfaced as an out-of-bounds result for
// an exact element fetch since there is no element at the clamp point).
func normalizeIndex(index *object.Value, length int) (int, bool) {
	if index.Kind != object.KindInt {
		return 0, false
	}
	i := int(index.Int)
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

func sliceElements(vm *VM, container, slice *object.Value) *object.Value {
	start, stop, step := sliceBounds(slice, len(container.Elements))
	selected := steppedElements(container.Elements[start:stop], step)
	if container.Kind == object.KindTuple {
		return vm.ctx.NewTuple(selected)
	}
	return vm.ctx.NewList(selected)
}

func sliceString(vm *VM, runes []rune, slice *object.Value) *object.Value {
	start, stop, step := sliceBounds(slice, len(runes))
	return vm.ctx.NewString(string(steppedRunes(runes[start:stop], step)))
}

// sliceBounds resolves a slice's optional start/stop/step against length,
// clamping out-of-range positive endpoints. A zero step is a malformed
// program; a negative step mirrors do_stepped_slice's own scope and is
// not implemented.
func sliceBounds(slice *object.Value, length int) (start, stop, step int) {
	step = 1
	if slice.SliceStep != nil {
		step = int(*slice.SliceStep)
	}
	if step == 0 {
		panic("vm: slice step cannot be zero")
	}
	if step < 0 {
		panic("vm: negative slice step is not implemented")
	}
	start = 0
	if slice.SliceStart != nil {
		start = clampIndex(int(*slice.SliceStart), length)
	}
	stop = length
	if slice.SliceStop != nil {
		stop = clampIndex(int(*slice.SliceStop), length)
	}
	if stop < start {
		stop = start
	}
	return start, stop, step
}

// steppedElements selects every step'th element of an already
// start:stop-bounded slice (step==1 is the common, allocation-light case).
func steppedElements(elems []*object.Value, step int) []*object.Value {
	if step == 1 {
		return append([]*object.Value{}, elems...)
	}
	out := make([]*object.Value, 0, (len(elems)+step-1)/step)
	for i := 0; i < len(elems); i += step {
		out = append(out, elems[i])
	}
	return out
}

func steppedRunes(runes []rune, step int) []rune {
	if step == 1 {
		return runes
	}
	out := make([]rune, 0, (len(runes)+step-1)/step)
	for i := 0; i < len(runes); i += step {
		out = append(out, runes[i])
	}
	return out
}

func clampIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}
