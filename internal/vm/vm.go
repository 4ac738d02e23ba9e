package vm

import (
	"fmt"

	"github.com/jm-research/pyst/internal/bytecode"
	"github.com/jm-research/pyst/internal/object"
)

// VM is the top-level virtual machine: one builtins scope plus whatever
// frames are currently executing. It implements object.Machine so
// rust-functions and class construction can call back into it without
// internal/object depending on this package.
type VM struct {
	ctx      *object.Context
	builtins *object.Value
	modules  map[string]*object.Value
	Stdout   func(string)
}

// New builds a VM with a fresh object-model context and a populated
// builtins scope.
func New() *VM {
	ctx := object.NewContext()
	v := &VM{ctx: ctx, Stdout: func(s string) { fmt.Print(s) }}
	v.builtins = ctx.NewScope(nil)
	v.installBuiltins()
	return v
}

func (vm *VM) Context() *object.Context { return vm.ctx }

// NewScope creates a fresh global scope parented to the builtins scope,
// the one a script-mode or REPL run executes against.
func (vm *VM) NewScope() *object.Value {
	return vm.ctx.NewScope(vm.builtins)
}

// Run executes code as a top-level program against scope, returning
// either the final return value or a propagating exception value.
func (vm *VM) Run(code *bytecode.CodeObject, scope *object.Value) (*object.Value, *object.Value) {
	return vm.runFrame(newFrame(code, scope))
}

// Invoke dispatches a call by callable kind.
func (vm *VM) Invoke(callable *object.Value, args []*object.Value) (*object.Value, *object.Value) {
	switch callable.Kind {
	case object.KindRustFunction:
		return callable.RustFn(vm, args)

	case object.KindFunction:
		scope := vm.ctx.NewScope(callable.FuncScope)
		if err := bindParams(vm.ctx, scope, callable.FuncCode.Code.Params, args); err != nil {
			return nil, err
		}
		return vm.runFrame(newFrame(callable.FuncCode.Code, scope))

	case object.KindBoundMethod:
		full := append([]*object.Value{callable.BoundReceiver}, args...)
		return vm.Invoke(callable.BoundFunc, full)

	case object.KindClass:
		// Construct per the class protocol: __new__ allocates (and, for
		// an overriding subclass, may return something other than a
		// fresh instance of callable), __init__ only runs when it did
		// produce one.
		newFn, ok := object.GetAttr(vm, callable, "__new__")
		if !ok {
			return nil, vm.typeError(fmt.Sprintf("'%s' object has no __new__", callable.Name))
		}
		inst, exc := vm.Invoke(newFn, append([]*object.Value{callable}, args...))
		if exc != nil {
			return nil, exc
		}
		if inst.Kind == object.KindInstance && object.Is(inst.Type, callable) {
			if initFn, ok := object.GetAttr(vm, inst, "__init__"); ok {
				if _, exc := vm.Invoke(initFn, args); exc != nil {
					return nil, exc
				}
			}
		}
		return inst, nil

	case object.KindInstance:
		call, ok := object.GetAttr(vm, callable, "__call__")
		if !ok {
			return nil, vm.typeError(fmt.Sprintf("'%s' object is not callable", callable.Type.Name))
		}
		full := append([]*object.Value{callable}, args...)
		return vm.Invoke(call, full)

	default:
		return nil, vm.typeError(fmt.Sprintf("'%s' object is not callable", callable.Kind))
	}
}

// bindParams binds positional arguments to parameter names.
func bindParams(ctx *object.Context, scope *object.Value, params []string, args []*object.Value) *object.Value {
	if len(args) != len(params) {
		return ctx.NewNameError(fmt.Sprintf("TypeError: expected %d argument(s), got %d", len(params), len(args)))
	}
	for i, p := range params {
		object.ScopeSet(scope, p, args[i])
	}
	return nil
}

func (vm *VM) typeError(msg string) *object.Value {
	return vm.ctx.NewNameError("TypeError: " + msg)
}

func (vm *VM) nameError(name string) *object.Value {
	return vm.ctx.NewNameError(name)
}

// runFrame is the fetch-execute loop: it dispatches instructions until a
// RETURN_VALUE produces a result or an exception escapes every block in
// the frame.
func (vm *VM) runFrame(f *Frame) (*object.Value, *object.Value) {
	for {
		if f.PC >= len(f.Code.Instructions) {
			return vm.ctx.None(), nil
		}
		instr := f.Code.Instructions[f.PC]
		f.PC++

		outcome, val := vm.execInstruction(f, instr)
		switch outcome {
		case outcomeContinue:
			continue
		case outcomeReturn:
			return val, nil
		case outcomeRaise:
			if vm.unwindToHandler(f, val) {
				continue
			}
			return nil, val
		}
	}
}

type outcome int

const (
	outcomeContinue outcome = iota
	outcomeReturn
	outcomeRaise
)

// unwindToHandler pops blocks until an except-block is exposed, pushes
// the exception for the handler to match, and jumps there. Returns false if no handler exists in this frame, meaning
// the exception propagates to the caller.
func (vm *VM) unwindToHandler(f *Frame, exc *object.Value) bool {
	for len(f.Blocks) > 0 {
		b := f.popBlock()
		if b.Kind == BlockExcept {
			f.push(exc)
			f.jump(b.Handler)
			return true
		}
	}
	return false
}
