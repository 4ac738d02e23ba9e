package vm

import (
	"fmt"
	"strings"

	"github.com/jm-research/pyst/internal/object"
)

// installBuiltins populates the builtins scope with print, the handful
// of exception classes scripts can catch by name, and __build_class__
// (exposed through LOAD_BUILD_CLASS rather than as a plain name,
// matching how class-def compiles — see compileClassDef).
func (vm *VM) installBuiltins() {
	object.ScopeSet(vm.builtins, "print", vm.ctx.NewRustFunction(builtinPrint))
	object.ScopeSet(vm.builtins, "AssertionError", vm.newExceptionClass("AssertionError"))
	object.ScopeSet(vm.builtins, "TypeError", vm.newExceptionClass("TypeError"))
	object.ScopeSet(vm.builtins, "KeyError", vm.newExceptionClass("KeyError"))
	object.ScopeSet(vm.builtins, "NameError", vm.newExceptionClass("NameError"))

	// Registered under its own name too, so "import builtins" / "from
	// builtins import X" resolve the same names a bare reference would,
	// sharing the builtins scope's own dict rather than a copy of it.
	builtinsModule := vm.ctx.NewModule("builtins")
	builtinsModule.ModuleDict = vm.builtins.ScopeLocals
	vm.RegisterModule("builtins", builtinsModule)
}

// newExceptionClass builds a minimal exception class deriving from
// BaseException, whose __init__ stores the first constructor argument (or
// None) as the instance's "message" attribute; further arguments are
// ignored.
func (vm *VM) newExceptionClass(name string) *object.Value {
	base := vm.ctx.BaseExceptionType
	dict := vm.ctx.NewDict()
	class := vm.ctx.NewClass(name, dict, nil)
	class.MRO = object.ComputeMRO(class, []*object.Value{base})
	dict.Entries["__init__"] = vm.ctx.NewRustFunction(func(m object.Machine, args []*object.Value) (*object.Value, *object.Value) {
		self := args[0]
		if len(args) > 1 {
			object.SetAttr(self, "message", args[1])
		} else {
			object.SetAttr(self, "message", m.Context().None())
		}
		return m.Context().None(), nil
	})
	return class
}

func builtinPrint(m object.Machine, args []*object.Value) (*object.Value, *object.Value) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = object.String(a)
	}
	vm, ok := m.(*VM)
	line := strings.Join(parts, " ") + "\n"
	if ok {
		vm.Stdout(line)
	} else {
		fmt.Print(line)
	}
	return m.Context().None(), nil
}

// buildClassFunc returns the rust-function LOAD_BUILD_CLASS pushes: it
// runs the class body function with a fresh scope, reads back the
// locals dict STORE_LOCALS aliased into the body's scope, and constructs
// a class value with that dict and a real computed MRO.
func (vm *VM) buildClassFunc() *object.Value {
	return vm.ctx.NewRustFunction(func(m object.Machine, args []*object.Value) (*object.Value, *object.Value) {
		if len(args) < 2 {
			return nil, m.Context().NewNameError("TypeError: __build_class__ requires a function and a name")
		}
		bodyFunc := args[0]
		name := args[1]
		bases := args[2:]
		if len(bases) == 0 {
			// Every class implicitly extends object, the way a bare
			// "class Foo:" does, so __new__/__init__ lookup always
			// finds the default protocol through the MRO.
			bases = []*object.Value{m.Context().ObjectType}
		}

		// The class body's STORE_LOCALS aliases its frame's own scope
		// dict to this one, so every STORE_NAME it executes becomes
		// visible here once the body returns.
		locals := m.Context().NewDict()
		if _, exc := m.Invoke(bodyFunc, []*object.Value{locals}); exc != nil {
			return nil, exc
		}

		class := m.Context().NewClass(name.Str, locals, nil)
		class.MRO = object.ComputeMRO(class, bases)
		return class, nil
	})
}

// resolveImport is the host's module-resolution collaborator. No module system is specified beyond the contract, so
// only modules the embedding host has pre-registered are resolvable;
// anything else is a NameError.
func (vm *VM) resolveImport(module, symbol string) (*object.Value, *object.Value) {
	mod, ok := vm.modules[module]
	if !ok {
		return nil, vm.nameError(fmt.Sprintf("ImportError: no module named '%s'", module))
	}
	if symbol == "" {
		return mod, nil
	}
	val, ok := object.GetAttr(vm, mod, symbol)
	if !ok {
		return nil, vm.nameError(fmt.Sprintf("ImportError: cannot import name '%s' from '%s'", symbol, module))
	}
	return val, nil
}

// RegisterModule exposes a host-provided module value under name for
// import statements to resolve.
func (vm *VM) RegisterModule(name string, mod *object.Value) {
	if vm.modules == nil {
		vm.modules = map[string]*object.Value{}
	}
	vm.modules[name] = mod
}
