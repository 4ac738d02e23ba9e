// Package object implements the runtime value model: a single
// tagged-variant Value type shared by handle (pointer) and mutated only
// through the specific operations the virtual machine needs, plus the
// bootstrap Context that wires the type/object/dict triad and the rest
// of the builtin type singletons.
//
// Go's garbage collector stands in for a refcounted handle scheme: a
// Value handle is simply a *Value — sharing is pointer sharing, and
// `is` is pointer identity.
package object

import "github.com/jm-research/pyst/internal/bytecode"

// Kind tags the variant a Value currently holds.
type Kind uint8

const (
	KindNone Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindList
	KindTuple
	KindDict
	KindIterator
	KindSlice
	KindCode
	KindFunction
	KindBoundMethod
	KindRustFunction
	KindClass
	KindInstance
	KindModule
	KindScope
	KindNameError
)

var kindNames = map[Kind]string{
	KindNone: "NoneType", KindString: "str", KindInt: "int", KindFloat: "float",
	KindBool: "bool", KindList: "list", KindTuple: "tuple", KindDict: "dict",
	KindIterator: "iterator", KindSlice: "slice", KindCode: "code",
	KindFunction: "function", KindBoundMethod: "bound-method",
	KindRustFunction: "rust-function", KindClass: "class", KindInstance: "instance",
	KindModule: "module", KindScope: "scope", KindNameError: "NameError",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Machine is the subset of the virtual machine a rust-function or class
// construction needs to call back into: invoking a callable and producing
// fresh values through the running context. Defined here (rather than
// imported from internal/vm) so internal/object does not depend on the
// package that depends on it.
type Machine interface {
	Invoke(callable *Value, args []*Value) (*Value, *Value)
	Context() *Context
}

// RustFunc is a host-provided callable.
type RustFunc func(m Machine, args []*Value) (*Value, *Value)

// Value is the single tagged-variant runtime cell. Every value except the bootstrap type/object/dict
// triad carries a non-nil Type.
type Value struct {
	Kind Kind
	Type *Value

	Str string // string payload, and the carried name of a NameError

	Int   int32
	Float float64
	Bool  bool

	Elements []*Value // list / tuple

	// Dict: string-keyed mapping to value references. Also backs a
	// class's own dict and an instance's/module's namespace.
	Entries map[string]*Value

	IterPos int
	IterOf  *Value

	SliceStart, SliceStop, SliceStep *int32

	Code *bytecode.CodeObject

	FuncCode  *Value // KindCode
	FuncScope *Value // KindScope

	BoundFunc     *Value
	BoundReceiver *Value

	RustFn RustFunc

	Name      string  // class / module name
	ClassDict *Value  // KindDict
	MRO       []*Value

	InstDict *Value // KindDict

	ModuleDict *Value // KindDict

	ScopeLocals *Value // KindDict
	ScopeParent *Value // KindScope or nil
}

// Is reports pointer identity.
func Is(a, b *Value) bool {
	return a == b
}
