package object

import "github.com/jm-research/pyst/internal/bytecode"

// Context bootstraps and holds the builtin type singletons every Value
// references through its Type field. It builds the type/object/dict
// triad first (each depends on the others existing) and then the
// remaining builtin types.
type Context struct {
	TypeType             *Value
	ObjectType           *Value
	DictType             *Value
	IntType              *Value
	FloatType            *Value
	StringType           *Value
	BoolType             *Value
	ListType             *Value
	TupleType            *Value
	FunctionType         *Value
	BoundMethodType      *Value
	RustFunctionType     *Value
	ClassType            *Value
	ModuleType           *Value
	ScopeType            *Value
	NoneType             *Value
	SliceType            *Value
	IteratorType         *Value
	CodeType             *Value
	NameErrorType        *Value
	BaseExceptionType    *Value
	MemberDescriptorType *Value

	noneSingleton  *Value
	trueSingleton  *Value
	falseSingleton *Value
}

// NewContext bootstraps a fresh Context with every builtin type wired up.
func NewContext() *Context {
	ctx := &Context{}

	// type/object/dict form a cycle (type is an instance of itself, object
	// is an instance of type, dict is an instance of type and also backs
	// type's and object's own attribute dict) — allocate the cells first,
	// then populate.
	typeType := &Value{Kind: KindClass, Name: "type"}
	objectType := &Value{Kind: KindClass, Name: "object"}
	dictType := &Value{Kind: KindClass, Name: "dict"}
	typeType.Type = typeType
	objectType.Type = typeType
	dictType.Type = typeType
	typeType.ClassDict = &Value{Kind: KindDict, Type: dictType, Entries: map[string]*Value{}}
	objectType.ClassDict = &Value{Kind: KindDict, Type: dictType, Entries: map[string]*Value{}}
	dictType.ClassDict = &Value{Kind: KindDict, Type: dictType, Entries: map[string]*Value{}}
	typeType.MRO = []*Value{typeType, objectType}
	objectType.MRO = []*Value{objectType}
	dictType.MRO = []*Value{dictType, objectType}

	ctx.TypeType = typeType
	ctx.ObjectType = objectType
	ctx.DictType = dictType

	ctx.IntType = ctx.newBuiltinType("int", objectType)
	ctx.FloatType = ctx.newBuiltinType("float", objectType)
	ctx.StringType = ctx.newBuiltinType("str", objectType)
	ctx.BoolType = ctx.newBuiltinType("bool", objectType)
	ctx.ListType = ctx.newBuiltinType("list", objectType)
	ctx.TupleType = ctx.newBuiltinType("tuple", objectType)
	ctx.FunctionType = ctx.newBuiltinType("function", objectType)
	ctx.BoundMethodType = ctx.newBuiltinType("bound-method", objectType)
	ctx.RustFunctionType = ctx.newBuiltinType("rust-function", objectType)
	ctx.ClassType = ctx.newBuiltinType("class", objectType)
	ctx.ModuleType = ctx.newBuiltinType("module", objectType)
	ctx.ScopeType = ctx.newBuiltinType("scope", objectType)
	ctx.NoneType = ctx.newBuiltinType("NoneType", objectType)
	ctx.SliceType = ctx.newBuiltinType("slice", objectType)
	ctx.IteratorType = ctx.newBuiltinType("iterator", objectType)
	ctx.CodeType = ctx.newBuiltinType("code", objectType)
	ctx.BaseExceptionType = ctx.newBuiltinType("BaseException", objectType)
	ctx.NameErrorType = ctx.newBuiltinType("NameError", ctx.BaseExceptionType)
	ctx.MemberDescriptorType = ctx.newBuiltinType("member-descriptor", objectType)

	ctx.noneSingleton = &Value{Kind: KindNone, Type: ctx.NoneType}
	ctx.trueSingleton = &Value{Kind: KindBool, Bool: true, Type: ctx.BoolType}
	ctx.falseSingleton = &Value{Kind: KindBool, Bool: false, Type: ctx.BoolType}

	// object.__new__/object.__init__ are the default class-construction
	// protocol every class inherits unless it overrides one in its own
	// class dict; classLookup finds the override first since a class
	// always precedes its ancestors in its own MRO.
	objectType.ClassDict.Entries["__new__"] = ctx.NewRustFunction(newInstanceDefault)
	objectType.ClassDict.Entries["__init__"] = ctx.NewRustFunction(initNoop)

	// BaseException.args is a member-descriptor: looking it up on a raised
	// instance applies its function to the receiver and returns the
	// result immediately, rather than a bound method the caller has to
	// call itself.
	ctx.BaseExceptionType.ClassDict.Entries["args"] = ctx.NewMemberDescriptor(exceptionArgsDescriptor)

	return ctx
}

// exceptionArgsDescriptor reconstructs the single-element args tuple an
// exception instance carries from the message __init__ stashed on it.
func exceptionArgsDescriptor(m Machine, args []*Value) (*Value, *Value) {
	self := args[0]
	ctx := m.Context()
	msg, ok := self.InstDict.Entries["message"]
	if !ok || msg.Kind == KindNone {
		return ctx.NewTuple(nil), nil
	}
	return ctx.NewTuple([]*Value{msg}), nil
}

// newInstanceDefault is object.__new__: allocate a fresh instance typed
// as the class passed in as its first argument.
func newInstanceDefault(m Machine, args []*Value) (*Value, *Value) {
	if len(args) < 1 {
		return nil, m.Context().NewNameError("TypeError: __new__ requires a class argument")
	}
	return m.Context().NewInstance(args[0]), nil
}

// initNoop is object.__init__: the no-op initializer a class falls back
// to when it doesn't define its own.
func initNoop(m Machine, args []*Value) (*Value, *Value) {
	return m.Context().None(), nil
}

func (ctx *Context) newBuiltinType(name string, base *Value) *Value {
	t := &Value{Kind: KindClass, Name: name, Type: ctx.TypeType}
	t.ClassDict = &Value{Kind: KindDict, Type: ctx.DictType, Entries: map[string]*Value{}}
	t.MRO = append([]*Value{t}, base.MRO...)
	return t
}

func (ctx *Context) None() *Value { return ctx.noneSingleton }

func (ctx *Context) NewBool(b bool) *Value {
	if b {
		return ctx.trueSingleton
	}
	return ctx.falseSingleton
}

func (ctx *Context) NewInt(n int32) *Value {
	return &Value{Kind: KindInt, Int: n, Type: ctx.IntType}
}

func (ctx *Context) NewFloat(f float64) *Value {
	return &Value{Kind: KindFloat, Float: f, Type: ctx.FloatType}
}

func (ctx *Context) NewString(s string) *Value {
	return &Value{Kind: KindString, Str: s, Type: ctx.StringType}
}

func (ctx *Context) NewList(elems []*Value) *Value {
	return &Value{Kind: KindList, Elements: elems, Type: ctx.ListType}
}

func (ctx *Context) NewTuple(elems []*Value) *Value {
	return &Value{Kind: KindTuple, Elements: elems, Type: ctx.TupleType}
}

func (ctx *Context) NewDict() *Value {
	return &Value{Kind: KindDict, Entries: map[string]*Value{}, Type: ctx.DictType}
}

func (ctx *Context) NewSlice(start, stop, step *int32) *Value {
	return &Value{Kind: KindSlice, SliceStart: start, SliceStop: stop, SliceStep: step, Type: ctx.SliceType}
}

func (ctx *Context) NewIterator(of *Value) *Value {
	return &Value{Kind: KindIterator, IterOf: of, IterPos: 0, Type: ctx.IteratorType}
}

func (ctx *Context) NewScope(parent *Value) *Value {
	return &Value{
		Kind:        KindScope,
		Type:        ctx.ScopeType,
		ScopeLocals: ctx.NewDict(),
		ScopeParent: parent,
	}
}

func (ctx *Context) NewModule(name string) *Value {
	return &Value{Kind: KindModule, Name: name, Type: ctx.ModuleType, ModuleDict: ctx.NewDict()}
}

func (ctx *Context) NewRustFunction(fn RustFunc) *Value {
	return &Value{Kind: KindRustFunction, RustFn: fn, Type: ctx.RustFunctionType}
}

func (ctx *Context) NewFunction(code, scope *Value) *Value {
	return &Value{Kind: KindFunction, FuncCode: code, FuncScope: scope, Type: ctx.FunctionType}
}

func (ctx *Context) NewBoundMethod(fn, receiver *Value) *Value {
	return &Value{Kind: KindBoundMethod, BoundFunc: fn, BoundReceiver: receiver, Type: ctx.BoundMethodType}
}

func (ctx *Context) NewClass(name string, dict *Value, mro []*Value) *Value {
	return &Value{Kind: KindClass, Name: name, ClassDict: dict, MRO: mro, Type: ctx.TypeType}
}

func (ctx *Context) NewInstance(class *Value) *Value {
	return &Value{Kind: KindInstance, Type: class, InstDict: ctx.NewDict()}
}

// NewMemberDescriptor builds a member-descriptor instance: an attribute
// that, when resolved through an instance's class, is applied to the
// receiver immediately instead of being bound and handed back as a
// callable.
func (ctx *Context) NewMemberDescriptor(fn RustFunc) *Value {
	inst := &Value{Kind: KindInstance, Type: ctx.MemberDescriptorType, InstDict: ctx.NewDict()}
	inst.InstDict.Entries["function"] = ctx.NewRustFunction(fn)
	return inst
}

func (ctx *Context) NewCode(code *bytecode.CodeObject) *Value {
	return &Value{Kind: KindCode, Code: code, Type: ctx.CodeType}
}

func (ctx *Context) NewNameError(name string) *Value {
	return &Value{Kind: KindNameError, Str: name, Type: ctx.NameErrorType}
}
