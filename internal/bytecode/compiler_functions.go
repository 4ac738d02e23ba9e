package bytecode

import "github.com/jm-research/pyst/internal/ast"

// compileFunctionDef lowers `def name(params): body` into a nested code
// object built as a MAKE_FUNCTION constant and bound to name in the
// enclosing scope.
func (c *Compiler) compileFunctionDef(s *ast.FunctionDef) {
	c.push(s.Name, s.Params)
	c.compileStatements(s.Body)
	c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstNone}})
	c.emit(Instruction{Op: OpReturnValue})
	code := c.pop()

	c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstCode, Code: code}})
	c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstString, Str: s.Name}})
	c.emit(Instruction{Op: OpMakeFunction})
	c.emit(Instruction{Op: OpStoreName, Name: s.Name})
}

// compileLambda lowers `lambda params: body` the same way as a
// FunctionDef whose body is a single implicit return, but as an
// expression producing the function value rather than binding a name.
func (c *Compiler) compileLambda(e *ast.Lambda) {
	c.push("<lambda>", e.Params)
	c.compileExpression(e.Body)
	c.emit(Instruction{Op: OpReturnValue})
	code := c.pop()

	c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstCode, Code: code}})
	c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstString, Str: "<lambda>"}})
	c.emit(Instruction{Op: OpMakeFunction})
}

// compileClassDef lowers `class name(bases): body` through the
// load-build-class protocol: the body runs as a function of one parameter,
// __locals__, whose value (the locals dict passed in by the
// class-construction function) STORE_LOCALS installs as the body's scope
// dict, so the attributes and
// methods it defines become visible to the class-construction
// rust-function, which is then invoked as
// __build_class__(body_func, name, base1, base2, ...).
func (c *Compiler) compileClassDef(s *ast.ClassDef) {
	c.push(s.Name, []string{"__locals__"})
	c.emit(Instruction{Op: OpLoadName, Name: "__locals__"})
	c.emit(Instruction{Op: OpStoreLocals})
	c.compileStatements(s.Body)
	c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstNone}})
	c.emit(Instruction{Op: OpReturnValue})
	code := c.pop()

	c.emit(Instruction{Op: OpLoadBuildClass})
	c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstCode, Code: code}})
	c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstString, Str: s.Name}})
	c.emit(Instruction{Op: OpMakeFunction})
	c.emit(Instruction{Op: OpLoadConst, Const: Constant{Kind: ConstString, Str: s.Name}})
	for _, base := range s.Bases {
		c.emit(Instruction{Op: OpLoadName, Name: base})
	}
	c.emit(Instruction{Op: OpCallFunction, Size: 2 + len(s.Bases)})
	c.emit(Instruction{Op: OpStoreName, Name: s.Name})
}
