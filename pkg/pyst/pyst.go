// Package pyst is the public embeddable API: compile source text to a
// code object and run it against a fresh virtual machine.
package pyst

import (
	"fmt"
	"io"
	"os"

	"github.com/jm-research/pyst/internal/bytecode"
	"github.com/jm-research/pyst/internal/errors"
	"github.com/jm-research/pyst/internal/object"
	"github.com/jm-research/pyst/internal/vm"
)

// Mode selects compilation mode (re-exported so callers don't need to
// import internal/bytecode directly).
type Mode = bytecode.Mode

const (
	ModeExec   = bytecode.ModeExec
	ModeSingle = bytecode.ModeSingle
)

// Interpreter bundles a virtual machine with the global scope a run
// executes against, so a REPL can keep bindings alive across inputs.
type Interpreter struct {
	vm    *vm.VM
	Scope *object.Value
}

// New builds an Interpreter with output directed to w.
func New(w io.Writer) *Interpreter {
	m := vm.New()
	m.Stdout = func(s string) { fmt.Fprint(w, s) }
	return &Interpreter{vm: m, Scope: m.NewScope()}
}

// Compile lowers source text into a code object without running it.
func Compile(text string, mode Mode) (*bytecode.CodeObject, error) {
	return bytecode.CompileProgram(text, mode)
}

// Run compiles and executes text in Exec mode against the interpreter's
// scope, so bindings persist across calls, returning the final return
// value or a propagating exception.
func (in *Interpreter) Run(text string) (result *object.Value, raised *object.Value, err error) {
	return in.RunMode(text, ModeExec)
}

// RunMode compiles and executes text in the given mode, recovering any
// abort raised by the compiler or virtual machine into err.
func (in *Interpreter) RunMode(text string, mode Mode) (result *object.Value, raised *object.Value, err error) {
	defer errors.Recover(&err)

	code, cerr := bytecode.CompileProgram(text, mode)
	if cerr != nil {
		return nil, nil, cerr
	}
	result, raised = in.vm.Run(code, in.Scope)
	return result, raised, nil
}

// RunFile reads path, compiles it in Exec mode, and runs it against a
// fresh scope.
func RunFile(path string, w io.Writer) (raised *object.Value, err error) {
	content, rerr := os.ReadFile(path)
	if rerr != nil {
		return nil, rerr
	}
	in := New(w)
	_, raised, err = in.Run(string(content) + "\n")
	return raised, err
}
