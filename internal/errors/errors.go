// Package errors formats the driver-facing diagnostics shared across
// the pipeline: lexical errors, parse errors, and compile-time or
// runtime aborts, each rendered with the offending source line and a
// caret under the column.
package errors

import (
	"fmt"
	"strings"

	"github.com/jm-research/pyst/pkg/token"
)

// SourceError pairs a message with the source position it applies to and
// the original text, so the driver can render a line-and-caret
// diagnostic (grounded on go-dws's internal/errors package conventions
// for source-anchored compiler diagnostics).
type SourceError struct {
	Pos     token.Position
	Message string
	Source  string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Format renders the error message followed by the offending source
// line and a caret marking the column.
func (e *SourceError) Format() string {
	lines := strings.Split(e.Source, "\n")
	if e.Pos.Row < 1 || e.Pos.Row > len(lines) {
		return e.Error()
	}
	line := lines[e.Pos.Row-1]
	col := e.Pos.Column
	if col < 1 {
		col = 1
	}
	caret := strings.Repeat(" ", col-1) + "^"
	return fmt.Sprintf("%s\n%s\n%s\n%s", e.Error(), line, caret, "")
}

// CompileError reports a compile-time abort:
// malformed assignment targets, unimplemented syntactic forms. The
// program being compiled cannot catch them; the compiler recovers them
// into the error it returns.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string {
	return "compile error: " + e.Message
}

// Abort reports a runtime abort: unsupported
// operand types, missing attributes, a negative-step slice, a non-string
// dict key, and similar holes the object model and virtual machine
// intentionally leave unhandled rather than silently coercing.
type Abort struct {
	Message string
}

func (e *Abort) Error() string {
	return "aborted: " + e.Message
}

// Recover turns a panic into a returned error: a *CompileError or *Abort
// is passed through as is, and any other error value (including Go
// runtime errors) or string is wrapped in an Abort. Panics of any other
// type propagate.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	switch v := r.(type) {
	case *CompileError:
		*errp = v
	case *Abort:
		*errp = v
	case error:
		*errp = &Abort{Message: v.Error()}
	case string:
		*errp = &Abort{Message: v}
	default:
		panic(r)
	}
}
