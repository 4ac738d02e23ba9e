package object

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the display form of v used by PRINT_EXPR, the REPL's
// echoed result, and the print builtin.
func String(v *Value) string {
	switch v.Kind {
	case KindNone:
		return "None"
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(int64(v.Int), 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindString:
		return v.Str
	case KindList:
		return "[" + joinRepr(v.Elements) + "]"
	case KindTuple:
		if len(v.Elements) == 1 {
			return "(" + Repr(v.Elements[0]) + ",)"
		}
		return "(" + joinRepr(v.Elements) + ")"
	case KindDict:
		return dictRepr(v)
	case KindSlice:
		return fmt.Sprintf("slice(%s, %s, %s)", intPtrRepr(v.SliceStart), intPtrRepr(v.SliceStop), intPtrRepr(v.SliceStep))
	case KindClass:
		return fmt.Sprintf("<class '%s'>", v.Name)
	case KindInstance:
		return fmt.Sprintf("<%s instance>", v.Type.Name)
	case KindFunction:
		return "<function>"
	case KindBoundMethod:
		return "<bound method>"
	case KindRustFunction:
		return "<built-in function>"
	case KindModule:
		return fmt.Sprintf("<module '%s'>", v.Name)
	case KindNameError:
		return fmt.Sprintf("NameError: %s", v.Str)
	default:
		return fmt.Sprintf("<%s>", v.Kind)
	}
}

// Repr is the machine-oriented form used inside container reprs (strings
// get surrounded with quotes, unlike String's bare-text form).
func Repr(v *Value) string {
	if v.Kind == KindString {
		return strconv.Quote(v.Str)
	}
	return String(v)
}

func joinRepr(elems []*Value) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = Repr(e)
	}
	return strings.Join(parts, ", ")
}

func dictRepr(v *Value) string {
	parts := make([]string, 0, len(v.Entries))
	for k, val := range v.Entries {
		parts = append(parts, fmt.Sprintf("%q: %s", k, Repr(val)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func intPtrRepr(p *int32) string {
	if p == nil {
		return "None"
	}
	return strconv.FormatInt(int64(*p), 10)
}
