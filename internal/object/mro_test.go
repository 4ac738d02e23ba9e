package object

import (
	"reflect"
	"testing"
)

func TestComputeMROSingleBase(t *testing.T) {
	ctx := NewContext()
	base := ctx.newBuiltinType("Base", ctx.ObjectType)
	derived := &Value{Kind: KindClass, Name: "Derived"}

	mro := ComputeMRO(derived, []*Value{base})
	want := append([]*Value{derived}, base.MRO...)
	if !reflect.DeepEqual(mro, want) {
		t.Errorf("ComputeMRO = %v, want %v", names(mro), names(want))
	}
}

func TestComputeMROMultipleBasesDepthFirstLeftToRight(t *testing.T) {
	ctx := NewContext()
	a := ctx.newBuiltinType("A", ctx.ObjectType)
	b := ctx.newBuiltinType("B", ctx.ObjectType)
	derived := &Value{Kind: KindClass, Name: "Derived"}

	mro := ComputeMRO(derived, []*Value{a, b})
	want := []*Value{derived, a, ctx.ObjectType, b}
	if !reflect.DeepEqual(mro, want) {
		t.Errorf("ComputeMRO = %v, want %v", names(mro), names(want))
	}
}

func TestComputeMRODiamondCollapsesToFirstOccurrence(t *testing.T) {
	ctx := NewContext()
	// base -> object, derived-from-base1 and derived-from-base2 both
	// extend base, and the diamond class extends both: object should
	// appear only once, where base's own chain first places it.
	base := ctx.newBuiltinType("Base", ctx.ObjectType)
	left := &Value{Kind: KindClass, Name: "Left"}
	left.MRO = ComputeMRO(left, []*Value{base})
	right := &Value{Kind: KindClass, Name: "Right"}
	right.MRO = ComputeMRO(right, []*Value{base})

	diamond := &Value{Kind: KindClass, Name: "Diamond"}
	mro := ComputeMRO(diamond, []*Value{left, right})

	want := []*Value{diamond, left, base, ctx.ObjectType, right}
	if !reflect.DeepEqual(mro, want) {
		t.Errorf("ComputeMRO = %v, want %v", names(mro), names(want))
	}
}

func names(vs []*Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name
	}
	return out
}
