package object

import "testing"

func TestEqualNumericCrossesIntFloatBool(t *testing.T) {
	ctx := NewContext()
	cases := []struct {
		name string
		a, b *Value
		want bool
	}{
		{"int-float-equal", ctx.NewInt(2), ctx.NewFloat(2.0), true},
		{"int-float-unequal", ctx.NewInt(2), ctx.NewFloat(2.5), false},
		{"bool-int-true", ctx.NewBool(true), ctx.NewInt(1), true},
		{"bool-int-false", ctx.NewBool(false), ctx.NewInt(0), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Equal(c.a, c.b); got != c.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestEqualStrings(t *testing.T) {
	ctx := NewContext()
	if !Equal(ctx.NewString("hi"), ctx.NewString("hi")) {
		t.Error("expected equal strings to compare equal")
	}
	if Equal(ctx.NewString("hi"), ctx.NewString("bye")) {
		t.Error("expected different strings to compare unequal")
	}
}

func TestEqualNoneOnlyMatchesNone(t *testing.T) {
	ctx := NewContext()
	if !Equal(ctx.None(), ctx.None()) {
		t.Error("expected None to equal None")
	}
	if Equal(ctx.None(), ctx.NewInt(0)) {
		t.Error("expected None to not equal 0")
	}
}

func TestEqualListsElementwise(t *testing.T) {
	ctx := NewContext()
	a := ctx.NewList([]*Value{ctx.NewInt(1), ctx.NewInt(2)})
	b := ctx.NewList([]*Value{ctx.NewInt(1), ctx.NewInt(2)})
	c := ctx.NewList([]*Value{ctx.NewInt(1), ctx.NewInt(3)})
	if !Equal(a, b) {
		t.Error("expected lists with equal elements to compare equal")
	}
	if Equal(a, c) {
		t.Error("expected lists with differing elements to compare unequal")
	}
}

func TestEqualDictsByKeyAndValue(t *testing.T) {
	ctx := NewContext()
	a := ctx.NewDict()
	a.Entries["x"] = ctx.NewInt(1)
	b := ctx.NewDict()
	b.Entries["x"] = ctx.NewInt(1)
	if !Equal(a, b) {
		t.Error("expected dicts with the same entries to compare equal")
	}
	b.Entries["y"] = ctx.NewInt(2)
	if Equal(a, b) {
		t.Error("expected dicts with differing entry counts to compare unequal")
	}
}

func TestEqualFallsBackToIdentityForOtherKinds(t *testing.T) {
	ctx := NewContext()
	fn := ctx.NewRustFunction(func(m Machine, args []*Value) (*Value, *Value) { return nil, nil })
	if !Equal(fn, fn) {
		t.Error("expected a value to be equal to itself by identity")
	}
	other := ctx.NewRustFunction(func(m Machine, args []*Value) (*Value, *Value) { return nil, nil })
	if Equal(fn, other) {
		t.Error("expected two distinct rust-functions to compare unequal")
	}
}

func TestLessNumeric(t *testing.T) {
	ctx := NewContext()
	less, ok := Less(ctx.NewInt(1), ctx.NewFloat(2.5))
	if !ok || !less {
		t.Errorf("Less(1, 2.5) = (%v, %v), want (true, true)", less, ok)
	}
}

func TestLessStrings(t *testing.T) {
	ctx := NewContext()
	less, ok := Less(ctx.NewString("a"), ctx.NewString("b"))
	if !ok || !less {
		t.Errorf("Less(\"a\", \"b\") = (%v, %v), want (true, true)", less, ok)
	}
}

func TestLessListsLexicographic(t *testing.T) {
	ctx := NewContext()
	a := ctx.NewList([]*Value{ctx.NewInt(1), ctx.NewInt(2)})
	b := ctx.NewList([]*Value{ctx.NewInt(1), ctx.NewInt(3)})
	less, ok := Less(a, b)
	if !ok || !less {
		t.Errorf("Less([1,2], [1,3]) = (%v, %v), want (true, true)", less, ok)
	}

	shorter := ctx.NewList([]*Value{ctx.NewInt(1)})
	less, ok = Less(shorter, a)
	if !ok || !less {
		t.Error("expected a shorter prefix list to be less than a longer one")
	}
}

func TestLessUnorderedKindsReportNotOk(t *testing.T) {
	ctx := NewContext()
	_, ok := Less(ctx.NewString("x"), ctx.NewInt(1))
	if ok {
		t.Error("expected Less between a string and an int to report ok=false")
	}
}

func TestIsPointerIdentity(t *testing.T) {
	ctx := NewContext()
	a := ctx.NewInt(1)
	b := ctx.NewInt(1)
	if Is(a, b) {
		t.Error("expected two distinct int cells to not be identical")
	}
	if !Is(a, a) {
		t.Error("expected a value to be identical to itself")
	}
}
