package object

// GetAttr resolves value.name:
// module lookups consult the module's own namespace dict; instance
// lookups check the instance dict first, then the class's MRO; class
// lookups walk the class's own MRO. A class attribute that resolves to a
// plain function is bound to the receiver before being returned; one
// that resolves to a member-descriptor is applied to the receiver and
// its result returned instead.
// Grounded on original_source/pyst-vm/src/pyobject.rs's get_attribute.
func GetAttr(m Machine, v *Value, name string) (*Value, bool) {
	switch v.Kind {
	case KindModule:
		val, ok := v.ModuleDict.Entries[name]
		return val, ok

	case KindInstance:
		if val, ok := v.InstDict.Entries[name]; ok {
			return val, true
		}
		if val, ok := classLookup(v.Type, name); ok {
			return resolveClassAttr(m, val, v)
		}
		return nil, false

	case KindClass:
		if val, ok := classLookup(v, name); ok {
			return val, true
		}
		return nil, false

	case KindScope:
		if val, ok := v.ScopeLocals.Entries[name]; ok {
			return val, true
		}
		return nil, false

	default:
		return nil, false
	}
}

// resolveClassAttr finishes an instance's class-level attribute lookup.
// A plain function is bound to the receiver so the caller invokes it
// later; a member-descriptor is applied to the receiver right away,
// since looking one up IS the access (there's nothing left to call). A
// descriptor that raises surfaces as attribute-not-found rather than
// propagating through GetAttr's bool-only contract.
func resolveClassAttr(m Machine, val, receiver *Value) (*Value, bool) {
	switch {
	case val.Kind == KindFunction || val.Kind == KindRustFunction:
		return m.Context().NewBoundMethod(val, receiver), true
	case val.Kind == KindInstance && Is(val.Type, m.Context().MemberDescriptorType):
		fn := val.InstDict.Entries["function"]
		result, exc := m.Invoke(fn, []*Value{receiver})
		if exc != nil {
			return nil, false
		}
		return result, true
	default:
		return val, true
	}
}

// classLookup walks a class's MRO, returning the first match of name in
// any ancestor's own dict.
func classLookup(class *Value, name string) (*Value, bool) {
	for _, anc := range class.MRO {
		if val, ok := anc.ClassDict.Entries[name]; ok {
			return val, true
		}
	}
	return nil, false
}

// SetAttr assigns value.name = val. Classes store directly into their own
// dict (not through the MRO — shadowing an ancestor's attribute rather
// than mutating it); instances and modules store into their own dict.
func SetAttr(v *Value, name string, val *Value) bool {
	switch v.Kind {
	case KindModule:
		v.ModuleDict.Entries[name] = val
		return true
	case KindInstance:
		v.InstDict.Entries[name] = val
		return true
	case KindClass:
		v.ClassDict.Entries[name] = val
		return true
	case KindScope:
		v.ScopeLocals.Entries[name] = val
		return true
	default:
		return false
	}
}

// HasAttr reports whether GetAttr would succeed, without producing the
// bound-method wrapper a lookup might otherwise allocate.
func HasAttr(v *Value, name string) bool {
	switch v.Kind {
	case KindModule:
		_, ok := v.ModuleDict.Entries[name]
		return ok
	case KindInstance:
		if _, ok := v.InstDict.Entries[name]; ok {
			return true
		}
		_, ok := classLookup(v.Type, name)
		return ok
	case KindClass:
		_, ok := classLookup(v, name)
		return ok
	case KindScope:
		_, ok := v.ScopeLocals.Entries[name]
		return ok
	default:
		return false
	}
}

// ScopeGet walks a scope chain (innermost first) looking for name,
// returning the scope it was found in alongside the value.
func ScopeGet(scope *Value, name string) (*Value, *Value, bool) {
	for s := scope; s != nil; s = s.ScopeParent {
		if val, ok := s.ScopeLocals.Entries[name]; ok {
			return val, s, true
		}
	}
	return nil, nil, false
}

// ScopeSet stores name = val directly into scope's own locals (not
// walking up the chain: plain assignment always binds in the innermost
// scope, per ordinary — non-`global`/`nonlocal` — assignment semantics).
func ScopeSet(scope *Value, name string, val *Value) {
	scope.ScopeLocals.Entries[name] = val
}
