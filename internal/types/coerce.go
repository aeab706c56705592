package types

// IsAssignable reports whether a value of type from may be used where a
// value of type to is expected (spec.md §3.1): Never is assignable to
// anything, a mutable reference coerces to a matching immutable reference,
// and otherwise the types must be identical.
func (in *Interner) IsAssignable(from, to TypeID) bool {
	if from == to {
		return true
	}
	ft, ok1 := in.Lookup(from)
	tt, ok2 := in.Lookup(to)
	if !ok1 || !ok2 {
		return false
	}
	if ft.Kind == KindNever {
		return true
	}
	if ft.Kind == KindReference && tt.Kind == KindReference {
		if ft.IsMutable && !tt.IsMutable && ft.Referent == tt.Referent {
			return true
		}
	}
	return false
}

// IsCastable reports whether `value as target` is legal (spec.md §4.4
// Cast rule): Never casts to anything; primitive-to-primitive casts are
// always allowed; references and arrays descend structurally with array
// sizes required to match.
func (in *Interner) IsCastable(from, to TypeID) bool {
	if from == to {
		return true
	}
	ft, ok1 := in.Lookup(from)
	tt, ok2 := in.Lookup(to)
	if !ok1 || !ok2 {
		return false
	}
	if ft.Kind == KindNever {
		return true
	}
	if ft.Kind == KindPrimitive && tt.Kind == KindPrimitive {
		return true
	}
	if ft.Kind == KindReference && tt.Kind == KindReference {
		return in.IsCastable(ft.Referent, tt.Referent)
	}
	if ft.Kind == KindArray && tt.Kind == KindArray {
		return ft.ArraySize == tt.ArraySize && in.IsCastable(ft.Referent, tt.Referent)
	}
	return false
}

// FindCommonType unifies the types of two branches of the same control-flow
// expression (if/else, array-literal elements). Never unifies to the other
// operand's type; otherwise the two types must already be identical.
func (in *Interner) FindCommonType(a, b TypeID) (TypeID, bool) {
	if a == b {
		return a, true
	}
	at, ok1 := in.Lookup(a)
	bt, ok2 := in.Lookup(b)
	if !ok1 || !ok2 {
		return NoTypeID, false
	}
	if at.Kind == KindNever {
		return b, true
	}
	if bt.Kind == KindNever {
		return a, true
	}
	return NoTypeID, false
}

// IsNumeric reports whether id is one of the four integer primitives.
func (in *Interner) IsNumeric(id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == KindPrimitive && t.Prim.IsInteger()
}

// IsBool reports whether id is the bool primitive.
func (in *Interner) IsBool(id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == KindPrimitive && t.Prim == PrimBool
}

// IsNever reports whether id is the bottom type.
func (in *Interner) IsNever(id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == KindNever
}
