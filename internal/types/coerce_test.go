package types_test

import (
	"testing"

	"corec/internal/types"
)

func TestIsAssignable_NeverCoercesToAnything(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	if !in.IsAssignable(b.Never, b.I32) {
		t.Error("expected Never to be assignable to i32")
	}
	if in.IsAssignable(b.I32, b.Never) {
		t.Error("expected i32 to not be assignable to Never")
	}
}

func TestIsAssignable_MutableReferenceCoercesToImmutable(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	mutRef := in.Reference(b.I32, true)
	immutRef := in.Reference(b.I32, false)
	if !in.IsAssignable(mutRef, immutRef) {
		t.Error("expected &mut i32 to be assignable to &i32")
	}
	if in.IsAssignable(immutRef, mutRef) {
		t.Error("expected &i32 to not be assignable to &mut i32")
	}
}

func TestIsAssignable_UnrelatedTypesAreNotAssignable(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	if in.IsAssignable(b.I32, b.Bool) {
		t.Error("expected i32 to not be assignable to bool")
	}
}

func TestIsCastable_PrimitiveToPrimitiveAlwaysAllowed(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	if !in.IsCastable(b.I32, b.U32) {
		t.Error("expected i32 as u32 to be castable")
	}
	if !in.IsCastable(b.Bool, b.I32) {
		t.Error("expected bool as i32 to be castable")
	}
}

func TestIsCastable_ArraysRequireMatchingSize(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	a3 := in.Array(b.I32, 3)
	a4 := in.Array(b.I32, 4)
	a3u := in.Array(b.U32, 3)
	if in.IsCastable(a3, a4) {
		t.Error("expected arrays of different sizes to not be castable")
	}
	if !in.IsCastable(a3, a3u) {
		t.Error("expected [i32; 3] as [u32; 3] to be castable (element-wise primitive cast)")
	}
}

func TestFindCommonType_NeverUnifiesToTheOtherOperand(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	got, ok := in.FindCommonType(b.Never, b.I32)
	if !ok || got != b.I32 {
		t.Fatalf("FindCommonType(Never, i32) = (%v, %v), want (i32, true)", got, ok)
	}
	got, ok = in.FindCommonType(b.Bool, b.Never)
	if !ok || got != b.Bool {
		t.Fatalf("FindCommonType(bool, Never) = (%v, %v), want (bool, true)", got, ok)
	}
}

func TestFindCommonType_MismatchedNonNeverTypesFail(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	if _, ok := in.FindCommonType(b.I32, b.Bool); ok {
		t.Error("expected i32 and bool to have no common type")
	}
}

func TestIsNumericIsBoolIsNever(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	if !in.IsNumeric(b.I32) || in.IsNumeric(b.Bool) {
		t.Error("IsNumeric misclassified i32/bool")
	}
	if !in.IsBool(b.Bool) || in.IsBool(b.I32) {
		t.Error("IsBool misclassified bool/i32")
	}
	if !in.IsNever(b.Never) || in.IsNever(b.Unit) {
		t.Error("IsNever misclassified Never/Unit")
	}
}
