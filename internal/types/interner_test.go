package types_test

import (
	"testing"

	"corec/internal/types"
)

func TestInterner_BuiltinsAreStable(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	if b.I32 == types.NoTypeID || b.Unit == types.NoTypeID || b.Never == types.NoTypeID {
		t.Fatal("expected every builtin to have a non-zero TypeID")
	}
	ty, ok := in.Lookup(b.I32)
	if !ok || ty.Kind != types.KindPrimitive || ty.Prim != types.PrimI32 {
		t.Fatalf("expected Builtins().I32 to look up as a primitive i32, got %+v", ty)
	}
}

func TestInterner_StructurallyEqualTypesShareOneID(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	r1 := in.Reference(b.I32, false)
	r2 := in.Reference(b.I32, false)
	if r1 != r2 {
		t.Fatalf("expected two interns of &i32 to share a TypeID, got %v and %v", r1, r2)
	}
	rMut := in.Reference(b.I32, true)
	if rMut == r1 {
		t.Fatal("expected &mut i32 and &i32 to be distinct types")
	}
}

func TestInterner_ArrayDistinguishesSize(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	a3 := in.Array(b.I32, 3)
	a4 := in.Array(b.I32, 4)
	if a3 == a4 {
		t.Fatal("expected [i32; 3] and [i32; 4] to be distinct types")
	}
	same := in.Array(b.I32, 3)
	if a3 != same {
		t.Fatal("expected two interns of [i32; 3] to share a TypeID")
	}
}

func TestInterner_StructFieldsRoundTrip(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	id := in.DeclareStruct("Point")
	in.SetStructFields(id, []types.FieldInfo{
		{Name: "x", Type: b.I32},
		{Name: "y", Type: b.I32},
	})
	info, ok := in.StructInfo(id)
	if !ok {
		t.Fatal("expected StructInfo to find the declared struct")
	}
	if info.Name != "Point" || len(info.Fields) != 2 {
		t.Fatalf("unexpected StructInfo: %+v", info)
	}
	if info.Fields[0].Name != "x" || info.Fields[1].Name != "y" {
		t.Fatalf("expected fields in declaration order, got %+v", info.Fields)
	}
}

func TestInterner_EnumVariantsRoundTrip(t *testing.T) {
	in := types.NewInterner()
	id := in.DeclareEnum("Color", []string{"Red", "Green", "Blue"})
	info, ok := in.EnumInfo(id)
	if !ok {
		t.Fatal("expected EnumInfo to find the declared enum")
	}
	if len(info.Variants) != 3 || info.Variants[1] != "Green" {
		t.Fatalf("unexpected EnumInfo: %+v", info)
	}
}

func TestInterner_LookupUnknownID(t *testing.T) {
	in := types.NewInterner()
	if _, ok := in.Lookup(types.TypeID(999)); ok {
		t.Fatal("expected Lookup of an unregistered TypeID to fail")
	}
}

func TestPrimitive_IsIntegerAndSigned(t *testing.T) {
	signed := []types.Primitive{types.PrimI32, types.PrimIsize}
	unsigned := []types.Primitive{types.PrimU32, types.PrimUsize}
	for _, p := range signed {
		if !p.IsInteger() || !p.IsSigned() {
			t.Errorf("%v: expected integer and signed", p)
		}
	}
	for _, p := range unsigned {
		if !p.IsInteger() || p.IsSigned() {
			t.Errorf("%v: expected integer and unsigned", p)
		}
	}
	if types.PrimBool.IsInteger() {
		t.Error("expected bool to not be an integer primitive")
	}
}
