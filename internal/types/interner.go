package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins caches the TypeIDs of every primitive, Unit, Never and
// Underscore, so passes never have to re-intern them.
type Builtins struct {
	Invalid    TypeID
	I32        TypeID
	U32        TypeID
	Isize      TypeID
	Usize      TypeID
	Bool       TypeID
	Char       TypeID
	String     TypeID
	Unit       TypeID
	Never      TypeID
	Underscore TypeID
}

// FieldInfo is one field of a struct definition.
type FieldInfo struct {
	Name string
	Type TypeID
}

// StructInfo holds the layout of a declared struct. Field order is
// significant: it is the canonical field ordering struct literals and
// field-index lowering rely on.
type StructInfo struct {
	Name   string
	Fields []FieldInfo
}

// EnumInfo holds the ordered variant list of a declared enum.
type EnumInfo struct {
	Name     string
	Variants []string
}

// Interner is the process-wide TypeContext: it hands out canonical TypeIDs
// for structurally-equal Type descriptors and owns the struct/enum
// registries that back KindStruct/KindEnum def-refs.
type Interner struct {
	entries  []Type
	index    map[typeKey]TypeID
	builtins Builtins
	structs  map[TypeID]*StructInfo
	enums    map[TypeID]*EnumInfo
}

type typeKey struct {
	Kind      Kind
	Prim      Primitive
	Def       TypeID
	Referent  TypeID
	IsMutable bool
	ArraySize uint32
}

func keyOf(t Type) typeKey {
	return typeKey{Kind: t.Kind, Prim: t.Prim, Def: t.Def, Referent: t.Referent, IsMutable: t.IsMutable, ArraySize: t.ArraySize}
}

// NewInterner constructs an interner pre-seeded with every primitive, Unit,
// Never and Underscore.
func NewInterner() *Interner {
	in := &Interner{
		index:   make(map[typeKey]TypeID, 32),
		structs: make(map[TypeID]*StructInfo),
		enums:   make(map[TypeID]*EnumInfo),
	}
	in.entries = append(in.entries, Type{Kind: KindInvalid}) // reserve NoTypeID
	in.builtins.I32 = in.intern(Type{Kind: KindPrimitive, Prim: PrimI32})
	in.builtins.U32 = in.intern(Type{Kind: KindPrimitive, Prim: PrimU32})
	in.builtins.Isize = in.intern(Type{Kind: KindPrimitive, Prim: PrimIsize})
	in.builtins.Usize = in.intern(Type{Kind: KindPrimitive, Prim: PrimUsize})
	in.builtins.Bool = in.intern(Type{Kind: KindPrimitive, Prim: PrimBool})
	in.builtins.Char = in.intern(Type{Kind: KindPrimitive, Prim: PrimChar})
	in.builtins.String = in.intern(Type{Kind: KindPrimitive, Prim: PrimString})
	in.builtins.Unit = in.intern(Type{Kind: KindUnit})
	in.builtins.Never = in.intern(Type{Kind: KindNever})
	in.builtins.Underscore = in.intern(Type{Kind: KindUnderscore})
	return in
}

// Builtins returns the cached primitive/Unit/Never/Underscore TypeIDs.
func (in *Interner) Builtins() Builtins { return in.builtins }

// Intern returns the canonical TypeID for t, minting a fresh one if no
// structurally-equal Type was interned before.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[keyOf(t)]; ok {
		return id
	}
	return in.intern(t)
}

func (in *Interner) intern(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.entries))
	if err != nil {
		panic(fmt.Errorf("types: interner overflow: %w", err))
	}
	id := TypeID(n)
	in.entries = append(in.entries, t)
	in.index[keyOf(t)] = id
	return id
}

// Lookup returns the descriptor for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if int(id) >= len(in.entries) {
		return Type{}, false
	}
	return in.entries[id], true
}

// MustLookup panics if id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// DeclareStruct reserves a fresh struct TypeID. Fields are attached later
// with SetStructFields once every type name in the translation unit has
// been registered, so field types may forward-reference structs declared
// later in the same file.
func (in *Interner) DeclareStruct(name string) TypeID {
	t := Type{Kind: KindStruct, Name: name}
	n, err := safecast.Conv[uint32](len(in.entries))
	if err != nil {
		panic(fmt.Errorf("types: interner overflow: %w", err))
	}
	id := TypeID(n)
	t.Def = id
	in.entries = append(in.entries, t)
	in.structs[id] = &StructInfo{Name: name}
	return id
}

// SetStructFields attaches the canonical field ordering to a previously
// declared struct.
func (in *Interner) SetStructFields(id TypeID, fields []FieldInfo) {
	if info, ok := in.structs[id]; ok {
		info.Fields = fields
	}
}

// StructInfo returns the field layout for a struct TypeID.
func (in *Interner) StructInfo(id TypeID) (*StructInfo, bool) {
	info, ok := in.structs[id]
	return info, ok
}

// DeclareEnum reserves a fresh enum TypeID with its ordered variant list.
func (in *Interner) DeclareEnum(name string, variants []string) TypeID {
	t := Type{Kind: KindEnum, Name: name}
	n, err := safecast.Conv[uint32](len(in.entries))
	if err != nil {
		panic(fmt.Errorf("types: interner overflow: %w", err))
	}
	id := TypeID(n)
	t.Def = id
	in.entries = append(in.entries, t)
	in.enums[id] = &EnumInfo{Name: name, Variants: variants}
	return id
}

// EnumInfo returns the variant list for an enum TypeID.
func (in *Interner) EnumInfo(id TypeID) (*EnumInfo, bool) {
	info, ok := in.enums[id]
	return info, ok
}

// Reference interns &T or &mut T.
func (in *Interner) Reference(referent TypeID, mutable bool) TypeID {
	return in.Intern(Type{Kind: KindReference, Referent: referent, IsMutable: mutable})
}

// Array interns [T; size].
func (in *Interner) Array(elem TypeID, size uint32) TypeID {
	return in.Intern(Type{Kind: KindArray, Referent: elem, ArraySize: size})
}
