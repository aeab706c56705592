package mir

import "corec/internal/types"

// PlaceBaseKind distinguishes the two storage roots a Place can project
// from (spec.md §3.7): a named local, or memory reached through a
// dereferenced pointer temporary.
type PlaceBaseKind uint8

const (
	// PlaceLocalBase roots the place at a LocalID.
	PlaceLocalBase PlaceBaseKind = iota
	// PlacePointerBase roots the place at the memory a pointer-typed
	// temporary refers to (the lowered form of `*p`).
	PlacePointerBase
)

// ProjKind distinguishes a Place's projection steps.
type ProjKind uint8

const (
	// ProjField projects into a struct field by position.
	ProjField ProjKind = iota
	// ProjIndex projects into an array element by operand.
	ProjIndex
)

// Projection is one step appended to a Place's base (spec.md §4.8.2):
// field access appends ProjField, array index appends ProjIndex.
type Projection struct {
	Kind  ProjKind
	Field int     // ProjField: field position in the struct's canonical layout
	Index Operand // ProjIndex: the index value, already lowered to an operand
}

// Place is an addressable storage slot: LocalPlace(LocalId) or
// PointerPlace(TempId), plus an ordered list of projections (spec.md §3.7).
type Place struct {
	Base    PlaceBaseKind
	Local   LocalID // PlaceLocalBase
	Pointer TempID  // PlacePointerBase
	Projs   []Projection
}

// LocalPlace builds an un-projected place rooted at local.
func LocalPlace(local LocalID) Place {
	return Place{Base: PlaceLocalBase, Local: local, Pointer: NoTempID}
}

// PointerPlace builds an un-projected place rooted at the memory ptr
// (a reference-typed temporary) refers to.
func PointerPlace(ptr TempID) Place {
	return Place{Base: PlacePointerBase, Local: NoLocalID, Pointer: ptr}
}

// Field returns a copy of p with a ProjField(index) projection appended.
func (p Place) Field(index int) Place {
	out := p
	out.Projs = append(append([]Projection{}, p.Projs...), Projection{Kind: ProjField, Field: index})
	return out
}

// Index returns a copy of p with a ProjIndex(op) projection appended.
func (p Place) Index(op Operand) Place {
	out := p
	out.Projs = append(append([]Projection{}, p.Projs...), Projection{Kind: ProjIndex, Index: op})
	return out
}

// ConstKind enumerates the literal shapes an Operand constant may carry,
// mirroring hir.ConstVariantKind (spec.md §3.5) plus a unit sentinel MIR
// needs for the "no value" case of void calls and Unit-typed constants.
type ConstKind uint8

const (
	ConstNone ConstKind = iota
	ConstInt
	ConstUint
	ConstBool
	ConstChar
	ConstString
	ConstUnit
)

// ConstValue is a lowered compile-time constant operand.
type ConstValue struct {
	Kind   ConstKind
	Int    int32
	Uint   uint32
	Bool   bool
	Char   byte
	String string
}

// OperandKind distinguishes an Operand's two shapes (spec.md §4.8.2).
type OperandKind uint8

const (
	// OperandTemp reads an already-materialised SSA temporary.
	OperandTemp OperandKind = iota
	// OperandConst is an immediate constant value.
	OperandConst
)

// Operand is an rvalue that is already in its final, usable form: a
// temporary or a constant (spec.md §4.8.2's lower_operand result).
type Operand struct {
	Kind  OperandKind
	Temp  TempID
	Type  types.TypeID
	Const ConstValue
}

// TempOperand builds an Operand reading temp of type ty.
func TempOperand(temp TempID, ty types.TypeID) Operand {
	return Operand{Kind: OperandTemp, Temp: temp, Type: ty}
}

// ConstOperand builds an Operand carrying an immediate constant.
func ConstOperand(ty types.TypeID, c ConstValue) Operand {
	return Operand{Kind: OperandConst, Temp: NoTempID, Type: ty, Const: c}
}
