// Package types implements the TypeId interner (C3.1 of the type model):
// a process-wide TypeContext that hands out small opaque TypeIDs for
// structurally canonical Type descriptors.
package types

import "fmt"

// TypeID is an opaque handle identifying a canonical Type. Two TypeIDs
// compare equal iff they denote the same semantic type.
type TypeID uint32

// NoTypeID marks an unresolved or absent type.
const NoTypeID TypeID = 0

// Kind enumerates the members of the Type sum.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPrimitive
	KindStruct
	KindEnum
	KindReference
	KindArray
	KindUnit
	KindNever
	KindUnderscore
)

// Primitive enumerates the built-in scalar types.
type Primitive uint8

const (
	PrimInvalid Primitive = iota
	PrimI32
	PrimU32
	PrimIsize
	PrimUsize
	PrimBool
	PrimChar
	PrimString
)

func (p Primitive) String() string {
	switch p {
	case PrimI32:
		return "i32"
	case PrimU32:
		return "u32"
	case PrimIsize:
		return "isize"
	case PrimUsize:
		return "usize"
	case PrimBool:
		return "bool"
	case PrimChar:
		return "char"
	case PrimString:
		return "string"
	default:
		return "<invalid>"
	}
}

// IsInteger reports whether p is one of the four integer primitives.
func (p Primitive) IsInteger() bool {
	switch p {
	case PrimI32, PrimU32, PrimIsize, PrimUsize:
		return true
	default:
		return false
	}
}

// IsSigned reports whether p is a signed integer primitive.
func (p Primitive) IsSigned() bool { return p == PrimI32 || p == PrimIsize }

// Type is the algebraic sum described in spec.md §3.1.
type Type struct {
	Kind      Kind
	Prim      Primitive // KindPrimitive
	Def       TypeID    // KindStruct/KindEnum: self-identity, used as the stable def-ref
	Name      string    // KindStruct/KindEnum: surface name, for diagnostics
	Referent  TypeID    // KindReference/KindArray element
	IsMutable bool      // KindReference
	ArraySize uint32    // KindArray
}

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindPrimitive:
		return "primitive"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindReference:
		return "reference"
	case KindArray:
		return "array"
	case KindUnit:
		return "unit"
	case KindNever:
		return "never"
	case KindUnderscore:
		return "underscore"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}
