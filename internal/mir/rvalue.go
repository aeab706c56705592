package mir

import (
	"corec/internal/ast"
	"corec/internal/types"
)

// RVKind distinguishes an RValue's shape (the right-hand side of a Define
// statement, spec.md §3.7).
type RVKind uint8

const (
	// RVUse is a plain pass-through of an already-lowered operand.
	RVUse RVKind = iota
	// RVBinary is a binary-operator application.
	RVBinary
	// RVUnary is a unary-operator application (negation, logical not).
	RVUnary
	// RVCast is a `value as T` conversion.
	RVCast
	// RVRef materialises the address of a place (spec.md §4.8.2:
	// "`&x` produces a RefRValue{place}").
	RVRef
)

// RValue is the value side of a Define statement (TempID ← RValue).
type RValue struct {
	Kind   RVKind
	Use    Operand  // RVUse
	Binary BinaryRV // RVBinary
	Unary  UnaryRV  // RVUnary
	Cast   CastRV   // RVCast
	Ref    RefRV    // RVRef
}

// BinaryRV applies Op to Lhs/Rhs, both already-lowered operands.
type BinaryRV struct {
	Op  ast.BinaryOp
	Lhs Operand
	Rhs Operand
}

// UnaryRV applies Op to Operand (UnaryNeg/UnaryNot only; UnaryRef/
// UnaryDeref lower to RVRef/a PointerPlace respectively, never to a
// UnaryRV).
type UnaryRV struct {
	Op      ast.UnaryOp
	Operand Operand
}

// CastRV converts Operand to To.
type CastRV struct {
	To      types.TypeID
	Operand Operand
}

// RefRV takes the address of Place; Mutable records whether it is a
// `&mut` (needed by nothing downstream of MIR itself, but kept for the
// emitter's diagnostics/debug output).
type RefRV struct {
	Place   Place
	Mutable bool
}

func UseRV(op Operand) RValue           { return RValue{Kind: RVUse, Use: op} }
func BinaryRValue(b BinaryRV) RValue    { return RValue{Kind: RVBinary, Binary: b} }
func UnaryRValue(u UnaryRV) RValue      { return RValue{Kind: RVUnary, Unary: u} }
func CastRValue(c CastRV) RValue        { return RValue{Kind: RVCast, Cast: c} }
func RefRValue(r RefRV) RValue          { return RValue{Kind: RVRef, Ref: r} }
