package hir

import (
	"corec/internal/ast"
	"corec/internal/source"
)

// Expr is any HIR expression node. Every concrete type is always boxed as
// a pointer, so an Expr interface value is comparable and usable as a map
// key — this is what lets the semantic context's query caches (spec.md
// §4.3) be keyed "by Expr address".
type Expr interface {
	Span() source.Span
	Info() *ExprInfo
	SetInfo(*ExprInfo)
}

// ExprBase is embedded by every concrete expression node.
type ExprBase struct {
	span source.Span
	info *ExprInfo
}

func (b *ExprBase) Span() source.Span    { return b.span }
func (b *ExprBase) Info() *ExprInfo      { return b.info }
func (b *ExprBase) SetInfo(i *ExprInfo)  { b.info = i }

func base(span source.Span) ExprBase { return ExprBase{span: span} }

// --- pre-resolution nodes (emitted by C2, replaced in place by C3) ---

// UnresolvedIdent is a bare single-segment identifier awaiting name
// resolution. No UnresolvedIdent may survive C3.
type UnresolvedIdent struct {
	ExprBase
	Name string
}

// TypeStatic is a two-segment `Type::name` path awaiting resolution into
// EnumVariant, StructConst or StructStatic. No TypeStatic may survive C3.
type TypeStatic struct {
	ExprBase
	TypeName string
	Member   string
}

// --- literals ---

type IntLiteral struct {
	ExprBase
	Value      uint64
	IsNegative bool
	Suffix     ast.IntSuffix
}

type BoolLiteral struct {
	ExprBase
	Value bool
}

type CharLiteral struct {
	ExprBase
	Value byte
}

type StringLiteral struct {
	ExprBase
	Value string
}

// --- resolved references ---

type Variable struct {
	ExprBase
	Local *Local
}

type ConstUse struct {
	ExprBase
	Def *ConstDef
}

// FuncUse is only legal as the immediate Callee of a Call; it names a
// non-first-class function.
type FuncUse struct {
	ExprBase
	Def *Function
}

type EnumVariant struct {
	ExprBase
	Def   *EnumDef
	Index int
	Name  string
}

type StructConst struct {
	ExprBase
	Def   *StructDef
	Const *ConstDef
}

type StructStatic struct {
	ExprBase
	Def *StructDef
	Fn  *Function
}

// --- operators ---

type Unary struct {
	ExprBase
	Op      ast.UnaryOp
	Operand Expr
}

type Binary struct {
	ExprBase
	Op  ast.BinaryOp
	Lhs Expr
	Rhs Expr
}

// Assign is always a plain `lhs = rhs`; compound assignment operators are
// desugared away by C2 (spec.md §4.1).
type Assign struct {
	ExprBase
	Lhs Expr
	Rhs Expr
}

type Cast struct {
	ExprBase
	Value  Expr
	Target *TypeAnnotation
}

// Deref is synthesised by the checker for auto-deref before field access
// and is also the desugared form of `*p`.
type Deref struct {
	ExprBase
	Operand Expr
}

// Field access. Index is -1 until the checker resolves Base's struct type
// and rewrites it to the field's position (spec.md §4.4 "Field access").
type Field struct {
	ExprBase
	Base  Expr
	Name  string
	Index int
}

type Index struct {
	ExprBase
	Base  Expr
	Index Expr
}

type Call struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

type MethodCall struct {
	ExprBase
	Receiver Expr
	Name     string
	Method   *Method // resolved by the checker via the impl table; nil for a Builtin call
	Builtin  string  // e.g. "len", "to_string" for predefined primitive/array methods
	Args     []Expr
}

type StructLiteralField struct {
	Name  string
	Index int // position in StructDef.Fields, filled once resolved; -1 until then
	Value Expr
}

// StructLiteral is `TypeName { field: value, ... }`. TypeName is the raw
// name C2 parses off the literal; the resolver fills Def and clears
// TypeName once it has looked the struct up.
type StructLiteral struct {
	ExprBase
	TypeName string
	Def      *StructDef
	Fields   []StructLiteralField
}

type ArrayLiteral struct {
	ExprBase
	Elements []Expr
}

type ArrayRepeat struct {
	ExprBase
	Value Expr
	Size  Expr
}

type If struct {
	ExprBase
	Cond Expr
	Then *Block
	Else Expr // *BlockExpr or *If, nil if absent
}

type Loop struct {
	ExprBase
	Body      *Block
	BreakType *TypeAnnotation // filled as break values are observed
}

func (*Loop) loopTargetNode() {}

type While struct {
	ExprBase
	Cond Expr
	Body *Block
}

func (*While) loopTargetNode() {}

type Break struct {
	ExprBase
	Value  Expr // nil if no value
	Target LoopTarget
}

type Continue struct {
	ExprBase
	Target LoopTarget
}

type Return struct {
	ExprBase
	Value  Expr // nil if no value
	Target ReturnTarget
}

type BlockExpr struct {
	ExprBase
	Block *Block
}

// NewIntLiteral is the common constructor literal desugaring and the
// converter's negative-literal folding both call.
func NewIntLiteral(span source.Span, value uint64, negative bool, suffix ast.IntSuffix) *IntLiteral {
	return &IntLiteral{ExprBase: base(span), Value: value, IsNegative: negative, Suffix: suffix}
}

// The constructors below are used by the name resolver (package symbols)
// to replace UnresolvedIdent/TypeStatic nodes in place once their target
// is known; they live here because ExprBase's fields are unexported.

func NewVariable(span source.Span, local *Local) *Variable {
	return &Variable{ExprBase: base(span), Local: local}
}

func NewConstUse(span source.Span, def *ConstDef) *ConstUse {
	return &ConstUse{ExprBase: base(span), Def: def}
}

func NewFuncUse(span source.Span, def *Function) *FuncUse {
	return &FuncUse{ExprBase: base(span), Def: def}
}

func NewEnumVariant(span source.Span, def *EnumDef, index int, name string) *EnumVariant {
	return &EnumVariant{ExprBase: base(span), Def: def, Index: index, Name: name}
}

func NewStructConst(span source.Span, def *StructDef, cdef *ConstDef) *StructConst {
	return &StructConst{ExprBase: base(span), Def: def, Const: cdef}
}

func NewStructStatic(span source.Span, def *StructDef, fn *Function) *StructStatic {
	return &StructStatic{ExprBase: base(span), Def: def, Fn: fn}
}
