// Package ast defines the surface syntax tree produced by the parser. The
// semantic core (internal/hir onward) treats this as an external,
// already-parsed input: AST nodes are a pure owning tree (no cross-node
// back-references), so unlike HIR/MIR they are represented with ordinary
// Go pointers rather than arena ids.
package ast

import "corec/internal/source"

// File is a single parsed translation unit.
type File struct {
	Items []Item
}

// Item is any top-level declaration.
type Item interface{ itemNode() }

type FnItem struct {
	Span    source.Span
	Name    string
	NameSpn source.Span
	Params  []Param
	Ret     TypeExpr // nil means unit
	Body    *Block
}

type Param struct {
	Span    source.Span
	Name    string
	IsSelf  bool
	SelfRef bool // &self
	SelfMut bool // &mut self
	Type    TypeExpr
}

type StructItem struct {
	Span   source.Span
	Name   string
	Fields []FieldDecl
}

type FieldDecl struct {
	Span source.Span
	Name string
	Type TypeExpr
}

type EnumItem struct {
	Span     source.Span
	Name     string
	Variants []string
}

type TraitItem struct {
	Span    source.Span
	Name    string
	Methods []FnItem // signatures only; Body may be nil
	Funcs   []FnItem
	Consts  []ConstItem
}

type ImplItem struct {
	Span     source.Span
	ForType  TypeExpr
	Trait    string // "" for an inherent impl
	Methods  []FnItem
	Funcs    []FnItem
	Consts   []ConstItem
}

type ConstItem struct {
	Span  source.Span
	Name  string
	Type  TypeExpr
	Value Expr
}

func (*FnItem) itemNode()     {}
func (*StructItem) itemNode() {}
func (*EnumItem) itemNode()   {}
func (*TraitItem) itemNode()  {}
func (*ImplItem) itemNode()   {}
func (*ConstItem) itemNode()  {}

// TypeExpr is an unresolved syntactic type reference.
type TypeExpr interface{ typeExprNode() }

type NamedType struct {
	Span source.Span
	Name string // primitive name ("i32", "bool", ...) or a struct/enum name
}

type ReferenceType struct {
	Span      source.Span
	Mutable   bool
	Referent  TypeExpr
}

type ArrayType struct {
	Span    source.Span
	Element TypeExpr
	Size    Expr // const expression
}

func (*NamedType) typeExprNode()     {}
func (*ReferenceType) typeExprNode() {}
func (*ArrayType) typeExprNode()     {}
