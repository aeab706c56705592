package hir

import (
	"corec/internal/ast"
	"corec/internal/source"
	"corec/internal/types"
)

// Item is any top-level or block-nested declaration.
type Item interface{ itemNode() }

// Function is a free function. It implements ReturnTarget so Return
// expressions inside its body can point back at it.
type Function struct {
	Name       string
	Params     []*Local
	ReturnType *TypeAnnotation
	Body       *Block

	// IsExternal marks a predefined function with no HIR body (spec.md
	// §4.7's `exit`): the checker type-checks calls to it via Params/
	// ReturnType like any other FuncUse, but CheckProgram never walks its
	// (nonexistent) Body, and the MIR lowerer emits it as an
	// ExternalFunction rather than a MirFunction.
	IsExternal bool
}

func (*Function) itemNode()         {}
func (*Function) returnTargetNode() {}

// Method is an impl-block function with a receiver. ForType is the TypeID
// of the impl's target type (the struct/enum/primitive the method is on).
type Method struct {
	Name       string
	ForType    types.TypeID
	SelfRef    bool
	SelfMut    bool
	SelfLocal  *Local
	Params     []*Local
	ReturnType *TypeAnnotation
	Body       *Block
}

func (*Method) itemNode()         {}
func (*Method) returnTargetNode() {}

// StructDef is a struct declaration. Its resolved field layout lives on the
// types.Interner keyed by Type; FieldsSyntax is the raw AST form the name
// resolver consumes to build it and then leaves stale.
type StructDef struct {
	Name         string
	Type         types.TypeID
	FieldsSyntax []ast.FieldDecl
}

func (*StructDef) itemNode() {}

// EnumDef is an enum declaration; its canonical variant list lives on the
// types.Interner once the name resolver calls DeclareEnum.
type EnumDef struct {
	Name     string
	Type     types.TypeID
	Variants []string
}

func (*EnumDef) itemNode() {}

// ConstDef is a top-level, trait or impl-associated constant. ResolvedValue
// is filled by the const evaluator (C10) once the initializer is folded.
type ConstDef struct {
	Name          string
	Type          *TypeAnnotation
	Value         Expr
	ResolvedValue *ConstVariant
}

func (*ConstDef) itemNode() {}

// TraitMethodSig is a trait method signature with no body.
type TraitMethodSig struct {
	Name       string
	SelfRef    bool
	SelfMut    bool
	Params     []*TypeAnnotation
	ReturnType *TypeAnnotation
}

// Trait declares a set of method signatures, associated functions and
// associated constants that an Impl may satisfy (C6).
type Trait struct {
	Name    string
	Methods []*TraitMethodSig
	Funcs   []*TraitMethodSig
	Consts  []*ConstDef
}

func (*Trait) itemNode() {}

// Impl attaches methods, associated functions and associated constants to
// ForType, optionally implementing Trait (nil for an inherent impl).
// ForTypeSyntax/TraitName are the raw AST form C2 leaves for the name
// resolver to consume; it fills ForType/Trait and clears them.
type Impl struct {
	Span          source.Span
	ForTypeSyntax ast.TypeExpr
	TraitName     string
	ForType       types.TypeID
	Trait         *Trait
	Methods       []*Method
	Funcs         []*Function
	Consts        []*ConstDef
}

func (*Impl) itemNode() {}
