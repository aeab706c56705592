// Converter implements C2: a purely structural translation from
// internal/ast to internal/hir. It performs no name resolution — every
// identifier becomes an UnresolvedIdent and every two-segment path becomes
// a TypeStatic, both replaced in place by the name resolver (C3). What it
// does do is desugaring: compound assignment is rewritten to a plain
// assignment of a binary expression, unary minus folds directly into an
// integer literal's sign, and parenthesised groups simply vanish (convertExpr
// replaces the parser's GroupExpr with its converted inner expression).
package hir

import (
	"corec/internal/ast"
	"corec/internal/diag"
)

type Converter struct {
	prog *Program
	diag *diag.Bag
}

// NewConverter builds a converter that reports structural errors (more than
// two path segments, etc.) into bag.
func NewConverter(bag *diag.Bag) *Converter {
	return &Converter{prog: NewProgram(), diag: bag}
}

// ConvertFile lowers a whole parsed translation unit to HIR.
func (c *Converter) ConvertFile(file *ast.File) *Program {
	for _, it := range file.Items {
		c.convertTopItem(it)
	}
	return c.prog
}

func (c *Converter) convertTopItem(it ast.Item) {
	switch n := it.(type) {
	case *ast.FnItem:
		c.prog.Functions = append(c.prog.Functions, c.convertFn(n))
	case *ast.StructItem:
		c.prog.Structs = append(c.prog.Structs, c.convertStruct(n))
	case *ast.EnumItem:
		c.prog.Enums = append(c.prog.Enums, c.convertEnum(n))
	case *ast.ConstItem:
		c.prog.Consts = append(c.prog.Consts, c.convertConst(n))
	case *ast.TraitItem:
		c.prog.Traits = append(c.prog.Traits, c.convertTrait(n))
	case *ast.ImplItem:
		c.prog.Impls = append(c.prog.Impls, c.convertImpl(n))
	}
}

func (c *Converter) convertStruct(n *ast.StructItem) *StructDef {
	// Field TypeIDs are registered by the name resolver once every struct
	// and enum name in the unit is known; C2 only records the declaration.
	return &StructDef{Name: n.Name, FieldsSyntax: n.Fields}
}

func (c *Converter) convertEnum(n *ast.EnumItem) *EnumDef {
	return &EnumDef{Name: n.Name, Variants: n.Variants}
}

func (c *Converter) convertConst(n *ast.ConstItem) *ConstDef {
	return &ConstDef{
		Name:  n.Name,
		Type:  NewAnnotation(n.Type),
		Value: c.convertExpr(n.Value),
	}
}

func (c *Converter) convertTrait(n *ast.TraitItem) *Trait {
	t := &Trait{Name: n.Name}
	for _, m := range n.Methods {
		t.Methods = append(t.Methods, c.convertSig(&m))
	}
	for _, f := range n.Funcs {
		t.Funcs = append(t.Funcs, c.convertSig(&f))
	}
	for _, cn := range n.Consts {
		t.Consts = append(t.Consts, c.convertConst(&cn))
	}
	return t
}

func (c *Converter) convertSig(n *ast.FnItem) *TraitMethodSig {
	sig := &TraitMethodSig{Name: n.Name, ReturnType: NewAnnotation(n.Ret)}
	for _, p := range n.Params {
		if p.IsSelf {
			sig.SelfRef = p.SelfRef
			sig.SelfMut = p.SelfMut
			continue
		}
		sig.Params = append(sig.Params, NewAnnotation(p.Type))
	}
	return sig
}

func (c *Converter) convertImpl(n *ast.ImplItem) *Impl {
	impl := &Impl{Span: n.Span}
	for _, m := range n.Methods {
		impl.Methods = append(impl.Methods, c.convertMethod(&m))
	}
	for _, f := range n.Funcs {
		impl.Funcs = append(impl.Funcs, c.convertFn(&f))
	}
	for _, cn := range n.Consts {
		impl.Consts = append(impl.Consts, c.convertConst(&cn))
	}
	impl.ForTypeSyntax = n.ForType
	impl.TraitName = n.Trait
	return impl
}
