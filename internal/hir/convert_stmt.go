package hir

import "corec/internal/ast"

func (c *Converter) convertBlock(b *ast.Block) *Block {
	out := &Block{Span: b.Span}
	for _, s := range b.Stmts {
		out.Stmts = append(out.Stmts, c.convertStmt(s))
	}
	if b.Final != nil {
		out.Final = c.convertExpr(b.Final)
	}
	return out
}

func (c *Converter) convertStmt(s ast.Stmt) Stmt {
	switch n := s.(type) {
	case *ast.LetStmt:
		var value Expr
		if n.Value != nil {
			value = c.convertExpr(n.Value)
		}
		return &LetStmt{Span: n.Span, Pattern: c.convertPattern(n.Pattern, n.Type), Value: value}
	case *ast.ExprStmt:
		return &ExprStmt{Span: n.Span, Expr: c.convertExpr(n.Expr)}
	case *ast.ItemStmt:
		var item Item
		switch it := n.Item.(type) {
		case *ast.FnItem:
			item = c.convertFn(it)
		case *ast.StructItem:
			item = c.convertStruct(it)
		case *ast.EnumItem:
			item = c.convertEnum(it)
		case *ast.ConstItem:
			item = c.convertConst(it)
		case *ast.TraitItem:
			item = c.convertTrait(it)
		case *ast.ImplItem:
			item = c.convertImpl(it)
		}
		return &ItemStmt{Span: n.Span, Item: item}
	}
	return nil
}

// convertPattern lowers an ast.Pattern to hir.Pattern, threading declType
// (the `let`'s optional type annotation, or nil for a parameter pattern
// whose type comes from elsewhere) down to the Local it ultimately
// allocates.
func (c *Converter) convertPattern(p ast.Pattern, declType ast.TypeExpr) Pattern {
	switch n := p.(type) {
	case *ast.BindingPattern:
		local := &Local{Name: n.Name, IsMutable: n.IsMut}
		if declType != nil {
			local.Type = NewAnnotation(declType)
		}
		return &BindingDef{Local: local}
	case *ast.ReferencePattern:
		var inner ast.TypeExpr
		if rt, ok := declType.(*ast.ReferenceType); ok {
			inner = rt.Referent
		}
		return &ReferencePattern{Mutable: n.Mutable, Sub: c.convertPattern(n.Sub, inner)}
	case *ast.WildcardPattern:
		return &WildcardPattern{}
	}
	return &WildcardPattern{}
}
