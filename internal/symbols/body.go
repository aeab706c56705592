package symbols

import (
	"corec/internal/hir"
	"corec/internal/types"
)

func (r *Resolver) resolveConsts(consts []*hir.ConstDef) {
	for _, c := range consts {
		r.resolveAnnotation(c.Type)
		prevScope := r.scope
		r.scope = newScope(nil, true)
		c.Value = r.resolveExpr(c.Value)
		r.scope = prevScope
	}
}

func (r *Resolver) resolveFunction(fn *hir.Function) {
	r.resolveAnnotation(fn.ReturnType)
	prevScope := r.scope
	r.scope = newScope(nil, true)
	for _, p := range fn.Params {
		r.resolveAnnotation(p.Type)
		r.scope.declare(p)
	}
	prevReturn := r.returnTo
	r.returnTo = fn
	r.resolveBlock(fn.Body)
	r.returnTo = prevReturn
	r.scope = prevScope
}

func (r *Resolver) resolveMethod(m *hir.Method) {
	r.resolveAnnotation(m.ReturnType)
	r.scope = newScope(nil, true)
	if m.SelfLocal != nil {
		m.SelfLocal.Type = hir.ResolvedAnnotation(r.prog.Types.Reference(r.selfType, m.SelfMut))
		r.scope.declare(m.SelfLocal)
	}
	for _, p := range m.Params {
		r.resolveAnnotation(p.Type)
		r.scope.declare(p)
	}
	prevReturn := r.returnTo
	r.returnTo = m
	r.resolveBlock(m.Body)
	r.returnTo = prevReturn
	r.scope = nil
}

func (r *Resolver) resolveBlock(b *hir.Block) {
	r.scope = newScope(r.scope, false)
	r.hoistNestedItems(b.Stmts)
	for _, s := range b.Stmts {
		r.resolveStmt(s)
	}
	if b.Final != nil {
		b.Final = r.resolveExpr(b.Final)
	}
	r.scope = r.scope.parent
}

// hoistNestedItems registers every item declared directly in stmts (fn,
// const, struct, enum) before any statement in the block is resolved,
// mirroring hoistTypes/hoistValues at file scope: spec.md §4.2's "two-pass
// per block" rule makes items order-independent within their block, so
// `fn a() { b(); } fn b() {}` must resolve `b` regardless of which is
// declared first. Struct field types are filled in after every struct in
// the block has a declared TypeID, so fields may forward-reference a
// sibling struct declared later in the same block.
func (r *Resolver) hoistNestedItems(stmts []hir.Stmt) {
	var structs []*hir.StructDef
	for _, s := range stmts {
		it, ok := s.(*hir.ItemStmt)
		if !ok {
			continue
		}
		switch n := it.Item.(type) {
		case *hir.Function:
			r.table.Funcs[n.Name] = n
		case *hir.ConstDef:
			r.table.Consts[n.Name] = n
		case *hir.StructDef:
			n.Type = r.prog.Types.DeclareStruct(n.Name)
			r.table.Types[n.Name] = n.Type
			r.table.StructDefs[n.Type] = n
			structs = append(structs, n)
		case *hir.EnumDef:
			n.Type = r.prog.Types.DeclareEnum(n.Name, n.Variants)
			r.table.Types[n.Name] = n.Type
			r.table.EnumDefs[n.Type] = n
		}
	}
	for _, s := range structs {
		fields := make([]types.FieldInfo, 0, len(s.FieldsSyntax))
		for _, f := range s.FieldsSyntax {
			fields = append(fields, types.FieldInfo{Name: f.Name, Type: r.resolveNamedTypeExpr(f.Type)})
		}
		r.prog.Types.SetStructFields(s.Type, fields)
	}
}

func (r *Resolver) resolveStmt(s hir.Stmt) {
	switch n := s.(type) {
	case *hir.LetStmt:
		if n.Value != nil {
			n.Value = r.resolveExpr(n.Value)
		}
		r.declarePattern(n.Pattern)
	case *hir.ExprStmt:
		n.Expr = r.resolveExpr(n.Expr)
	case *hir.ItemStmt:
		r.resolveNestedItem(n.Item)
	}
}

// declarePattern introduces every binding the pattern contains into the
// current scope. Patterns are only ever introduced via `let`, never
// reassigned, so declaring after resolving the initializer is correct:
// `let x = x + 1` resolves the right-hand `x` against the outer scope.
func (r *Resolver) declarePattern(p hir.Pattern) {
	switch n := p.(type) {
	case *hir.BindingDef:
		r.resolveAnnotation(n.Local.Type)
		r.scope.declare(n.Local)
	case *hir.ReferencePattern:
		r.declarePattern(n.Sub)
	case *hir.WildcardPattern:
	}
}

// resolveNestedItem resolves a block-scoped item's body. Its name and type
// (and, for structs, field layout) are already registered by
// hoistNestedItems before the block's statements are walked.
func (r *Resolver) resolveNestedItem(it hir.Item) {
	switch n := it.(type) {
	case *hir.Function:
		r.resolveFunction(n)
	case *hir.ConstDef:
		r.resolveConsts([]*hir.ConstDef{n})
	case *hir.StructDef, *hir.EnumDef:
		// Nothing left to do: hoistNestedItems already declared the type
		// and, for structs, resolved field types.
	}
}
