package sema

import (
	"corec/internal/diag"
	"corec/internal/hir"
)

func bindingLocal(p hir.Pattern) *hir.Local {
	switch n := p.(type) {
	case *hir.BindingDef:
		return n.Local
	case *hir.ReferencePattern:
		return bindingLocal(n.Sub)
	default:
		return nil
	}
}

// checkBlock checks every statement in sequence, threading the endpoint
// algebra (spec.md §4.4.2) through via Sequence, and checks the trailing
// expression (if any) against expect.
func (ch *Checker) checkBlock(b *hir.Block, expect Expectation) {
	endpoints := hir.NormalOnly()
	for _, s := range b.Stmts {
		switch n := s.(type) {
		case *hir.LetStmt:
			if n.Value != nil {
				want := NoExpectation()
				local := bindingLocal(n.Pattern)
				annotated := local != nil && local.Type != nil && local.Type.IsResolved()
				if annotated {
					want = ExactType(local.Type.Resolved)
				}
				v, info := ch.Check(n.Value, want)
				n.Value = v
				endpoints = hir.Sequence(endpoints, info.Endpoints)
				if local != nil && local.Type == nil {
					if !info.HasType {
						// No annotation and the initializer is itself an
						// unresolved bare literal with nothing to pin its
						// type down (spec.md §8; original_source's
						// Block-checking throws "Cannot infer type for let
						// initializer" in exactly this case).
						ch.errorf(n.Span, diag.CodeType, "cannot infer type for let binding; add a type annotation or a literal suffix")
						info = &hir.ExprInfo{Type: ch.ctx.Types.Builtins().Invalid, HasType: true, Endpoints: info.Endpoints}
					}
					local.Type = hir.ResolvedAnnotation(info.Type)
				}
			}
		case *hir.ExprStmt:
			v, info := ch.Check(n.Expr, NoExpectation())
			n.Expr = v
			endpoints = hir.Sequence(endpoints, info.Endpoints)
		case *hir.ItemStmt:
			ch.checkNestedItem(n.Item)
		}
	}

	var finalTy = ch.ctx.Types.Builtins().Unit
	var finalInfo = &hir.ExprInfo{Type: finalTy, HasType: true, Endpoints: hir.NormalOnly()}
	if b.Final != nil {
		v, info := ch.Check(b.Final, expect)
		b.Final = v
		finalInfo = info
	} else if !endpoints.HasNormal() {
		// The statement sequence already diverged (e.g. its last statement
		// was `exit(...)` or `return ...;`); with no trailing expression to
		// supply a value, the block itself never reaches a normal exit, so
		// invariant 3 (diverges => Never) applies to the block too.
		finalInfo = &hir.ExprInfo{Type: ch.ctx.Types.Builtins().Never, HasType: true, Endpoints: hir.NewEndpointSet()}
	} else if expect.Kind == ExpectExactType && expect.Type != finalTy && !ch.ctx.Types.IsNever(finalTy) {
		if !ch.ctx.Types.IsAssignable(finalTy, expect.Type) {
			ch.errorf(b.Span, diag.CodeType, "expected block to produce a value, found ()")
		}
	}
	endpoints = hir.Sequence(endpoints, finalInfo.Endpoints)
	b.Info = &hir.ExprInfo{
		Type:       finalInfo.Type,
		HasType:    finalInfo.HasType,
		IsPlace:    finalInfo.IsPlace,
		IsMut:      finalInfo.IsMut,
		Endpoints:  endpoints,
		ConstValue: finalInfo.ConstValue,
	}
}

func (ch *Checker) checkNestedItem(it hir.Item) {
	switch n := it.(type) {
	case *hir.Function:
		ch.checkFunction(n)
	case *hir.ConstDef:
		ch.checkConst(n)
	case *hir.StructDef, *hir.EnumDef:
		// declarations only; nothing to check beyond what the resolver did.
	}
}
