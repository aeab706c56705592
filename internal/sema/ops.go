package sema

import (
	"corec/internal/ast"
	"corec/internal/diag"
	"corec/internal/hir"
	"corec/internal/types"
)

func (ch *Checker) checkUnary(n *hir.Unary, expect Expectation) (hir.Expr, *hir.ExprInfo) {
	b := ch.ctx.Types.Builtins()
	switch n.Op {
	case ast.UnaryNeg:
		operand, info := ch.Check(n.Operand, expect)
		n.Operand = operand
		if !info.HasType {
			// The operand is itself an unresolved bare literal with nothing
			// here to pin its type down; propagate unresolved rather than
			// reporting a spurious "not numeric" error (spec.md §8).
			return ch.finishUnresolved(n, info.Endpoints)
		}
		if !ch.ctx.Types.IsNumeric(info.Type) {
			ch.errorf(n.Span(), diag.CodeType, "unary - requires a numeric operand")
		}
		var cv *hir.ConstVariant
		if info.ConstValue != nil && info.ConstValue.Kind == hir.ConstInt {
			cv = &hir.ConstVariant{Kind: hir.ConstInt, Int: -info.ConstValue.Int}
		}
		return ch.finish(n, info.Type, info.Endpoints, cv)
	case ast.UnaryNot:
		operand, info := ch.Check(n.Operand, ExactType(b.Bool))
		n.Operand = operand
		if !info.HasType {
			return ch.finishUnresolved(n, info.Endpoints)
		}
		if !ch.ctx.Types.IsBool(info.Type) {
			ch.errorf(n.Span(), diag.CodeType, "! requires a bool operand")
		}
		var cv *hir.ConstVariant
		if info.ConstValue != nil && info.ConstValue.Kind == hir.ConstBool {
			cv = &hir.ConstVariant{Kind: hir.ConstBool, Bool: !info.ConstValue.Bool}
		}
		return ch.finish(n, b.Bool, info.Endpoints, cv)
	case ast.UnaryRef, ast.UnaryRefMut:
		mutable := n.Op == ast.UnaryRefMut
		operand, info := ch.Check(n.Operand, NoExpectation())
		n.Operand = operand
		if !info.IsPlace {
			// Temp-ref desugaring (spec.md §4.4.1): `&expr` on a non-place
			// binds the value to a hidden local first, so the reference
			// always has a real slot to point at.
			return ch.desugarTempRef(n, operand, info, mutable)
		}
		if mutable && !info.IsMut {
			ch.errorf(n.Span(), diag.CodeMutability, "cannot take &mut of an immutable place")
		}
		refTy := ch.ctx.Types.Reference(info.Type, mutable)
		return ch.finish(n, refTy, info.Endpoints, nil)
	case ast.UnaryDeref:
		operand, info := ch.Check(n.Operand, NoExpectation())
		n.Operand = operand
		t, ok := ch.ctx.Types.Lookup(info.Type)
		if !ok || t.Kind != types.KindReference {
			ch.errorf(n.Span(), diag.CodeType, "* requires a reference operand")
			return ch.finish(n, b.Invalid, info.Endpoints, nil)
		}
		res := &hir.ExprInfo{Type: t.Referent, HasType: true, IsPlace: true, IsMut: t.IsMutable, Endpoints: info.Endpoints}
		n.SetInfo(res)
		return n, res
	}
	return ch.finish(n, b.Invalid, hir.NormalOnly(), nil)
}

// desugarTempRef rewrites `&expr` (expr not a place) into
// `{ let __tmp = expr; &__tmp }`, per spec.md §4.4.1.
func (ch *Checker) desugarTempRef(n *hir.Unary, operand hir.Expr, operandInfo *hir.ExprInfo, mutable bool) (hir.Expr, *hir.ExprInfo) {
	tmp := &hir.Local{Name: "$temp", IsMutable: mutable, Type: hir.ResolvedAnnotation(operandInfo.Type)}
	let := &hir.LetStmt{Span: n.Span(), Pattern: &hir.BindingDef{Local: tmp}, Value: operand}
	refExpr := &hir.Unary{Op: n.Op, Operand: hir.NewVariable(n.Span(), tmp)}
	block := &hir.Block{Span: n.Span(), Stmts: []hir.Stmt{let}, Final: refExpr}
	be := &hir.BlockExpr{Block: block}
	be.SetInfo(nil) // force a real check below
	return ch.Check(be, NoExpectation())
}

func (ch *Checker) checkBinary(n *hir.Binary, expect Expectation) (hir.Expr, *hir.ExprInfo) {
	return ch.checkBinaryOp(n, expect)
}

func (ch *Checker) checkCast(n *hir.Cast) (hir.Expr, *hir.ExprInfo) {
	target := ch.ctx.TypeQuery(n.Target)
	value, info := ch.Check(n.Value, NoExpectation())
	n.Value = value
	if !ch.ctx.Types.IsCastable(info.Type, target) {
		ch.errorf(n.Span(), diag.CodeType, "invalid cast")
	}
	return ch.finish(n, target, info.Endpoints, nil)
}

func (ch *Checker) checkDeref(n *hir.Deref) (hir.Expr, *hir.ExprInfo) {
	operand, info := ch.Check(n.Operand, NoExpectation())
	n.Operand = operand
	t, ok := ch.ctx.Types.Lookup(info.Type)
	if !ok || t.Kind != types.KindReference {
		ch.errorf(n.Span(), diag.CodeType, "cannot dereference a non-reference")
		return ch.finish(n, ch.ctx.Types.Builtins().Invalid, info.Endpoints, nil)
	}
	res := &hir.ExprInfo{Type: t.Referent, HasType: true, IsPlace: true, IsMut: t.IsMutable, Endpoints: info.Endpoints}
	n.SetInfo(res)
	return n, res
}

func (ch *Checker) checkAssign(n *hir.Assign) (hir.Expr, *hir.ExprInfo) {
	lhs, lhsInfo := ch.Check(n.Lhs, NoExpectation())
	n.Lhs = lhs
	if !lhsInfo.IsPlace {
		ch.errorf(n.Span(), diag.CodeMutability, "left-hand side of assignment is not a place")
	} else if !lhsInfo.IsMut {
		ch.errorf(n.Span(), diag.CodeMutability, "cannot assign to an immutable binding")
	}
	rhs, rhsInfo := ch.Check(n.Rhs, ExactType(lhsInfo.Type))
	n.Rhs = rhs
	if !ch.ctx.Types.IsAssignable(rhsInfo.Type, lhsInfo.Type) {
		ch.errorf(n.Span(), diag.CodeType, "type mismatch in assignment")
	}
	endpoints := hir.Sequence(lhsInfo.Endpoints, rhsInfo.Endpoints)
	return ch.finish(n, ch.ctx.Types.Builtins().Unit, endpoints, nil)
}
