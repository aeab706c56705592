package sema

import (
	"corec/internal/diag"
	"corec/internal/hir"
	"corec/internal/types"
)

// Check is C5's entry point: it type-checks e against expect, returning
// the (possibly rewritten — auto-deref, temp-ref desugaring) expression
// and the ExprInfo now cached on it.
func (ch *Checker) Check(e hir.Expr, expect Expectation) (hir.Expr, *hir.ExprInfo) {
	switch n := e.(type) {
	case *hir.IntLiteral:
		return ch.checkIntLiteral(n, expect)
	case *hir.BoolLiteral:
		return ch.finish(n, ch.ctx.Types.Builtins().Bool, hir.NormalOnly(), &hir.ConstVariant{Kind: hir.ConstBool, Bool: n.Value})
	case *hir.CharLiteral:
		return ch.finish(n, ch.ctx.Types.Builtins().Char, hir.NormalOnly(), &hir.ConstVariant{Kind: hir.ConstChar, Char: n.Value})
	case *hir.StringLiteral:
		return ch.finish(n, ch.ctx.Types.Builtins().String, hir.NormalOnly(), &hir.ConstVariant{Kind: hir.ConstString, String: n.Value})
	case *hir.Variable:
		ty := ch.ctx.TypeQuery(n.Local.Type)
		info := &hir.ExprInfo{Type: ty, HasType: true, IsPlace: true, IsMut: n.Local.IsMutable, Endpoints: hir.NormalOnly()}
		n.SetInfo(info)
		return n, info
	case *hir.ConstUse:
		ty := ch.ctx.TypeQuery(n.Def.Type)
		return ch.finish(n, ty, hir.NormalOnly(), n.Def.ResolvedValue)
	case *hir.FuncUse:
		ch.errorf(n.Span(), diag.CodeType, "function %q used as a value", n.Def.Name)
		return ch.finish(n, ch.ctx.Types.Builtins().Invalid, hir.NormalOnly(), nil)
	case *hir.EnumVariant:
		return ch.finish(n, n.Def.Type, hir.NormalOnly(), nil)
	case *hir.StructConst:
		ty := ch.ctx.TypeQuery(n.Const.Type)
		return ch.finish(n, ty, hir.NormalOnly(), n.Const.ResolvedValue)
	case *hir.StructStatic:
		ch.errorf(n.Span(), diag.CodeType, "associated function %q used as a value", n.Fn.Name)
		return ch.finish(n, ch.ctx.Types.Builtins().Invalid, hir.NormalOnly(), nil)
	case *hir.Unary:
		return ch.checkUnary(n, expect)
	case *hir.Binary:
		return ch.checkBinary(n, expect)
	case *hir.Assign:
		return ch.checkAssign(n)
	case *hir.Cast:
		return ch.checkCast(n)
	case *hir.Deref:
		return ch.checkDeref(n)
	case *hir.Field:
		return ch.checkField(n)
	case *hir.Index:
		return ch.checkIndex(n)
	case *hir.Call:
		return ch.checkCall(n, expect)
	case *hir.MethodCall:
		return ch.checkMethodCall(n)
	case *hir.StructLiteral:
		return ch.checkStructLiteral(n)
	case *hir.ArrayLiteral:
		return ch.checkArrayLiteral(n, expect)
	case *hir.ArrayRepeat:
		return ch.checkArrayRepeat(n, expect)
	case *hir.If:
		return ch.checkIf(n, expect)
	case *hir.Loop:
		return ch.checkLoop(n)
	case *hir.While:
		return ch.checkWhile(n)
	case *hir.Break:
		return ch.checkBreak(n)
	case *hir.Continue:
		return ch.checkContinue(n)
	case *hir.Return:
		return ch.checkReturn(n)
	case *hir.BlockExpr:
		ch.checkBlock(n.Block, expect)
		info := n.Block.Info
		n.SetInfo(info)
		return n, info
	}
	info := &hir.ExprInfo{Type: ch.ctx.Types.Builtins().Invalid, Endpoints: hir.NormalOnly()}
	return e, info
}

// finish stamps info onto e and returns both — the common path for nodes
// whose ExprInfo has no place/mutability to track.
func (ch *Checker) finish(e hir.Expr, ty types.TypeID, endpoints hir.EndpointSet, cv *hir.ConstVariant) (hir.Expr, *hir.ExprInfo) {
	info := &hir.ExprInfo{Type: ty, HasType: true, Endpoints: endpoints, ConstValue: cv}
	e.SetInfo(info)
	return e, info
}

// finishUnresolved is finish's HasType-false counterpart: it marks e as a
// value whose type genuinely could not be pinned down (an unsuffixed
// literal with nothing in scope to resolve it against), as opposed to a
// type error that's already been reported and just needs an Invalid
// placeholder. Callers further up the expression tree (let, array
// literal, binary op) get another chance to resolve it against whatever
// context they can supply (spec.md §8; ground-truthed on
// original_source's per-node `unresolved()`/`has_type = false` returns).
func (ch *Checker) finishUnresolved(e hir.Expr, endpoints hir.EndpointSet) (hir.Expr, *hir.ExprInfo) {
	info := &hir.ExprInfo{Type: ch.ctx.Types.Builtins().Invalid, HasType: false, Endpoints: endpoints}
	e.SetInfo(info)
	return e, info
}
