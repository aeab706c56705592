package sema

import (
	"corec/internal/diag"
	"corec/internal/hir"
	"corec/internal/types"
)

// loopCtx accumulates the break-value type observed so far for one active
// loop, so every `break expr` inside it is checked against the first.
type loopCtx struct {
	ty       types.TypeID
	hasBreak bool
}

// checkIf threads expect into both branches (ground-truthed on
// original_source's check(hir::If&, TypeExpectation), expr_check.cpp:1031-
// 1096): a branch holding a bare unsuffixed literal only resolves when the
// if/else itself has somewhere to pin its type down, exactly like a let
// initializer or array element.
func (ch *Checker) checkIf(n *hir.If, expect Expectation) (hir.Expr, *hir.ExprInfo) {
	b := ch.ctx.Types.Builtins()
	cond, condInfo := ch.Check(n.Cond, ExactType(b.Bool))
	n.Cond = cond
	if !ch.ctx.Types.IsBool(condInfo.Type) {
		ch.errorf(n.Span(), diag.CodeType, "if condition must be bool")
	}

	ch.checkBlock(n.Then, expect)
	thenInfo := n.Then.Info

	var resultTy types.TypeID
	var endpoints hir.EndpointSet
	if n.Else != nil {
		elseExpr, elseInfo := ch.Check(n.Else, expect)
		n.Else = elseExpr
		endpoints = hir.Merge(thenInfo.Endpoints, elseInfo.Endpoints)
		if !thenInfo.HasType || !elseInfo.HasType {
			allEndpoints := hir.Sequence(condInfo.Endpoints, endpoints)
			if expect.Kind != ExpectNone {
				ch.errorf(n.Span(), diag.CodeType, "cannot infer type for if expression branch")
				return ch.finish(n, b.Invalid, allEndpoints, nil)
			}
			// Nothing to pin the branches' bare literals down to, and no
			// error to report here — an outer caller (let, array element,
			// binary operand) may still supply one.
			return ch.finishUnresolved(n, allEndpoints)
		}
		if common, ok := ch.ctx.Types.FindCommonType(thenInfo.Type, elseInfo.Type); ok {
			resultTy = common
		} else if ch.ctx.Types.IsNever(thenInfo.Type) {
			resultTy = elseInfo.Type
		} else if ch.ctx.Types.IsNever(elseInfo.Type) {
			resultTy = thenInfo.Type
		} else if ch.ctx.Types.IsAssignable(thenInfo.Type, elseInfo.Type) {
			resultTy = elseInfo.Type
		} else if ch.ctx.Types.IsAssignable(elseInfo.Type, thenInfo.Type) {
			resultTy = thenInfo.Type
		} else {
			ch.errorf(n.Span(), diag.CodeType, "if and else branches have different types")
			resultTy = thenInfo.Type
		}
	} else {
		resultTy = b.Unit
		if expect.Kind == ExpectExactType && expect.Type != resultTy {
			ch.errorf(n.Span(), diag.CodeType, "if without else must produce ()")
		}
		endpoints = hir.Merge(thenInfo.Endpoints, hir.NormalOnly())
	}
	endpoints = hir.Sequence(condInfo.Endpoints, endpoints)
	return ch.finish(n, resultTy, endpoints, nil)
}

// linkLoopEndpoints is C7: it consumes the endpoints that target loop
// itself (a bare Normal, meaning the body fell through to loop again; a
// Continue, meaning the same; a Break, which becomes the loop's own Normal
// exit) and passes everything else — breaks/continues of an outer loop, or
// a Return — through unchanged.
func linkLoopEndpoints(body hir.EndpointSet, loop hir.LoopTarget) hir.EndpointSet {
	out := hir.NewEndpointSet()
	for _, e := range body.All() {
		switch {
		case e.Kind == hir.Normal:
		case e.Kind == hir.BreakEndpoint && e.Loop == loop:
			out.Add(hir.Endpoint{Kind: hir.Normal})
		case e.Kind == hir.ContinueEndpoint && e.Loop == loop:
		default:
			out.Add(e)
		}
	}
	return out
}

func (ch *Checker) checkLoop(n *hir.Loop) (hir.Expr, *hir.ExprInfo) {
	lc := &loopCtx{}
	if ch.loopCtxs == nil {
		ch.loopCtxs = make(map[hir.LoopTarget]*loopCtx)
	}
	ch.loopCtxs[n] = lc
	ch.checkBlock(n.Body, NoExpectation())
	delete(ch.loopCtxs, n)

	endpoints := linkLoopEndpoints(n.Body.Info.Endpoints, n)
	resultTy := ch.ctx.Types.Builtins().Never
	if lc.hasBreak {
		resultTy = lc.ty
		n.BreakType = hir.ResolvedAnnotation(lc.ty)
	}
	return ch.finish(n, resultTy, endpoints, nil)
}

func (ch *Checker) checkWhile(n *hir.While) (hir.Expr, *hir.ExprInfo) {
	b := ch.ctx.Types.Builtins()
	cond, condInfo := ch.Check(n.Cond, ExactType(b.Bool))
	n.Cond = cond
	if !ch.ctx.Types.IsBool(condInfo.Type) {
		ch.errorf(n.Span(), diag.CodeType, "while condition must be bool")
	}

	lc := &loopCtx{}
	if ch.loopCtxs == nil {
		ch.loopCtxs = make(map[hir.LoopTarget]*loopCtx)
	}
	ch.loopCtxs[n] = lc
	ch.checkBlock(n.Body, NoExpectation())
	delete(ch.loopCtxs, n)
	if lc.hasBreak && lc.ty != b.Unit {
		ch.errorf(n.Span(), diag.CodeType, "while loops cannot break with a value")
	}

	endpoints := linkLoopEndpoints(n.Body.Info.Endpoints, n)
	// Unlike `loop`, the condition may simply become false, an exit path
	// no break/continue endpoint in the body can represent.
	endpoints.Add(hir.Endpoint{Kind: hir.Normal})
	endpoints = hir.Sequence(condInfo.Endpoints, endpoints)
	return ch.finish(n, b.Unit, endpoints, nil)
}

func (ch *Checker) checkBreak(n *hir.Break) (hir.Expr, *hir.ExprInfo) {
	b := ch.ctx.Types.Builtins()
	lc := ch.loopCtxs[n.Target]
	ty := b.Unit
	valueEndpoints := hir.NormalOnly()
	if n.Value != nil {
		want := NoExpectation()
		if lc != nil && lc.hasBreak {
			want = ExactType(lc.ty)
		}
		v, info := ch.Check(n.Value, want)
		n.Value = v
		if !info.HasType {
			// The first break in a loop with nothing else to pin its value's
			// type down (original_source's check(hir::Break&, ...) throws
			// "Cannot infer type for break value" in exactly this case).
			ch.errorf(n.Span(), diag.CodeType, "cannot infer type for break value; add a literal suffix")
			info = &hir.ExprInfo{Type: b.Invalid, HasType: true, Endpoints: info.Endpoints}
		}
		ty = info.Type
		valueEndpoints = info.Endpoints
	}
	if lc != nil {
		if !lc.hasBreak {
			lc.ty = ty
			lc.hasBreak = true
		} else if ty != lc.ty && !ch.ctx.Types.IsAssignable(ty, lc.ty) {
			ch.errorf(n.Span(), diag.CodeType, "break value type does not match an earlier break in the same loop")
		}
	}
	exit := hir.NewEndpointSet(hir.Endpoint{Kind: hir.BreakEndpoint, Loop: n.Target, ValueType: ty})
	endpoints := hir.Sequence(valueEndpoints, exit)
	return ch.finish(n, b.Never, endpoints, nil)
}

func (ch *Checker) checkContinue(n *hir.Continue) (hir.Expr, *hir.ExprInfo) {
	exit := hir.NewEndpointSet(hir.Endpoint{Kind: hir.ContinueEndpoint, Loop: n.Target})
	return ch.finish(n, ch.ctx.Types.Builtins().Never, exit, nil)
}

func (ch *Checker) checkReturn(n *hir.Return) (hir.Expr, *hir.ExprInfo) {
	b := ch.ctx.Types.Builtins()
	ty := b.Unit
	valueEndpoints := hir.NormalOnly()
	if n.Value != nil {
		v, info := ch.Check(n.Value, ExactType(ch.returnTy))
		n.Value = v
		ty = info.Type
		valueEndpoints = info.Endpoints
		if !ch.ctx.Types.IsAssignable(ty, ch.returnTy) {
			ch.errorf(n.Span(), diag.CodeType, "return type does not match the function's declared return type")
		}
	} else if ch.returnTy != b.Unit {
		ch.errorf(n.Span(), diag.CodeType, "missing return value")
	}
	exit := hir.NewEndpointSet(hir.Endpoint{Kind: hir.ReturnEndpoint, Func: n.Target, ValueType: ty})
	endpoints := hir.Sequence(valueEndpoints, exit)
	return ch.finish(n, b.Never, endpoints, nil)
}
