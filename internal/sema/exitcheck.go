package sema

import (
	"corec/internal/diag"
	"corec/internal/hir"
)

// checkExitUses implements C8 (spec.md §4.7): `exit()` is only legal
// inside `main`, and only as the lexically final statement of its body —
// no trailing expression may follow it, and no other exit() call may
// appear anywhere in main (including inside nested blocks/ifs/loops).
func (ch *Checker) checkExitUses(body *hir.Block, isMain bool) {
	var calls []*hir.Call
	collectExitCalls(body, &calls)
	if len(calls) == 0 {
		return
	}
	if !isMain {
		for _, c := range calls {
			ch.errorf(c.Span(), diag.CodeExitCheck, "exit() cannot be used in non-main functions")
		}
		return
	}
	allowed := finalExitCall(body)
	for _, c := range calls {
		if c != allowed {
			ch.errorf(c.Span(), diag.CodeExitCheck, "exit() must be the final statement of main, with no other exit() call")
		}
	}
}

// finalExitCall returns the Call node if body's literal last statement is
// an exit() call with nothing (no other statement, no trailing
// expression) following it; nil otherwise.
func finalExitCall(body *hir.Block) *hir.Call {
	if body.Final != nil || len(body.Stmts) == 0 {
		return nil
	}
	es, ok := body.Stmts[len(body.Stmts)-1].(*hir.ExprStmt)
	if !ok {
		return nil
	}
	call, ok := es.Expr.(*hir.Call)
	if !ok || !isExitCall(call) {
		return nil
	}
	return call
}

func isExitCall(call *hir.Call) bool {
	fu, ok := call.Callee.(*hir.FuncUse)
	return ok && fu.Def.IsExternal && fu.Def.Name == "exit"
}

// collectExitCalls walks every expression reachable from body (statements,
// nested blocks, if/loop/while bodies, operands, …) appending every Call
// to the builtin exit function it finds, in encounter order.
func collectExitCalls(b *hir.Block, out *[]*hir.Call) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		switch n := s.(type) {
		case *hir.LetStmt:
			if n.Value != nil {
				walkExprForExit(n.Value, out)
			}
		case *hir.ExprStmt:
			walkExprForExit(n.Expr, out)
		case *hir.ItemStmt:
			if fn, ok := n.Item.(*hir.Function); ok {
				collectExitCalls(fn.Body, out)
			}
		}
	}
	if b.Final != nil {
		walkExprForExit(b.Final, out)
	}
}

func walkExprForExit(e hir.Expr, out *[]*hir.Call) {
	switch n := e.(type) {
	case *hir.Call:
		if isExitCall(n) {
			*out = append(*out, n)
		}
		for _, a := range n.Args {
			walkExprForExit(a, out)
		}
		walkExprForExit(n.Callee, out)
	case *hir.Unary:
		walkExprForExit(n.Operand, out)
	case *hir.Binary:
		walkExprForExit(n.Lhs, out)
		walkExprForExit(n.Rhs, out)
	case *hir.Assign:
		walkExprForExit(n.Lhs, out)
		walkExprForExit(n.Rhs, out)
	case *hir.Cast:
		walkExprForExit(n.Value, out)
	case *hir.Deref:
		walkExprForExit(n.Operand, out)
	case *hir.Field:
		walkExprForExit(n.Base, out)
	case *hir.Index:
		walkExprForExit(n.Base, out)
		walkExprForExit(n.Index, out)
	case *hir.MethodCall:
		walkExprForExit(n.Receiver, out)
		for _, a := range n.Args {
			walkExprForExit(a, out)
		}
	case *hir.StructLiteral:
		for i := range n.Fields {
			walkExprForExit(n.Fields[i].Value, out)
		}
	case *hir.ArrayLiteral:
		for _, el := range n.Elements {
			walkExprForExit(el, out)
		}
	case *hir.ArrayRepeat:
		walkExprForExit(n.Value, out)
		walkExprForExit(n.Size, out)
	case *hir.If:
		walkExprForExit(n.Cond, out)
		collectExitCalls(n.Then, out)
		if n.Else != nil {
			walkExprForExit(n.Else, out)
		}
	case *hir.Loop:
		collectExitCalls(n.Body, out)
	case *hir.While:
		walkExprForExit(n.Cond, out)
		collectExitCalls(n.Body, out)
	case *hir.Break:
		if n.Value != nil {
			walkExprForExit(n.Value, out)
		}
	case *hir.Return:
		if n.Value != nil {
			walkExprForExit(n.Value, out)
		}
	case *hir.BlockExpr:
		collectExitCalls(n.Block, out)
	}
}
