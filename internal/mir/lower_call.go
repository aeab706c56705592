package mir

import (
	"corec/internal/hir"
	"corec/internal/types"
)

// calleeRef resolves a Call's Callee expression (always a FuncUse or a
// StructStatic per hir/expr.go's doc comment on FuncUse) to the
// FunctionRef declared for it in the earlier declare pass.
func (fl *funcLowerer) calleeRef(callee hir.Expr) (FunctionRef, bool) {
	switch n := callee.(type) {
	case *hir.FuncUse:
		ref, ok := fl.lm.funcRefs[n.Def]
		return ref, ok
	case *hir.StructStatic:
		ref, ok := fl.lm.funcRefs[n.Fn]
		return ref, ok
	}
	return FunctionRef{}, false
}

func (fl *funcLowerer) lowerCall(n *hir.Call) Operand {
	ref, ok := fl.calleeRef(n.Callee)
	if !ok {
		for _, a := range n.Args {
			fl.lowerOperand(a)
		}
		return fl.unitOperand()
	}
	args := make([]Operand, len(n.Args))
	for i, a := range n.Args {
		args[i] = fl.lowerOperand(a)
	}
	return fl.emitCall(ref, args, n.Info().Type)
}

// lowerMethodCall lowers a `recv.name(args...)`: a resolved user method
// passes the receiver as a hidden first argument (by reference when the
// method takes `&self`/`&mut self`, by value otherwise); a Builtin method
// (`len`, `to_string`, spec.md §3.6) has no MirFunction to call at all and
// lowers to a call against a synthetic external function named after the
// builtin, with the receiver as its first argument; no other MIR
// vocabulary is involved.
func (fl *funcLowerer) lowerMethodCall(n *hir.MethodCall) Operand {
	if n.Method != nil {
		ref, ok := fl.lm.methodRefs[n.Method]
		if !ok {
			return fl.unitOperand()
		}
		var recv Operand
		if n.Method.SelfRef {
			place := fl.lowerPlace(n.Receiver)
			refTy := fl.lm.in.Reference(n.Method.ForType, n.Method.SelfMut)
			recv = fl.define(refTy, RefRValue(RefRV{Place: place, Mutable: n.Method.SelfMut}))
		} else {
			recv = fl.lowerOperand(n.Receiver)
		}
		args := make([]Operand, 0, len(n.Args)+1)
		args = append(args, recv)
		for _, a := range n.Args {
			args = append(args, fl.lowerOperand(a))
		}
		return fl.emitCall(ref, args, n.Info().Type)
	}

	recv := fl.lowerOperand(n.Receiver)
	args := append([]Operand{recv}, make([]Operand, len(n.Args))...)
	for i, a := range n.Args {
		args[i+1] = fl.lowerOperand(a)
	}
	return fl.emitCall(externalRef(n.Builtin), args, n.Info().Type)
}

// emitCall appends one CallStmt routing the result per retType's ABI
// classification, returning the Operand later code can use as the call's
// value.
func (fl *funcLowerer) emitCall(ref FunctionRef, args []Operand, retType types.TypeID) Operand {
	rd := classifyReturn(fl.lm.in, retType)
	switch rd.Kind {
	case RetVoid, RetNever:
		fl.emit(callStmt(CallStmt{DstKind: CallDstNone, Callee: ref, Args: args, RetType: retType}))
		if rd.Kind == RetNever && fl.cur != nil {
			fl.cur.setTerm(returnTerm(false, Operand{}))
			fl.cur = nil
		}
		return fl.unitOperand()
	case RetIndirectSRet:
		tmp := fl.f.addLocal("", retType, -1)
		dst := LocalPlace(tmp)
		fl.emit(callStmt(CallStmt{DstKind: CallDstSRet, DstPlace: dst, Callee: ref, Args: args, RetType: retType}))
		return fl.loadPlace(dst, retType)
	default:
		t := fl.newTemp(retType)
		fl.emit(callStmt(CallStmt{DstKind: CallDstTemp, DstTemp: t, Callee: ref, Args: args, RetType: retType}))
		return TempOperand(t, retType)
	}
}
