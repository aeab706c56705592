package sema

import (
	"corec/internal/ast"
	"corec/internal/diag"
	"corec/internal/hir"
	"corec/internal/symbols"
	"corec/internal/types"
)

func (ch *Checker) checkField(n *hir.Field) (hir.Expr, *hir.ExprInfo) {
	base, baseInfo := ch.Check(n.Base, NoExpectation())
	n.Base = base

	bt, _ := ch.ctx.Types.Lookup(baseInfo.Type)
	if bt.Kind == types.KindReference {
		// Auto-deref: the field access reaches through the reference.
		deref := &hir.Deref{Operand: n.Base}
		derefInfo := &hir.ExprInfo{Type: bt.Referent, HasType: true, IsPlace: true, IsMut: bt.IsMutable, Endpoints: baseInfo.Endpoints}
		deref.SetInfo(derefInfo)
		n.Base = deref
		baseInfo = derefInfo
		bt, _ = ch.ctx.Types.Lookup(baseInfo.Type)
	}
	if bt.Kind != types.KindStruct {
		ch.errorf(n.Span(), diag.CodeType, "field access on a non-struct type")
		return ch.finish(n, ch.ctx.Types.Builtins().Invalid, baseInfo.Endpoints, nil)
	}
	info, _ := ch.ctx.Types.StructInfo(baseInfo.Type)
	for i, f := range info.Fields {
		if f.Name == n.Name {
			n.Index = i
			res := &hir.ExprInfo{Type: f.Type, HasType: true, IsPlace: baseInfo.IsPlace, IsMut: baseInfo.IsMut, Endpoints: baseInfo.Endpoints}
			n.SetInfo(res)
			return n, res
		}
	}
	ch.errorf(n.Span(), diag.CodeResolution, "struct %q has no field %q", info.Name, n.Name)
	return ch.finish(n, ch.ctx.Types.Builtins().Invalid, baseInfo.Endpoints, nil)
}

func (ch *Checker) checkIndex(n *hir.Index) (hir.Expr, *hir.ExprInfo) {
	base, baseInfo := ch.Check(n.Base, NoExpectation())
	n.Base = base
	idx, idxInfo := ch.Check(n.Index, ExactType(ch.ctx.Types.Builtins().Usize))
	n.Index = idx
	endpoints := hir.Sequence(baseInfo.Endpoints, idxInfo.Endpoints)

	bt, _ := ch.ctx.Types.Lookup(baseInfo.Type)
	if bt.Kind != types.KindArray {
		ch.errorf(n.Span(), diag.CodeType, "index access on a non-array type")
		return ch.finish(n, ch.ctx.Types.Builtins().Invalid, endpoints, nil)
	}
	res := &hir.ExprInfo{Type: bt.Referent, HasType: true, IsPlace: baseInfo.IsPlace, IsMut: baseInfo.IsMut, Endpoints: endpoints}
	n.SetInfo(res)
	return n, res
}

func (ch *Checker) checkCall(n *hir.Call, expect Expectation) (hir.Expr, *hir.ExprInfo) {
	switch callee := n.Callee.(type) {
	case *hir.FuncUse:
		return ch.checkCallTo(n, callee.Def.Params, callee.Def.ReturnType)
	case *hir.StructStatic:
		return ch.checkCallTo(n, callee.Fn.Params, callee.Fn.ReturnType)
	default:
		ch.errorf(n.Span(), diag.CodeType, "expression is not callable")
		for i := range n.Args {
			n.Args[i], _ = ch.Check(n.Args[i], NoExpectation())
		}
		return ch.finish(n, ch.ctx.Types.Builtins().Invalid, hir.NormalOnly(), nil)
	}
}

func (ch *Checker) checkCallTo(n *hir.Call, params []*hir.Local, retAnn *hir.TypeAnnotation) (hir.Expr, *hir.ExprInfo) {
	endpoints := hir.NormalOnly()
	if len(n.Args) != len(params) {
		ch.errorf(n.Span(), diag.CodeType, "expected %d arguments, found %d", len(params), len(n.Args))
	}
	for i := range n.Args {
		var want Expectation
		if i < len(params) {
			want = ExactType(ch.ctx.TypeQuery(params[i].Type))
		} else {
			want = NoExpectation()
		}
		v, info := ch.Check(n.Args[i], want)
		n.Args[i] = v
		endpoints = hir.Sequence(endpoints, info.Endpoints)
	}
	retTy := ch.ctx.TypeQuery(retAnn)
	return ch.finish(n, retTy, endpoints, nil)
}

func (ch *Checker) checkMethodCall(n *hir.MethodCall) (hir.Expr, *hir.ExprInfo) {
	recv, recvInfo := ch.Check(n.Receiver, NoExpectation())
	n.Receiver = recv
	bt, _ := ch.ctx.Types.Lookup(recvInfo.Type)
	baseTy := recvInfo.Type
	isRef := bt.Kind == types.KindReference
	if isRef {
		baseTy = bt.Referent
	}

	if builtin, ok := symbols.LookupBuiltinMethod(ch.ctx.Types, baseTy, n.Name); ok {
		n.Builtin = builtin
		endpoints := recvInfo.Endpoints
		for i := range n.Args {
			v, info := ch.Check(n.Args[i], NoExpectation())
			n.Args[i] = v
			endpoints = hir.Sequence(endpoints, info.Endpoints)
		}
		return ch.finish(n, ch.builtinReturnType(builtin), endpoints, nil)
	}

	entry, ok := ch.ctx.Table.Impls[baseTy]
	var method *hir.Method
	if ok {
		method = entry.Methods[n.Name]
	}
	if method == nil {
		ch.errorf(n.Span(), diag.CodeResolution, "no method %q found", n.Name)
		for i := range n.Args {
			n.Args[i], _ = ch.Check(n.Args[i], NoExpectation())
		}
		return ch.finish(n, ch.ctx.Types.Builtins().Invalid, recvInfo.Endpoints, nil)
	}
	n.Method = method

	if !isRef {
		if !recvInfo.IsPlace {
			ch.errorf(n.Span(), diag.CodeMutability, "method %q needs a place receiver to auto-reference", n.Name)
		}
		if method.SelfMut && !recvInfo.IsMut {
			ch.errorf(n.Span(), diag.CodeMutability, "method %q requires a mutable receiver", n.Name)
		}
		op := ast.UnaryRef
		if method.SelfMut {
			op = ast.UnaryRefMut
		}
		wrapped := &hir.Unary{Op: op, Operand: n.Receiver}
		refTy := ch.ctx.Types.Reference(recvInfo.Type, method.SelfMut)
		wrapped.SetInfo(&hir.ExprInfo{Type: refTy, HasType: true, Endpoints: recvInfo.Endpoints})
		n.Receiver = wrapped
	} else if method.SelfMut && !bt.IsMutable {
		ch.errorf(n.Span(), diag.CodeMutability, "method %q requires &mut self", n.Name)
	}

	endpoints := recvInfo.Endpoints
	if len(n.Args) != len(method.Params) {
		ch.errorf(n.Span(), diag.CodeType, "expected %d arguments, found %d", len(method.Params), len(n.Args))
	}
	for i := range n.Args {
		var want Expectation
		if i < len(method.Params) {
			want = ExactType(ch.ctx.TypeQuery(method.Params[i].Type))
		} else {
			want = NoExpectation()
		}
		v, info := ch.Check(n.Args[i], want)
		n.Args[i] = v
		endpoints = hir.Sequence(endpoints, info.Endpoints)
	}
	retTy := ch.ctx.TypeQuery(method.ReturnType)
	return ch.finish(n, retTy, endpoints, nil)
}

func (ch *Checker) builtinReturnType(name string) types.TypeID {
	b := ch.ctx.Types.Builtins()
	switch name {
	case "len":
		return b.Usize
	case "to_string":
		return b.String
	}
	return b.Invalid
}

func (ch *Checker) checkStructLiteral(n *hir.StructLiteral) (hir.Expr, *hir.ExprInfo) {
	endpoints := hir.NormalOnly()
	if n.Def == nil {
		return ch.finish(n, ch.ctx.Types.Builtins().Invalid, endpoints, nil)
	}
	info, _ := ch.ctx.Types.StructInfo(n.Def.Type)
	seen := make(map[int]bool, len(n.Fields))
	for i := range n.Fields {
		f := &n.Fields[i]
		var want Expectation
		if f.Index >= 0 && f.Index < len(info.Fields) {
			want = ExactType(info.Fields[f.Index].Type)
			seen[f.Index] = true
		} else {
			ch.errorf(n.Span(), diag.CodeResolution, "struct %q has no field %q", info.Name, f.Name)
			want = NoExpectation()
		}
		v, vinfo := ch.Check(f.Value, want)
		f.Value = v
		endpoints = hir.Sequence(endpoints, vinfo.Endpoints)
	}
	if len(seen) != len(info.Fields) {
		ch.errorf(n.Span(), diag.CodeType, "struct literal for %q is missing fields", info.Name)
	}
	return ch.finish(n, n.Def.Type, endpoints, nil)
}

// checkArrayLiteral implements spec.md §4.4's array-literal rule: every
// element is first checked with no expectation; a common element type is
// computed across whichever elements already resolved (merged against the
// expectation's own element type, if expect names an array), and only then
// are the elements that didn't resolve — bare integer literals — re-checked
// against that common type (ground-truthed on original_source's
// ExprChecker::check(hir::ArrayLiteral&, TypeExpectation)).
func (ch *Checker) checkArrayLiteral(n *hir.ArrayLiteral, expect Expectation) (hir.Expr, *hir.ExprInfo) {
	infos := make([]*hir.ExprInfo, len(n.Elements))
	endpoints := hir.NormalOnly()
	for i := range n.Elements {
		v, info := ch.Check(n.Elements[i], NoExpectation())
		n.Elements[i] = v
		infos[i] = info
		endpoints = hir.Sequence(endpoints, info.Endpoints)
	}

	elemTy := ch.ctx.Types.Builtins().Invalid
	haveElemTy := false
	mergeElemTy := func(other types.TypeID) bool {
		if !haveElemTy {
			elemTy = other
			haveElemTy = true
			return true
		}
		common, ok := ch.ctx.Types.FindCommonType(elemTy, other)
		if !ok {
			return false
		}
		elemTy = common
		return true
	}

	for _, info := range infos {
		if info.HasType && !mergeElemTy(info.Type) {
			ch.errorf(n.Span(), diag.CodeType, "array elements must share one type")
			return ch.finish(n, ch.ctx.Types.Builtins().Invalid, endpoints, nil)
		}
	}

	if expect.Kind == ExpectExactType {
		if et, ok := ch.ctx.Types.Lookup(expect.Type); ok && et.Kind == types.KindArray {
			if !mergeElemTy(et.Referent) {
				ch.errorf(n.Span(), diag.CodeType, "array literal does not satisfy the expected element type")
				return ch.finish(n, ch.ctx.Types.Builtins().Invalid, endpoints, nil)
			}
		}
	}

	if haveElemTy {
		for i, info := range infos {
			if info.HasType {
				continue
			}
			v, reinfo := ch.Check(n.Elements[i], ExactType(elemTy))
			n.Elements[i] = v
			infos[i] = reinfo
			if !reinfo.HasType || !mergeElemTy(reinfo.Type) {
				haveElemTy = false
				break
			}
		}
	}

	if !haveElemTy {
		// No error reported here: every element is still a bare unsuffixed
		// literal with nothing in the array itself to pin a type down.
		// Propagate unresolved so an outer let/call/array context gets a
		// chance to supply one (spec.md §8).
		return ch.finishUnresolved(n, endpoints)
	}
	arrTy := ch.ctx.Types.Array(elemTy, uint32(len(n.Elements)))
	return ch.finish(n, arrTy, endpoints, nil)
}

// checkArrayRepeat mirrors checkArrayLiteral's literal-resolution handling
// for the single repeated value: checked with no expectation first since
// it may be a bare unsuffixed integer literal, then re-checked against the
// expected array's element type if it came back unresolved (spec.md §8).
func (ch *Checker) checkArrayRepeat(n *hir.ArrayRepeat, expect Expectation) (hir.Expr, *hir.ExprInfo) {
	value, valueInfo := ch.Check(n.Value, NoExpectation())
	n.Value = value
	if !valueInfo.HasType && expect.Kind == ExpectExactType {
		if et, ok := ch.ctx.Types.Lookup(expect.Type); ok && et.Kind == types.KindArray {
			value, valueInfo = ch.Check(n.Value, ExactType(et.Referent))
			n.Value = value
		}
	}
	size, sizeInfo := ch.Check(n.Size, Expectation{Kind: ExpectExactConst, Type: ch.ctx.Types.Builtins().Usize})
	n.Size = size
	if sizeInfo.ConstValue == nil || sizeInfo.ConstValue.Kind != hir.ConstUint {
		ch.errorf(n.Span(), diag.CodeConstEval, "array repeat count must be a constant usize")
		return ch.finish(n, ch.ctx.Types.Builtins().Invalid, hir.Sequence(valueInfo.Endpoints, sizeInfo.Endpoints), nil)
	}
	endpoints := hir.Sequence(valueInfo.Endpoints, sizeInfo.Endpoints)
	if !valueInfo.HasType {
		return ch.finishUnresolved(n, endpoints)
	}
	arrTy := ch.ctx.Types.Array(valueInfo.Type, sizeInfo.ConstValue.Uint)
	return ch.finish(n, arrTy, endpoints, nil)
}
