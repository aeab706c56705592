package mir

import (
	"corec/internal/hir"
	"corec/internal/types"
)

// loopLowerCtx tracks, for one enclosing loop/while, the block break/
// continue jump to and the temporary (if any) its break values merge
// into, mirroring the loopCtx the checker keeps per spec.md §4.4.8 but at
// the MIR level (a BlockID pair instead of an inferred type).
type loopLowerCtx struct {
	target     hir.LoopTarget
	continueTo BlockID
	breakTo    BlockID
	// breakIncoming accumulates one PhiIncoming per `break value;` seen so
	// far, consumed once the loop's break block is sealed.
	breakIncoming []PhiIncoming
	breakType     types.TypeID
	hasBreakValue bool
}

// funcLowerer lowers one hir.Function/hir.Method body into its
// already-allocated MirFunction.
type funcLowerer struct {
	lm       *lowerModule
	f        *MirFunction
	localOf  map[*hir.Local]LocalID
	cur      *BasicBlock // nil once control has diverged (spec.md §4.8.5)
	loops    []*loopLowerCtx
	retTgt   hir.ReturnTarget
	retKind  RetKind
	retType  types.TypeID
	nrvoLcl  *hir.Local // non-nil when the body's single let-aggregate local was proven NRVO-safe
}

func (lm *lowerModule) lowerFunctionBody(fn *hir.Function) {
	if fn.IsExternal {
		return
	}
	mf := lm.funcImpl[fn]
	fl := &funcLowerer{lm: lm, f: mf, localOf: make(map[*hir.Local]LocalID), retTgt: fn}
	fl.setup(fn.Params, nil, false, false, fn.ReturnType.Resolved, fn.Body)
}

func (lm *lowerModule) lowerMethodBody(m *hir.Method) {
	mf := lm.methodImpl[m]
	fl := &funcLowerer{lm: lm, f: mf, localOf: make(map[*hir.Local]LocalID), retTgt: m}
	fl.setup(m.Params, m.SelfLocal, m.SelfRef, m.SelfMut, m.ReturnType.Resolved, m.Body)
}

func (fl *funcLowerer) setup(params []*hir.Local, self *hir.Local, selfRef, selfMut bool, retType types.TypeID, body *hir.Block) {
	in := fl.lm.in
	fl.retType = retType
	fl.retKind = classifyReturn(in, retType).Kind

	if self != nil {
		selfTy := self.Type.Resolved
		fl.f.addLocal(self.Name, selfTy, 0)
		fl.localOf[self] = LocalID(0)
	}
	base := len(fl.f.Locals)
	for i, p := range params {
		id := fl.f.addLocal(p.Name, p.Type.Resolved, base+i)
		fl.localOf[p] = id
	}

	fl.collectLocals(body)
	fl.planNrvo(body)

	entry := fl.f.addBlock()
	fl.f.StartBlock = entry.ID
	fl.cur = entry

	if fl.nrvoLcl != nil {
		fl.f.RetPlace = fl.localOf[fl.nrvoLcl]
		for i := range fl.f.Locals {
			if fl.f.Locals[i].ID == fl.f.RetPlace {
				fl.f.Locals[i].Nrvo = true
			}
		}
	}

	retOp := fl.lowerBlockTail(body)
	if fl.cur != nil {
		fl.finishReturn(retOp)
	}
}

// collectLocals pre-registers every `let`-bound local reachable from body
// without descending into nested item (fn) statements, which own their own
// separate MirFunction and locals vector. hir.Function/Method expose no
// explicit locals vector of their own (unlike Params) — every other local
// is only discoverable by walking LetStmt patterns through the body, the
// same way checkExitUses/collectExitCalls walk for exit() calls.
func (fl *funcLowerer) collectLocals(b *hir.Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		switch n := s.(type) {
		case *hir.LetStmt:
			fl.collectPatternLocals(n.Pattern)
			if n.Value != nil {
				fl.collectExprLocals(n.Value)
			}
		case *hir.ExprStmt:
			fl.collectExprLocals(n.Expr)
		}
	}
	if b.Final != nil {
		fl.collectExprLocals(b.Final)
	}
}

func (fl *funcLowerer) collectPatternLocals(p hir.Pattern) {
	switch n := p.(type) {
	case *hir.BindingDef:
		if _, ok := fl.localOf[n.Local]; !ok {
			id := fl.f.addLocal(n.Local.Name, n.Local.Type.Resolved, -1)
			fl.localOf[n.Local] = id
		}
	case *hir.ReferencePattern:
		fl.collectPatternLocals(n.Sub)
	}
}

// collectExprLocals descends into every sub-expression that can host a
// nested block (if/loop/while/block-expr), registering the locals declared
// there; it does not need to recurse into every operand kind the way
// walkExprForExit does, since those leaves never introduce a Block.
func (fl *funcLowerer) collectExprLocals(e hir.Expr) {
	switch n := e.(type) {
	case *hir.If:
		fl.collectLocals(n.Then)
		if n.Else != nil {
			fl.collectExprLocals(n.Else)
		}
	case *hir.Loop:
		fl.collectLocals(n.Body)
	case *hir.While:
		fl.collectLocals(n.Body)
	case *hir.BlockExpr:
		fl.collectLocals(n.Block)
	case *hir.Binary:
		fl.collectExprLocals(n.Lhs)
		fl.collectExprLocals(n.Rhs)
	case *hir.Unary:
		fl.collectExprLocals(n.Operand)
	case *hir.Assign:
		fl.collectExprLocals(n.Lhs)
		fl.collectExprLocals(n.Rhs)
	case *hir.Cast:
		fl.collectExprLocals(n.Value)
	case *hir.Deref:
		fl.collectExprLocals(n.Operand)
	case *hir.Field:
		fl.collectExprLocals(n.Base)
	case *hir.Index:
		fl.collectExprLocals(n.Base)
		fl.collectExprLocals(n.Index)
	case *hir.Call:
		fl.collectExprLocals(n.Callee)
		for _, a := range n.Args {
			fl.collectExprLocals(a)
		}
	case *hir.MethodCall:
		fl.collectExprLocals(n.Receiver)
		for _, a := range n.Args {
			fl.collectExprLocals(a)
		}
	case *hir.StructLiteral:
		for i := range n.Fields {
			fl.collectExprLocals(n.Fields[i].Value)
		}
	case *hir.ArrayLiteral:
		for _, el := range n.Elements {
			fl.collectExprLocals(el)
		}
	case *hir.ArrayRepeat:
		fl.collectExprLocals(n.Value)
		fl.collectExprLocals(n.Size)
	case *hir.Break:
		if n.Value != nil {
			fl.collectExprLocals(n.Value)
		}
	case *hir.Return:
		if n.Value != nil {
			fl.collectExprLocals(n.Value)
		}
	}
}

// planNrvo looks for the one named-return-value shape spec.md §4.8.1
// grants NRVO: the body's Final expression is a bare Variable(local), the
// return type is indirect (SRet), and that local was bound by exactly one
// `let name: T = <StructLiteral|ArrayLiteral|ArrayRepeat>;` at the body's
// top level. Later assignments to that local are not examined; they write
// into the SRet slot directly, and a `return` of any other value copies it
// into the slot (lowerReturn). Any other shape is lowered the conservative
// way: build in a temp, copy into the SRet slot at return.
func (fl *funcLowerer) planNrvo(body *hir.Block) {
	if fl.retKind != RetIndirectSRet || body.Final == nil {
		return
	}
	v, ok := body.Final.(*hir.Variable)
	if !ok {
		return
	}
	var initExpr hir.Expr
	count := 0
	for _, s := range body.Stmts {
		let, ok := s.(*hir.LetStmt)
		if !ok {
			continue
		}
		bd, ok := let.Pattern.(*hir.BindingDef)
		if !ok || bd.Local != v.Local {
			continue
		}
		count++
		initExpr = let.Value
	}
	if count != 1 || initExpr == nil {
		return
	}
	switch initExpr.(type) {
	case *hir.StructLiteral, *hir.ArrayLiteral, *hir.ArrayRepeat:
		fl.nrvoLcl = v.Local
	}
}
