package mir

import "corec/internal/hir"

// lowerIf lowers Cond/Then/Else, joining both arms at a fresh block. When
// both arms produce a value (and control can reach the join from at least
// one of them), the join block carries a Phi merging them; an if used as a
// statement with no Else, or whose arms both diverge, needs neither a join
// value nor, in the all-diverge case, even a reachable join block.
func (fl *funcLowerer) lowerIf(n *hir.If) Operand {
	cond := fl.lowerOperand(n.Cond)
	thenBlock := fl.f.addBlock()
	var elseBlock *BasicBlock
	joinBlock := fl.f.addBlock()

	cases := []SwitchCase{{Value: ConstValue{Kind: ConstBool, Bool: true}, Target: thenBlock.ID}}
	otherwise := joinBlock.ID
	if n.Else != nil {
		elseBlock = fl.f.addBlock()
		otherwise = elseBlock.ID
	}
	fl.cur.setTerm(switchIntTerm(cond, cases, otherwise))

	fl.cur = thenBlock
	thenVal := fl.lowerBlockTail(n.Then)
	thenReached := fl.cur != nil
	if fl.cur != nil {
		fl.cur.setTerm(gotoTerm(joinBlock.ID))
	}

	var elseVal Operand
	elseReached := false
	if n.Else != nil {
		fl.cur = elseBlock
		elseVal = fl.lowerOperand(n.Else)
		elseReached = fl.cur != nil
		if fl.cur != nil {
			fl.cur.setTerm(gotoTerm(joinBlock.ID))
		}
	}

	fl.cur = joinBlock
	if !thenReached && n.Else != nil && !elseReached {
		// Both arms diverge: the join block is unreachable and stays
		// empty; fl.cur = nil marks control as diverged. With no Else the
		// false edge still reaches the join block.
		fl.cur = nil
		return fl.unitOperand()
	}

	ty := n.Info().Type
	if n.Else == nil {
		return fl.unitOperand()
	}
	if thenReached && elseReached {
		dst := fl.newTemp(ty)
		joinBlock.Phis = append(joinBlock.Phis, Phi{
			Dst:  dst,
			Type: ty,
			Incoming: []PhiIncoming{
				{Pred: thenBlock.ID, Value: thenVal},
				{Pred: elseBlock.ID, Value: elseVal},
			},
		})
		return TempOperand(dst, ty)
	}
	if thenReached {
		return thenVal
	}
	return elseVal
}

func (fl *funcLowerer) findLoop(target hir.LoopTarget) *loopLowerCtx {
	for i := len(fl.loops) - 1; i >= 0; i-- {
		if fl.loops[i].target == target {
			return fl.loops[i]
		}
	}
	return nil
}

// lowerLoop lowers `loop { body }`: an unconditional back-edge from the
// body's end to its own start, with `break` the only way out (spec.md
// §4.4.8).
func (fl *funcLowerer) lowerLoop(n *hir.Loop) Operand {
	header := fl.f.addBlock()
	exit := fl.f.addBlock()
	fl.cur.setTerm(gotoTerm(header.ID))

	lctx := &loopLowerCtx{target: n, continueTo: header.ID, breakTo: exit.ID}
	fl.loops = append(fl.loops, lctx)

	fl.cur = header
	fl.lowerBlockTail(n.Body)
	if fl.cur != nil {
		fl.cur.setTerm(gotoTerm(header.ID))
	}

	fl.loops = fl.loops[:len(fl.loops)-1]
	fl.cur = exit
	if len(lctx.breakIncoming) == 0 {
		// No reachable break: the loop itself never completes normally,
		// and per invariant 3 its type is Never; the exit block is dead.
		fl.cur = nil
		return fl.unitOperand()
	}
	ty := lctx.breakType
	if len(lctx.breakIncoming) == 1 {
		return lctx.breakIncoming[0].Value
	}
	dst := fl.newTemp(ty)
	exit.Phis = append(exit.Phis, Phi{Dst: dst, Type: ty, Incoming: lctx.breakIncoming})
	return TempOperand(dst, ty)
}

// lowerWhile lowers `while cond { body }`: a SwitchInt on cond gates entry
// to the body each iteration; `while` never produces a value (spec.md:
// only a bare `loop` can be broken with a value since `while`'s exit is
// always the falsy condition, so its type is always Unit).
func (fl *funcLowerer) lowerWhile(n *hir.While) Operand {
	header := fl.f.addBlock()
	body := fl.f.addBlock()
	exit := fl.f.addBlock()
	fl.cur.setTerm(gotoTerm(header.ID))

	fl.cur = header
	cond := fl.lowerOperand(n.Cond)
	if fl.cur != nil {
		fl.cur.setTerm(switchIntTerm(cond, []SwitchCase{
			{Value: ConstValue{Kind: ConstBool, Bool: true}, Target: body.ID},
		}, exit.ID))
	}

	lctx := &loopLowerCtx{target: n, continueTo: header.ID, breakTo: exit.ID}
	fl.loops = append(fl.loops, lctx)

	fl.cur = body
	fl.lowerBlockTail(n.Body)
	if fl.cur != nil {
		fl.cur.setTerm(gotoTerm(header.ID))
	}

	fl.loops = fl.loops[:len(fl.loops)-1]
	fl.cur = exit
	return fl.unitOperand()
}

func (fl *funcLowerer) lowerBreak(n *hir.Break) {
	lctx := fl.findLoop(n.Target)
	if n.Value != nil {
		val := fl.lowerOperand(n.Value)
		if fl.cur == nil {
			return
		}
		lctx.hasBreakValue = true
		lctx.breakType = val.Type
		lctx.breakIncoming = append(lctx.breakIncoming, PhiIncoming{Pred: fl.cur.ID, Value: val})
	} else if lctx != nil && !lctx.hasBreakValue {
		lctx.breakType = fl.lm.in.Builtins().Unit
	}
	if fl.cur == nil {
		return
	}
	if lctx != nil {
		if n.Value == nil {
			lctx.breakIncoming = append(lctx.breakIncoming, PhiIncoming{Pred: fl.cur.ID, Value: fl.unitOperand()})
		}
		fl.cur.setTerm(gotoTerm(lctx.breakTo))
	}
	fl.cur = nil
}

func (fl *funcLowerer) lowerContinue(n *hir.Continue) {
	lctx := fl.findLoop(n.Target)
	if fl.cur == nil {
		return
	}
	if lctx != nil {
		fl.cur.setTerm(gotoTerm(lctx.continueTo))
	}
	fl.cur = nil
}

func (fl *funcLowerer) lowerReturn(n *hir.Return) {
	var val Operand
	if n.Value != nil {
		val = fl.lowerOperand(n.Value)
	} else {
		val = fl.unitOperand()
	}
	if fl.cur == nil {
		return
	}
	if fl.nrvoLcl != nil {
		if v, ok := n.Value.(*hir.Variable); !ok || v.Local != fl.nrvoLcl {
			fl.emit(assignStmt(LocalPlace(fl.f.RetPlace), val))
		}
	}
	fl.finishReturn(val)
	fl.cur = nil
}

// finishReturn emits the function's final terminator for a reachable
// return point (either a `return expr;` or the body's trailing
// expression): direct returns hand the operand straight to ReturnTerm; an
// SRet return first copies the value into the designated return place
// (skipped when that place already *is* the NRVO local the value was
// constructed into).
func (fl *funcLowerer) finishReturn(val Operand) {
	switch fl.retKind {
	case RetVoid:
		fl.cur.setTerm(returnTerm(false, Operand{}))
	case RetNever:
		fl.cur.setTerm(returnTerm(false, Operand{}))
	case RetIndirectSRet:
		if fl.nrvoLcl == nil {
			if fl.f.RetPlace == NoLocalID {
				fl.f.RetPlace = fl.f.addLocal("", fl.retType, -1)
			}
			fl.emit(assignStmt(LocalPlace(fl.f.RetPlace), val))
		}
		fl.cur.setTerm(returnTerm(false, Operand{}))
	default:
		fl.cur.setTerm(returnTerm(true, val))
	}
}
