package sema

import (
	"corec/internal/ast"
	"corec/internal/diag"
	"corec/internal/hir"
)

// checkBinaryOp implements spec.md §4.4's binary operator rules: arithmetic
// and bitwise operators require identical numeric operand types (bitwise
// also accepts bool, per the const evaluator's bitwise-on-bool support);
// shifts take a u32 right-hand count; comparisons require identical types
// and produce bool; && and || require bool operands and short-circuit.
//
// Both non-shift operands are first checked with no expectation, since
// either side may be a bare unsuffixed integer literal that only resolves
// once the other side supplies a concrete type (spec.md §8's boundary
// behavior; ground-truthed on original_source's ExprChecker::check for
// hir::BinaryOp, whose recheck_with reruns whichever operand came back
// `has_type = false` against the other's resolved type).
func (ch *Checker) checkBinaryOp(n *hir.Binary, expect Expectation) (hir.Expr, *hir.ExprInfo) {
	switch n.Op {
	case ast.OpAnd, ast.OpOr:
		return ch.checkLogical(n)
	}

	lhs, lhsInfo := ch.Check(n.Lhs, NoExpectation())
	n.Lhs = lhs

	isShift := n.Op == ast.OpShl || n.Op == ast.OpShr
	var rhs hir.Expr
	var rhsInfo *hir.ExprInfo
	if isShift {
		rhs, rhsInfo = ch.Check(n.Rhs, ExactType(ch.ctx.Types.Builtins().U32))
		n.Rhs = rhs
	} else {
		rhs, rhsInfo = ch.Check(n.Rhs, NoExpectation())
		n.Rhs = rhs
		if lhsInfo.HasType && ch.ctx.Types.IsNumeric(lhsInfo.Type) && !rhsInfo.HasType {
			rhs, rhsInfo = ch.Check(n.Rhs, ExactType(lhsInfo.Type))
			n.Rhs = rhs
		} else if rhsInfo.HasType && ch.ctx.Types.IsNumeric(rhsInfo.Type) && !lhsInfo.HasType {
			lhs, lhsInfo = ch.Check(n.Lhs, ExactType(rhsInfo.Type))
			n.Lhs = lhs
		}
	}

	// Neither operand had a sibling to resolve against (e.g. `1 + 2`) —
	// if the caller has an expected numeric type (a let annotation, a
	// call argument slot), give both literals one more chance against it
	// before giving up (ground-truthed on original_source's
	// ExprChecker::check for hir::BinaryOp, which reruns both operands
	// against exp.expected once it's known to be numeric).
	isArithOrBitwise := n.Op == ast.OpAdd || n.Op == ast.OpSub || n.Op == ast.OpMul || n.Op == ast.OpDiv || n.Op == ast.OpRem ||
		n.Op == ast.OpBitAnd || n.Op == ast.OpBitOr || n.Op == ast.OpBitXor
	if !isShift && isArithOrBitwise && !lhsInfo.HasType && !rhsInfo.HasType &&
		expect.Kind == ExpectExactType && ch.ctx.Types.IsNumeric(expect.Type) {
		lhs, lhsInfo = ch.Check(n.Lhs, ExactType(expect.Type))
		n.Lhs = lhs
		rhs, rhsInfo = ch.Check(n.Rhs, ExactType(expect.Type))
		n.Rhs = rhs
	}

	endpoints := hir.Sequence(lhsInfo.Endpoints, rhsInfo.Endpoints)
	invalid := ch.ctx.Types.Builtins().Invalid

	switch n.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpRem:
		if !lhsInfo.HasType || !rhsInfo.HasType {
			return ch.finishUnresolved(n, endpoints)
		}
		if !ch.ctx.Types.IsNumeric(lhsInfo.Type) || lhsInfo.Type != rhsInfo.Type {
			ch.errorf(n.Span(), diag.CodeType, "arithmetic requires matching numeric operands")
		}
		return ch.finish(n, lhsInfo.Type, endpoints, foldArith(n.Op, lhsInfo.ConstValue, rhsInfo.ConstValue))
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor:
		if !lhsInfo.HasType || !rhsInfo.HasType {
			return ch.finishUnresolved(n, endpoints)
		}
		numeric := ch.ctx.Types.IsNumeric(lhsInfo.Type)
		boolean := ch.ctx.Types.IsBool(lhsInfo.Type)
		if (!numeric && !boolean) || lhsInfo.Type != rhsInfo.Type {
			ch.errorf(n.Span(), diag.CodeType, "bitwise operator requires matching numeric or bool operands")
		}
		return ch.finish(n, lhsInfo.Type, endpoints, foldBitwise(n.Op, lhsInfo.ConstValue, rhsInfo.ConstValue))
	case ast.OpShl, ast.OpShr:
		if !lhsInfo.HasType {
			return ch.finishUnresolved(n, endpoints)
		}
		if !ch.ctx.Types.IsNumeric(lhsInfo.Type) {
			ch.errorf(n.Span(), diag.CodeType, "shift requires a numeric left operand")
		}
		return ch.finish(n, lhsInfo.Type, endpoints, nil)
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if !lhsInfo.HasType || !rhsInfo.HasType {
			return ch.finishUnresolved(n, endpoints)
		}
		if lhsInfo.Type != rhsInfo.Type {
			ch.errorf(n.Span(), diag.CodeType, "comparison requires matching operand types")
		}
		return ch.finish(n, ch.ctx.Types.Builtins().Bool, endpoints, foldCompare(n.Op, lhsInfo.ConstValue, rhsInfo.ConstValue))
	}
	return ch.finish(n, invalid, endpoints, nil)
}

func (ch *Checker) checkLogical(n *hir.Binary) (hir.Expr, *hir.ExprInfo) {
	b := ch.ctx.Types.Builtins()
	lhs, lhsInfo := ch.Check(n.Lhs, ExactType(b.Bool))
	n.Lhs = lhs
	rhs, rhsInfo := ch.Check(n.Rhs, ExactType(b.Bool))
	n.Rhs = rhs
	if !ch.ctx.Types.IsBool(lhsInfo.Type) || !ch.ctx.Types.IsBool(rhsInfo.Type) {
		ch.errorf(n.Span(), diag.CodeType, "&& and || require bool operands")
	}
	// The right operand only runs if evaluating the left doesn't already
	// exit; both sides completing normally is still the common case.
	endpoints := hir.Sequence(lhsInfo.Endpoints, rhsInfo.Endpoints)
	return ch.finish(n, b.Bool, endpoints, nil)
}

func foldArith(op ast.BinaryOp, a, bv *hir.ConstVariant) *hir.ConstVariant {
	if a == nil || bv == nil {
		return nil
	}
	if a.Kind == hir.ConstInt && bv.Kind == hir.ConstInt {
		var r int32
		switch op {
		case ast.OpAdd:
			r = a.Int + bv.Int
		case ast.OpSub:
			r = a.Int - bv.Int
		case ast.OpMul:
			r = a.Int * bv.Int
		case ast.OpDiv:
			if bv.Int == 0 {
				return nil
			}
			r = a.Int / bv.Int
		case ast.OpRem:
			if bv.Int == 0 {
				return nil
			}
			r = a.Int % bv.Int
		}
		return &hir.ConstVariant{Kind: hir.ConstInt, Int: r}
	}
	if a.Kind == hir.ConstUint && bv.Kind == hir.ConstUint {
		var r uint32
		switch op {
		case ast.OpAdd:
			r = a.Uint + bv.Uint
		case ast.OpSub:
			r = a.Uint - bv.Uint
		case ast.OpMul:
			r = a.Uint * bv.Uint
		case ast.OpDiv:
			if bv.Uint == 0 {
				return nil
			}
			r = a.Uint / bv.Uint
		case ast.OpRem:
			if bv.Uint == 0 {
				return nil
			}
			r = a.Uint % bv.Uint
		}
		return &hir.ConstVariant{Kind: hir.ConstUint, Uint: r}
	}
	return nil
}

func foldBitwise(op ast.BinaryOp, a, bv *hir.ConstVariant) *hir.ConstVariant {
	if a == nil || bv == nil || a.Kind != bv.Kind {
		return nil
	}
	switch a.Kind {
	case hir.ConstBool:
		var r bool
		switch op {
		case ast.OpBitAnd:
			r = a.Bool && bv.Bool
		case ast.OpBitOr:
			r = a.Bool || bv.Bool
		case ast.OpBitXor:
			r = a.Bool != bv.Bool
		}
		return &hir.ConstVariant{Kind: hir.ConstBool, Bool: r}
	case hir.ConstInt:
		var r int32
		switch op {
		case ast.OpBitAnd:
			r = a.Int & bv.Int
		case ast.OpBitOr:
			r = a.Int | bv.Int
		case ast.OpBitXor:
			r = a.Int ^ bv.Int
		}
		return &hir.ConstVariant{Kind: hir.ConstInt, Int: r}
	case hir.ConstUint:
		var r uint32
		switch op {
		case ast.OpBitAnd:
			r = a.Uint & bv.Uint
		case ast.OpBitOr:
			r = a.Uint | bv.Uint
		case ast.OpBitXor:
			r = a.Uint ^ bv.Uint
		}
		return &hir.ConstVariant{Kind: hir.ConstUint, Uint: r}
	}
	return nil
}

func foldCompare(op ast.BinaryOp, a, bv *hir.ConstVariant) *hir.ConstVariant {
	if a == nil || bv == nil || a.Kind != bv.Kind {
		return nil
	}
	var cmp int
	switch a.Kind {
	case hir.ConstInt:
		cmp = compareInt(int64(a.Int), int64(bv.Int))
	case hir.ConstUint:
		cmp = compareInt(int64(a.Uint), int64(bv.Uint))
	case hir.ConstBool:
		cmp = compareInt(boolToInt(a.Bool), boolToInt(bv.Bool))
	case hir.ConstChar:
		cmp = compareInt(int64(a.Char), int64(bv.Char))
	case hir.ConstString:
		if a.String == bv.String {
			cmp = 0
		} else if a.String < bv.String {
			cmp = -1
		} else {
			cmp = 1
		}
	default:
		return nil
	}
	var r bool
	switch op {
	case ast.OpEq:
		r = cmp == 0
	case ast.OpNe:
		r = cmp != 0
	case ast.OpLt:
		r = cmp < 0
	case ast.OpLe:
		r = cmp <= 0
	case ast.OpGt:
		r = cmp > 0
	case ast.OpGe:
		r = cmp >= 0
	}
	return &hir.ConstVariant{Kind: hir.ConstBool, Bool: r}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
