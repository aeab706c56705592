package sema

import (
	"corec/internal/ast"
	"corec/internal/diag"
	"corec/internal/hir"
	"corec/internal/types"
)

// checkIntLiteral assigns an unsuffixed literal's type from its suffix, or
// failing that from expect; an unsuffixed literal checked with no usable
// expectation stays untyped (spec.md §8's boundary behavior: "Unsuffixed
// integer literal `0` checked with no expectation is `{has_type: false}`",
// ground-truthed on original_source's expr_check.cpp ExprChecker::check for
// hir::Literal::Integer, which leaves `has_type = false` and `type =
// invalid_type_id` in exactly this case rather than defaulting to i32). The
// literal's overflow/sign checks and constant folding still run against an
// assumed i32 domain in that case — original_source's LiteralVisitor folds
// every unsuffixed literal as a 32-bit IntConst regardless of has_type — so
// callers that later re-check this node with a concrete expectation (array
// literal elements, binary operands) get a fully validated literal either
// way.
func (ch *Checker) checkIntLiteral(n *hir.IntLiteral, expect Expectation) (hir.Expr, *hir.ExprInfo) {
	b := ch.ctx.Types.Builtins()
	var ty types.TypeID
	hasType := true
	switch n.Suffix {
	case ast.SuffixI32:
		ty = b.I32
	case ast.SuffixU32:
		ty = b.U32
	case ast.SuffixIsize:
		ty = b.Isize
	case ast.SuffixUsize:
		ty = b.Usize
	default:
		if expect.Kind != ExpectNone && ch.ctx.Types.IsNumeric(expect.Type) {
			ty = expect.Type
		} else {
			ty = b.I32
			hasType = false
		}
	}
	t, _ := ch.ctx.Types.Lookup(ty)
	signed := t.Prim.IsSigned()

	resultTy := ty
	if !hasType {
		resultTy = b.Invalid
	}

	if n.IsNegative && !signed {
		ch.errorf(n.Span(), diag.CodeConstEval, "negative literal assigned to an unsigned type")
		return ch.finishLiteral(n, resultTy, hasType, nil)
	}
	if signed {
		if n.IsNegative {
			if n.Value > 1<<31 {
				ch.errorf(n.Span(), diag.CodeConstEval, "integer literal too small for i32")
			}
		} else if n.Value > 1<<31-1 {
			ch.errorf(n.Span(), diag.CodeConstEval, "integer literal too large for i32")
		}
		var v int32
		if n.IsNegative {
			v = int32(-int64(n.Value))
		} else {
			v = int32(n.Value)
		}
		return ch.finishLiteral(n, resultTy, hasType, &hir.ConstVariant{Kind: hir.ConstInt, Int: v})
	}
	if n.Value > 1<<32-1 {
		ch.errorf(n.Span(), diag.CodeConstEval, "integer literal too large for u32")
	}
	return ch.finishLiteral(n, resultTy, hasType, &hir.ConstVariant{Kind: hir.ConstUint, Uint: uint32(n.Value)})
}

// finishLiteral is finish's unsuffixed-integer-literal counterpart: unlike
// every other literal kind, HasType isn't unconditionally true here.
func (ch *Checker) finishLiteral(n *hir.IntLiteral, ty types.TypeID, hasType bool, cv *hir.ConstVariant) (hir.Expr, *hir.ExprInfo) {
	info := &hir.ExprInfo{Type: ty, HasType: hasType, Endpoints: hir.NormalOnly(), ConstValue: cv}
	n.SetInfo(info)
	return n, info
}
