package mir

import (
	"corec/internal/ast"
	"corec/internal/hir"
	"corec/internal/types"
)

// unitOperand is the canonical Unit-valued operand every void expression
// (Assign, a void Call used as a value, …) reduces to.
func (fl *funcLowerer) unitOperand() Operand {
	return ConstOperand(fl.lm.in.Builtins().Unit, ConstValue{Kind: ConstUnit})
}

func (fl *funcLowerer) emit(s Statement) {
	if fl.cur == nil {
		return // control already diverged; this statement is unreachable
	}
	fl.cur.push(s)
}

func (fl *funcLowerer) newTemp(ty types.TypeID) TempID {
	return fl.f.addTemp(ty)
}

func (fl *funcLowerer) define(ty types.TypeID, v RValue) Operand {
	t := fl.newTemp(ty)
	fl.emit(defineStmt(t, v))
	return TempOperand(t, ty)
}

// lowerBlockTail lowers every statement of b then its trailing expression
// (or Unit, if absent), returning the block's value operand. If control
// has already diverged by the time the Final is reached, the returned
// operand is meaningless and callers must not use it.
func (fl *funcLowerer) lowerBlockTail(b *hir.Block) Operand {
	for _, s := range b.Stmts {
		fl.lowerStmt(s)
		if fl.cur == nil {
			break
		}
	}
	if fl.cur == nil {
		return fl.unitOperand()
	}
	if b.Final != nil {
		return fl.lowerOperand(b.Final)
	}
	return fl.unitOperand()
}

func (fl *funcLowerer) lowerStmt(s hir.Stmt) {
	switch n := s.(type) {
	case *hir.LetStmt:
		fl.lowerLet(n)
	case *hir.ExprStmt:
		fl.lowerOperand(n.Expr)
	case *hir.ItemStmt:
		// Nested fn/struct/enum/const/impl/trait declarations were already
		// lowered (or, for types, only ever exist at the type-interner
		// level) by the top-level declare pass walking prog.Functions/
		// Impls; a nested *hir.Function item-stmt has no separate MIR
		// identity here since C3's resolver already flattened all
		// call-site references to point at the one hir.Function value.
	}
}

func (fl *funcLowerer) lowerLet(n *hir.LetStmt) {
	bd, ok := n.Pattern.(*hir.BindingDef)
	if !ok {
		if n.Value != nil {
			fl.lowerOperand(n.Value)
		}
		return
	}
	id := fl.localOf[bd.Local]
	if n.Value == nil {
		return
	}
	dst := LocalPlace(id)
	switch n.Value.(type) {
	case *hir.StructLiteral, *hir.ArrayLiteral, *hir.ArrayRepeat:
		fl.lowerInit(n.Value, dst)
	default:
		op := fl.lowerOperand(n.Value)
		fl.emit(assignStmt(dst, op))
	}
}

// lowerInit lowers an aggregate-literal expression directly against dst,
// with no intervening temporary (spec.md §4.8.2).
func (fl *funcLowerer) lowerInit(e hir.Expr, dst Place) {
	switch n := e.(type) {
	case *hir.StructLiteral:
		fields := make([]FieldInit, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = FieldInit{Field: f.Index, Value: fl.lowerOperand(f.Value)}
		}
		fl.emit(initStmt(dst, InitPattern{Kind: InitStruct, Fields: fields}))
	case *hir.ArrayLiteral:
		elems := make([]Operand, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = fl.lowerOperand(el)
		}
		fl.emit(initStmt(dst, InitPattern{Kind: InitArray, Elements: elems}))
	case *hir.ArrayRepeat:
		val := fl.lowerOperand(n.Value)
		count := 0
		if info := n.Size.Info(); info != nil && info.ConstValue != nil {
			switch info.ConstValue.Kind {
			case hir.ConstInt:
				count = int(info.ConstValue.Int)
			case hir.ConstUint:
				count = int(info.ConstValue.Uint)
			}
		}
		fl.emit(initStmt(dst, InitPattern{Kind: InitArray, Repeat: &val, Count: count}))
	default:
		op := fl.lowerOperand(e)
		fl.emit(assignStmt(dst, op))
	}
}

// lowerOperand lowers e to a usable SSA value, materialising a fresh
// temporary wherever e is not a literal or constant (variable reads are
// loaded into a temporary too) (spec.md §4.8.2).
func (fl *funcLowerer) lowerOperand(e hir.Expr) Operand {
	switch n := e.(type) {
	case *hir.IntLiteral:
		return fl.lowerIntLiteral(n)
	case *hir.BoolLiteral:
		return ConstOperand(fl.lm.in.Builtins().Bool, ConstValue{Kind: ConstBool, Bool: n.Value})
	case *hir.CharLiteral:
		return ConstOperand(fl.lm.in.Builtins().Char, ConstValue{Kind: ConstChar, Char: n.Value})
	case *hir.StringLiteral:
		return ConstOperand(fl.lm.in.Builtins().String, ConstValue{Kind: ConstString, String: n.Value})
	case *hir.Variable:
		return fl.loadPlace(fl.lowerPlace(n), n.Info().Type)
	case *hir.ConstUse:
		return fl.lowerConstDef(n.Def)
	case *hir.EnumVariant:
		return ConstOperand(n.Info().Type, ConstValue{Kind: ConstUint, Uint: uint32(n.Index)})
	case *hir.StructConst:
		return fl.lowerConstDef(n.Const)
	case *hir.StructStatic:
		// A bare reference to an associated function used as a value is
		// not a legal surface-language expression (calls always go
		// through Call{Callee: FuncUse|StructStatic-resolved-callee}); if
		// it ever reaches here there is nothing meaningful to load, so
		// fall back to a Unit placeholder.
		return fl.unitOperand()
	case *hir.Unary:
		return fl.lowerUnary(n)
	case *hir.Binary:
		return fl.lowerBinary(n)
	case *hir.Assign:
		lhs := fl.lowerPlace(n.Lhs)
		rhs := fl.lowerOperand(n.Rhs)
		fl.emit(assignStmt(lhs, rhs))
		return fl.unitOperand()
	case *hir.Cast:
		v := fl.lowerOperand(n.Value)
		return fl.define(n.Target.Resolved, CastRValue(CastRV{To: n.Target.Resolved, Operand: v}))
	case *hir.Deref:
		return fl.loadPlace(fl.lowerPlace(n), n.Info().Type)
	case *hir.Field:
		return fl.loadPlace(fl.lowerPlace(n), n.Info().Type)
	case *hir.Index:
		return fl.loadPlace(fl.lowerPlace(n), n.Info().Type)
	case *hir.Call:
		return fl.lowerCall(n)
	case *hir.MethodCall:
		return fl.lowerMethodCall(n)
	case *hir.StructLiteral, *hir.ArrayLiteral, *hir.ArrayRepeat:
		tmp := fl.f.addLocal("", e.Info().Type, -1)
		fl.lowerInit(e, LocalPlace(tmp))
		return fl.loadPlace(LocalPlace(tmp), e.Info().Type)
	case *hir.If:
		return fl.lowerIf(n)
	case *hir.Loop:
		return fl.lowerLoop(n)
	case *hir.While:
		return fl.lowerWhile(n)
	case *hir.Break:
		fl.lowerBreak(n)
		return fl.unitOperand()
	case *hir.Continue:
		fl.lowerContinue(n)
		return fl.unitOperand()
	case *hir.Return:
		fl.lowerReturn(n)
		return fl.unitOperand()
	case *hir.BlockExpr:
		return fl.lowerBlockTail(n.Block)
	}
	return fl.unitOperand()
}

func (fl *funcLowerer) lowerIntLiteral(n *hir.IntLiteral) Operand {
	ty := n.Info().Type
	t, _ := fl.lm.in.Lookup(ty)
	if t.Prim.IsSigned() {
		v := int32(n.Value)
		if n.IsNegative {
			v = -v
		}
		return ConstOperand(ty, ConstValue{Kind: ConstInt, Int: v})
	}
	return ConstOperand(ty, ConstValue{Kind: ConstUint, Uint: uint32(n.Value)})
}

func (fl *funcLowerer) lowerConstDef(c *hir.ConstDef) Operand {
	ty := c.Type.Resolved
	if c.ResolvedValue == nil {
		return fl.unitOperand()
	}
	rv := c.ResolvedValue
	cv := ConstValue{}
	switch rv.Kind {
	case hir.ConstInt:
		cv = ConstValue{Kind: ConstInt, Int: rv.Int}
	case hir.ConstUint:
		cv = ConstValue{Kind: ConstUint, Uint: rv.Uint}
	case hir.ConstBool:
		cv = ConstValue{Kind: ConstBool, Bool: rv.Bool}
	case hir.ConstChar:
		cv = ConstValue{Kind: ConstChar, Char: rv.Char}
	case hir.ConstString:
		cv = ConstValue{Kind: ConstString, String: rv.String}
	}
	return ConstOperand(ty, cv)
}

func (fl *funcLowerer) lowerUnary(n *hir.Unary) Operand {
	switch n.Op {
	case ast.UnaryRef, ast.UnaryRefMut:
		place := fl.lowerPlace(n.Operand)
		refTy := n.Info().Type
		return fl.define(refTy, RefRValue(RefRV{Place: place, Mutable: n.Op == ast.UnaryRefMut}))
	case ast.UnaryDeref:
		return fl.loadPlace(fl.lowerPlace(n), n.Info().Type)
	default:
		v := fl.lowerOperand(n.Operand)
		return fl.define(n.Info().Type, UnaryRValue(UnaryRV{Op: n.Op, Operand: v}))
	}
}

func (fl *funcLowerer) lowerBinary(n *hir.Binary) Operand {
	lhs := fl.lowerOperand(n.Lhs)
	rhs := fl.lowerOperand(n.Rhs)
	return fl.define(n.Info().Type, BinaryRValue(BinaryRV{Op: n.Op, Lhs: lhs, Rhs: rhs}))
}

// loadPlace reads place's current contents into a fresh temporary via a
// Load statement, giving every place-read (local, field projection,
// pointer dereference) one uniform SSA materialization path.
func (fl *funcLowerer) loadPlace(p Place, ty types.TypeID) Operand {
	t := fl.newTemp(ty)
	fl.emit(loadStmt(t, p))
	return TempOperand(t, ty)
}

// lowerPlace lowers e to an addressable Place; e must denote a place
// (spec.md's ExprInfo.IsPlace was already required true by the checker for
// every context lowerPlace is called from: Assign.Lhs, UnaryRef's operand,
// Field/Index/Deref bases).
func (fl *funcLowerer) lowerPlace(e hir.Expr) Place {
	switch n := e.(type) {
	case *hir.Variable:
		return LocalPlace(fl.localOf[n.Local])
	case *hir.Deref:
		ptr := fl.lowerOperand(n.Operand)
		return PointerPlace(ptr.Temp)
	case *hir.Field:
		base := fl.lowerPlace(n.Base)
		return base.Field(n.Index)
	case *hir.Index:
		base := fl.lowerPlace(n.Base)
		idx := fl.lowerOperand(n.Index)
		return base.Index(idx)
	case *hir.Unary:
		if n.Op == ast.UnaryDeref {
			ptr := fl.lowerOperand(n.Operand)
			return PointerPlace(ptr.Temp)
		}
	}
	// Not a place expression (e.g. a temp-ref desugaring's synthetic
	// block result): spill it into a fresh anonymous local so callers
	// that need an address still get one.
	op := fl.lowerOperand(e)
	tmp := fl.f.addLocal("", op.Type, -1)
	place := LocalPlace(tmp)
	fl.emit(assignStmt(place, op))
	return place
}
