package sema

import (
	"corec/internal/diag"
	"corec/internal/hir"
	"corec/internal/source"
	"corec/internal/types"
)

// ExpectKind is the three expectation shapes spec.md §4.2's bidirectional
// checker threads through every recursive call.
type ExpectKind uint8

const (
	ExpectNone ExpectKind = iota
	ExpectExactType
	ExpectExactConst
)

type Expectation struct {
	Kind ExpectKind
	Type types.TypeID
}

func NoExpectation() Expectation { return Expectation{Kind: ExpectNone} }
func ExactType(t types.TypeID) Expectation {
	return Expectation{Kind: ExpectExactType, Type: t}
}

// Checker runs C5 (expression checking), C6 (trait-impl checking), C7
// (control-flow linking) and C8 (exit-use checking) over one Context.
type Checker struct {
	ctx *Context

	// loopCtxs tracks the inferred break-value type of every loop/while
	// currently being checked, keyed by the HIR node break/continue
	// target, so a `break expr` is checked against the first one seen for
	// that loop (spec.md §4.4.8).
	loopCtxs map[hir.LoopTarget]*loopCtx
	returnTy types.TypeID
}

func NewChecker(ctx *Context) *Checker {
	return &Checker{ctx: ctx}
}

// CheckProgram type-checks every function, method and top-level/associated
// constant in the program.
func (ch *Checker) CheckProgram() {
	for _, c := range ch.ctx.Prog.Consts {
		ch.checkConst(c)
	}
	for _, fn := range ch.ctx.Prog.Functions {
		ch.checkFunction(fn)
	}
	for _, impl := range ch.ctx.Prog.Impls {
		ch.checkImpl(impl)
	}
}

func (ch *Checker) checkConst(c *hir.ConstDef) {
	want := ch.ctx.TypeQuery(c.Type)
	v, info := ch.Check(c.Value, ExactType(want))
	c.Value = v
	c.ResolvedValue = info.ConstValue
	if c.ResolvedValue == nil {
		ch.errorf(c.Value.Span(), diag.CodeConstEval, "const initializer for %q does not fold to a constant", c.Name)
	}
}

func (ch *Checker) checkFunction(fn *hir.Function) {
	ch.returnTy = ch.ctx.TypeQuery(fn.ReturnType)
	for _, p := range fn.Params {
		ch.ctx.TypeQuery(p.Type)
	}
	ch.checkBlock(fn.Body, ExactType(ch.returnTy))
	ch.checkExitUses(fn.Body, fn.Name == "main")
}

func (ch *Checker) checkImpl(impl *hir.Impl) {
	for _, c := range impl.Consts {
		ch.checkConst(c)
	}
	for _, fn := range impl.Funcs {
		ch.checkFunction(fn)
	}
	for _, m := range impl.Methods {
		ch.checkMethod(m)
	}
	if impl.Trait != nil {
		ch.checkTraitConformance(impl)
	}
}

func (ch *Checker) checkMethod(m *hir.Method) {
	ch.returnTy = ch.ctx.TypeQuery(m.ReturnType)
	for _, p := range m.Params {
		ch.ctx.TypeQuery(p.Type)
	}
	ch.checkBlock(m.Body, ExactType(ch.returnTy))
	ch.checkExitUses(m.Body, false)
}

func (ch *Checker) errorf(span source.Span, code diag.Code, format string, args ...any) {
	ch.ctx.Bag.Add(diag.New(code, span, format, args...))
}
