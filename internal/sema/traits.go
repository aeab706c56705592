package sema

import (
	"corec/internal/diag"
	"corec/internal/hir"
	"corec/internal/symbols"
	"corec/internal/types"
)

// checkTraitConformance implements C6 (spec.md §4.5): for an impl that
// names a trait, every method/func/const the trait requires must be
// present under the same name, with a signature whose parameter and
// return TypeIDs match exactly and whose self-parameter mode (by-value is
// not allowed on self in this language, so this is really "&self" vs
// "&mut self") agrees.
//
// A trait signature may mention Self; it is re-resolved once per impl
// with symbols.ResolveWithSelf rather than compared against a cached
// TypeID, since the same trait can be implemented for several types.
func (ch *Checker) checkTraitConformance(impl *hir.Impl) {
	trait := impl.Trait
	selfName := ch.selfTypeName(impl.ForType)

	implMethods := make(map[string]*hir.Method, len(impl.Methods))
	for _, m := range impl.Methods {
		implMethods[m.Name] = m
	}
	implFuncs := make(map[string]*hir.Function, len(impl.Funcs))
	for _, f := range impl.Funcs {
		implFuncs[f.Name] = f
	}
	implConsts := make(map[string]*hir.ConstDef, len(impl.Consts))
	for _, c := range impl.Consts {
		implConsts[c.Name] = c
	}

	for _, sig := range trait.Methods {
		m, ok := implMethods[sig.Name]
		if !ok {
			ch.errorf(impl.Span, diag.CodeTraitCheck, "impl of %q for %q is missing method %q", trait.Name, selfName, sig.Name)
			continue
		}
		ch.checkMethodSig(impl, trait, sig, m, selfName)
	}
	for _, sig := range trait.Funcs {
		f, ok := implFuncs[sig.Name]
		if !ok {
			ch.errorf(impl.Span, diag.CodeTraitCheck, "impl of %q for %q is missing associated function %q", trait.Name, selfName, sig.Name)
			continue
		}
		ch.checkFuncSig(impl, trait, sig, f, selfName)
	}
	for _, want := range trait.Consts {
		c, ok := implConsts[want.Name]
		if !ok {
			ch.errorf(impl.Span, diag.CodeTraitCheck, "impl of %q for %q is missing const %q", trait.Name, selfName, want.Name)
			continue
		}
		wantTy := ch.resolveTraitType(impl, want.Type)
		gotTy := ch.ctx.TypeQuery(c.Type)
		if wantTy != gotTy {
			ch.errorf(c.Value.Span(), diag.CodeTraitCheck, "const %q has type %s, trait %q requires %s",
				want.Name, ch.typeName(gotTy), trait.Name, ch.typeName(wantTy))
		}
	}
}

func (ch *Checker) checkMethodSig(impl *hir.Impl, trait *hir.Trait, sig *hir.TraitMethodSig, m *hir.Method, selfName string) {
	if sig.SelfRef != m.SelfRef || sig.SelfMut != m.SelfMut {
		ch.errorf(m.Body.Span, diag.CodeTraitCheck, "method %q of trait %q has a different self mode in the impl for %q", sig.Name, trait.Name, selfName)
	}
	if len(sig.Params) != len(m.Params) {
		ch.errorf(m.Body.Span, diag.CodeTraitCheck, "method %q of trait %q has %d parameters, impl for %q has %d", sig.Name, trait.Name, len(sig.Params), selfName, len(m.Params))
	} else {
		for i, want := range sig.Params {
			wantTy := ch.resolveTraitType(impl, want)
			gotTy := ch.ctx.TypeQuery(m.Params[i].Type)
			if wantTy != gotTy {
				ch.errorf(m.Body.Span, diag.CodeTraitCheck, "method %q parameter %d: trait %q requires %s, impl for %q has %s",
					sig.Name, i, trait.Name, ch.typeName(wantTy), selfName, ch.typeName(gotTy))
			}
		}
	}
	wantRet := ch.resolveTraitType(impl, sig.ReturnType)
	gotRet := ch.ctx.TypeQuery(m.ReturnType)
	if wantRet != gotRet {
		ch.errorf(m.Body.Span, diag.CodeTraitCheck, "method %q return type: trait %q requires %s, impl for %q has %s",
			sig.Name, trait.Name, ch.typeName(wantRet), selfName, ch.typeName(gotRet))
	}
}

func (ch *Checker) checkFuncSig(impl *hir.Impl, trait *hir.Trait, sig *hir.TraitMethodSig, f *hir.Function, selfName string) {
	if len(sig.Params) != len(f.Params) {
		ch.errorf(f.Body.Span, diag.CodeTraitCheck, "associated function %q of trait %q has %d parameters, impl for %q has %d", sig.Name, trait.Name, len(sig.Params), selfName, len(f.Params))
	} else {
		for i, want := range sig.Params {
			wantTy := ch.resolveTraitType(impl, want)
			gotTy := ch.ctx.TypeQuery(f.Params[i].Type)
			if wantTy != gotTy {
				ch.errorf(f.Body.Span, diag.CodeTraitCheck, "associated function %q parameter %d: trait %q requires %s, impl for %q has %s",
					sig.Name, i, trait.Name, ch.typeName(wantTy), selfName, ch.typeName(gotTy))
			}
		}
	}
	wantRet := ch.resolveTraitType(impl, sig.ReturnType)
	gotRet := ch.ctx.TypeQuery(f.ReturnType)
	if wantRet != gotRet {
		ch.errorf(f.Body.Span, diag.CodeTraitCheck, "associated function %q return type: trait %q requires %s, impl for %q has %s",
			sig.Name, trait.Name, ch.typeName(wantRet), selfName, ch.typeName(gotRet))
	}
}

// resolveTraitType resolves a trait signature's (possibly Self-mentioning)
// annotation against impl's target type.
func (ch *Checker) resolveTraitType(impl *hir.Impl, ann *hir.TypeAnnotation) types.TypeID {
	if ann == nil {
		return ch.ctx.Types.Builtins().Unit
	}
	if ann.IsResolved() {
		return ann.Resolved
	}
	selfName := ch.selfTypeName(impl.ForType)
	return symbols.ResolveWithSelf(ch.ctx.Table, ch.ctx.Types, ch.ctx.Bag, impl.ForType, selfName, ann.Syntax)
}

func (ch *Checker) selfTypeName(id types.TypeID) string {
	t, ok := ch.ctx.Types.Lookup(id)
	if !ok {
		return "<unknown>"
	}
	return t.Name
}

func (ch *Checker) typeName(id types.TypeID) string {
	t, ok := ch.ctx.Types.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch t.Kind {
	case types.KindPrimitive:
		return t.Prim.String()
	case types.KindStruct, types.KindEnum:
		return t.Name
	case types.KindUnit:
		return "()"
	case types.KindNever:
		return "!"
	case types.KindReference:
		if t.IsMutable {
			return "&mut " + ch.typeName(t.Referent)
		}
		return "&" + ch.typeName(t.Referent)
	case types.KindArray:
		return "[array]"
	default:
		return "<underscore>"
	}
}
