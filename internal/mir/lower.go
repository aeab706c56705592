package mir

import (
	"corec/internal/hir"
	"corec/internal/symbols"
	"corec/internal/types"
)

// lowerModule carries the whole-program state C9 needs while lowering
// every function/method body: the type interner, the symbol table (for
// impl-table lookups MethodCall already resolved, so lowering never
// consults it directly except through Method.ForType), and the maps from
// a HIR function/method identity to its FunctionRef, so a call lowered
// before its callee's own body has been visited still resolves correctly.
type lowerModule struct {
	in    *types.Interner
	table *symbols.Table
	mod   *MirModule

	funcRefs   map[*hir.Function]FunctionRef
	methodRefs map[*hir.Method]FunctionRef
	funcImpl   map[*hir.Function]*MirFunction
	methodImpl map[*hir.Method]*MirFunction
}

// LowerProgram implements C9: it lowers every checked function, method and
// associated function in prog into a MirModule (spec.md §3.7, §4.8).
// Callers must only pass a Program that has already been through C3-C8
// without diagnostics — lowering does not itself validate anything the
// checker was responsible for.
func LowerProgram(prog *hir.Program, table *symbols.Table) *MirModule {
	lm := &lowerModule{
		in:         prog.Types,
		table:      table,
		mod:        &MirModule{},
		funcRefs:   make(map[*hir.Function]FunctionRef),
		methodRefs: make(map[*hir.Method]FunctionRef),
		funcImpl:   make(map[*hir.Function]*MirFunction),
		methodImpl: make(map[*hir.Method]*MirFunction),
	}

	for _, fn := range prog.Functions {
		lm.declareFunction(fn)
	}
	for _, impl := range prog.Impls {
		for _, fn := range impl.Funcs {
			lm.declareFunction(fn)
		}
		for _, m := range impl.Methods {
			lm.declareMethod(m, impl)
		}
	}

	for _, fn := range prog.Functions {
		lm.lowerFunctionBody(fn)
	}
	for _, impl := range prog.Impls {
		for _, fn := range impl.Funcs {
			lm.lowerFunctionBody(fn)
		}
		for _, m := range impl.Methods {
			lm.lowerMethodBody(m)
		}
	}

	return lm.mod
}

func paramTypes(params []*hir.Local) []types.TypeID {
	out := make([]types.TypeID, len(params))
	for i, p := range params {
		out[i] = p.Type.Resolved
	}
	return out
}

func (lm *lowerModule) declareFunction(fn *hir.Function) {
	if fn.IsExternal {
		sig := buildSig(lm.in, paramTypes(fn.Params), fn.ReturnType.Resolved)
		ext := &ExternalFunction{Name: fn.Name, Sig: sig}
		lm.mod.ExternalFunctions = append(lm.mod.ExternalFunctions, ext)
		lm.funcRefs[fn] = externalRef(fn.Name)
		return
	}
	id := FuncID(len(lm.mod.Functions))
	mf := newMirFunction(id, fn.Name)
	mf.Sig = buildSig(lm.in, paramTypes(fn.Params), fn.ReturnType.Resolved)
	lm.mod.Functions = append(lm.mod.Functions, mf)
	lm.funcRefs[fn] = internalRef(id)
	lm.funcImpl[fn] = mf
}

// methodName builds the "TypeName::method" label the emitter/printer uses;
// it is purely diagnostic, never a lookup key.
func (lm *lowerModule) methodName(m *hir.Method) string {
	t, ok := lm.in.Lookup(m.ForType)
	if !ok || t.Name == "" {
		return m.Name
	}
	return t.Name + "::" + m.Name
}

func (lm *lowerModule) declareMethod(m *hir.Method, impl *hir.Impl) {
	id := FuncID(len(lm.mod.Functions))
	mf := newMirFunction(id, lm.methodName(m))
	params := paramTypes(m.Params)
	if m.SelfRef {
		selfTy := lm.in.Reference(m.ForType, m.SelfMut)
		params = append([]types.TypeID{selfTy}, params...)
	} else {
		params = append([]types.TypeID{m.ForType}, params...)
	}
	mf.Sig = buildSig(lm.in, params, m.ReturnType.Resolved)
	lm.mod.Functions = append(lm.mod.Functions, mf)
	lm.methodRefs[m] = internalRef(id)
	lm.methodImpl[m] = mf
}
