package symbols

import (
	"corec/internal/diag"
	"corec/internal/hir"
	"corec/internal/source"
	"corec/internal/types"
)

// Resolver runs C3 over one hir.Program.
type Resolver struct {
	prog  *hir.Program
	bag   *diag.Bag
	table *Table

	scope      *scope
	selfType   types.TypeID // current impl's ForType, NoTypeID outside one
	selfName   string       // "Self" substitutes to this name inside an impl
	returnTo   hir.ReturnTarget
	loopStack  []hir.LoopTarget
}

// Resolve hoists every declaration in prog, links impls to their target
// types, and resolves every name reference in every function/method/const
// body. It returns the symbol table later passes query.
func Resolve(prog *hir.Program, bag *diag.Bag) *Table {
	r := &Resolver{prog: prog, bag: bag, table: newTable(), selfType: types.NoTypeID}
	registerBuiltinFuncs(r.table, prog.Types)
	r.hoistTypes()
	r.hoistValues()
	r.linkImpls()
	r.resolveConsts(prog.Consts)
	for _, fn := range prog.Functions {
		r.resolveFunction(fn)
	}
	for _, impl := range prog.Impls {
		r.selfType = impl.ForType
		r.selfName = structOrEnumName(r.table, impl.ForType)
		r.resolveConsts(impl.Consts)
		for _, fn := range impl.Funcs {
			r.resolveFunction(fn)
		}
		for _, m := range impl.Methods {
			r.resolveMethod(m)
		}
	}
	r.selfType = types.NoTypeID
	return r.table
}

func structOrEnumName(t *Table, id types.TypeID) string {
	if sd, ok := t.StructDefs[id]; ok {
		return sd.Name
	}
	if ed, ok := t.EnumDefs[id]; ok {
		return ed.Name
	}
	return ""
}

// hoistTypes declares every struct/enum name up front (two phases, so
// field types may forward-reference a struct declared later in the file)
// then fills in field/variant layout.
func (r *Resolver) hoistTypes() {
	for _, s := range r.prog.Structs {
		s.Type = r.prog.Types.DeclareStruct(s.Name)
		r.table.Types[s.Name] = s.Type
		r.table.StructDefs[s.Type] = s
	}
	for _, e := range r.prog.Enums {
		e.Type = r.prog.Types.DeclareEnum(e.Name, e.Variants)
		r.table.Types[e.Name] = e.Type
		r.table.EnumDefs[e.Type] = e
	}
	for _, s := range r.prog.Structs {
		fields := make([]types.FieldInfo, 0, len(s.FieldsSyntax))
		for _, f := range s.FieldsSyntax {
			ft := r.resolveNamedTypeExpr(f.Type)
			fields = append(fields, types.FieldInfo{Name: f.Name, Type: ft})
		}
		r.prog.Types.SetStructFields(s.Type, fields)
	}
}

// hoistValues registers every top-level function/const/trait name. Two
// items of the same name at file scope is a hard error (spec.md §4.2's
// "duplicate items within one scope"), checked here against a single
// seen-names set shared across functions, consts and traits since they
// all occupy the same top-level item namespace.
func (r *Resolver) hoistValues() {
	seen := make(map[string]source.Span)
	declare := func(name string, span source.Span) bool {
		if prev, ok := seen[name]; ok {
			r.bag.Add(diag.New(diag.CodeResolution, span, "duplicate item %q", name).
				WithNote(prev, "previous definition of %q here", name))
			return false
		}
		seen[name] = span
		return true
	}
	for _, fn := range r.prog.Functions {
		declare(fn.Name, fn.Body.Span)
		r.table.Funcs[fn.Name] = fn
	}
	for _, c := range r.prog.Consts {
		declare(c.Name, c.Value.Span())
		r.table.Consts[c.Name] = c
	}
	for _, t := range r.prog.Traits {
		declare(t.Name, source.Span{})
		r.table.Traits[t.Name] = t
	}
}

func (r *Resolver) linkImpls() {
	for _, impl := range r.prog.Impls {
		impl.ForType = r.resolveNamedTypeExpr(impl.ForTypeSyntax)
		if impl.TraitName != "" {
			impl.Trait = r.table.Traits[impl.TraitName]
			if impl.Trait == nil {
				r.bag.Add(diag.New(diag.CodeResolution, impl.Span, "unknown trait %q", impl.TraitName))
			}
		}
		entry := r.table.implEntry(impl.ForType)
		for _, fn := range impl.Funcs {
			entry.Funcs[fn.Name] = fn
		}
		for _, c := range impl.Consts {
			entry.Consts[c.Name] = c
		}
		for _, m := range impl.Methods {
			m.ForType = impl.ForType
			entry.Methods[m.Name] = m
		}
	}
}
