// Package symbols implements C3: name resolution over a hir.Program.
// It hoists every top-level declaration into a global Table, builds the
// per-type impl table spec.md §3.6 describes, then walks every function
// and method body with a block-scoped stack of locals, rewriting
// hir.UnresolvedIdent and hir.TypeStatic nodes in place into the resolved
// reference kind (Variable, ConstUse, FuncUse, EnumVariant, StructConst,
// StructStatic).
package symbols

import (
	"corec/internal/hir"
	"corec/internal/types"
)

// ImplEntry is the per-type method/associated-item table spec.md §3.6
// describes: every function, constant and method declared across all of a
// type's impl blocks, flattened into one lookup surface.
type ImplEntry struct {
	Funcs   map[string]*hir.Function
	Consts  map[string]*hir.ConstDef
	Methods map[string]*hir.Method
}

func newImplEntry() *ImplEntry {
	return &ImplEntry{
		Funcs:   make(map[string]*hir.Function),
		Consts:  make(map[string]*hir.ConstDef),
		Methods: make(map[string]*hir.Method),
	}
}

// Table is the whole-program symbol table C3 produces and C4-C9 consume.
type Table struct {
	Types      map[string]types.TypeID
	StructDefs map[types.TypeID]*hir.StructDef
	EnumDefs   map[types.TypeID]*hir.EnumDef
	Funcs      map[string]*hir.Function
	Consts     map[string]*hir.ConstDef
	Traits     map[string]*hir.Trait
	Impls      map[types.TypeID]*ImplEntry

	// Externals lists the predefined functions with no HIR body (currently
	// just `exit`, spec.md §4.7): they live in Funcs for call resolution
	// exactly like a user function, but are kept here as well so the MIR
	// lowerer can list them as ExternalFunction declarations without
	// walking every hir.Program.Function looking for a nil Body.
	Externals []*hir.Function
}

func newTable() *Table {
	return &Table{
		Types:      make(map[string]types.TypeID),
		StructDefs: make(map[types.TypeID]*hir.StructDef),
		EnumDefs:   make(map[types.TypeID]*hir.EnumDef),
		Funcs:      make(map[string]*hir.Function),
		Consts:     make(map[string]*hir.ConstDef),
		Traits:     make(map[string]*hir.Trait),
		Impls:      make(map[types.TypeID]*ImplEntry),
	}
}

func (t *Table) implEntry(id types.TypeID) *ImplEntry {
	e, ok := t.Impls[id]
	if !ok {
		e = newImplEntry()
		t.Impls[id] = e
	}
	return e
}
