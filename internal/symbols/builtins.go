package symbols

import (
	"corec/internal/hir"
	"corec/internal/types"
)

// registerBuiltinFuncs installs the predefined free functions spec.md
// §4.7 requires outside any user impl: `exit(code: i32) -> !` is the only
// one the core language defines, and it both type-checks as an ordinary
// FuncUse-callee call and lowers to a call against an ExternalFunction
// (spec.md §4.8.4, §8 scenario 1).
func registerBuiltinFuncs(table *Table, in *types.Interner) {
	exitFn := &hir.Function{
		Name:       "exit",
		IsExternal: true,
		Params: []*hir.Local{
			{Name: "code", Type: hir.ResolvedAnnotation(in.Builtins().I32)},
		},
		ReturnType: hir.ResolvedAnnotation(in.Builtins().Never),
	}
	table.Funcs["exit"] = exitFn
	table.Externals = append(table.Externals, exitFn)
}

// LookupBuiltinMethod recognises the predefined methods spec.md §3.6 grants
// every array and primitive type without requiring a user impl block:
// `arr.len()`, and `.to_string()` on every integer/bool/char primitive,
// plus `.len()` on string. The expression checker (C5) calls this once it
// knows the receiver's type, before it consults the user impl table.
func LookupBuiltinMethod(in *types.Interner, recv types.TypeID, name string) (string, bool) {
	t, ok := in.Lookup(recv)
	if !ok {
		return "", false
	}
	switch t.Kind {
	case types.KindArray:
		if name == "len" {
			return "len", true
		}
	case types.KindPrimitive:
		switch name {
		case "to_string":
			return "to_string", true
		case "len":
			if t.Prim == types.PrimString {
				return "len", true
			}
		}
	}
	return "", false
}
