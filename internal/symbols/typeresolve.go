package symbols

import (
	"corec/internal/ast"
	"corec/internal/diag"
	"corec/internal/hir"
	"corec/internal/types"
)

// resolveNamedTypeExpr interns a syntactic type, substituting "Self" for
// the enclosing impl's target type when one is active.
func (r *Resolver) resolveNamedTypeExpr(t ast.TypeExpr) types.TypeID {
	b := r.prog.Types.Builtins()
	switch n := t.(type) {
	case nil:
		return b.Unit
	case *ast.NamedType:
		if n.Name == "Self" {
			if r.selfType == types.NoTypeID {
				r.bag.Add(diag.New(diag.CodeResolution, n.Span, "Self used outside an impl"))
				return b.Invalid
			}
			return r.selfType
		}
		return r.resolvePrimitiveOrNamed(n)
	case *ast.ReferenceType:
		return r.prog.Types.Reference(r.resolveNamedTypeExpr(n.Referent), n.Mutable)
	case *ast.ArrayType:
		size, ok := evalConstArraySize(n.Size)
		if !ok {
			r.bag.Add(diag.New(diag.CodeResolution, n.Span, "array size must be a constant integer"))
		}
		return r.prog.Types.Array(r.resolveNamedTypeExpr(n.Element), size)
	}
	return b.Invalid
}

// ResolveWithSelf resolves a syntactic type expression against table/in,
// substituting Self with selfType/selfName. C6 (the trait-impl checker)
// uses this to re-resolve a trait method signature's parameter/return
// types once per implementing type: a trait signature mentioning Self
// must resolve to a different TypeID for every impl, so unlike an
// ordinary TypeAnnotation it is never cached in place by C3 (see
// convertSig in internal/hir's converter, which leaves every trait
// signature's annotations unresolved on purpose).
func ResolveWithSelf(table *Table, in *types.Interner, bag *diag.Bag, selfType types.TypeID, selfName string, expr ast.TypeExpr) types.TypeID {
	r := &Resolver{prog: &hir.Program{Types: in}, bag: bag, table: table, selfType: selfType, selfName: selfName}
	return r.resolveNamedTypeExpr(expr)
}

// resolveAnnotation fills ann.Resolved from ann.Syntax using the Self
// context active at the call site. Safe to call more than once; a second
// call is a no-op once Resolved is set.
func (r *Resolver) resolveAnnotation(ann *hir.TypeAnnotation) {
	if ann == nil || ann.IsResolved() {
		return
	}
	ann.Resolved = r.resolveNamedTypeExpr(ann.Syntax)
}

func (r *Resolver) resolvePrimitiveOrNamed(n *ast.NamedType) types.TypeID {
	b := r.prog.Types.Builtins()
	switch n.Name {
	case "i32":
		return b.I32
	case "u32":
		return b.U32
	case "isize":
		return b.Isize
	case "usize":
		return b.Usize
	case "bool":
		return b.Bool
	case "char":
		return b.Char
	case "string", "String", "str":
		return b.String
	case "_":
		return b.Underscore
	}
	if id, ok := r.table.Types[n.Name]; ok {
		return id
	}
	r.bag.Add(diag.New(diag.CodeResolution, n.Span, "unknown type %q", n.Name))
	return b.Invalid
}

// evalConstArraySize folds the tiny subset of constant expressions array
// sizes are allowed to use at this stage: integer literals only. A negated
// literal or any other expression returns false, and the caller reports it.
func evalConstArraySize(e ast.Expr) (uint32, bool) {
	switch n := e.(type) {
	case *ast.IntLiteralExpr:
		if n.IsNegative {
			return 0, false
		}
		return uint32(n.Value), true
	case *ast.UnaryExpr:
		if n.Op == ast.UnaryNeg {
			return 0, false
		}
	}
	return 0, false
}
