// Package hir implements the High-level Intermediate Representation: a
// desugared, semantically-annotated tree built from the AST by
// AstToHirConverter (C2) and then filled in-place by the name resolver,
// semantic context and expression checker (C3-C8).
//
// Cross-references between HIR nodes (variable->local, break->loop,
// return->function, method-call->method, ...) are ordinary Go pointers.
// Go's garbage collector keeps the referent alive for as long as the
// Program that owns it is reachable, so a pointer is a stable,
// non-owning reference with no arena bookkeeping required — the simplest
// of the representations spec.md §9 allows for this invariant.
package hir

import (
	"corec/internal/ast"
	"corec/internal/types"
)

// TypeAnnotation is a type slot that starts as an unresolved syntactic type
// node and is rewritten in place to a resolved TypeID by C4's type_query.
type TypeAnnotation struct {
	Syntax   ast.TypeExpr // nil once Resolved is set, or always nil for synthetic annotations
	Resolved types.TypeID
}

// IsResolved reports whether type_query has already run on this slot.
func (a *TypeAnnotation) IsResolved() bool { return a.Resolved != types.NoTypeID }

// NewAnnotation wraps a syntactic type node awaiting resolution.
func NewAnnotation(syntax ast.TypeExpr) *TypeAnnotation {
	return &TypeAnnotation{Syntax: syntax}
}

// ResolvedAnnotation wraps an already-known TypeID (used for synthesized
// nodes, e.g. temp-ref desugaring, that never had surface syntax).
func ResolvedAnnotation(id types.TypeID) *TypeAnnotation {
	return &TypeAnnotation{Resolved: id}
}
