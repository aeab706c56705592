package symbols

import (
	"corec/internal/diag"
	"corec/internal/hir"
	"corec/internal/source"
)

// resolveExpr rewrites UnresolvedIdent/TypeStatic nodes in place and
// recurses into every child slot, reassigning the (possibly new) child
// back into its parent field.
func (r *Resolver) resolveExpr(e hir.Expr) hir.Expr {
	switch n := e.(type) {
	case *hir.UnresolvedIdent:
		return r.resolveIdent(n)
	case *hir.TypeStatic:
		return r.resolveTypeStatic(n)
	case *hir.Unary:
		n.Operand = r.resolveExpr(n.Operand)
		return n
	case *hir.Binary:
		n.Lhs = r.resolveExpr(n.Lhs)
		n.Rhs = r.resolveExpr(n.Rhs)
		return n
	case *hir.Assign:
		n.Lhs = r.resolveExpr(n.Lhs)
		n.Rhs = r.resolveExpr(n.Rhs)
		return n
	case *hir.Cast:
		n.Value = r.resolveExpr(n.Value)
		r.resolveAnnotation(n.Target)
		return n
	case *hir.Deref:
		n.Operand = r.resolveExpr(n.Operand)
		return n
	case *hir.Field:
		n.Base = r.resolveExpr(n.Base)
		return n
	case *hir.Index:
		n.Base = r.resolveExpr(n.Base)
		n.Index = r.resolveExpr(n.Index)
		return n
	case *hir.Call:
		n.Callee = r.resolveExpr(n.Callee)
		for i := range n.Args {
			n.Args[i] = r.resolveExpr(n.Args[i])
		}
		return n
	case *hir.MethodCall:
		n.Receiver = r.resolveExpr(n.Receiver)
		for i := range n.Args {
			n.Args[i] = r.resolveExpr(n.Args[i])
		}
		return n
	case *hir.StructLiteral:
		r.resolveStructLiteral(n)
		for i := range n.Fields {
			n.Fields[i].Value = r.resolveExpr(n.Fields[i].Value)
		}
		return n
	case *hir.ArrayLiteral:
		for i := range n.Elements {
			n.Elements[i] = r.resolveExpr(n.Elements[i])
		}
		return n
	case *hir.ArrayRepeat:
		n.Value = r.resolveExpr(n.Value)
		n.Size = r.resolveExpr(n.Size)
		return n
	case *hir.If:
		n.Cond = r.resolveExpr(n.Cond)
		r.resolveBlock(n.Then)
		if n.Else != nil {
			n.Else = r.resolveExpr(n.Else)
		}
		return n
	case *hir.Loop:
		r.loopStack = append(r.loopStack, n)
		r.resolveBlock(n.Body)
		r.loopStack = r.loopStack[:len(r.loopStack)-1]
		return n
	case *hir.While:
		n.Cond = r.resolveExpr(n.Cond)
		r.loopStack = append(r.loopStack, n)
		r.resolveBlock(n.Body)
		r.loopStack = r.loopStack[:len(r.loopStack)-1]
		return n
	case *hir.Break:
		n.Target = r.currentLoop(n.Span())
		if n.Value != nil {
			n.Value = r.resolveExpr(n.Value)
		}
		return n
	case *hir.Continue:
		n.Target = r.currentLoop(n.Span())
		return n
	case *hir.Return:
		if r.returnTo == nil {
			r.bag.Add(diag.New(diag.CodeControlFlow, n.Span(), "return outside a function"))
		}
		n.Target = r.returnTo
		if n.Value != nil {
			n.Value = r.resolveExpr(n.Value)
		}
		return n
	case *hir.BlockExpr:
		r.resolveBlock(n.Block)
		return n
	default:
		// Literals and already-resolved reference nodes have no children
		// to rewrite.
		return e
	}
}

func (r *Resolver) currentLoop(span source.Span) hir.LoopTarget {
	if len(r.loopStack) == 0 {
		r.bag.Add(diag.New(diag.CodeControlFlow, span, "break/continue outside a loop"))
		return nil
	}
	return r.loopStack[len(r.loopStack)-1]
}

func (r *Resolver) resolveIdent(n *hir.UnresolvedIdent) hir.Expr {
	if local, ok := r.scope.lookup(n.Name); ok {
		return hir.NewVariable(n.Span(), local)
	}
	if c, ok := r.table.Consts[n.Name]; ok {
		return hir.NewConstUse(n.Span(), c)
	}
	if fn, ok := r.table.Funcs[n.Name]; ok {
		return hir.NewFuncUse(n.Span(), fn)
	}
	r.bag.Add(diag.New(diag.CodeResolution, n.Span(), "unresolved identifier %q", n.Name))
	return n
}

func (r *Resolver) resolveTypeStatic(n *hir.TypeStatic) hir.Expr {
	typeName := n.TypeName
	if typeName == "Self" {
		typeName = r.selfName
	}
	id, ok := r.table.Types[typeName]
	if !ok {
		r.bag.Add(diag.New(diag.CodeResolution, n.Span(), "unknown type %q", typeName))
		return n
	}
	if ed, ok := r.table.EnumDefs[id]; ok {
		for i, v := range ed.Variants {
			if v == n.Member {
				return hir.NewEnumVariant(n.Span(), ed, i, v)
			}
		}
		r.bag.Add(diag.New(diag.CodeResolution, n.Span(), "enum %q has no variant %q", typeName, n.Member))
		return n
	}
	if sd, ok := r.table.StructDefs[id]; ok {
		entry := r.table.implEntry(id)
		if c, ok := entry.Consts[n.Member]; ok {
			return hir.NewStructConst(n.Span(), sd, c)
		}
		if fn, ok := entry.Funcs[n.Member]; ok {
			return hir.NewStructStatic(n.Span(), sd, fn)
		}
		r.bag.Add(diag.New(diag.CodeResolution, n.Span(), "%q has no associated item %q", typeName, n.Member))
		return n
	}
	r.bag.Add(diag.New(diag.CodeResolution, n.Span(), "%q is not a struct or enum", typeName))
	return n
}

func (r *Resolver) resolveStructLiteral(n *hir.StructLiteral) {
	id, ok := r.table.Types[n.TypeName]
	if !ok {
		r.bag.Add(diag.New(diag.CodeResolution, n.Span(), "unknown type %q", n.TypeName))
		return
	}
	sd, ok := r.table.StructDefs[id]
	if !ok {
		r.bag.Add(diag.New(diag.CodeResolution, n.Span(), "%q is not a struct", n.TypeName))
		return
	}
	n.Def = sd
	info, _ := r.prog.Types.StructInfo(id)
	for i := range n.Fields {
		for fi, f := range info.Fields {
			if f.Name == n.Fields[i].Name {
				n.Fields[i].Index = fi
				break
			}
		}
	}
}
