package hir

import (
	"corec/internal/ast"
	"corec/internal/diag"
)

func (c *Converter) convertExpr(e ast.Expr) Expr {
	switch n := e.(type) {
	case *ast.IntLiteralExpr:
		return NewIntLiteral(n.Span, n.Value, n.IsNegative, n.Suffix)
	case *ast.BoolLiteralExpr:
		return &BoolLiteral{ExprBase: base(n.Span), Value: n.Value}
	case *ast.CharLiteralExpr:
		return &CharLiteral{ExprBase: base(n.Span), Value: n.Value}
	case *ast.StringLiteralExpr:
		return &StringLiteral{ExprBase: base(n.Span), Value: n.Value}
	case *ast.PathExpr:
		return c.convertPath(n)
	case *ast.GroupExpr:
		// Parentheses carry no HIR representation; only their precedence
		// effect matters, and that was already consumed by the parser.
		return c.convertExpr(n.Inner)
	case *ast.UnaryExpr:
		return c.convertUnary(n)
	case *ast.BinaryExpr:
		return &Binary{ExprBase: base(n.Span), Op: n.Op, Lhs: c.convertExpr(n.Lhs), Rhs: c.convertExpr(n.Rhs)}
	case *ast.AssignExpr:
		return c.convertAssign(n)
	case *ast.CastExpr:
		return &Cast{ExprBase: base(n.Span), Value: c.convertExpr(n.Value), Target: NewAnnotation(n.Target)}
	case *ast.FieldExpr:
		return &Field{ExprBase: base(n.Span), Base: c.convertExpr(n.Base), Name: n.Field, Index: -1}
	case *ast.IndexExpr:
		return &Index{ExprBase: base(n.Span), Base: c.convertExpr(n.Base), Index: c.convertExpr(n.Index)}
	case *ast.CallExpr:
		return c.convertCall(n)
	case *ast.MethodCallExpr:
		mc := &MethodCall{ExprBase: base(n.Span), Receiver: c.convertExpr(n.Receiver), Name: n.Method}
		for _, a := range n.Args {
			mc.Args = append(mc.Args, c.convertExpr(a))
		}
		return mc
	case *ast.StructLiteralExpr:
		sl := &StructLiteral{ExprBase: base(n.Span), TypeName: n.Type}
		for _, f := range n.Fields {
			sl.Fields = append(sl.Fields, StructLiteralField{Name: f.Name, Index: -1, Value: c.convertExpr(f.Value)})
		}
		return sl
	case *ast.ArrayLiteralExpr:
		al := &ArrayLiteral{ExprBase: base(n.Span)}
		for _, el := range n.Elements {
			al.Elements = append(al.Elements, c.convertExpr(el))
		}
		return al
	case *ast.ArrayRepeatExpr:
		return &ArrayRepeat{ExprBase: base(n.Span), Value: c.convertExpr(n.Value), Size: c.convertExpr(n.Size)}
	case *ast.IfExpr:
		f := &If{ExprBase: base(n.Span), Cond: c.convertExpr(n.Cond), Then: c.convertBlock(n.Then)}
		if n.Else != nil {
			f.Else = c.convertExpr(n.Else)
		}
		return f
	case *ast.LoopExpr:
		return &Loop{ExprBase: base(n.Span), Body: c.convertBlock(n.Body)}
	case *ast.WhileExpr:
		return &While{ExprBase: base(n.Span), Cond: c.convertExpr(n.Cond), Body: c.convertBlock(n.Body)}
	case *ast.BreakExpr:
		br := &Break{ExprBase: base(n.Span)}
		if n.Value != nil {
			br.Value = c.convertExpr(n.Value)
		}
		return br
	case *ast.ContinueExpr:
		return &Continue{ExprBase: base(n.Span)}
	case *ast.ReturnExpr:
		r := &Return{ExprBase: base(n.Span)}
		if n.Value != nil {
			r.Value = c.convertExpr(n.Value)
		}
		return r
	case *ast.BlockExpr:
		return &BlockExpr{ExprBase: base(n.Span), Block: c.convertBlock(n.Block)}
	}
	return nil
}

// convertPath turns a `::`-path into the matching pre-resolution node. A
// single segment is a bare identifier; two segments are a `Type::member`
// reference; anything longer is rejected here since the language has no
// deeper namespacing.
func (c *Converter) convertPath(n *ast.PathExpr) Expr {
	switch len(n.Segments) {
	case 1:
		return &UnresolvedIdent{ExprBase: base(n.Span), Name: n.Segments[0]}
	case 2:
		return &TypeStatic{ExprBase: base(n.Span), TypeName: n.Segments[0], Member: n.Segments[1]}
	default:
		c.diag.Add(diag.New(diag.CodeSyntax, n.Span, "path %q has too many segments", n.Segments))
		return &UnresolvedIdent{ExprBase: base(n.Span), Name: n.Segments[len(n.Segments)-1]}
	}
}

// convertUnary folds a literal unary minus directly into the literal's
// sign, and lowers the remaining four unary operators structurally.
func (c *Converter) convertUnary(n *ast.UnaryExpr) Expr {
	if n.Op == ast.UnaryNeg {
		if lit, ok := n.Rhs.(*ast.IntLiteralExpr); ok {
			return NewIntLiteral(n.Span, lit.Value, !lit.IsNegative, lit.Suffix)
		}
	}
	return &Unary{ExprBase: base(n.Span), Op: n.Op, Operand: c.convertExpr(n.Rhs)}
}

// convertAssign desugars `lhs OP= rhs` to `lhs = (lhs OP rhs)`, converting
// the lvalue twice since the rewrite textually duplicates it.
func (c *Converter) convertAssign(n *ast.AssignExpr) Expr {
	if n.Op == ast.AssignPlain {
		return &Assign{ExprBase: base(n.Span), Lhs: c.convertExpr(n.Lhs), Rhs: c.convertExpr(n.Rhs)}
	}
	rhs := &Binary{
		ExprBase: base(n.Span),
		Op:       n.Op.BinaryOpFor(),
		Lhs:      c.convertExpr(n.Lhs),
		Rhs:      c.convertExpr(n.Rhs),
	}
	return &Assign{ExprBase: base(n.Span), Lhs: c.convertExpr(n.Lhs), Rhs: rhs}
}

func (c *Converter) convertCall(n *ast.CallExpr) Expr {
	call := &Call{ExprBase: base(n.Span), Callee: c.convertExpr(n.Callee)}
	for _, a := range n.Args {
		call.Args = append(call.Args, c.convertExpr(a))
	}
	return call
}
