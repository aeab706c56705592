package parser

import (
	"corec/internal/ast"
	"corec/internal/source"
	"corec/internal/token"
)

func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssign()
}

var assignOps = map[token.Kind]ast.AssignOp{
	token.Eq:        ast.AssignPlain,
	token.PlusEq:    ast.AssignAdd,
	token.MinusEq:   ast.AssignSub,
	token.StarEq:    ast.AssignMul,
	token.SlashEq:   ast.AssignDiv,
	token.PercentEq: ast.AssignRem,
	token.AmpEq:     ast.AssignBitAnd,
	token.PipeEq:    ast.AssignBitOr,
	token.CaretEq:   ast.AssignBitXor,
	token.ShlEq:     ast.AssignShl,
	token.ShrEq:     ast.AssignShr,
}

func (p *Parser) parseAssign() ast.Expr {
	start := p.cur().Span
	lhs := p.parseLogicalOr()
	if op, ok := assignOps[p.cur().Kind]; ok {
		p.advance()
		rhs := p.parseAssign() // right-associative
		return &ast.AssignExpr{Span: p.span(start), Op: op, Lhs: lhs, Rhs: rhs}
	}
	return lhs
}

type binLevel struct {
	kinds map[token.Kind]ast.BinaryOp
	next  func(*Parser) ast.Expr
}

func (p *Parser) parseLogicalOr() ast.Expr {
	return p.parseBinaryLevel(p.parseLogicalAnd, map[token.Kind]ast.BinaryOp{token.PipePipe: ast.OpOr})
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	return p.parseBinaryLevel(p.parseComparison, map[token.Kind]ast.BinaryOp{token.AmpAmp: ast.OpAnd})
}

func (p *Parser) parseComparison() ast.Expr {
	return p.parseBinaryLevel(p.parseBitOr, map[token.Kind]ast.BinaryOp{
		token.EqEq: ast.OpEq, token.BangEq: ast.OpNe,
		token.Lt: ast.OpLt, token.Le: ast.OpLe, token.Gt: ast.OpGt, token.Ge: ast.OpGe,
	})
}

func (p *Parser) parseBitOr() ast.Expr {
	return p.parseBinaryLevel(p.parseBitXor, map[token.Kind]ast.BinaryOp{token.Pipe: ast.OpBitOr})
}

func (p *Parser) parseBitXor() ast.Expr {
	return p.parseBinaryLevel(p.parseBitAnd, map[token.Kind]ast.BinaryOp{token.Caret: ast.OpBitXor})
}

func (p *Parser) parseBitAnd() ast.Expr {
	return p.parseBinaryLevel(p.parseShift, map[token.Kind]ast.BinaryOp{token.Amp: ast.OpBitAnd})
}

func (p *Parser) parseShift() ast.Expr {
	return p.parseBinaryLevel(p.parseAdditive, map[token.Kind]ast.BinaryOp{token.Shl: ast.OpShl, token.Shr: ast.OpShr})
}

func (p *Parser) parseAdditive() ast.Expr {
	return p.parseBinaryLevel(p.parseMultiplicative, map[token.Kind]ast.BinaryOp{token.Plus: ast.OpAdd, token.Minus: ast.OpSub})
}

func (p *Parser) parseMultiplicative() ast.Expr {
	return p.parseBinaryLevel(p.parseCast, map[token.Kind]ast.BinaryOp{
		token.Star: ast.OpMul, token.Slash: ast.OpDiv, token.Percent: ast.OpRem,
	})
}

func (p *Parser) parseBinaryLevel(next func() ast.Expr, ops map[token.Kind]ast.BinaryOp) ast.Expr {
	start := p.cur().Span
	lhs := next()
	for {
		op, ok := ops[p.cur().Kind]
		if !ok {
			return lhs
		}
		p.advance()
		rhs := next()
		lhs = &ast.BinaryExpr{Span: p.span(start), Op: op, Lhs: lhs, Rhs: rhs}
	}
}

func (p *Parser) parseCast() ast.Expr {
	start := p.cur().Span
	e := p.parseUnary()
	for p.at(token.KwAs) {
		p.advance()
		ty := p.parseType()
		e = &ast.CastExpr{Span: p.span(start), Value: e, Target: ty}
	}
	return e
}

func (p *Parser) parseUnary() ast.Expr {
	start := p.cur().Span
	switch p.cur().Kind {
	case token.Minus:
		p.advance()
		return &ast.UnaryExpr{Span: p.span(start), Op: ast.UnaryNeg, Rhs: p.parseUnary()}
	case token.Bang:
		p.advance()
		return &ast.UnaryExpr{Span: p.span(start), Op: ast.UnaryNot, Rhs: p.parseUnary()}
	case token.Star:
		p.advance()
		return &ast.UnaryExpr{Span: p.span(start), Op: ast.UnaryDeref, Rhs: p.parseUnary()}
	case token.Amp:
		p.advance()
		if p.at(token.KwMut) {
			p.advance()
			return &ast.UnaryExpr{Span: p.span(start), Op: ast.UnaryRefMut, Rhs: p.parseUnary()}
		}
		return &ast.UnaryExpr{Span: p.span(start), Op: ast.UnaryRef, Rhs: p.parseUnary()}
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.Expr {
	start := p.cur().Span
	e := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.FatDot:
			p.advance()
			name := p.expect(token.Ident)
			if p.at(token.LParen) {
				args := p.parseArgs()
				e = &ast.MethodCallExpr{Span: p.span(start), Receiver: e, Method: name.Text, Args: args}
			} else {
				e = &ast.FieldExpr{Span: p.span(start), Base: e, Field: name.Text}
			}
		case token.LBracket:
			p.advance()
			idx := p.parseExpr()
			p.expect(token.RBracket)
			e = &ast.IndexExpr{Span: p.span(start), Base: e, Index: idx}
		case token.LParen:
			args := p.parseArgs()
			e = &ast.CallExpr{Span: p.span(start), Callee: e, Args: args}
		default:
			return e
		}
	}
}

func (p *Parser) parseArgs() []ast.Expr {
	p.expect(token.LParen)
	var args []ast.Expr
	for !p.at(token.RParen) && !p.at(token.EOF) {
		args = append(args, p.parseExpr())
		if !p.at(token.RParen) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RParen)
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	start := p.cur().Span
	switch p.cur().Kind {
	case token.IntLiteral:
		t := p.advance()
		suffix := ast.SuffixNone
		switch t.Suffix {
		case 1:
			suffix = ast.SuffixI32
		case 2:
			suffix = ast.SuffixU32
		case 3:
			suffix = ast.SuffixIsize
		case 4:
			suffix = ast.SuffixUsize
		}
		return &ast.IntLiteralExpr{Span: t.Span, Value: t.IntVal, Suffix: suffix}
	case token.KwTrue:
		p.advance()
		return &ast.BoolLiteralExpr{Span: p.span(start), Value: true}
	case token.KwFalse:
		p.advance()
		return &ast.BoolLiteralExpr{Span: p.span(start), Value: false}
	case token.CharLiteral:
		t := p.advance()
		var v byte
		if len(t.StrVal) > 0 {
			v = t.StrVal[0]
		}
		return &ast.CharLiteralExpr{Span: t.Span, Value: v}
	case token.StringLiteral:
		t := p.advance()
		return &ast.StringLiteralExpr{Span: t.Span, Value: t.StrVal}
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen)
		return &ast.GroupExpr{Span: p.span(start), Inner: inner}
	case token.LBracket:
		p.advance()
		if p.at(token.RBracket) {
			p.advance()
			return &ast.ArrayLiteralExpr{Span: p.span(start)}
		}
		first := p.parseExpr()
		if p.at(token.Semicolon) {
			p.advance()
			size := p.parseExpr()
			p.expect(token.RBracket)
			return &ast.ArrayRepeatExpr{Span: p.span(start), Value: first, Size: size}
		}
		elems := []ast.Expr{first}
		for p.at(token.Comma) {
			p.advance()
			if p.at(token.RBracket) {
				break
			}
			elems = append(elems, p.parseExpr())
		}
		p.expect(token.RBracket)
		return &ast.ArrayLiteralExpr{Span: p.span(start), Elements: elems}
	case token.KwIf:
		return p.parseIf()
	case token.KwLoop:
		p.advance()
		body := p.parseBlock()
		return &ast.LoopExpr{Span: p.span(start), Body: body}
	case token.KwWhile:
		p.advance()
		cond := p.parseCondExpr()
		body := p.parseBlock()
		return &ast.WhileExpr{Span: p.span(start), Cond: cond, Body: body}
	case token.KwBreak:
		p.advance()
		var val ast.Expr
		if !p.at(token.Semicolon) && !p.at(token.RBrace) {
			val = p.parseExpr()
		}
		return &ast.BreakExpr{Span: p.span(start), Value: val}
	case token.KwContinue:
		p.advance()
		return &ast.ContinueExpr{Span: p.span(start)}
	case token.KwReturn:
		p.advance()
		var val ast.Expr
		if !p.at(token.Semicolon) && !p.at(token.RBrace) {
			val = p.parseExpr()
		}
		return &ast.ReturnExpr{Span: p.span(start), Value: val}
	case token.LBrace:
		b := p.parseBlock()
		return &ast.BlockExpr{Span: b.Span, Block: b}
	case token.Ident, token.KwSelf, token.KwSelfType:
		return p.parsePathOrStruct()
	default:
		p.errorf(p.cur().Span, "expected expression, found %s", p.cur().Kind)
		p.advance()
		return &ast.IntLiteralExpr{Span: start}
	}
}

func (p *Parser) parsePathOrStruct() ast.Expr {
	start := p.cur().Span
	var segs []string
	switch {
	case p.at(token.KwSelf):
		p.advance()
		segs = append(segs, "self")
	case p.at(token.KwSelfType):
		p.advance()
		segs = append(segs, "Self")
	default:
		segs = append(segs, p.expect(token.Ident).Text)
	}
	for p.at(token.ColonColon) {
		p.advance()
		segs = append(segs, p.expect(token.Ident).Text)
	}
	path := &ast.PathExpr{Span: p.span(start), Segments: segs}
	if p.at(token.LBrace) && len(segs) == 1 && !p.noStructLiteral {
		return p.parseStructLiteral(start, segs[0])
	}
	return path
}

func (p *Parser) parseStructLiteral(start source.Span, typeName string) ast.Expr {
	p.expect(token.LBrace)
	var fields []ast.StructLiteralField
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		name := p.expect(token.Ident)
		p.expect(token.Colon)
		val := p.parseExpr()
		fields = append(fields, ast.StructLiteralField{Name: name.Text, Value: val})
		if !p.at(token.RBrace) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RBrace)
	return &ast.StructLiteralExpr{Span: p.span(start), Type: typeName, Fields: fields}
}

// parseCondExpr parses a condition with struct-literal syntax suppressed, so
// `if x { ... }` parses `x` as a condition rather than `x {}` as a struct
// literal whose body swallows the `if`'s block.
func (p *Parser) parseCondExpr() ast.Expr {
	saved := p.noStructLiteral
	p.noStructLiteral = true
	e := p.parseExpr()
	p.noStructLiteral = saved
	return e
}
