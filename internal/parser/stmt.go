package parser

import (
	"corec/internal/ast"
	"corec/internal/token"
)

func (p *Parser) parseBlock() *ast.Block {
	start := p.expect(token.LBrace).Span
	b := &ast.Block{}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.isItemStart() {
			itemSpan := p.cur().Span
			it := p.parseItem()
			if it != nil {
				b.Stmts = append(b.Stmts, &ast.ItemStmt{Span: itemSpan, Item: it})
			}
			continue
		}
		if p.at(token.KwLet) {
			b.Stmts = append(b.Stmts, p.parseLet())
			continue
		}
		exprStart := p.cur().Span
		e := p.parseExpr()
		if p.at(token.Semicolon) {
			p.advance()
			b.Stmts = append(b.Stmts, &ast.ExprStmt{Span: p.span(exprStart), Expr: e})
			continue
		}
		if p.at(token.RBrace) {
			b.Final = e
			break
		}
		// An expression not followed by `;` or `}` that nonetheless has
		// block-like trailing syntax (if/loop/while/block used as a
		// statement) is treated as a statement, matching common surface
		// grammars for control-flow expressions in statement position.
		b.Stmts = append(b.Stmts, &ast.ExprStmt{Span: p.span(exprStart), Expr: e})
	}
	p.expect(token.RBrace)
	b.Span = p.span(start)
	return b
}

func (p *Parser) isItemStart() bool {
	switch p.cur().Kind {
	case token.KwFn, token.KwStruct, token.KwEnum, token.KwTrait, token.KwImpl, token.KwConst:
		return true
	default:
		return false
	}
}

func (p *Parser) parseLet() *ast.LetStmt {
	start := p.expect(token.KwLet).Span
	pat := p.parsePattern()
	var ty ast.TypeExpr
	if p.at(token.Colon) {
		p.advance()
		ty = p.parseType()
	}
	p.expect(token.Eq)
	val := p.parseExpr()
	p.expect(token.Semicolon)
	return &ast.LetStmt{Span: p.span(start), Pattern: pat, Type: ty, Value: val}
}

func (p *Parser) parsePattern() ast.Pattern {
	start := p.cur().Span
	if p.at(token.Amp) {
		p.advance()
		mut := false
		if p.at(token.KwMut) {
			p.advance()
			mut = true
		}
		sub := p.parsePattern()
		return &ast.ReferencePattern{Span: p.span(start), Mutable: mut, Sub: sub}
	}
	if p.cur().Kind == token.Ident && p.cur().Text == "_" {
		p.advance()
		return &ast.WildcardPattern{Span: p.span(start)}
	}
	mut := false
	if p.at(token.KwMut) {
		p.advance()
		mut = true
	}
	name := p.expect(token.Ident)
	return &ast.BindingPattern{Span: p.span(start), Name: name.Text, IsMut: mut}
}
