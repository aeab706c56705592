package parser

import (
	"corec/internal/ast"
	"corec/internal/token"
)

func (p *Parser) parseIf() ast.Expr {
	start := p.expect(token.KwIf).Span
	cond := p.parseCondExpr()
	then := p.parseBlock()
	out := &ast.IfExpr{Span: p.span(start), Cond: cond, Then: then}
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			out.Else = p.parseIf()
		} else {
			out.Else = &ast.BlockExpr{Block: p.parseBlock()}
		}
	}
	out.Span = p.span(start)
	return out
}
