package parser

import (
	"corec/internal/ast"
	"corec/internal/token"
)

func (p *Parser) parseItem() ast.Item {
	switch p.cur().Kind {
	case token.KwFn:
		return p.parseFn()
	case token.KwStruct:
		return p.parseStruct()
	case token.KwEnum:
		return p.parseEnum()
	case token.KwTrait:
		return p.parseTrait()
	case token.KwImpl:
		return p.parseImpl()
	case token.KwConst:
		return p.parseConst()
	default:
		p.errorf(p.cur().Span, "expected item, found %s", p.cur().Kind)
		return nil
	}
}

func (p *Parser) parseFn() *ast.FnItem {
	start := p.expect(token.KwFn).Span
	name := p.expect(token.Ident)
	p.expect(token.LParen)
	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		params = append(params, p.parseParam())
		if !p.at(token.RParen) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RParen)
	var ret ast.TypeExpr
	if p.at(token.Arrow) {
		p.advance()
		ret = p.parseType()
	}
	body := p.parseBlock()
	return &ast.FnItem{Span: p.span(start), Name: name.Text, NameSpn: name.Span, Params: params, Ret: ret, Body: body}
}

// parseFnSig parses a trait-required signature: `fn name(params) -> ret;`
// with no body.
func (p *Parser) parseFnSig() ast.FnItem {
	start := p.expect(token.KwFn).Span
	name := p.expect(token.Ident)
	p.expect(token.LParen)
	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		params = append(params, p.parseParam())
		if !p.at(token.RParen) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RParen)
	var ret ast.TypeExpr
	if p.at(token.Arrow) {
		p.advance()
		ret = p.parseType()
	}
	p.expect(token.Semicolon)
	return ast.FnItem{Span: p.span(start), Name: name.Text, NameSpn: name.Span, Params: params, Ret: ret}
}

func (p *Parser) parseParam() ast.Param {
	start := p.cur().Span
	if p.at(token.Amp) {
		p.advance()
		mut := false
		if p.at(token.KwMut) {
			p.advance()
			mut = true
		}
		p.expect(token.KwSelf)
		return ast.Param{Span: p.span(start), IsSelf: true, SelfRef: true, SelfMut: mut}
	}
	if p.at(token.KwSelf) {
		p.advance()
		return ast.Param{Span: p.span(start), IsSelf: true}
	}
	name := p.expect(token.Ident)
	p.expect(token.Colon)
	ty := p.parseType()
	return ast.Param{Span: p.span(start), Name: name.Text, Type: ty}
}

func (p *Parser) parseStruct() *ast.StructItem {
	start := p.expect(token.KwStruct).Span
	name := p.expect(token.Ident)
	p.expect(token.LBrace)
	var fields []ast.FieldDecl
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fs := p.cur().Span
		fname := p.expect(token.Ident)
		p.expect(token.Colon)
		ty := p.parseType()
		fields = append(fields, ast.FieldDecl{Span: p.span(fs), Name: fname.Text, Type: ty})
		if !p.at(token.RBrace) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RBrace)
	return &ast.StructItem{Span: p.span(start), Name: name.Text, Fields: fields}
}

func (p *Parser) parseEnum() *ast.EnumItem {
	start := p.expect(token.KwEnum).Span
	name := p.expect(token.Ident)
	p.expect(token.LBrace)
	var variants []string
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		variants = append(variants, p.expect(token.Ident).Text)
		if !p.at(token.RBrace) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RBrace)
	return &ast.EnumItem{Span: p.span(start), Name: name.Text, Variants: variants}
}

func (p *Parser) parseTrait() *ast.TraitItem {
	start := p.expect(token.KwTrait).Span
	name := p.expect(token.Ident)
	p.expect(token.LBrace)
	out := &ast.TraitItem{Span: p.span(start), Name: name.Text}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.KwFn:
			out.Methods = append(out.Methods, p.parseFnSig())
		case token.KwConst:
			out.Consts = append(out.Consts, p.parseConstDecl())
		default:
			p.errorf(p.cur().Span, "expected fn or const in trait body")
			p.advance()
		}
	}
	p.expect(token.RBrace)
	out.Span = p.span(start)
	return out
}

func (p *Parser) parseImpl() *ast.ImplItem {
	start := p.expect(token.KwImpl).Span
	var traitName string
	first := p.parseType()
	forType := first
	if p.at(token.KwFor) {
		p.advance()
		traitName = first.(*ast.NamedType).Name
		forType = p.parseType()
	}
	p.expect(token.LBrace)
	out := &ast.ImplItem{Span: p.span(start), ForType: forType, Trait: traitName}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.KwFn:
			fn := p.parseFn()
			if len(fn.Params) > 0 && fn.Params[0].IsSelf {
				out.Methods = append(out.Methods, *fn)
			} else {
				out.Funcs = append(out.Funcs, *fn)
			}
		case token.KwConst:
			out.Consts = append(out.Consts, p.parseConstDecl())
		default:
			p.errorf(p.cur().Span, "expected fn or const in impl body")
			p.advance()
		}
	}
	p.expect(token.RBrace)
	out.Span = p.span(start)
	return out
}

func (p *Parser) parseConstDecl() ast.ConstItem {
	start := p.expect(token.KwConst).Span
	name := p.expect(token.Ident)
	p.expect(token.Colon)
	ty := p.parseType()
	p.expect(token.Eq)
	val := p.parseExpr()
	p.expect(token.Semicolon)
	return ast.ConstItem{Span: p.span(start), Name: name.Text, Type: ty, Value: val}
}

func (p *Parser) parseConst() *ast.ConstItem {
	c := p.parseConstDecl()
	return &c
}

func (p *Parser) parseType() ast.TypeExpr {
	start := p.cur().Span
	switch p.cur().Kind {
	case token.Amp:
		p.advance()
		mut := false
		if p.at(token.KwMut) {
			p.advance()
			mut = true
		}
		inner := p.parseType()
		return &ast.ReferenceType{Span: p.span(start), Mutable: mut, Referent: inner}
	case token.LBracket:
		p.advance()
		elem := p.parseType()
		p.expect(token.Semicolon)
		size := p.parseExpr()
		p.expect(token.RBracket)
		return &ast.ArrayType{Span: p.span(start), Element: elem, Size: size}
	case token.KwSelfType:
		p.advance()
		return &ast.NamedType{Span: p.span(start), Name: "Self"}
	default:
		name := p.expect(token.Ident)
		return &ast.NamedType{Span: p.span(start), Name: name.Text}
	}
}
