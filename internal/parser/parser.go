// Package parser implements a recursive-descent parser that turns a token
// stream into an ast.File. Like the lexer, this is an external collaborator
// of the semantic core: it only needs to produce a syntactically valid
// tree for C2 (AST→HIR desugaring) to consume.
package parser

import (
	"fmt"

	"corec/internal/ast"
	"corec/internal/diag"
	"corec/internal/source"
	"corec/internal/token"
)

// Parser holds the token cursor and diagnostic sink for one file.
type Parser struct {
	file   source.FileID
	toks   []token.Token
	pos    int
	diag   *diag.Bag
	failed bool

	// noStructLiteral suppresses `Ident { ... }` struct-literal parsing
	// while parsing an if/while condition, so the condition's trailing
	// `{` is unambiguously the body block's opening brace.
	noStructLiteral bool
}

// New creates a Parser over a pre-tokenized file.
func New(file source.FileID, toks []token.Token, bag *diag.Bag) *Parser {
	return &Parser{file: file, toks: toks, diag: bag}
}

// ParseFile parses an entire translation unit.
func ParseFile(file source.FileID, toks []token.Token, bag *diag.Bag) *ast.File {
	p := New(file, toks, bag)
	f := &ast.File{}
	for !p.at(token.EOF) {
		item := p.parseItem()
		if item == nil {
			p.advance() // error recovery: skip the offending token
			continue
		}
		f.Items = append(f.Items, item)
	}
	return f
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 || t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k token.Kind) token.Token {
	if p.at(k) {
		return p.advance()
	}
	p.errorf(p.cur().Span, "expected %s, found %s", k, p.cur().Kind)
	return p.cur()
}

func (p *Parser) errorf(span source.Span, format string, args ...any) {
	p.failed = true
	if p.diag == nil {
		return
	}
	p.diag.Add(diag.New(diag.CodeSyntax, span, fmt.Sprintf(format, args...)))
}

func (p *Parser) span(start source.Span) source.Span {
	return start.Cover(p.prevSpan())
}

func (p *Parser) prevSpan() source.Span {
	if p.pos == 0 {
		return p.cur().Span
	}
	return p.toks[p.pos-1].Span
}
