// Package lexer scans source bytes into a token stream. It is an external
// collaborator of the semantic core: the core only ever sees the AST the
// parser builds from these tokens.
package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"corec/internal/diag"
	"corec/internal/source"
	"corec/internal/token"
)

// Lexer scans a single source file into tokens.
type Lexer struct {
	file source.FileID
	src  []byte
	pos  uint32
	diag *diag.Bag
}

// New creates a Lexer over content previously registered as file in fs.
func New(file source.FileID, content []byte, bag *diag.Bag) *Lexer {
	return &Lexer{file: file, src: content, diag: bag}
}

// Tokenize scans the entire file and returns its token stream, always
// terminated by a single EOF token.
func (l *Lexer) Tokenize() []token.Token {
	var out []token.Token
	for {
		t := l.next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

func (l *Lexer) next() token.Token {
	l.skipTrivia()
	start := l.pos
	if l.pos >= uint32(len(l.src)) {
		return token.Token{Kind: token.EOF, Span: l.span(start)}
	}
	c := l.src[l.pos]
	switch {
	case isIdentStart(c):
		return l.lexIdent(start)
	case c >= '0' && c <= '9':
		return l.lexNumber(start)
	case c == '"':
		return l.lexString(start)
	case c == '\'':
		return l.lexChar(start)
	default:
		return l.lexOperator(start)
	}
}

func (l *Lexer) skipTrivia() {
	for l.pos < uint32(len(l.src)) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.pos++
		case c == '/' && l.peek(1) == '/':
			for l.pos < uint32(len(l.src)) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *Lexer) peek(off int) byte {
	i := int(l.pos) + off
	if i < 0 || i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

func (l *Lexer) span(start uint32) source.Span {
	return source.Span{File: l.file, Start: start, End: l.pos}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (l *Lexer) lexIdent(start uint32) token.Token {
	for l.pos < uint32(len(l.src)) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	// Canonicalise to NFC so that visually identical identifiers compare
	// equal regardless of the combining-mark decomposition used by the
	// source editor.
	text := norm.NFC.String(string(l.src[start:l.pos]))
	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Span: l.span(start), Text: text}
	}
	return token.Token{Kind: token.Ident, Span: l.span(start), Text: text}
}

func (l *Lexer) lexNumber(start uint32) token.Token {
	for l.pos < uint32(len(l.src)) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
		l.pos++
	}
	digits := string(l.src[start:l.pos])
	suffix := token.SuffixNone
	switch {
	case l.matchWord("i32"):
		suffix = token.SuffixI32
	case l.matchWord("u32"):
		suffix = token.SuffixU32
	case l.matchWord("isize"):
		suffix = token.SuffixIsize
	case l.matchWord("usize"):
		suffix = token.SuffixUsize
	}
	val, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		l.errorf(l.span(start), "%v", err)
	}
	return token.Token{Kind: token.IntLiteral, Span: l.span(start), Text: digits, IntVal: val, Suffix: suffix}
}

func (l *Lexer) matchWord(word string) bool {
	n := uint32(len(word))
	if l.pos+n > uint32(len(l.src)) || string(l.src[l.pos:l.pos+n]) != word {
		return false
	}
	if l.pos+n < uint32(len(l.src)) && isIdentCont(l.src[l.pos+n]) {
		return false
	}
	l.pos += n
	return true
}

func (l *Lexer) lexString(start uint32) token.Token {
	l.pos++ // opening quote
	var buf []byte
	for l.pos < uint32(len(l.src)) && l.src[l.pos] != '"' {
		if l.src[l.pos] == '\\' {
			b, ok := l.readEscape()
			if ok {
				buf = append(buf, b)
			}
			continue
		}
		buf = append(buf, l.src[l.pos])
		l.pos++
	}
	if l.pos < uint32(len(l.src)) {
		l.pos++ // closing quote
	} else {
		l.errorf(l.span(start), "unterminated string literal")
	}
	return token.Token{Kind: token.StringLiteral, Span: l.span(start), StrVal: string(buf)}
}

func (l *Lexer) lexChar(start uint32) token.Token {
	l.pos++ // opening quote
	var val byte
	if l.pos < uint32(len(l.src)) && l.src[l.pos] == '\\' {
		b, _ := l.readEscape()
		val = b
	} else if l.pos < uint32(len(l.src)) {
		val = l.src[l.pos]
		l.pos++
	}
	if l.pos < uint32(len(l.src)) && l.src[l.pos] == '\'' {
		l.pos++
	} else {
		l.errorf(l.span(start), "unterminated char literal")
	}
	return token.Token{Kind: token.CharLiteral, Span: l.span(start), StrVal: string(val)}
}

func (l *Lexer) readEscape() (byte, bool) {
	l.pos++ // backslash
	if l.pos >= uint32(len(l.src)) {
		return 0, false
	}
	c := l.src[l.pos]
	l.pos++
	switch c {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\', '\'', '"':
		return c, true
	default:
		return c, true
	}
}

func (l *Lexer) lexOperator(start uint32) token.Token {
	c := l.src[l.pos]
	l.pos++
	two := func(next byte, k2, k1 token.Kind) token.Kind {
		if l.pos < uint32(len(l.src)) && l.src[l.pos] == next {
			l.pos++
			return k2
		}
		return k1
	}
	switch c {
	case '(':
		return token.Token{Kind: token.LParen, Span: l.span(start)}
	case ')':
		return token.Token{Kind: token.RParen, Span: l.span(start)}
	case '{':
		return token.Token{Kind: token.LBrace, Span: l.span(start)}
	case '}':
		return token.Token{Kind: token.RBrace, Span: l.span(start)}
	case '[':
		return token.Token{Kind: token.LBracket, Span: l.span(start)}
	case ']':
		return token.Token{Kind: token.RBracket, Span: l.span(start)}
	case ',':
		return token.Token{Kind: token.Comma, Span: l.span(start)}
	case ';':
		return token.Token{Kind: token.Semicolon, Span: l.span(start)}
	case ':':
		return token.Token{Kind: two(':', token.ColonColon, token.Colon), Span: l.span(start)}
	case '.':
		return token.Token{Kind: token.FatDot, Span: l.span(start)}
	case '+':
		return token.Token{Kind: two('=', token.PlusEq, token.Plus), Span: l.span(start)}
	case '-':
		if l.pos < uint32(len(l.src)) && l.src[l.pos] == '>' {
			l.pos++
			return token.Token{Kind: token.Arrow, Span: l.span(start)}
		}
		return token.Token{Kind: two('=', token.MinusEq, token.Minus), Span: l.span(start)}
	case '*':
		return token.Token{Kind: two('=', token.StarEq, token.Star), Span: l.span(start)}
	case '/':
		return token.Token{Kind: two('=', token.SlashEq, token.Slash), Span: l.span(start)}
	case '%':
		return token.Token{Kind: two('=', token.PercentEq, token.Percent), Span: l.span(start)}
	case '^':
		return token.Token{Kind: two('=', token.CaretEq, token.Caret), Span: l.span(start)}
	case '!':
		return token.Token{Kind: two('=', token.BangEq, token.Bang), Span: l.span(start)}
	case '=':
		return token.Token{Kind: two('=', token.EqEq, token.Eq), Span: l.span(start)}
	case '&':
		if l.pos < uint32(len(l.src)) && l.src[l.pos] == '&' {
			l.pos++
			return token.Token{Kind: token.AmpAmp, Span: l.span(start)}
		}
		return token.Token{Kind: two('=', token.AmpEq, token.Amp), Span: l.span(start)}
	case '|':
		if l.pos < uint32(len(l.src)) && l.src[l.pos] == '|' {
			l.pos++
			return token.Token{Kind: token.PipePipe, Span: l.span(start)}
		}
		return token.Token{Kind: two('=', token.PipeEq, token.Pipe), Span: l.span(start)}
	case '<':
		if l.pos < uint32(len(l.src)) && l.src[l.pos] == '<' {
			l.pos++
			return token.Token{Kind: two('=', token.ShlEq, token.Shl), Span: l.span(start)}
		}
		return token.Token{Kind: two('=', token.Le, token.Lt), Span: l.span(start)}
	case '>':
		if l.pos < uint32(len(l.src)) && l.src[l.pos] == '>' {
			l.pos++
			return token.Token{Kind: two('=', token.ShrEq, token.Shr), Span: l.span(start)}
		}
		return token.Token{Kind: two('=', token.Ge, token.Gt), Span: l.span(start)}
	default:
		l.errorf(l.span(start), "unexpected character %q", c)
		return token.Token{Kind: token.Invalid, Span: l.span(start)}
	}
}

func (l *Lexer) errorf(span source.Span, format string, args ...any) {
	if l.diag == nil {
		return
	}
	l.diag.Add(diag.New(diag.CodeLexical, span, fmt.Sprintf(format, args...)))
}
