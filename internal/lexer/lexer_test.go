package lexer_test

import (
	"testing"

	"corec/internal/diag"
	"corec/internal/lexer"
	"corec/internal/source"
	"corec/internal/token"
)

func tokenize(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Add("test.sg", []byte(src), source.FileVirtual)
	bag := diag.NewBag(0)
	lx := lexer.New(file, []byte(src), bag)
	return lx.Tokenize(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenize_Identifiers(t *testing.T) {
	toks, bag := tokenize(t, "foo bar_baz _x")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{token.Ident, token.Ident, token.Ident, token.EOF}
	if got := kinds(toks); !equalKinds(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if toks[0].Text != "foo" || toks[1].Text != "bar_baz" || toks[2].Text != "_x" {
		t.Fatalf("unexpected identifier text: %+v", toks[:3])
	}
}

func TestTokenize_Keywords(t *testing.T) {
	toks, _ := tokenize(t, "fn let mut struct if else loop while break continue return as true false")
	want := []token.Kind{
		token.KwFn, token.KwLet, token.KwMut, token.KwStruct, token.KwIf, token.KwElse,
		token.KwLoop, token.KwWhile, token.KwBreak, token.KwContinue, token.KwReturn,
		token.KwAs, token.KwTrue, token.KwFalse, token.EOF,
	}
	if got := kinds(toks); !equalKinds(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenize_IntegerSuffixes(t *testing.T) {
	toks, bag := tokenize(t, "1i32 2u32 3isize 4usize 5")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	wantSuffix := []token.IntSuffix{token.SuffixI32, token.SuffixU32, token.SuffixIsize, token.SuffixUsize, token.SuffixNone}
	for i, want := range wantSuffix {
		if toks[i].Kind != token.IntLiteral {
			t.Fatalf("token %d: expected IntLiteral, got %v", i, toks[i].Kind)
		}
		if toks[i].Suffix != want {
			t.Errorf("token %d: suffix = %v, want %v", i, toks[i].Suffix, want)
		}
	}
	if toks[0].IntVal != 1 || toks[4].IntVal != 5 {
		t.Errorf("unexpected IntVal: %+v", toks[:5])
	}
}

func TestTokenize_StringEscapes(t *testing.T) {
	toks, bag := tokenize(t, `"a\nb\t\"c\""`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[0].Kind != token.StringLiteral {
		t.Fatalf("expected a string literal, got %v", toks[0].Kind)
	}
	want := "a\nb\t\"c\""
	if toks[0].StrVal != want {
		t.Errorf("StrVal = %q, want %q", toks[0].StrVal, want)
	}
}

func TestTokenize_UnterminatedStringIsAnError(t *testing.T) {
	_, bag := tokenize(t, `"unterminated`)
	if !bag.HasErrors() {
		t.Fatal("expected an unterminated string literal to be reported")
	}
}

func TestTokenize_Operators(t *testing.T) {
	toks, bag := tokenize(t, "-> :: == != <= >= && || += -")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.Arrow, token.ColonColon, token.EqEq, token.BangEq, token.Le, token.Ge,
		token.AmpAmp, token.PipePipe, token.PlusEq, token.Minus, token.EOF,
	}
	if got := kinds(toks); !equalKinds(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenize_LineCommentsAreSkipped(t *testing.T) {
	toks, bag := tokenize(t, "fn // a comment\nmain")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{token.KwFn, token.Ident, token.EOF}
	if got := kinds(toks); !equalKinds(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenize_UnexpectedCharacterIsAnError(t *testing.T) {
	_, bag := tokenize(t, "@")
	if !bag.HasErrors() {
		t.Fatal("expected an unrecognised character to be reported")
	}
}

func equalKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
