package token_test

import (
	"testing"

	"corec/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		text string
		want token.Kind
	}{
		{"fn", token.KwFn},
		{"let", token.KwLet},
		{"mut", token.KwMut},
		{"struct", token.KwStruct},
		{"trait", token.KwTrait},
		{"impl", token.KwImpl},
		{"self", token.KwSelf},
		{"Self", token.KwSelfType},
		{"if", token.KwIf},
		{"else", token.KwElse},
		{"loop", token.KwLoop},
		{"while", token.KwWhile},
		{"break", token.KwBreak},
		{"continue", token.KwContinue},
		{"return", token.KwReturn},
		{"as", token.KwAs},
		{"true", token.KwTrue},
		{"false", token.KwFalse},
	}
	for _, tt := range tests {
		got, ok := token.LookupKeyword(tt.text)
		if !ok {
			t.Errorf("LookupKeyword(%q): expected a keyword match", tt.text)
			continue
		}
		if got != tt.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestLookupKeyword_NotAKeyword(t *testing.T) {
	for _, text := range []string{"x", "foo", "Point", "exit", "selfish"} {
		if _, ok := token.LookupKeyword(text); ok {
			t.Errorf("LookupKeyword(%q): expected no keyword match", text)
		}
	}
}
