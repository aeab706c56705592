package main

import (
	"testing"

	"corec/internal/diag"
	"corec/internal/source"
)

func TestDefaultOutPath(t *testing.T) {
	tests := []struct {
		src  string
		mirc bool
		want string
	}{
		{"foo.sg", false, "foo.mir"},
		{"foo.sg", true, "foo.mirc"},
		{"dir/bar.sg", false, "dir/bar.mir"},
	}
	for _, tt := range tests {
		if got := defaultOutPath(tt.src, tt.mirc); got != tt.want {
			t.Errorf("defaultOutPath(%q, %v) = %q, want %q", tt.src, tt.mirc, got, tt.want)
		}
	}
}

func TestCountErrors(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.CodeSyntax, source.Span{}, "an error"))
	bag.Add(diag.New(diag.CodeInternal, source.Span{}, "another error"))
	if got := countErrors(bag); got != 2 {
		t.Errorf("countErrors = %d, want 2", got)
	}
}

func TestCountErrors_IgnoresNonErrorSeverities(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.CodeSyntax, source.Span{}, "an error"))
	bag.Add(&diag.Diagnostic{Severity: diag.SevWarning, Code: diag.CodeType, Message: "a warning"})
	if got := countErrors(bag); got != 1 {
		t.Errorf("countErrors = %d, want 1", got)
	}
}
