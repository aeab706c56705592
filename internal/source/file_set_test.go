package source_test

import (
	"testing"

	"corec/internal/source"
)

func TestFileSet_AddAndLookup(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("main.sg", []byte("fn main() {}"), source.FileVirtual)
	got, ok := fs.Lookup("main.sg")
	if !ok || got != id {
		t.Fatalf("Lookup(%q) = (%v, %v), want (%v, true)", "main.sg", got, ok, id)
	}
	if _, ok := fs.Lookup("missing.sg"); ok {
		t.Error("expected Lookup of an unregistered path to fail")
	}
}

func TestFileSet_Slice(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("test.sg", []byte("fn main() {}"), source.FileVirtual)
	span := source.Span{File: id, Start: 0, End: 2}
	if got := string(fs.Slice(span)); got != "fn" {
		t.Errorf("Slice = %q, want %q", got, "fn")
	}
}

func TestFileSet_Position(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("test.sg", []byte("ab\ncd\nef"), source.FileVirtual)

	pos := fs.Position(id, 0)
	if pos.Line != 1 || pos.Col != 1 {
		t.Errorf("Position(0) = %+v, want line 1 col 1", pos)
	}
	pos = fs.Position(id, 3) // 'c' on line 2
	if pos.Line != 2 || pos.Col != 1 {
		t.Errorf("Position(3) = %+v, want line 2 col 1", pos)
	}
	pos = fs.Position(id, 7) // 'f' on line 3
	if pos.Line != 3 || pos.Col != 2 {
		t.Errorf("Position(7) = %+v, want line 3 col 2", pos)
	}
}

func TestFileSet_LineText(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("test.sg", []byte("first\r\nsecond\nthird"), source.FileVirtual)
	if got := fs.LineText(id, 1); got != "first" {
		t.Errorf("LineText(1) = %q, want %q", got, "first")
	}
	if got := fs.LineText(id, 2); got != "second" {
		t.Errorf("LineText(2) = %q, want %q", got, "second")
	}
	if got := fs.LineText(id, 3); got != "third" {
		t.Errorf("LineText(3) = %q, want %q", got, "third")
	}
	if got := fs.LineText(id, 0); got != "" {
		t.Errorf("LineText(0) = %q, want empty", got)
	}
}

func TestSpan_EmptyLenCover(t *testing.T) {
	a := source.Span{File: 0, Start: 2, End: 2}
	if !a.Empty() {
		t.Error("expected a zero-length span to be Empty")
	}
	b := source.Span{File: 0, Start: 5, End: 10}
	if b.Len() != 5 {
		t.Errorf("Len() = %d, want 5", b.Len())
	}
	covered := source.Span{File: 0, Start: 0, End: 3}.Cover(source.Span{File: 0, Start: 2, End: 8})
	if covered.Start != 0 || covered.End != 8 {
		t.Errorf("Cover = %+v, want {Start:0 End:8}", covered)
	}
}

func TestInterner_InternDeduplicates(t *testing.T) {
	in := source.NewInterner()
	id1 := in.Intern("hello")
	id2 := in.Intern("hello")
	if id1 != id2 {
		t.Fatalf("expected repeated interns of the same string to share an id, got %v and %v", id1, id2)
	}
	got, ok := in.Lookup(id1)
	if !ok || got != "hello" {
		t.Fatalf("Lookup(%v) = (%q, %v), want (\"hello\", true)", id1, got, ok)
	}
	if in.Intern("") != source.NoStringID {
		t.Error("expected the empty string to always intern to NoStringID")
	}
}
