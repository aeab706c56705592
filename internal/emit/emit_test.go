package emit_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"corec/internal/buildpipeline"
	"corec/internal/emit"
)

func compiledModule(t *testing.T) *buildpipeline.Result {
	t.Helper()
	res := buildpipeline.CompileSource("test.sg", []byte(`
fn add(a: i32, b: i32) -> i32 {
	a + b
}

fn main() {
	let s: i32 = add(1, 2);
	exit(s);
}
`), nil)
	if !res.Ok() {
		t.Fatalf("expected a clean compile, got diagnostics: %v", res.Diags.Items())
	}
	return res
}

func TestWriteText_ProducesNonEmptyDump(t *testing.T) {
	res := compiledModule(t)
	path := filepath.Join(t.TempDir(), "out.mir")
	if err := emit.WriteText(path, res.Module, res.Prog.Types); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(b)
	if !strings.Contains(text, "funcs=2") {
		t.Errorf("expected the dump to report two functions, got:\n%s", text)
	}
	if !strings.Contains(text, "add") || !strings.Contains(text, "main") {
		t.Errorf("expected the dump to name both functions, got:\n%s", text)
	}
}

func TestWriteSnapshotReadSnapshot_RoundTrips(t *testing.T) {
	res := compiledModule(t)
	path := filepath.Join(t.TempDir(), "out.mirc")
	if err := emit.WriteSnapshot(path, res.Module); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	got, err := emit.ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if len(got.Functions) != len(res.Module.Functions) {
		t.Fatalf("function count = %d, want %d", len(got.Functions), len(res.Module.Functions))
	}
	for i, f := range res.Module.Functions {
		if got.Functions[i].Name != f.Name {
			t.Errorf("function %d name = %q, want %q", i, got.Functions[i].Name, f.Name)
		}
		if len(got.Functions[i].BasicBlocks) != len(f.BasicBlocks) {
			t.Errorf("function %q block count = %d, want %d", f.Name, len(got.Functions[i].BasicBlocks), len(f.BasicBlocks))
		}
	}
}

func TestReadSnapshot_MissingFileErrors(t *testing.T) {
	if _, err := emit.ReadSnapshot(filepath.Join(t.TempDir(), "missing.mirc")); err == nil {
		t.Fatal("expected an error reading a nonexistent snapshot")
	}
}
