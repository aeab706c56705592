package symbols_test

import (
	"testing"

	"corec/internal/diag"
	"corec/internal/hir"
	"corec/internal/lexer"
	"corec/internal/parser"
	"corec/internal/source"
	"corec/internal/symbols"
)

func resolveSource(t *testing.T, src string) (*symbols.Table, *diag.Bag) {
	t.Helper()
	table, _, bag := resolveSourceWithProgram(t, src)
	return table, bag
}

func resolveSourceWithProgram(t *testing.T, src string) (*symbols.Table, *hir.Program, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Add("test.sg", []byte(src), source.FileVirtual)
	bag := diag.NewBag(0)
	toks := lexer.New(file, []byte(src), bag).Tokenize()
	if bag.HasErrors() {
		t.Fatalf("unexpected lex errors: %v", bag.Items())
	}
	astFile := parser.ParseFile(file, toks, bag)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	prog := hir.NewConverter(bag).ConvertFile(astFile)
	if bag.HasErrors() {
		t.Fatalf("unexpected desugar errors: %v", bag.Items())
	}
	table := symbols.Resolve(prog, bag)
	return table, prog, bag
}

func TestResolve_BuiltinExitIsRegistered(t *testing.T) {
	table, bag := resolveSource(t, `fn main() { exit(0); }`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fn, ok := table.Funcs["exit"]
	if !ok || !fn.IsExternal {
		t.Fatalf("expected exit to be registered as an external builtin, got %+v", fn)
	}
}

func TestResolve_DuplicateFunctionIsAHardError(t *testing.T) {
	_, bag := resolveSource(t, `
fn helper() {}
fn helper() {}
fn main() { exit(0); }
`)
	if !bag.HasErrors() {
		t.Fatal("expected a duplicate function declaration to be reported")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.CodeResolution && d.Message == `duplicate item "helper"` {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a duplicate item diagnostic for %q, got: %v", "helper", bag.Items())
	}
}

func TestResolve_DuplicateConstIsAHardError(t *testing.T) {
	_, bag := resolveSource(t, `
const LIMIT: i32 = 1;
const LIMIT: i32 = 2;
fn main() { exit(0); }
`)
	if !bag.HasErrors() {
		t.Fatal("expected a duplicate const declaration to be reported")
	}
}

func TestResolve_FunctionAndConstNameClashIsAHardError(t *testing.T) {
	// Functions and consts share one top-level item namespace.
	_, bag := resolveSource(t, `
const helper: i32 = 1;
fn helper() {}
fn main() { exit(0); }
`)
	if !bag.HasErrors() {
		t.Fatal("expected a function/const name clash to be reported")
	}
}

func TestResolve_DistinctNamesAreFine(t *testing.T) {
	table, bag := resolveSource(t, `
fn a() {}
fn b() {}
const C: i32 = 1;
fn main() { exit(0); }
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	for _, name := range []string{"a", "b", "main"} {
		if _, ok := table.Funcs[name]; !ok {
			t.Errorf("expected function %q to be registered", name)
		}
	}
	if _, ok := table.Consts["C"]; !ok {
		t.Error("expected const C to be registered")
	}
}

func TestResolve_NestedItemsAreOrderIndependentWithinTheirBlock(t *testing.T) {
	table, bag := resolveSource(t, `
fn a() { b(); }
fn b() {}
fn main() {
	fn inner_a() { inner_b(); }
	fn inner_b() {}
	exit(0);
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	for _, name := range []string{"inner_a", "inner_b"} {
		if _, ok := table.Funcs[name]; !ok {
			t.Errorf("expected nested function %q to be registered", name)
		}
	}
}

func TestResolve_StructFieldsResolveForwardReferences(t *testing.T) {
	table, prog, bag := resolveSourceWithProgram(t, `
struct Node {
	next: Link,
}
struct Link {
	value: i32,
}
fn main() { exit(0); }
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	nodeTy, ok := table.Types["Node"]
	if !ok {
		t.Fatal("expected Node to be registered")
	}
	linkTy, ok := table.Types["Link"]
	if !ok {
		t.Fatal("expected Link to be registered")
	}
	info, ok := prog.Types.StructInfo(nodeTy)
	if !ok || len(info.Fields) != 1 {
		t.Fatalf("expected Node to have one field, got %+v", info)
	}
	if info.Fields[0].Type != linkTy {
		t.Errorf("expected Node.next to resolve to the later-declared Link struct, got type %v, want %v", info.Fields[0].Type, linkTy)
	}
}
