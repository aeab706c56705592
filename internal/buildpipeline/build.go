// Package buildpipeline orchestrates C1-C9 over one or more source files:
// lex, parse, desugar to HIR, resolve names, check, link and exit-check,
// then lower to MIR. It is the thin driver layer spec.md's core itself
// never depends on — the core stays a pure library; this package is what
// turns it into something cmd/corec can actually run.
package buildpipeline

import (
	"strings"

	"corec/internal/diag"
	"corec/internal/hir"
	"corec/internal/lexer"
	"corec/internal/mir"
	"corec/internal/parser"
	"corec/internal/sema"
	"corec/internal/source"
	"corec/internal/symbols"
	"corec/internal/trace"
)

// Result is everything one compiled translation unit produces.
type Result struct {
	Path   string
	Prog   *hir.Program
	Table  *symbols.Table
	Module *mir.MirModule
	Diags  *diag.Bag
}

// Ok reports whether the unit compiled with no error-severity diagnostic.
func (r *Result) Ok() bool { return !r.Diags.HasErrors() }

// CompileFile runs the full C1-C9 pipeline over one file already
// registered in fs, emitting a trace span per phase (spec.md's component
// list) so `corec build --trace` has something to show.
func CompileFile(fs *source.FileSet, file source.FileID, tr trace.Tracer) *Result {
	if tr == nil {
		tr = trace.Nop()
	}
	f, _ := fs.File(file)
	bag := diag.NewBag(0)
	res := &Result{Path: f.Path, Diags: bag}

	end := tr.StartSpan("lex", f.Path)
	lx := lexer.New(file, f.Content, bag)
	tokens := lx.Tokenize()
	end()
	if bag.HasErrors() {
		return res
	}

	end = tr.StartSpan("parse", f.Path)
	astFile := parser.ParseFile(file, tokens, bag)
	end()
	if bag.HasErrors() {
		return res
	}

	end = tr.StartSpan("desugar", f.Path)
	conv := hir.NewConverter(bag)
	prog := conv.ConvertFile(astFile)
	res.Prog = prog
	end()
	if bag.HasErrors() {
		return res
	}

	end = tr.StartSpan("resolve", f.Path)
	table := symbols.Resolve(prog, bag)
	res.Table = table
	end()
	if bag.HasErrors() {
		return res
	}

	end = tr.StartSpan("check", f.Path)
	ctx := sema.NewContext(prog, table, bag)
	sema.NewChecker(ctx).CheckProgram()
	end()
	if bag.HasErrors() {
		return res
	}

	end = tr.StartSpan("lower", f.Path)
	module := recoverLower(prog, table, bag)
	res.Module = module
	end()

	bag.Sort()
	return res
}

// recoverLower turns any internal-consistency panic during lowering into
// an ordinary diag.CodeInternal diagnostic, matching the teacher's
// assertion-at-pass-boundary style instead of crashing the driver.
func recoverLower(prog *hir.Program, table *symbols.Table, bag *diag.Bag) (m *mir.MirModule) {
	defer func() {
		if r := recover(); r != nil {
			bag.Add(diag.New(diag.CodeInternal, source.Span{}, "internal error: %v", r))
		}
	}()
	return mir.LowerProgram(prog, table)
}

// CompileSource is a convenience entry point for tests and tooling that
// have raw source text rather than an on-disk file.
func CompileSource(path string, src []byte, tr trace.Tracer) *Result {
	fs := source.NewFileSet()
	file := fs.Add(path, src, source.FileVirtual)
	res := CompileFile(fs, file, tr)
	return res
}

// RenderDiagnostics is a small helper build commands use to print a
// Result's diagnostics through the shared Renderer.
func RenderDiagnostics(fs *source.FileSet, r *Result, noColor bool, errf func(string, ...any)) {
	rend := &diag.Renderer{Files: fs, NoColor: noColor}
	for _, d := range r.Diags.Items() {
		var sb strings.Builder
		rend.Render(&sb, d)
		errf("%s", sb.String())
	}
}
