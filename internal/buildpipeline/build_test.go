package buildpipeline_test

import (
	"strings"
	"testing"

	"corec/internal/buildpipeline"
	"corec/internal/hir"
	"corec/internal/mir"
)

func compile(t *testing.T, src string) *buildpipeline.Result {
	t.Helper()
	return buildpipeline.CompileSource("test.sg", []byte(src), nil)
}

func requireOk(t *testing.T, res *buildpipeline.Result) {
	t.Helper()
	if !res.Ok() {
		var msgs []string
		for _, d := range res.Diags.Items() {
			msgs = append(msgs, d.Error())
		}
		t.Fatalf("expected program to compile cleanly, got diagnostics:\n%s", strings.Join(msgs, "\n"))
	}
}

func mirFuncNamed(t *testing.T, mod *mir.MirModule, name string) *mir.MirFunction {
	t.Helper()
	for _, f := range mod.Functions {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("no internal MIR function named %q (have %d functions)", name, len(mod.Functions))
	return nil
}

// Scenario 1 (spec.md §8): `fn main() { exit(0); }` lowers to one internal
// MIR function with a single block: a call to the external `exit` with a
// literal i32 argument, terminated by Return(None).
func TestEndToEnd_MainExit(t *testing.T) {
	res := compile(t, `
fn main() {
	exit(0);
}
`)
	requireOk(t, res)

	main := mirFuncNamed(t, res.Module, "main")
	if len(main.BasicBlocks) != 1 {
		t.Fatalf("expected exactly one block, got %d", len(main.BasicBlocks))
	}
	block := main.BasicBlocks[0]
	if len(block.Stmts) != 1 {
		t.Fatalf("expected exactly one statement, got %d", len(block.Stmts))
	}
	call := block.Stmts[0]
	if call.Kind != mir.StmtCall {
		t.Fatalf("expected a call statement, got kind %v", call.Kind)
	}
	if call.Call.Callee.Kind != mir.FuncRefExternal || call.Call.Callee.External != "exit" {
		t.Fatalf("expected a call to external exit, got %+v", call.Call.Callee)
	}
	if len(call.Call.Args) != 1 {
		t.Fatalf("expected exit() to carry one argument, got %d", len(call.Call.Args))
	}
	arg := call.Call.Args[0]
	if arg.Kind != mir.OperandConst || arg.Const.Kind != mir.ConstInt || arg.Const.Int != 0 {
		t.Fatalf("expected exit's argument to be the constant int 0, got %+v", arg)
	}
	if !block.Terminated() {
		t.Fatal("expected the block to be terminated")
	}
	if block.Term.Kind != mir.TermReturn || block.Term.Return.HasValue {
		t.Fatalf("expected a valueless Return terminator, got %+v", block.Term)
	}
}

// Scenario 2: a struct literal's field read lowers to a Load off a
// Field-projected place, with no intervening temporary for the literal
// itself (spec.md §4.8.2's direct-init rule).
func TestEndToEnd_StructFieldProjection(t *testing.T) {
	res := compile(t, `
struct Point {
	x: i32,
	y: i32,
}

fn main() {
	let p: Point = Point{x: 1, y: 2};
	exit(p.y);
}
`)
	requireOk(t, res)

	main := mirFuncNamed(t, res.Module, "main")
	var foundInit, foundLoadField1 bool
	for _, b := range main.BasicBlocks {
		for _, s := range b.Stmts {
			if s.Kind == mir.StmtInit && s.Init.Pattern.Kind == mir.InitStruct {
				foundInit = true
			}
			if s.Kind == mir.StmtLoad {
				if len(s.Load.Src.Projs) == 1 && s.Load.Src.Projs[0].Kind == mir.ProjField && s.Load.Src.Projs[0].Field == 1 {
					foundLoadField1 = true
				}
			}
		}
	}
	if !foundInit {
		t.Error("expected a struct InitPattern for the Point literal")
	}
	if !foundLoadField1 {
		t.Error("expected a Load off a Field(1) projection for p.y")
	}
}

// Scenario 3: an if/else where both arms produce a value joins them with a
// Phi at the join block (spec.md §4.8.3).
func TestEndToEnd_IfElsePhi(t *testing.T) {
	res := compile(t, `
fn choose(cond: bool) -> i32 {
	let v: i32 = if cond {
		1
	} else {
		2
	};
	v
}
`)
	requireOk(t, res)

	fn := mirFuncNamed(t, res.Module, "choose")
	var phis int
	for _, b := range fn.BasicBlocks {
		phis += len(b.Phis)
		for _, ph := range b.Phis {
			if len(ph.Incoming) != 2 {
				t.Errorf("expected the if/else join phi to have two incoming values, got %d", len(ph.Incoming))
			}
		}
	}
	if phis != 1 {
		t.Fatalf("expected exactly one phi node across the function, got %d", phis)
	}
}

// Scenario 4: `loop { break value; }` with a single reachable break produces
// no Phi — the break's lowered operand flows directly to the loop's value,
// an optimization lowerLoop applies whenever there is only one incoming
// break.
func TestEndToEnd_LoopSingleBreakNoPhi(t *testing.T) {
	res := compile(t, `
fn make() -> i32 {
	loop {
		break 7i32;
	}
}
`)
	requireOk(t, res)

	fn := mirFuncNamed(t, res.Module, "make")
	for _, b := range fn.BasicBlocks {
		if len(b.Phis) != 0 {
			t.Fatalf("expected no phi nodes for a single-break loop, found %d in block %d", len(b.Phis), b.ID)
		}
	}
}

// Scenario 5: a string receiver's `.len()` call dispatches directly to the
// builtin (no user method lookup, no auto-ref wrapper around the receiver).
func TestEndToEnd_BuiltinMethodCall(t *testing.T) {
	res := compile(t, `
fn main() {
	let n: usize = "hello".len();
	exit(0);
}
`)
	requireOk(t, res)

	main := mirFuncNamed(t, res.Module, "main")
	var found bool
	for _, b := range main.BasicBlocks {
		for _, s := range b.Stmts {
			if s.Kind == mir.StmtCall && s.Call.Callee.Kind == mir.FuncRefExternal && s.Call.Callee.External == "len" {
				found = true
				if len(s.Call.Args) != 1 {
					t.Errorf("expected len() to carry exactly the receiver argument, got %d args", len(s.Call.Args))
				}
			}
		}
	}
	if !found {
		t.Fatal("expected a call to the synthetic external \"len\"")
	}
}

// Scenario 6: exit() outside main is a hard error with the exact diagnostic
// message checkExitUses reports.
func TestEndToEnd_ExitOutsideMainRejected(t *testing.T) {
	res := compile(t, `
fn helper() {
	exit(1);
}

fn main() {
	helper();
	exit(0);
}
`)
	if res.Ok() {
		t.Fatal("expected exit() inside a non-main function to be rejected")
	}
	var found bool
	for _, d := range res.Diags.Items() {
		if d.Message == `exit() cannot be used in non-main functions` {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the non-main exit() diagnostic message, got: %v", res.Diags.Items())
	}
}

// A second, non-final exit() call inside main is rejected too, with the
// other half of checkExitUses's message.
func TestEndToEnd_ExitNotFinalInMainRejected(t *testing.T) {
	res := compile(t, `
fn main() {
	exit(1);
	exit(0);
}
`)
	if res.Ok() {
		t.Fatal("expected a non-final exit() call in main to be rejected")
	}
	var found bool
	for _, d := range res.Diags.Items() {
		if d.Message == `exit() must be the final statement of main, with no other exit() call` {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the non-final-exit diagnostic message, got: %v", res.Diags.Items())
	}
}

// Invariant: once a program with no diagnostics has been checked, no
// top-level expression statement of any function body is still an
// unresolved identifier.
func TestInvariant_NoUnresolvedAfterCheck(t *testing.T) {
	res := compile(t, `
fn identity(x: i32) -> i32 {
	x
}

fn main() {
	let y: i32 = identity(5);
	exit(0);
}
`)
	requireOk(t, res)

	for _, fn := range res.Prog.Functions {
		assertFullyResolved(t, fn.Body)
	}
}

func assertFullyResolved(t *testing.T, b *hir.Block) {
	t.Helper()
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		es, ok := s.(*hir.ExprStmt)
		if !ok {
			continue
		}
		if _, bad := es.Expr.(*hir.UnresolvedIdent); bad {
			t.Errorf("found an unresolved identifier surviving past name resolution: %v", es.Expr)
		}
	}
}

// Invariant: in a function whose body unconditionally diverges (its last
// statement is exit()), that exit() call's EndpointSet carries no Normal
// endpoint, matching invariant 3 (spec.md §4.4.2/§3.4).
func TestInvariant_DivergingBlockHasNoNormalEndpoint(t *testing.T) {
	res := compile(t, `
fn main() {
	exit(0);
}
`)
	requireOk(t, res)

	main := res.Prog.Functions[0]
	for _, fn := range res.Prog.Functions {
		if fn.Name == "main" {
			main = fn
		}
	}
	if main.Body.Final != nil {
		t.Fatal("expected main's body to have no trailing expression")
	}
	last := main.Body.Stmts[len(main.Body.Stmts)-1]
	es, ok := last.(*hir.ExprStmt)
	if !ok {
		t.Fatalf("expected the final statement to be an expression statement, got %T", last)
	}
	info := es.Expr.Info()
	if info.Endpoints.HasNormal() {
		t.Error("expected the exit() call's endpoint set to have no Normal completion")
	}
}

// Invariant: every basic block produced by lowering has exactly one
// terminator once LowerProgram returns, for every internal function in a
// small multi-construct program (calls, if/else, loop).
func TestInvariant_EveryBlockHasOneTerminator(t *testing.T) {
	res := compile(t, `
fn pick(cond: bool) -> i32 {
	if cond {
		1
	} else {
		2
	}
}

fn spin() -> i32 {
	loop {
		break 9i32;
	}
}

fn main() {
	let a: i32 = pick(true);
	let b: i32 = spin();
	exit(a + b);
}
`)
	requireOk(t, res)

	for _, fn := range res.Module.Functions {
		for _, b := range fn.BasicBlocks {
			if !b.Terminated() {
				t.Errorf("function %q block %d has no terminator", fn.Name, b.ID)
			}
		}
	}
}

// Re-running the pipeline over the same source twice is deterministic: the
// second compile produces the same MIR shape as the first (no hidden
// process-global state leaks between independent compiles beyond the
// type interner's structural canonicalization, which is itself
// deterministic).
func TestInvariant_RepeatedCompileIsDeterministic(t *testing.T) {
	src := `
fn add(a: i32, b: i32) -> i32 {
	a + b
}

fn main() {
	let s: i32 = add(1, 2);
	exit(s);
}
`
	first := compile(t, src)
	second := compile(t, src)
	requireOk(t, first)
	requireOk(t, second)

	if len(first.Module.Functions) != len(second.Module.Functions) {
		t.Fatalf("function count differs across runs: %d vs %d", len(first.Module.Functions), len(second.Module.Functions))
	}
	for i, f1 := range first.Module.Functions {
		f2 := second.Module.Functions[i]
		if f1.Name != f2.Name {
			t.Errorf("function %d name differs: %q vs %q", i, f1.Name, f2.Name)
		}
		if len(f1.BasicBlocks) != len(f2.BasicBlocks) {
			t.Errorf("function %q block count differs: %d vs %d", f1.Name, len(f1.BasicBlocks), len(f2.BasicBlocks))
		}
	}
}

// Invariant 9 (spec.md §8): a function whose return is SRet-classified
// (an aggregate return) writes its value into the sret place via an
// Assign statement and terminates with a valueless Return — the
// terminator itself never carries the returned operand.
func TestInvariant_SretReturnTerminatorCarriesNoOperand(t *testing.T) {
	res := compile(t, `
struct Point {
	x: i32,
	y: i32,
}

fn make(a: i32, b: i32) -> Point {
	Point{x: a, y: b}
}

fn main() {
	let p: Point = make(1, 2);
	exit(p.x);
}
`)
	requireOk(t, res)

	fn := mirFuncNamed(t, res.Module, "make")
	var sawReturn bool
	for _, b := range fn.BasicBlocks {
		if b.Term.Kind == mir.TermReturn {
			sawReturn = true
			if b.Term.Return.HasValue {
				t.Errorf("expected an SRet function's Return terminator to carry no operand, got %+v", b.Term.Return)
			}
		}
	}
	if !sawReturn {
		t.Fatal("expected make's lowered body to contain a Return terminator")
	}
}

// An array literal whose first element is a bare unsuffixed integer
// literal still picks up a later element's suffix (spec.md §8): element 0
// must not be pinned to i32 before element 1's `u32` suffix is seen.
func TestEndToEnd_ArrayLiteralLeadingBareIntTakesSiblingSuffix(t *testing.T) {
	res := compile(t, `
fn main() {
	let xs: [u32; 2] = [2, 1u32];
	exit(0);
}
`)
	requireOk(t, res)
}

// A binary operator with a bare unsuffixed integer literal on the left and
// a suffixed literal on the right resolves the left operand against the
// right's type rather than rejecting the expression (spec.md §8).
func TestEndToEnd_BinaryOpLeadingBareIntTakesOperandSuffix(t *testing.T) {
	res := compile(t, `
fn main() {
	let s: u32 = 1 + 2u32;
	exit(0);
}
`)
	requireOk(t, res)
}

// An array-repeat literal whose value is a bare unsuffixed integer still
// takes the expected array's element type (spec.md §8), rather than the
// checker leaving it unresolved because nothing re-checks it.
func TestEndToEnd_ArrayRepeatBareIntTakesExpectedElementType(t *testing.T) {
	res := compile(t, `
fn main() {
	let xs: [u32; 3] = [0; 3];
	exit(0);
}
`)
	requireOk(t, res)
}

// An array literal whose first element is itself a binary op with two
// unsuffixed operands still resolves against a later sibling's suffix
// (spec.md §8): the inner `1 + 2` must come back genuinely unresolved
// (not silently stamped i32) so the array literal's own re-check pass can
// still pin it down from `3u32`.
func TestEndToEnd_ArrayLiteralNestedUnresolvedBinaryTakesSiblingSuffix(t *testing.T) {
	res := compile(t, `
fn main() {
	let xs: [u32; 2] = [1 + 2, 3u32];
	exit(0);
}
`)
	requireOk(t, res)
}

// A binary op whose operands are both bare unsuffixed literals still
// resolves against the surrounding let's expected numeric type, even
// though neither operand gives the other anything to resolve against
// (spec.md §8).
func TestEndToEnd_BinaryOpBothBareOperandsTakeOuterExpectedType(t *testing.T) {
	res := compile(t, `
fn main() {
	let s: u32 = 1 + 2;
	exit(0);
}
`)
	requireOk(t, res)
}

// A `let` binding with no type annotation whose initializer is a bare
// unsuffixed integer literal can't infer a type and is a hard error
// (spec.md §8), rather than silently defaulting to i32.
func TestEndToEnd_UnannotatedLetWithBareIntLiteralRejected(t *testing.T) {
	res := compile(t, `
fn main() {
	let x = 1;
	exit(x);
}
`)
	if res.Ok() {
		t.Fatal("expected an unannotated let with an unresolved literal initializer to be rejected")
	}
	var found bool
	for _, d := range res.Diags.Items() {
		if strings.Contains(d.Message, "cannot infer type for let binding") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a cannot-infer-type diagnostic, got: %v", res.Diags.Items())
	}
}

// Duplicate top-level items are a hard error (spec.md §4.2).
func TestDuplicateTopLevelItemRejected(t *testing.T) {
	res := compile(t, `
fn twice() -> i32 {
	1
}

fn twice() -> i32 {
	2
}

fn main() {
	exit(0);
}
`)
	if res.Ok() {
		t.Fatal("expected a duplicate top-level function name to be rejected")
	}
	var found bool
	for _, d := range res.Diags.Items() {
		if strings.Contains(d.Message, `duplicate item "twice"`) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a duplicate item diagnostic, got: %v", res.Diags.Items())
	}
}
