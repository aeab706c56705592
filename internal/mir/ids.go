// Package mir implements C9: lowering of a fully-checked hir.Program to an
// SSA-lite Middle-level IR with explicit basic blocks, places, projections
// and an ABI-aware call/return convention (spec.md §3.7, §4.8).
//
// Cross-references inside one MirFunction (a Place's LocalID, an
// Operand's TempID, a Terminator's BlockID) are small integer indices into
// that function's own arrays, not pointers — MIR is built once per
// function from a flat, already-resolved hir.Function/hir.Method body and
// never mutated again, so an arena-index handle is simpler than the
// pointer-based stable references internal/hir uses for its longer-lived,
// in-place-rewritten tree.
package mir

// LocalID identifies a local (parameter or let-bound variable) within one
// MirFunction's Locals slice.
type LocalID int32

// TempID identifies an SSA temporary within one MirFunction's TempTypes
// slice.
type TempID int32

// BlockID identifies a basic block within one MirFunction's BasicBlocks
// slice.
type BlockID int32

// FuncID identifies an internal MirFunction within a MirModule's
// Functions slice.
type FuncID int32

const (
	NoLocalID LocalID = -1
	NoTempID  TempID  = -1
	NoBlockID BlockID = -1
	NoFuncID  FuncID  = -1
)
