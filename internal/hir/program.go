package hir

import "corec/internal/types"

// Program is the whole-translation-unit HIR: every item the desugarer
// produced, plus the type interner they were declared against. It is the
// value C2 returns and every later pass (C3-C9) consumes and mutates
// in place.
type Program struct {
	Types *types.Interner

	Functions []*Function
	Structs   []*StructDef
	Enums     []*EnumDef
	Consts    []*ConstDef
	Traits    []*Trait
	Impls     []*Impl
}

// NewProgram builds an empty program against a fresh type interner.
func NewProgram() *Program {
	return &Program{Types: types.NewInterner()}
}
