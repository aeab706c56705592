package mir

import "corec/internal/types"

// Local is a MirFunction-scoped storage slot for a source parameter or a
// `let`-bound variable (spec.md §4.8: every hir.Local that survives into
// MIR gets exactly one Local here, addressed by its LocalID).
type Local struct {
	ID   LocalID
	Name string
	Type types.TypeID
	// ParamIndex is >= 0 when this local is bound to a source parameter
	// (its index in the function's Params), -1 for a plain `let` local.
	ParamIndex int
	// Nrvo is true when this local was chosen by planNrvo (the body's
	// trailing variable, bound by exactly one top-level let with an
	// aggregate-literal initializer) and is constructed directly in the
	// caller-supplied SRet slot rather than copied into it at return time
	// (spec.md §4.8.1's NRVO clause).
	Nrvo bool
}

// Temp is an SSA temporary's declared type, indexed by TempID.
type Temp struct {
	ID   TempID
	Type types.TypeID
}

// MirFunctionSig is a function's ABI-classified signature.
type MirFunctionSig struct {
	Params    []types.TypeID
	AbiParams []AbiParam
	Return    ReturnDesc
}

// MirFunction is one lowered function or method body.
type MirFunction struct {
	ID          FuncID
	Name        string
	Sig         MirFunctionSig
	Locals      []Local
	TempTypes   []types.TypeID
	BasicBlocks []*BasicBlock
	StartBlock  BlockID
	// RetPlace is the place NRVO-eligible / SRet-classified returns
	// construct into directly; NoLocalID when the function has no named
	// return slot to speak of (RetDirect/RetVoid/RetNever functions never
	// consult it).
	RetPlace LocalID
}

func newMirFunction(id FuncID, name string) *MirFunction {
	return &MirFunction{ID: id, Name: name, StartBlock: NoBlockID, RetPlace: NoLocalID}
}

func (f *MirFunction) addBlock() *BasicBlock {
	id := BlockID(len(f.BasicBlocks))
	b := newBasicBlock(id)
	f.BasicBlocks = append(f.BasicBlocks, b)
	return b
}

func (f *MirFunction) addLocal(name string, ty types.TypeID, paramIndex int) LocalID {
	id := LocalID(len(f.Locals))
	f.Locals = append(f.Locals, Local{ID: id, Name: name, Type: ty, ParamIndex: paramIndex})
	return id
}

func (f *MirFunction) addTemp(ty types.TypeID) TempID {
	id := TempID(len(f.TempTypes))
	f.TempTypes = append(f.TempTypes, ty)
	return id
}

// ExternalFunction is a predefined function with no MIR body (spec.md
// §4.7's `exit`, and any other hir.Function.IsExternal entry).
type ExternalFunction struct {
	Name string
	Sig  MirFunctionSig
}

// FuncRefKind distinguishes a call's two possible callees.
type FuncRefKind uint8

const (
	FuncRefInternal FuncRefKind = iota
	FuncRefExternal
)

// FunctionRef identifies a CallStmt's callee: either an internal
// MirFunction (by FuncID) or an external function (by name, since
// ExternalFunctions never get a FuncID of their own — a module rarely has
// more than one or two, and the name is already the stable key the parser/
// resolver used).
type FunctionRef struct {
	Kind     FuncRefKind
	Internal FuncID
	External string
}

func internalRef(id FuncID) FunctionRef { return FunctionRef{Kind: FuncRefInternal, Internal: id} }
func externalRef(name string) FunctionRef {
	return FunctionRef{Kind: FuncRefExternal, External: name}
}

// MirModule is the complete lowering output for one translation unit.
type MirModule struct {
	Functions         []*MirFunction
	ExternalFunctions []*ExternalFunction
}
