package mir

import "corec/internal/types"

// StmtKind distinguishes the five statement shapes a BasicBlock body may
// contain (spec.md §3.7, §4.8.2).
type StmtKind uint8

const (
	// StmtDefine materialises a fresh SSA temporary from an RValue.
	StmtDefine StmtKind = iota
	// StmtAssign writes an operand through a place (`x = v;`, field/index
	// assignment, or an NRVO-plan store into the return slot).
	StmtAssign
	// StmtLoad reads a place's current value into a fresh temporary.
	StmtLoad
	// StmtInit initialises a freshly-declared place from a struct/array
	// literal without an intervening temporary (spec.md §4.8.2's
	// "aggregate literals lower directly against their destination place").
	StmtInit
	// StmtCall invokes a FunctionRef, either discarding the result,
	// binding it to a fresh temporary, or writing it through an SRet
	// place.
	StmtCall
)

// Statement is one instruction inside a BasicBlock's straight-line body.
type Statement struct {
	Kind   StmtKind
	Define DefineStmt
	Assign AssignStmt
	Load   LoadStmt
	Init   InitStmt
	Call   CallStmt
}

// DefineStmt binds Dst (a fresh TempID) to the result of evaluating Value.
type DefineStmt struct {
	Dst   TempID
	Value RValue
}

// AssignStmt stores Src into Dst.
type AssignStmt struct {
	Dst Place
	Src Operand
}

// LoadStmt reads Src's current contents into the fresh temporary Dst.
type LoadStmt struct {
	Dst TempID
	Src Place
}

// InitKind distinguishes the two aggregate-literal shapes InitStmt can
// lower (spec.md §4.4.9/§4.8.2).
type InitKind uint8

const (
	InitStruct InitKind = iota
	InitArray
)

// FieldInit pairs a struct field position with its already-lowered
// initializer operand.
type FieldInit struct {
	Field int
	Value Operand
}

// InitPattern is the right-hand side of an StmtInit: either a list of
// per-field operands (struct literal) or a list of per-element operands
// (array literal; an ArrayRepeat lowers to Repeat+Count instead of
// enumerating every element).
type InitPattern struct {
	Kind     InitKind
	Fields   []FieldInit // InitStruct
	Elements []Operand   // InitArray, explicit element list
	Repeat   *Operand    // InitArray, non-nil for `[value; size]` form
	Count    int         // InitArray, element count (used with Repeat)
}

// InitStmt initialises Dst in place from Pattern.
type InitStmt struct {
	Dst     Place
	Pattern InitPattern
}

// CallDstKind distinguishes where a StmtCall's result, if any, goes.
type CallDstKind uint8

const (
	// CallDstNone discards the call's result (a void call used as a
	// statement).
	CallDstNone CallDstKind = iota
	// CallDstTemp binds the (ABI-direct) result to a fresh temporary.
	CallDstTemp
	// CallDstSRet passes DstPlace's address as the hidden first argument
	// per spec.md §4.8.1's AbiSRet convention.
	CallDstSRet
)

// CallStmt invokes Callee with Args, per DstKind routing the result to a
// temporary, an SRet place, or nowhere.
type CallStmt struct {
	DstKind  CallDstKind
	DstTemp  TempID
	DstPlace Place
	Callee   FunctionRef
	Args     []Operand
	RetType  types.TypeID
}

func defineStmt(dst TempID, v RValue) Statement {
	return Statement{Kind: StmtDefine, Define: DefineStmt{Dst: dst, Value: v}}
}

func assignStmt(dst Place, src Operand) Statement {
	return Statement{Kind: StmtAssign, Assign: AssignStmt{Dst: dst, Src: src}}
}

func loadStmt(dst TempID, src Place) Statement {
	return Statement{Kind: StmtLoad, Load: LoadStmt{Dst: dst, Src: src}}
}

func initStmt(dst Place, pattern InitPattern) Statement {
	return Statement{Kind: StmtInit, Init: InitStmt{Dst: dst, Pattern: pattern}}
}

func callStmt(c CallStmt) Statement {
	return Statement{Kind: StmtCall, Call: c}
}
