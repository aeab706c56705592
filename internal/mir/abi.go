package mir

import "corec/internal/types"

// AbiKind classifies how one parameter crosses a call boundary (spec.md
// §4.8.1).
type AbiKind uint8

const (
	// AbiDirect passes a scalar (integer/bool/char, reference, or string
	// header) by value in a single argument slot.
	AbiDirect AbiKind = iota
	// AbiByValCallerCopy passes an aggregate (struct/array) by value; the
	// caller materialises its own copy and passes that copy's address, so
	// the callee may treat it as owned without aliasing the caller's
	// original.
	AbiByValCallerCopy
	// AbiSRet is reserved for the synthetic return-slot parameter a
	// RetIndirectSRet function prepends to its parameter list; no ordinary
	// source parameter classifies to it.
	AbiSRet
)

// AbiParam is one entry of a MirFunctionSig's parameter list after ABI
// classification.
type AbiParam struct {
	Kind AbiKind
	Type types.TypeID
}

// RetKind classifies how a function's result crosses back to its caller
// (spec.md §4.8.1).
type RetKind uint8

const (
	// RetDirect returns a scalar in the normal return slot.
	RetDirect RetKind = iota
	// RetIndirectSRet returns an aggregate by writing it through a
	// caller-supplied pointer passed as a hidden first argument.
	RetIndirectSRet
	// RetVoid returns Unit; the call produces no usable value.
	RetVoid
	// RetNever marks a function whose return type is Never: every call
	// site is itself divergent and the MIR block after the call is
	// unreachable.
	RetNever
)

// ReturnDesc is a MirFunctionSig's classified return convention.
type ReturnDesc struct {
	Kind RetKind
	Type types.TypeID
}

// isAggregate reports whether ty is passed/returned indirectly: struct and
// array values copy by reference at the ABI boundary, everything else is a
// single scalar slot.
func isAggregate(in *types.Interner, ty types.TypeID) bool {
	t, ok := in.Lookup(ty)
	if !ok {
		return false
	}
	return t.Kind == types.KindStruct || t.Kind == types.KindArray
}

// classifyParam classifies one source parameter type.
func classifyParam(in *types.Interner, ty types.TypeID) AbiParam {
	if isAggregate(in, ty) {
		return AbiParam{Kind: AbiByValCallerCopy, Type: ty}
	}
	return AbiParam{Kind: AbiDirect, Type: ty}
}

// classifyReturn classifies a function's declared return type.
func classifyReturn(in *types.Interner, ty types.TypeID) ReturnDesc {
	b := in.Builtins()
	switch ty {
	case b.Unit:
		return ReturnDesc{Kind: RetVoid, Type: ty}
	case b.Never:
		return ReturnDesc{Kind: RetNever, Type: ty}
	}
	if isAggregate(in, ty) {
		return ReturnDesc{Kind: RetIndirectSRet, Type: ty}
	}
	return ReturnDesc{Kind: RetDirect, Type: ty}
}

// buildSig classifies every parameter and the return type of a source
// signature into a MirFunctionSig. Callers that need the synthetic SRet
// argument slot look at Return.Kind == RetIndirectSRet themselves — the
// slot is never added to AbiParams, since it is not a place the callee's
// Locals vector indexes the same way as an ordinary parameter (it is
// instead represented as the callee's designated return place, see
// MirFunction.RetPlace in func.go).
func buildSig(in *types.Interner, paramTypes []types.TypeID, retType types.TypeID) MirFunctionSig {
	abiParams := make([]AbiParam, len(paramTypes))
	for i, pt := range paramTypes {
		abiParams[i] = classifyParam(in, pt)
	}
	return MirFunctionSig{
		Params:    paramTypes,
		AbiParams: abiParams,
		Return:    classifyReturn(in, retType),
	}
}
