package token

import "corec/internal/source"

// IntSuffix records an explicit numeric suffix on an integer literal, used
// to fix its type before any expectation is considered.
type IntSuffix uint8

const (
	SuffixNone IntSuffix = iota
	SuffixI32
	SuffixU32
	SuffixIsize
	SuffixUsize
)

// Token is a single lexical unit with its source span and literal payload.
type Token struct {
	Kind   Kind
	Span   source.Span
	Text   string // identifier text, or raw literal text for diagnostics
	IntVal uint64 // magnitude for IntLiteral (sign folded in when the AST is converted to HIR)
	Suffix IntSuffix
	StrVal string // decoded value for StringLiteral/CharLiteral
}
