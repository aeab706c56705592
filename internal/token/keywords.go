package token

// keywords maps identifier text to its reserved-word Kind.
var keywords = map[string]Kind{
	"fn": KwFn, "let": KwLet, "mut": KwMut, "const": KwConst,
	"struct": KwStruct, "enum": KwEnum, "trait": KwTrait, "impl": KwImpl,
	"for": KwFor, "self": KwSelf, "Self": KwSelfType,
	"if": KwIf, "else": KwElse, "loop": KwLoop, "while": KwWhile,
	"break": KwBreak, "continue": KwContinue, "return": KwReturn,
	"as": KwAs, "true": KwTrue, "false": KwFalse,
}

// LookupKeyword returns the keyword Kind for text, or (Ident, false) if
// text is an ordinary identifier.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	if !ok {
		return Ident, false
	}
	return k, true
}
