package hir

// Local is a owning binding slot: a function/method parameter or a
// `let`-introduced name. Every Variable expression points at exactly one
// Local, and every Local is owned by exactly one Function/Method body (or
// parameter list) — this is what makes a bare `*Local` pointer a safe,
// stable non-owning reference.
type Local struct {
	Name      string
	Type      *TypeAnnotation
	IsMutable bool
}
