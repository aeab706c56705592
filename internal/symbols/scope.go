package symbols

import "corec/internal/hir"

// scope is one block's binding frame. fnBoundary marks the frame introduced
// by a function/method's parameter list, past which a nested closure-less
// block may not look when resolving `self` (this language has no
// closures, so fnBoundary only matters for diagnostics, not capture rules).
type scope struct {
	parent     *scope
	vars       map[string]*hir.Local
	fnBoundary bool
}

func newScope(parent *scope, fnBoundary bool) *scope {
	return &scope{parent: parent, vars: make(map[string]*hir.Local), fnBoundary: fnBoundary}
}

// declare shadows any outer binding of the same name, per ordinary lexical
// scoping: a `let x = ...` after a prior `x` hides it for the rest of the
// block, and never mutates the earlier Local.
func (s *scope) declare(l *hir.Local) {
	s.vars[l.Name] = l
}

func (s *scope) lookup(name string) (*hir.Local, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if l, ok := sc.vars[name]; ok {
			return l, true
		}
	}
	return nil, false
}
