package source

// StringID identifies an interned string.
type StringID uint32

// NoStringID marks the absence of an interned string.
const NoStringID StringID = 0

// Interner deduplicates identifier and literal strings so later passes can
// compare names by integer id instead of by content.
type Interner struct {
	byID  []string
	index map[string]StringID
}

// NewInterner creates an Interner with the empty string pre-interned as
// NoStringID.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the stable id for s, minting a new one if necessary.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.index[s]; ok {
		return id
	}
	id := StringID(len(in.byID))
	cpy := string([]byte(s)) // detach from caller's buffer
	in.byID = append(in.byID, cpy)
	in.index[cpy] = id
	return id
}

// Lookup returns the string for id.
func (in *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(in.byID) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup panics if id was never interned.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("source: invalid StringID")
	}
	return s
}
