package diag

import "sort"

// Bag collects diagnostics, optionally up to a capacity limit.
type Bag struct {
	items []*Diagnostic
	limit int
}

// NewBag creates a Bag that stops accepting diagnostics after limit entries.
// A non-positive limit means unlimited.
func NewBag(limit int) *Bag {
	return &Bag{limit: limit}
}

// Add appends d, returning false if the bag is already at capacity.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil {
		return false
	}
	if b.limit > 0 && len(b.items) >= b.limit {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any diagnostic has at least SevError severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// Len returns the number of stored diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the stored diagnostics; callers must not mutate the slice.
func (b *Bag) Items() []*Diagnostic { return b.items }

// Sort orders diagnostics by file, start offset, and descending severity,
// for deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		a, c := b.items[i], b.items[j]
		if a.Primary.File != c.Primary.File {
			return a.Primary.File < c.Primary.File
		}
		if a.Primary.Start != c.Primary.Start {
			return a.Primary.Start < c.Primary.Start
		}
		return a.Severity > c.Severity
	})
}
