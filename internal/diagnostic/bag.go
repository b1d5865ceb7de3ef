package diagnostic

import "sort"

// Bag collects diagnostics accumulated while parsing or evaluating a
// program, the way surge's diag.Bag accumulates compiler diagnostics,
// scaled down to this runtime's flat Code/Severity shape (no spans,
// notes, or fixes — those are compiler concerns this runtime has no use
// for).
type Bag struct {
	items []*Diagnostic
}

// NewBag creates an empty Bag.
func NewBag() *Bag { return &Bag{} }

// Add appends d to the bag.
func (b *Bag) Add(d *Diagnostic) { b.items = append(b.items, d) }

// Len returns the number of diagnostics collected.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the collected diagnostics in insertion order.
func (b *Bag) Items() []*Diagnostic { return b.items }

// HasErrors reports whether any diagnostic has SevError or above.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by offset then code, for stable, deterministic
// reporting.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		if b.items[i].Offset != b.items[j].Offset {
			return b.items[i].Offset < b.items[j].Offset
		}
		return b.items[i].Code < b.items[j].Code
	})
}
