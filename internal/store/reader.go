package store

import "github.com/specialistvlad/lootgraph/internal/loot"

// Reader is the read-only view of a built store consumed by exporters,
// publishers and the HTTP lookups.
//
// Slice-returning methods return name-sorted snapshots. Lookups return the
// shared model values, which callers must not modify.
type Reader interface {
	Template(name string) (*loot.ProbTemplate, bool)
	Group(name string) (*loot.Group, bool)
	Container(name string) (*loot.Group, bool)
	Item(name string) (*loot.Item, bool)

	Templates() []*loot.ProbTemplate
	Groups() []*loot.Group
	Containers() []*loot.Group
	Items() []*loot.Item

	Diagnostics() []Diagnostic
	Stats() Stats
}

var _ Reader = (*Store)(nil)
