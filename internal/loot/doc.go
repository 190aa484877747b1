// Package loot holds the resolved loot model: probability templates, groups,
// the edges between groups, canonical items and their per-group instances.
//
// Values in this package are created by the store package during a build and
// are read-only afterwards. Cross references (a reference's child group, an
// instance's template) are shared pointers into the same store.
package loot
