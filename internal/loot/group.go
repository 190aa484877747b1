package loot

import (
	"fmt"
	"slices"
)

// Kind tags a Group as a plain loot group or a container.
type Kind int

const (
	KindGroup Kind = iota
	KindContainer
)

func (k Kind) String() string {
	if k == KindContainer {
		return "container"
	}
	return "group"
}

// Group is a named collection of item instances and references to child
// groups. The reference structure is a DAG: a group may have many parents.
type Group struct {
	Name  string
	Count *Count
	Kind  Kind

	// GroupReferences are the outgoing edges, in declared order. The edges
	// are owned here.
	GroupReferences []*GroupReference
	// ParentGroupReferences are the incoming edges. They point at the same
	// values held by each parent's GroupReferences.
	ParentGroupReferences []*GroupReference

	items     []*ItemInstance
	itemIndex map[string]*ItemInstance
}

// NewGroup creates an empty, unbuilt group.
func NewGroup(name string, count *Count, kind Kind) *Group {
	return &Group{
		Name:      name,
		Count:     count,
		Kind:      kind,
		itemIndex: make(map[string]*ItemInstance),
	}
}

// Built reports whether the group has been populated. An empty group is
// indistinguishable from an unbuilt one, which is harmless: building it
// again adds nothing.
func (g *Group) Built() bool {
	return len(g.items) > 0 || len(g.GroupReferences) > 0
}

// Items returns the item instances in insertion order.
func (g *Group) Items() []*ItemInstance {
	return slices.Clone(g.items)
}

// ItemCount returns the number of item instances.
func (g *Group) ItemCount() int {
	return len(g.items)
}

// Item looks up an item instance by item name.
func (g *Group) Item(name string) (*ItemInstance, bool) {
	inst, ok := g.itemIndex[name]
	return inst, ok
}

// HasItem reports whether an instance with the given item name exists.
func (g *Group) HasItem(name string) bool {
	_, ok := g.itemIndex[name]
	return ok
}

// NextItemIndex is the positional index the next added instance receives.
func (g *Group) NextItemIndex() int {
	return len(g.items)
}

// AddItemInstance appends inst, keyed by its item name. Keys are unique per
// group.
func (g *Group) AddItemInstance(inst *ItemInstance) error {
	name := inst.Name()
	if _, exists := g.itemIndex[name]; exists {
		return fmt.Errorf("group %q already holds item %q", g.Name, name)
	}
	if g.itemIndex == nil {
		g.itemIndex = make(map[string]*ItemInstance)
	}
	g.items = append(g.items, inst)
	g.itemIndex[name] = inst
	return nil
}

// Link records ref on both endpoints: the parent's outgoing list and the
// child's incoming list.
func Link(ref *GroupReference) {
	ref.Parent.GroupReferences = append(ref.Parent.GroupReferences, ref)
	ref.Group.ParentGroupReferences = append(ref.Group.ParentGroupReferences, ref)
}

// GroupReference is a directed edge from Parent to the child Group.
type GroupReference struct {
	// Group is the child.
	Group  *Group
	Parent *Group
	// Index is the edge's position among Parent.GroupReferences.
	Index int
	Count *Count
	ProbRule
}
