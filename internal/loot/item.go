package loot

// Item is the canonical entity for one item name. It is shared by every
// group that lists the name.
type Item struct {
	Name string
	// Instances holds one entry per (group, position) appearance, in build
	// order. It only grows.
	Instances []*ItemInstance
}

// NewItem creates an item with no instances.
func NewItem(name string) *Item {
	return &Item{Name: name}
}

// AddInstance binds inst to the item and appends it.
func (i *Item) AddInstance(inst *ItemInstance) {
	inst.Item = i
	i.Instances = append(i.Instances, inst)
}

// ItemInstance is one appearance of an Item inside one Group.
type ItemInstance struct {
	Item  *Item
	Group *Group
	// Index is the position within Group's items.
	Index int
	ProbRule

	// Count is the stack size drawn when the instance is selected.
	Count           *Count
	Quality         *Count
	QualityTemplate *ProbTemplate
}

// Name returns the item name.
func (in *ItemInstance) Name() string {
	if in.Item == nil {
		return ""
	}
	return in.Item.Name
}
