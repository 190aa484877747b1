package config

import "slices"

// Document is the unified, format-agnostic representation of one loot data
// set, as handed over by a deserializer.
type Document struct {
	// ProbTemplateBlocks holds every probability-template block found. At
	// most one is expected; consumers honor the first.
	ProbTemplateBlocks []*TemplateBlock
	// QualTemplateBlocks holds every quality-template block found.
	QualTemplateBlocks []*TemplateBlock
	Groups             []*Group
	Containers         []*Group
	// IgnoredContainers names containers that must not enter the model.
	IgnoredContainers []string
}

// TemplateBlock is one probability- or quality-template block.
type TemplateBlock struct {
	Templates []*Template
}

// Template is a named list of level/probability pairs.
type Template struct {
	Name   string
	Levels []*TemplateLevel
}

// TemplateLevel is a single rule of a template. Level is a range string
// ("0,50") and Prob a decimal string.
type TemplateLevel struct {
	Level string
	Prob  string
}

// Group is the raw form of both a loot group and a loot container.
type Group struct {
	Name    string
	Count   string
	Entries []*Entry
}

// Entry is one line of a group. Exactly one of Name (an item) or Group (a
// child group) is expected to be set.
type Entry struct {
	Name            string
	Group           string
	Count           string
	Prob            string
	ProbTemplate    string
	ForceProb       string
	Quality         string
	QualityTemplate string
}

// IsIgnoredContainer reports whether the named container is excluded from
// the model.
func (d *Document) IsIgnoredContainer(name string) bool {
	return slices.Contains(d.IgnoredContainers, name)
}

// RawGroups indexes groups and containers by name. When a name repeats, the
// first record wins; duplicates are reported by the store, not here.
func (d *Document) RawGroups() map[string]*Group {
	index := make(map[string]*Group, len(d.Groups)+len(d.Containers))
	for _, list := range [][]*Group{d.Groups, d.Containers} {
		for _, g := range list {
			if _, exists := index[g.Name]; !exists {
				index[g.Name] = g
			}
		}
	}
	return index
}

// Merge appends every record of other to d, keeping order.
func (d *Document) Merge(other *Document) {
	if other == nil {
		return
	}
	d.ProbTemplateBlocks = append(d.ProbTemplateBlocks, other.ProbTemplateBlocks...)
	d.QualTemplateBlocks = append(d.QualTemplateBlocks, other.QualTemplateBlocks...)
	d.Groups = append(d.Groups, other.Groups...)
	d.Containers = append(d.Containers, other.Containers...)
	for _, name := range other.IgnoredContainers {
		if !d.IsIgnoredContainer(name) {
			d.IgnoredContainers = append(d.IgnoredContainers, name)
		}
	}
}
