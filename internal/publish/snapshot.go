package publish

import (
	"github.com/specialistvlad/lootgraph/internal/loot"
	"github.com/specialistvlad/lootgraph/internal/store"
)

// Snapshot is the payload of the snapshot event: the build summary plus one
// entry per container with its direct contents.
type Snapshot struct {
	Stats       store.Stats         `json:"stats"`
	Containers  []ContainerSummary  `json:"containers"`
	Diagnostics []DiagnosticSummary `json:"diagnostics"`
}

// ContainerSummary lists the direct children of a container.
type ContainerSummary struct {
	Name   string   `json:"name"`
	Count  string   `json:"count,omitempty"`
	Items  []string `json:"items"`
	Groups []string `json:"groups"`
}

// DiagnosticSummary is the wire form of a store diagnostic.
type DiagnosticSummary struct {
	Reason string `json:"reason"`
	Group  string `json:"group,omitempty"`
	Entry  int    `json:"entry"`
	Name   string `json:"name"`
	Detail string `json:"detail,omitempty"`
}

// NewSnapshot summarizes r. Containers come in name order.
func NewSnapshot(r store.Reader) Snapshot {
	snap := Snapshot{
		Stats:       r.Stats(),
		Containers:  []ContainerSummary{},
		Diagnostics: []DiagnosticSummary{},
	}
	for _, c := range r.Containers() {
		snap.Containers = append(snap.Containers, summarize(c))
	}
	for _, d := range r.Diagnostics() {
		snap.Diagnostics = append(snap.Diagnostics, DiagnosticSummary{
			Reason: string(d.Reason),
			Group:  d.Group,
			Entry:  d.Entry,
			Name:   d.Name,
			Detail: d.Detail,
		})
	}
	return snap
}

func summarize(g *loot.Group) ContainerSummary {
	out := ContainerSummary{
		Name:   g.Name,
		Count:  g.Count.String(),
		Items:  []string{},
		Groups: []string{},
	}
	for _, inst := range g.Items() {
		out.Items = append(out.Items, inst.Name())
	}
	for _, ref := range g.GroupReferences {
		out.Groups = append(out.Groups, ref.Group.Name)
	}
	return out
}
