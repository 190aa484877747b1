package app

import (
	"github.com/specialistvlad/lootgraph/internal/loot"
	"github.com/specialistvlad/lootgraph/internal/store"
)

type containerList struct {
	Stats      store.Stats `json:"stats"`
	Containers []groupView `json:"containers"`
}

type probView struct {
	Source    string `json:"source"`
	Prob      string `json:"prob,omitempty"`
	Template  string `json:"template,omitempty"`
	ForceProb *bool  `json:"force_prob,omitempty"`
}

type groupView struct {
	Name    string         `json:"name"`
	Kind    string         `json:"kind"`
	Count   string         `json:"count,omitempty"`
	Fixed   bool           `json:"count_fixed,omitempty"`
	Items   []instanceView `json:"items"`
	Groups  []refView      `json:"groups"`
	Parents []string       `json:"parents"`
}

type instanceView struct {
	Item            string   `json:"item"`
	Group           string   `json:"group"`
	Index           int      `json:"index"`
	Count           string   `json:"count,omitempty"`
	Quality         string   `json:"quality,omitempty"`
	QualityTemplate string   `json:"quality_template,omitempty"`
	Prob            probView `json:"prob"`
}

type refView struct {
	Group string   `json:"group"`
	Index int      `json:"index"`
	Count string   `json:"count,omitempty"`
	Prob  probView `json:"prob"`
}

type itemView struct {
	Name      string         `json:"name"`
	Instances []instanceView `json:"instances"`
}

func newProbView(r loot.ProbRule) probView {
	v := probView{Source: r.Source().String(), ForceProb: r.ForceProb}
	if r.Prob != nil {
		v.Prob = r.Prob.String()
	}
	if r.Template != nil {
		v.Template = r.Template.Name
	}
	return v
}

func newInstanceView(in *loot.ItemInstance) instanceView {
	v := instanceView{
		Item:    in.Name(),
		Group:   in.Group.Name,
		Index:   in.Index,
		Count:   in.Count.String(),
		Quality: in.Quality.String(),
		Prob:    newProbView(in.ProbRule),
	}
	if in.QualityTemplate != nil {
		v.QualityTemplate = in.QualityTemplate.Name
	}
	return v
}

func newGroupView(g *loot.Group) groupView {
	v := groupView{
		Name:    g.Name,
		Kind:    g.Kind.String(),
		Count:   g.Count.String(),
		Fixed:   g.Count.Fixed(),
		Items:   []instanceView{},
		Groups:  []refView{},
		Parents: []string{},
	}
	for _, in := range g.Items() {
		v.Items = append(v.Items, newInstanceView(in))
	}
	for _, ref := range g.GroupReferences {
		v.Groups = append(v.Groups, refView{
			Group: ref.Group.Name,
			Index: ref.Index,
			Count: ref.Count.String(),
			Prob:  newProbView(ref.ProbRule),
		})
	}
	for _, ref := range g.ParentGroupReferences {
		v.Parents = append(v.Parents, ref.Parent.Name)
	}
	return v
}

func newItemView(it *loot.Item) itemView {
	v := itemView{Name: it.Name, Instances: []instanceView{}}
	for _, in := range it.Instances {
		v.Instances = append(v.Instances, newInstanceView(in))
	}
	return v
}
