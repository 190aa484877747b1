package store

import (
	"context"

	"github.com/specialistvlad/lootgraph/internal/loot"
)

// reportCycles walks the built references depth-first and reports every
// edge that closes a cycle. Cycles do not fail the build: the builder
// already visits each group once, but a consumer expanding references
// recursively would not terminate.
func (s *Store) reportCycles(ctx context.Context) {
	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	var visit func(g *loot.Group)
	visit = func(g *loot.Group) {
		visiting[g.Name] = true
		for _, ref := range g.GroupReferences {
			child := ref.Group
			if visiting[child.Name] {
				s.report(ctx, Diagnostic{
					Reason: ReasonReferenceCycle,
					Group:  g.Name,
					Entry:  ref.Index,
					Name:   child.Name,
					Detail: "reference leads back to a group on the current path",
				})
				continue
			}
			if !visited[child.Name] {
				visit(child)
			}
		}
		delete(visiting, g.Name)
		visited[g.Name] = true
	}

	for _, g := range s.Groups() {
		if !visited[g.Name] {
			visit(g)
		}
	}
}
