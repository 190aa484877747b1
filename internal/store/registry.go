package store

import (
	"context"
	"fmt"

	"github.com/specialistvlad/lootgraph/internal/config"
	"github.com/specialistvlad/lootgraph/internal/ctxlog"
	"github.com/specialistvlad/lootgraph/internal/loot"
)

// registerGroups performs the second pass: every group and every container
// not matching the ignore predicate becomes an empty placeholder.
func (s *Store) registerGroups(ctx context.Context, doc *config.Document) error {
	logger := ctxlog.FromContext(ctx)

	for _, raw := range doc.Groups {
		if _, err := s.register(raw, loot.KindGroup); err != nil {
			return err
		}
	}

	for _, raw := range doc.Containers {
		if doc.IsIgnoredContainer(raw.Name) {
			logger.Debug("Container ignored.", "container", raw.Name)
			continue
		}
		group, err := s.register(raw, loot.KindContainer)
		if err != nil {
			return err
		}
		s.containers[raw.Name] = group
	}

	logger.Debug("Groups registered.", "group_count", len(s.groups), "container_count", len(s.containers))
	return nil
}

func (s *Store) register(raw *config.Group, kind loot.Kind) (*loot.Group, error) {
	if _, exists := s.groups[raw.Name]; exists {
		keyKind := KeyGroup
		if kind == loot.KindContainer {
			keyKind = KeyContainer
		}
		return nil, &DuplicateKeyError{Kind: keyKind, Name: raw.Name}
	}
	count, err := parseCount("count", raw.Count)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", kind, raw.Name, err)
	}
	group := loot.NewGroup(raw.Name, count, kind)
	s.groups[raw.Name] = group
	return group, nil
}
