package store

import (
	"context"
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/specialistvlad/lootgraph/internal/config"
	"github.com/specialistvlad/lootgraph/internal/ctxlog"
	"github.com/specialistvlad/lootgraph/internal/loot"
	"github.com/specialistvlad/lootgraph/internal/metrics"
)

// Store owns the resolved loot model. Groups includes containers;
// Containers is the subset view.
type Store struct {
	templates  map[string]*loot.ProbTemplate
	groups     map[string]*loot.Group
	containers map[string]*loot.Group
	items      map[string]*loot.Item

	diagnostics []Diagnostic
	metrics     *metrics.Metrics
}

// Stats summarizes a built store.
type Stats struct {
	Templates       int `json:"templates"`
	Groups          int `json:"groups"`
	Containers      int `json:"containers"`
	Items           int `json:"items"`
	ItemInstances   int `json:"item_instances"`
	GroupReferences int `json:"group_references"`
	Diagnostics     int `json:"diagnostics"`
}

// Option configures a build.
type Option func(*Store)

// WithMetrics records build metrics into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// Build resolves doc into a Store. On error no store is returned.
func Build(ctx context.Context, doc *config.Document, opts ...Option) (*Store, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting store construction.")
	start := time.Now()

	s := &Store{
		templates:  make(map[string]*loot.ProbTemplate),
		groups:     make(map[string]*loot.Group),
		containers: make(map[string]*loot.Group),
		items:      make(map[string]*loot.Item),
	}
	for _, opt := range opts {
		opt(s)
	}

	err := s.build(ctx, doc)
	s.metrics.ObserveBuild(time.Since(start).Seconds(), err)
	if err != nil {
		logger.Debug("Build: Store construction failed.", "error", err)
		return nil, err
	}

	stats := s.Stats()
	s.metrics.SetCollectionSize("templates", stats.Templates)
	s.metrics.SetCollectionSize("groups", stats.Groups)
	s.metrics.SetCollectionSize("containers", stats.Containers)
	s.metrics.SetCollectionSize("items", stats.Items)
	logger.Info("Loot store built.",
		"templates", stats.Templates,
		"groups", stats.Groups,
		"containers", stats.Containers,
		"items", stats.Items,
		"item_instances", stats.ItemInstances,
		"diagnostics", stats.Diagnostics,
		"duration", time.Since(start),
	)
	return s, nil
}

func (s *Store) build(ctx context.Context, doc *config.Document) error {
	logger := ctxlog.FromContext(ctx)
	if doc == nil {
		return errors.New("build store: nil document")
	}

	// Groups reference templates, so templates come first.
	if err := s.resolveTemplates(ctx, doc); err != nil {
		return err
	}
	logger.Debug("Build: Template pass complete.")

	if err := s.registerGroups(ctx, doc); err != nil {
		return err
	}
	logger.Debug("Build: Registry pass complete.")

	b := newBuilder(ctx, s, doc.RawGroups())
	for _, raw := range doc.Containers {
		if _, ok := s.containers[raw.Name]; !ok {
			continue
		}
		if err := b.buildGroup(raw.Name); err != nil {
			return err
		}
	}
	logger.Debug("Build: Graph pass complete.")

	s.reportCycles(ctx)
	return nil
}

// Template looks up a template by name.
func (s *Store) Template(name string) (*loot.ProbTemplate, bool) {
	t, ok := s.templates[name]
	return t, ok
}

// Group looks up a group or container by name.
func (s *Store) Group(name string) (*loot.Group, bool) {
	g, ok := s.groups[name]
	return g, ok
}

// Container looks up a container by name.
func (s *Store) Container(name string) (*loot.Group, bool) {
	g, ok := s.containers[name]
	return g, ok
}

// Item looks up a canonical item by name.
func (s *Store) Item(name string) (*loot.Item, bool) {
	i, ok := s.items[name]
	return i, ok
}

// Templates returns every template sorted by name.
func (s *Store) Templates() []*loot.ProbTemplate {
	return sortedValues(s.templates)
}

// Groups returns every group, containers included, sorted by name.
func (s *Store) Groups() []*loot.Group {
	return sortedValues(s.groups)
}

// Containers returns every container sorted by name.
func (s *Store) Containers() []*loot.Group {
	return sortedValues(s.containers)
}

// Items returns every canonical item sorted by name.
func (s *Store) Items() []*loot.Item {
	return sortedValues(s.items)
}

// Diagnostics returns the anomalies absorbed during the build, in the order
// they were met.
func (s *Store) Diagnostics() []Diagnostic {
	return slices.Clone(s.diagnostics)
}

// Stats counts the store's contents.
func (s *Store) Stats() Stats {
	st := Stats{
		Templates:   len(s.templates),
		Groups:      len(s.groups),
		Containers:  len(s.containers),
		Items:       len(s.items),
		Diagnostics: len(s.diagnostics),
	}
	for _, item := range s.items {
		st.ItemInstances += len(item.Instances)
	}
	for _, g := range s.groups {
		st.GroupReferences += len(g.GroupReferences)
	}
	return st
}

func sortedValues[V any](m map[string]V) []V {
	keys := slices.Sorted(maps.Keys(m))
	out := make([]V, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
