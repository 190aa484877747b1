package store

import (
	"context"
	"log/slog"

	"github.com/specialistvlad/lootgraph/internal/config"
	"github.com/specialistvlad/lootgraph/internal/ctxlog"
	"github.com/specialistvlad/lootgraph/internal/loot"
)

// builder performs the third pass, materializing the subtree of a group.
type builder struct {
	ctx    context.Context
	logger *slog.Logger
	store  *Store
	raw    map[string]*config.Group
}

func newBuilder(ctx context.Context, s *Store, raw map[string]*config.Group) *builder {
	return &builder{
		ctx:    ctx,
		logger: ctxlog.FromContext(ctx),
		store:  s,
		raw:    raw,
	}
}

// buildGroup populates the named group and, recursively, every group it
// references. The name must already be registered.
func (b *builder) buildGroup(name string) error {
	group := b.store.groups[name]
	if group.Built() {
		b.logger.Debug("Group already built, skipping.", "group", name)
		return nil
	}

	raw := b.raw[name]
	for i, entry := range raw.Entries {
		var err error
		switch {
		case entry.Name != "":
			err = b.addItem(group, i, entry)
		case entry.Group != "":
			err = b.addGroupReference(group, i, entry)
		default:
			err = &MalformedEntryError{Group: name, Entry: i, Err: ErrEntryHasNoTarget}
		}
		if err != nil {
			return err
		}
	}

	b.store.metrics.GroupBuilt()
	b.logger.Debug("Group built.",
		"group", name,
		"items", group.ItemCount(),
		"group_references", len(group.GroupReferences),
	)
	return nil
}

// addItem turns an item entry into an instance of the canonical item.
func (b *builder) addItem(group *loot.Group, i int, entry *config.Entry) error {
	if group.HasItem(entry.Name) {
		b.store.report(b.ctx, Diagnostic{
			Reason: ReasonDuplicateItem,
			Group:  group.Name,
			Entry:  i,
			Name:   entry.Name,
			Detail: "item already listed in group, later entry skipped",
		})
		return nil
	}

	count, err := parseCount("count", entry.Count)
	if err != nil {
		return &MalformedEntryError{Group: group.Name, Entry: i, Err: err}
	}
	quality, err := parseCount("quality", entry.Quality)
	if err != nil {
		return &MalformedEntryError{Group: group.Name, Entry: i, Err: err}
	}
	rule, err := b.parseRule(group, i, entry)
	if err != nil {
		return err
	}

	if entry.ProbTemplate != "" {
		tmpl, ok := b.store.templates[entry.ProbTemplate]
		if !ok {
			b.store.report(b.ctx, Diagnostic{
				Reason: ReasonMissingItemTemplate,
				Group:  group.Name,
				Entry:  i,
				Name:   entry.Name,
				Detail: "unknown template " + entry.ProbTemplate + ", entry skipped",
			})
			return nil
		}
		rule.Template = tmpl
	}

	var qualityTemplate *loot.ProbTemplate
	if entry.QualityTemplate != "" {
		tmpl, ok := b.store.templates[entry.QualityTemplate]
		if ok {
			qualityTemplate = tmpl
		} else {
			b.store.report(b.ctx, Diagnostic{
				Reason: ReasonMissingQualityTemplate,
				Group:  group.Name,
				Entry:  i,
				Name:   entry.Name,
				Detail: "unknown quality template " + entry.QualityTemplate,
			})
		}
	}
	b.checkAmbiguous(group, i, entry.Name, rule)

	item, ok := b.store.items[entry.Name]
	if !ok {
		item = loot.NewItem(entry.Name)
		b.store.items[entry.Name] = item
	}
	inst := &loot.ItemInstance{
		Group:           group,
		Index:           group.NextItemIndex(),
		ProbRule:        rule,
		Count:           count,
		Quality:         quality,
		QualityTemplate: qualityTemplate,
	}
	item.AddInstance(inst)
	// HasItem was checked above, so this cannot collide.
	return group.AddItemInstance(inst)
}

// addGroupReference links group to the entry's child and builds the child.
func (b *builder) addGroupReference(group *loot.Group, i int, entry *config.Entry) error {
	child, ok := b.store.groups[entry.Group]
	if !ok {
		return &UnresolvedReferenceError{Kind: KeyGroup, Name: entry.Group, Group: group.Name, Entry: i}
	}

	count, err := parseCount("count", entry.Count)
	if err != nil {
		return &MalformedEntryError{Group: group.Name, Entry: i, Err: err}
	}
	rule, err := b.parseRule(group, i, entry)
	if err != nil {
		return err
	}
	if entry.ProbTemplate != "" {
		tmpl, ok := b.store.templates[entry.ProbTemplate]
		if !ok {
			return &UnresolvedReferenceError{Kind: KeyTemplate, Name: entry.ProbTemplate, Group: group.Name, Entry: i}
		}
		rule.Template = tmpl
	}
	b.checkAmbiguous(group, i, entry.Group, rule)

	ref := &loot.GroupReference{
		Group:    child,
		Parent:   group,
		Index:    len(group.GroupReferences),
		Count:    count,
		ProbRule: rule,
	}
	loot.Link(ref)
	b.logger.Debug("Linked group reference.", "from", group.Name, "to", child.Name, "index", ref.Index)

	return b.buildGroup(child.Name)
}

// parseRule parses the literal fields of a probability rule. The template
// is resolved by the caller, whose leniency differs per entry kind.
func (b *builder) parseRule(group *loot.Group, i int, entry *config.Entry) (loot.ProbRule, error) {
	prob, err := parseProb(entry.Prob)
	if err != nil {
		return loot.ProbRule{}, &MalformedEntryError{Group: group.Name, Entry: i, Err: err}
	}
	force, err := parseForceProb(entry.ForceProb)
	if err != nil {
		return loot.ProbRule{}, &MalformedEntryError{Group: group.Name, Entry: i, Err: err}
	}
	return loot.ProbRule{Prob: prob, ForceProb: force}, nil
}

func (b *builder) checkAmbiguous(group *loot.Group, i int, name string, rule loot.ProbRule) {
	if !rule.Ambiguous() {
		return
	}
	b.store.report(b.ctx, Diagnostic{
		Reason: ReasonAmbiguousProbability,
		Group:  group.Name,
		Entry:  i,
		Name:   name,
		Detail: "both prob and template " + rule.Template.Name + " set, prob takes precedence",
	})
}
