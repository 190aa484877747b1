package store

import (
	"context"
	"fmt"

	"github.com/specialistvlad/lootgraph/internal/ctxlog"
)

// Reason classifies an anomaly the build absorbed instead of failing.
type Reason string

const (
	// ReasonMissingItemTemplate: an item entry cites an unknown probability
	// template. The entry is dropped.
	ReasonMissingItemTemplate Reason = "missing_item_template"
	// ReasonDuplicateItem: an item name repeats within one group. The first
	// occurrence wins.
	ReasonDuplicateItem Reason = "duplicate_item"
	// ReasonAmbiguousProbability: an entry sets both prob and a template.
	// The entry is kept; the explicit probability takes precedence.
	ReasonAmbiguousProbability Reason = "ambiguous_probability"
	// ReasonMissingQualityTemplate: an item entry cites an unknown quality
	// template. The item is kept without one.
	ReasonMissingQualityTemplate Reason = "missing_quality_template"
	// ReasonExtraProbTemplateBlock: more than one probability-template
	// block exists. Only the first is read.
	ReasonExtraProbTemplateBlock Reason = "extra_prob_template_block"
	// ReasonReferenceCycle: following group references leads back to a
	// group on the current path.
	ReasonReferenceCycle Reason = "reference_cycle"
)

// Diagnostic is one absorbed data-quality anomaly.
type Diagnostic struct {
	Reason Reason
	// Group is the group being built, empty for document-level anomalies.
	Group string
	// Entry is the entry position within Group, or -1.
	Entry int
	// Name is the item, template or group the anomaly is about.
	Name   string
	Detail string
}

func (d Diagnostic) String() string {
	if d.Group == "" {
		return fmt.Sprintf("%s: %s (%s)", d.Reason, d.Name, d.Detail)
	}
	return fmt.Sprintf("%s: group %q entry %d: %s (%s)", d.Reason, d.Group, d.Entry, d.Name, d.Detail)
}

// report records d, logs it and counts it.
func (s *Store) report(ctx context.Context, d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
	s.metrics.Diagnostic(string(d.Reason))
	ctxlog.FromContext(ctx).Warn("Loot data anomaly, continuing.",
		"reason", d.Reason,
		"group", d.Group,
		"entry", d.Entry,
		"name", d.Name,
		"detail", d.Detail,
	)
}
