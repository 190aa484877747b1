package store

import (
	"context"
	"fmt"

	"github.com/specialistvlad/lootgraph/internal/config"
	"github.com/specialistvlad/lootgraph/internal/ctxlog"
	"github.com/specialistvlad/lootgraph/internal/loot"
)

// resolveTemplates performs the first pass: probability templates from the
// first block, then quality templates from every block, into one namespace.
func (s *Store) resolveTemplates(ctx context.Context, doc *config.Document) error {
	logger := ctxlog.FromContext(ctx)

	if len(doc.ProbTemplateBlocks) > 0 {
		for i := 1; i < len(doc.ProbTemplateBlocks); i++ {
			s.report(ctx, Diagnostic{
				Reason: ReasonExtraProbTemplateBlock,
				Entry:  -1,
				Name:   fmt.Sprintf("block %d", i),
				Detail: fmt.Sprintf("%d templates ignored", len(doc.ProbTemplateBlocks[i].Templates)),
			})
		}
		for _, raw := range doc.ProbTemplateBlocks[0].Templates {
			if err := s.addTemplate(raw, loot.ProbabilityTemplate); err != nil {
				return err
			}
		}
	}

	for _, block := range doc.QualTemplateBlocks {
		for _, raw := range block.Templates {
			if err := s.addTemplate(raw, loot.QualityTemplate); err != nil {
				return err
			}
		}
	}

	logger.Debug("Templates resolved.", "template_count", len(s.templates))
	return nil
}

func (s *Store) addTemplate(raw *config.Template, kind loot.TemplateKind) error {
	if _, exists := s.templates[raw.Name]; exists {
		return &DuplicateKeyError{Kind: KeyTemplate, Name: raw.Name}
	}
	tmpl, err := newTemplate(raw, kind)
	if err != nil {
		return err
	}
	s.templates[raw.Name] = tmpl
	return nil
}

func newTemplate(raw *config.Template, kind loot.TemplateKind) (*loot.ProbTemplate, error) {
	tmpl := &loot.ProbTemplate{
		Name:   raw.Name,
		Kind:   kind,
		Levels: make([]loot.Level, 0, len(raw.Levels)),
	}
	for i, rawLevel := range raw.Levels {
		prob, err := parseDecimal("prob", rawLevel.Prob)
		if err != nil {
			return nil, fmt.Errorf("%s template %q level %d: %w", kind, raw.Name, i, err)
		}
		tmpl.Levels = append(tmpl.Levels, loot.Level{Level: rawLevel.Level, Prob: prob})
	}
	return tmpl, nil
}
