package loot

import "github.com/shopspring/decimal"

// TemplateKind records which source block a template came from.
type TemplateKind int

const (
	ProbabilityTemplate TemplateKind = iota
	QualityTemplate
)

func (k TemplateKind) String() string {
	if k == QualityTemplate {
		return "quality"
	}
	return "probability"
}

// ProbTemplate is a named, reusable list of level rules. Quality templates
// share the namespace because some entries cite one where a probability
// template is expected.
type ProbTemplate struct {
	Name   string
	Kind   TemplateKind
	Levels []Level
}

// Level is a single (level, probability) rule.
type Level struct {
	Level string
	Prob  decimal.Decimal
}

// Range parses the level string with the count grammar.
func (l Level) Range() (*Count, error) {
	return ParseCount(l.Level)
}
