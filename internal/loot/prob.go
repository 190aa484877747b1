package loot

import "github.com/shopspring/decimal"

// ProbSource tells a consumer which field of a ProbRule drives selection.
type ProbSource int

const (
	// ProbDefault means neither a probability nor a template was declared;
	// the entry is weighted equally with its siblings.
	ProbDefault ProbSource = iota
	// ProbExplicit means the declared probability is used.
	ProbExplicit
	// ProbTemplated means the template's level rules are used.
	ProbTemplated
)

func (s ProbSource) String() string {
	switch s {
	case ProbExplicit:
		return "explicit"
	case ProbTemplated:
		return "template"
	default:
		return "default"
	}
}

// ProbRule is the probability definition carried by group references and
// item instances. Nothing here is computed; consumers evaluate it.
type ProbRule struct {
	Prob      *decimal.Decimal
	Template  *ProbTemplate
	ForceProb *bool
}

// Source resolves the rule. An explicit probability takes precedence over a
// template when a source sets both.
func (r ProbRule) Source() ProbSource {
	switch {
	case r.Prob != nil:
		return ProbExplicit
	case r.Template != nil:
		return ProbTemplated
	default:
		return ProbDefault
	}
}

// Ambiguous reports whether both a probability and a template are set.
func (r ProbRule) Ambiguous() bool {
	return r.Prob != nil && r.Template != nil
}

// Forced reports whether force_prob was declared true.
func (r ProbRule) Forced() bool {
	return r.ForceProb != nil && *r.ForceProb
}
