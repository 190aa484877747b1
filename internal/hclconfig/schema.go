package hclconfig

import "github.com/hashicorp/hcl/v2"

// hclFile represents the top-level structure of a loot file for decoding.
type hclFile struct {
	IgnoreContainers []string            `hcl:"ignore_containers,optional"`
	ProbTemplates    []*hclTemplateBlock `hcl:"prob_templates,block"`
	QualTemplates    []*hclTemplateBlock `hcl:"quality_templates,block"`
	Groups           []*hclGroup         `hcl:"group,block"`
	Containers       []*hclGroup         `hcl:"container,block"`
}

type hclTemplateBlock struct {
	Templates []*hclTemplate `hcl:"template,block"`
}

type hclTemplate struct {
	Name   string      `hcl:"name,label"`
	Levels []*hclLevel `hcl:"level,block"`
}

type hclLevel struct {
	Level hcl.Expression `hcl:"level"`
	Prob  hcl.Expression `hcl:"prob"`
}

type hclGroup struct {
	Name    string         `hcl:"name,label"`
	Count   hcl.Expression `hcl:"count,optional"`
	Entries []*hclEntry    `hcl:"entry,block"`
}

type hclEntry struct {
	Name            hcl.Expression `hcl:"name,optional"`
	Group           hcl.Expression `hcl:"group,optional"`
	Count           hcl.Expression `hcl:"count,optional"`
	Prob            hcl.Expression `hcl:"prob,optional"`
	ProbTemplate    hcl.Expression `hcl:"prob_template,optional"`
	ForceProb       hcl.Expression `hcl:"force_prob,optional"`
	Quality         hcl.Expression `hcl:"quality,optional"`
	QualityTemplate hcl.Expression `hcl:"quality_template,optional"`
}
