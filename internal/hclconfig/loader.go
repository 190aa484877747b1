package hclconfig

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/lootgraph/internal/config"
	"github.com/specialistvlad/lootgraph/internal/ctxlog"
)

// Loader implements config.Loader for HCL files.
type Loader struct{}

// New creates an HCL loader.
func New() *Loader {
	return &Loader{}
}

// Load parses every path in order and merges the results.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Document, error) {
	doc := &config.Document{}
	for _, path := range paths {
		fileDoc, err := l.LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		doc.Merge(fileDoc)
	}
	return doc, nil
}

// LoadFile parses a single HCL file. It is safe for concurrent use.
func (l *Loader) LoadFile(ctx context.Context, path string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing HCL loot file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return decode(file.Body, path)
}

// Parse decodes HCL source held in memory. filename is used in diagnostics.
func Parse(src []byte, filename string) (*config.Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(file.Body, filename)
}

func decode(body hcl.Body, filename string) (*config.Document, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	c := &fieldCollector{}
	doc := &config.Document{IgnoredContainers: parsed.IgnoreContainers}
	for _, block := range parsed.ProbTemplates {
		doc.ProbTemplateBlocks = append(doc.ProbTemplateBlocks, c.templateBlock(block))
	}
	for _, block := range parsed.QualTemplates {
		doc.QualTemplateBlocks = append(doc.QualTemplateBlocks, c.templateBlock(block))
	}
	for _, g := range parsed.Groups {
		doc.Groups = append(doc.Groups, c.group(g))
	}
	for _, g := range parsed.Containers {
		doc.Containers = append(doc.Containers, c.group(g))
	}

	if c.diags.HasErrors() {
		return nil, fmt.Errorf("invalid values in HCL file %s: %w", filename, c.diags)
	}
	return doc, nil
}

func (c *fieldCollector) templateBlock(block *hclTemplateBlock) *config.TemplateBlock {
	out := &config.TemplateBlock{}
	for _, t := range block.Templates {
		tmpl := &config.Template{Name: t.Name}
		for _, lvl := range t.Levels {
			tmpl.Levels = append(tmpl.Levels, &config.TemplateLevel{
				Level: c.str(lvl.Level),
				Prob:  c.str(lvl.Prob),
			})
		}
		out.Templates = append(out.Templates, tmpl)
	}
	return out
}

func (c *fieldCollector) group(g *hclGroup) *config.Group {
	out := &config.Group{Name: g.Name, Count: c.str(g.Count)}
	for _, e := range g.Entries {
		out.Entries = append(out.Entries, &config.Entry{
			Name:            c.str(e.Name),
			Group:           c.str(e.Group),
			Count:           c.str(e.Count),
			Prob:            c.str(e.Prob),
			ProbTemplate:    c.str(e.ProbTemplate),
			ForceProb:       c.str(e.ForceProb),
			Quality:         c.str(e.Quality),
			QualityTemplate: c.str(e.QualityTemplate),
		})
	}
	return out
}
