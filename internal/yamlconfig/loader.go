// Package yamlconfig loads loot documents written in YAML. All scalar
// values are kept as strings so that validation happens in one place when
// the store is built.
package yamlconfig

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/lootgraph/internal/config"
	"github.com/specialistvlad/lootgraph/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	IgnoreContainers []string       `yaml:"ignore_containers"`
	ProbTemplates    []yamlTemplate `yaml:"prob_templates"`
	QualTemplates    []yamlTemplate `yaml:"quality_templates"`
	Groups           []yamlGroup    `yaml:"groups"`
	Containers       []yamlGroup    `yaml:"containers"`
}

type yamlTemplate struct {
	Name   string      `yaml:"name"`
	Levels []yamlLevel `yaml:"levels"`
}

type yamlLevel struct {
	Level string `yaml:"level"`
	Prob  string `yaml:"prob"`
}

type yamlGroup struct {
	Name    string      `yaml:"name"`
	Count   string      `yaml:"count"`
	Entries []yamlEntry `yaml:"entries"`
}

type yamlEntry struct {
	Name            string `yaml:"name"`
	Group           string `yaml:"group"`
	Count           string `yaml:"count"`
	Prob            string `yaml:"prob"`
	ProbTemplate    string `yaml:"prob_template"`
	ForceProb       string `yaml:"force_prob"`
	Quality         string `yaml:"quality"`
	QualityTemplate string `yaml:"quality_template"`
}

// Loader implements config.Loader for YAML files.
type Loader struct{}

// New creates a YAML loader.
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

// LoadFile parses a single YAML file.
func (l *Loader) LoadFile(ctx context.Context, path string) (*config.Document, error) {
	ctxlog.FromContext(ctx).Debug("Parsing YAML loot file.", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open YAML file %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parse YAML file %s: %w", path, err)
	}
	return doc, nil
}

// Decode reads a YAML loot document from r. Unknown keys are rejected.
// An empty input yields an empty document.
func Decode(r io.Reader) (*config.Document, error) {
	var parsed yamlFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&parsed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	doc := &config.Document{IgnoredContainers: parsed.IgnoreContainers}
	if len(parsed.ProbTemplates) > 0 {
		doc.ProbTemplateBlocks = []*config.TemplateBlock{templateBlock(parsed.ProbTemplates)}
	}
	if len(parsed.QualTemplates) > 0 {
		doc.QualTemplateBlocks = []*config.TemplateBlock{templateBlock(parsed.QualTemplates)}
	}
	for _, g := range parsed.Groups {
		doc.Groups = append(doc.Groups, group(g))
	}
	for _, g := range parsed.Containers {
		doc.Containers = append(doc.Containers, group(g))
	}
	return doc, nil
}

func templateBlock(templates []yamlTemplate) *config.TemplateBlock {
	block := &config.TemplateBlock{}
	for _, t := range templates {
		tmpl := &config.Template{Name: t.Name}
		for _, lvl := range t.Levels {
			tmpl.Levels = append(tmpl.Levels, &config.TemplateLevel{Level: lvl.Level, Prob: lvl.Prob})
		}
		block.Templates = append(block.Templates, tmpl)
	}
	return block
}

func group(g yamlGroup) *config.Group {
	out := &config.Group{Name: g.Name, Count: g.Count}
	for _, e := range g.Entries {
		out.Entries = append(out.Entries, &config.Entry{
			Name:            e.Name,
			Group:           e.Group,
			Count:           e.Count,
			Prob:            e.Prob,
			ProbTemplate:    e.ProbTemplate,
			ForceProb:       e.ForceProb,
			Quality:         e.Quality,
			QualityTemplate: e.QualityTemplate,
		})
	}
	return out
}
