// Package xmlconfig loads loot documents in the game's loot.xml layout:
//
//	<lootcontainers>
//	  <ignorecontainer name="cntDev"/>
//	  <lootprobtemplates>
//	    <lootprobtemplate name="T1"><loot level="0,50" prob="0.5"/></lootprobtemplate>
//	  </lootprobtemplates>
//	  <lootqualitytemplates>
//	    <lootqualitytemplate name="QL1"><loot level="1" prob="0.3"/></lootqualitytemplate>
//	  </lootqualitytemplates>
//	  <lootgroup name="groupTools" count="2,1">
//	    <item name="hammer" loot_prob_template="T1"/>
//	    <item group="groupNails" count="3,1" prob="0.25"/>
//	  </lootgroup>
//	  <lootcontainer name="cntToolbox" count="all">
//	    <item group="groupTools"/>
//	  </lootcontainer>
//	</lootcontainers>
package xmlconfig

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/lootgraph/internal/config"
	"github.com/specialistvlad/lootgraph/internal/ctxlog"
)

type xmlRoot struct {
	XMLName       xml.Name           `xml:"lootcontainers"`
	Ignored       []xmlIgnore        `xml:"ignorecontainer"`
	ProbTemplates []xmlProbTemplates `xml:"lootprobtemplates"`
	QualTemplates []xmlQualTemplates `xml:"lootqualitytemplates"`
	Groups        []xmlGroup         `xml:"lootgroup"`
	Containers    []xmlGroup         `xml:"lootcontainer"`
}

type xmlIgnore struct {
	Name string `xml:"name,attr"`
}

type xmlProbTemplates struct {
	Templates []xmlTemplate `xml:"lootprobtemplate"`
}

type xmlQualTemplates struct {
	Templates []xmlTemplate `xml:"lootqualitytemplate"`
}

type xmlTemplate struct {
	Name   string     `xml:"name,attr"`
	Levels []xmlLevel `xml:"loot"`
}

type xmlLevel struct {
	Level string `xml:"level,attr"`
	Prob  string `xml:"prob,attr"`
}

type xmlGroup struct {
	Name  string    `xml:"name,attr"`
	Count string    `xml:"count,attr"`
	Items []xmlItem `xml:"item"`
}

type xmlItem struct {
	Name            string `xml:"name,attr"`
	Group           string `xml:"group,attr"`
	Count           string `xml:"count,attr"`
	Prob            string `xml:"prob,attr"`
	ProbTemplate    string `xml:"loot_prob_template,attr"`
	ForceProb       string `xml:"force_prob,attr"`
	Quality         string `xml:"quality,attr"`
	QualityTemplate string `xml:"loot_quality_template,attr"`
}

// Loader implements config.Loader for loot.xml files.
type Loader struct{}

// New creates an XML loader.
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

// LoadFile parses a single XML file.
func (l *Loader) LoadFile(ctx context.Context, path string) (*config.Document, error) {
	ctxlog.FromContext(ctx).Debug("Parsing XML loot file.", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open XML file %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode XML file %s: %w", path, err)
	}
	return doc, nil
}

// Decode reads one <lootcontainers> document from r.
func Decode(r io.Reader) (*config.Document, error) {
	var root xmlRoot
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, err
	}

	doc := &config.Document{}
	for _, ig := range root.Ignored {
		doc.IgnoredContainers = append(doc.IgnoredContainers, ig.Name)
	}
	for _, block := range root.ProbTemplates {
		doc.ProbTemplateBlocks = append(doc.ProbTemplateBlocks, templateBlock(block.Templates))
	}
	for _, block := range root.QualTemplates {
		doc.QualTemplateBlocks = append(doc.QualTemplateBlocks, templateBlock(block.Templates))
	}
	for _, g := range root.Groups {
		doc.Groups = append(doc.Groups, group(g))
	}
	for _, g := range root.Containers {
		doc.Containers = append(doc.Containers, group(g))
	}
	return doc, nil
}

func templateBlock(templates []xmlTemplate) *config.TemplateBlock {
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

func group(g xmlGroup) *config.Group {
	out := &config.Group{Name: g.Name, Count: g.Count}
	for _, it := range g.Items {
		out.Entries = append(out.Entries, &config.Entry{
			Name:            it.Name,
			Group:           it.Group,
			Count:           it.Count,
			Prob:            it.Prob,
			ProbTemplate:    it.ProbTemplate,
			ForceProb:       it.ForceProb,
			Quality:         it.Quality,
			QualityTemplate: it.QualityTemplate,
		})
	}
	return out
}
