package yamlconfig

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/lootgraph/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
ignore_containers: [cntDev]
prob_templates:
  - name: T1
    levels:
      - {level: "0,50", prob: 0.5}
quality_templates:
  - name: QL1
    levels:
      - {level: 1, prob: .3}
groups:
  - name: groupNails
    count: 3
    entries:
      - {name: nail, count: "10,5"}
containers:
  - name: cntToolbox
    count: all
    entries:
      - {group: groupNails, prob: 0.25, force_prob: true}
      - {name: wrench, prob_template: T1, quality_template: QL1}
`

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	want := &config.Document{
		IgnoredContainers: []string{"cntDev"},
		ProbTemplateBlocks: []*config.TemplateBlock{{Templates: []*config.Template{{
			Name:   "T1",
			Levels: []*config.TemplateLevel{{Level: "0,50", Prob: "0.5"}},
		}}}},
		QualTemplateBlocks: []*config.TemplateBlock{{Templates: []*config.Template{{
			Name:   "QL1",
			Levels: []*config.TemplateLevel{{Level: "1", Prob: ".3"}},
		}}}},
		Groups: []*config.Group{{
			Name:    "groupNails",
			Count:   "3",
			Entries: []*config.Entry{{Name: "nail", Count: "10,5"}},
		}},
		Containers: []*config.Group{{
			Name:  "cntToolbox",
			Count: "all",
			Entries: []*config.Entry{
				{Group: "groupNails", Prob: "0.25", ForceProb: "true"},
				{Name: "wrench", ProbTemplate: "T1", QualityTemplate: "QL1"},
			},
		}},
	}
	assert.Empty(t, cmp.Diff(want, doc))
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := Decode(strings.NewReader("groups:\n  - name: g\n    weight: 3\n"))
	assert.ErrorContains(t, err, "weight")
}

func TestDecode_Empty(t *testing.T) {
	doc, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, doc.Groups)
	assert.Empty(t, doc.ProbTemplateBlocks)
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(a, []byte(sampleYAML), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("groups:\n  - name: groupExtra\n"), 0o600))

	doc, err := New().Load(context.Background(), a, b)
	require.NoError(t, err)
	require.Len(t, doc.Groups, 2)
	assert.Equal(t, "groupExtra", doc.Groups[1].Name)

	_, err = New().LoadFile(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "open YAML file")
}
