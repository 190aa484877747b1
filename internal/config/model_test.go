package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_IsIgnoredContainer(t *testing.T) {
	doc := &Document{IgnoredContainers: []string{"cntDev"}}
	assert.True(t, doc.IsIgnoredContainer("cntDev"))
	assert.False(t, doc.IsIgnoredContainer("cntCrate"))
}

func TestDocument_RawGroupsIncludesContainers(t *testing.T) {
	first := &Group{Name: "G1"}
	doc := &Document{
		Groups:     []*Group{first, {Name: "G1"}},
		Containers: []*Group{{Name: "C1"}},
	}

	index := doc.RawGroups()
	require.Len(t, index, 2)
	assert.Same(t, first, index["G1"], "first record should win")
	assert.Contains(t, index, "C1")
}

func TestDocument_Merge(t *testing.T) {
	doc := &Document{
		Groups:            []*Group{{Name: "A"}},
		IgnoredContainers: []string{"x"},
	}
	doc.Merge(&Document{
		ProbTemplateBlocks: []*TemplateBlock{{}},
		Groups:             []*Group{{Name: "B"}},
		Containers:         []*Group{{Name: "C"}},
		IgnoredContainers:  []string{"x", "y"},
	})
	doc.Merge(nil)

	require.Len(t, doc.Groups, 2)
	assert.Equal(t, "A", doc.Groups[0].Name)
	assert.Equal(t, "B", doc.Groups[1].Name)
	assert.Len(t, doc.Containers, 1)
	assert.Len(t, doc.ProbTemplateBlocks, 1)
	assert.Equal(t, []string{"x", "y"}, doc.IgnoredContainers)
}
