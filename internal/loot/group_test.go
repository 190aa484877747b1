package loot

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInstance(item *Item, g *Group) *ItemInstance {
	inst := &ItemInstance{Group: g, Index: g.NextItemIndex()}
	item.AddInstance(inst)
	return inst
}

func TestGroup_AddItemInstanceKeepsOrder(t *testing.T) {
	g := NewGroup("G1", nil, KindGroup)
	require.False(t, g.Built())

	apple := NewItem("apple")
	pear := NewItem("pear")
	require.NoError(t, g.AddItemInstance(newInstance(apple, g)))
	require.NoError(t, g.AddItemInstance(newInstance(pear, g)))

	assert.True(t, g.Built())
	require.Equal(t, 2, g.ItemCount())
	items := g.Items()
	assert.Equal(t, "apple", items[0].Name())
	assert.Equal(t, 0, items[0].Index)
	assert.Equal(t, "pear", items[1].Name())
	assert.Equal(t, 1, items[1].Index)

	inst, ok := g.Item("pear")
	require.True(t, ok)
	assert.Same(t, pear, inst.Item)
}

func TestGroup_AddItemInstanceRejectsDuplicateKey(t *testing.T) {
	g := NewGroup("G1", nil, KindGroup)
	apple := NewItem("apple")
	require.NoError(t, g.AddItemInstance(newInstance(apple, g)))

	err := g.AddItemInstance(newInstance(apple, g))
	assert.ErrorContains(t, err, `already holds item "apple"`)
	assert.Equal(t, 1, g.ItemCount())
}

func TestGroup_ItemsReturnsCopy(t *testing.T) {
	g := NewGroup("G1", nil, KindGroup)
	require.NoError(t, g.AddItemInstance(newInstance(NewItem("apple"), g)))

	items := g.Items()
	items[0] = nil
	assert.NotNil(t, g.Items()[0])
}

func TestLink(t *testing.T) {
	parent := NewGroup("C1", nil, KindContainer)
	child := NewGroup("G1", nil, KindGroup)
	ref := &GroupReference{Group: child, Parent: parent}

	Link(ref)

	require.Len(t, parent.GroupReferences, 1)
	require.Len(t, child.ParentGroupReferences, 1)
	assert.Same(t, ref, parent.GroupReferences[0])
	assert.Same(t, ref, child.ParentGroupReferences[0])
	assert.True(t, parent.Built())
	assert.False(t, child.Built())
}

func TestProbRule_Source(t *testing.T) {
	half := decimal.RequireFromString("0.5")
	tmpl := &ProbTemplate{Name: "T1"}
	yes := true

	assert.Equal(t, ProbDefault, ProbRule{}.Source())
	assert.Equal(t, ProbExplicit, ProbRule{Prob: &half}.Source())
	assert.Equal(t, ProbTemplated, ProbRule{Template: tmpl}.Source())

	both := ProbRule{Prob: &half, Template: tmpl, ForceProb: &yes}
	assert.Equal(t, ProbExplicit, both.Source())
	assert.True(t, both.Ambiguous())
	assert.True(t, both.Forced())
	assert.False(t, ProbRule{}.Forced())
}

func TestLevel_Range(t *testing.T) {
	l := Level{Level: "50,10", Prob: decimal.RequireFromString("0.25")}
	rng, err := l.Range()
	require.NoError(t, err)
	assert.Equal(t, &Count{Low: 10, High: 50}, rng)
}
