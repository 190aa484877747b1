package integration_tests

import (
	"testing"

	"github.com/specialistvlad/lootgraph/internal/store"
	"github.com/specialistvlad/lootgraph/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestLeniency_AnomaliesAreLoggedAndSkipped(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"loot.xml": `<lootcontainers>
  <lootprobtemplates>
    <lootprobtemplate name="T1"><loot level="0" prob="1"/></lootprobtemplate>
  </lootprobtemplates>
  <lootqualitytemplates>
    <lootqualitytemplate name="QL1"><loot level="1" prob="0.3"/></lootqualitytemplate>
  </lootqualitytemplates>
  <lootcontainer name="cntCrate">
    <item name="apple"/>
    <item name="apple" count="5"/>
    <item name="pear" loot_prob_template="TMissing"/>
    <item name="rifle" loot_quality_template="QLMissing"/>
    <item name="knife" prob="0.2" loot_prob_template="T1"/>
    <item name="ammo" loot_prob_template="QL1"/>
  </lootcontainer>
</lootcontainers>`,
	}

	result := testutil.RunIntegrationTest(t, files)

	require.NoError(t, result.Err)
	s := result.App.Store()

	var got []store.Reason
	for _, d := range s.Diagnostics() {
		got = append(got, d.Reason)
	}
	require.Equal(t, []store.Reason{
		store.ReasonDuplicateItem,
		store.ReasonMissingItemTemplate,
		store.ReasonMissingQualityTemplate,
		store.ReasonAmbiguousProbability,
	}, got)

	crate, _ := s.Container("cntCrate")
	names := []string{}
	for _, inst := range crate.Items() {
		names = append(names, inst.Name())
	}
	require.Equal(t, []string{"apple", "rifle", "knife", "ammo"}, names)

	apple, _ := crate.Item("apple")
	require.Nil(t, apple.Count, "first duplicate wins")
	_, ok := s.Item("pear")
	require.False(t, ok)

	ammo, _ := crate.Item("ammo")
	require.Equal(t, "QL1", ammo.Template.Name, "quality templates resolve as probability templates")

	require.Contains(t, result.LogOutput, "Loot data anomaly, continuing.")
	require.Contains(t, result.LogOutput, "reason=missing_item_template")
}

func TestLeniency_ReferenceCycleIsReported(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"loot.hcl": `
group "groupA" {
  entry { name = "a" }
  entry { group = "groupB" }
}
group "groupB" {
  entry { name = "b" }
  entry { group = "groupA" }
}
container "cntLoop" {
  entry { group = "groupA" }
}
`,
	}

	result := testutil.RunIntegrationTest(t, files)

	require.NoError(t, result.Err, "cycles terminate and are not fatal")
	var cycles int
	for _, d := range result.App.Store().Diagnostics() {
		if d.Reason == store.ReasonReferenceCycle {
			cycles++
		}
	}
	require.Equal(t, 1, cycles)
}
