package integration_tests

import (
	"testing"

	"github.com/specialistvlad/lootgraph/internal/store"
	"github.com/specialistvlad/lootgraph/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestErrorHandling_FatalErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files map[string]string
		check func(error) bool
		want  string
	}{
		{
			name: "duplicate group across files",
			files: map[string]string{
				"a.hcl": `group "groupA" { entry { name = "x" } }`,
				"b.xml": `<lootcontainers><lootgroup name="groupA"><item name="y"/></lootgroup></lootcontainers>`,
			},
			check: store.IsDuplicateKey,
			want:  `duplicate group name "groupA"`,
		},
		{
			name: "unknown child group",
			files: map[string]string{
				"loot.hcl": `container "cntBox" { entry { group = "groupMissing" } }`,
			},
			check: store.IsUnresolvedReference,
			want:  `unknown group "groupMissing"`,
		},
		{
			name: "unknown template on a group reference",
			files: map[string]string{
				"loot.hcl": `
group "groupA" { entry { name = "x" } }
container "cntBox" {
  entry {
    group         = "groupA"
    prob_template = "TMissing"
  }
}`,
			},
			check: store.IsUnresolvedReference,
			want:  `unknown template "TMissing"`,
		},
		{
			name: "entry with neither name nor group",
			files: map[string]string{
				"loot.yaml": "containers:\n  - name: cntBox\n    entries:\n      - {count: 2}\n",
			},
			check: store.IsMalformedEntry,
			want:  `group "cntBox" entry 0`,
		},
		{
			name: "non-numeric count",
			files: map[string]string{
				"loot.xml": `<lootcontainers><lootcontainer name="cntBox"><item name="x" count="lots"/></lootcontainer></lootcontainers>`,
			},
			check: store.IsMalformedEntry,
			want:  `"lots"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := testutil.RunIntegrationTest(t, tc.files)

			require.Error(t, result.Err)
			require.True(t, tc.check(result.Err), "unexpected error type: %v", result.Err)
			require.Contains(t, result.Err.Error(), tc.want)
			require.Nil(t, result.App.Store(), "no partial store on failure")
		})
	}
}

func TestErrorHandling_InvalidSyntaxIsRejected(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, map[string]string{
		"loot.hcl": `group "groupA" {`,
	})

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "failed to load loot data")
}
