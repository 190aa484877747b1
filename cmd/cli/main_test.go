package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/lootgraph/internal/cli"
	"github.com/specialistvlad/lootgraph/internal/store"
	"github.com/stretchr/testify/require"
)

func TestRun_BuildsFromXML(t *testing.T) {
	// --- Arrange ---
	xmlData := `<lootcontainers>
  <lootgroup name="groupFood"><item name="apple"/><item name="bread"/></lootgroup>
  <lootcontainer name="cntFridge"><item group="groupFood" prob="0.5"/></lootcontainer>
</lootcontainers>`
	filePath := filepath.Join(t.TempDir(), "loot.xml")
	require.NoError(t, os.WriteFile(filePath, []byte(xmlData), 0o600))
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, []string{"-log-format", "json", filePath})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), `"msg":"Loot store built."`)
	require.Contains(t, out.String(), `"containers":1`)
}

func TestRun_BuildFailure(t *testing.T) {
	// A group that references an undefined group is fatal.
	hclData := `container "cntFridge" {
  entry { group = "groupMissing" }
}`
	filePath := filepath.Join(t.TempDir(), "loot.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(hclData), 0o600))

	err := run(context.Background(), &bytes.Buffer{}, []string{filePath})

	require.Error(t, err)
	require.True(t, store.IsUnresolvedReference(err), "unexpected error: %v", err)
}

func TestRun_ShouldExit(t *testing.T) {
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	err := run(context.Background(), &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
