package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/specialistvlad/lootgraph/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_MixedFormatsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.hcl"), `group "groupA" { entry { name = "apple" } }`)
	writeFile(t, filepath.Join(dir, "b.xml"), `<lootcontainers><lootgroup name="groupB"><item name="bolt"/></lootgroup></lootcontainers>`)
	writeFile(t, filepath.Join(dir, "nested", "c.yml"), "containers:\n  - name: cntC\n    entries:\n      - group: groupA\n")
	writeFile(t, filepath.Join(dir, "README.md"), "not loot")

	doc, err := New().Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, doc.Groups, 2)
	assert.Equal(t, "groupA", doc.Groups[0].Name)
	assert.Equal(t, "groupB", doc.Groups[1].Name)
	require.Len(t, doc.Containers, 1)
	assert.Equal(t, "cntC", doc.Containers[0].Name)
}

func TestLoad_UnsupportedExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loot.json")
	writeFile(t, path, "{}")

	_, err := New().Load(context.Background(), path)
	assert.ErrorContains(t, err, "unsupported file extension")
}

func TestLoad_EmptyDirectory(t *testing.T) {
	_, err := New().Load(context.Background(), t.TempDir())
	assert.ErrorContains(t, err, "no loot files found")
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := New().Load(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "stat")
}

type fakeFormat struct {
	calls atomic.Int32
	fail  string
}

func (f *fakeFormat) LoadFile(_ context.Context, path string) (*config.Document, error) {
	f.calls.Add(1)
	if filepath.Base(path) == f.fail {
		return nil, errors.New("boom")
	}
	return &config.Document{Groups: []*config.Group{{Name: filepath.Base(path)}}}, nil
}

func TestLoad_MergesInPathOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"3.loot", "1.loot", "2.loot"} {
		writeFile(t, filepath.Join(dir, name), "")
	}
	fake := &fakeFormat{}

	doc, err := New(WithFormat(".loot", fake), WithConcurrency(2)).Load(context.Background(), dir)
	require.NoError(t, err)

	var names []string
	for _, g := range doc.Groups {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"1.loot", "2.loot", "3.loot"}, names)
	assert.EqualValues(t, 3, fake.calls.Load())
}

func TestLoad_PropagatesParseError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.loot"), "")
	writeFile(t, filepath.Join(dir, "bad.loot"), "")

	_, err := New(WithFormat(".loot", &fakeFormat{fail: "bad.loot"})).Load(context.Background(), dir)
	assert.ErrorContains(t, err, "boom")
}

func TestLoad_DeduplicatesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.loot")
	writeFile(t, path, "")
	fake := &fakeFormat{}

	doc, err := New(WithFormat(".loot", fake)).Load(context.Background(), dir, path)
	require.NoError(t, err)
	assert.Len(t, doc.Groups, 1)
}
