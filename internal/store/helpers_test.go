package store

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/lootgraph/internal/config"
	"github.com/specialistvlad/lootgraph/internal/ctxlog"
	"github.com/specialistvlad/lootgraph/internal/loot"
	"github.com/stretchr/testify/require"
)

// testContext returns a context whose logger writes debug-level text
// records into the returned buffer.
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger), buf
}

func item(name string) *config.Entry {
	return &config.Entry{Name: name}
}

func ref(group string) *config.Entry {
	return &config.Entry{Group: group}
}

func group(name, count string, entries ...*config.Entry) *config.Group {
	return &config.Group{Name: name, Count: count, Entries: entries}
}

func template(name string, levels ...string) *config.Template {
	t := &config.Template{Name: name}
	for i := 0; i+1 < len(levels); i += 2 {
		t.Levels = append(t.Levels, &config.TemplateLevel{Level: levels[i], Prob: levels[i+1]})
	}
	return t
}

func mustBuild(t *testing.T, doc *config.Document, opts ...Option) (*Store, *bytes.Buffer) {
	t.Helper()
	ctx, buf := testContext(t)
	s, err := Build(ctx, doc, opts...)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s, buf
}

func itemNames(instances []*loot.ItemInstance) []string {
	names := make([]string, 0, len(instances))
	for _, inst := range instances {
		names = append(names, inst.Name())
	}
	return names
}

func reasons(diags []Diagnostic) []Reason {
	out := make([]Reason, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Reason)
	}
	return out
}

// counterValue reads a counter from a gathered registry by metric name and
// optional label pair.
func counterValue(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if label == "" {
				return m.GetCounter().GetValue()
			}
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
