package publish

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/specialistvlad/lootgraph/internal/config"
	"github.com/specialistvlad/lootgraph/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{name: "http", url: "http://localhost:3000/socket.io/"},
		{name: "wss", url: "wss://example.com"},
		{name: "empty", url: "", wantErr: "empty"},
		{name: "scheme", url: "ftp://example.com", wantErr: "scheme"},
		{name: "no host", url: "http://", wantErr: "no host"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Config{URL: tc.url}.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	p, err := New(Config{URL: "http://localhost:3000"})
	require.NoError(t, err)
	assert.Equal(t, "/", p.cfg.Namespace)
	assert.Equal(t, DefaultTimeout, p.cfg.Timeout)
}

func TestNewSnapshot(t *testing.T) {
	doc := &config.Document{
		Groups: []*config.Group{{Name: "groupTools", Entries: []*config.Entry{{Name: "hammer"}}}},
		Containers: []*config.Group{
			{Name: "cntToolbox", Count: "all", Entries: []*config.Entry{{Group: "groupTools"}, {Name: "wrench"}}},
			{Name: "cntBox", Entries: []*config.Entry{{Name: "hammer"}, {Name: "hammer"}}},
		},
	}
	s, err := store.Build(context.Background(), doc)
	require.NoError(t, err)

	snap := NewSnapshot(s)
	require.Len(t, snap.Containers, 2)
	assert.Equal(t, ContainerSummary{Name: "cntBox", Items: []string{"hammer"}, Groups: []string{}}, snap.Containers[0])
	assert.Equal(t, ContainerSummary{Name: "cntToolbox", Count: "all", Items: []string{"wrench"}, Groups: []string{"groupTools"}}, snap.Containers[1])
	require.Len(t, snap.Diagnostics, 1)
	assert.Equal(t, string(store.ReasonDuplicateItem), snap.Diagnostics[0].Reason)
	assert.Equal(t, 2, snap.Stats.Items)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name":"cntToolbox"`)
}

func TestPublish_ConnectionFailure(t *testing.T) {
	p, err := New(Config{URL: "http://127.0.0.1:1", Timeout: 2 * time.Second})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = p.Publish(ctx, nil)
	assert.Error(t, err)
}

func TestConnectError(t *testing.T) {
	assert.EqualError(t, connectError(), "socket.io connect error")
	assert.EqualError(t, connectError(nil), "socket.io connect error")
	assert.EqualError(t, connectError(errors.New("refused")), "refused")
	assert.EqualError(t, connectError("xhr poll error"), "xhr poll error")
}
