package testutil

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/specialistvlad/lootgraph/internal/publish"
	"github.com/stretchr/testify/require"
	sio "github.com/zishang520/socket.io/v2/socket"
)

// SnapshotServer is an in-process socket.io server that records snapshots
// emitted under publish.SnapshotEvent.
type SnapshotServer struct {
	// URL points at the socket.io endpoint of the server.
	URL       string
	snapshots chan publish.Snapshot
}

// NewSnapshotServer starts a loopback socket.io server. When ack is false
// the server receives snapshots but never acknowledges them.
func NewSnapshotServer(t *testing.T, ack bool) *SnapshotServer {
	t.Helper()

	io := sio.NewServer(nil, nil)
	srv := httptest.NewServer(io.ServeHandler(nil))
	s := &SnapshotServer{
		URL:       srv.URL + "/socket.io/",
		snapshots: make(chan publish.Snapshot, 4),
	}

	require.NoError(t, io.On("connection", func(clients ...any) {
		client := clients[0].(*sio.Socket)
		client.On(publish.SnapshotEvent, func(args ...any) {
			if len(args) == 0 {
				return
			}
			raw, err := json.Marshal(args[0])
			if err != nil {
				t.Errorf("re-encoding snapshot: %v", err)
				return
			}
			var snap publish.Snapshot
			if err := json.Unmarshal(raw, &snap); err != nil {
				t.Errorf("decoding snapshot: %v", err)
				return
			}
			s.snapshots <- snap

			if reply, ok := args[len(args)-1].(sio.Ack); ok && ack {
				reply([]any{"ok"}, nil)
			}
		})
	}))

	t.Cleanup(func() {
		io.Close(nil)
		srv.Close()
	})
	return s
}

// Snapshots returns the channel received snapshots are delivered on.
func (s *SnapshotServer) Snapshots() <-chan publish.Snapshot {
	return s.snapshots
}
