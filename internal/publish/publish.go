// Package publish pushes a summary of the built loot model to a socket.io
// server, so that game tooling can pick up fresh data without polling.
package publish

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/lootgraph/internal/ctxlog"
	"github.com/specialistvlad/lootgraph/internal/store"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// SnapshotEvent is the event name the snapshot is emitted under.
const SnapshotEvent = "loot:snapshot"

// DefaultTimeout bounds the connection handshake and, separately, the wait
// for the snapshot acknowledgement.
const DefaultTimeout = 15 * time.Second

// Config describes the target server.
type Config struct {
	URL       string
	Namespace string
	Timeout   time.Duration
}

// Validate checks that URL is an absolute http(s) or ws(s) URL.
func (c Config) Validate() error {
	if c.URL == "" {
		return errors.New("publish URL is empty")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("unsupported publish URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("publish URL %q has no host", c.URL)
	}
	return nil
}

// Publisher emits snapshots over socket.io.
type Publisher struct {
	cfg Config
}

// New validates cfg and returns a Publisher.
func New(cfg Config) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Publisher{cfg: cfg}, nil
}

// Publish connects, emits the snapshot of r, waits for the server to
// acknowledge it and disconnects. The consumer must ack SnapshotEvent; an
// unacknowledged snapshot is reported as an error.
func (p *Publisher) Publish(ctx context.Context, r store.Reader) error {
	logger := ctxlog.FromContext(ctx).With("url", p.cfg.URL, "namespace", p.cfg.Namespace)

	io, err := p.connect(ctx)
	if err != nil {
		return err
	}
	defer io.Disconnect()

	snap := NewSnapshot(r)
	logger.Debug("Emitting snapshot.", "event", SnapshotEvent, "containers", len(snap.Containers))

	acked := make(chan error, 1)
	ack := func(_ []any, err error) {
		select {
		case acked <- err:
		default:
		}
	}
	if err := io.Timeout(p.cfg.Timeout).Emit(SnapshotEvent, snap, ack); err != nil {
		return fmt.Errorf("failed to emit snapshot: %w", err)
	}

	select {
	case err := <-acked:
		if err != nil {
			return fmt.Errorf("snapshot was not acknowledged: %w", err)
		}
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while waiting for snapshot ack: %w", ctx.Err())
	case <-time.After(p.cfg.Timeout + time.Second):
		return fmt.Errorf("timed out after %s waiting for snapshot ack", p.cfg.Timeout)
	}

	logger.Info("Loot snapshot published.", "event", SnapshotEvent, "sid", io.Id())
	return nil
}

func (p *Publisher) connect(ctx context.Context) (*socket.Socket, error) {
	logger := ctxlog.FromContext(ctx)

	parsedURL, err := url.Parse(p.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)
	signal := func(err error) {
		select {
		case connectChan <- err:
		default:
		}
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(p.cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Socket.io connected.", "sid", io.Id())
		signal(nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		signal(connectError(errs...))
	})

	logger.Debug("Connecting to socket.io server.")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return io, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(p.cfg.Timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", p.cfg.Timeout)
	}
}

// connectError normalizes the arguments of a connect_error event.
func connectError(args ...any) error {
	if len(args) == 0 || args[0] == nil {
		return errors.New("socket.io connect error")
	}
	if err, ok := args[0].(error); ok {
		return err
	}
	return fmt.Errorf("%v", args[0])
}
