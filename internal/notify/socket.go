package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/investbuddy/circles-api/internal/config"
)

// SocketPublisher delivers events to the local listener process over a
// short-lived WebSocket connection: dial, send one JSON message, linger
// briefly, close. The listener negotiates the application sub-protocol during
// the handshake.
type SocketPublisher struct {
	logger *slog.Logger
	dialer *websocket.Dialer
	url    string
	linger time.Duration
}

// NewSocketPublisher creates a publisher for the configured listener address.
// No connection is made until an event is published; an absent listener is a
// per-send failure, not a startup failure.
func NewSocketPublisher(logger *slog.Logger, cfg *config.NotifierConfig) *SocketPublisher {
	return &SocketPublisher{
		logger: logger,
		dialer: &websocket.Dialer{
			HandshakeTimeout: cfg.DialTimeout,
			Subprotocols:     []string{cfg.Subprotocol},
		},
		url:    cfg.URL,
		linger: cfg.Linger,
	}
}

// Publish opens a connection, sends the event as a single JSON message, and
// closes the connection after the configured linger.
func (p *SocketPublisher) Publish(ctx context.Context, key string, event interface{}) error {
	conn, _, err := p.dialer.DialContext(ctx, p.url, nil)
	if err != nil {
		return fmt.Errorf("failed to reach listener at %s: %w", p.url, err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(event); err != nil {
		return fmt.Errorf("failed to send event to listener: %w", err)
	}

	p.logger.Debug("Event sent to listener", "url", p.url, "key", key)

	// Give the listener time to read before tearing the connection down.
	select {
	case <-time.After(p.linger):
	case <-ctx.Done():
	}

	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)

	return nil
}

// Close is a no-op; connections are per-send.
func (p *SocketPublisher) Close() error {
	return nil
}
