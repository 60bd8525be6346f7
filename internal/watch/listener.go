package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Channel is the NOTIFY channel the schema triggers fire on every insert.
// The payload is the changed table's name.
const Channel = "stammtisch_changed"

const (
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// Listen holds a dedicated connection (not from the pool) on the change
// channel and forwards every notification to the hub. It reconnects
// automatically on connection loss and blocks until ctx is cancelled.
// Intended to be called with `go`.
func Listen(ctx context.Context, dsn string, hub *Hub, logger zerolog.Logger) {
	log := logger.With().Str("component", "listener").Logger()
	backoff := reconnectBackoff

	for {
		connected, err := listenLoop(ctx, dsn, hub, log)
		if ctx.Err() != nil {
			log.Info().Msg("change listener stopped")
			return
		}
		if connected {
			// The session reached LISTEN; start the retry ladder over so a
			// later drop is not penalized for an old outage.
			backoff = reconnectBackoff
		}

		log.Error().Err(err).Dur("backoff", backoff).Msg("change listener disconnected, reconnecting")

		select {
		case <-time.After(backoff):
			backoff = nextBackoff(backoff)
		case <-ctx.Done():
			return
		}
	}
}

// nextBackoff doubles the retry delay up to maxReconnect.
func nextBackoff(cur time.Duration) time.Duration {
	return min(cur*2, maxReconnect)
}

// listenLoop runs a single listen session until the connection drops or
// the context is cancelled. The bool reports whether the session got as
// far as a successful LISTEN.
func listenLoop(ctx context.Context, dsn string, hub *Hub, log zerolog.Logger) (bool, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return false, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+Channel); err != nil {
		return false, fmt.Errorf("LISTEN %s: %w", Channel, err)
	}
	log.Info().Str("channel", Channel).Msg("change listener connected")

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return true, fmt.Errorf("wait for notification: %w", err)
		}
		hub.Notify(notification.Payload)
	}
}
