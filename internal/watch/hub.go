// Package watch turns the stored tables into observable read views.
// Every write fires a Postgres NOTIFY; a dedicated listener hands the
// change to the Hub, which recomputes the affected views in full and
// pushes fresh snapshots to every websocket subscriber. There is no
// incremental maintenance: the dataset is one card group's history and
// invalidate-and-recompute keeps the views trivially correct.
package watch

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/twentyab/stammtisch-tracker/internal/service"
)

// Snapshot is one pushed view update.
type Snapshot struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

const (
	snapshotSessions   = "sessions"
	snapshotStatistics = "statistics"

	writeWait      = 10 * time.Second
	sendBufferSize = 8
)

// Hub fans recomputed view snapshots out to subscribed clients.
type Hub struct {
	sessions service.SessionService
	stats    service.StatsService
	log      zerolog.Logger

	register   chan *Client
	unregister chan *Client
	changes    chan string
	done       chan struct{}

	mu      sync.RWMutex
	clients map[*Client]bool
}

func NewHub(sessions service.SessionService, stats service.StatsService, logger zerolog.Logger) *Hub {
	return &Hub{
		sessions:   sessions,
		stats:      stats,
		log:        logger.With().Str("component", "watch").Logger(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		changes:    make(chan string, 16),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
	}
}

// Notify reports a change on the named table. Safe to call from the
// listener goroutine; recomputation happens on the hub loop.
func (h *Hub) Notify(table string) {
	select {
	case h.changes <- table:
	default:
		// A queued recompute already covers this change.
	}
}

// Subscribe registers a websocket connection. After the hub has shut
// down the client comes back with a closed send channel so its pumps
// exit immediately.
func (h *Hub) Subscribe(conn *websocket.Conn) *Client {
	c := &Client{hub: h, conn: conn, send: make(chan []byte, sendBufferSize)}
	select {
	case h.register <- c:
	case <-h.done:
		close(c.send)
	}
	return c
}

// drop hands the client to the hub loop for removal without blocking
// once the hub has stopped.
func (h *Hub) drop(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run drives the hub until ctx is cancelled. New subscribers get an
// initial snapshot of every view; any table change recomputes and
// broadcasts all views.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			// Unblock drop and Subscribe before tearing clients down.
			close(h.done)
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Debug().Int("clients", total).Msg("watch client subscribed")
			for _, msg := range h.snapshots(ctx) {
				c.enqueue(msg)
			}

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Debug().Int("clients", total).Msg("watch client unsubscribed")

		case table := <-h.changes:
			h.mu.RLock()
			subscribed := len(h.clients)
			h.mu.RUnlock()
			if subscribed == 0 {
				continue
			}
			h.log.Debug().Str("table", table).Msg("change received, recomputing views")
			for _, msg := range h.snapshots(ctx) {
				h.broadcast(msg)
			}
		}
	}
}

// snapshots recomputes the broadcastable views. Session details are not
// pushed globally; detail subscribers refetch via the REST endpoint.
func (h *Hub) snapshots(ctx context.Context) [][]byte {
	var out [][]byte

	if summaries, err := h.sessions.SessionSummaries(ctx); err != nil {
		h.log.Error().Err(err).Msg("session summary recompute failed")
	} else if msg, err := json.Marshal(Snapshot{Type: snapshotSessions, Data: summaries}); err == nil {
		out = append(out, msg)
	}

	if overview, err := h.stats.StatisticsOverview(ctx); err != nil {
		h.log.Error().Err(err).Msg("statistics recompute failed")
	} else if msg, err := json.Marshal(Snapshot{Type: snapshotStatistics, Data: service.FlattenOverview(overview)}); err == nil {
		out = append(out, msg)
	}

	return out
}

func (h *Hub) broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.enqueue(msg)
	}
}

// Client is one websocket subscriber.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (c *Client) enqueue(msg []byte) {
	select {
	case c.send <- msg:
	default:
		// Slow consumer; drop the frame rather than block the hub.
	}
}

// WritePump forwards queued snapshots to the connection. Runs on its own
// goroutine per client and returns when the send channel closes.
func (c *Client) WritePump() {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			c.hub.drop(c)
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ReadPump discards inbound frames and unsubscribes on close. The watch
// socket is one-way; clients only listen.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.drop(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
