// Package broadcast pushes the watch status table to websocket clients.
package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/conneroisu/htmplate/internal/logging"
	"github.com/conneroisu/htmplate/internal/validation"
)

const (
	sendBuffer   = 16
	writeTimeout = 10 * time.Second
	pingInterval = 54 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans status snapshots out to connected clients. New clients receive
// the latest snapshot on connect.
type Hub struct {
	allowedOrigins []string
	logger         logging.Logger

	mu      sync.RWMutex
	clients map[*websocket.Conn]*client
	latest  []byte

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a hub accepting connections from allowedOrigins. Requests
// without an Origin header come from non-browser clients and are accepted.
func NewHub(allowedOrigins []string, logger logging.Logger) *Hub {
	if logger == nil {
		logger = logging.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		allowedOrigins: allowedOrigins,
		logger:         logger.WithComponent("broadcast"),
		clients:        make(map[*websocket.Conn]*client),
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish sends snapshot to every client. Clients that cannot keep up are
// disconnected.
func (h *Hub) Publish(snapshot Snapshot) {
	message, err := json.Marshal(snapshot)
	if err != nil {
		h.logger.Error(h.ctx, err, "could not encode snapshot")
		return
	}

	h.mu.Lock()
	h.latest = message
	var slow []*client
	for _, c := range h.clients {
		select {
		case c.send <- message:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.Unlock()

	for _, c := range slow {
		h.logger.Warn(h.ctx, nil, "dropping slow client")
		h.unregister(c, websocket.StatusPolicyViolation, "client too slow")
	}
}

// ServeHTTP upgrades the request to a websocket connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if origin := r.Header.Get("Origin"); origin != "" {
		if err := validation.ValidateOrigin(origin, h.allowedOrigins); err != nil {
			h.logger.Warn(r.Context(), err, "websocket connection rejected", "remote", r.RemoteAddr)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// origins are validated above
		OriginPatterns:  []string{"*"},
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		h.logger.Warn(r.Context(), err, "websocket upgrade failed", "remote", r.RemoteAddr)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(c) {
		_ = conn.Close(websocket.StatusGoingAway, "shutting down")
		return
	}
	h.logger.Debug(r.Context(), "websocket client connected", "remote", r.RemoteAddr, "clients", h.Clients())

	// clients never send messages; CloseRead handles control frames
	ctx := conn.CloseRead(h.ctx)
	h.writeLoop(ctx, c)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*websocket.Conn]*client)
	h.mu.Unlock()

	for _, c := range clients {
		_ = c.conn.Close(websocket.StatusGoingAway, "shutting down")
	}
	h.cancel()
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ctx.Err() != nil {
		return false
	}
	h.clients[c.conn] = c
	if h.latest != nil {
		c.send <- h.latest
	}
	return true
}

func (h *Hub) unregister(c *client, status websocket.StatusCode, reason string) {
	h.mu.Lock()
	_, exists := h.clients[c.conn]
	delete(h.clients, c.conn)
	h.mu.Unlock()

	if exists {
		_ = c.conn.Close(status, reason)
	}
}

func (h *Hub) writeLoop(ctx context.Context, c *client) {
	defer h.unregister(c, websocket.StatusNormalClosure, "")

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case message := <-c.send:
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					h.logger.Debug(ctx, "websocket write failed", "error", err.Error())
				}
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
