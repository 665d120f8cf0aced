package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/monocle-dev/herald/internal/metrics"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Message is the JSON frame sent to clients.
type Message struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// Hub fans notification events out to every websocket a user has open.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*client]bool
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHub(allowedOrigins []string, log zerolog.Logger) *Hub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Hub{
		clients: make(map[string]map[*client]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// Non-browser clients send no Origin.
				return origin == "" || allowed[origin]
			},
		},
		log: log.With().Str("component", "realtime").Logger(),
	}
}

func (h *Hub) register(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*client]bool)
	}
	h.clients[userID][c] = true
	metrics.RealtimeConnections.Inc()
}

func (h *Hub) unregister(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, exists := h.clients[userID]
	if !exists || !clients[c] {
		return
	}

	delete(clients, c)
	if len(clients) == 0 {
		delete(h.clients, userID)
	}
	metrics.RealtimeConnections.Dec()
}

// Connections returns the number of open connections for userID.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Publish sends event to all of userID's connections. Failed connections are dropped.
func (h *Hub) Publish(userID, event string, payload interface{}) {
	h.mu.RLock()
	clients, exists := h.clients[userID]
	if !exists || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	targets := make([]*client, 0, len(clients))
	for c := range clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	msg := Message{Type: event, Data: payload}
	for _, c := range targets {
		if err := c.write(msg); err != nil {
			h.log.Warn().Err(err).Str("user_id", userID).Str("event", event).Msg("Failed to publish to client")
			h.unregister(userID, c)
			c.conn.Close()
		}
	}
}

// ServeWS upgrades the request and keeps the connection registered for userID until it closes.
func (h *Hub) ServeWS(ctx *gin.Context, userID string) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", userID).Msg("WebSocket upgrade failed")
		return
	}

	c := &client{conn: conn}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.register(userID, c)

	defer func() {
		h.unregister(userID, c)
		conn.Close()
		h.log.Debug().Str("user_id", userID).Msg("WebSocket connection closed")
	}()

	if err := c.write(Message{Type: "connected", Message: "WebSocket connection established"}); err != nil {
		h.log.Warn().Err(err).Str("user_id", userID).Msg("Failed to send welcome message")
		return
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := c.ping(); err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn().Err(err).Str("user_id", userID).Msg("WebSocket error")
			}
			break
		}
	}
}
