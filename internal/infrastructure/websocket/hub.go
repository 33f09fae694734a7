package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shesho2101/ProyectoIntegrador2/pkg/logger"
	"github.com/shesho2101/ProyectoIntegrador2/pkg/metrics"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeSessionExpired MessageType = "session_expired"
	MessageTypeRedirect       MessageType = "redirect"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType `json:"type"`
	ClientID  string      `json:"clientId"`
	Message   string      `json:"message,omitempty"`
	Redirect  string      `json:"redirect,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// Client represents a WebSocket client connection
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	clientID string
}

// Hub manages WebSocket connections per storefront client
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	done       chan struct{}
	upgrader   websocket.Upgrader
	mu         sync.RWMutex
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// AllowOrigins builds an upgrade origin check from the CORS allow list.
// A "*" entry accepts every origin; requests without an Origin header pass.
func AllowOrigins(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		set[origin] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}

// NewHub creates a new Hub. A nil checkOrigin keeps gorilla's same-origin check.
func NewHub(checkOrigin func(r *http.Request) bool, m *metrics.Metrics, logger logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		metrics: m,
		logger:  logger,
	}
}

// Run starts the hub's main loop and blocks until ctx is done
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.clientID] == nil {
				h.clients[client.clientID] = make(map[*Client]bool)
			}
			h.clients[client.clientID][client] = true
			h.gauge(1)
			h.mu.Unlock()
			h.logger.Debug("WebSocket client registered", "clientId", client.clientID)

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				h.logger.Error("Failed to marshal websocket message", "error", err)
				continue
			}

			h.mu.RLock()
			targets := make([]*Client, 0, len(h.clients[message.ClientID]))
			for client := range h.clients[message.ClientID] {
				targets = append(targets, client)
			}
			h.mu.RUnlock()

			h.logger.Debug("Sending websocket message", "type", message.Type, "clientId", message.ClientID, "connections", len(targets))
			for _, client := range targets {
				select {
				case client.send <- data:
				default:
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.clients[client.clientID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.clientID)
	}
	h.gauge(-1)
	h.logger.Debug("WebSocket client unregistered", "clientId", client.clientID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, clients := range h.clients {
		for client := range clients {
			close(client.send)
			h.gauge(-1)
		}
		delete(h.clients, id)
	}
}

func (h *Hub) gauge(delta float64) {
	if h.metrics != nil {
		h.metrics.WebsocketClients.Add(delta)
	}
}

// NotifySessionExpired tells every connection of clientID that its session is
// gone. An empty message means the client only has to navigate to redirect.
func (h *Hub) NotifySessionExpired(clientID, message, redirect string) {
	msgType := MessageTypeSessionExpired
	if message == "" {
		msgType = MessageTypeRedirect
	}
	msg := &Message{
		Type:      msgType,
		ClientID:  clientID,
		Message:   message,
		Redirect:  redirect,
		Timestamp: time.Now().UnixMilli(),
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.logger.Warn("WebSocket broadcast queue full, dropping notice", "clientId", clientID, "type", msgType)
	}
}

// ClientCount returns the number of connections open for clientID
func (h *Hub) ClientCount(clientID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[clientID])
}

// ServeWS upgrades the request and subscribes the connection to clientID's notices
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, clientID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "clientId", clientID, "error", err)
		return
	}

	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		clientID: clientID,
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump drains inbound frames so control messages are processed; the
// storefront never sends anything meaningful
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("WebSocket read error", "clientId", c.clientID, "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
