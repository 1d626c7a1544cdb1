package snapshot

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/draw-odds/internal/metrics"
	"github.com/yourusername/draw-odds/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Dashboard clients connect from arbitrary origins
	},
}

// Client represents one connected snapshot stream subscriber
type Client struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// Hub maintains active WebSocket connections and broadcasts each new
// estimation result to all of them. Slow clients are dropped rather than
// allowed to stall the broadcast.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	logger     *logrus.Logger
	mu         sync.RWMutex
}

// NewHub creates a new snapshot stream hub
func NewHub(logger *logrus.Logger) *Hub {
	if logger == nil {
		logger = logrus.New()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run handles client registration and broadcast fan-out until ctx ends
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			metrics.UpdateWebsocketClients(float64(total))

			h.logger.WithField("total_clients", total).Info("Snapshot stream client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			metrics.UpdateWebsocketClients(float64(total))

			h.logger.WithField("total_clients", total).Info("Snapshot stream client disconnected")

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client cannot keep up; drop it
					delete(h.clients, client)
					close(client.send)
				}
			}
			total := len(h.clients)
			h.mu.Unlock()
			metrics.UpdateWebsocketClients(float64(total))
		}
	}
}

// Broadcast queues an estimation result for delivery to all clients
func (h *Hub) Broadcast(result *models.EstimationResult) {
	data, err := json.Marshal(result)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal snapshot stream message")
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("Snapshot stream broadcast queue full, dropping message")
	}
}

// HandleWebSocket upgrades a request into a stream subscription
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to upgrade WebSocket connection")
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
		hub:  h,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// ClientCount returns the number of active subscribers
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	metrics.UpdateWebsocketClients(0)
}

// readPump drains client messages; subscribers only listen, so anything read
// is discarded and the loop exists to detect disconnects
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.WithError(err).Debug("Snapshot stream read error")
			}
			return
		}
	}
}

// writePump pushes queued messages to the WebSocket connection
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			c.hub.logger.WithError(err).Debug("Failed to write snapshot stream message")
			return
		}
	}

	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
