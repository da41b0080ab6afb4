package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"biaslens/internal/infrastructure"
)

// Event type constants carried in the "type" field of every frame.
const (
	TypeConnection   = "connection"
	TypeInsightReady = "insight_ready"
	TypeInsightError = "insight_error"
)

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Inbound messages to fan out
	broadcast chan []byte

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	mu     sync.RWMutex
	logger *slog.Logger

	totalConnections int64
	messagesSent     int64

	quit    chan struct{}
	running bool
}

// NewHub creates a new Hub instance with dependency injection.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = logger.With(slog.String("component", "websocket.hub"))

	return &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
		quit:       make(chan struct{}),
	}
}

// Start launches the hub's main loop. Safe to call more than once.
func (h *Hub) Start() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	go h.Run()
}

// Run processes register, unregister and broadcast events until Stop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			h.logger.Info("hub shutting down")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.totalConnections++
			h.mu.Unlock()

			h.logger.Info("client registered",
				slog.Int("total_clients", count),
				slog.String("client_id", client.id),
				slog.String("remote_addr", client.remoteAddr))

			// Greet the new client so the UI knows the socket is live.
			connMsg := map[string]interface{}{
				"type": TypeConnection,
				"data": map[string]interface{}{
					"status":    "connected",
					"client_id": client.id,
				},
				"timestamp": time.Now().Format(time.RFC3339),
			}
			if jsonData, err := json.Marshal(connMsg); err == nil {
				select {
				case client.send <- jsonData:
				default:
					h.logger.Warn("connection message dropped, client buffer full",
						slog.String("client_id", client.id))
				}
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				count := len(h.clients)
				h.mu.Unlock()

				h.logger.Info("client unregistered",
					slog.Int("total_clients", count),
					slog.String("client_id", client.id),
					slog.Duration("connection_duration", time.Since(client.connectedAt)))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			clients := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mu.RUnlock()

			for _, client := range clients {
				select {
				case client.send <- message:
					h.messagesSent++
				default:
					// Client's send channel is full, drop it.
					h.mu.Lock()
					close(client.send)
					delete(h.clients, client)
					h.mu.Unlock()

					h.logger.Warn("client send buffer full, disconnecting",
						slog.String("client_id", client.id))
				}
			}
		}
	}
}

// Stop terminates the hub loop and closes all client channels.
func (h *Hub) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	close(h.quit)

	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()
}

// Register queues a client for registration with the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastJSON marshals message and fans it out to every client.
func (h *Hub) BroadcastJSON(message map[string]interface{}) {
	jsonData, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal broadcast message",
			slog.String("error", err.Error()))
		return
	}

	select {
	case h.broadcast <- jsonData:
	default:
		h.logger.Warn("broadcast channel full, message dropped",
			slog.Int("message_size", len(jsonData)))
	}
}

// BroadcastInsightReady announces a generated insight for an analysis.
func (h *Hub) BroadcastInsightReady(analysisID, insight string) {
	h.BroadcastJSON(map[string]interface{}{
		"type": TypeInsightReady,
		"data": map[string]interface{}{
			"analysis_id": analysisID,
			"insight":     insight,
		},
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// BroadcastInsightError announces that insight generation failed.
// Analysis results were already returned synchronously, so this is
// informational only.
func (h *Hub) BroadcastInsightError(analysisID, errMsg string) {
	h.BroadcastJSON(map[string]interface{}{
		"type": TypeInsightError,
		"data": map[string]interface{}{
			"analysis_id": analysisID,
			"error":       errMsg,
		},
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
