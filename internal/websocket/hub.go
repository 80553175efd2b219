// internal/websocket/hub.go
// WebSocket hub manages client connections and message broadcasting

package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"bracketpool/internal/services"
)

// Hub maintains active websocket connections and broadcasts messages
type Hub struct {
	// Registered clients by tournament year
	years map[string]map[*Client]bool

	// Registered clients by user ID
	users map[string]*Client

	// Register client
	register chan *Client

	// Unregister client
	unregister chan *Client

	// Broadcast messages to a tournament year
	broadcast chan *Message

	// Services
	services *services.Container
	logger   *log.Logger

	// Mutex for concurrent access
	mu sync.RWMutex
}

// Message represents a WebSocket message
type Message struct {
	Type         string      `json:"type"`
	Year         string      `json:"year,omitempty"`
	UserID       string      `json:"user_id,omitempty"`
	Data         interface{} `json:"data"`
}

// NewHub creates a new WebSocket hub
func NewHub(services *services.Container, logger *log.Logger) *Hub {
	return &Hub{
		years:       make(map[string]map[*Client]bool),
		users:       make(map[string]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *Message, 256),
		services:    services,
		logger:      logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// registerClient adds a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Register user connection
	if client.userID != "" {
		// Close existing connection for this user
		if existing, exists := h.users[client.userID]; exists {
			existing.close()
			h.removeClient(existing)
		}
		h.users[client.userID] = client
	}

	// Register tournament-year connections
	for _, year := range client.years {
		if h.years[year] == nil {
			h.years[year] = make(map[*Client]bool)
		}
		h.years[year][client] = true
	}

	h.logger.Printf("Client registered: %s (years: %v)", client.userID, client.years)
}

// unregisterClient removes a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeClient(client)
	client.close()

	h.logger.Printf("Client unregistered: %s", client.userID)
}

// removeClient removes client from all registrations
func (h *Hub) removeClient(client *Client) {
	// Remove from user map
	if client.userID != "" {
		delete(h.users, client.userID)
	}

	// Remove from tournament-year maps
	for _, year := range client.years {
		if clients, exists := h.years[year]; exists {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.years, year)
			}
		}
	}
}

// broadcastMessage sends a message to relevant clients
func (h *Hub) broadcastMessage(message *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Printf("Failed to marshal message: %v", err)
		return
	}

	// Broadcast to tournament-year subscribers
	if message.Year != "" {
		if clients, exists := h.years[message.Year]; exists {
			for client := range clients {
				select {
				case client.send <- data:
				default:
					// Client's send channel is full, close it
					h.removeClient(client)
					client.close()
				}
			}
		}
	}

	// Send to specific user
	if message.UserID != "" {
		if client, exists := h.users[message.UserID]; exists {
			select {
			case client.send <- data:
			default:
				// Client's send channel is full, close it
				h.removeClient(client)
				client.close()
			}
		}
	}
}

// BroadcastReportRefreshed notifies every client subscribed to a
// tournament year that a fresh AnalysisReport is available.
func (h *Hub) BroadcastReportRefreshed(year string, data interface{}) {
	message := &Message{
		Type: "report_refreshed",
		Year: year,
		Data: data,
	}
	h.broadcast <- message
}

// SendToUser sends a message to a specific user
func (h *Hub) SendToUser(userID string, messageType string, data interface{}) {
	message := &Message{
		Type:   messageType,
		UserID: userID,
		Data:   data,
	}
	h.broadcast <- message
}

// SubscribeToYear subscribes a client to a tournament year's report updates
func (h *Hub) SubscribeToYear(client *Client, year string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Add tournament year to client's list
	client.years = append(client.years, year)

	// Add client to tournament-year's subscriber list
	if h.years[year] == nil {
		h.years[year] = make(map[*Client]bool)
	}
	h.years[year][client] = true

	h.logger.Printf("Client %s subscribed to tournament year %s", client.userID, year)
}

// UnsubscribeFromYear unsubscribes a client from a tournament year's report updates
func (h *Hub) UnsubscribeFromYear(client *Client, year string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Remove tournament year from client's list
	for i, id := range client.years {
		if id == year {
			client.years = append(client.years[:i], client.years[i+1:]...)
			break
		}
	}

	// Remove client from tournament-year's subscriber list
	if clients, exists := h.years[year]; exists {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.years, year)
		}
	}

	h.logger.Printf("Client %s unsubscribed from tournament year %s", client.userID, year)
}
