package server

import (
	"encoding/json"
	"net/http"

	"portfolio-observer/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// runHub is the main Hub loop
func (s *APIServer) runHub() {
	for {
		select {
		case client := <-s.register:
			s.clients[client] = struct{}{}
			// Send initial state on connect
			s.stateMutex.RLock()
			if s.latest != nil {
				client.send <- s.latest
			}
			s.stateMutex.RUnlock()

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}

		case snap := <-s.broadcast:
			// Update state and broadcast
			s.stateMutex.Lock()
			s.latest = snap
			s.stateMutex.Unlock()

			for client := range s.clients {
				select {
				case client.send <- snap:
					// Message sent successfully
				default:
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// UpdateSnapshot replaces the latest served state without broadcasting.
func (s *APIServer) UpdateSnapshot(snap *models.MSnapshot) {
	s.stateMutex.Lock()
	s.latest = snap
	s.stateMutex.Unlock()
}

// -----------------------------------------------------------------------------

// Broadcast queues a snapshot for all connected clients.
func (s *APIServer) Broadcast(snap *models.MSnapshot) {
	s.broadcast <- snap
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan *models.MSnapshot, 256),
	}

	s.register <- client

	// Start goroutines for reading/writing
	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *APIServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MSubscribeCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "subscribe" {
		return
	}

	s.stateMutex.RLock()
	response := s.filteredSnapshot(cmd.Symbols)
	s.stateMutex.RUnlock()

	// Use select to avoid blocking if client's send buffer is full
	select {
	case client.send <- response:
	default:
	}
}

// -----------------------------------------------------------------------------
// Response Filtering
// -----------------------------------------------------------------------------

// filteredSnapshot returns the latest snapshot limited to the requested
// symbols; an empty list means everything. Counts always cover the whole
// portfolio. Caller must hold stateMutex.
func (s *APIServer) filteredSnapshot(symbols []string) *models.MSnapshot {
	filtered := make(map[string]models.MResolvedQuote)
	if len(symbols) == 0 {
		filtered = s.latest.Quotes
	} else {
		for _, sym := range symbols {
			if quote, exists := s.latest.Quotes[sym]; exists {
				filtered[sym] = quote
			}
		}
	}

	return &models.MSnapshot{
		Type:            "INITIAL",
		IndexQuote:      s.latest.IndexQuote,
		Quotes:          filtered,
		BreakEvenCount:  s.latest.BreakEvenCount,
		LimitUpCount:    s.latest.LimitUpCount,
		Errors:          s.latest.Errors,
		NextWakeSeconds: s.latest.NextWakeSeconds,
		Timestamp:       s.latest.Timestamp,
	}
}
