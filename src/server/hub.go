package server

import (
	"encoding/json"
	"net/http"
	"time"

	"stock-lens/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *APIServer) handleWebsockets() {
	for {
		select {
		case <-s.done:
			for client := range s.clients {
				delete(s.clients, client)
				close(client.send)
			}
			s.connections.Store(0)
			return

		case client := <-s.register:
			s.clients[client] = struct{}{}
			s.connections.Add(1)
			// Send initial state on connect
			s.stateMutex.RLock()
			initial := client.filter(s.latestState)
			s.stateMutex.RUnlock()
			initial.Type = "INITIAL"
			client.send <- initial

		case client := <-s.unregister:
			s.drop(client)

		case client := <-s.resync:
			if _, ok := s.clients[client]; !ok {
				continue
			}
			s.stateMutex.RLock()
			response := client.filter(s.latestState)
			s.stateMutex.RUnlock()
			response.Type = "INITIAL"

			select {
			case client.send <- response:
			default:
				s.drop(client)
			}

		case snapshot := <-s.broadcast:
			for client := range s.clients {
				select {
				case client.send <- client.filter(snapshot):
				default:
					// Slow consumers are pruned so the hub never blocks
					s.drop(client)
				}
			}
		}
	}
}

// -----------------------------------------------------------------------------

func (s *APIServer) drop(client *Client) {
	if _, ok := s.clients[client]; ok {
		delete(s.clients, client)
		close(client.send)
		s.connections.Add(-1)
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// UpdateAllDatas replaces the cached snapshot without notifying clients.
func (s *APIServer) UpdateAllDatas(snapshot *models.MWatchlistSnapshot) {
	if snapshot == nil {
		return
	}

	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()
	s.latestState = stamp(snapshot)
}

// -----------------------------------------------------------------------------

// Broadcast caches the snapshot and queues it for every connected client.
func (s *APIServer) Broadcast(snapshot *models.MWatchlistSnapshot) {
	if snapshot == nil {
		return
	}

	state := stamp(snapshot)
	state.Type = "UPDATE"

	s.stateMutex.Lock()
	s.latestState = state
	s.stateMutex.Unlock()

	select {
	case s.broadcast <- state:
	case <-s.done:
	default:
		s.Logger.Warning("Broadcast queue full, dropping snapshot %d", state.Timestamp)
	}
}

// -----------------------------------------------------------------------------

func stamp(snapshot *models.MWatchlistSnapshot) *models.MWatchlistSnapshot {
	state := *snapshot
	if state.Items == nil {
		state.Items = []models.MWatchItem{}
	}
	if state.Timestamp == 0 {
		state.Timestamp = time.Now().UnixMilli()
	}
	return &state
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

	client := newClient(s, conn, parseSymbols(c.Query("symbols")))

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	// Start goroutines for reading/writing
	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

// HandleClientMessage applies a subscribe command and answers with the
// filtered cached snapshot.
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

	client.subscribe(cmd.Symbols)

	// The hub owns client.send, so the reply is queued through it.
	select {
	case s.resync <- client:
	case <-s.done:
	}
}
