package daycounter

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Clients tracks the open websocket connections.
type Clients struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewClients() *Clients {
	return &Clients{conns: make(map[*websocket.Conn]bool)}
}

func (c *Clients) Add(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conns[conn] = true
}

func (c *Clients) Remove(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.conns, conn)
}

func (c *Clients) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.conns)
}

// Broadcast sends message as JSON to every client, dropping the ones that fail.
func (c *Clients) Broadcast(message any) {
	jsonMessage, err := json.Marshal(message)
	if err != nil {
		log.Error("Error marshaling message", "err", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for conn := range c.conns {
		if err := conn.WriteMessage(websocket.TextMessage, jsonMessage); err != nil {
			log.Error("Error sending message to client", "err", err, "to", conn.RemoteAddr())
			conn.Close()
			delete(c.conns, conn)
		}
	}
}

// Send writes message to conn alone, dropping it when the write fails.
func (c *Clients) Send(conn *websocket.Conn, message any) {
	jsonMessage, err := json.Marshal(message)
	if err != nil {
		log.Error("Error marshaling message", "err", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, jsonMessage); err != nil {
		log.Error("Error sending message to client", "err", err, "to", conn.RemoteAddr())
		conn.Close()
		delete(c.conns, conn)
	}
}

// @Summary WebSocket connection endpoint
// @Description Streams the counter view after every change. Send "get_counter" to receive the current view on this connection.
// @Tags websocket
// @Produce json
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {string} string "Bad Request"
// @Router /connect [get]
func (s *Server) WebsocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Websocket upgrade failed", "error", err)
		return
	}
	log.Info("Client connected", "addr", conn.RemoteAddr())

	s.Clients.Add(conn)
	defer func() {
		s.Clients.Remove(conn)
		conn.Close()
		log.Info("Client disconnected", "addr", conn.RemoteAddr())
	}()

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("Websocket read failed", "error", err)
			}
			return
		}
		if string(p) == "get_counter" {
			s.Clients.Send(conn, counterMessage{Event: "counter", View: s.State.View()})
		}
	}
}
