// internal/api/websocket.go
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/textlens/TextLensHub/internal/services"
	"github.com/textlens/TextLensHub/internal/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The dashboard is same-origin; CORS already allows the API.
		return true
	},
}

// ActivityHub fans analysis lifecycle events out to connected dashboard
// clients. It implements services.ActivityNotifier. The hub goroutine
// owns the client set; registration and broadcast go through channels.
type ActivityHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
}

// NewActivityHub creates a hub and starts its goroutine.
func NewActivityHub() *ActivityHub {
	hub := &ActivityHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *websocket.Conn, 16),
		unregister: make(chan *websocket.Conn, 16),
	}
	go hub.run()
	return hub
}

func (h *ActivityHub) run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true

		case conn := <-h.unregister:
			if h.clients[conn] {
				delete(h.clients, conn)
				conn.Close()
			}

		case message := <-h.broadcast:
			for conn := range h.clients {
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					delete(h.clients, conn)
					conn.Close()
				}
			}
		}
	}
}

// NotifyActivity broadcasts one lifecycle event. Slow consumers never
// block the analysis pipeline: when the buffer is full the event drops.
func (h *ActivityHub) NotifyActivity(event services.ActivityEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		utils.GetLogger().Errorf("failed to marshal activity event: %v", err)
		return
	}

	select {
	case h.broadcast <- message:
	default:
	}
}

// HandleConnection upgrades an HTTP request to a feed subscription.
func (h *ActivityHub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.GetLogger().Errorf("websocket upgrade failed: %v", err)
		return
	}

	h.register <- conn

	// Reader loop only detects disconnects; the feed is one-way.
	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
