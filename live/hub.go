package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"toyvault/middleware"
	"toyvault/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Client is one connected admin dashboard.
type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	UserID string
}

// Hub fans completed-order events out to connected admin dashboards. It
// satisfies checkout.Notifier.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.Send <- data:
				default:
					close(c.Send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				close(c.Send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// add registers c unless the hub has stopped; reports whether it joined.
func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

type orderEvent struct {
	Event       string `json:"event"`
	OrderNumber string `json:"orderNumber"`
	Total       string `json:"total"`
	Timestamp   int64  `json:"timestamp"`
}

// NotifyOrder pushes a completed order to every connected dashboard.
// Drops the event when nobody is listening.
func (h *Hub) NotifyOrder(orderNumber, total string) {
	data, err := json.Marshal(orderEvent{
		Event:       "order_completed",
		OrderNumber: orderNumber,
		Total:       total,
		Timestamp:   time.Now().Unix(),
	})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- data:
	case <-time.After(time.Second):
		log.Println("order feed broadcast timed out")
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// OrderFeedHandler upgrades an admin connection onto the live order feed.
// Token comes via ?token= since browsers cannot set headers on websockets.
func OrderFeedHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		token := r.URL.Query().Get("token")
		if token == "" {
			token = r.Header.Get("Authorization")
		} else {
			token = "Bearer " + token
		}
		claims, err := middleware.ValidateJWT(token)
		if err != nil || !utils.Contains(claims.Role, "admin") {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 64),
			UserID: claims.UserID,
		}

		if !hub.add(client) {
			conn.Close()
			return
		}
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.remove(c)
		c.Conn.Close()
	}()
	// The feed is one-way; drain until the peer hangs up.
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
