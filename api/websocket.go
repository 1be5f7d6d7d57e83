package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/abcfe/abcfe-wallet/common/logger"
	"github.com/abcfe/abcfe-wallet/internal/walletlist"
	"github.com/abcfe/abcfe-wallet/wallet"
	"github.com/asaskevich/EventBus"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins (for development)
	},
}

// WSEventType event type
type WSEventType string

const (
	EventConnected          WSEventType = "connected"
	EventWalletAppended     WSEventType = "wallet_appended"
	EventWalletAppendFailed WSEventType = "wallet_append_failed"
)

// broadcastBuffer bounds pending broadcasts; further ones are dropped.
const broadcastBuffer = 64

// WSMessage WebSocket message structure
type WSMessage struct {
	Event WSEventType `json:"event"`
	Data  interface{} `json:"data"`
}

// WSHub client connection management
type WSHub struct {
	clients    map[*WSClient]bool
	broadcast  chan WSMessage
	register   chan *WSClient
	unregister chan *WSClient
	quit       chan struct{}
	mu         sync.RWMutex
}

// WSClient WebSocket client
type WSClient struct {
	hub  *WSHub
	conn *websocket.Conn
	send chan []byte
}

// NewWSHub creates new Hub
func NewWSHub() *WSHub {
	return &WSHub{
		clients:    make(map[*WSClient]bool),
		broadcast:  make(chan WSMessage, broadcastBuffer),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
		quit:       make(chan struct{}),
	}
}

// Subscribe forwards the wallet list notices on bus to every client.
func (h *WSHub) Subscribe(bus EventBus.Bus) error {
	if err := bus.Subscribe(walletlist.TopicAppended, h.BroadcastAppended); err != nil {
		return err
	}
	return bus.Subscribe(walletlist.TopicAppendFailed, h.BroadcastAppendFailed)
}

// Run runs the Hub until Stop
func (h *WSHub) Run() {
	for {
		select {
		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logger.Debug("WebSocket client connected. Total: ", h.GetClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			logger.Debug("WebSocket client disconnected. Total: ", h.GetClientCount())

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				logger.Error("Failed to marshal WebSocket message: ", err)
				continue
			}

			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop ends Run and closes every client
func (h *WSHub) Stop() {
	close(h.quit)
}

func (h *WSHub) publish(msg WSMessage) {
	select {
	case h.broadcast <- msg:
	default:
		logger.Warn("WebSocket broadcast dropped: ", msg.Event)
	}
}

// BroadcastAppended broadcasts a persisted wallet
func (h *WSHub) BroadcastAppended(w wallet.Wallet) {
	h.publish(WSMessage{
		Event: EventWalletAppended,
		Data:  walletData(w),
	})
}

// BroadcastAppendFailed broadcasts a wallet that could not be persisted
func (h *WSHub) BroadcastAppendFailed(w wallet.Wallet, err error) {
	data := walletData(w)
	data["error"] = err.Error()
	h.publish(WSMessage{
		Event: EventWalletAppendFailed,
		Data:  data,
	})
}

func walletData(w wallet.Wallet) map[string]interface{} {
	return map[string]interface{}{
		"address": w.Address,
		"name":    w.Name,
		"color":   w.Color.Hex(),
		"emoji":   w.Emoji,
	}
}

// GetClientCount returns connected client count
func (h *WSHub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket WebSocket connection handler
func HandleWebSocket(hub *WSHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: ", err)
			return
		}

		client := &WSClient{
			hub:  hub,
			conn: conn,
			send: make(chan []byte, 256),
		}

		hub.register <- client

		// Send connection success message to client
		welcomeMsg := WSMessage{
			Event: EventConnected,
			Data: map[string]interface{}{
				"message": "Connected to ABCFe Wallets WebSocket",
			},
		}
		data, _ := json.Marshal(welcomeMsg)
		client.send <- data

		// Start read/write goroutines
		go client.writePump()
		go client.readPump()
	}
}

// writePump sends message to client
func (c *WSClient) writePump() {
	defer func() {
		c.conn.Close()
	}()

	for {
		message, ok := <-c.send
		if !ok {
			// If channel closed, send normal close message
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived) {
				logger.Error("WebSocket write error: ", err)
			} else {
				logger.Debug("WebSocket write closed: ", err)
			}
			return
		}
	}
}

// readPump receives message from client
func (c *WSClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.quit:
		}
		c.conn.Close()
	}()

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			// CloseGoingAway (1001), CloseNoStatusReceived (1005), CloseNormalClosure (1000)
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
				websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket read error: ", err)
			} else {
				logger.Debug("WebSocket client disconnected: ", err)
			}
			break
		}
		// Handle client message (currently ignored)
	}
}
