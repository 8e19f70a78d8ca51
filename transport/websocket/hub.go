package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wricardo/prims-maze/game/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Outbound events.
const (
	EventFullView = "full_view"
	EventRedraw   = "redraw"
	EventReset    = "reset"
	EventError    = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is what renderers receive. Placements are applied in order.
type Message struct {
	SessionID  string             `json:"session_id"`
	Event      string             `json:"event"`
	Placements []engine.Placement `json:"placements,omitempty"`
	GameState  *engine.GameState  `json:"game_state,omitempty"`
	Text       string             `json:"message,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Inbound is a message sent by a client. Only "key" is understood.
type Inbound struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

// InputFunc handles a raw key pressed in a session's renderer.
type InputFunc func(ctx context.Context, sessionID, key string) error

// Client represents a WebSocket client
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub maintains the set of active clients per session and fans out messages
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	input InputFunc
	log   *zap.SugaredLogger
}

// NewHub creates a new WebSocket hub. A nil logger discards output.
func NewHub(log *zap.SugaredLogger) *Hub {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, engine.WebSocketBufferSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

// SetInputHandler sets the callback for inbound key messages.
func (h *Hub) SetInputHandler(fn InputFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.input = fn
}

// Run starts the hub's event loop and closes every client when ctx ends.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.Publish(message)

		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// ServeWS upgrades the request and attaches the connection to sessionID.
// The initial messages are queued before anything else is delivered.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string, initial ...*Message) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "session_id", sessionID, "error", err)
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, engine.WebSocketBufferSize),
		sessionID: sessionID,
	}

	for _, msg := range initial {
		if data, ok := h.encode(msg); ok {
			client.send <- data
		}
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

// Publish delivers message to every client of its session right away.
func (h *Hub) Publish(message *Message) {
	data, ok := h.encode(message)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.sessions[message.SessionID] {
		select {
		case client.send <- data:
		default:
			// Slow consumer
			h.removeLocked(client)
		}
	}
}

// BroadcastPlacements publishes a placement batch with the matching state.
func (h *Hub) BroadcastPlacements(sessionID, event string, placements []engine.Placement, state *engine.GameState) {
	h.Publish(&Message{
		SessionID:  sessionID,
		Event:      event,
		Placements: placements,
		GameState:  state,
	})
}

// BroadcastEvent queues a message for the event loop. It drops the message
// when the queue is full.
func (h *Hub) BroadcastEvent(message *Message) {
	select {
	case h.broadcast <- message:
	default:
		h.log.Warnw("broadcast queue full, dropping message", "session_id", message.SessionID, "event", message.Event)
	}
}

// ClientCount returns the number of clients attached to sessionID.
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

func (h *Hub) encode(message *Message) ([]byte, bool) {
	data, err := json.Marshal(message)
	if err != nil {
		h.log.Errorw("failed to marshal websocket message", "event", message.Event, "error", err)
		return nil, false
	}
	return data, true
}

// registerClient adds a client to a session
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true

	h.log.Debugw("client registered", "session_id", client.sessionID, "clients", len(h.sessions[client.sessionID]))
}

// unregisterClient removes a client from a session
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.sessions[client.sessionID]
	if !ok || !clients[client] {
		return
	}

	delete(clients, client)
	close(client.send)

	if len(clients) == 0 {
		delete(h.sessions, client.sessionID)
	}

	h.log.Debugw("client unregistered", "session_id", client.sessionID, "remaining", len(clients))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.sessions {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// reply sends data to a single client if it is still registered.
func (h *Hub) reply(client *Client, message *Message) {
	data, ok := h.encode(message)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.sessions[client.sessionID][client] {
		return
	}
	select {
	case client.send <- data:
	default:
		h.removeLocked(client)
	}
}

func (h *Hub) handleInbound(client *Client, raw []byte) {
	var in Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		h.reply(client, &Message{SessionID: client.sessionID, Event: EventError, Error: "invalid message"})
		return
	}
	if in.Type != "key" {
		h.reply(client, &Message{SessionID: client.sessionID, Event: EventError, Error: "unsupported message type " + in.Type})
		return
	}

	h.mu.RLock()
	input := h.input
	h.mu.RUnlock()
	if input == nil {
		return
	}

	if err := input(context.Background(), client.sessionID, in.Key); err != nil {
		h.reply(client, &Message{SessionID: client.sessionID, Event: EventError, Error: err.Error()})
	}
}

// readPump pumps messages from the WebSocket connection to the input handler
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warnw("websocket read error", "session_id", c.sessionID, "error", err)
			}
			break
		}
		c.hub.handleInbound(c, raw)
	}
}

// writePump pumps messages from the hub to the WebSocket connection, one
// JSON document per frame
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
