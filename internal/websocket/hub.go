package websocket

import (
	"sync"

	"go.uber.org/zap"
)

// EventScorecardUpdated is the refresh ping sent when a viewer asks the
// room to re-fetch.
const EventScorecardUpdated = "scorecardUpdated"

// Hub tracks websocket connections and the per-match rooms they joined.
// Events for a match are delivered only to that match's room; nothing is
// broadcast globally.
type Hub struct {
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool
	mu      sync.RWMutex

	broadcast chan *Message

	register   chan *Client
	unregister chan *Client
	join       chan *subscription
	leave      chan *subscription

	logger *zap.Logger
}

// Message is one realtime event. MatchID selects the room.
type Message struct {
	MatchID string      `json:"-"`
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type subscription struct {
	client  *Client
	matchID string
}

func NewHub() *Hub {
	logger, _ := zap.NewProduction()
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan *subscription),
		leave:      make(chan *subscription),
		logger:     logger,
	}
}

// Run owns all room state; must be started once on its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case sub := <-h.join:
			h.joinRoom(sub)

		case sub := <-h.leave:
			h.leaveRoom(sub)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.logger.Info("WebSocket client connected",
		zap.String("userId", client.userID),
		zap.Int("totalClients", len(h.clients)))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[client]; !exists {
		return
	}

	delete(h.clients, client)
	for matchID := range client.rooms {
		h.removeFromRoom(client, matchID)
	}
	close(client.send)

	h.logger.Info("WebSocket client disconnected",
		zap.String("userId", client.userID),
		zap.Int("totalClients", len(h.clients)))
}

func (h *Hub) joinRoom(sub *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[sub.client]; !exists {
		return
	}

	room := h.rooms[sub.matchID]
	if room == nil {
		room = make(map[*Client]bool)
		h.rooms[sub.matchID] = room
	}
	room[sub.client] = true
	sub.client.rooms[sub.matchID] = true

	h.logger.Info("Client joined match room",
		zap.String("userId", sub.client.userID),
		zap.String("matchId", sub.matchID),
		zap.Int("roomSize", len(room)))
}

func (h *Hub) leaveRoom(sub *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoom(sub.client, sub.matchID)
	delete(sub.client.rooms, sub.matchID)
}

// removeFromRoom must be called with the lock held.
func (h *Hub) removeFromRoom(client *Client, matchID string) {
	room := h.rooms[matchID]
	if room == nil {
		return
	}
	delete(room, client)
	if len(room) == 0 {
		delete(h.rooms, matchID)
	}
}

func (h *Hub) broadcastMessage(message *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[message.MatchID] {
		select {
		case client.send <- message:
		default:
			// Slow consumer; drop the connection rather than block
			// everyone else in the room.
			h.logger.Warn("Client send channel full, unregistering",
				zap.String("userId", client.userID))
			go func(c *Client) {
				h.unregister <- c
			}(client)
		}
	}
}

// BroadcastToMatch queues an event for every subscriber of the match.
// Delivery is best-effort at-most-once; late joiners catch up through
// the read API.
func (h *Hub) BroadcastToMatch(matchID, event string, payload interface{}) {
	h.broadcast <- &Message{
		MatchID: matchID,
		Type:    event,
		Payload: payload,
	}
}
