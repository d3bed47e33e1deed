// Package hub fans notifications and room events out to websocket clients.
//
// Every connection joins the room of its user ("user_<id>") and may join
// question rooms ("question_<id>"). The hub also tracks which users are
// online, which is advisory and only drives online_count.
package hub

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/julienpequegnot/qaboard/internal/logging"
	"github.com/julienpequegnot/qaboard/internal/metrics"
	"github.com/julienpequegnot/qaboard/internal/user"
)

// Message is the envelope for every frame in both directions.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

var ErrSlowClient = errors.New("client send buffer full")

type Notifications interface {
	UnreadCount(userID int64) (int, error)
	MarkAllRead(userID int64) (int64, error)
}

type Users interface {
	Get(id int64) (*user.User, error)
}

type Hub struct {
	notifications Notifications
	users         Users

	mu      sync.RWMutex
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool
	online  map[int64]int
}

func New(notifications Notifications, users Users) *Hub {
	return &Hub{
		notifications: notifications,
		users:         users,
		clients:       make(map[*Client]bool),
		rooms:         make(map[string]map[*Client]bool),
		online:        make(map[int64]int),
	}
}

func UserRoom(userID int64) string {
	return fmt.Sprintf("user_%d", userID)
}

func QuestionRoom(questionID int64) string {
	return fmt.Sprintf("question_%d", questionID)
}

// Register adds a client, joins its user room and marks the user online.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	h.join(c, UserRoom(c.userID))
	h.online[c.userID]++
	total, online := len(h.clients), len(h.online)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(total))
	metrics.OnlineUsers.Set(float64(online))
	logging.Info().Int64("user_id", c.userID).Int("total_clients", total).Msg("websocket client connected")
}

// Unregister removes a client from every room and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if !h.clients[c] {
		h.mu.Unlock()
		return
	}
	h.remove(c)
	total, online := len(h.clients), len(h.online)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(total))
	metrics.OnlineUsers.Set(float64(online))
	logging.Info().Int64("user_id", c.userID).Int("total_clients", total).Msg("websocket client disconnected")
}

// remove must be called with mu held.
func (h *Hub) remove(c *Client) {
	for room := range c.rooms {
		delete(h.rooms[room], c)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
	c.rooms = nil
	delete(h.clients, c)
	close(c.send)

	h.online[c.userID]--
	if h.online[c.userID] <= 0 {
		delete(h.online, c.userID)
	}
}

func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c] {
		h.join(c, room)
	}
}

func (h *Hub) join(c *Client, room string) {
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][c] = true
	if c.rooms == nil {
		c.rooms = make(map[string]bool)
	}
	c.rooms[room] = true
}

func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[room], c)
	if len(h.rooms[room]) == 0 {
		delete(h.rooms, room)
	}
	delete(c.rooms, room)
}

// Push sends an event to every client in channel. Nobody listening is not an error.
func (h *Hub) Push(channel, event string, payload any) error {
	return h.emit(channel, Message{Type: event, Data: payload}, nil)
}

// emit delivers msg to the room, skipping except. Clients whose buffer is
// full miss the message.
func (h *Hub) emit(room string, msg Message, except *Client) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		if c != except {
			members = append(members, c)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].id < members[j].id
	})

	dropped := 0
	for _, c := range members {
		select {
		case c.send <- msg:
			metrics.WSMessagesSent.Inc()
		default:
			dropped++
		}
	}
	if dropped > 0 {
		metrics.WSErrors.WithLabelValues("slow_client").Add(float64(dropped))
		return fmt.Errorf("%s: %d of %d: %w", room, dropped, len(members), ErrSlowClient)
	}
	return nil
}

// send replies to a single client if it is still registered.
func (h *Hub) send(c *Client, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.clients[c] {
		return
	}
	select {
	case c.send <- msg:
		metrics.WSMessagesSent.Inc()
	default:
		metrics.WSErrors.WithLabelValues("slow_client").Inc()
	}
}

// OnlineCount is the number of distinct users with at least one connection.
func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.online)
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// IsOnline reports whether the user has a live connection.
func (h *Hub) IsOnline(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.online[userID] > 0
}

// Run blocks until ctx ends, then disconnects every client.
func (h *Hub) Run(ctx context.Context) error {
	<-ctx.Done()

	h.mu.Lock()
	closed := len(h.clients)
	for c := range h.clients {
		h.remove(c)
	}
	h.mu.Unlock()

	metrics.WSConnections.Set(0)
	metrics.OnlineUsers.Set(0)
	logging.Info().Str("component", "hub").Int("clients_closed", closed).Msg("websocket hub stopped")
	return ctx.Err()
}
