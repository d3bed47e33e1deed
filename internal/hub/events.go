package hub

import (
	"github.com/goccy/go-json"

	"github.com/julienpequegnot/qaboard/internal/logging"
)

// Client to server events.
const (
	EventJoinQuestion          = "join_question"
	EventLeaveQuestion         = "leave_question"
	EventMarkNotificationsRead = "mark_notifications_read"
	EventRequestOnlineCount    = "request_online_count"
	EventTypingStart           = "typing_start"
	EventTypingStop            = "typing_stop"
	EventPing                  = "ping"
)

// Server to client events.
const (
	EventUnreadCount             = "unread_count"
	EventJoinedQuestion          = "joined_question"
	EventLeftQuestion            = "left_question"
	EventNotificationsMarkedRead = "notifications_marked_read"
	EventOnlineCount             = "online_count"
	EventUserTyping              = "user_typing"
	EventPong                    = "pong"
)

type questionData struct {
	QuestionID int64 `json:"question_id"`
}

type roomData struct {
	Room string `json:"room"`
}

type countData struct {
	Count int `json:"count"`
}

type typingData struct {
	User   string `json:"user"`
	Action string `json:"action"`
}

// Greet sends the unread notification count to a freshly registered client.
func (h *Hub) Greet(c *Client) {
	count, err := h.notifications.UnreadCount(c.userID)
	if err != nil {
		logging.Warn().Err(err).Int64("user_id", c.userID).Msg("failed to count unread notifications")
		return
	}
	h.send(c, Message{Type: EventUnreadCount, Data: countData{Count: count}})
}

func (h *Hub) handle(c *Client, msg inbound) {
	switch msg.Type {
	case EventJoinQuestion, EventLeaveQuestion:
		var data questionData
		if !decode(msg, &data) || data.QuestionID == 0 {
			return
		}
		if msg.Type == EventJoinQuestion {
			h.Join(c, QuestionRoom(data.QuestionID))
			h.send(c, Message{Type: EventJoinedQuestion, Data: data})
		} else {
			h.Leave(c, QuestionRoom(data.QuestionID))
			h.send(c, Message{Type: EventLeftQuestion, Data: data})
		}

	case EventMarkNotificationsRead:
		if _, err := h.notifications.MarkAllRead(c.userID); err != nil {
			logging.Warn().Err(err).Int64("user_id", c.userID).Msg("failed to mark notifications read")
			return
		}
		h.send(c, Message{Type: EventNotificationsMarkedRead})

	case EventTypingStart, EventTypingStop:
		var data roomData
		if !decode(msg, &data) || data.Room == "" {
			return
		}
		action := "started"
		if msg.Type == EventTypingStop {
			action = "stopped"
		}
		// delivery to a typing room is best effort
		_ = h.emit(data.Room, Message{Type: EventUserTyping, Data: typingData{User: c.username, Action: action}}, c)

	case EventRequestOnlineCount:
		h.send(c, Message{Type: EventOnlineCount, Data: countData{Count: h.OnlineCount()}})

	case EventPing:
		h.send(c, Message{Type: EventPong})

	default:
		logging.Debug().Str("type", msg.Type).Int64("user_id", c.userID).Msg("unknown websocket event")
	}
}

func decode(msg inbound, v any) bool {
	if len(msg.Data) == 0 {
		return false
	}
	return json.Unmarshal(msg.Data, v) == nil
}
