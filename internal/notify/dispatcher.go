// Package notify persists user notifications and pushes them to live subscribers.
package notify

import (
	"fmt"
	"time"

	"github.com/julienpequegnot/qaboard/internal/answer"
	"github.com/julienpequegnot/qaboard/internal/logging"
	"github.com/julienpequegnot/qaboard/internal/metrics"
	"github.com/julienpequegnot/qaboard/internal/notification"
	"github.com/julienpequegnot/qaboard/internal/question"
)

// EventNotification is the event name pushed for every new notification.
const EventNotification = "notification"

// Pusher delivers an event to every subscriber of a channel, at most once.
type Pusher interface {
	Push(channel, event string, payload any) error
}

type Store interface {
	Add(userID int64, content, kind string) (*notification.Notification, error)
}

type Answerers interface {
	AuthorsForTags(tagNames []string) ([]int64, error)
}

// Payload is what subscribers receive.
type Payload struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

type Dispatcher struct {
	store     Store
	answerers Answerers
	pusher    Pusher
}

// NewDispatcher builds a dispatcher. A nil pusher only persists.
func NewDispatcher(store Store, answerers Answerers, pusher Pusher) *Dispatcher {
	return &Dispatcher{store: store, answerers: answerers, pusher: pusher}
}

// UserChannel names the channel a user's notifications are pushed to.
func UserChannel(userID int64) string {
	return fmt.Sprintf("user_%d", userID)
}

// Notify stores the notification and pushes it. Push failures are logged and dropped.
func (d *Dispatcher) Notify(userID int64, content, kind string) (*notification.Notification, error) {
	n, err := d.store.Add(userID, content, kind)
	if err != nil {
		return nil, err
	}
	metrics.NotificationsCreated.WithLabelValues(kind).Inc()

	if d.pusher == nil {
		return n, nil
	}

	payload := Payload{
		ID:        n.ID,
		Content:   n.Content,
		Type:      n.Kind,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if err := d.pusher.Push(UserChannel(userID), EventNotification, payload); err != nil {
		metrics.PushFailures.Inc()
		logging.Warn().Err(err).Int64("user_id", userID).Int64("notification_id", n.ID).Msg("notification push dropped")
	}
	return n, nil
}

// NotifyNewQuestion tells everyone who has answered a question sharing a tag
// with q, except its author. It returns how many users were notified.
func (d *Dispatcher) NotifyNewQuestion(q question.Question) (int, error) {
	userIDs, err := d.answerers.AuthorsForTags(q.Tags)
	if err != nil {
		return 0, err
	}

	content := fmt.Sprintf("New question: \"%s\" in tags you follow", q.Title)
	sent := 0
	for _, id := range userIDs {
		if id == q.UserID {
			continue
		}
		if _, err := d.Notify(id, content, notification.KindInfo); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

func (d *Dispatcher) NotifyNewAnswer(q question.Question) error {
	_, err := d.Notify(q.UserID, fmt.Sprintf("New answer to your question: \"%s\"", q.Title), notification.KindSuccess)
	return err
}

func (d *Dispatcher) NotifyAcceptedAnswer(a answer.Answer, q question.Question) error {
	_, err := d.Notify(a.UserID, fmt.Sprintf("Your answer to \"%s\" was accepted!", q.Title), notification.KindAchievement)
	return err
}

func (d *Dispatcher) NotifyBadgeEarned(userID int64, badgeName string) error {
	_, err := d.Notify(userID, fmt.Sprintf("Congratulations! You earned the \"%s\" badge!", badgeName), notification.KindAchievement)
	return err
}
