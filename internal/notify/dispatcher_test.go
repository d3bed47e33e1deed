package notify

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julienpequegnot/qaboard/internal/answer"
	"github.com/julienpequegnot/qaboard/internal/database"
	"github.com/julienpequegnot/qaboard/internal/notification"
	"github.com/julienpequegnot/qaboard/internal/question"
	"github.com/julienpequegnot/qaboard/internal/tag"
)

type pushed struct {
	channel string
	event   string
	payload any
}

type recordingPusher struct {
	mu   sync.Mutex
	sent []pushed
	err  error
}

func (p *recordingPusher) Push(channel, event string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, pushed{channel, event, payload})
	return p.err
}

type fixture struct {
	db            *database.DB
	notifications *notification.Repository
	answers       *answer.Repository
	questions     *question.Repository
	tags          *tag.Repository
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	now := time.Now().UTC()
	db.Exec(`INSERT INTO users (id, username, created_at) VALUES (1, 'alice', ?), (2, 'bob', ?), (3, 'carol', ?)`, now, now, now)

	return &fixture{
		db:            db,
		notifications: notification.NewRepository(db),
		answers:       answer.NewRepository(db),
		questions:     question.NewRepository(db),
		tags:          tag.NewRepository(db),
	}
}

func TestNotifyPersistsAndPushes(t *testing.T) {
	f := setup(t)
	pusher := &recordingPusher{}
	d := NewDispatcher(f.notifications, f.answers, pusher)

	n, err := d.Notify(2, "hello", notification.KindInfo)
	if err != nil {
		t.Fatalf("failed to notify: %v", err)
	}

	stored, _ := f.notifications.ListForUser(2, false, 10)
	if len(stored) != 1 || stored[0].ID != n.ID {
		t.Fatalf("expected notification to be stored, got %+v", stored)
	}

	if len(pusher.sent) != 1 {
		t.Fatalf("expected 1 push, got %d", len(pusher.sent))
	}
	p := pusher.sent[0]
	if p.channel != "user_2" || p.event != EventNotification {
		t.Errorf("unexpected push target %s/%s", p.channel, p.event)
	}
	payload, ok := p.payload.(Payload)
	if !ok || payload.ID != n.ID || payload.Type != "info" || payload.Content != "hello" {
		t.Errorf("unexpected payload %+v", p.payload)
	}
	if _, err := time.Parse(time.RFC3339, payload.CreatedAt); err != nil {
		t.Errorf("expected RFC3339 created_at, got %q", payload.CreatedAt)
	}
}

func TestPushFailureIsSwallowed(t *testing.T) {
	f := setup(t)
	d := NewDispatcher(f.notifications, f.answers, &recordingPusher{err: errors.New("socket closed")})

	if _, err := d.Notify(2, "still stored", notification.KindSuccess); err != nil {
		t.Fatalf("expected push failure to be swallowed, got %v", err)
	}
	count, _ := f.notifications.UnreadCount(2)
	if count != 1 {
		t.Errorf("expected notification to stay persisted, got %d", count)
	}
}

func TestNilPusherOnlyPersists(t *testing.T) {
	f := setup(t)
	d := NewDispatcher(f.notifications, f.answers, nil)

	if err := d.NotifyBadgeEarned(3, "Voter"); err != nil {
		t.Fatalf("failed to notify: %v", err)
	}
	list, _ := f.notifications.ListForUser(3, false, 10)
	if len(list) != 1 || list[0].Content != `Congratulations! You earned the "Voter" badge!` {
		t.Errorf("unexpected notifications %+v", list)
	}
	if list[0].Kind != notification.KindAchievement {
		t.Errorf("expected achievement, got %s", list[0].Kind)
	}
}

func TestNotifyNewQuestion(t *testing.T) {
	f := setup(t)
	pusher := &recordingPusher{}
	d := NewDispatcher(f.notifications, f.answers, pusher)

	old, _ := f.questions.Add(2, "Old flask question", "")
	f.tags.Attach(old.ID, []string{"flask"})
	f.answers.Add(old.ID, 1, "alice answered")
	f.answers.Add(old.ID, 3, "carol answered")

	q, _ := f.questions.Add(1, "New flask question", "")
	f.tags.Attach(q.ID, []string{"flask"})
	hydrated, _ := f.questions.Get(q.ID)

	sent, err := d.NotifyNewQuestion(*hydrated)
	if err != nil {
		t.Fatalf("failed to notify: %v", err)
	}
	if sent != 1 {
		t.Errorf("expected only carol to be notified, got %d", sent)
	}

	list, _ := f.notifications.ListForUser(3, false, 10)
	if len(list) != 1 || list[0].Content != `New question: "New flask question" in tags you follow` {
		t.Errorf("unexpected notifications for carol: %+v", list)
	}
	if n, _ := f.notifications.UnreadCount(1); n != 0 {
		t.Errorf("author must not be notified, got %d", n)
	}
}

func TestNotifyAnswerAndAccept(t *testing.T) {
	f := setup(t)
	d := NewDispatcher(f.notifications, f.answers, nil)

	q, _ := f.questions.Add(1, "Why?", "")
	a, _ := f.answers.Add(q.ID, 2, "Because.")

	if err := d.NotifyNewAnswer(*q); err != nil {
		t.Fatalf("failed to notify answer: %v", err)
	}
	if err := d.NotifyAcceptedAnswer(*a, *q); err != nil {
		t.Fatalf("failed to notify acceptance: %v", err)
	}

	toAuthor, _ := f.notifications.ListForUser(1, false, 10)
	if len(toAuthor) != 1 || toAuthor[0].Content != `New answer to your question: "Why?"` || toAuthor[0].Kind != notification.KindSuccess {
		t.Errorf("unexpected author notifications %+v", toAuthor)
	}

	toAnswerer, _ := f.notifications.ListForUser(2, false, 10)
	if len(toAnswerer) != 1 || toAnswerer[0].Content != `Your answer to "Why?" was accepted!` {
		t.Errorf("unexpected answerer notifications %+v", toAnswerer)
	}
}
