package badge

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julienpequegnot/qaboard/internal/database"
	"github.com/julienpequegnot/qaboard/internal/user"
)

type recordingNotifier struct {
	badges map[int64][]string
}

func (n *recordingNotifier) NotifyBadgeEarned(userID int64, badgeName string) error {
	if n.badges == nil {
		n.badges = make(map[int64][]string)
	}
	n.badges[userID] = append(n.badges[userID], badgeName)
	return nil
}

// failingStore refuses to award one badge.
type failingStore struct {
	*Repository
	failID int64
}

func (s *failingStore) Award(userID, badgeID int64) (bool, error) {
	if badgeID == s.failID {
		return false, errors.New("disk full")
	}
	return s.Repository.Award(userID, badgeID)
}

func setup(t *testing.T) (*database.DB, *user.Repository, *Repository) {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	badges := NewRepository(db)
	if _, err := badges.Seed(); err != nil {
		t.Fatalf("failed to seed badges: %v", err)
	}
	return db, user.NewRepository(db), badges
}

func TestDefaults(t *testing.T) {
	defaults := Defaults()
	if len(defaults) != 12 {
		t.Fatalf("expected 12 default badges, got %d", len(defaults))
	}
	names := make(map[string]bool)
	for _, b := range defaults {
		if names[b.Name] {
			t.Errorf("duplicate badge %s", b.Name)
		}
		names[b.Name] = true
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	_, _, badges := setup(t)

	created, err := badges.Seed()
	if err != nil {
		t.Fatalf("failed to reseed: %v", err)
	}
	if created != 0 {
		t.Errorf("expected nothing created on reseed, got %d", created)
	}

	all, _ := badges.List()
	if len(all) != 12 {
		t.Errorf("expected 12 badges, got %d", len(all))
	}
}

func TestCheckAndAward(t *testing.T) {
	db, users, badges := setup(t)
	notifier := &recordingNotifier{}
	awarder := NewAwarder(users, badges, notifier, 30)

	veteran, _ := users.AddAt("veteran", "", time.Now().UTC().AddDate(-1, 0, 0))
	asker, _ := users.AddAt("asker", "", time.Now().UTC().AddDate(-1, 0, 0))

	now := time.Now().UTC()
	res, _ := db.Exec(`INSERT INTO questions (user_id, title, created_at) VALUES (?, 'Q', ?)`, asker.ID, now)
	qID, _ := res.LastInsertId()
	db.Exec(`INSERT INTO answers (question_id, user_id, content, is_accepted, created_at) VALUES (?, ?, 'a', TRUE, ?)`, qID, veteran.ID, now)

	earned, err := awarder.CheckAndAward(veteran.ID)
	if err != nil {
		t.Fatalf("failed to award: %v", err)
	}
	if len(earned) != 1 || earned[0] != "First Answer" {
		t.Errorf("expected [First Answer], got %v", earned)
	}
	if len(notifier.badges[veteran.ID]) != 1 {
		t.Errorf("expected one badge notification, got %v", notifier.badges[veteran.ID])
	}

	again, err := awarder.CheckAndAward(veteran.ID)
	if err != nil {
		t.Fatalf("failed to re-check: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("expected no badge awarded twice, got %v", again)
	}

	held, _ := badges.ForUser(veteran.ID)
	if len(held) != 1 || held[0].Icon != "💬" {
		t.Errorf("unexpected held badges %+v", held)
	}
}

func TestEarlyAdopter(t *testing.T) {
	_, users, badges := setup(t)
	awarder := NewAwarder(users, badges, nil, 30)

	newcomer, _ := users.Add("newcomer", "")

	earned, err := awarder.CheckAndAward(newcomer.ID)
	if err != nil {
		t.Fatalf("failed to award: %v", err)
	}
	if len(earned) != 1 || earned[0] != "Early Adopter" {
		t.Errorf("expected [Early Adopter], got %v", earned)
	}
}

func TestReputationBadges(t *testing.T) {
	db, users, badges := setup(t)
	awarder := NewAwarder(users, badges, nil, 30)

	old := time.Now().UTC().AddDate(-1, 0, 0)
	author, _ := users.AddAt("author", "", old)
	res, _ := db.Exec(`INSERT INTO questions (user_id, title, created_at) VALUES (?, 'Q', ?)`, author.ID, old)
	qID, _ := res.LastInsertId()

	for i := 0; i < 10; i++ {
		voter, _ := users.AddAt("voter"+string(rune('a'+i)), "", old)
		db.Exec(`INSERT INTO votes (question_id, user_id, created_at) VALUES (?, ?, ?)`, qID, voter.ID, old)
	}

	stats, _ := users.Stats(author.ID)
	if rep := Reputation(*stats); rep != 50 {
		t.Fatalf("expected reputation 50, got %d", rep)
	}

	earned, err := awarder.CheckAndAward(author.ID)
	if err != nil {
		t.Fatalf("failed to award: %v", err)
	}
	got := map[string]bool{}
	for _, name := range earned {
		got[name] = true
	}
	if !got["First Question"] || !got["Good Citizen"] || got["Rising Star"] {
		t.Errorf("unexpected badges %v", earned)
	}
}

func TestCheckAndAwardUnknownUser(t *testing.T) {
	_, users, badges := setup(t)

	earned, err := NewAwarder(users, badges, nil, 30).CheckAndAward(999)
	if err != nil || earned != nil {
		t.Errorf("expected nil, nil for unknown user, got %v, %v", earned, err)
	}
}

func TestCheckAndAwardNotifiesBeforeFailure(t *testing.T) {
	db, users, badges := setup(t)
	notifier := &recordingNotifier{}

	all, _ := badges.List()
	var earlyID int64
	for _, b := range all {
		if b.RequirementType == RequirementEarlyAdopter {
			earlyID = b.ID
		}
	}
	awarder := NewAwarder(users, &failingStore{Repository: badges, failID: earlyID}, notifier, 30)

	u, _ := users.Add("newcomer", "")
	db.Exec(`INSERT INTO questions (user_id, title, created_at) VALUES (?, 'Q', ?)`, u.ID, time.Now().UTC())

	earned, err := awarder.CheckAndAward(u.ID)
	if err == nil {
		t.Fatal("expected award failure to be returned")
	}
	if len(earned) != 1 || earned[0] != "First Question" {
		t.Errorf("expected First Question awarded before the failure, got %v", earned)
	}
	if got := notifier.badges[u.ID]; len(got) != 1 || got[0] != "First Question" {
		t.Errorf("expected notification for First Question, got %v", got)
	}

	held, _ := badges.EarnedIDs(u.ID)
	if len(held) != 1 {
		t.Errorf("expected 1 stored badge, got %d", len(held))
	}
}

func TestAwardAll(t *testing.T) {
	_, users, badges := setup(t)
	users.Add("a", "")
	users.Add("b", "")

	total, err := NewAwarder(users, badges, nil, 30).AwardAll()
	if err != nil {
		t.Fatalf("failed to sweep: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 early adopter badges, got %d", total)
	}
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	_, users, badges := setup(t)
	awarder := NewAwarder(users, badges, nil, 30)

	if _, err := NewScheduler("not a spec", awarder); err == nil {
		t.Error("expected invalid spec to fail")
	}

	s, err := NewScheduler("@every 1h", awarder)
	if err != nil {
		t.Fatalf("failed to build scheduler: %v", err)
	}
	s.Start()
	s.Stop()
}
