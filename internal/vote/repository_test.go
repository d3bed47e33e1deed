package vote

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julienpequegnot/qaboard/internal/database"
)

func TestCastOncePerUser(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	db.Exec(`INSERT INTO users (id, username, created_at) VALUES (1, 'alice', ?), (2, 'bob', ?)`, now, now)
	db.Exec(`INSERT INTO questions (id, user_id, title, created_at) VALUES (1, 1, 'Q', ?)`, now)

	repo := NewRepository(db)

	created, err := repo.Cast(1, 2)
	if err != nil {
		t.Fatalf("failed to cast vote: %v", err)
	}
	if !created {
		t.Error("expected first vote to be recorded")
	}

	created, err = repo.Cast(1, 2)
	if err != nil {
		t.Fatalf("failed to cast duplicate vote: %v", err)
	}
	if created {
		t.Error("expected duplicate vote to be ignored")
	}

	n, _ := repo.CountForQuestion(1)
	if n != 1 {
		t.Errorf("expected 1 vote, got %d", n)
	}
}
