package link

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julienpequegnot/qaboard/internal/database"
)

func setupTestDB(t *testing.T) *database.DB {
	tmpDir := t.TempDir()
	db, err := database.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	now := time.Now().UTC()
	db.Exec(`INSERT INTO users (id, username, created_at) VALUES (1, 'alice', ?)`, now)
	for i := 1; i <= 3; i++ {
		if _, err := db.Exec(`INSERT INTO questions (id, user_id, title, created_at) VALUES (?, 1, 'Q', ?)`, i, now); err != nil {
			t.Fatalf("failed to insert question: %v", err)
		}
	}
	return db
}

func TestUpsertOrdersPair(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)

	if err := repo.Upsert(2, 1, 0.4); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}
	if err := repo.Upsert(1, 2, 0.6); err != nil {
		t.Fatalf("failed to upsert again: %v", err)
	}

	links, err := repo.GetForQuestion(1)
	if err != nil {
		t.Fatalf("failed to get links: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	if links[0].QuestionIDA != 1 || links[0].QuestionIDB != 2 {
		t.Errorf("expected pair (1, 2), got (%d, %d)", links[0].QuestionIDA, links[0].QuestionIDB)
	}
	if links[0].Strength != 0.6 {
		t.Errorf("expected strength updated to 0.6, got %f", links[0].Strength)
	}
}

func TestRelatedIDs(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	repo.Upsert(1, 2, 0.3)
	repo.Upsert(3, 1, 0.9)

	ids, err := repo.RelatedIDs(1, 10)
	if err != nil {
		t.Fatalf("failed to get related: %v", err)
	}
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 2 {
		t.Errorf("expected [3 2], got %v", ids)
	}

	if err := repo.DeleteForQuestion(1); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if n, _ := repo.Count(); n != 0 {
		t.Errorf("expected no links left, got %d", n)
	}
}
