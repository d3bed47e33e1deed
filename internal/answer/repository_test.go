package answer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julienpequegnot/qaboard/internal/database"
)

func setupTestDB(t *testing.T) (*database.DB, int64) {
	tmpDir := t.TempDir()
	db, err := database.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	now := time.Now().UTC()
	db.Exec(`INSERT INTO users (id, username, created_at) VALUES (1, 'alice', ?), (2, 'bob', ?), (3, 'carol', ?)`, now, now, now)
	res, err := db.Exec(`INSERT INTO questions (user_id, title, content, created_at) VALUES (1, 'Q', '', ?)`, now)
	if err != nil {
		t.Fatalf("failed to insert question: %v", err)
	}
	id, _ := res.LastInsertId()
	return db, id
}

func TestAddAndGetAnswer(t *testing.T) {
	db, qID := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)

	a, err := repo.Add(qID, 2, "Use slices.Reverse")
	if err != nil {
		t.Fatalf("failed to add answer: %v", err)
	}

	got, err := repo.Get(a.ID)
	if err != nil {
		t.Fatalf("failed to get answer: %v", err)
	}
	if got.QuestionID != qID || got.UserID != 2 || got.IsAccepted {
		t.Errorf("unexpected answer: %+v", got)
	}
}

func TestAcceptIsExclusive(t *testing.T) {
	db, qID := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	first, _ := repo.Add(qID, 2, "first")
	second, _ := repo.Add(qID, 3, "second")

	if err := repo.Accept(first.ID); err != nil {
		t.Fatalf("failed to accept: %v", err)
	}
	if err := repo.Accept(second.ID); err != nil {
		t.Fatalf("failed to accept: %v", err)
	}

	answers, err := repo.ListForQuestion(qID)
	if err != nil {
		t.Fatalf("failed to list answers: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	if answers[0].ID != second.ID || !answers[0].IsAccepted {
		t.Errorf("expected accepted answer first, got %+v", answers[0])
	}
	if answers[1].IsAccepted {
		t.Error("expected earlier acceptance to be cleared")
	}
}

func TestAuthorsForTags(t *testing.T) {
	db, qID := setupTestDB(t)
	defer db.Close()

	db.Exec(`INSERT INTO tags (id, name) VALUES (1, 'go'), (2, 'rust')`)
	db.Exec(`INSERT INTO question_tags (question_id, tag_id) VALUES (?, 1)`, qID)

	repo := NewRepository(db)
	repo.Add(qID, 2, "x")
	repo.Add(qID, 2, "y")
	repo.Add(qID, 3, "z")

	ids, err := repo.AuthorsForTags([]string{"go"})
	if err != nil {
		t.Fatalf("failed to find authors: %v", err)
	}
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 3 {
		t.Errorf("expected [2 3], got %v", ids)
	}

	none, err := repo.AuthorsForTags([]string{"rust"})
	if err != nil {
		t.Fatalf("failed to find authors: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no authors, got %v", none)
	}
}
