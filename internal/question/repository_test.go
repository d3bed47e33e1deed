// internal/question/repository_test.go
package question

import (
	"database/sql"
	"errors"
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

	res, err := db.Exec(`INSERT INTO users (username, created_at) VALUES ('alice', ?)`, time.Now().UTC())
	if err != nil {
		t.Fatalf("failed to add user: %v", err)
	}
	userID, _ := res.LastInsertId()
	return db, userID
}

func tagQuestion(t *testing.T, db *database.DB, questionID int64, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec(`INSERT INTO tags (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name)
		if _, err := db.Exec(
			`INSERT INTO question_tags (question_id, tag_id) SELECT ?, id FROM tags WHERE name = ?`,
			questionID, name,
		); err != nil {
			t.Fatalf("failed to tag question: %v", err)
		}
	}
}

func TestAddQuestion(t *testing.T) {
	db, userID := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)

	q, err := repo.Add(userID, "How do I reverse a slice?", "I have a slice of ints.")
	if err != nil {
		t.Fatalf("failed to add question: %v", err)
	}
	if q.ID == 0 {
		t.Error("expected non-zero ID")
	}

	exists, err := repo.Exists("How do I reverse a slice?")
	if err != nil {
		t.Fatalf("failed to check existence: %v", err)
	}
	if !exists {
		t.Error("expected question to exist")
	}
}

func TestGetHydratesTagsAndCounts(t *testing.T) {
	db, userID := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	q, _ := repo.Add(userID, "Title", "Body")
	tagQuestion(t, db, q.ID, "go", "sql")

	now := time.Now().UTC()
	db.Exec(`INSERT INTO answers (question_id, user_id, content, created_at) VALUES (?, ?, 'a', ?)`, q.ID, userID, now)
	db.Exec(`INSERT INTO answers (question_id, user_id, content, created_at) VALUES (?, ?, 'b', ?)`, q.ID, userID, now)
	db.Exec(`INSERT INTO votes (question_id, user_id, created_at) VALUES (?, ?, ?)`, q.ID, userID, now)

	got, err := repo.Get(q.ID)
	if err != nil {
		t.Fatalf("failed to get question: %v", err)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" || got.Tags[1] != "sql" {
		t.Errorf("expected tags [go sql], got %v", got.Tags)
	}
	if got.AnswerCount != 2 {
		t.Errorf("expected 2 answers, got %d", got.AnswerCount)
	}
	if got.VoteCount != 1 {
		t.Errorf("expected 1 vote, got %d", got.VoteCount)
	}
}

func TestDeleteCascadesTags(t *testing.T) {
	db, userID := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	q, err := repo.Add(userID, "Short lived", "")
	if err != nil {
		t.Fatalf("failed to add question: %v", err)
	}
	tagQuestion(t, db, q.ID, "go")

	if err := repo.Delete(q.ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, err := repo.Get(q.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows after delete, got %v", err)
	}
	var n int
	db.QueryRow(`SELECT COUNT(*) FROM question_tags WHERE question_id = ?`, q.ID).Scan(&n)
	if n != 0 {
		t.Errorf("expected tag links removed, got %d", n)
	}
}

func TestGetUnknownQuestion(t *testing.T) {
	db, _ := setupTestDB(t)
	defer db.Close()

	_, err := NewRepository(db).Get(404)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestListExceptAndExcluding(t *testing.T) {
	db, userID := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	a, _ := repo.Add(userID, "A", "")
	b, _ := repo.Add(userID, "B", "")
	c, _ := repo.Add(userID, "C", "")

	others, err := repo.ListExcept(a.ID)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(others) != 2 || others[0].ID != b.ID || others[1].ID != c.ID {
		t.Errorf("unexpected questions: %+v", others)
	}

	rest, err := repo.ListExcluding([]int64{a.ID, c.ID})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(rest) != 1 || rest[0].ID != b.ID {
		t.Errorf("expected only B, got %+v", rest)
	}

	all, _ := repo.ListExcluding(nil)
	if len(all) != 3 {
		t.Errorf("expected 3 questions, got %d", len(all))
	}
}

func TestSearchTextIsCaseSensitive(t *testing.T) {
	db, userID := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	repo.Add(userID, "Flask routing", "")
	repo.Add(userID, "Other", "uses Flask blueprints")
	repo.Add(userID, "flask lower", "")

	found, err := repo.SearchText("Flask")
	if err != nil {
		t.Fatalf("failed to search: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("expected 2 matches, got %d", len(found))
	}
}

func TestListAnsweredBy(t *testing.T) {
	db, userID := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	a, _ := repo.Add(userID, "A", "")
	repo.Add(userID, "B", "")

	res, _ := db.Exec(`INSERT INTO users (username, created_at) VALUES ('bob', ?)`, time.Now().UTC())
	bobID, _ := res.LastInsertId()
	db.Exec(`INSERT INTO answers (question_id, user_id, content, created_at) VALUES (?, ?, 'x', ?)`, a.ID, bobID, time.Now().UTC())
	db.Exec(`INSERT INTO answers (question_id, user_id, content, created_at) VALUES (?, ?, 'y', ?)`, a.ID, bobID, time.Now().UTC())

	answered, err := repo.ListAnsweredBy(bobID)
	if err != nil {
		t.Fatalf("failed to list answered: %v", err)
	}
	if len(answered) != 1 || answered[0].ID != a.ID {
		t.Errorf("expected question A once, got %+v", answered)
	}
}

func TestListCreatedSince(t *testing.T) {
	db, userID := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now().UTC()
	repo.AddAt(userID, "old", "", now.AddDate(0, 0, -30))
	recent, _ := repo.AddAt(userID, "recent", "", now.AddDate(0, 0, -1))

	qs, err := repo.ListCreatedSince(now.AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(qs) != 1 || qs[0].ID != recent.ID {
		t.Errorf("expected only the recent question, got %+v", qs)
	}
}

func TestRecentByTagAndListByTags(t *testing.T) {
	db, userID := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now().UTC()
	var ids []int64
	for i := 0; i < 4; i++ {
		q, _ := repo.AddAt(userID, "Q", "", now.Add(time.Duration(i)*time.Hour))
		tagQuestion(t, db, q.ID, "go")
		ids = append(ids, q.ID)
	}

	var tagID int64
	db.QueryRow(`SELECT id FROM tags WHERE name = 'go'`).Scan(&tagID)

	recent, err := repo.RecentByTag(tagID, 3)
	if err != nil {
		t.Fatalf("failed to list recent: %v", err)
	}
	if len(recent) != 3 || recent[0].ID != ids[3] {
		t.Errorf("expected 3 newest questions starting with %d, got %+v", ids[3], recent)
	}

	tagged, err := repo.ListByTags([]int64{tagID})
	if err != nil {
		t.Fatalf("failed to list by tags: %v", err)
	}
	if len(tagged) != 4 {
		t.Errorf("expected 4 tagged questions, got %d", len(tagged))
	}
}

func TestGetManyKeepsOrder(t *testing.T) {
	db, userID := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	a, _ := repo.Add(userID, "A", "")
	b, _ := repo.Add(userID, "B", "")

	qs, err := repo.GetMany([]int64{b.ID, 999, a.ID})
	if err != nil {
		t.Fatalf("failed to get many: %v", err)
	}
	if len(qs) != 2 || qs[0].ID != b.ID || qs[1].ID != a.ID {
		t.Errorf("unexpected order: %+v", qs)
	}
}
