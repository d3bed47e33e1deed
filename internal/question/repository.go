// internal/question/repository.go
package question

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/julienpequegnot/qaboard/internal/database"
)

// Question is hydrated with its tag names and engagement counts.
type Question struct {
	ID          int64
	UserID      int64
	Title       string
	Content     string
	CreatedAt   time.Time
	Tags        []string
	AnswerCount int
	VoteCount   int
}

// Text is the title and content joined for keyword comparison.
func (q Question) Text() string {
	return q.Title + " " + q.Content
}

var columns = []string{"q.id", "q.user_id", "q.title", "q.content", "q.created_at"}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Add(userID int64, title, content string) (*Question, error) {
	return r.AddAt(userID, title, content, time.Now().UTC())
}

func (r *Repository) AddAt(userID int64, title, content string, createdAt time.Time) (*Question, error) {
	createdAt = createdAt.UTC()
	result, err := r.db.Exec(
		`INSERT INTO questions (user_id, title, content, created_at) VALUES (?, ?, ?, ?)`,
		userID, title, content, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert question: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &Question{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: createdAt,
	}, nil
}

// Delete removes a question; its tags, answers, votes and links cascade.
func (r *Repository) Delete(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM questions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return nil
}

// Exists reports whether a question with the exact title is already stored.
func (r *Repository) Exists(title string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM questions WHERE title = ?`, title).Scan(&count)
	return count > 0, err
}

func (r *Repository) Get(id int64) (*Question, error) {
	qs, err := r.query(r.base().Where(sq.Eq{"q.id": id}))
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, sql.ErrNoRows
	}
	return &qs[0], nil
}

// GetMany loads questions by id, preserving the order of ids and skipping unknown ones.
func (r *Repository) GetMany(ids []int64) ([]Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	qs, err := r.query(r.base().Where(sq.Eq{"q.id": ids}))
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]Question, len(qs))
	for _, q := range qs {
		byID[q.ID] = q
	}
	ordered := make([]Question, 0, len(qs))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

// List returns the newest questions first.
func (r *Repository) List(limit, offset int) ([]Question, error) {
	return r.query(r.base().OrderBy("q.created_at DESC", "q.id DESC").Limit(uint64(limit)).Offset(uint64(offset)))
}

func (r *Repository) ListAll() ([]Question, error) {
	return r.query(r.base().OrderBy("q.id"))
}

// ListExcept returns every question other than id.
func (r *Repository) ListExcept(id int64) ([]Question, error) {
	return r.query(r.base().Where(sq.NotEq{"q.id": id}).OrderBy("q.id"))
}

// ListExcluding returns every question whose id is not in ids.
func (r *Repository) ListExcluding(ids []int64) ([]Question, error) {
	b := r.base()
	if len(ids) > 0 {
		b = b.Where(sq.NotEq{"q.id": ids})
	}
	return r.query(b.OrderBy("q.id"))
}

func (r *Repository) ListByUser(userID int64) ([]Question, error) {
	return r.query(r.base().Where(sq.Eq{"q.user_id": userID}).OrderBy("q.id"))
}

// ListAnsweredBy returns the questions the user has posted at least one answer to.
func (r *Repository) ListAnsweredBy(userID int64) ([]Question, error) {
	return r.query(r.base().
		Where(sq.Expr("q.id IN (SELECT question_id FROM answers WHERE user_id = ?)", userID)).
		OrderBy("q.id"))
}

func (r *Repository) ListCreatedSince(cutoff time.Time) ([]Question, error) {
	return r.query(r.base().Where(sq.GtOrEq{"q.created_at": cutoff.UTC()}).OrderBy("q.id"))
}

// SearchText returns questions whose title or content contains query verbatim.
func (r *Repository) SearchText(query string) ([]Question, error) {
	return r.query(r.base().
		Where(sq.Or{
			sq.Expr("instr(q.title, ?) > 0", query),
			sq.Expr("instr(q.content, ?) > 0", query),
		}).
		OrderBy("q.id"))
}

// ListByTags returns questions carrying any of the given tag ids.
func (r *Repository) ListByTags(tagIDs []int64) ([]Question, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	return r.query(r.base().
		Where(sq.Expr("q.id IN (SELECT question_id FROM question_tags WHERE tag_id IN ("+sq.Placeholders(len(tagIDs))+"))", int64Args(tagIDs)...)).
		OrderBy("q.id"))
}

// RecentByTag returns up to limit of the newest questions carrying the tag.
func (r *Repository) RecentByTag(tagID int64, limit int) ([]Question, error) {
	return r.query(r.base().
		Join("question_tags qt ON qt.question_id = q.id").
		Where(sq.Eq{"qt.tag_id": tagID}).
		OrderBy("q.created_at DESC", "q.id DESC").
		Limit(uint64(limit)))
}

func (r *Repository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM questions`).Scan(&n)
	return n, err
}

func (r *Repository) base() sq.SelectBuilder {
	return database.Select(columns...).From("questions q")
}

func (r *Repository) query(b sq.SelectBuilder) ([]Question, error) {
	rows, err := r.db.QueryBuilder(b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.UserID, &q.Title, &q.Content, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.hydrate(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// hydrate fills tags and counts with one batched query per relationship.
func (r *Repository) hydrate(questions []Question) error {
	if len(questions) == 0 {
		return nil
	}

	ids := make([]int64, len(questions))
	index := make(map[int64]int, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
		index[q.ID] = i
	}

	rows, err := r.db.QueryBuilder(database.Select("qt.question_id", "t.name").
		From("question_tags qt").
		Join("tags t ON t.id = qt.tag_id").
		Where(sq.Eq{"qt.question_id": ids}).
		OrderBy("qt.question_id", "t.id"))
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return err
		}
		q := &questions[index[id]]
		q.Tags = append(q.Tags, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	counts := []struct {
		table string
		set   func(q *Question, n int)
	}{
		{"answers", func(q *Question, n int) { q.AnswerCount = n }},
		{"votes", func(q *Question, n int) { q.VoteCount = n }},
	}
	for _, c := range counts {
		rows, err := r.db.QueryBuilder(database.Select("question_id", "COUNT(*)").
			From(c.table).
			Where(sq.Eq{"question_id": ids}).
			GroupBy("question_id"))
		if err != nil {
			return fmt.Errorf("failed to count %s: %w", c.table, err)
		}
		for rows.Next() {
			var id int64
			var n int
			if err := rows.Scan(&id, &n); err != nil {
				rows.Close()
				return err
			}
			c.set(&questions[index[id]], n)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
	}

	return nil
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
