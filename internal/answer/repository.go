package answer

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/julienpequegnot/qaboard/internal/database"
)

type Answer struct {
	ID         int64
	QuestionID int64
	UserID     int64
	Content    string
	IsAccepted bool
	CreatedAt  time.Time
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Add(questionID, userID int64, content string) (*Answer, error) {
	createdAt := time.Now().UTC()
	result, err := r.db.Exec(
		`INSERT INTO answers (question_id, user_id, content, created_at) VALUES (?, ?, ?, ?)`,
		questionID, userID, content, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert answer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &Answer{
		ID:         id,
		QuestionID: questionID,
		UserID:     userID,
		Content:    content,
		CreatedAt:  createdAt,
	}, nil
}

func (r *Repository) Get(id int64) (*Answer, error) {
	var a Answer
	err := r.db.QueryRow(
		`SELECT id, question_id, user_id, content, is_accepted, created_at FROM answers WHERE id = ?`, id,
	).Scan(&a.ID, &a.QuestionID, &a.UserID, &a.Content, &a.IsAccepted, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Accept marks the answer as the accepted one for its question and clears
// any previously accepted sibling.
func (r *Repository) Accept(id int64) error {
	_, err := r.db.Exec(`
		UPDATE answers SET is_accepted = (id = ?)
		WHERE question_id = (SELECT question_id FROM answers WHERE id = ?)
	`, id, id)
	if err != nil {
		return fmt.Errorf("failed to accept answer: %w", err)
	}
	return nil
}

func (r *Repository) ListForQuestion(questionID int64) ([]Answer, error) {
	rows, err := r.db.Query(`
		SELECT id, question_id, user_id, content, is_accepted, created_at
		FROM answers WHERE question_id = ?
		ORDER BY is_accepted DESC, id
	`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []Answer
	for rows.Next() {
		var a Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.UserID, &a.Content, &a.IsAccepted, &a.CreatedAt); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// AuthorsForTags returns the distinct users who answered any question
// carrying one of the named tags.
func (r *Repository) AuthorsForTags(tagNames []string) ([]int64, error) {
	if len(tagNames) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryBuilder(
		database.Select("DISTINCT a.user_id").
			From("answers a").
			Join("question_tags qt ON qt.question_id = a.question_id").
			Join("tags t ON t.id = qt.tag_id").
			Where(sq.Eq{"t.name": tagNames}).
			OrderBy("a.user_id"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find answerers: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
