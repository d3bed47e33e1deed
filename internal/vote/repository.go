package vote

import (
	"fmt"
	"time"

	"github.com/julienpequegnot/qaboard/internal/database"
)

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Cast records a user's vote on a question. It reports false when the user
// had already voted.
func (r *Repository) Cast(questionID, userID int64) (bool, error) {
	result, err := r.db.Exec(
		`INSERT INTO votes (question_id, user_id, created_at) VALUES (?, ?, ?) ON CONFLICT(question_id, user_id) DO NOTHING`,
		questionID, userID, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to cast vote: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repository) CountForQuestion(questionID int64) (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM votes WHERE question_id = ?`, questionID).Scan(&n)
	return n, err
}
