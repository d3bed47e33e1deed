package score

import (
	"fmt"
	"time"

	"github.com/julienpequegnot/qaboard/internal/database"
)

// Score is the persisted quality of a question.
type Score struct {
	QuestionID int64
	Quality    float64
	ScoredAt   time.Time
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Upsert(questionID int64, quality float64) error {
	_, err := r.db.Exec(`
		INSERT INTO quality_scores (question_id, score, scored_at)
		VALUES (?, ?, ?)
		ON CONFLICT(question_id) DO UPDATE SET
			score = excluded.score,
			scored_at = excluded.scored_at
	`, questionID, quality, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to store quality score: %w", err)
	}
	return nil
}

func (r *Repository) Get(questionID int64) (*Score, error) {
	var s Score
	err := r.db.QueryRow(`
		SELECT question_id, score, scored_at
		FROM quality_scores WHERE question_id = ?
	`, questionID).Scan(&s.QuestionID, &s.Quality, &s.ScoredAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) GetUnscoredQuestionIDs(limit int) ([]int64, error) {
	rows, err := r.db.Query(`
		SELECT q.id FROM questions q
		LEFT JOIN quality_scores s ON q.id = s.question_id
		WHERE s.question_id IS NULL
		ORDER BY q.id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
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

// Lowest returns the worst scored questions first.
func (r *Repository) Lowest(limit int) ([]Score, error) {
	rows, err := r.db.Query(`
		SELECT question_id, score, scored_at
		FROM quality_scores
		ORDER BY score ASC, question_id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		var s Score
		if err := rows.Scan(&s.QuestionID, &s.Quality, &s.ScoredAt); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}
