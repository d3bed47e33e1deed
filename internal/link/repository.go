package link

import (
	"fmt"

	"github.com/julienpequegnot/qaboard/internal/database"
)

// Link joins two questions judged similar. The smaller id is always stored first.
type Link struct {
	ID          int64
	QuestionIDA int64
	QuestionIDB int64
	Strength    float64
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Upsert(questionIDA, questionIDB int64, strength float64) error {
	if questionIDA > questionIDB {
		questionIDA, questionIDB = questionIDB, questionIDA
	}

	_, err := r.db.Exec(`
		INSERT INTO related_questions (question_id_a, question_id_b, strength)
		VALUES (?, ?, ?)
		ON CONFLICT(question_id_a, question_id_b) DO UPDATE SET
			strength = excluded.strength
	`, questionIDA, questionIDB, strength)
	if err != nil {
		return fmt.Errorf("failed to upsert link: %w", err)
	}
	return nil
}

// GetForQuestion returns the links touching questionID, strongest first.
func (r *Repository) GetForQuestion(questionID int64) ([]Link, error) {
	rows, err := r.db.Query(`
		SELECT id, question_id_a, question_id_b, strength
		FROM related_questions
		WHERE question_id_a = ? OR question_id_b = ?
		ORDER BY strength DESC, id
	`, questionID, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []Link
	for rows.Next() {
		var l Link
		if err := rows.Scan(&l.ID, &l.QuestionIDA, &l.QuestionIDB, &l.Strength); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// RelatedIDs returns the ids linked to questionID, strongest first.
func (r *Repository) RelatedIDs(questionID int64, limit int) ([]int64, error) {
	rows, err := r.db.Query(`
		SELECT CASE WHEN question_id_a = ? THEN question_id_b ELSE question_id_a END AS related_id
		FROM related_questions
		WHERE question_id_a = ? OR question_id_b = ?
		ORDER BY strength DESC, id
		LIMIT ?
	`, questionID, questionID, questionID, limit)
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

func (r *Repository) DeleteForQuestion(questionID int64) error {
	_, err := r.db.Exec(`DELETE FROM related_questions WHERE question_id_a = ? OR question_id_b = ?`, questionID, questionID)
	return err
}

func (r *Repository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM related_questions`).Scan(&n)
	return n, err
}
