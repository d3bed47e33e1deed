package tag

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julienpequegnot/qaboard/internal/database"
)

type Tag struct {
	ID            int64
	Name          string
	QuestionCount int
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Ensure returns the tag with the given name, creating it when missing.
func (r *Repository) Ensure(name string) (*Tag, error) {
	if _, err := r.db.Exec(`INSERT INTO tags (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name); err != nil {
		return nil, fmt.Errorf("failed to insert tag: %w", err)
	}
	return r.GetByName(name)
}

// GetByName looks up a tag by its exact, case-sensitive name.
func (r *Repository) GetByName(name string) (*Tag, error) {
	var t Tag
	err := r.db.QueryRow(`SELECT id, name FROM tags WHERE name = ?`, name).Scan(&t.ID, &t.Name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByName returns the tag with the given name, or nil when none is stored.
func (r *Repository) FindByName(name string) (*Tag, error) {
	t, err := r.GetByName(name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return t, err
}

// MatchFold returns tags whose name equals name ignoring case.
func (r *Repository) MatchFold(name string) ([]Tag, error) {
	rows, err := r.db.Query(`SELECT id, name FROM tags WHERE lower(name) = lower(?) ORDER BY id`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *Repository) List() ([]Tag, error) {
	rows, err := r.db.Query(`
		SELECT t.id, t.name, COUNT(qt.question_id)
		FROM tags t
		LEFT JOIN question_tags qt ON qt.tag_id = t.id
		GROUP BY t.id
		ORDER BY t.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.QuestionCount); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Attach links the named tags to a question, creating missing tags.
func (r *Repository) Attach(questionID int64, names []string) error {
	for _, name := range names {
		if name == "" {
			continue
		}
		t, err := r.Ensure(name)
		if err != nil {
			return err
		}
		_, err = r.db.Exec(
			`INSERT INTO question_tags (question_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			questionID, t.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to attach tag %s: %w", name, err)
		}
	}
	return nil
}
