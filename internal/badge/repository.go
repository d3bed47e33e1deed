package badge

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julienpequegnot/qaboard/internal/database"
)

// Earned is a badge held by a user.
type Earned struct {
	Badge
	EarnedAt time.Time `json:"earned_at"`
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Seed inserts the default badges that are not stored yet and returns how many were created.
func (r *Repository) Seed() (int, error) {
	created := 0
	for _, b := range Defaults() {
		result, err := r.db.Exec(`
			INSERT INTO badges (name, description, icon, requirement_type, requirement_value)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(name) DO NOTHING
		`, b.Name, b.Description, b.Icon, b.RequirementType, b.RequirementValue)
		if err != nil {
			return created, fmt.Errorf("failed to seed badge %s: %w", b.Name, err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			created++
		}
	}
	return created, nil
}

func (r *Repository) List() ([]Badge, error) {
	rows, err := r.db.Query(`
		SELECT id, name, description, icon, requirement_type, requirement_value
		FROM badges ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []Badge
	for rows.Next() {
		b, err := scanBadge(rows)
		if err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// Award grants a badge and reports false when the user already held it.
func (r *Repository) Award(userID, badgeID int64) (bool, error) {
	result, err := r.db.Exec(
		`INSERT INTO user_badges (user_id, badge_id, earned_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`,
		userID, badgeID, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to award badge: %w", err)
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// EarnedIDs returns the set of badge ids the user holds.
func (r *Repository) EarnedIDs(userID int64) (map[int64]bool, error) {
	rows, err := r.db.Query(`SELECT badge_id FROM user_badges WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

func (r *Repository) ForUser(userID int64) ([]Earned, error) {
	rows, err := r.db.Query(`
		SELECT b.id, b.name, b.description, b.icon, b.requirement_type, b.requirement_value, ub.earned_at
		FROM user_badges ub
		JOIN badges b ON b.id = ub.badge_id
		WHERE ub.user_id = ?
		ORDER BY ub.earned_at, b.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var earned []Earned
	for rows.Next() {
		var e Earned
		var description, icon sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &description, &icon, &e.RequirementType, &e.RequirementValue, &e.EarnedAt); err != nil {
			return nil, err
		}
		e.Description = description.String
		e.Icon = icon.String
		earned = append(earned, e)
	}
	return earned, rows.Err()
}

func scanBadge(rows *sql.Rows) (Badge, error) {
	var b Badge
	var description, icon sql.NullString
	if err := rows.Scan(&b.ID, &b.Name, &description, &icon, &b.RequirementType, &b.RequirementValue); err != nil {
		return b, err
	}
	b.Description = description.String
	b.Icon = icon.String
	return b, nil
}
