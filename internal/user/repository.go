package user

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julienpequegnot/qaboard/internal/database"
)

type User struct {
	ID        int64
	Username  string
	Email     string
	CreatedAt time.Time
}

// Stats aggregates a user's activity across questions, answers and votes.
type Stats struct {
	Questions       int
	Answers         int
	AcceptedAnswers int
	VotesCast       int
	VotesReceived   int
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Add(username, email string) (*User, error) {
	return r.AddAt(username, email, time.Now().UTC())
}

func (r *Repository) AddAt(username, email string, createdAt time.Time) (*User, error) {
	createdAt = createdAt.UTC()
	result, err := r.db.Exec(
		`INSERT INTO users (username, email, created_at) VALUES (?, ?, ?)`,
		username, email, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &User{ID: id, Username: username, Email: email, CreatedAt: createdAt}, nil
}

func (r *Repository) Get(id int64) (*User, error) {
	var u User
	var email sql.NullString
	err := r.db.QueryRow(
		`SELECT id, username, email, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &email, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.Email = email.String
	return &u, nil
}

func (r *Repository) GetByUsername(username string) (*User, error) {
	var u User
	var email sql.NullString
	err := r.db.QueryRow(
		`SELECT id, username, email, created_at FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &email, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.Email = email.String
	return &u, nil
}

// Ensure returns the user with the given name, creating it when missing.
func (r *Repository) Ensure(username, email string) (*User, error) {
	u, err := r.GetByUsername(username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return r.Add(username, email)
}

func (r *Repository) List() ([]User, error) {
	rows, err := r.db.Query(`SELECT id, username, email, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var email sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &email, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Email = email.String
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *Repository) Stats(id int64) (*Stats, error) {
	var s Stats
	err := r.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM questions WHERE user_id = ?),
			(SELECT COUNT(*) FROM answers WHERE user_id = ?),
			(SELECT COUNT(*) FROM answers WHERE user_id = ? AND is_accepted = TRUE),
			(SELECT COUNT(*) FROM votes WHERE user_id = ?),
			(SELECT COUNT(*) FROM votes v JOIN questions q ON v.question_id = q.id WHERE q.user_id = ?)
	`, id, id, id, id, id).Scan(&s.Questions, &s.Answers, &s.AcceptedAnswers, &s.VotesCast, &s.VotesReceived)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
