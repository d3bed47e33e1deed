package notification

import (
	"fmt"
	"time"

	"github.com/julienpequegnot/qaboard/internal/database"
)

// Kinds understood by clients.
const (
	KindInfo        = "info"
	KindSuccess     = "success"
	KindAchievement = "achievement"
)

type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Content   string    `json:"content"`
	Kind      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Add(userID int64, content, kind string) (*Notification, error) {
	createdAt := time.Now().UTC()
	result, err := r.db.Exec(
		`INSERT INTO notifications (user_id, content, notification_type, created_at) VALUES (?, ?, ?, ?)`,
		userID, content, kind, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert notification: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &Notification{
		ID:        id,
		UserID:    userID,
		Content:   content,
		Kind:      kind,
		CreatedAt: createdAt,
	}, nil
}

// ListForUser returns the newest notifications first.
func (r *Repository) ListForUser(userID int64, unreadOnly bool, limit int) ([]Notification, error) {
	query := `SELECT id, user_id, content, notification_type, is_read, created_at FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Content, &n.Kind, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *Repository) UnreadCount(userID int64) (int, error) {
	var n int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = FALSE`, userID,
	).Scan(&n)
	return n, err
}

// MarkAllRead flags every unread notification of the user and returns how many changed.
func (r *Repository) MarkAllRead(userID int64) (int64, error) {
	result, err := r.db.Exec(
		`UPDATE notifications SET is_read = TRUE WHERE user_id = ? AND is_read = FALSE`, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return result.RowsAffected()
}
