package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn *sql.DB
	path string
}

func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Path() string {
	return db.path
}

func (db *DB) Exec(query string, args ...any) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

func (db *DB) Query(query string, args ...any) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

func (db *DB) QueryRow(query string, args ...any) *sql.Row {
	return db.conn.QueryRow(query, args...)
}

// Select starts a squirrel query bound to SQLite's placeholder style.
func Select(columns ...string) sq.SelectBuilder {
	return sq.Select(columns...).PlaceholderFormat(sq.Question)
}

// QueryBuilder runs a squirrel SELECT against the connection.
func (db *DB) QueryBuilder(b sq.SelectBuilder) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return db.conn.Query(query, args...)
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tags (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS question_tags (
		question_id INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		tag_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (question_id, tag_id)
	);

	CREATE TABLE IF NOT EXISTS answers (
		id INTEGER PRIMARY KEY,
		question_id INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL REFERENCES users(id),
		content TEXT NOT NULL DEFAULT '',
		is_accepted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS votes (
		id INTEGER PRIMARY KEY,
		question_id INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL REFERENCES users(id),
		created_at DATETIME NOT NULL,
		UNIQUE(question_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS notifications (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		content TEXT NOT NULL,
		notification_type TEXT NOT NULL DEFAULT 'info',
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS badges (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		icon TEXT,
		requirement_type TEXT NOT NULL,
		requirement_value INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS user_badges (
		user_id INTEGER NOT NULL REFERENCES users(id),
		badge_id INTEGER NOT NULL REFERENCES badges(id),
		earned_at DATETIME NOT NULL,
		PRIMARY KEY (user_id, badge_id)
	);

	CREATE TABLE IF NOT EXISTS quality_scores (
		question_id INTEGER PRIMARY KEY REFERENCES questions(id) ON DELETE CASCADE,
		score REAL NOT NULL,
		scored_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS related_questions (
		id INTEGER PRIMARY KEY,
		question_id_a INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		question_id_b INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		strength REAL NOT NULL,
		UNIQUE(question_id_a, question_id_b)
	);

	CREATE INDEX IF NOT EXISTS idx_questions_user ON questions(user_id);
	CREATE INDEX IF NOT EXISTS idx_questions_created ON questions(created_at);
	CREATE INDEX IF NOT EXISTS idx_question_tags_tag ON question_tags(tag_id);
	CREATE INDEX IF NOT EXISTS idx_answers_question ON answers(question_id);
	CREATE INDEX IF NOT EXISTS idx_answers_user ON answers(user_id);
	CREATE INDEX IF NOT EXISTS idx_votes_question ON votes(question_id);
	CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, is_read);
	`

	_, err := db.conn.Exec(schema)
	return err
}
