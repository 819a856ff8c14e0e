// Package store provides SQLite-backed persistence for users, the
// question bank, serialized session state, and model-call audit logs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the database handle and hands out repositories.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at path, applies the recommended
// pragmas, and creates the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return s, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Users returns the user repository.
func (s *Store) Users() *UserRepo {
	return &UserRepo{db: s.db}
}

// Questions returns the question bank repository.
func (s *Store) Questions() *QuestionRepo {
	return &QuestionRepo{db: s.db}
}

// Sessions returns the interview session repository.
func (s *Store) Sessions() *SessionRepo {
	return &SessionRepo{db: s.db}
}

// LLMCalls returns the model-call audit repository.
func (s *Store) LLMCalls() *LLMCallRepo {
	return &LLMCallRepo{db: s.db}
}

// applyPragmas configures SQLite for a small concurrent service.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func (s *Store) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		level         TEXT NOT NULL,
		created_at    INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS question_bank (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		type          TEXT NOT NULL,
		difficulty    TEXT NOT NULL,
		question_text TEXT NOT NULL,
		created_at    INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_question_bank_type_difficulty
		ON question_bank(type, difficulty);

	CREATE TABLE IF NOT EXISTS interview_sessions (
		session_id TEXT PRIMARY KEY,
		user_id    INTEGER NOT NULL REFERENCES users(id),
		category   TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		status     TEXT NOT NULL,
		state_json TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_interview_sessions_user
		ON interview_sessions(user_id);

	CREATE TABLE IF NOT EXISTS question_attempts (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id    TEXT NOT NULL REFERENCES interview_sessions(session_id),
		question_id   INTEGER,
		question_text TEXT NOT NULL,
		answer        TEXT NOT NULL,
		is_generated  INTEGER NOT NULL DEFAULT 0,
		created_at    INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_question_attempts_session
		ON question_attempts(session_id);

	CREATE TABLE IF NOT EXISTS llm_calls (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		latency_ms    INTEGER NOT NULL,
		success       INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		created_at    INTEGER NOT NULL
	);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. PREPDESK_DB environment variable
// 2. $XDG_DATA_HOME/prepdesk/prepdesk.db
// 3. ~/.local/share/prepdesk/prepdesk.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("PREPDESK_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "prepdesk", "prepdesk.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
