package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/prepdesk/prepdesk/internal/interview"
)

// User is a registered candidate.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Level        interview.Difficulty
	CreatedAt    time.Time
}

// UserRepo manages user accounts.
type UserRepo struct {
	db *sql.DB
}

// Create inserts a new user and returns its id.
func (r *UserRepo) Create(ctx context.Context, u User) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, level, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.PasswordHash, string(u.Level), time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create user id: %w", err)
	}
	return id, nil
}

// ByEmail returns the user with the given email, or (nil, nil) when no
// such user exists.
func (r *UserRepo) ByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, level, created_at FROM users WHERE email = ?`, email))
}

// ByID returns the user with the given id, or (nil, nil) when no such
// user exists.
func (r *UserRepo) ByID(ctx context.Context, id int64) (*User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, level, created_at FROM users WHERE id = ?`, id))
}

func (r *UserRepo) scanOne(row *sql.Row) (*User, error) {
	var u User
	var level string
	var createdAt int64
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &level, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.Level = interview.Difficulty(level)
	u.CreatedAt = time.Unix(createdAt, 0)
	return &u, nil
}
