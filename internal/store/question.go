package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/prepdesk/prepdesk/internal/interview"
)

// Question types stored in the bank. The HR pool maps to the single
// "hr" type; the technical pool spans coding, sql, and conceptual.
const (
	TypeHR         = "hr"
	TypeCoding     = "coding"
	TypeSQL        = "sql"
	TypeConceptual = "conceptual"
)

// BankQuestion is one row of the question bank.
type BankQuestion struct {
	ID         int64
	Type       string
	Difficulty interview.Difficulty
	Text       string
}

// QuestionRepo provides read access to the question bank plus seeding
// inserts. The interview core only sees the read side via
// interview.QuestionRepository.
type QuestionRepo struct {
	db *sql.DB
}

// poolTypes maps a pool to the bank types it draws from.
func poolTypes(pool interview.Pool) []string {
	if pool == interview.PoolTechnical {
		return []string{TypeCoding, TypeSQL, TypeConceptual}
	}
	return []string{TypeHR}
}

// FindRandomQuestion returns one uniformly-random question for the pool
// and difficulty whose id is not in excludeIDs, or (nil, nil) when the
// bank has no remaining candidate.
func (r *QuestionRepo) FindRandomQuestion(ctx context.Context, pool interview.Pool, difficulty interview.Difficulty, excludeIDs []int64) (*interview.Question, error) {
	types := poolTypes(pool)

	var b strings.Builder
	args := make([]any, 0, len(types)+len(excludeIDs)+1)

	b.WriteString("SELECT id, question_text FROM question_bank WHERE type IN (")
	b.WriteString(placeholders(len(types)))
	b.WriteString(") AND difficulty = ?")
	for _, t := range types {
		args = append(args, t)
	}
	args = append(args, string(difficulty))

	if len(excludeIDs) > 0 {
		b.WriteString(" AND id NOT IN (")
		b.WriteString(placeholders(len(excludeIDs)))
		b.WriteString(")")
		for _, id := range excludeIDs {
			args = append(args, id)
		}
	}

	b.WriteString(" ORDER BY RANDOM() LIMIT 1")

	var q interview.Question
	err := r.db.QueryRowContext(ctx, b.String(), args...).Scan(&q.ID, &q.Text)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find random question: %w", err)
	}
	return &q, nil
}

// Insert adds one question to the bank and returns its id.
func (r *QuestionRepo) Insert(ctx context.Context, q BankQuestion) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO question_bank (type, difficulty, question_text, created_at) VALUES (?, ?, ?, ?)`,
		q.Type, string(q.Difficulty), q.Text, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert question id: %w", err)
	}
	return id, nil
}

// Count returns the number of questions in the bank.
func (r *QuestionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM question_bank`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// placeholders returns n comma-separated SQL placeholders.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
