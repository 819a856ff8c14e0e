package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prepdesk/prepdesk/internal/interview"
)

// SessionRepo persists serialized session state between engine steps.
// The engine itself never touches storage; the HTTP layer commits state
// here after every step.
type SessionRepo struct {
	db *sql.DB
}

// Save upserts the session's serialized state.
func (r *SessionRepo) Save(ctx context.Context, state interview.State) error {
	if state.SessionID == "" {
		return fmt.Errorf("save session: missing session id")
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}

	now := time.Now().Unix()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO interview_sessions (session_id, user_id, category, difficulty, status, state_json, started_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			status = excluded.status,
			state_json = excluded.state_json,
			updated_at = excluded.updated_at`,
		state.SessionID, state.UserID, string(state.Category), string(state.Difficulty),
		string(state.Status), string(payload), now, now)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the stored state for the session, or (nil, nil) when the
// session is unknown.
func (r *SessionRepo) Load(ctx context.Context, sessionID string) (*interview.State, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT state_json FROM interview_sessions WHERE session_id = ?`, sessionID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var state interview.State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return nil, fmt.Errorf("unmarshal session state: %w", err)
	}
	return &state, nil
}

// Attempt is one committed turn, denormalized for reporting.
type Attempt struct {
	SessionID    string
	QuestionID   *int64
	QuestionText string
	Answer       string
	IsGenerated  bool
}

// AppendAttempt records one committed turn.
func (r *SessionRepo) AppendAttempt(ctx context.Context, a Attempt) error {
	var qid any
	if a.QuestionID != nil {
		qid = *a.QuestionID
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO question_attempts (session_id, question_id, question_text, answer, is_generated, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.SessionID, qid, a.QuestionText, a.Answer, a.IsGenerated, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	return nil
}
