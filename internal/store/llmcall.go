package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/prepdesk/prepdesk/internal/llm"
)

// LLMCallRepo records model calls for auditing. It implements
// llm.CallRecorder.
type LLMCallRepo struct {
	db *sql.DB
}

// RecordLLMCall appends one model call record.
func (r *LLMCallRepo) RecordLLMCall(ctx context.Context, call llm.CallLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_calls (provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		call.Provider, call.Model, call.Purpose, call.InputTokens, call.OutputTokens,
		call.LatencyMs, call.Success, call.ErrorMessage, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("record llm call: %w", err)
	}
	return nil
}

// LLMCall is one recorded model call.
type LLMCall struct {
	ID           int64
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	CreatedAt    time.Time
}

// List returns the most recent calls, newest first. A non-empty
// purpose narrows the result before the limit applies.
func (r *LLMCallRepo) List(ctx context.Context, limit int, purpose string) ([]LLMCall, error) {
	query := `
		SELECT id, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at
		FROM llm_calls`
	args := make([]any, 0, 2)
	if purpose != "" {
		query += ` WHERE purpose = ?`
		args = append(args, purpose)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list llm calls: %w", err)
	}
	defer rows.Close()

	var calls []LLMCall
	for rows.Next() {
		var c LLMCall
		var createdAt int64
		if err := rows.Scan(&c.ID, &c.Provider, &c.Model, &c.Purpose, &c.InputTokens,
			&c.OutputTokens, &c.LatencyMs, &c.Success, &c.ErrorMessage, &createdAt); err != nil {
			return nil, fmt.Errorf("scan llm call: %w", err)
		}
		c.CreatedAt = time.Unix(createdAt, 0)
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

// PurposeUsage aggregates token usage per call purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// UsageByPurpose returns aggregated usage grouped by purpose.
func (r *LLMCallRepo) UsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT purpose, COUNT(*), SUM(input_tokens), SUM(output_tokens), CAST(AVG(latency_ms) AS INTEGER)
		FROM llm_calls GROUP BY purpose ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("llm usage by purpose: %w", err)
	}
	defer rows.Close()

	var stats []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		stats = append(stats, u)
	}
	return stats, rows.Err()
}
