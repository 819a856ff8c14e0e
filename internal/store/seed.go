package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/prepdesk/prepdesk/internal/interview"
)

//go:embed seed_questions.json
var seedQuestionsJSON []byte

type seedQuestion struct {
	Type       string `json:"type"`
	Difficulty string `json:"difficulty"`
	Text       string `json:"text"`
}

// Seed loads the bundled question bank. It is a no-op when the bank
// already has questions, so it is safe to run on every startup.
func (s *Store) Seed(ctx context.Context) (int, error) {
	questions := s.Questions()

	n, err := questions.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	var seeds []seedQuestion
	if err := json.Unmarshal(seedQuestionsJSON, &seeds); err != nil {
		return 0, fmt.Errorf("parse seed questions: %w", err)
	}

	inserted := 0
	for _, q := range seeds {
		_, err := questions.Insert(ctx, BankQuestion{
			Type:       q.Type,
			Difficulty: interview.Difficulty(q.Difficulty),
			Text:       q.Text,
		})
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
