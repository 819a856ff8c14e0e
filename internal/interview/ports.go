package interview

import "context"

// Question is a single entry from the question bank.
type Question struct {
	ID   int64
	Text string
}

// QuestionRepository is the read-only query surface over the question
// bank. Implementations return (nil, nil) when no entry matches.
type QuestionRepository interface {
	// FindRandomQuestion returns one uniformly-random question for the
	// pool and difficulty whose id is not in excludeIDs.
	FindRandomQuestion(ctx context.Context, pool Pool, difficulty Difficulty, excludeIDs []int64) (*Question, error)
}

// Generator produces one candidate question text from a generative
// source. previous carries every question text already shown in the
// session so the source can avoid repeats. Exactly one attempt is made
// per turn; callers treat errors and empty results as a miss, never as
// a fatal failure.
type Generator interface {
	GenerateQuestion(ctx context.Context, difficulty Difficulty, previous []string) (string, error)
}

// Synthesizer produces the structured summary evaluation from the full
// question/answer transcript.
type Synthesizer interface {
	Synthesize(ctx context.Context, difficulty Difficulty, transcript []QAPair) (*Feedback, error)
}
