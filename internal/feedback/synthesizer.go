// Package feedback turns a finished interview transcript into a
// structured evaluation via a generative model.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prepdesk/prepdesk/internal/interview"
	"github.com/prepdesk/prepdesk/internal/llm"
)

const evaluatorSystemPrompt = `You are an interview evaluator. Given the questions and answers from an interview session, provide structured feedback.

Rules:
- Score each question based on the quality of the answer; scores should vary.
- The average of the question scores should be close to the overall score.
- Keep the summary concrete and specific to this candidate's answers.
- Provide 3-5 strengths and 3-5 improvements as short bullet points.`

// Config controls the synthesizer's token budget.
type Config struct {
	MaxTokens int
}

// DefaultConfig returns the recommended synthesizer settings.
func DefaultConfig() Config {
	return Config{MaxTokens: 2048}
}

// LLMSynthesizer implements interview.Synthesizer.
type LLMSynthesizer struct {
	provider llm.Provider
	cfg      Config
}

// New creates a synthesizer backed by the given provider.
func New(provider llm.Provider, cfg Config) *LLMSynthesizer {
	return &LLMSynthesizer{provider: provider, cfg: cfg}
}

// synthOutput is the raw model response before conversion.
type synthOutput struct {
	OverallScore float64  `json:"overall_score"`
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Detailed     []struct {
		Question   string  `json:"question"`
		Answer     string  `json:"answer"`
		Evaluation string  `json:"evaluation"`
		Score      float64 `json:"score"`
	} `json:"detailed_feedback"`
}

// Synthesize requests a structured evaluation of the transcript.
func (s *LLMSynthesizer) Synthesize(ctx context.Context, difficulty interview.Difficulty, transcript []interview.QAPair) (*interview.Feedback, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeFeedback)

	req := llm.Request{
		System:    evaluatorSystemPrompt,
		Prompt:    buildTranscriptPrompt(difficulty, transcript),
		Schema:    feedbackSchema,
		MaxTokens: s.cfg.MaxTokens,
	}

	resp, err := s.provider.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("feedback synthesis failed: %w", err)
	}

	var raw synthOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse feedback response: %w", err)
	}

	fb := &interview.Feedback{
		OverallScore: raw.OverallScore,
		Summary:      raw.Summary,
		Strengths:    raw.Strengths,
		Improvements: raw.Improvements,
		Detailed:     make([]interview.QuestionEval, 0, len(raw.Detailed)),
	}
	for _, d := range raw.Detailed {
		fb.Detailed = append(fb.Detailed, interview.QuestionEval{
			Question:   d.Question,
			Answer:     d.Answer,
			Evaluation: d.Evaluation,
			Score:      d.Score,
		})
	}
	return fb, nil
}

// buildTranscriptPrompt formats the Q&A log the way the evaluator
// expects it.
func buildTranscriptPrompt(difficulty interview.Difficulty, transcript []interview.QAPair) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Experience level: %s\n\n", difficulty)
	b.WriteString("Questions and answers from the interview session:\n\n")
	for i, qa := range transcript {
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n\n", i+1, qa.Question, i+1, qa.Answer)
	}
	b.WriteString("Provide your structured feedback for this session.")
	return b.String()
}
