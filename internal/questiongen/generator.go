// Package questiongen produces interview questions from a generative
// model, one per call, deduplicated against everything already asked in
// the session.
package questiongen

import (
	"context"
	"fmt"
	"strings"

	"github.com/prepdesk/prepdesk/internal/interview"
	"github.com/prepdesk/prepdesk/internal/llm"
)

const hrSystemPrompt = `You are an expert HR interviewer. Generate one behavioral or situational interview question.

Rules:
- Focus on teamwork, conflict resolution, problem-solving, or leadership.
- Do not repeat or rephrase any question from the "already asked" list.
- Return only the question text, with no numbering, quotes, or commentary.`

const techSystemPrompt = `You are an expert technical interviewer. Generate one coding, problem-solving, or system design interview question.

Rules:
- Focus on algorithms, coding challenges, debugging, optimization, or system design.
- Do not repeat or rephrase any question from the "already asked" list.
- Return only the question text, with no numbering, quotes, or commentary.`

// Config controls the generator's prompt and token budget.
type Config struct {
	// MaxTokens is the token budget for the completion.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// MaxPreviousQuestions caps the dedup list included in the prompt.
	MaxPreviousQuestions int
}

// DefaultConfig returns the recommended generator settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:            256,
		Temperature:          0.7,
		MaxPreviousQuestions: 20,
	}
}

// LLMGenerator implements interview.Generator for one pool.
type LLMGenerator struct {
	provider llm.Provider
	pool     interview.Pool
	cfg      Config
}

// New creates a generator for the given pool.
func New(provider llm.Provider, pool interview.Pool, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, pool: pool, cfg: cfg}
}

// GenerateQuestion makes one completion call and returns the trimmed
// question text. An empty result is returned as-is; the caller decides
// how to degrade.
func (g *LLMGenerator) GenerateQuestion(ctx context.Context, difficulty interview.Difficulty, previous []string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	req := llm.Request{
		System:      g.systemPrompt(),
		Prompt:      g.buildPrompt(difficulty, previous),
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("question generation failed: %w", err)
	}

	return cleanQuestion(resp.Text()), nil
}

func (g *LLMGenerator) systemPrompt() string {
	if g.pool == interview.PoolTechnical {
		return techSystemPrompt
	}
	return hrSystemPrompt
}

func (g *LLMGenerator) buildPrompt(difficulty interview.Difficulty, previous []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Candidate level: %s\n", difficulty)
	b.WriteString("\nAlready asked in this session:\n")
	b.WriteString(formatPrevious(previous, g.cfg.MaxPreviousQuestions))
	b.WriteString("\n\nReturn one new, unique question.")
	return b.String()
}

// formatPrevious numbers the prior questions for the prompt, keeping
// only the most recent max entries. Returns "None" when there are none.
func formatPrevious(previous []string, max int) string {
	if len(previous) == 0 {
		return "None"
	}
	if max > 0 && len(previous) > max {
		previous = previous[len(previous)-max:]
	}

	var b strings.Builder
	for i, q := range previous {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}

// cleanQuestion strips the wrapping a chatty model tends to add around
// a bare question: whitespace, quotes, and leading list markers.
func cleanQuestion(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"'`)
	text = strings.TrimLeft(text, "-*0123456789. ")
	return strings.TrimSpace(text)
}
