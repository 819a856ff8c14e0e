package interview

// Config controls session sizing and the generated-question quota.
type Config struct {
	// MinQuestions and MaxQuestions bound the inclusive range the
	// session length is drawn from at initialization.
	MinQuestions int
	MaxQuestions int

	// GeneratedRatio is the target fraction of a session's questions
	// that should come from the generative source. The per-session
	// allowance is floor(totalQuestions * GeneratedRatio).
	GeneratedRatio float64
}

// DefaultConfig returns the standard session sizing.
func DefaultConfig() Config {
	return Config{
		MinQuestions:   5,
		MaxQuestions:   10,
		GeneratedRatio: 0.4,
	}
}

// normalize clamps nonsensical values so the engine stays total.
func (c Config) normalize() Config {
	if c.MinQuestions < 0 {
		c.MinQuestions = 0
	}
	if c.MaxQuestions < c.MinQuestions {
		c.MaxQuestions = c.MinQuestions
	}
	if c.GeneratedRatio < 0 {
		c.GeneratedRatio = 0
	}
	if c.GeneratedRatio > 1 {
		c.GeneratedRatio = 1
	}
	return c
}
