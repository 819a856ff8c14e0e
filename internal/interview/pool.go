package interview

// Sentinel questions guarantee forward progress when both the question
// bank and the generative source come up empty.
const (
	hrSentinelQuestion   = "Tell me about a time you overcame a workplace challenge."
	techSentinelQuestion = "Explain the difference between a stack and a queue."

	hrExhaustedSentinel   = "No more unique HR questions available."
	techExhaustedSentinel = "No more unique technical questions available."
)

// unexpectedErrorQuestion is shown when question selection fails in a way
// no fallback tier can absorb. Availability over strictness: the caller
// always gets a usable state.
const unexpectedErrorQuestion = "An unexpected error occurred while selecting the next question."

// sentinel returns the fixed pool-specific fallback question.
func (p Pool) sentinel() string {
	if p == PoolTechnical {
		return techSentinelQuestion
	}
	return hrSentinelQuestion
}

// exhaustedSentinel returns the string surfaced when no unique question
// remains and the quota is already met.
func (p Pool) exhaustedSentinel() string {
	if p == PoolTechnical {
		return techExhaustedSentinel
	}
	return hrExhaustedSentinel
}

// Valid reports whether p is a known pool.
func (p Pool) Valid() bool {
	return p == PoolHR || p == PoolTechnical
}

// Valid reports whether d is a known difficulty level.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
