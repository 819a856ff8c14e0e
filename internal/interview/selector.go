package interview

import (
	"context"
	"strings"
)

// selectQuestion produces exactly one admissible question for the pool
// and mutates the tracking fields. Selection runs through three tiers:
//
//  1. the generative source, when the quota allows it (forced near the
//     end of a session so probabilistic sampling cannot under-shoot the
//     allowance, probabilistic otherwise);
//  2. a uniformly-random unconsumed entry from the question bank;
//  3. the pool's fixed sentinel question.
//
// Generator and repository failures degrade to the next tier and are
// logged, never propagated. Only total exhaustion yields the
// "no more unique questions" sentinel.
func (e *Engine) selectQuestion(ctx context.Context, state State, pool Pool) State {
	// The pending question's origin is decided fresh each turn.
	state.CurrentQuestionID = nil

	if text, ok := e.tryGenerate(ctx, &state, pool); ok {
		state.AskedGeneratedQuestions = append(state.AskedGeneratedQuestions, text)
		state.CurrentQuestion = &text
		return state
	}

	if q := e.lookupBankQuestion(ctx, &state, pool); q != nil {
		state.CurrentQuestionID = &q.ID
		if !state.hasAskedID(q.ID) {
			state.AskedQuestionIDs = append(state.AskedQuestionIDs, q.ID)
		}
		state.CurrentQuestion = &q.Text
		return state
	}

	return e.fallbackQuestion(state, pool)
}

// shouldGenerate applies the quota math. Generation is forced when it is
// the only way left to hit the allowance before the session fills up,
// and sampled with probability GeneratedRatio otherwise.
func (e *Engine) shouldGenerate(state *State) bool {
	allowed := int(float64(state.TotalQuestions) * e.cfg.GeneratedRatio)
	remaining := allowed - len(state.AskedGeneratedQuestions)
	if remaining <= 0 {
		return false
	}

	if len(state.QuestionAndAnswerLog)+remaining >= state.TotalQuestions {
		return true
	}
	return e.float64() < e.cfg.GeneratedRatio
}

// tryGenerate makes exactly one generator attempt. Failures, empty
// results and duplicates all report a miss.
func (e *Engine) tryGenerate(ctx context.Context, state *State, pool Pool) (string, bool) {
	gen := e.generators[pool]
	if gen == nil || !e.shouldGenerate(state) {
		return "", false
	}

	asked := state.askedTexts()
	previous := make([]string, 0, len(asked))
	for _, qa := range state.QuestionAndAnswerLog {
		previous = append(previous, qa.Question)
	}
	for _, q := range state.AskedGeneratedQuestions {
		previous = append(previous, q)
	}

	text, err := gen.GenerateQuestion(ctx, state.Difficulty, previous)
	if err != nil {
		e.logger.Warn("question generation failed, falling back to bank",
			"sessionId", state.SessionID, "pool", string(pool), "error", err)
		return "", false
	}

	text = strings.TrimSpace(text)
	if text == "" || asked[text] {
		e.logger.Warn("generated question empty or duplicate, falling back to bank",
			"sessionId", state.SessionID, "pool", string(pool))
		return "", false
	}
	return text, true
}

// lookupBankQuestion queries one random unconsumed entry. Errors and
// empty results report a miss.
func (e *Engine) lookupBankQuestion(ctx context.Context, state *State, pool Pool) *Question {
	q, err := e.repo.FindRandomQuestion(ctx, pool, state.Difficulty, state.AskedQuestionIDs)
	if err != nil {
		e.logger.Warn("question bank lookup failed",
			"sessionId", state.SessionID, "pool", string(pool), "error", err)
		return nil
	}
	return q
}

// fallbackQuestion applies the sentinel tier. The sentinel is reused if
// the session still has turns to fill; only a session that already
// reached its quota surfaces the exhaustion sentinel.
func (e *Engine) fallbackQuestion(state State, pool Pool) State {
	sentinel := pool.sentinel()

	if !state.loggedTexts()[sentinel] {
		state.CurrentQuestion = &sentinel
		return state
	}

	if len(state.QuestionAndAnswerLog) < state.TotalQuestions {
		e.logger.Warn("reusing sentinel question to keep the session moving",
			"sessionId", state.SessionID, "pool", string(pool))
		state.CurrentQuestion = &sentinel
		return state
	}

	exhausted := pool.exhaustedSentinel()
	state.CurrentQuestion = &exhausted
	return state
}
