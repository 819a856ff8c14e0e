package interview

import "context"

// initialize is the entry node of the opening graph. It draws the
// session length and resets all per-session tracking. Identifiers
// assigned upstream (sessionId, userId) are left untouched.
func (e *Engine) initialize(state State) State {
	span := e.cfg.MaxQuestions - e.cfg.MinQuestions
	total := e.cfg.MinQuestions
	if span > 0 {
		total += e.intN(span + 1)
	}

	state.TotalQuestions = total
	state.QuestionIndex = 0
	state.QuestionAndAnswerLog = []QAPair{}
	state.AskedQuestionIDs = []int64{}
	state.AskedGeneratedQuestions = []string{}
	state.Status = StatusInProgress
	state.Feedback = nil

	e.logger.Debug("session initialized",
		"sessionId", state.SessionID,
		"totalQuestions", state.TotalQuestions)
	return state
}

// askQuestion dispatches to the selection policy for the session's
// category. Unknown categories degrade to a generic error question so
// the caller still receives a usable state.
func (e *Engine) askQuestion(ctx context.Context, state State) State {
	pool := state.Category
	if !pool.Valid() {
		e.logger.Error("unknown question pool", "sessionId", state.SessionID, "category", string(state.Category))
		q := unexpectedErrorQuestion
		state.CurrentQuestion = &q
		state.CurrentQuestionID = nil
		return state
	}
	return e.selectQuestion(ctx, state, pool)
}

// storeAnswer commits the pending turn. Duplicate question text is
// silently skipped so a retried call cannot double-count, and the bank
// question id gets a second insertion point here in case the caller
// retried without re-running selection. The index increments
// unconditionally; the graph wiring guarantees exactly one call per turn.
func (e *Engine) storeAnswer(state State) State {
	if state.CurrentQuestion != nil && state.LatestAnswer != nil {
		if !state.loggedTexts()[*state.CurrentQuestion] {
			state.QuestionAndAnswerLog = append(state.QuestionAndAnswerLog, QAPair{
				Question: *state.CurrentQuestion,
				Answer:   *state.LatestAnswer,
			})
		} else {
			e.logger.Warn("duplicate question text, skipping store",
				"sessionId", state.SessionID)
		}
	} else {
		e.logger.Warn("missing question or answer, nothing stored",
			"sessionId", state.SessionID)
	}

	if state.CurrentQuestionID != nil && !state.hasAskedID(*state.CurrentQuestionID) {
		state.AskedQuestionIDs = append(state.AskedQuestionIDs, *state.CurrentQuestionID)
	}

	state.QuestionIndex++
	return state
}

// checkCompletion is a pure decision over the index and the quota.
// Malformed counters default to in_progress so a session is never ended
// prematurely; a status of done is never reverted.
func (e *Engine) checkCompletion(state State) State {
	if state.Status == StatusDone {
		return state
	}
	if state.QuestionIndex < 0 || state.TotalQuestions < 0 {
		state.Status = StatusInProgress
		return state
	}
	if state.QuestionIndex >= state.TotalQuestions {
		state.Status = StatusDone
	} else {
		state.Status = StatusInProgress
	}
	return state
}

// generateFeedback is the terminal node. Whatever the synthesizer does,
// the session ends here: on failure a fixed placeholder is stored so the
// caller is never left with an un-terminated session.
func (e *Engine) generateFeedback(ctx context.Context, state State) State {
	fb, err := e.synthesize(ctx, state)
	if err != nil {
		e.logger.Error("feedback synthesis failed",
			"sessionId", state.SessionID, "error", err)
		fb = FallbackFeedback()
	}

	state.Feedback = fb
	state.Status = StatusDone
	state.CurrentQuestion = nil
	state.CurrentQuestionID = nil
	return state
}

func (e *Engine) synthesize(ctx context.Context, state State) (*Feedback, error) {
	if e.synth == nil {
		return FallbackFeedback(), nil
	}
	return e.synth.Synthesize(ctx, state.Difficulty, state.QuestionAndAnswerLog)
}
