package interview

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func TestStoreAnswer_IncrementsIndexUnconditionally(t *testing.T) {
	e := newTestEngine(&stubRepo{}, nil, nil, fixedConfig(3, 0))

	// No pending question at all: nothing stored, index still moves.
	state := newSession(PoolHR)
	state.TotalQuestions = 3
	got := e.storeAnswer(state)

	if len(got.QuestionAndAnswerLog) != 0 {
		t.Errorf("log = %v, want empty", got.QuestionAndAnswerLog)
	}
	if got.QuestionIndex != 1 {
		t.Errorf("questionIndex = %d, want 1", got.QuestionIndex)
	}
}

func TestStoreAnswer_SkipsDuplicateQuestionText(t *testing.T) {
	e := newTestEngine(&stubRepo{}, nil, nil, fixedConfig(3, 0))

	state := newSession(PoolHR)
	state.TotalQuestions = 3
	state.QuestionAndAnswerLog = []QAPair{{Question: "Same?", Answer: "first"}}
	state.CurrentQuestion = strPtr("Same?")
	state.LatestAnswer = strPtr("second")

	got := e.storeAnswer(state)

	if len(got.QuestionAndAnswerLog) != 1 {
		t.Errorf("log length = %d, want 1 (duplicate skipped)", len(got.QuestionAndAnswerLog))
	}
	if got.QuestionAndAnswerLog[0].Answer != "first" {
		t.Errorf("stored answer overwritten: %q", got.QuestionAndAnswerLog[0].Answer)
	}
	if got.QuestionIndex != 1 {
		t.Errorf("questionIndex = %d, want 1 even on skip", got.QuestionIndex)
	}
}

func TestStoreAnswer_RecordsBankIDOnce(t *testing.T) {
	e := newTestEngine(&stubRepo{}, nil, nil, fixedConfig(3, 0))

	id := int64(7)
	state := newSession(PoolHR)
	state.TotalQuestions = 3
	state.CurrentQuestion = strPtr("From the bank?")
	state.CurrentQuestionID = &id
	state.LatestAnswer = strPtr("yes")
	state.AskedQuestionIDs = []int64{7}

	got := e.storeAnswer(state)
	if len(got.AskedQuestionIDs) != 1 {
		t.Errorf("askedQuestionIds = %v, want no duplicate", got.AskedQuestionIDs)
	}

	state.AskedQuestionIDs = nil
	got = e.storeAnswer(state)
	if len(got.AskedQuestionIDs) != 1 || got.AskedQuestionIDs[0] != 7 {
		t.Errorf("askedQuestionIds = %v, want [7]", got.AskedQuestionIDs)
	}
}

func TestCheckCompletion(t *testing.T) {
	e := newTestEngine(&stubRepo{}, nil, nil, fixedConfig(3, 0))

	tests := []struct {
		name   string
		index  int
		total  int
		status Status
		want   Status
	}{
		{"mid session", 1, 3, StatusInProgress, StatusInProgress},
		{"at quota", 3, 3, StatusInProgress, StatusDone},
		{"past quota", 5, 3, StatusInProgress, StatusDone},
		{"zero total", 0, 0, StatusInProgress, StatusDone},
		{"negative index", -1, 3, StatusInProgress, StatusInProgress},
		{"negative total", 1, -1, StatusInProgress, StatusInProgress},
		{"done stays done", 0, 3, StatusDone, StatusDone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newSession(PoolHR)
			state.QuestionIndex = tt.index
			state.TotalQuestions = tt.total
			state.Status = tt.status

			got := e.checkCompletion(state)
			if got.Status != tt.want {
				t.Errorf("status = %q, want %q", got.Status, tt.want)
			}
		})
	}
}

func TestConfigNormalize(t *testing.T) {
	cfg := Config{MinQuestions: -2, MaxQuestions: -3, GeneratedRatio: 1.5}.normalize()

	if cfg.MinQuestions < 0 {
		t.Errorf("minQuestions = %d, want >= 0", cfg.MinQuestions)
	}
	if cfg.MaxQuestions < cfg.MinQuestions {
		t.Errorf("maxQuestions = %d < minQuestions = %d", cfg.MaxQuestions, cfg.MinQuestions)
	}
	if cfg.GeneratedRatio < 0 || cfg.GeneratedRatio > 1 {
		t.Errorf("generatedRatio = %f, want within [0, 1]", cfg.GeneratedRatio)
	}
}
