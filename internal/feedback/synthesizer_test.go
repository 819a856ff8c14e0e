package feedback

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/prepdesk/prepdesk/internal/interview"
	"github.com/prepdesk/prepdesk/internal/llm"
)

var sampleTranscript = []interview.QAPair{
	{Question: "What is a goroutine?", Answer: "A lightweight thread managed by the runtime."},
	{Question: "Explain channels.", Answer: "Typed conduits for communication between goroutines."},
}

func TestSynthesize_ParsesStructuredResponse(t *testing.T) {
	raw := `{
		"overall_score": 7.5,
		"summary": "Good grasp of concurrency basics.",
		"strengths": ["clear definitions", "uses correct terms"],
		"improvements": ["add examples"],
		"detailed_feedback": [
			{"question": "What is a goroutine?", "answer": "A lightweight thread managed by the runtime.", "evaluation": "Accurate.", "score": 8}
		]
	}`
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(raw)})
	synth := New(mock, DefaultConfig())

	fb, err := synth.Synthesize(context.Background(), interview.DifficultyMedium, sampleTranscript)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}

	if fb.OverallScore != 7.5 {
		t.Errorf("overallScore = %v, want 7.5", fb.OverallScore)
	}
	if len(fb.Strengths) != 2 || len(fb.Improvements) != 1 {
		t.Errorf("strengths/improvements = %d/%d", len(fb.Strengths), len(fb.Improvements))
	}
	if len(fb.Detailed) != 1 || fb.Detailed[0].Score != 8 {
		t.Errorf("detailed = %+v", fb.Detailed)
	}

	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "interview-feedback" {
		t.Errorf("request schema = %+v, want interview-feedback", req.Schema)
	}
	if !strings.Contains(req.Prompt, "Q1: What is a goroutine?") || !strings.Contains(req.Prompt, "A2: Typed conduits") {
		t.Errorf("prompt missing transcript:\n%s", req.Prompt)
	}
}

func TestSynthesize_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	synth := New(mock, DefaultConfig())

	if _, err := synth.Synthesize(context.Background(), interview.DifficultyEasy, sampleTranscript); err == nil {
		t.Fatal("expected provider error to propagate")
	}
}

func TestSynthesize_MalformedJSONFails(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("not json at all")})
	synth := New(mock, DefaultConfig())

	if _, err := synth.Synthesize(context.Background(), interview.DifficultyEasy, sampleTranscript); err == nil {
		t.Fatal("expected parse error")
	}
}
