package feedback

import "github.com/prepdesk/prepdesk/internal/llm"

// feedbackSchema defines the structured output the evaluator must return.
var feedbackSchema = &llm.Schema{
	Name:        "interview-feedback",
	Description: "Structured evaluation of a completed interview session",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"overall_score": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     10,
				"description": "Overall score for the session, 0-10",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "Summary of the candidate's performance",
			},
			"strengths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "3-5 bullet points on what the candidate did well",
			},
			"improvements": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "3-5 bullet points on how the candidate can improve",
			},
			"detailed_feedback": map[string]any{
				"type":        "array",
				"description": "Per-question evaluation, one entry per answered question",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":   map[string]any{"type": "string"},
						"answer":     map[string]any{"type": "string"},
						"evaluation": map[string]any{"type": "string"},
						"score": map[string]any{
							"type":    "number",
							"minimum": 0,
							"maximum": 10,
						},
					},
					"required":             []any{"question", "answer", "evaluation", "score"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"overall_score", "summary", "strengths", "improvements", "detailed_feedback"},
		"additionalProperties": false,
	},
}
