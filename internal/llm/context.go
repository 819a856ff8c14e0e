package llm

import "context"

// Purpose labels for the call log. Callers tag outbound requests so
// usage can be broken down per feature.
const (
	PurposeQuestionGen = "question-gen"
	PurposeFeedback    = "feedback"
)

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose attaches a purpose label to the context for call logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
