package llm

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Provider is the single abstraction over generative-model backends.
// Every call in this service is single-turn: one system prompt, one
// user prompt, one completion.
type Provider interface {
	// Complete sends the request and returns the model's output. When
	// req.Schema is set the provider uses its native structured-output
	// mechanism and the returned Content is schema-validated JSON;
	// otherwise Content is the raw text of the completion.
	Complete(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Request describes one single-turn completion.
type Request struct {
	// System sets the model's role and constraints. Optional.
	System string

	// Prompt is the user message.
	Prompt string

	// Schema, when set, is the JSON Schema the response must conform to.
	Schema *Schema

	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature controls randomness, 0.0-1.0. Zero means deterministic.
	Temperature float64
}

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "interview-feedback".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any

	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
}

// Response holds the model's output.
type Response struct {
	// Content is validated JSON when the request carried a Schema,
	// raw completion text otherwise.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// Truncated is set when the completion hit the MaxTokens limit.
	Truncated bool
}

// Text returns the response content as plain text.
func (r *Response) Text() string {
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
