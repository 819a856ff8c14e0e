package llm

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// validateResponse checks the model output against the request's
// Schema. Requests without a schema pass through untouched. Failures
// surface as *ErrInvalidResponse so callers can take their fallback
// paths.
func validateResponse(req Request, raw json.RawMessage) error {
	if req.Schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	compiled, err := req.Schema.compile()
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("schema validation failed: %w", err),
		}
	}

	return nil
}

// compile builds the validator form of the definition. Schemas are
// long-lived package vars, so each one compiles at most once and the
// result is reused for every call that carries it.
func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.compileOnce.Do(func() {
		s.compiled, s.compileErr = compileDefinition(s.Name, s.Definition)
	})
	if s.compileErr != nil {
		return nil, fmt.Errorf("compile schema %q: %w", s.Name, s.compileErr)
	}
	return s.compiled, nil
}

func compileDefinition(name string, def map[string]any) (*jsonschema.Schema, error) {
	// The compiler wants a parsed JSON document, not a Go map holding
	// arbitrary concrete types. Round-trip through encoding/json.
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(url)
}
