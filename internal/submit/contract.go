package submit

import (
	"fmt"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const resultSchemaURL = "schema://submission-result.json"

// resultSchema is the contract every 2xx response body must satisfy.
var resultSchema = map[string]any{
	"type":     "object",
	"required": []any{"success"},
	"properties": map[string]any{
		"success": map[string]any{"type": "boolean"},
		"errors": map[string]any{
			"type": []any{"array", "null"},
			"items": map[string]any{
				"anyOf": []any{
					map[string]any{"type": "string"},
					map[string]any{
						"type": "object",
						"properties": map[string]any{
							"field":    map[string]any{"type": "string"},
							"property": map[string]any{"type": "string"},
							"messages": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
							"constraints": map[string]any{
								"anyOf": []any{
									map[string]any{
										"type":                 "object",
										"additionalProperties": map[string]any{"type": "string"},
									},
									map[string]any{
										"type":  "array",
										"items": map[string]any{"type": "string"},
									},
								},
							},
						},
					},
				},
			},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledResult *jsonschema.Schema
	compileErr     error
)

func compiledContract() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(resultSchemaURL, resultSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledResult, compileErr = c.Compile(resultSchemaURL)
	})
	return compiledResult, compileErr
}

// validateContract parses body and validates it against resultSchema.
// Returns *ErrInvalidResponse on failure.
func validateContract(body []byte) error {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return &ErrInvalidResponse{Body: body, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := compiledContract()
	if err != nil {
		return &ErrInvalidResponse{Body: body, Err: fmt.Errorf("compile contract: %w", err)}
	}

	if err := schema.Validate(parsed); err != nil {
		return &ErrInvalidResponse{Body: body, Err: fmt.Errorf("contract violation: %w", err)}
	}
	return nil
}
