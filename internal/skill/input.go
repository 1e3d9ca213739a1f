package skill

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// InputSchema describes the JSON accepted by DecodeInput.
func InputSchema() map[string]any {
	identifier := map[string]any{"type": "string", "minLength": 1}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The question to answer from the indexed documents",
			},
			"namespace":  identifier,
			"collection": identifier,
			"index":      identifier,
		},
		"required":             []string{"question"},
		"additionalProperties": false,
	}
}

// DecodeInput validates raw against InputSchema and returns the input with
// defaults applied.
func DecodeInput(raw []byte) (Input, error) {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(InputSchema()), gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return Input{}, fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return Input{}, fmt.Errorf("invalid skill input: %s", strings.Join(errs, ", "))
	}

	var input Input
	if err := json.Unmarshal(raw, &input); err != nil {
		return Input{}, fmt.Errorf("decode skill input: %w", err)
	}
	return input.WithDefaults(), nil
}
