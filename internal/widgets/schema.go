package widgets

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// validateSettingsPayload checks a settings map against a definition's JSON
// schema. Definitions without a schema accept any keys; the merge resolver is
// responsible for precedence, not shape.
func validateSettingsPayload(schema map[string]any, settings map[string]any) error {
	if len(schema) == 0 || len(settings) == 0 {
		return nil
	}

	compiled, err := compileSchema(schema)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDefinitionSchemaInvalid, err)
	}

	payload, err := normalizeJSON(settings)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsInvalid, err)
	}

	if err := compiled.Validate(payload); err != nil {
		return fmt.Errorf("%w: %s", ErrSettingsInvalid, schemaFailure(err))
	}
	return nil
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("widget_settings.json", strings.NewReader(string(raw))); err != nil {
		return nil, err
	}
	return compiler.Compile("widget_settings.json")
}

// normalizeJSON round-trips the map through encoding/json so numeric types
// match what the schema validator expects from decoded JSON.
func normalizeJSON(settings map[string]any) (any, error) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func schemaFailure(err error) string {
	var validationErr *jsonschema.ValidationError
	if ok := asValidationError(err, &validationErr); ok {
		leaf := validationErr
		for len(leaf.Causes) > 0 {
			leaf = leaf.Causes[0]
		}
		location := strings.TrimSpace(leaf.InstanceLocation)
		if location == "" {
			location = "#"
		}
		return fmt.Sprintf("%s: %s", location, leaf.Message)
	}
	return err.Error()
}

func asValidationError(err error, target **jsonschema.ValidationError) bool {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return false
	}
	*target = ve
	return true
}
