package mapping

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	sigsyaml "sigs.k8s.io/yaml"
)

// mappingSchema is the JSON Schema for guideline-mappings.yml.
//
//go:embed guideline-mappings.schema.json
var mappingSchema []byte

const schemaResourceName = "guideline-mappings.schema.json"

// ValidateSchema checks raw YAML mapping content against the embedded
// JSON Schema. It complements the structural checks in Parse: the schema
// catches type errors (for example a scalar where a list is expected)
// before unmarshaling silently coerces them.
func ValidateSchema(yamlData []byte) error {
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(mappingSchema))
	if err != nil {
		return fmt.Errorf("mapping: load embedded schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResourceName, schemaDoc); err != nil {
		return fmt.Errorf("mapping: register schema: %w", err)
	}
	schema, err := compiler.Compile(schemaResourceName)
	if err != nil {
		return fmt.Errorf("mapping: compile schema: %w", err)
	}

	jsonData, err := sigsyaml.YAMLToJSON(yamlData)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return nil
}
