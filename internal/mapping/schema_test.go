package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSchemaAccepts(t *testing.T) {
	assert.NoError(t, ValidateSchema([]byte(validMapping)))
}

func TestValidateSchemaRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "languages_scalar_not_list",
			yaml: `
guidelines:
  - id: solid
    path: a.md
    category: design
    languages: go
`,
		},
		{
			name: "unknown_top_level_key",
			yaml: `
rules: []
guidelines: []
`,
		},
		{
			name: "level_outside_enum",
			yaml: `
guidelines:
  - id: solid
    path: a.md
    category: design
    levels: [extreme]
`,
		},
		{
			name: "missing_guidelines_key",
			yaml: `schema_version: "1.0"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchema([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrSchemaViolation)
		})
	}
}

func TestValidateSchemaBadYAML(t *testing.T) {
	err := ValidateSchema([]byte("guidelines: [\n"))
	assert.ErrorIs(t, err, ErrInvalidYAML)
}
