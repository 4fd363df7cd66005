package mapping

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archguide/archguide/pkg/models"
)

const validMapping = `
schema_version: "1.2"
guidelines:
  - id: go-error-handling
    title: Error Handling
    path: guidelines/go/error-handling.md
    category: language-idioms
    languages: [go]
    levels: [standard]
    tags: [errors, reliability]
  - id: clean-architecture
    title: Clean Architecture
    path: guidelines/architecture/clean-architecture.md
    category: architecture
    architectures: [layered, hexagonal]
    levels: [basic]
  - id: testing-pyramid
    path: guidelines/testing/pyramid.md
    category: testing
`

func TestParseValid(t *testing.T) {
	f, err := Parse([]byte(validMapping))
	require.NoError(t, err)
	require.Len(t, f.Guidelines, 3)

	assert.Equal(t, "1.2", f.SchemaVersion)
	assert.Equal(t, []string{"language-idioms", "architecture", "testing"}, f.Categories())

	r, ok := f.ByID("go-error-handling")
	require.True(t, ok)
	assert.Equal(t, "guidelines/go/error-handling.md", r.Path)
	assert.True(t, r.AppliesTo("go"))
	assert.False(t, r.AppliesTo("rust"))
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("guidelines: [\n"))
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestParseValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name: "duplicate_id",
			yaml: `
guidelines:
  - {id: solid, path: a.md, category: design}
  - {id: solid, path: b.md, category: design}
`,
			wantErr: ErrDuplicateID,
		},
		{
			name: "missing_path",
			yaml: `
guidelines:
  - {id: solid, category: design}
`,
			wantErr: ErrInvalidMapping,
		},
		{
			name: "missing_category",
			yaml: `
guidelines:
  - {id: solid, path: a.md}
`,
			wantErr: ErrInvalidMapping,
		},
		{
			name: "bad_id_casing",
			yaml: `
guidelines:
  - {id: Solid_Principles, path: a.md, category: design}
`,
			wantErr: ErrInvalidMapping,
		},
		{
			name: "unknown_level",
			yaml: `
guidelines:
  - {id: solid, path: a.md, category: design, levels: [extreme]}
`,
			wantErr: ErrUnknownLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			// Every validation failure also reads as an invalid mapping.
			assert.ErrorIs(t, err, ErrInvalidMapping)
		})
	}
}

func TestParseCollectsAllErrors(t *testing.T) {
	_, err := Parse([]byte(`
guidelines:
  - {id: solid, category: design}
  - {id: solid, path: b.md, category: design, levels: [huge]}
`))
	require.Error(t, err)

	var verrs *ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs.Errors, 3) // missing path, duplicate id, unknown level
}

func TestParseSchemaVersion(t *testing.T) {
	t.Run("missing_version_accepted", func(t *testing.T) {
		_, err := Parse([]byte("guidelines: []\n"))
		assert.NoError(t, err)
	})

	t.Run("v2_rejected", func(t *testing.T) {
		_, err := Parse([]byte("schema_version: \"2.0\"\nguidelines: []\n"))
		assert.ErrorIs(t, err, ErrSchemaVersion)
	})

	t.Run("garbage_rejected", func(t *testing.T) {
		_, err := Parse([]byte("schema_version: latest\nguidelines: []\n"))
		assert.ErrorIs(t, err, ErrSchemaVersion)
	})
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"guideline-mappings.yml": &fstest.MapFile{Data: []byte(validMapping)},
	}

	f, err := LoadFS(fsys, "guideline-mappings.yml")
	require.NoError(t, err)
	assert.Len(t, f.Guidelines, 3)

	_, err = LoadFS(fsys, "missing.yml")
	assert.ErrorIs(t, err, ErrMappingNotFound)
}

func TestRecordMinLevel(t *testing.T) {
	tests := []struct {
		name   string
		levels []string
		want   models.Level
	}{
		{"no_levels_means_basic", nil, models.LevelBasic},
		{"single", []string{"expert"}, models.LevelExpert},
		{"lowest_wins", []string{"expert", "standard"}, models.LevelStandard},
		{"invalid_falls_back", []string{"bogus"}, models.LevelBasic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{Levels: tt.levels}
			assert.Equal(t, tt.want, r.MinLevel())
		})
	}
}

func TestRecordApplicability(t *testing.T) {
	r := Record{
		Languages:     []string{"go", "rust"},
		Architectures: []string{"microservices"},
		Tags:          []string{"errors"},
	}

	assert.True(t, r.AppliesTo(""))
	assert.True(t, r.AppliesTo("go"))
	assert.False(t, r.AppliesTo("python"))
	assert.True(t, r.AppliesToArchitecture("microservices"))
	assert.False(t, r.AppliesToArchitecture("monolith"))
	assert.True(t, r.HasTag("errors"))
	assert.False(t, r.HasTag("security"))

	open := Record{}
	assert.True(t, open.AppliesTo("anything"))
	assert.True(t, open.AppliesToArchitecture("anything"))
}
