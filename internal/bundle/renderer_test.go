package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererRender(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("entry", []byte("level: {{ .Level }}"), map[string]string{"Level": "standard"})
	require.NoError(t, err)
	assert.Equal(t, "level: standard", string(out))
}

func TestRendererMissingKey(t *testing.T) {
	r := NewRenderer()

	_, err := r.Render("entry", []byte("{{ .Nope }}"), map[string]string{})
	assert.ErrorIs(t, err, ErrMissingTemplateKey)
}

func TestRendererUnexpandedToken(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name     string
		template string
	}{
		{"shell_var", "export PATH=$BUNDLE_HOME"},
		{"braced_var", "root is ${PROJECT_ROOT}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Render("entry", []byte(tt.template), nil)
			assert.ErrorIs(t, err, ErrUnexpandedToken)
		})
	}
}

func TestRendererParseError(t *testing.T) {
	r := NewRenderer()

	_, err := r.Render("entry", []byte("{{ if }}"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template parse")
}

func TestTitleCaseFunc(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("entry", []byte(`{{ titleCase "language-idioms" }}`), nil)
	require.NoError(t, err)
	assert.Equal(t, "Language Idioms", string(out))
}

func TestUnknownTemplateFunc(t *testing.T) {
	r := NewRenderer()

	_, err := r.Render("entry", []byte(`{{ jsonEscape .V }}`), map[string]string{"V": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template parse")
}
