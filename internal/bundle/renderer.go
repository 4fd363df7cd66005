package bundle

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// templateFuncMap provides custom functions available in entry templates.
var templateFuncMap = template.FuncMap{
	// titleCase turns a kebab-case identifier into a display title,
	// e.g. "language-idioms" into "Language Idioms".
	"titleCase": func(s string) string {
		return cases.Title(language.English).String(strings.ReplaceAll(s, "-", " "))
	},
}

// unexpandedTokenPattern detects leftover dynamic tokens in rendered output.
// Matches ${VAR}, {{VAR}}, and $VAR patterns.
var unexpandedTokenPattern = regexp.MustCompile(`\$\{[A-Za-z_][A-Za-z0-9_]*\}|\{\{\.?[A-Za-z_][A-Za-z0-9_.]*\}\}|\$[A-Z_][A-Z0-9_]*`)

// Renderer renders Go text/template entry files with strict mode enabled.
type Renderer interface {
	// Render parses and executes the template content with the given data.
	// Returns ErrMissingTemplateKey if a key is missing and
	// ErrUnexpandedToken if tokens remain after rendering.
	Render(name string, content []byte, data any) ([]byte, error)
}

// renderer is the concrete implementation of Renderer.
type renderer struct{}

// NewRenderer creates a strict-mode Renderer.
func NewRenderer() Renderer {
	return &renderer{}
}

// Render parses and executes a template with missingkey=error.
func (r *renderer) Render(name string, content []byte, data any) ([]byte, error) {
	tmpl, err := template.New(name).
		Funcs(templateFuncMap).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("template parse %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingTemplateKey, err)
	}

	result := buf.Bytes()
	if loc := unexpandedTokenPattern.Find(result); loc != nil {
		return nil, fmt.Errorf("%w: found %q", ErrUnexpandedToken, string(loc))
	}
	return result, nil
}
