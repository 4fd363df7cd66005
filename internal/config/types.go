package config

import (
	"slices"

	"github.com/archguide/archguide/pkg/models"
)

// Config is the root configuration aggregate containing all sections.
// Shared section types live in pkg/models; corpus layout is internal.
type Config struct {
	User    models.UserConfig   `yaml:"user"`
	Output  models.OutputConfig `yaml:"output"`
	Filters models.FilterConfig `yaml:"filters"`
	System  models.SystemConfig `yaml:"system"`
	Corpus  CorpusConfig        `yaml:"corpus"`
}

// CorpusConfig locates the guideline corpus relative to the project root.
type CorpusConfig struct {
	MappingFile string `yaml:"mapping_file"` // default: guideline-mappings.yml
	ContentDir  string `yaml:"content_dir"`  // default: guidelines
}

// sectionNames lists all valid configuration section names.
var sectionNames = []string{"user", "output", "filters", "system", "corpus"}

// IsValidSectionName checks if the given name is a valid section name.
func IsValidSectionName(name string) bool {
	return slices.Contains(sectionNames, name)
}

// ValidSectionNames returns all valid section names.
func ValidSectionNames() []string {
	result := make([]string, len(sectionNames))
	copy(result, sectionNames)
	return result
}

// YAML file wrapper types for proper unmarshaling with top-level keys.
// Each section file wraps its content under a top-level key.

type userFileWrapper struct {
	User models.UserConfig `yaml:"user"`
}

type outputFileWrapper struct {
	Output models.OutputConfig `yaml:"output"`
}

type filtersFileWrapper struct {
	Filters models.FilterConfig `yaml:"filters"`
}

type systemFileWrapper struct {
	System models.SystemConfig `yaml:"system"`
}

type corpusFileWrapper struct {
	Corpus CorpusConfig `yaml:"corpus"`
}
