package config

import (
	"github.com/archguide/archguide/internal/defs"
	"github.com/archguide/archguide/pkg/models"
)

// Default value constants to avoid magic numbers and strings.
const (
	DefaultTarget      = "claude"
	DefaultLevel       = "standard"
	DefaultSectionRule = "category"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// NewDefaultConfig returns a Config with all fields set to compiled defaults.
func NewDefaultConfig() *Config {
	return &Config{
		User:    models.UserConfig{},
		Output:  NewDefaultOutputConfig(),
		Filters: NewDefaultFilterConfig(),
		System:  NewDefaultSystemConfig(),
		Corpus:  NewDefaultCorpusConfig(),
	}
}

// NewDefaultOutputConfig returns the compiled output defaults.
func NewDefaultOutputConfig() models.OutputConfig {
	return models.OutputConfig{
		Target:       DefaultTarget,
		BundleDir:    defs.ClaudeBundleDir,
		IncludeTOC:   true,
		SectionRule:  DefaultSectionRule,
		HeaderNotice: true,
	}
}

// NewDefaultFilterConfig returns the compiled filter defaults.
func NewDefaultFilterConfig() models.FilterConfig {
	return models.FilterConfig{
		Level: DefaultLevel,
	}
}

// NewDefaultSystemConfig returns the compiled system defaults.
func NewDefaultSystemConfig() models.SystemConfig {
	return models.SystemConfig{
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// NewDefaultCorpusConfig returns the compiled corpus layout defaults.
func NewDefaultCorpusConfig() CorpusConfig {
	return CorpusConfig{
		MappingFile: defs.MappingsYAML,
		ContentDir:  defs.GuidelinesDir,
	}
}
