package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/archguide/archguide/pkg/models"
)

// validLogLevels are the accepted system.log_level values.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// validSectionRules are the accepted output.section_rule values.
var validSectionRules = []string{"category", "flat"}

// Validate checks the configuration for correctness.
// The loadedSections map indicates which sections were loaded from YAML
// files (as opposed to using defaults). Required field validation only
// applies to sections that were explicitly loaded.
func Validate(cfg *Config, loadedSections map[string]bool) error {
	var errs []ValidationError

	errs = append(errs, validateOutput(&cfg.Output)...)
	errs = append(errs, validateFilters(&cfg.Filters)...)
	errs = append(errs, validateSystem(&cfg.System)...)
	errs = append(errs, validateCorpus(&cfg.Corpus, loadedSections)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateOutput checks the output section values.
func validateOutput(o *models.OutputConfig) []ValidationError {
	var errs []ValidationError

	if o.Target != "" && !models.Target(o.Target).IsValid() {
		errs = append(errs, ValidationError{
			Field:   "output.target",
			Message: fmt.Sprintf("must be one of: %s", joinTargets()),
			Value:   o.Target,
			Wrapped: ErrInvalidTarget,
		})
	}
	if o.SectionRule != "" && !slices.Contains(validSectionRules, o.SectionRule) {
		errs = append(errs, ValidationError{
			Field:   "output.section_rule",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validSectionRules, ", ")),
			Value:   o.SectionRule,
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}

// validateFilters checks the default filter values.
func validateFilters(f *models.FilterConfig) []ValidationError {
	var errs []ValidationError

	if f.Level != "" && !models.Level(f.Level).IsValid() {
		errs = append(errs, ValidationError{
			Field:   "filters.level",
			Message: fmt.Sprintf("must be one of: %s", joinLevels()),
			Value:   f.Level,
			Wrapped: ErrInvalidLevel,
		})
	}
	return errs
}

// validateSystem checks the system section values.
func validateSystem(s *models.SystemConfig) []ValidationError {
	var errs []ValidationError

	if s.LogLevel != "" && !slices.Contains(validLogLevels, s.LogLevel) {
		errs = append(errs, ValidationError{
			Field:   "system.log_level",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogLevels, ", ")),
			Value:   s.LogLevel,
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}

// validateCorpus checks the corpus layout when it was explicitly configured.
func validateCorpus(c *CorpusConfig, loadedSections map[string]bool) []ValidationError {
	var errs []ValidationError

	if loadedSections["corpus"] && strings.TrimSpace(c.MappingFile) == "" {
		errs = append(errs, ValidationError{
			Field:   "corpus.mapping_file",
			Message: "required field is empty; set the mapping file in .archguide/config/sections/corpus.yaml",
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}

func joinLevels() string {
	levels := models.ValidLevels()
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}

func joinTargets() string {
	targets := models.ValidTargets()
	parts := make([]string, len(targets))
	for i, t := range targets {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
