package config

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/archguide/archguide/internal/defs"
)

// Loader reads configuration from YAML section files.
// It is thread-safe via sync.Mutex.
type Loader struct {
	mu             sync.RWMutex
	loadedSections map[string]bool
}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads all configuration section files from the given .archguide
// directory and returns a merged Config with defaults applied for
// missing fields. Missing files use default values. Invalid YAML files
// are skipped with a warning.
func (l *Loader) Load(configDir string) (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.loadedSections = make(map[string]bool)
	cfg := NewDefaultConfig()

	sectionsDir := filepath.Join(filepath.Clean(configDir), "config", "sections")

	// If sections directory does not exist, return defaults
	if _, err := os.Stat(sectionsDir); os.IsNotExist(err) {
		slog.Debug("config sections directory not found, using defaults", "path", sectionsDir)
		return cfg, nil
	}

	l.loadUserSection(sectionsDir, cfg)
	l.loadOutputSection(sectionsDir, cfg)
	l.loadFiltersSection(sectionsDir, cfg)
	l.loadSystemSection(sectionsDir, cfg)
	l.loadCorpusSection(sectionsDir, cfg)

	return cfg, nil
}

// LoadedSections returns a copy of the map indicating which sections
// were successfully loaded from YAML files.
func (l *Loader) LoadedSections() map[string]bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]bool, len(l.loadedSections))
	maps.Copy(result, l.loadedSections)
	return result
}

// loadUserSection loads the user configuration section from user.yaml.
func (l *Loader) loadUserSection(dir string, cfg *Config) {
	wrapper := &userFileWrapper{User: cfg.User}
	loaded, err := loadYAMLFile(dir, defs.UserYAML, wrapper)
	if err != nil {
		slog.Warn("failed to load user config, using defaults", "error", err)
		return
	}
	if loaded {
		cfg.User = wrapper.User
		l.loadedSections["user"] = true
	}
}

// loadOutputSection loads the output configuration section from output.yaml.
func (l *Loader) loadOutputSection(dir string, cfg *Config) {
	wrapper := &outputFileWrapper{Output: cfg.Output}
	loaded, err := loadYAMLFile(dir, defs.OutputYAML, wrapper)
	if err != nil {
		slog.Warn("failed to load output config, using defaults", "error", err)
		return
	}
	if loaded {
		cfg.Output = wrapper.Output
		l.loadedSections["output"] = true
	}
}

// loadFiltersSection loads the default filters from filters.yaml.
func (l *Loader) loadFiltersSection(dir string, cfg *Config) {
	wrapper := &filtersFileWrapper{Filters: cfg.Filters}
	loaded, err := loadYAMLFile(dir, defs.FiltersYAML, wrapper)
	if err != nil {
		slog.Warn("failed to load filters config, using defaults", "error", err)
		return
	}
	if loaded {
		cfg.Filters = wrapper.Filters
		l.loadedSections["filters"] = true
	}
}

// loadSystemSection loads the system configuration section from system.yaml.
func (l *Loader) loadSystemSection(dir string, cfg *Config) {
	wrapper := &systemFileWrapper{System: cfg.System}
	loaded, err := loadYAMLFile(dir, defs.SystemYAML, wrapper)
	if err != nil {
		slog.Warn("failed to load system config, using defaults", "error", err)
		return
	}
	if loaded {
		cfg.System = wrapper.System
		l.loadedSections["system"] = true
	}
}

// loadCorpusSection loads the corpus layout from corpus.yaml.
func (l *Loader) loadCorpusSection(dir string, cfg *Config) {
	wrapper := &corpusFileWrapper{Corpus: cfg.Corpus}
	loaded, err := loadYAMLFile(dir, defs.CorpusYAML, wrapper)
	if err != nil {
		slog.Warn("failed to load corpus config, using defaults", "error", err)
		return
	}
	if loaded {
		cfg.Corpus = wrapper.Corpus
		l.loadedSections["corpus"] = true
	}
}

// loadYAMLFile reads a YAML file from the given directory and unmarshals it
// into the target struct. Returns (true, nil) if the file was found and parsed,
// (false, nil) if the file does not exist, or (false, error) on failure.
func loadYAMLFile(dir, filename string, target any) (bool, error) {
	path := filepath.Join(dir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w", filename, ErrInvalidYAML)
	}

	return true, nil
}
