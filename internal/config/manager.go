package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/archguide/archguide/internal/defs"
	"github.com/archguide/archguide/pkg/models"
)

// managerState represents the lifecycle state of the Manager.
type managerState int

const (
	stateUninitialized managerState = iota
	stateInitialized
	stateWatching
)

// Manager provides thread-safe configuration management.
// It must be initialized via Load() before use.
type Manager struct {
	mu             sync.RWMutex
	config         *Config
	root           string
	state          managerState
	loader         *Loader
	callbacks      []func(Config)
	loadedSections map[string]bool
}

// NewManager creates a new Manager instance in uninitialized state.
func NewManager() *Manager {
	return &Manager{
		loader: NewLoader(),
		state:  stateUninitialized,
	}
}

// Load reads configuration from the project root's .archguide/ directory.
// It merges file values with compiled defaults and applies environment
// variable overrides. The configuration is validated before being stored.
func (m *Manager) Load(projectRoot string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	configDir := filepath.Join(filepath.Clean(projectRoot), defs.ConfigDir)

	// Support ARCHGUIDE_CONFIG_DIR environment variable override
	if envDir := os.Getenv("ARCHGUIDE_CONFIG_DIR"); envDir != "" {
		configDir = filepath.Clean(envDir)
	}

	cfg, err := m.loader.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Track which sections were loaded from files
	m.loadedSections = m.loader.LoadedSections()

	// Apply environment variable overrides (higher priority than files)
	applyEnvOverrides(cfg)

	// Validate the merged configuration
	if err := Validate(cfg, m.loadedSections); err != nil {
		return nil, err
	}

	m.config = cfg
	m.root = projectRoot
	m.state = stateInitialized

	return cfg, nil
}

// Get returns the current in-memory configuration.
// Returns nil if the manager has not been initialized via Load().
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// GetSection returns a named configuration section.
// Returns ErrNotInitialized if Load() has not been called.
// Returns ErrSectionNotFound if the section name is invalid.
func (m *Manager) GetSection(name string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state == stateUninitialized {
		return nil, ErrNotInitialized
	}
	return m.getSectionLocked(name)
}

// SetSection updates a named configuration section in memory.
func (m *Manager) SetSection(name string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}
	return m.setSectionLocked(name, value)
}

// Save persists the current configuration to disk atomically.
// Each section is saved to its YAML file using temp file + os.Rename.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}

	sectionsDir := filepath.Join(filepath.Clean(m.root), defs.ConfigDir, "config", "sections")
	if err := os.MkdirAll(sectionsDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := saveSection(sectionsDir, defs.UserYAML, userFileWrapper{User: m.config.User}); err != nil {
		return fmt.Errorf("save user config: %w", err)
	}
	if err := saveSection(sectionsDir, defs.OutputYAML, outputFileWrapper{Output: m.config.Output}); err != nil {
		return fmt.Errorf("save output config: %w", err)
	}
	if err := saveSection(sectionsDir, defs.FiltersYAML, filtersFileWrapper{Filters: m.config.Filters}); err != nil {
		return fmt.Errorf("save filters config: %w", err)
	}
	if err := saveSection(sectionsDir, defs.SystemYAML, systemFileWrapper{System: m.config.System}); err != nil {
		return fmt.Errorf("save system config: %w", err)
	}
	if err := saveSection(sectionsDir, defs.CorpusYAML, corpusFileWrapper{Corpus: m.config.Corpus}); err != nil {
		return fmt.Errorf("save corpus config: %w", err)
	}
	return nil
}

// Reload forces a re-read from disk, replacing the in-memory configuration.
func (m *Manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}

	configDir := filepath.Join(filepath.Clean(m.root), defs.ConfigDir)
	if envDir := os.Getenv("ARCHGUIDE_CONFIG_DIR"); envDir != "" {
		configDir = filepath.Clean(envDir)
	}

	cfg, err := m.loader.Load(configDir)
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}

	m.loadedSections = m.loader.LoadedSections()
	applyEnvOverrides(cfg)

	if err := Validate(cfg, m.loadedSections); err != nil {
		return err
	}

	m.config = cfg

	for _, cb := range m.callbacks {
		cb(*m.config)
	}
	return nil
}

// Watch registers a callback to be invoked when configuration is reloaded.
func (m *Manager) Watch(callback func(Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}
	m.callbacks = append(m.callbacks, callback)
	m.state = stateWatching
	return nil
}

// getSectionLocked returns a section by name. Caller must hold at least RLock.
func (m *Manager) getSectionLocked(name string) (any, error) {
	switch name {
	case "user":
		return m.config.User, nil
	case "output":
		return m.config.Output, nil
	case "filters":
		return m.config.Filters, nil
	case "system":
		return m.config.System, nil
	case "corpus":
		return m.config.Corpus, nil
	default:
		return nil, ErrSectionNotFound
	}
}

// setSectionLocked updates a section by name. Caller must hold Lock.
func (m *Manager) setSectionLocked(name string, value any) error {
	switch name {
	case "user":
		v, ok := value.(models.UserConfig)
		if !ok {
			return fmt.Errorf("%w: expected UserConfig for section %q", ErrSectionTypeMismatch, name)
		}
		m.config.User = v
	case "output":
		v, ok := value.(models.OutputConfig)
		if !ok {
			return fmt.Errorf("%w: expected OutputConfig for section %q", ErrSectionTypeMismatch, name)
		}
		m.config.Output = v
	case "filters":
		v, ok := value.(models.FilterConfig)
		if !ok {
			return fmt.Errorf("%w: expected FilterConfig for section %q", ErrSectionTypeMismatch, name)
		}
		m.config.Filters = v
	case "system":
		v, ok := value.(models.SystemConfig)
		if !ok {
			return fmt.Errorf("%w: expected SystemConfig for section %q", ErrSectionTypeMismatch, name)
		}
		m.config.System = v
	case "corpus":
		v, ok := value.(CorpusConfig)
		if !ok {
			return fmt.Errorf("%w: expected CorpusConfig for section %q", ErrSectionTypeMismatch, name)
		}
		m.config.Corpus = v
	default:
		return ErrSectionNotFound
	}
	return nil
}

// saveSection marshals a wrapper to YAML and writes it atomically.
func saveSection(dir, filename string, wrapper any) error {
	data, err := yaml.Marshal(wrapper)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filename, err)
	}

	path := filepath.Join(dir, filename)
	tmp, err := os.CreateTemp(dir, filename+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", filename, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp for %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp for %s: %w", filename, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp for %s: %w", filename, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take priority over file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ARCHGUIDE_LOG_LEVEL"); v != "" {
		cfg.System.LogLevel = v
	}
	if v := os.Getenv("ARCHGUIDE_NO_COLOR"); v != "" {
		cfg.System.NoColor = v == "1" || v == "true"
	}
	if v := os.Getenv("ARCHGUIDE_TARGET"); v != "" {
		cfg.Output.Target = v
	}
	if v := os.Getenv("ARCHGUIDE_LEVEL"); v != "" {
		cfg.Filters.Level = v
	}
	// NO_COLOR is the cross-tool convention; any value disables color.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.System.NoColor = true
	}
}
