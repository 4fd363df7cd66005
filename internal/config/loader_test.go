package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeSection writes a section YAML file into a config dir layout.
func writeSection(t *testing.T, configDir, filename, content string) {
	t.Helper()
	dir := filepath.Join(configDir, "config", "sections")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
}

func TestLoaderMissingDirUsesDefaults(t *testing.T) {
	l := NewLoader()
	cfg, err := l.Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Output.Target != DefaultTarget {
		t.Errorf("Target = %q, want %q", cfg.Output.Target, DefaultTarget)
	}
	if cfg.Filters.Level != DefaultLevel {
		t.Errorf("Level = %q, want %q", cfg.Filters.Level, DefaultLevel)
	}
	if len(l.LoadedSections()) != 0 {
		t.Errorf("LoadedSections = %v, want empty", l.LoadedSections())
	}
}

func TestLoaderReadsSections(t *testing.T) {
	configDir := t.TempDir()
	writeSection(t, configDir, "user.yaml", "user:\n  name: Dana\n")
	writeSection(t, configDir, "output.yaml", "output:\n  target: cursor\n")
	writeSection(t, configDir, "filters.yaml", "filters:\n  language: go\n  level: expert\n  tags: [security]\n")

	l := NewLoader()
	cfg, err := l.Load(configDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.User.Name != "Dana" {
		t.Errorf("User.Name = %q, want Dana", cfg.User.Name)
	}
	if cfg.Output.Target != "cursor" {
		t.Errorf("Target = %q, want cursor", cfg.Output.Target)
	}
	if cfg.Filters.Language != "go" || cfg.Filters.Level != "expert" {
		t.Errorf("Filters = %+v", cfg.Filters)
	}

	loaded := l.LoadedSections()
	for _, section := range []string{"user", "output", "filters"} {
		if !loaded[section] {
			t.Errorf("section %q not marked loaded", section)
		}
	}
	if loaded["system"] {
		t.Error("system should not be marked loaded")
	}
}

func TestLoaderSkipsInvalidYAML(t *testing.T) {
	configDir := t.TempDir()
	writeSection(t, configDir, "output.yaml", "output: [broken\n")

	l := NewLoader()
	cfg, err := l.Load(configDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	// Invalid section falls back to defaults rather than failing the load.
	if cfg.Output.Target != DefaultTarget {
		t.Errorf("Target = %q, want default %q", cfg.Output.Target, DefaultTarget)
	}
	if l.LoadedSections()["output"] {
		t.Error("broken section must not be marked loaded")
	}
}

func TestLoaderpartialSectionKeepsDefaults(t *testing.T) {
	configDir := t.TempDir()
	// Only target set; bundle_dir and section_rule should keep defaults
	// because the wrapper is seeded with them before unmarshal.
	writeSection(t, configDir, "output.yaml", "output:\n  target: copilot\n")

	l := NewLoader()
	cfg, err := l.Load(configDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Output.Target != "copilot" {
		t.Errorf("Target = %q, want copilot", cfg.Output.Target)
	}
	if cfg.Output.SectionRule != DefaultSectionRule {
		t.Errorf("SectionRule = %q, want default %q", cfg.Output.SectionRule, DefaultSectionRule)
	}
}
