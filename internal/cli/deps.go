// Package cli provides the Cobra command tree and dependency wiring
// for the archguide CLI. This file defines the Dependencies struct
// (Composition Root) that wires the domain modules together.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/archguide/archguide/internal/catalog"
	"github.com/archguide/archguide/internal/config"
	"github.com/archguide/archguide/internal/mapping"
	"github.com/archguide/archguide/internal/ui"
)

// Dependencies holds the domain services used by CLI commands. This is
// the Composition Root: the only place where concrete types are
// instantiated and wired together.
type Dependencies struct {
	Config   *config.Manager
	Headless *ui.HeadlessManager
	Theme    *ui.Theme
	Logger   *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies creates and wires the domain dependencies. It should
// be called once during application startup. The catalog is built
// lazily per command because it depends on the project root.
func InitDependencies() {
	// Quiet logger by default; --verbose swaps in a stderr handler.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	deps = &Dependencies{
		Config:   config.NewManager(),
		Headless: ui.NewHeadlessManager(),
		Theme:    ui.DefaultTheme(),
		Logger:   logger,
	}
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// EnableVerbose switches the logger to a debug-level stderr handler and
// adjusts the theme when color is disabled.
func (d *Dependencies) EnableVerbose() {
	d.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// Corpus bundles everything a command needs to operate on one project:
// the merged configuration and the resolved guideline catalog.
type Corpus struct {
	Root    string
	Config  *config.Config
	Catalog *catalog.Catalog
}

// OpenCorpus loads the configuration for the given project root, parses
// the mapping file, and resolves the catalog over the root filesystem.
func (d *Dependencies) OpenCorpus(root string) (*Corpus, error) {
	cfg, err := d.Config.Load(root)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.System.NoColor {
		d.Theme = ui.Monochrome()
	}
	if cfg.System.NonInteractive {
		d.Headless.ForceHeadless(true)
	}

	fsys := os.DirFS(root)
	file, err := mapping.LoadFS(fsys, cfg.Corpus.MappingFile)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog: %w", err)
	}

	return &Corpus{Root: root, Config: cfg, Catalog: cat}, nil
}
