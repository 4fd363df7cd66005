package bundle

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/archguide/archguide/internal/manifest"
)

// Writer persists a Bundle to an output root, tracking every file in
// the manifest so later rebuilds can tell bundle-managed files from
// user-owned ones.
type Writer struct {
	force   bool
	logger  *slog.Logger
	observe func(relPath string)
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithForce overwrites user-modified files instead of preserving them.
func WithForce(force bool) WriterOption {
	return func(w *Writer) {
		w.force = force
	}
}

// WithLogger sets the writer's logger.
func WithLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

// WithObserver registers a callback invoked once per planned file as the
// writer processes it, whether the file ends up written, preserved, or
// unchanged. Used to drive progress reporting.
func WithObserver(fn func(relPath string)) WriterOption {
	return func(w *Writer) {
		w.observe = fn
	}
}

// NewWriter creates a Writer.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteResult reports what the writer did.
type WriteResult struct {
	Written   []string
	Preserved []string // user-owned files left untouched
	Unchanged []string // bundle-managed files whose content did not change
}

// Write persists every planned file under root and saves the manifest.
// User-created and user-modified files are preserved unless force is
// set. A bundle-managed file whose on-disk content no longer matches
// its tracked hash was edited by the user; it is marked and preserved.
func (w *Writer) Write(ctx context.Context, root string, b *Bundle, m manifest.Manager) (*WriteResult, error) {
	root = filepath.Clean(root)
	result := &WriteResult{}

	for _, f := range b.Files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := validateDestPath(root, f.Path); err != nil {
			return nil, err
		}
		if w.observe != nil {
			w.observe(f.Path)
		}
		destPath := filepath.Join(root, filepath.FromSlash(f.Path))
		newHash := manifest.HashBytes(f.Content)

		skip, unchanged, err := w.classify(destPath, f.Path, newHash, m)
		if err != nil {
			return nil, err
		}
		if unchanged {
			result.Unchanged = append(result.Unchanged, f.Path)
			continue
		}
		if skip {
			result.Preserved = append(result.Preserved, f.Path)
			w.logger.Info("preserving user file", "path", f.Path)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return nil, fmt.Errorf("bundle write mkdir %q: %w", filepath.Dir(destPath), err)
		}
		if err := os.WriteFile(destPath, f.Content, 0o644); err != nil {
			return nil, fmt.Errorf("bundle write %q: %w", destPath, err)
		}
		track := m.Track
		if w.force {
			track = m.ForceTrack
		}
		if err := track(f.Path, manifest.BundleManaged, newHash); err != nil {
			return nil, fmt.Errorf("bundle track %q: %w", f.Path, err)
		}
		result.Written = append(result.Written, f.Path)
	}

	if err := m.Save(); err != nil {
		return nil, err
	}
	return result, nil
}

// classify decides whether the destination must be skipped. It returns
// (skip, unchanged, error).
func (w *Writer) classify(destPath, relPath, newHash string, m manifest.Manager) (bool, bool, error) {
	onDisk, err := os.ReadFile(destPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("bundle stat %q: %w", destPath, err)
	}

	if w.force {
		return false, false, nil
	}

	entry, tracked := m.GetEntry(relPath)
	if !tracked {
		// Pre-existing file the writer never produced. Record it and
		// leave it alone.
		if err := m.Track(relPath, manifest.UserCreated, manifest.HashBytes(onDisk)); err != nil {
			return false, false, err
		}
		return true, false, nil
	}

	switch entry.Provenance {
	case manifest.UserCreated, manifest.UserModified:
		return true, false, nil
	case manifest.BundleManaged:
		diskHash := manifest.HashBytes(onDisk)
		if diskHash != entry.Hash {
			// Edited since the last build: hand ownership to the user.
			if err := m.MarkUserModified(relPath); err != nil {
				return false, false, err
			}
			return true, false, nil
		}
		if diskHash == newHash {
			return false, true, nil
		}
	}
	return false, false, nil
}

// validateDestPath ensures a bundle path does not escape the output root.
func validateDestPath(root, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve output root: %w", err)
	}
	absPath := filepath.Join(absRoot, cleaned)
	if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q", ErrPathTraversal, relPath)
	}
	return nil
}
