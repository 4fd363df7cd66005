// Package manifest tracks the provenance of files written by the bundle
// writer. The manifest records, per relative path, whether the file is
// managed by ArchGuide or owned by the user, plus the content hash at
// write time. Rebuilds consult it so user-modified files are never
// overwritten silently.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/archguide/archguide/internal/defs"
)

// Provenance classifies who owns a tracked file.
type Provenance string

const (
	// BundleManaged files were written by the bundle writer and may be
	// overwritten on rebuild.
	BundleManaged Provenance = "bundle_managed"

	// UserModified files were written by the writer but changed by the
	// user afterwards. They are preserved on rebuild.
	UserModified Provenance = "user_modified"

	// UserCreated files existed before the writer ever touched the path.
	// They are preserved on rebuild.
	UserCreated Provenance = "user_created"
)

// ErrNotLoaded indicates the manifest has not been loaded from a root yet.
var ErrNotLoaded = errors.New("manifest: not loaded, call Load() first")

// Entry is one tracked file.
type Entry struct {
	Path       string     `json:"path"`
	Provenance Provenance `json:"provenance"`
	Hash       string     `json:"hash"`
	WrittenAt  string     `json:"written_at"`
}

// Manager loads, queries, and persists the manifest.
// Implementations are safe for concurrent use.
type Manager interface {
	// Load reads the manifest from root's config directory. A missing
	// manifest yields an empty one. Returns the number of entries loaded.
	Load(root string) (int, error)

	// GetEntry returns the entry for a relative path.
	GetEntry(relPath string) (Entry, bool)

	// Track records a file with its provenance and content hash.
	// User-owned entries are not demoted to bundle_managed.
	Track(relPath string, p Provenance, hash string) error

	// ForceTrack records a file unconditionally, replacing any existing
	// provenance. Used by forced rebuilds to reclaim ownership.
	ForceTrack(relPath string, p Provenance, hash string) error

	// MarkUserModified flags a tracked file as changed by the user.
	MarkUserModified(relPath string) error

	// Entries returns all tracked entries sorted by path.
	Entries() []Entry

	// Save persists the manifest back to the loaded root.
	Save() error
}

// fileManager is the JSON-file backed Manager.
type fileManager struct {
	mu      sync.RWMutex
	root    string
	entries map[string]Entry
	loaded  bool
}

// NewManager creates an unloaded Manager. Call Load before use.
func NewManager() Manager {
	return &fileManager{entries: make(map[string]Entry)}
}

// manifestFile is the on-disk JSON shape.
type manifestFile struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

func manifestPath(root string) string {
	return filepath.Join(root, defs.ConfigDir, defs.ManifestJSON)
}

// Load reads the manifest from root. A missing file is not an error.
func (m *fileManager) Load(root string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.root = filepath.Clean(root)
	m.entries = make(map[string]Entry)
	m.loaded = true

	data, err := os.ReadFile(manifestPath(m.root))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("manifest read: %w", err)
	}

	var mf manifestFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return 0, fmt.Errorf("manifest parse: %w", err)
	}
	for _, e := range mf.Entries {
		m.entries[e.Path] = e
	}
	return len(m.entries), nil
}

// GetEntry returns the entry for a relative path.
func (m *fileManager) GetEntry(relPath string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[filepath.ToSlash(relPath)]
	return e, ok
}

// Track records a file. Tracking an already user-owned path keeps the
// stronger provenance.
func (m *fileManager) Track(relPath string, p Provenance, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		return ErrNotLoaded
	}
	key := filepath.ToSlash(relPath)
	if existing, ok := m.entries[key]; ok {
		if existing.Provenance == UserModified || existing.Provenance == UserCreated {
			if p == BundleManaged {
				return nil
			}
		}
	}
	m.entries[key] = Entry{
		Path:       key,
		Provenance: p,
		Hash:       hash,
		WrittenAt:  time.Now().UTC().Format(time.RFC3339),
	}
	return nil
}

// ForceTrack records a file regardless of its current provenance.
func (m *fileManager) ForceTrack(relPath string, p Provenance, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		return ErrNotLoaded
	}
	key := filepath.ToSlash(relPath)
	m.entries[key] = Entry{
		Path:       key,
		Provenance: p,
		Hash:       hash,
		WrittenAt:  time.Now().UTC().Format(time.RFC3339),
	}
	return nil
}

// MarkUserModified flags a tracked file as user-changed.
func (m *fileManager) MarkUserModified(relPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		return ErrNotLoaded
	}
	key := filepath.ToSlash(relPath)
	e, ok := m.entries[key]
	if !ok {
		return fmt.Errorf("manifest: path %q not tracked", relPath)
	}
	e.Provenance = UserModified
	m.entries[key] = e
	return nil
}

// Entries returns all tracked entries sorted by path.
func (m *fileManager) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Entry, 0, len(m.entries))
	for e := range maps.Values(m.entries) {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Save persists the manifest to <root>/.archguide/manifest.json.
func (m *fileManager) Save() error {
	m.mu.RLock()
	entries := make([]Entry, 0, len(m.entries))
	for e := range maps.Values(m.entries) {
		entries = append(entries, e)
	}
	root := m.root
	loaded := m.loaded
	m.mu.RUnlock()

	if !loaded {
		return ErrNotLoaded
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	data, err := json.MarshalIndent(manifestFile{Version: 1, Entries: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest marshal: %w", err)
	}

	path := manifestPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("manifest mkdir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("manifest write: %w", err)
	}
	return nil
}

// HashBytes returns the hex SHA-256 digest of content.
func HashBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
