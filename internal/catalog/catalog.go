// Package catalog builds an in-memory view of a guideline corpus: the
// parsed mapping records joined with the markdown files they point at.
// It is the lookup and filter engine behind build, list, stats, and show.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/archguide/archguide/internal/mapping"
)

// Sentinel errors for catalog operations.
var (
	// ErrGuidelineNotFound indicates no entry exists for the requested ID.
	ErrGuidelineNotFound = errors.New("catalog: guideline not found")

	// ErrContentMissing indicates a mapping record points at a file that
	// does not exist in the corpus.
	ErrContentMissing = errors.New("catalog: guideline content missing")
)

// Entry is one resolved guideline: a mapping record joined with the
// concrete content path it resolved to. Glob records produce one Entry
// per matched file.
type Entry struct {
	Record mapping.Record

	// Path is the resolved content path, relative to the corpus root.
	Path string
}

// DocPath returns the bundle-relative destination for the entry. Plain
// records land at <category>/<record id> with the source extension, so
// two records sharing a category never collide even when their source
// files share a base name. Glob records nest each match under the
// record ID, keeping the path relative to the glob's fixed prefix.
func (e Entry) DocPath() string {
	if !isGlob(e.Record.Path) {
		return e.Record.Category + "/" + e.Record.ID + path.Ext(e.Path)
	}
	prefix, _ := doublestar.SplitPattern(e.Record.Path)
	sub := strings.TrimPrefix(strings.TrimPrefix(e.Path, prefix), "/")
	return e.Record.Category + "/" + e.Record.ID + "/" + sub
}

// Catalog is the resolved corpus. Entries keep mapping declaration
// order, which is the deterministic bundle order.
type Catalog struct {
	fsys    fs.FS
	file    *mapping.File
	entries []Entry
	missing []string // mapping paths that resolved to nothing
}

// New resolves every mapping record against the corpus filesystem.
// Paths containing glob metacharacters are expanded with doublestar;
// matches are sorted so expansion is deterministic. Records whose paths
// resolve to nothing are kept aside and reported by Missing.
func New(fsys fs.FS, file *mapping.File) (*Catalog, error) {
	c := &Catalog{fsys: fsys, file: file}

	for _, r := range file.Guidelines {
		paths, err := resolvePaths(fsys, r.Path)
		if err != nil {
			return nil, fmt.Errorf("catalog: record %q: %w", r.ID, err)
		}
		if len(paths) == 0 {
			c.missing = append(c.missing, r.Path)
			continue
		}
		for _, p := range paths {
			c.entries = append(c.entries, Entry{Record: r, Path: p})
		}
	}
	return c, nil
}

// resolvePaths expands a record path to concrete corpus files.
func resolvePaths(fsys fs.FS, path string) ([]string, error) {
	if !isGlob(path) {
		if _, err := fs.Stat(fsys, path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, nil
			}
			return nil, err
		}
		return []string{path}, nil
	}

	matches, err := doublestar.Glob(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", path, err)
	}
	var files []string
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}

// isGlob reports whether the path contains glob metacharacters.
func isGlob(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// Entries returns every resolved entry in mapping declaration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Missing returns the mapping paths that resolved to no corpus file.
func (c *Catalog) Missing() []string {
	out := make([]string, len(c.missing))
	copy(out, c.missing)
	return out
}

// Mapping returns the underlying parsed mapping file.
func (c *Catalog) Mapping() *mapping.File {
	return c.file
}

// Lookup returns the entries for one guideline ID.
func (c *Catalog) Lookup(id string) ([]Entry, error) {
	var out []Entry
	for _, e := range c.entries {
		if e.Record.ID == id {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrGuidelineNotFound, id)
	}
	return out, nil
}

// Content reads the markdown behind an entry.
func (c *Catalog) Content(e Entry) ([]byte, error) {
	data, err := fs.ReadFile(c.fsys, e.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrContentMissing, e.Path)
	}
	return data, nil
}
