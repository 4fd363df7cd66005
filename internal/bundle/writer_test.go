package bundle

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archguide/archguide/internal/manifest"
	"github.com/archguide/archguide/pkg/models"
)

func quietWriter(opts ...WriterOption) *Writer {
	opts = append(opts, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return NewWriter(opts...)
}

func testBundle(content string) *Bundle {
	return &Bundle{
		Target: models.TargetClaude,
		Files: []FileSpec{
			{Path: "CLAUDE.md", Content: []byte(content)},
			{Path: ".claude/guidelines/go/errors.md", Content: []byte("# Errors\n")},
		},
	}
}

func loadedManifest(t *testing.T, root string) manifest.Manager {
	t.Helper()
	m := manifest.NewManager()
	if _, err := m.Load(root); err != nil {
		t.Fatalf("manifest load: %v", err)
	}
	return m
}

func TestWriterWritesAndTracks(t *testing.T) {
	root := t.TempDir()
	m := loadedManifest(t, root)

	res, err := quietWriter().Write(context.Background(), root, testBundle("# Guidelines\n"), m)
	require.NoError(t, err)
	assert.Equal(t, []string{"CLAUDE.md", ".claude/guidelines/go/errors.md"}, res.Written)

	data, err := os.ReadFile(filepath.Join(root, "CLAUDE.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Guidelines\n", string(data))

	e, ok := m.GetEntry(".claude/guidelines/go/errors.md")
	require.True(t, ok)
	assert.Equal(t, manifest.BundleManaged, e.Provenance)

	// Manifest persisted alongside.
	_, err = os.Stat(filepath.Join(root, ".archguide", "manifest.json"))
	assert.NoError(t, err)
}

func TestWriterSkipsUnchanged(t *testing.T) {
	root := t.TempDir()
	m := loadedManifest(t, root)
	w := quietWriter()

	_, err := w.Write(context.Background(), root, testBundle("# Guidelines\n"), m)
	require.NoError(t, err)

	res, err := w.Write(context.Background(), root, testBundle("# Guidelines\n"), m)
	require.NoError(t, err)
	assert.Empty(t, res.Written)
	assert.Len(t, res.Unchanged, 2)
}

func TestWriterNotifiesObserverPerFile(t *testing.T) {
	root := t.TempDir()
	m := loadedManifest(t, root)

	var seen []string
	w := quietWriter(WithObserver(func(relPath string) {
		seen = append(seen, relPath)
	}))

	_, err := w.Write(context.Background(), root, testBundle("# Guidelines\n"), m)
	require.NoError(t, err)
	assert.Equal(t, []string{"CLAUDE.md", ".claude/guidelines/go/errors.md"}, seen)

	// Unchanged files still count toward progress.
	seen = nil
	_, err = w.Write(context.Background(), root, testBundle("# Guidelines\n"), m)
	require.NoError(t, err)
	assert.Equal(t, []string{"CLAUDE.md", ".claude/guidelines/go/errors.md"}, seen)
}

func TestWriterPreservesUserEdits(t *testing.T) {
	root := t.TempDir()
	m := loadedManifest(t, root)
	w := quietWriter()

	_, err := w.Write(context.Background(), root, testBundle("# v1\n"), m)
	require.NoError(t, err)

	// User edits a bundle-managed file between builds.
	edited := filepath.Join(root, "CLAUDE.md")
	require.NoError(t, os.WriteFile(edited, []byte("# mine now\n"), 0o644))

	res, err := w.Write(context.Background(), root, testBundle("# v2\n"), m)
	require.NoError(t, err)
	assert.Contains(t, res.Preserved, "CLAUDE.md")

	data, _ := os.ReadFile(edited)
	assert.Equal(t, "# mine now\n", string(data))

	e, _ := m.GetEntry("CLAUDE.md")
	assert.Equal(t, manifest.UserModified, e.Provenance)
}

func TestWriterPreservesPreexistingFiles(t *testing.T) {
	root := t.TempDir()
	m := loadedManifest(t, root)

	// A CLAUDE.md the user wrote before ever running the tool.
	require.NoError(t, os.WriteFile(filepath.Join(root, "CLAUDE.md"), []byte("# handwritten\n"), 0o644))

	res, err := quietWriter().Write(context.Background(), root, testBundle("# generated\n"), m)
	require.NoError(t, err)
	assert.Contains(t, res.Preserved, "CLAUDE.md")

	data, _ := os.ReadFile(filepath.Join(root, "CLAUDE.md"))
	assert.Equal(t, "# handwritten\n", string(data))

	e, _ := m.GetEntry("CLAUDE.md")
	assert.Equal(t, manifest.UserCreated, e.Provenance)
}

func TestWriterForceReclaims(t *testing.T) {
	root := t.TempDir()
	m := loadedManifest(t, root)

	_, err := quietWriter().Write(context.Background(), root, testBundle("# v1\n"), m)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "CLAUDE.md"), []byte("# mine\n"), 0o644))

	res, err := quietWriter(WithForce(true)).Write(context.Background(), root, testBundle("# v2\n"), m)
	require.NoError(t, err)
	assert.Contains(t, res.Written, "CLAUDE.md")

	data, _ := os.ReadFile(filepath.Join(root, "CLAUDE.md"))
	assert.Equal(t, "# v2\n", string(data))

	e, _ := m.GetEntry("CLAUDE.md")
	assert.Equal(t, manifest.BundleManaged, e.Provenance)
}

func TestWriterRejectsTraversal(t *testing.T) {
	root := t.TempDir()
	m := loadedManifest(t, root)

	b := &Bundle{Files: []FileSpec{{Path: "../escape.md", Content: []byte("x")}}}
	_, err := quietWriter().Write(context.Background(), root, b, m)
	assert.ErrorIs(t, err, ErrPathTraversal)

	b = &Bundle{Files: []FileSpec{{Path: "/abs.md", Content: []byte("x")}}}
	_, err = quietWriter().Write(context.Background(), root, b, m)
	assert.ErrorIs(t, err, ErrPathTraversal)
}

func TestWriterHonorsCancellation(t *testing.T) {
	root := t.TempDir()
	m := loadedManifest(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := quietWriter().Write(ctx, root, testBundle("# v1\n"), m)
	assert.ErrorIs(t, err, context.Canceled)
}
