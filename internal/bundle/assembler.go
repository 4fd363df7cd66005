package bundle

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/archguide/archguide/internal/assets"
	"github.com/archguide/archguide/internal/catalog"
	"github.com/archguide/archguide/internal/defs"
	"github.com/archguide/archguide/pkg/models"
	"github.com/archguide/archguide/pkg/version"
)

// FileSpec is one planned output file, path relative to the output root.
type FileSpec struct {
	Path    string
	Content []byte
}

// Bundle is the fully assembled output, ready for the Writer. Files keep
// a deterministic order: the entry file first, then supporting files in
// mapping declaration order.
type Bundle struct {
	Target models.Target
	Files  []FileSpec
}

// EntryItem is one guideline reference in the entry file.
type EntryItem struct {
	ID          string
	Title       string
	Description string
	RelPath     string
}

// CategorySection groups entry items under their mapping category.
type CategorySection struct {
	Name  string
	Items []EntryItem
}

// entryData is the render context for the entry templates.
type entryData struct {
	GeneratedBy  string
	GeneratedAt  string
	Level        string
	Language     string
	Architecture string
	Tags         string
	BundleDir    string
	IncludeTOC   bool
	HeaderNotice bool
	Categories   []CategorySection
}

// Assembler turns a filtered selection into a Bundle.
type Assembler struct {
	cat      *catalog.Catalog
	renderer Renderer
	output   models.OutputConfig
	now      func() time.Time
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithClock overrides the timestamp source (used in tests).
func WithClock(now func() time.Time) AssemblerOption {
	return func(a *Assembler) {
		a.now = now
	}
}

// WithOutput applies the output configuration section: bundle directory,
// entry file name, section rule, and the TOC and notice switches. Empty
// string fields fall back to the compiled defaults.
func WithOutput(o models.OutputConfig) AssemblerOption {
	return func(a *Assembler) {
		if o.BundleDir == "" {
			o.BundleDir = defs.ClaudeBundleDir
		}
		if o.SectionRule == "" {
			o.SectionRule = "category"
		}
		a.output = o
	}
}

// NewAssembler creates an Assembler over a resolved catalog.
func NewAssembler(cat *catalog.Catalog, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		cat:      cat,
		renderer: NewRenderer(),
		output: models.OutputConfig{
			BundleDir:    defs.ClaudeBundleDir,
			SectionRule:  "category",
			IncludeTOC:   true,
			HeaderNotice: true,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble selects guidelines with the filter and plans the bundle for
// the target. The selection order, and therefore the concatenation
// order, is the mapping file's declaration order.
func (a *Assembler) Assemble(f catalog.Filter, target models.Target) (*Bundle, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}

	selected := a.cat.Select(f)
	if len(selected) == 0 {
		return nil, ErrEmptySelection
	}

	switch target {
	case models.TargetClaude:
		return a.assembleClaude(f, selected)
	case models.TargetCursor:
		return a.assembleSingle(f, selected, target,
			path.Join(defs.CursorRulesDir, a.entryFile(defs.CursorRulesFile)))
	case models.TargetCopilot:
		return a.assembleSingle(f, selected, target,
			path.Join(defs.GithubDir, a.entryFile(defs.CopilotInstructionsFile)))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
}

// entryFile returns the configured entry file name or the target default.
func (a *Assembler) entryFile(fallback string) string {
	if a.output.EntryFile != "" {
		return a.output.EntryFile
	}
	return fallback
}

// assembleClaude plans CLAUDE.md plus per-guideline supporting files.
func (a *Assembler) assembleClaude(f catalog.Filter, selected []catalog.Entry) (*Bundle, error) {
	b := &Bundle{Target: models.TargetClaude}

	data := a.entryData(f)
	data.Categories = a.buildSections(selected, func(e catalog.Entry) string {
		return path.Join(a.output.BundleDir, e.DocPath())
	})

	tmpl, err := assets.EntryTemplate(models.TargetClaude)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
	}
	entryPath := a.entryFile(defs.ClaudeMD)
	entry, err := a.renderer.Render(entryPath, tmpl, data)
	if err != nil {
		return nil, err
	}
	b.Files = append(b.Files, FileSpec{Path: entryPath, Content: entry})

	for _, e := range selected {
		content, err := a.cat.Content(e)
		if err != nil {
			return nil, err
		}
		b.Files = append(b.Files, FileSpec{
			Path:    path.Join(a.output.BundleDir, e.DocPath()),
			Content: content,
		})
	}
	return b, nil
}

// assembleSingle plans one concatenated rules file for cursor or copilot.
func (a *Assembler) assembleSingle(f catalog.Filter, selected []catalog.Entry, target models.Target, outPath string) (*Bundle, error) {
	tmpl, err := assets.EntryTemplate(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
	}
	data := a.entryData(f)
	data.Categories = a.buildSections(selected, func(catalog.Entry) string { return "" })
	header, err := a.renderer.Render(outPath, tmpl, data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(header)
	for _, e := range selected {
		content, err := a.cat.Content(e)
		if err != nil {
			return nil, err
		}
		buf.WriteString("\n---\n\n")
		buf.Write(bytes.TrimRight(content, "\n"))
		buf.WriteString("\n")
	}

	return &Bundle{
		Target: target,
		Files:  []FileSpec{{Path: outPath, Content: buf.Bytes()}},
	}, nil
}

// entryData builds the shared render context from the active filter.
func (a *Assembler) entryData(f catalog.Filter) entryData {
	level := f.Level
	if level == "" {
		level = models.LevelStandard
	}
	return entryData{
		GeneratedBy:  "archguide " + version.GetVersion(),
		GeneratedAt:  a.now().UTC().Format(time.RFC3339),
		Level:        string(level),
		Language:     f.Language,
		Architecture: f.Architecture,
		Tags:         strings.Join(f.Tags, ", "),
		BundleDir:    a.output.BundleDir,
		IncludeTOC:   a.output.IncludeTOC,
		HeaderNotice: a.output.HeaderNotice,
	}
}

// buildSections groups entries by category, keeping declaration order
// for both categories and items. Under the "flat" section rule every
// entry lands in one unnamed section.
func (a *Assembler) buildSections(selected []catalog.Entry, relPath func(catalog.Entry) string) []CategorySection {
	index := make(map[string]int)
	var sections []CategorySection

	for _, e := range selected {
		cat := e.Record.Category
		if a.output.SectionRule == "flat" {
			cat = ""
		}
		i, ok := index[cat]
		if !ok {
			i = len(sections)
			index[cat] = i
			sections = append(sections, CategorySection{Name: cat})
		}
		sections[i].Items = append(sections[i].Items, EntryItem{
			ID:          e.Record.ID,
			Title:       entryTitle(e),
			Description: e.Record.Description,
			RelPath:     relPath(e),
		})
	}
	return sections
}

// entryTitle prefers the record title, falling back to a title-cased
// form of the resolved file name so glob records stay readable.
func entryTitle(e catalog.Entry) string {
	if e.Record.Title != "" && !isGlobRecord(e) {
		return e.Record.Title
	}
	base := strings.TrimSuffix(path.Base(e.Path), path.Ext(e.Path))
	return cases.Title(language.English).String(strings.ReplaceAll(base, "-", " "))
}

// isGlobRecord reports whether the record matched more than a literal path.
func isGlobRecord(e catalog.Entry) bool {
	return strings.ContainsAny(e.Record.Path, "*?[{")
}
