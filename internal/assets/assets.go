// Package assets holds content compiled into the archguide binary via
// go:embed: the bundle entry templates and the starter corpus deployed
// by the init command. Embedding keeps every distribution channel
// self-sufficient; no network access or companion files are needed.
package assets

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/archguide/archguide/pkg/models"
)

//go:embed templates starter
var content embed.FS

// entryTemplates maps each assistant target to its entry template.
var entryTemplates = map[models.Target]string{
	models.TargetClaude:  "templates/claude.md.tmpl",
	models.TargetCursor:  "templates/single.md.tmpl",
	models.TargetCopilot: "templates/single.md.tmpl",
}

// EntryTemplate returns the embedded entry template for a target.
func EntryTemplate(target models.Target) ([]byte, error) {
	name, ok := entryTemplates[target]
	if !ok {
		return nil, fmt.Errorf("assets: no entry template for target %q", target)
	}
	return content.ReadFile(name)
}

// StarterFS returns the starter corpus filesystem rooted at its top
// level, so walking it yields guideline-mappings.yml and guidelines/.
func StarterFS() fs.FS {
	sub, err := fs.Sub(content, "starter")
	if err != nil {
		// The subtree is embedded at compile time; failure here means a
		// broken build, not a runtime condition.
		panic(err)
	}
	return sub
}
