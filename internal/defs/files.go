// Package defs holds file and directory name constants shared across
// the ArchGuide packages.
package defs

// Common file names used across the project.
const (
	// MappingsYAML is the declarative guideline index at the corpus root.
	MappingsYAML = "guideline-mappings.yml"

	// ManifestJSON tracks bundle file provenance under the config directory.
	ManifestJSON = "manifest.json"

	// ClaudeMD is the entry file for the claude target.
	ClaudeMD = "CLAUDE.md"

	// CursorRulesFile is the single-file bundle for the cursor target.
	CursorRulesFile = "guidelines.mdc"

	// CopilotInstructionsFile is the single-file bundle for the copilot target.
	CopilotInstructionsFile = "copilot-instructions.md"
)

// Directory names.
const (
	// ConfigDir is the tool configuration directory at the corpus root.
	ConfigDir = ".archguide"

	// ClaudeBundleDir holds supporting guideline copies for the claude target.
	ClaudeBundleDir = ".claude/guidelines"

	// CursorRulesDir holds the cursor target bundle.
	CursorRulesDir = ".cursor/rules"

	// GithubDir holds the copilot target bundle.
	GithubDir = ".github"

	// GuidelinesDir is the default corpus content directory.
	GuidelinesDir = "guidelines"
)

// Section YAML file names under .archguide/config/sections/.
const (
	UserYAML    = "user.yaml"
	OutputYAML  = "output.yaml"
	FiltersYAML = "filters.yaml"
	SystemYAML  = "system.yaml"
	CorpusYAML  = "corpus.yaml"
)
