package models

// Target identifies the AI coding assistant a bundle is assembled for.
// The target decides the entry file name and bundle layout.
type Target string

const (
	// TargetClaude produces CLAUDE.md plus a .claude/guidelines/ directory.
	TargetClaude Target = "claude"

	// TargetCursor produces a single .cursor/rules/guidelines.mdc file.
	TargetCursor Target = "cursor"

	// TargetCopilot produces a single .github/copilot-instructions.md file.
	TargetCopilot Target = "copilot"
)

// ValidTargets returns all valid target values.
func ValidTargets() []Target {
	return []Target{TargetClaude, TargetCursor, TargetCopilot}
}

// IsValid checks if the target is a known assistant.
func (t Target) IsValid() bool {
	switch t {
	case TargetClaude, TargetCursor, TargetCopilot:
		return true
	}
	return false
}
