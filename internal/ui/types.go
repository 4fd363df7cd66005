package ui

import "errors"

// UI component errors.
var (
	// ErrCancelled is returned when the user aborts an interactive flow.
	ErrCancelled = errors.New("cancelled by user")
	// ErrHeadlessNoDefaults is returned when a headless run has no
	// default answers to fall back on.
	ErrHeadlessNoDefaults = errors.New("headless mode requires defaults")
)

// Progress creates progress indicators for long-running operations.
type Progress interface {
	// Start creates a determinate progress bar with the given total.
	Start(title string, total int) ProgressBar
	// Spinner creates an indeterminate spinner.
	Spinner(title string) Spinner
}

// ProgressBar tracks a determinate operation.
type ProgressBar interface {
	Increment(n int)
	SetTitle(title string)
	Done()
}

// Spinner indicates an indeterminate operation.
type Spinner interface {
	SetTitle(title string)
	Stop()
}

// WizardResult holds the user's selections from the init wizard.
type WizardResult struct {
	ProjectName string // Project name (required)
	Target      string // Output target: claude, cursor, copilot
	Level       string // Guideline depth: basic, standard, expert, full
	Language    string // Primary language filter, empty for all
}
