package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/archguide/archguide/pkg/models"
)

// Wizard collects project settings interactively before init.
type Wizard interface {
	Run(ctx context.Context) (*WizardResult, error)
}

// wizardImpl implements Wizard on top of huh forms.
type wizardImpl struct {
	theme    *Theme
	headless *HeadlessManager
}

// NewWizard creates a Wizard backed by the given theme and headless manager.
func NewWizard(theme *Theme, hm *HeadlessManager) Wizard {
	return &wizardImpl{theme: theme, headless: hm}
}

// Run executes the init wizard. In headless mode it builds the result
// from stored defaults instead of prompting.
func (w *wizardImpl) Run(ctx context.Context) (*WizardResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if w.headless.IsHeadless() {
		return w.runHeadless()
	}
	return w.runInteractive(ctx)
}

// runHeadless builds a WizardResult from stored defaults.
func (w *wizardImpl) runHeadless() (*WizardResult, error) {
	if !w.headless.HasDefaults() {
		return nil, ErrHeadlessNoDefaults
	}

	result := &WizardResult{
		Target: string(models.TargetClaude),
		Level:  string(models.LevelStandard),
	}
	if v, ok := w.headless.GetDefault("project_name"); ok {
		result.ProjectName = v
	}
	if v, ok := w.headless.GetDefault("target"); ok && v != "" {
		result.Target = v
	}
	if v, ok := w.headless.GetDefault("level"); ok && v != "" {
		result.Level = v
	}
	if v, ok := w.headless.GetDefault("language"); ok {
		result.Language = v
	}
	return result, nil
}

// runInteractive prompts for each setting in sequence. Each question
// runs as its own independent huh.Form to avoid the huh v0.8.x YOffset
// scroll bug that occurs when multiple groups share a single viewport.
func (w *wizardImpl) runInteractive(ctx context.Context) (*WizardResult, error) {
	theme := newWizardTheme(w.theme)
	result := &WizardResult{}

	fields := []huh.Field{
		huh.NewInput().
			Title("Project name").
			Placeholder("my-project").
			Validate(func(val string) error {
				if strings.TrimSpace(val) == "" {
					return errors.New("project name is required")
				}
				return nil
			}).
			Value(&result.ProjectName),
		huh.NewSelect[string]().
			Title("Assistant target").
			Description("Which assistant the guideline bundle is built for").
			Options(targetOptions()...).
			Value(&result.Target),
		huh.NewSelect[string]().
			Title("Guideline level").
			Description("How much detail the bundle includes").
			Options(levelOptions()...).
			Value(&result.Level),
		huh.NewInput().
			Title("Primary language").
			Description("Leave empty to include all languages").
			Placeholder("go").
			Value(&result.Language),
	}

	for _, field := range fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		form := huh.NewForm(huh.NewGroup(field)).
			WithTheme(theme).
			WithAccessible(false)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("wizard error: %w", err)
		}
	}

	result.ProjectName = strings.TrimSpace(result.ProjectName)
	result.Language = strings.TrimSpace(result.Language)
	return result, nil
}

// targetOptions returns the selectable assistant targets.
func targetOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Claude - CLAUDE.md with a guideline directory", string(models.TargetClaude)),
		huh.NewOption("Cursor - single .cursor/rules file", string(models.TargetCursor)),
		huh.NewOption("Copilot - single .github instructions file", string(models.TargetCopilot)),
	}
}

// levelOptions returns the selectable guideline levels.
func levelOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Basic - core guidelines only", string(models.LevelBasic)),
		huh.NewOption("Standard - recommended set", string(models.LevelStandard)),
		huh.NewOption("Expert - in-depth guidance", string(models.LevelExpert)),
		huh.NewOption("Full - everything in the corpus", string(models.LevelFull)),
	}
}

// newWizardTheme maps the archguide theme onto a huh.Theme.
func newWizardTheme(t *Theme) *huh.Theme {
	ht := huh.ThemeBase()
	if t.NoColor {
		return ht
	}

	primary := lipgloss.Color(t.Colors.Primary)
	secondary := lipgloss.Color(t.Colors.Secondary)

	ht.Focused.Title = ht.Focused.Title.Foreground(primary).Bold(true)
	ht.Focused.SelectSelector = ht.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	ht.Focused.SelectedOption = ht.Focused.SelectedOption.Foreground(secondary)
	ht.Focused.TextInput.Cursor = ht.Focused.TextInput.Cursor.Foreground(primary)
	ht.Focused.TextInput.Prompt = ht.Focused.TextInput.Prompt.Foreground(secondary)
	ht.Blurred = ht.Focused
	ht.Blurred.Base = ht.Focused.Base.BorderStyle(lipgloss.HiddenBorder())

	return ht
}
