// Package ui provides the terminal front-end for archguide commands:
// theme, headless-mode detection, progress reporting, and the init
// wizard. Every component degrades to plain log lines without a TTY.
package ui

// ThemeColors holds the accent colors used by interactive components.
type ThemeColors struct {
	Primary   string
	Secondary string
	Warning   string
}

// Theme configures the visual style of UI components.
type Theme struct {
	Colors  ThemeColors
	NoColor bool
}

// DefaultTheme returns the standard archguide theme.
func DefaultTheme() *Theme {
	return &Theme{
		Colors: ThemeColors{
			Primary:   "#7C3AED",
			Secondary: "#06B6D4",
			Warning:   "#F59E0B",
		},
	}
}

// Monochrome returns a theme with all styling disabled.
func Monochrome() *Theme {
	return &Theme{NoColor: true}
}
