package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Render one guideline in the terminal",
	Long: `Show looks up a guideline by its mapping ID and renders its markdown
content. With a TTY the output is styled; otherwise the raw markdown is
printed. Glob records print every matched document.

Examples:
  archguide show clean-architecture
  archguide show go-error-handling --raw`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("raw", false, "Print raw markdown without terminal styling")
}

func runShow(cmd *cobra.Command, args []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	corpus, err := deps.OpenCorpus(root)
	if err != nil {
		return err
	}

	entries, err := corpus.Catalog.Lookup(args[0])
	if err != nil {
		return err
	}

	var parts []string
	for _, e := range entries {
		content, err := corpus.Catalog.Content(e)
		if err != nil {
			return err
		}
		parts = append(parts, string(content))
	}
	doc := strings.Join(parts, "\n---\n\n")

	if getBoolFlag(cmd, "raw") || !renderStyled(cmd) {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), doc)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), doc)
		return nil
	}
	out, err := renderer.Render(doc)
	if err != nil {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), doc)
		return nil
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// renderStyled reports whether styled terminal rendering is appropriate:
// stdout must be a TTY and color must not be disabled.
func renderStyled(cmd *cobra.Command) bool {
	if noColor(cmd) || deps.Theme.NoColor {
		return false
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
