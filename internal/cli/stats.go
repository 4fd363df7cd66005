package cli

import (
	"github.com/spf13/cobra"

	"github.com/archguide/archguide/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Long: `Stats summarizes the guideline corpus: total guideline and file counts
plus per-category, per-language, per-level, and per-tag breakdowns.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	corpus, err := deps.OpenCorpus(root)
	if err != nil {
		return err
	}

	report := stats.Collect(corpus.Catalog)
	stats.NewRenderer(cmd.OutOrStdout(), noColor(cmd) || deps.Theme.NoColor).Render(report)
	return nil
}
