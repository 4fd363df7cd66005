package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/archguide/archguide/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the guidelines matching the active filters",
	Long: `List prints a table of the mapping records that the current filters
select, in the order they would appear in a built bundle. Without flags
the defaults from .archguide/config/sections/filters.yaml apply.

Examples:
  archguide list
  archguide list --language go --level full
  archguide list --tag security`,
	Args:    cobra.NoArgs,
	PreRunE: validateBuildFlags,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().String("language", "", "Only include guidelines for this language")
	listCmd.Flags().String("level", "", "Guideline level: basic, standard, expert, or full")
	listCmd.Flags().String("arch", "", "Only include guidelines for this architecture style")
	listCmd.Flags().StringSlice("tag", nil, "Only include guidelines carrying at least one of these tags (repeatable)")
	listCmd.Flags().Bool("all", false, "Ignore filters and list every record")
}

func runList(cmd *cobra.Command, _ []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	corpus, err := deps.OpenCorpus(root)
	if err != nil {
		return err
	}

	var entries []catalog.Entry
	if getBoolFlag(cmd, "all") {
		entries = corpus.Catalog.Entries()
	} else {
		filter := buildFilter(cmd, corpus.Config)
		entries = corpus.Catalog.Select(filter)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No guidelines match the active filters")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Category", "Level", "Languages", "Tags", "Path"})

	seen := make(map[string]bool)
	for _, e := range entries {
		// Glob records expand to one entry per file; list each ID once.
		if seen[e.Record.ID] {
			continue
		}
		seen[e.Record.ID] = true

		t.AppendRow(table.Row{
			e.Record.ID,
			e.Record.Category,
			e.Record.MinLevel(),
			orAll(e.Record.Languages),
			orAll(e.Record.Tags),
			e.Record.Path,
		})
	}
	t.Render()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d guidelines (%d files)\n", len(seen), len(entries))
	return nil
}

// orAll joins a list for display, showing "*" for empty applicability.
func orAll(values []string) string {
	if len(values) == 0 {
		return "*"
	}
	return strings.Join(values, ", ")
}
