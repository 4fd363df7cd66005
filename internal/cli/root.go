package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archguide/archguide/internal/ui"
	"github.com/archguide/archguide/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "archguide",
	Short: "ArchGuide: curated engineering guidelines for AI coding assistants",
	Long: `ArchGuide maintains a corpus of markdown guideline documents indexed by
a declarative mapping file (guideline-mappings.yml). It filters the corpus
by language, level, architecture, and tags, and assembles the selection
into assistant-specific configuration bundles such as CLAUDE.md.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute initializes dependencies and runs the root command.
func Execute() error {
	InitDependencies()
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("archguide %s\n", version.GetVersion()))

	rootCmd.PersistentFlags().StringP("dir", "C", "", "Project root directory (default: current directory)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if deps == nil {
			return fmt.Errorf("dependencies not initialized")
		}
		if getBoolFlag(cmd, "verbose") {
			deps.EnableVerbose()
		}
		if noColor(cmd) {
			deps.Theme = ui.Monochrome()
		}
		return nil
	}
}

// projectRoot resolves the project root from the --dir flag, falling
// back to the current working directory.
func projectRoot(cmd *cobra.Command) (string, error) {
	if dir := getStringFlag(cmd, "dir"); dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

// noColor reports whether colored output is disabled, honoring both the
// --no-color flag and the NO_COLOR convention.
func noColor(cmd *cobra.Command) bool {
	if getBoolFlag(cmd, "no-color") {
		return true
	}
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// getStringSliceFlag retrieves a repeatable string flag value.
func getStringSliceFlag(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil
	}
	return val
}
