package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/archguide/archguide/internal/bundle"
	"github.com/archguide/archguide/internal/catalog"
	"github.com/archguide/archguide/internal/config"
	"github.com/archguide/archguide/internal/manifest"
	"github.com/archguide/archguide/internal/ui"
	"github.com/archguide/archguide/internal/watch"
	"github.com/archguide/archguide/pkg/models"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Assemble the guideline bundle for an assistant target",
	Long: `Build reads guideline-mappings.yml, selects the guidelines matching the
active filters, and writes the assembled bundle for the chosen target.

Files the user has edited since the last build are preserved unless
--force is given. Filter flags override the defaults stored in
.archguide/config/sections/filters.yaml.

Examples:
  archguide build                            Build with configured defaults
  archguide build --language go --level expert
  archguide build --target cursor --tag security --tag testing
  archguide build --watch                    Rebuild on corpus changes`,
	Args:    cobra.NoArgs,
	PreRunE: validateBuildFlags,
	RunE:    runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("language", "", "Only include guidelines for this language")
	buildCmd.Flags().String("level", "", "Guideline level: basic, standard, expert, or full")
	buildCmd.Flags().String("arch", "", "Only include guidelines for this architecture style")
	buildCmd.Flags().StringSlice("tag", nil, "Only include guidelines carrying at least one of these tags (repeatable)")
	buildCmd.Flags().String("target", "", "Assistant target: claude, cursor, or copilot")
	buildCmd.Flags().String("output", "", "Output root for the bundle (default: project root)")
	buildCmd.Flags().Bool("force", false, "Overwrite files the user has modified")
	buildCmd.Flags().Bool("watch", false, "Watch the corpus and rebuild on changes")
}

// validateBuildFlags validates flag values before execution.
func validateBuildFlags(cmd *cobra.Command, _ []string) error {
	if level := getStringFlag(cmd, "level"); level != "" {
		if !models.Level(level).IsValid() {
			return fmt.Errorf("invalid --level value %q: must be one of: basic, standard, expert, full", level)
		}
	}
	if target := getStringFlag(cmd, "target"); target != "" {
		if !models.Target(target).IsValid() {
			return fmt.Errorf("invalid --target value %q: must be one of: claude, cursor, copilot", target)
		}
	}
	return nil
}

func runBuild(cmd *cobra.Command, _ []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	outRoot := getStringFlag(cmd, "output")
	if outRoot == "" {
		outRoot = root
	}
	force := getBoolFlag(cmd, "force")

	build := func(ctx context.Context) error {
		corpus, err := deps.OpenCorpus(root)
		if err != nil {
			return err
		}

		if missing := corpus.Catalog.Missing(); len(missing) > 0 {
			for _, p := range missing {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Warning: mapped path not found: %s\n", p)
			}
		}

		filter := buildFilter(cmd, corpus.Config)
		target := buildTarget(cmd, corpus.Config)

		asm := bundle.NewAssembler(corpus.Catalog, bundle.WithOutput(corpus.Config.Output))
		b, err := asm.Assemble(filter, target)
		if err != nil {
			return err
		}

		man := manifest.NewManager()
		if _, err := man.Load(outRoot); err != nil {
			return fmt.Errorf("load manifest: %w", err)
		}

		progress := ui.NewProgressTo(deps.Theme, deps.Headless, cmd.OutOrStdout())
		bar := progress.Start("writing bundle", len(b.Files))
		defer bar.Done()

		writer := bundle.NewWriter(
			bundle.WithForce(force),
			bundle.WithLogger(deps.Logger),
			bundle.WithObserver(func(relPath string) {
				bar.SetTitle(relPath)
				bar.Increment(1)
			}),
		)
		result, err := writer.Write(ctx, outRoot, b, man)
		if err != nil {
			return err
		}
		bar.Done()

		_, _ = fmt.Fprintf(cmd.OutOrStdout(),
			"Built %s bundle: %d written, %d preserved, %d unchanged\n",
			target, len(result.Written), len(result.Preserved), len(result.Unchanged))
		for _, p := range result.Preserved {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(),
				"  preserved user-modified file: %s (use --force to overwrite)\n", p)
		}
		return nil
	}

	ctx := cmd.Context()
	if err := build(ctx); err != nil {
		return err
	}

	if !getBoolFlag(cmd, "watch") {
		return nil
	}
	return watchCorpus(ctx, cmd, root, build)
}

// watchCorpus rebuilds whenever the mapping file or the content
// directory changes. It blocks until the context is cancelled.
func watchCorpus(ctx context.Context, cmd *cobra.Command, root string, build func(context.Context) error) error {
	cfg := deps.Config.Get()
	paths := []string{
		filepath.Join(root, cfg.Corpus.MappingFile),
		filepath.Join(root, cfg.Corpus.ContentDir),
	}

	w, err := watch.New(paths, watch.WithLogger(deps.Logger))
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Watching for corpus changes (Ctrl+C to stop)")
	return w.Run(ctx, func(ctx context.Context) error {
		if err := build(ctx); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "rebuild failed: %v\n", err)
		}
		return nil
	})
}

// buildFilter merges configured filter defaults with command flags.
// Flags win over configuration.
func buildFilter(cmd *cobra.Command, cfg *config.Config) catalog.Filter {
	f := catalog.Filter{
		Language: cfg.Filters.Language,
		Level:    models.Level(cfg.Filters.Level),
		Tags:     cfg.Filters.Tags,
	}
	if len(cfg.Filters.Architectures) > 0 {
		f.Architecture = cfg.Filters.Architectures[0]
	}

	if v := getStringFlag(cmd, "language"); v != "" {
		f.Language = v
	}
	if v := getStringFlag(cmd, "level"); v != "" {
		f.Level = models.Level(v)
	}
	if v := getStringFlag(cmd, "arch"); v != "" {
		f.Architecture = v
	}
	if tags := getStringSliceFlag(cmd, "tag"); len(tags) > 0 {
		f.Tags = tags
	}
	return f
}

// buildTarget resolves the assistant target from the --target flag or
// the configured default.
func buildTarget(cmd *cobra.Command, cfg *config.Config) models.Target {
	if v := getStringFlag(cmd, "target"); v != "" {
		return models.Target(v)
	}
	if cfg.Output.Target != "" {
		return models.Target(cfg.Output.Target)
	}
	return models.TargetClaude
}
