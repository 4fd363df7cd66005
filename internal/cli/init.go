package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/archguide/archguide/internal/assets"
	"github.com/archguide/archguide/internal/manifest"
	"github.com/archguide/archguide/internal/ui"
	"github.com/archguide/archguide/pkg/models"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a new guideline corpus",
	Long: `Initialize a guideline corpus: a starter guideline-mappings.yml, a set of
starter guideline documents, and the .archguide/ configuration directory.

With a TTY an interactive wizard collects the project settings; otherwise
(or with --non-interactive) the flags and their defaults are used.

Examples:
  archguide init                Initialize in the current directory
  archguide init my-corpus      Create ./my-corpus/ and initialize inside
  archguide init --non-interactive --name api --target cursor`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateInitFlags,
	RunE:    runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("name", "", "Project name (default: directory name)")
	initCmd.Flags().String("target", "", "Default assistant target: claude, cursor, or copilot")
	initCmd.Flags().String("level", "", "Default guideline level: basic, standard, expert, or full")
	initCmd.Flags().String("language", "", "Default language filter")
	initCmd.Flags().Bool("non-interactive", false, "Skip the wizard; use flags and defaults")
	initCmd.Flags().Bool("force", false, "Overwrite starter files the user has modified")
}

// validateInitFlags validates flag values before execution.
func validateInitFlags(cmd *cobra.Command, _ []string) error {
	if target := getStringFlag(cmd, "target"); target != "" {
		if !models.Target(target).IsValid() {
			return fmt.Errorf("invalid --target value %q: must be one of: claude, cursor, copilot", target)
		}
	}
	if level := getStringFlag(cmd, "level"); level != "" {
		if !models.Level(level).IsValid() {
			return fmt.Errorf("invalid --level value %q: must be one of: basic, standard, expert, full", level)
		}
	}
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := initRoot(cmd, args)
	if err != nil {
		return err
	}

	if getBoolFlag(cmd, "non-interactive") {
		deps.Headless.ForceHeadless(true)
	}
	deps.Headless.SetDefaults(map[string]string{
		"project_name": initProjectName(cmd, root),
		"target":       getStringFlag(cmd, "target"),
		"level":        getStringFlag(cmd, "level"),
		"language":     getStringFlag(cmd, "language"),
	})

	wizard := ui.NewWizard(deps.Theme, deps.Headless)
	result, err := wizard.Run(cmd.Context())
	if err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Initialization cancelled")
			return nil
		}
		return err
	}

	progress := ui.NewProgressTo(deps.Theme, deps.Headless, cmd.OutOrStdout())
	sp := progress.Spinner("Scaffolding starter corpus")
	created, err := scaffoldStarter(cmd.Context(), root, getBoolFlag(cmd, "force"))
	sp.Stop()
	if err != nil {
		return err
	}

	if err := writeInitialConfig(root, result); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(),
		"Initialized guideline corpus in %s (%d starter files)\n", root, created)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Next: edit guideline-mappings.yml, then run \"archguide build\"")
	return nil
}

// initRoot resolves and creates the target directory for init.
func initRoot(cmd *cobra.Command, args []string) (string, error) {
	root, err := projectRoot(cmd)
	if err != nil {
		return "", err
	}
	if len(args) == 1 && args[0] != "." {
		root = filepath.Join(root, args[0])
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("create project directory: %w", err)
	}
	return root, nil
}

// initProjectName picks the project name from the --name flag or the
// directory base name.
func initProjectName(cmd *cobra.Command, root string) string {
	if name := getStringFlag(cmd, "name"); name != "" {
		return name
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return filepath.Base(root)
	}
	return filepath.Base(abs)
}

// scaffoldStarter copies the embedded starter corpus into root, tracking
// every file in the manifest. Files the user has modified since a prior
// init are preserved unless force is set.
func scaffoldStarter(ctx context.Context, root string, force bool) (int, error) {
	man := manifest.NewManager()
	if _, err := man.Load(root); err != nil {
		return 0, fmt.Errorf("load manifest: %w", err)
	}

	starter := assets.StarterFS()
	created := 0
	err := fs.WalkDir(starter, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		content, err := fs.ReadFile(starter, p)
		if err != nil {
			return fmt.Errorf("read starter file %s: %w", p, err)
		}

		dest := filepath.Join(root, filepath.FromSlash(p))
		if skip, err := shouldSkipStarter(dest, p, man, force); err != nil {
			return err
		} else if skip {
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", p, err)
		}
		if err := os.WriteFile(dest, content, 0o644); err != nil {
			return fmt.Errorf("write starter file %s: %w", p, err)
		}

		track := man.Track
		if force {
			track = man.ForceTrack
		}
		if err := track(p, manifest.BundleManaged, manifest.HashBytes(content)); err != nil {
			return err
		}
		created++
		return nil
	})
	if err != nil {
		return created, err
	}
	return created, man.Save()
}

// shouldSkipStarter reports whether an existing file at dest must be
// left alone. Any file present on disk that the manifest does not list
// as pristine bundle output counts as user content.
func shouldSkipStarter(dest, relPath string, man manifest.Manager, force bool) (bool, error) {
	if force {
		return false, nil
	}

	existing, err := os.ReadFile(dest)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("inspect %s: %w", relPath, err)
	}

	entry, ok := man.GetEntry(relPath)
	if !ok || entry.Provenance != manifest.BundleManaged {
		return true, nil
	}
	return entry.Hash != manifest.HashBytes(existing), nil
}

// writeInitialConfig persists the wizard selections as section files
// under .archguide/config/sections/.
func writeInitialConfig(root string, result *ui.WizardResult) error {
	cfg, err := deps.Config.Load(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	user := cfg.User
	user.Name = result.ProjectName
	if err := deps.Config.SetSection("user", user); err != nil {
		return err
	}

	output := cfg.Output
	if result.Target != "" {
		output.Target = result.Target
	}
	if err := deps.Config.SetSection("output", output); err != nil {
		return err
	}

	filters := cfg.Filters
	if result.Level != "" {
		filters.Level = result.Level
	}
	filters.Language = result.Language
	if err := deps.Config.SetSection("filters", filters); err != nil {
		return err
	}

	if err := deps.Config.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
