package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/archguide/archguide/internal/catalog"
	"github.com/archguide/archguide/internal/mapping"
)

// errValidationFailed signals problems were found and already reported.
var errValidationFailed = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the guideline mapping file",
	Long: `Validate checks guideline-mappings.yml against the mapping JSON schema
and the structural rules: unique kebab-case IDs, known levels, a
compatible schema_version, and resolvable guideline paths.

Exit status is non-zero when any problem is found.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Bool("strict", false, "Treat unresolvable guideline paths as errors instead of warnings")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	cfg, err := deps.Config.Load(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	mappingPath := filepath.Join(root, cfg.Corpus.MappingFile)
	data, err := os.ReadFile(mappingPath)
	if err != nil {
		return fmt.Errorf("read mapping file: %w", err)
	}

	out := cmd.OutOrStdout()
	failed := false

	if err := mapping.ValidateSchema(data); err != nil {
		_, _ = fmt.Fprintf(out, "Schema: FAIL\n  %v\n", err)
		failed = true
	} else {
		_, _ = fmt.Fprintln(out, "Schema: OK")
	}

	file, err := mapping.Parse(data)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Structure: FAIL\n")
		var verrs *mapping.ValidationErrors
		if errors.As(err, &verrs) {
			for i := range verrs.Errors {
				_, _ = fmt.Fprintf(out, "  %v\n", &verrs.Errors[i])
			}
		} else {
			_, _ = fmt.Fprintf(out, "  %v\n", err)
		}
		return errValidationFailed
	}
	_, _ = fmt.Fprintf(out, "Structure: OK (%d records, schema_version %s)\n",
		len(file.Guidelines), file.SchemaVersion)

	cat, err := catalog.New(os.DirFS(root), file)
	if err != nil {
		return fmt.Errorf("resolve catalog: %w", err)
	}
	if missing := cat.Missing(); len(missing) > 0 {
		label := "Warning"
		if getBoolFlag(cmd, "strict") {
			label = "Error"
			failed = true
		}
		for _, p := range missing {
			_, _ = fmt.Fprintf(out, "%s: mapped path not found: %s\n", label, p)
		}
	} else {
		_, _ = fmt.Fprintln(out, "Paths: OK")
	}

	if failed {
		return errValidationFailed
	}
	return nil
}
