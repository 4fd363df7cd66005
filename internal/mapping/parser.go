package mapping

import (
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/archguide/archguide/pkg/models"
)

// SupportedSchemaRange is the semver constraint the mapping file's
// schema_version must satisfy.
const SupportedSchemaRange = "^1.0"

// idPattern constrains guideline IDs to lowercase kebab-case.
var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Parse unmarshals and structurally validates a mapping document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	if err := checkSchemaVersion(f.SchemaVersion); err != nil {
		return nil, err
	}
	if err := validateRecords(f.Guidelines); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFS reads and parses the mapping file from a corpus filesystem.
func LoadFS(fsys fs.FS, path string) (*File, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMappingNotFound, path)
	}
	return Parse(data)
}

// Load reads and parses the mapping file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMappingNotFound, path)
		}
		return nil, fmt.Errorf("mapping read %s: %w", path, err)
	}
	return Parse(data)
}

// checkSchemaVersion verifies schema_version satisfies SupportedSchemaRange.
// A missing version is treated as "1.0" for corpora predating the field.
func checkSchemaVersion(version string) error {
	if strings.TrimSpace(version) == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q is not a version", ErrSchemaVersion, version)
	}
	constraint, err := semver.NewConstraint(SupportedSchemaRange)
	if err != nil {
		return fmt.Errorf("mapping: parse constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %q outside supported range %s", ErrSchemaVersion, version, SupportedSchemaRange)
	}
	return nil
}

// validateRecords checks every record for structural problems and
// accumulates them into a single ValidationErrors value.
func validateRecords(records []Record) error {
	var errs ValidationErrors
	seen := make(map[string]bool, len(records))

	for i, r := range records {
		id := r.ID
		if id == "" {
			id = fmt.Sprintf("#%d", i)
			errs.Errors = append(errs.Errors, RecordError{
				ID: id, Field: "id", Message: "missing", Wrapped: ErrInvalidMapping,
			})
		} else if !idPattern.MatchString(id) {
			errs.Errors = append(errs.Errors, RecordError{
				ID: id, Field: "id", Message: "must be lowercase kebab-case", Wrapped: ErrInvalidMapping,
			})
		} else if seen[id] {
			errs.Errors = append(errs.Errors, RecordError{
				ID: id, Field: "id", Message: "declared more than once", Wrapped: ErrDuplicateID,
			})
		}
		seen[id] = true

		if strings.TrimSpace(r.Path) == "" {
			errs.Errors = append(errs.Errors, RecordError{
				ID: id, Field: "path", Message: "missing", Wrapped: ErrInvalidMapping,
			})
		}
		if strings.TrimSpace(r.Category) == "" {
			errs.Errors = append(errs.Errors, RecordError{
				ID: id, Field: "category", Message: "missing", Wrapped: ErrInvalidMapping,
			})
		}
		for _, l := range r.Levels {
			if !models.Level(l).IsValid() {
				errs.Errors = append(errs.Errors, RecordError{
					ID: id, Field: "levels",
					Message: fmt.Sprintf("unknown level %q", l), Wrapped: ErrUnknownLevel,
				})
			}
		}
	}

	if len(errs.Errors) > 0 {
		return &errs
	}
	return nil
}
