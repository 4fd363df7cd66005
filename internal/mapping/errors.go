// Package mapping parses and validates the guideline-mappings.yml index
// that associates guideline IDs with file paths, categories, languages,
// levels, architectures, and tags.
package mapping

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for mapping operations.
var (
	// ErrMappingNotFound indicates the mapping file was not found.
	ErrMappingNotFound = errors.New("mapping: guideline-mappings.yml not found")

	// ErrInvalidYAML indicates invalid YAML syntax in the mapping file.
	ErrInvalidYAML = errors.New("mapping: invalid YAML syntax")

	// ErrInvalidMapping indicates the mapping content is invalid.
	ErrInvalidMapping = errors.New("mapping: invalid mapping")

	// ErrDuplicateID indicates two records share a guideline ID.
	ErrDuplicateID = errors.New("mapping: duplicate guideline id")

	// ErrUnknownLevel indicates a record names a level outside the known tiers.
	ErrUnknownLevel = errors.New("mapping: unknown level")

	// ErrSchemaVersion indicates an incompatible schema_version value.
	ErrSchemaVersion = errors.New("mapping: unsupported schema_version")

	// ErrSchemaViolation indicates the mapping failed JSON-Schema validation.
	ErrSchemaViolation = errors.New("mapping: schema violation")
)

// RecordError is a validation error scoped to one mapping record.
type RecordError struct {
	ID      string // guideline ID, or the record index when the ID is missing
	Field   string
	Message string
	Wrapped error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	return fmt.Sprintf("record %q: field %q: %s", e.ID, e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *RecordError) Unwrap() error {
	return e.Wrapped
}

// ValidationErrors collects every record error found in one pass.
type ValidationErrors struct {
	Errors []RecordError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "mapping validation: no errors"
	}
	msgs := make([]string, len(e.Errors))
	for i, re := range e.Errors {
		msgs[i] = re.Error()
	}
	return fmt.Sprintf("mapping validation failed with %d error(s): %s",
		len(e.Errors), strings.Join(msgs, "; "))
}

// Is supports errors.Is against ErrInvalidMapping and the wrapped sentinels.
func (e *ValidationErrors) Is(target error) bool {
	if target == ErrInvalidMapping {
		return true
	}
	for _, re := range e.Errors {
		if re.Wrapped != nil && errors.Is(re.Wrapped, target) {
			return true
		}
	}
	return false
}
