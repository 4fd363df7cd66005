package mapping

import (
	"github.com/archguide/archguide/pkg/models"
)

// Record is one guideline entry in guideline-mappings.yml. Path may be a
// doublestar glob; the catalog expands it against the corpus filesystem.
// Empty applicability lists mean "applies to everything".
type Record struct {
	ID            string   `yaml:"id" json:"id"`
	Title         string   `yaml:"title,omitempty" json:"title,omitempty"`
	Description   string   `yaml:"description,omitempty" json:"description,omitempty"`
	Path          string   `yaml:"path" json:"path"`
	Category      string   `yaml:"category" json:"category"`
	Languages     []string `yaml:"languages,omitempty" json:"languages,omitempty"`
	Levels        []string `yaml:"levels,omitempty" json:"levels,omitempty"`
	Architectures []string `yaml:"architectures,omitempty" json:"architectures,omitempty"`
	Tags          []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// MinLevel returns the lowest tier the record names. Records without
// levels apply from basic upward.
func (r Record) MinLevel() models.Level {
	if len(r.Levels) == 0 {
		return models.LevelBasic
	}
	min := models.Level(r.Levels[0])
	for _, l := range r.Levels[1:] {
		lvl := models.Level(l)
		if lvl.IsValid() && (!min.IsValid() || lvl.Rank() < min.Rank()) {
			min = lvl
		}
	}
	if !min.IsValid() {
		return models.LevelBasic
	}
	return min
}

// AppliesTo reports whether the record matches a language. Records with
// no languages apply to all of them.
func (r Record) AppliesTo(language string) bool {
	if language == "" || len(r.Languages) == 0 {
		return true
	}
	for _, l := range r.Languages {
		if l == language {
			return true
		}
	}
	return false
}

// AppliesToArchitecture reports whether the record matches an architecture.
func (r Record) AppliesToArchitecture(arch string) bool {
	if arch == "" || len(r.Architectures) == 0 {
		return true
	}
	for _, a := range r.Architectures {
		if a == arch {
			return true
		}
	}
	return false
}

// HasTag reports whether the record carries the tag.
func (r Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// File is the parsed guideline-mappings.yml document. Guidelines keep
// their declaration order; that order is the deterministic bundle order.
type File struct {
	SchemaVersion string   `yaml:"schema_version" json:"schema_version"`
	Guidelines    []Record `yaml:"guidelines" json:"guidelines"`
}

// Categories returns the distinct categories in declaration order.
func (f *File) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range f.Guidelines {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	return out
}

// ByID returns the record with the given guideline ID.
func (f *File) ByID(id string) (Record, bool) {
	for _, r := range f.Guidelines {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}
