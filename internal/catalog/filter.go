package catalog

import (
	"github.com/archguide/archguide/pkg/models"
)

// Filter narrows the corpus to the guidelines relevant for one bundle.
// Zero values do not constrain: an empty Language matches every record,
// an empty Level defaults to standard, empty Tags match everything.
type Filter struct {
	Language     string
	Level        models.Level
	Architecture string
	Tags         []string
}

// effectiveLevel returns the requested tier, defaulting to standard.
func (f Filter) effectiveLevel() models.Level {
	if f.Level == "" {
		return models.LevelStandard
	}
	return f.Level
}

// Matches reports whether one entry passes the filter. Tag filtering is
// any-of: a record passes when it carries at least one requested tag.
func (f Filter) Matches(e Entry) bool {
	r := e.Record

	if !r.AppliesTo(f.Language) {
		return false
	}
	if !f.effectiveLevel().Includes(r.MinLevel()) {
		return false
	}
	if !r.AppliesToArchitecture(f.Architecture) {
		return false
	}
	if len(f.Tags) > 0 {
		any := false
		for _, t := range f.Tags {
			if r.HasTag(t) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return true
}

// Select returns the entries passing the filter, preserving mapping
// declaration order.
func (c *Catalog) Select(f Filter) []Entry {
	var out []Entry
	for _, e := range c.entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Languages returns the distinct languages named across the corpus,
// in first-appearance order.
func (c *Catalog) Languages() []string {
	return c.distinct(func(e Entry) []string { return e.Record.Languages })
}

// Architectures returns the distinct architectures named across the corpus.
func (c *Catalog) Architectures() []string {
	return c.distinct(func(e Entry) []string { return e.Record.Architectures })
}

// Tags returns the distinct tags named across the corpus.
func (c *Catalog) Tags() []string {
	return c.distinct(func(e Entry) []string { return e.Record.Tags })
}

func (c *Catalog) distinct(pick func(Entry) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range c.entries {
		for _, v := range pick(e) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}
