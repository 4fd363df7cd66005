// Package stats aggregates corpus statistics: guideline counts per
// category, language, level, and tag, plus corpus health figures.
package stats

import (
	"sort"

	"github.com/archguide/archguide/internal/catalog"
	"github.com/archguide/archguide/pkg/models"
)

// Count is one facet bucket.
type Count struct {
	Name       string
	Guidelines int
}

// Report is the aggregated corpus view consumed by the renderer.
type Report struct {
	Guidelines int // distinct guideline records
	Files      int // resolved content files (globs count each match)
	Missing    int // records whose path resolved to nothing

	ByCategory []Count // mapping declaration order
	ByLanguage []Count // first-appearance order
	ByLevel    []Count // tier order, basic first
	ByTag      []Count // descending count, then name
}

// Collect walks the catalog and builds the report. Facet counts are per
// guideline record, not per resolved file, so a glob record counts once.
func Collect(c *catalog.Catalog) *Report {
	r := &Report{
		Files:   len(c.Entries()),
		Missing: len(c.Missing()),
	}

	records := c.Mapping().Guidelines
	r.Guidelines = len(records)

	category := newCounter()
	language := newCounter()
	level := newCounter()
	tag := newCounter()

	for _, rec := range records {
		category.add(rec.Category)
		for _, l := range rec.Languages {
			language.add(l)
		}
		level.add(string(rec.MinLevel()))
		for _, t := range rec.Tags {
			tag.add(t)
		}
	}

	r.ByCategory = category.inOrder()
	r.ByLanguage = language.inOrder()
	r.ByLevel = level.inLevelOrder()
	r.ByTag = tag.byCount()
	return r
}

// counter accumulates counts while remembering first-appearance order.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(name string) {
	if name == "" {
		return
	}
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

// inOrder returns buckets in first-appearance order.
func (c *counter) inOrder() []Count {
	out := make([]Count, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, Count{Name: name, Guidelines: c.counts[name]})
	}
	return out
}

// inLevelOrder returns buckets in tier order, skipping empty tiers.
func (c *counter) inLevelOrder() []Count {
	var out []Count
	for _, l := range models.ValidLevels() {
		if n, ok := c.counts[string(l)]; ok {
			out = append(out, Count{Name: string(l), Guidelines: n})
		}
	}
	return out
}

// byCount returns buckets sorted by descending count, ties by name.
func (c *counter) byCount() []Count {
	out := c.inOrder()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Guidelines != out[j].Guidelines {
			return out[i].Guidelines > out[j].Guidelines
		}
		return out[i].Name < out[j].Name
	})
	return out
}
