package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Renderer writes a Report as styled terminal tables.
type Renderer struct {
	writer  io.Writer
	noColor bool
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	return &Renderer{writer: w, noColor: noColor}
}

// Render writes the full report: a summary line followed by one table
// per facet.
func (r *Renderer) Render(rep *Report) {
	r.renderSummary(rep)
	r.renderFacet("Categories", rep.ByCategory)
	r.renderFacet("Languages", rep.ByLanguage)
	r.renderFacet("Levels", rep.ByLevel)
	r.renderFacet("Tags", rep.ByTag)
}

// renderSummary prints the corpus health line.
func (r *Renderer) renderSummary(rep *Report) {
	summary := fmt.Sprintf("%d guidelines, %d files", rep.Guidelines, rep.Files)
	if rep.Missing > 0 {
		summary += fmt.Sprintf(", %d missing", rep.Missing)
	}

	if r.noColor {
		fmt.Fprintln(r.writer, summary)
		return
	}
	style := lipgloss.NewStyle().Bold(true)
	if rep.Missing > 0 {
		style = style.Foreground(lipgloss.Color("11")) // yellow when unhealthy
	}
	fmt.Fprintln(r.writer, style.Render(summary))
}

// renderFacet prints one facet table, skipping empty facets.
func (r *Renderer) renderFacet(title string, counts []Count) {
	if len(counts) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.writer)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{title, "Guidelines"})
	for _, c := range counts {
		t.AppendRow(table.Row{displayName(c.Name), c.Guidelines})
	}
	fmt.Fprintln(r.writer)
	t.Render()
}

// displayName turns a kebab-case facet name into a display title.
func displayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}
