package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
)

//go:embed templates/*.md
var templateFS embed.FS

// templates holds the markdown templates, partials included.
var templates, _ = fs.Sub(templateFS, "templates")

// barWidth is the number of cells of a 100% bar in the chart.
const barWidth = 20

var funcs = template.FuncMap{
	"inc":      func(i int) int { return i + 1 },
	"cell":     cell,
	"bar":      bar,
	"abs":      func(m folio.Money) folio.Money { return m.WithAmount(m.Amount().Abs()) },
	"date":     func(s date.Stamp) string { return s.Date().String() },
	"tickers":  folio.FormatTickers,
	"invested": func(s folio.Snapshot) folio.Money { return folio.M(s.Invested(), s.TotalInvestment.Currency()) },
}

// cell escapes s for a markdown table cell.
func cell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }

// bar draws a horizontal bar proportional to p. Negative shares draw nothing,
// shares above 100% are capped.
func bar(p folio.Percent) string {
	n := int(float64(p)*barWidth/100 + 0.5)
	n = max(0, min(n, barWidth))
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}

// Editing is the view of the editing state.
type Editing struct {
	Name   string // name of the portfolio selected for edit, if any.
	Budget folio.Budget
	Table  folio.Table
	Chart  folio.Chart
}

// NewEditing builds the view of an editing state.
func NewEditing(name string, total folio.Money, allocations []folio.Allocation) *Editing {
	invested := folio.M(folio.Invested(allocations), total.Currency())
	return &Editing{
		Name:   name,
		Budget: folio.Budget{Total: total, Invested: invested, Remaining: total.Sub(invested.Amount())},
		Table:  folio.NewTable(total, allocations),
		Chart:  folio.NewChart(total, allocations),
	}
}

// SnapshotList is the view of the saved portfolios.
type SnapshotList struct {
	Snapshots []folio.Snapshot
	Editing   string // id of the portfolio selected for edit, if any.
}

// RenderBudget renders the total investment panel.
func RenderBudget(b folio.Budget) string { return renderTemplate("budget", "budget.md", nil, b) }

// RenderTable renders the allocation table.
func RenderTable(t folio.Table) string { return renderTemplate("table", "table.md", nil, t) }

// RenderChart renders the allocation chart as a table of bars.
func RenderChart(c folio.Chart) string { return renderTemplate("chart", "chart.md", nil, c) }

// RenderEditing renders the whole editing state: budget, table and chart.
func RenderEditing(e *Editing) string {
	partials := map[string]string{
		"budget": "budget.md",
		"table":  "table.md",
		"chart":  "chart.md",
	}
	return renderTemplate("editing", "editing.md", partials, e)
}

// RenderSnapshots renders the list of saved portfolios.
func RenderSnapshots(l *SnapshotList) string {
	return renderTemplate("snapshots", "snapshots.md", nil, l)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
