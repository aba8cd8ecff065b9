package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/custodia-labs/tramites/internal/core/domain"
	"github.com/custodia-labs/tramites/internal/core/ports/driving"
)

const (
	defaultWidth = 80
	minBarWidth  = 10
	maxBarWidth  = 50
	maxCellWidth = 40

	// maxMatchColumns bounds the columns shown for search matches.
	maxMatchColumns = 6
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

// reportRenderer prints a collection report as headed tables.
type reportRenderer struct {
	out   io.Writer
	width int
}

func newReportRenderer(out io.Writer) *reportRenderer {
	return &reportRenderer{out: out, width: terminalWidth(out)}
}

// terminalWidth returns the width of out when it is a terminal.
func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// barWidth is the room left for bars beside a label and a count column.
func (r *reportRenderer) barWidth() int {
	return min(max(r.width-(maxCellWidth+16), minBarWidth), maxBarWidth)
}

func (r *reportRenderer) heading(title string) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, headingStyle.Render(title))
}

func (r *reportRenderer) note(text string) {
	fmt.Fprintln(r.out, mutedStyle.Render(text))
}

func (r *reportRenderer) table() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleRounded)
	return t
}

func (r *reportRenderer) render(rep *driving.Report) {
	r.heading("Collection " + rep.Collection)
	t := r.table()
	t.AppendHeader(table.Row{"Documents", "Columns", "Nulls"})
	t.AppendRow(table.Row{rep.Documents, len(rep.Columns), rep.Nulls})
	t.Render()

	r.heading("Field population")
	r.counts("Field", rep.Population, rep.Documents)

	r.heading("Name initials")
	r.counts("Initial", rep.Initials, 0)

	r.heading(fmt.Sprintf("Top words in %q", rep.TextField))
	r.counts("Word", rep.TopWords, 0)

	r.heading("Categories")
	r.counts("Category", rep.Categories, 0)

	r.heading("Longest names")
	r.longest(rep.Longest)

	if rep.Query != "" {
		r.search(rep)
	}
}

// search prints only the name-search section of rep.
func (r *reportRenderer) search(rep *driving.Report) {
	r.heading(fmt.Sprintf("Names containing %q", rep.Query))
	r.matches(rep.Columns, rep.Matches)
}

// counts prints label/count rows with bars scaled to total, or to the
// largest count when total is zero.
func (r *reportRenderer) counts(label string, rows []driving.Count, total int) {
	if len(rows) == 0 {
		r.note("(none)")
		return
	}
	if total == 0 {
		total = rows[0].Count
	}

	t := r.table()
	t.AppendHeader(table.Row{label, "Count", ""})
	for _, c := range rows {
		t.AppendRow(table.Row{truncate(c.Label, maxCellWidth), c.Count, bar(c.Count, total, r.barWidth())})
	}
	t.Render()
}

func (r *reportRenderer) longest(rows []driving.NameLength) {
	if len(rows) == 0 {
		r.note("(none)")
		return
	}
	t := r.table()
	t.AppendHeader(table.Row{"Name", "Length"})
	for _, n := range rows {
		t.AppendRow(table.Row{n.Name, n.Length})
	}
	t.Render()
}

func (r *reportRenderer) matches(columns []string, rows []map[string]string) {
	if len(rows) == 0 {
		r.note("No matches.")
		return
	}

	cols := matchColumns(columns)
	header := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = c
	}

	t := r.table()
	t.AppendHeader(header)
	for _, m := range rows {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = truncate(m[c], maxCellWidth)
		}
		t.AppendRow(row)
	}
	t.Render()
	r.note(fmt.Sprintf("%d matching documents", len(rows)))
}

// matchColumns puts the name first, drops the internal id and keeps at
// most maxMatchColumns columns.
func matchColumns(columns []string) []string {
	cols := []string{domain.ColName}
	for _, c := range columns {
		if c == domain.ColName || c == domain.IDField {
			continue
		}
		if len(cols) == maxMatchColumns {
			break
		}
		cols = append(cols, c)
	}
	return cols
}

func bar(n, total, width int) string {
	if total <= 0 || n <= 0 {
		return ""
	}
	filled := n * width / total
	if filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
