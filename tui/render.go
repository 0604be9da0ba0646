// Package tui draws the contribution graph in a terminal and maps mouse
// cells back to days.
package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/stsysd/kusa/activity"
	"github.com/stsysd/kusa/grid"
	"github.com/stsysd/kusa/heatmap"
)

// Layout, in terminal cells. Every row and column below is zero-based from
// the top-left corner of the rendered view.
const (
	LabelWidth = 4
	CellWidth  = 2
	MonthGap   = 1
	MonthWidth = grid.WeeksPerMonth*CellWidth + MonthGap

	TitleRow   = 0
	MonthRow   = 1
	GridTop    = 2
	LegendRow  = GridTop + grid.DaysPerWeek + 1
	TooltipRow = LegendRow + 1
)

const (
	glyphDay      = "■"
	glyphFuture   = "·"
	glyphSelected = "◆"
	glyphCursor   = "□"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	futureStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	tooltipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#24292F")).
			Padding(0, 1)
)

// Labels is the localized text the terminal view needs.
type Labels interface {
	heatmap.Labeler
	YearTotal(n int) string
}

// Frame is everything one render depends on.
type Frame struct {
	Grid     *grid.Grid
	Counts   activity.Contributions
	Labels   Labels
	Colors   []string // one per level; nil means heatmap.DefaultColors
	Selected string   // ISO date with a tooltip, or empty
	Cursor   string   // ISO date under the keyboard cursor, or empty
}

// GridBounds is the rectangle covered by day cells.
func GridBounds() (x, y, w, h int) {
	return LabelWidth, GridTop, grid.MonthsPerGrid*MonthWidth - MonthGap, grid.DaysPerWeek
}

// CellAt maps a terminal cell to the day drawn there.
func CellAt(g *grid.Grid, x, y int) (grid.Day, bool) {
	if y < GridTop || y >= GridTop+grid.DaysPerWeek || x < LabelWidth {
		return grid.Day{}, false
	}
	col := x - LabelWidth
	m := col / MonthWidth
	within := col % MonthWidth
	if m >= grid.MonthsPerGrid || within >= grid.WeeksPerMonth*CellWidth {
		return grid.Day{}, false
	}
	w := within / CellWidth
	return g.Months[m].Weeks[w].Days[y-GridTop], true
}

// CellPosition is the inverse of CellAt: the column and row of a day's glyph.
func CellPosition(month, week, day int) (x, y int) {
	return LabelWidth + month*MonthWidth + week*CellWidth, GridTop + day
}

// Render draws f as lines of text.
func Render(f Frame) string {
	colors := f.Colors
	if len(colors) != activity.NumLevels {
		colors = heatmap.DefaultColors
	}
	levelStyles := make([]lipgloss.Style, len(colors))
	for i, c := range colors {
		levelStyles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}

	g := f.Grid
	lines := make([]string, 0, TooltipRow+1)

	total := 0
	if s, err := activity.Summarize(f.Counts, g.First(), g.Today); err == nil {
		total = s.Total
	}
	lines = append(lines, titleStyle.Render(f.Labels.YearTotal(total)))

	var header strings.Builder
	header.WriteString(strings.Repeat(" ", LabelWidth))
	for _, month := range g.Months {
		header.WriteString(labelStyle.Render(fit(month.MonthName, MonthWidth)))
	}
	lines = append(lines, strings.TrimRight(header.String(), " "))

	weekdays := f.Labels.Weekdays()
	for d := range grid.DaysPerWeek {
		var row strings.Builder
		row.WriteString(labelStyle.Render(fit(weekdays[d], LabelWidth)))
		for m, month := range g.Months {
			for _, week := range month.Weeks {
				day := week.Days[d]
				row.WriteString(cell(g, day, f, levelStyles))
				row.WriteString(" ")
			}
			if m < grid.MonthsPerGrid-1 {
				row.WriteString(strings.Repeat(" ", MonthGap))
			}
		}
		lines = append(lines, strings.TrimRight(row.String(), " "))
	}

	lines = append(lines, "")

	less, more := f.Labels.Legend()
	var legend strings.Builder
	legend.WriteString(strings.Repeat(" ", LabelWidth))
	legend.WriteString(labelStyle.Render(less) + " ")
	for _, level := range activity.Levels() {
		legend.WriteString(levelStyles[level].Render(glyphDay) + " ")
	}
	legend.WriteString(labelStyle.Render(more))
	lines = append(lines, legend.String())

	if day, ok := g.Find(f.Selected); ok {
		count := f.Counts.Count(day.Date)
		label, err := f.Labels.TooltipLabel(day.Date)
		if err != nil {
			label = day.Date
		}
		lines = append(lines, strings.Repeat(" ", LabelWidth)+tooltipStyle.Render(f.Labels.Contributions(count)+", "+label))
	}

	return strings.Join(lines, "\n")
}

func cell(g *grid.Grid, day grid.Day, f Frame, levelStyles []lipgloss.Style) string {
	level := activity.Classify(f.Counts.Count(day.Date))
	style := levelStyles[level]
	if g.IsToday(day) {
		style = style.Underline(true)
	}
	switch {
	case day.Date == f.Selected:
		return style.Bold(true).Render(glyphSelected)
	case day.Date == f.Cursor:
		return style.Render(glyphCursor)
	case g.IsFuture(day):
		return futureStyle.Render(glyphFuture)
	default:
		return style.Render(glyphDay)
	}
}

// fit truncates or pads s to exactly width runes.
func fit(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return string([]rune(s)[:width-1]) + " "
	}
	return s + strings.Repeat(" ", width-n)
}
