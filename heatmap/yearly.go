// yearly.go
// Renders a rolling-year contribution grid as an SVG string.
package heatmap

import (
	"fmt"
	"html"
	"strings"

	"github.com/stsysd/kusa/activity"
	"github.com/stsysd/kusa/grid"
	"github.com/stsysd/kusa/locale"
)

// GenerateGridSVG returns an SVG string for g with counts overlaid by date.
// Months are drawn as groups of four week columns; rows are weekdays, Monday
// first. Only the day named by opts.Selected gets a tooltip box.
func GenerateGridSVG(g *grid.Grid, counts activity.Contributions, opts *Options) string {
	opts = opts.normalize(func() Labeler { return locale.Default() })

	step := opts.CellSize + opts.CellPadding
	monthGap := opts.CellPadding * 2 // extra spacing between month groups
	monthWidth := grid.WeeksPerMonth*step + monthGap
	labelWidth := opts.FontSize*2 + 4

	titleHeight := 0
	if opts.Title != "" {
		titleHeight = opts.FontSize + 8 // title text + padding
	}
	gridTop := titleHeight + opts.FontSize + 4
	gridHeight := grid.DaysPerWeek*step + opts.CellPadding
	legendY := gridTop + gridHeight + opts.FontSize + 2
	legendHeight := opts.FontSize + 8

	selected, hasSelected := g.Find(opts.Selected)
	tooltipHeight := 0
	if hasSelected {
		tooltipHeight = opts.FontSize + 12
	}

	width := labelWidth + opts.CellPadding + grid.MonthsPerGrid*monthWidth
	height := gridTop + gridHeight + legendHeight + tooltipHeight

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg" class="contribution-graph">`+"\n", width, height))
	sb.WriteString(fmt.Sprintf(`  <style>.label{font-family:%s;font-size:%dpx;fill:#666}.title{font-family:%s;font-size:%dpx;fill:#333;font-weight:bold}.current-day{stroke:#555;stroke-width:1}.future{fill-opacity:0.4}.selected{stroke:#000;stroke-width:2}.tooltip text{font-family:%s;font-size:%dpx;fill:#fff}</style>`+"\n",
		opts.FontFamily, opts.FontSize, opts.FontFamily, opts.FontSize, opts.FontFamily, opts.FontSize))

	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="title">%s</text>`+"\n",
			opts.CellPadding, opts.FontSize, html.EscapeString(opts.Title)))
	}

	// weekday labels
	for i, name := range opts.Labels.Weekdays() {
		y := gridTop + opts.CellPadding + i*step + opts.CellSize - 2
		sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="label">%s</text>`+"\n",
			0, y, html.EscapeString(name)))
	}

	cellX := func(m, w int) int {
		return labelWidth + opts.CellPadding + m*monthWidth + w*step
	}
	cellY := func(d int) int {
		return gridTop + opts.CellPadding + d*step
	}

	for m, month := range g.Months {
		sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="label month-name">%s</text>`+"\n",
			cellX(m, 0), titleHeight+opts.FontSize, html.EscapeString(month.MonthName)))

		for w, week := range month.Weeks {
			for d, day := range week.Days {
				count := counts.Count(day.Date)
				level := activity.Classify(count)

				classes := []string{"day", "level-" + level.String()}
				if g.IsToday(day) {
					classes = append(classes, "current-day")
				}
				if g.IsFuture(day) {
					classes = append(classes, "future")
				}
				if hasSelected && day.Date == selected.Date {
					classes = append(classes, "selected")
				}

				// 各セルに矩形と、その中にtitle要素（ツールチップ）を追加
				sb.WriteString(fmt.Sprintf(`  <rect x="%d" y="%d" width="%d" height="%d" fill="%s" class="%s" data-date="%s" data-count="%d" data-level="%s">`+"\n",
					cellX(m, w), cellY(d), opts.CellSize, opts.CellSize, opts.Colors[level],
					strings.Join(classes, " "), day.Date, count, level))
				sb.WriteString(fmt.Sprintf(`    <title>%s</title>`+"\n", html.EscapeString(tooltipText(opts.Labels, day.Date, count))))
				sb.WriteString(`  </rect>` + "\n")
			}
		}
	}

	// legend: five static swatches, least to most
	less, more := opts.Labels.Legend()
	x := labelWidth + opts.CellPadding
	sb.WriteString(`  <g class="legend">` + "\n")
	sb.WriteString(fmt.Sprintf(`    <text x="%d" y="%d" class="label">%s</text>`+"\n",
		x, legendY+opts.CellSize-2, html.EscapeString(less)))
	x += len([]rune(less))*opts.FontSize*3/5 + opts.CellPadding*2
	for _, level := range activity.Levels() {
		sb.WriteString(fmt.Sprintf(`    <rect x="%d" y="%d" width="%d" height="%d" fill="%s" data-level="%s"/>`+"\n",
			x, legendY, opts.CellSize, opts.CellSize, opts.Colors[level], level))
		x += step
	}
	sb.WriteString(fmt.Sprintf(`    <text x="%d" y="%d" class="label">%s</text>`+"\n",
		x+opts.CellPadding, legendY+opts.CellSize-2, html.EscapeString(more)))
	sb.WriteString(`  </g>` + "\n")

	if hasSelected {
		count := counts.Count(selected.Date)
		text := tooltipText(opts.Labels, selected.Date, count)
		y := legendY + legendHeight
		boxWidth := len([]rune(text))*opts.FontSize*3/5 + 12
		sb.WriteString(fmt.Sprintf(`  <g class="tooltip" data-date="%s" data-count="%d">`+"\n", selected.Date, count))
		sb.WriteString(fmt.Sprintf(`    <rect x="%d" y="%d" width="%d" height="%d" rx="3" fill="#24292f"/>`+"\n",
			labelWidth+opts.CellPadding, y, boxWidth, opts.FontSize+8))
		sb.WriteString(fmt.Sprintf(`    <text x="%d" y="%d">%s</text>`+"\n",
			labelWidth+opts.CellPadding+6, y+opts.FontSize+2, html.EscapeString(text)))
		sb.WriteString(`  </g>` + "\n")
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// tooltipText joins the pluralized count with the long date label.
func tooltipText(labels Labeler, date string, count int) string {
	label, err := labels.TooltipLabel(date)
	if err != nil {
		label = date
	}
	return labels.Contributions(count) + ", " + label
}
