// Package plot draws course trends as terminal charts.
package plot

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/fuikk/fuikk/core/stats"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/schema"
	"github.com/mattn/go-runewidth"
)

// Markers drawn in the chart cells.
const (
	PointMarker    = "●"
	SentinelMarker = "x" // average missing or every answer ignored
	emptyCell      = "·"
)

var (
	markerColor = color.New(color.FgCyan, color.Bold)
	axisColor   = color.New(color.Faint)
)

// Chart is the laid out grid of a trend before rendering.
// Cells[row][col] holds the markers of one scale label in one semester.
type Chart struct {
	Labels    []string
	Semesters []string
	Cells     [][][]string
}

// Layout places every point of the trend on the label/semester grid.
// Numeric averages go to the nearest label row; sentinel averages go to the middle row.
func Layout(trend schema.CourseTrend) Chart {
	chart := Chart{Labels: trend.Labels, Semesters: trend.Semesters}
	chart.Cells = make([][][]string, len(trend.Labels))
	for i := range chart.Cells {
		chart.Cells[i] = make([][]string, len(trend.Semesters))
	}
	if len(trend.Labels) == 0 {
		return chart
	}

	column := make(map[string]int, len(trend.Semesters))
	for i, sem := range trend.Semesters {
		column[sem] = i
	}
	for _, p := range trend.Points {
		col, ok := column[p.Semester]
		if !ok {
			continue
		}
		row, marker := len(trend.Labels)/2, SentinelMarker
		if p.Average.Valid {
			row, marker = clamp(stats.RoundIndex(p.Average.Value), len(trend.Labels)), PointMarker
		}
		chart.Cells[row][col] = append(chart.Cells[row][col], marker)
	}
	return chart
}

func clamp(i, n int) int {
	return max(0, min(i, n-1))
}

// Render writes the chart of trend to w, followed by the latest participation line.
func Render(w io.Writer, trend schema.CourseTrend) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", trend.Code, trend.Name)
	fmt.Fprintf(&b, "%s\n\n", trend.Title())

	chart := Layout(trend)
	labelWidth := 0
	for _, l := range chart.Labels {
		labelWidth = max(labelWidth, runewidth.StringWidth(l))
	}
	colWidth := 1
	for _, sem := range chart.Semesters {
		colWidth = max(colWidth, runewidth.StringWidth(sem))
	}

	for row, label := range chart.Labels {
		b.WriteString(runewidth.FillRight(label, labelWidth))
		b.WriteString(axisColor.Sprint(" │"))
		for col := range chart.Semesters {
			b.WriteString(" ")
			b.WriteString(renderCell(chart.Cells[row][col], colWidth))
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(" ", labelWidth))
	b.WriteString(axisColor.Sprint(" └" + strings.Repeat("─", len(chart.Semesters)*(colWidth+1))))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", labelWidth+2))
	for _, sem := range chart.Semesters {
		b.WriteString(" ")
		b.WriteString(runewidth.FillRight(sem, colWidth))
	}
	b.WriteString("\n")

	if trend.Latest != nil {
		fmt.Fprintf(&b, "\n%s\n", contract.FormatParticipation(*trend.Latest, trend.Language))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// renderCell centers the cell markers in a column of the given width.
func renderCell(markers []string, width int) string {
	text := emptyCell
	if len(markers) > 0 {
		text = strings.Join(markers, "")
		if runewidth.StringWidth(text) > width {
			text = runewidth.Truncate(text, width, "")
		}
	}
	pad := width - runewidth.StringWidth(text)
	left := pad / 2
	cell := strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
	if len(markers) > 0 {
		return strings.Replace(cell, text, markerColor.Sprint(text), 1)
	}
	return axisColor.Sprint(cell)
}
