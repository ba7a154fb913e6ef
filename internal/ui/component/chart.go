package component

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/rovshanmuradov/tokenview/internal/tokenview"
	"github.com/rovshanmuradov/tokenview/internal/ui/style"
)

const noGraphText = "Not enough data to draw graph."

// Chart draws a Series as an ascii line graph with a movable point cursor.
// The point under the cursor is described by a tooltip box.
type Chart struct {
	series  tokenview.Series
	cursor  int
	width   int
	height  int
	caption string
	tooltip *TooltipBox

	graphStyle  lipgloss.Style
	labelStyle  lipgloss.Style
	cursorStyle lipgloss.Style
}

// NewChart creates an empty chart
func NewChart() *Chart {
	palette := style.DefaultPalette()
	return &Chart{
		width:   60,
		height:  10,
		tooltip: NewTooltipBox(),

		graphStyle: lipgloss.NewStyle().
			Foreground(palette.Chart),

		labelStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		cursorStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Bold(true),
	}
}

// SetSeries replaces the data and moves the cursor to the newest point
func (c *Chart) SetSeries(s tokenview.Series) *Chart {
	c.series = s
	c.cursor = len(s.Points) - 1
	if c.cursor < 0 {
		c.cursor = 0
	}
	return c
}

// SetCaption sets the caption printed under the graph
func (c *Chart) SetCaption(caption string) *Chart {
	c.caption = caption
	return c
}

// SetSize sets the plot area in cells
func (c *Chart) SetSize(width, height int) *Chart {
	if width < 10 {
		width = 10
	}
	if height < 3 {
		height = 3
	}
	c.width = width
	c.height = height
	return c
}

// Clear drops the series
func (c *Chart) Clear() *Chart {
	return c.SetSeries(tokenview.Series{})
}

// MoveCursor shifts the cursor by delta points, clamped to the series
func (c *Chart) MoveCursor(delta int) {
	if len(c.series.Points) == 0 {
		return
	}
	c.cursor += delta
	if c.cursor < 0 {
		c.cursor = 0
	}
	if c.cursor >= len(c.series.Points) {
		c.cursor = len(c.series.Points) - 1
	}
}

// Cursor returns the point under the cursor
func (c *Chart) Cursor() (tokenview.Point, bool) {
	if c.cursor < 0 || c.cursor >= len(c.series.Points) {
		return tokenview.Point{}, false
	}
	return c.series.Points[c.cursor], true
}

// View renders the graph, the cursor strip and the tooltip
func (c *Chart) View() string {
	if len(c.series.Points) == 0 {
		return ""
	}

	parts := []string{c.graphStyle.Render(c.plot()), c.renderCursorStrip()}
	if p, ok := c.Cursor(); ok {
		parts = append(parts, c.tooltip.Render(tokenview.Tooltip(c.series.Kind, p)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// plot skips undefined points, asciigraph cannot draw NaN.
func (c *Chart) plot() string {
	values := make([]float64, 0, len(c.series.Points))
	for _, p := range c.series.Points {
		if !math.IsNaN(p.Value) && !math.IsInf(p.Value, 0) {
			values = append(values, p.Value)
		}
	}
	if len(values) < 2 {
		return noGraphText
	}

	opts := []asciigraph.Option{
		asciigraph.Height(c.height),
		asciigraph.Width(c.width),
		asciigraph.Precision(2),
	}
	if c.caption != "" {
		opts = append(opts, asciigraph.Caption(c.caption))
	}
	return asciigraph.Plot(values, opts...)
}

// renderCursorStrip lists the labels around the cursor, highlighting it.
func (c *Chart) renderCursorStrip() string {
	const window = 3

	from := c.cursor - window
	if from < 0 {
		from = 0
	}
	to := c.cursor + window + 1
	if to > len(c.series.Points) {
		to = len(c.series.Points)
	}

	labels := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		label := c.series.Points[i].Label
		if i == c.cursor {
			labels = append(labels, c.cursorStyle.Render(" "+label+" "))
			continue
		}
		labels = append(labels, c.labelStyle.Render(label))
	}

	position := c.labelStyle.Render(fmt.Sprintf("(%d/%d)", c.cursor+1, len(c.series.Points)))
	return "◀ " + strings.Join(labels, "  ") + " ▶ " + position
}
