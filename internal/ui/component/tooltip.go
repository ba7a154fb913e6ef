package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/tokenview/internal/tokenview"
	"github.com/rovshanmuradov/tokenview/internal/ui/style"
)

// TooltipBox renders tooltip text in a small bordered box
type TooltipBox struct {
	container lipgloss.Style
	title     lipgloss.Style
}

// NewTooltipBox creates a tooltip box
func NewTooltipBox() *TooltipBox {
	palette := style.DefaultPalette()
	return &TooltipBox{
		container: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(palette.TextMuted).
			Padding(0, 1),

		title: lipgloss.NewStyle().
			Foreground(palette.TextSecondary),
	}
}

// Render paints the value part of the body with the tooltip's tone.
func (t *TooltipBox) Render(tip tokenview.TooltipText) string {
	body := tip.Body
	if i := strings.Index(body, ": "); i >= 0 {
		body = body[:i+2] + style.ToneStyle(tip.Tone).Render(body[i+2:])
	} else {
		body = style.ToneStyle(tip.Tone).Render(body)
	}
	return t.container.Render(t.title.Render(tip.Title) + "\n" + body)
}
