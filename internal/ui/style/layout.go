package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/tokenview/internal/tokenview"
)

var palette = DefaultPalette()

// Header styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Margin(0, 0, 1, 0)
)

// Layout styles
var (
	ContainerStyle = lipgloss.NewStyle().
			Padding(0, 2)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(0, 2)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(palette.Primary).
				Padding(0, 2)
)

// Card styles
var (
	CardTitleStyle = lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true)

	CardLabelStyle = lipgloss.NewStyle().
			Foreground(palette.TextSecondary).
			Width(26)

	CardValueStyle = lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(palette.Info).
			Underline(true)
)

// Status styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(palette.Warning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(palette.TextMuted)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(palette.TextMuted).
				Italic(true).
				Margin(1, 0)
)

// Tone styles color a value by the sign of a price change
var (
	PositiveStyle = lipgloss.NewStyle().
			Foreground(palette.Positive).
			Bold(true)

	NegativeStyle = lipgloss.NewStyle().
			Foreground(palette.Negative).
			Bold(true)

	NeutralStyle = lipgloss.NewStyle().
			Foreground(palette.Neutral)
)

// ToneStyle returns the style for a tooltip tone
func ToneStyle(t tokenview.Tone) lipgloss.Style {
	switch t {
	case tokenview.TonePositive:
		return PositiveStyle
	case tokenview.ToneNegative:
		return NegativeStyle
	default:
		return NeutralStyle
	}
}

// AdaptiveJoinHorizontal stacks blocks vertically on narrow screens
func AdaptiveJoinHorizontal(width int, blocks ...string) string {
	if width < 80 {
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func AdaptiveWidth(width, percentage int) int {
	if width < 80 {
		return width - 4 // Leave some margin on narrow screens
	}
	return (width * percentage) / 100
}
