package component

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/tokenview/internal/ui/style"
)

// Spark characters from lowest to highest
var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline is a one-line trend of a series. Undefined points are drawn as
// gaps.
type Sparkline struct {
	data     []float64
	width    int
	style    lipgloss.Style
	color    lipgloss.Color
	showText bool
}

// NewSparkline creates a new sparkline component
func NewSparkline(width int) *Sparkline {
	return &Sparkline{
		data:  make([]float64, 0),
		width: width,
		style: lipgloss.NewStyle(),
		color: style.DefaultPalette().Chart,
	}
}

// SetData keeps the last width points of data
func (s *Sparkline) SetData(data []float64) *Sparkline {
	if len(data) > s.width {
		data = data[len(data)-s.width:]
	}
	s.data = make([]float64, len(data))
	copy(s.data, data)
	return s
}

// SetWidth sets the width of the sparkline
func (s *Sparkline) SetWidth(width int) *Sparkline {
	s.width = width
	if len(s.data) > width {
		s.data = s.data[len(s.data)-width:]
	}
	return s
}

// SetColor sets the color for the sparkline
func (s *Sparkline) SetColor(color lipgloss.Color) *Sparkline {
	s.color = color
	return s
}

// ShowText enables the trend arrow after the sparkline
func (s *Sparkline) ShowText(show bool) *Sparkline {
	s.showText = show
	return s
}

// View renders the sparkline
func (s *Sparkline) View() string {
	blocks := s.style.Foreground(s.color).Render(s.generateSparkBlocks())
	if !s.showText {
		return blocks
	}

	palette := style.DefaultPalette()
	trend := s.GetTrend()
	trendColor := palette.TextMuted
	switch trend {
	case "↗":
		trendColor = palette.Positive
	case "↘":
		trendColor = palette.Negative
	}
	return blocks + " " + lipgloss.NewStyle().Foreground(trendColor).Render(trend)
}

func (s *Sparkline) generateSparkBlocks() string {
	var result strings.Builder

	min, max, ok := s.getMinMax()
	for i, value := range s.data {
		if i >= s.width {
			break
		}
		switch {
		case !defined(value):
			result.WriteRune(' ')
		case !ok || min == max:
			result.WriteRune('▄')
		default:
			index := int((value - min) / (max - min) * float64(len(sparkChars)-1))
			if index < 0 {
				index = 0
			} else if index >= len(sparkChars) {
				index = len(sparkChars) - 1
			}
			result.WriteRune(sparkChars[index])
		}
	}

	// Pad when there are fewer points than cells
	for i := len(s.data); i < s.width; i++ {
		result.WriteRune('▁')
	}

	return result.String()
}

// getMinMax ignores undefined points; ok is false when none are defined.
func (s *Sparkline) getMinMax() (min, max float64, ok bool) {
	for _, value := range s.data {
		if !defined(value) {
			continue
		}
		if !ok {
			min, max, ok = value, value, true
			continue
		}
		if value < min {
			min = value
		}
		if value > max {
			max = value
		}
	}
	return min, max, ok
}

// GetTrend compares the first and last defined points
func (s *Sparkline) GetTrend() string {
	first, last := math.NaN(), math.NaN()
	for _, v := range s.data {
		if defined(v) {
			if math.IsNaN(first) {
				first = v
			}
			last = v
		}
	}
	if math.IsNaN(first) || math.Abs(last-first) < 1e-9 {
		return "→"
	}
	if last > first {
		return "↗"
	}
	return "↘"
}

func defined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
