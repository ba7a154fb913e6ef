package tokenview

import "math"

// Tone is the color hint for a tooltip value.
type Tone int

const (
	ToneNeutral Tone = iota
	TonePositive
	ToneNegative
)

func (t Tone) String() string {
	switch t {
	case TonePositive:
		return "positive"
	case ToneNegative:
		return "negative"
	default:
		return "neutral"
	}
}

// TooltipText is the hover text for one chart point.
type TooltipText struct {
	Title string
	Body  string
	Tone  Tone
}

// Tooltip formats the hover text for p. Only price changes are toned.
func Tooltip(kind SeriesKind, p Point) TooltipText {
	if kind == SeriesGasPrice {
		return TooltipText{
			Title: "Block " + p.Label,
			Body:  "Avg Gas: " + FormatGwei(p.Value),
			Tone:  ToneNeutral,
		}
	}

	tone := ToneNeutral
	switch {
	case math.IsNaN(p.Value):
	case p.Value >= 0:
		tone = TonePositive
	default:
		tone = ToneNegative
	}
	return TooltipText{
		Title: p.Label,
		Body:  "Price-Change: " + FormatPercent(p.Value),
		Tone:  tone,
	}
}
