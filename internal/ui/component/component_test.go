package component

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/tokenview/internal/logger"
	"github.com/rovshanmuradov/tokenview/internal/tokenview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func gasSeries(values ...float64) tokenview.Series {
	points := make([]tokenview.Point, len(values))
	for i, v := range values {
		points[i] = tokenview.Point{Label: string(rune('a' + i)), Value: v}
	}
	return tokenview.Series{Kind: tokenview.SeriesGasPrice, Points: points}
}

func TestChartCursor(t *testing.T) {
	c := NewChart().SetSeries(gasSeries(1, 2, 3))

	p, ok := c.Cursor()
	require.True(t, ok)
	assert.Equal(t, "c", p.Label, "cursor starts at the newest point")

	c.MoveCursor(-5)
	p, _ = c.Cursor()
	assert.Equal(t, "a", p.Label)

	c.MoveCursor(1)
	p, _ = c.Cursor()
	assert.Equal(t, "b", p.Label)

	c.MoveCursor(10)
	p, _ = c.Cursor()
	assert.Equal(t, "c", p.Label)
}

func TestChartEmpty(t *testing.T) {
	c := NewChart()
	_, ok := c.Cursor()
	assert.False(t, ok)
	assert.Empty(t, c.View())

	c.MoveCursor(1)
	_, ok = c.Cursor()
	assert.False(t, ok)
}

func TestChartNeedsTwoDefinedPoints(t *testing.T) {
	c := NewChart().SetSeries(gasSeries(math.NaN(), 4, math.NaN()))
	assert.Contains(t, c.View(), noGraphText)

	c.SetSeries(gasSeries(math.NaN(), 4, 5))
	assert.NotContains(t, c.View(), noGraphText)
}

func TestChartShowsTooltipForCursor(t *testing.T) {
	c := NewChart().SetSeries(gasSeries(1e9, 2e9))
	view := c.View()
	assert.Contains(t, view, "Block b")
	assert.Contains(t, view, "(2/2)")

	c.MoveCursor(-1)
	assert.Contains(t, c.View(), "Block a")
}

func TestTooltipBox(t *testing.T) {
	out := NewTooltipBox().Render(tokenview.TooltipText{
		Title: "5m",
		Body:  "Price-Change: -1.50%",
		Tone:  tokenview.ToneNegative,
	})
	assert.Contains(t, out, "5m")
	assert.Contains(t, out, "Price-Change:")
	assert.Contains(t, out, "-1.50%")
}

func TestSparklineGaps(t *testing.T) {
	s := NewSparkline(4).SetData([]float64{1, math.NaN(), 3, 2})
	blocks := []rune(s.generateSparkBlocks())
	require.Len(t, blocks, 4)
	assert.Equal(t, '▁', blocks[0])
	assert.Equal(t, ' ', blocks[1])
	assert.Equal(t, '█', blocks[2])
}

func TestSparklineTrend(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want string
	}{
		{"up", []float64{1, 2, 3}, "↗"},
		{"down", []float64{3, math.NaN(), 1}, "↘"},
		{"flat", []float64{2, 2}, "→"},
		{"undefined", []float64{math.NaN(), math.NaN()}, "→"},
		{"empty", nil, "→"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewSparkline(8).SetData(tt.data).GetTrend())
		})
	}
}

func TestSparklineKeepsNewest(t *testing.T) {
	s := NewSparkline(2).SetData([]float64{1, 2, 3})
	assert.Equal(t, []float64{2, 3}, s.data)
}

func TestStatusHeader(t *testing.T) {
	h := NewStatusHeader("TokenView")
	h.SetNetwork(tokenview.NetworkEthereum)
	assert.Contains(t, h.View(), "Idle")
	assert.Contains(t, h.View(), "ethereum")

	h.SetSpinner("*")
	h.SetState(tokenview.ViewState{Phase: tokenview.PhaseLoading}, 0)
	assert.Contains(t, h.View(), "* Loading")

	h.SetState(tokenview.ViewState{Phase: tokenview.PhasePopulated}, 42*time.Millisecond)
	assert.Contains(t, h.View(), "42ms")

	h.SetState(tokenview.ViewState{Phase: tokenview.PhaseEmpty, Reason: tokenview.ReasonTimeout}, time.Second)
	assert.Contains(t, h.View(), "timeout")

	h.SetState(tokenview.ViewState{Phase: tokenview.PhaseEmpty, Reason: tokenview.ReasonEmptyResult}, time.Second)
	assert.Contains(t, h.View(), "No data")
}

func TestFormTextAndSelect(t *testing.T) {
	f := NewForm().
		AddField("query", FieldTypeText, "Query", "address or token ticker").
		AddField("network", FieldTypeSelect, "Network", "")
	f.SetFieldOptions("network", []string{"unset", "solana", "ethereum"})

	assert.Equal(t, "query", f.Focused())
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pepe")})
	assert.Equal(t, "pepe", f.GetValue("query"))

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "query", f.Focused(), "enter is left to the owner")

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "network", f.Focused())
	assert.Equal(t, "unset", f.GetValue("network"))

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "solana", f.GetValue("network"))
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyUp})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "ethereum", f.GetValue("network"))

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, "pepe", f.GetValue("query"), "typing on a select is ignored")

	f.SetFieldValue("network", "solana")
	assert.Equal(t, "solana", f.GetValue("network"))
	f.SetFieldValue("network", "bogus")
	assert.Equal(t, "solana", f.GetValue("network"))

	f.SetFieldValue("query", "0xabc")
	assert.Contains(t, f.View(), "0xabc")
}

func helpLines(view string) int {
	return strings.Count(strings.TrimSpace(view), "\n") + 1
}

func TestHelpBarLayout(t *testing.T) {
	keys := []key.Binding{
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search")),
		key.NewBinding(key.WithKeys("x")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "disabled"), key.WithDisabled()),
	}

	h := NewHelpBar().SetKeyBindings(keys).SetWidth(80)
	out := h.View()
	assert.Equal(t, 1, helpLines(out))
	assert.Contains(t, out, "quit")
	assert.Contains(t, out, "search")
	assert.NotContains(t, out, "disabled")

	h.ToggleFull()
	assert.True(t, h.ShowingFull())
	assert.Equal(t, 2, helpLines(h.View()))

	h.ToggleFull()
	h.SetWidth(20)
	out = h.View()
	assert.Equal(t, 3, helpLines(out))
	assert.Contains(t, out, "refresh")

	assert.Empty(t, NewHelpBar().View())
}

func TestHelpBarColumns(t *testing.T) {
	b := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "a"))
	bindings := []key.Binding{b, b, b, b, b}

	groups := columns(bindings, 2)
	require.Len(t, groups, 3)
	assert.Len(t, groups[2], 1)
	assert.Len(t, columns(bindings, 5), 1)
}

func TestCompactLogViewer(t *testing.T) {
	buf := logger.NewLogBuffer(10)
	buf.Add(logger.LogEntry{Timestamp: time.Now(), Level: "info", Message: "started"})
	buf.Add(logger.LogEntry{Timestamp: time.Now(), Level: "warn", Logger: "orchestrator", Message: "fetch failed"})
	buf.Add(logger.LogEntry{Timestamp: time.Now(), Level: "debug", Message: "noise"})

	v := NewCompactLogViewer(buf)
	assert.False(t, v.IsVisible())
	assert.Contains(t, v.View(), "orchestrator: fetch failed")

	v.Toggle()
	v.SetSize(80, 10)
	out := v.View()
	assert.Contains(t, out, "started")
	assert.NotContains(t, out, "noise")

	v.SetMinLevel(zapcore.DebugLevel)
	assert.Contains(t, v.View(), "noise")

	assert.Empty(t, NewCompactLogViewer(nil).View())
}
