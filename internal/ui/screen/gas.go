package screen

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/tokenview/internal/tokenview"
	"github.com/rovshanmuradov/tokenview/internal/ui"
	"github.com/rovshanmuradov/tokenview/internal/ui/component"
	"github.com/rovshanmuradov/tokenview/internal/ui/router"
	"github.com/rovshanmuradov/tokenview/internal/ui/style"
)

// GasPlaceholder is shown while there is no gas series to display
const GasPlaceholder = "No gas data"

// GasScreen polls the average gas price feed and charts it per block.
type GasScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	*session
	sparkline *component.Sparkline
	interval  time.Duration
}

// NewGasScreen creates a gas screen with its own orchestrator
func NewGasScreen(services ui.ServiceProvider) *GasScreen {
	keyMap := ui.DefaultKeyMap()
	s := &GasScreen{
		keyMap:    keyMap,
		session:   newSession(services, "TokenView · Gas", ui.RouteGas, keyMap),
		sparkline: component.NewSparkline(40).ShowText(true),
		interval:  services.GetConfig().RefreshInterval,
	}
	s.chart.SetCaption("Avg Gas (Gwei)")
	return s
}

// Init fetches the series and starts the refresh timer when configured
func (s *GasScreen) Init() tea.Cmd {
	return tea.Batch(s.refresh(), s.scheduleRefresh())
}

func (s *GasScreen) refresh() tea.Cmd {
	return s.start(tokenview.PollTrigger())
}

func (s *GasScreen) scheduleRefresh() tea.Cmd {
	if s.interval <= 0 {
		return nil
	}
	owner := s.orch
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return ui.RefreshTickMsg{Owner: owner, At: t}
	})
}

// Update handles screen updates
func (s *GasScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Quit):
			return s, tea.Quit
		case key.Matches(msg, s.keyMap.Refresh):
			return s, s.refresh()
		case key.Matches(msg, s.keyMap.PrevPoint):
			s.chart.MoveCursor(-1)
		case key.Matches(msg, s.keyMap.NextPoint):
			s.chart.MoveCursor(1)
		case key.Matches(msg, s.keyMap.Logs):
			s.logs.Toggle()
		case key.Matches(msg, s.keyMap.Help):
			s.helpBar.ToggleFull()
		}
		return s, nil

	case ui.RefreshTickMsg:
		if msg.Owner != s.orch || s.ctx.Err() != nil {
			return s, nil
		}
		return s, tea.Batch(s.refresh(), s.scheduleRefresh())

	case ui.FetchResultMsg:
		if s.receive(msg) {
			s.sparkline.SetData(s.orch.State().Series.Values())
		}
		return s, nil

	case spinner.TickMsg:
		return s, s.tick(msg)
	}

	return s, s.logs.Update(msg)
}

// View renders the gas screen
func (s *GasScreen) View() string {
	if s.width == 0 || s.height == 0 {
		return "Loading..."
	}

	body := s.emptyView(GasPlaceholder)
	state := s.orch.State()
	switch {
	case state.Loading():
		body = style.MutedStyle.Render(fmt.Sprintf("%s Fetching gas prices...", s.spinner.View()))
	case state.HasData():
		trend := fmt.Sprintf("Trend %s  %d blocks", s.sparkline.View(), state.Series.Len())
		body = style.PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.chart.View(),
			"",
			trend,
		))
	}

	return style.ContainerStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.header.View(),
		body,
		s.logs.View(),
		s.helpBar.View(),
	))
}

// SetSize sets the screen dimensions
func (s *GasScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.setSize(width, height)
	s.chart.SetSize(style.AdaptiveWidth(width, 80)-12, height/3)
	s.sparkline.SetWidth(style.AdaptiveWidth(width, 40))
}

// Close cancels the in-flight request and stops refreshing
func (s *GasScreen) Close() {
	s.close()
}
