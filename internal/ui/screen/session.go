package screen

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/tokenview/internal/tokenview"
	"github.com/rovshanmuradov/tokenview/internal/ui"
	"github.com/rovshanmuradov/tokenview/internal/ui/component"
	"github.com/rovshanmuradov/tokenview/internal/ui/style"
	"go.uber.org/zap"
)

// session is the fetch plumbing shared by the data screens. Each screen
// instance owns one orchestrator and one context, cancelled on Close.
type session struct {
	ctx    context.Context
	cancel context.CancelFunc
	orch   *tokenview.Orchestrator
	logger *zap.Logger

	surfaceErrors bool

	header  *component.StatusHeader
	chart   *component.Chart
	logs    *component.CompactLogViewer
	helpBar *component.HelpBar
	spinner spinner.Model
}

func newSession(services ui.ServiceProvider, title string, route ui.Route, keyMap ui.KeyMap) *session {
	ctx, cancel := context.WithCancel(services.GetContext())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = style.WarningStyle

	return &session{
		ctx:           ctx,
		cancel:        cancel,
		orch:          services.NewOrchestrator(),
		logger:        services.GetLogger().Named(route.String()),
		surfaceErrors: services.GetConfig().SurfaceErrors,
		header:        component.NewStatusHeader(title),
		chart:         component.NewChart(),
		logs:          component.NewCompactLogViewer(services.GetLogBuffer()),
		helpBar:       component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(route)),
		spinner:       sp,
	}
}

// start issues t and returns the commands that run it and animate the
// header. Any result still shown is dropped.
func (s *session) start(t tokenview.Trigger) tea.Cmd {
	req := s.orch.Begin(s.ctx, t)
	s.chart.Clear()
	s.header.SetState(s.orch.State(), 0)
	s.header.SetSpinner(s.spinner.View())
	return tea.Batch(runRequest(s.orch, req), s.spinner.Tick)
}

// runRequest performs req off the event loop
func runRequest(o *tokenview.Orchestrator, req *tokenview.Request) tea.Cmd {
	return func() tea.Msg {
		return ui.FetchResultMsg{Owner: o, Outcome: req.Run()}
	}
}

// receive commits a result and reports whether the view changed. Results
// of other screens and superseded requests are dropped.
func (s *session) receive(msg ui.FetchResultMsg) bool {
	if msg.Owner != s.orch || !s.orch.Apply(msg.Outcome) {
		return false
	}
	state := s.orch.State()
	s.header.SetState(state, msg.Outcome.Duration)
	if state.HasData() {
		s.chart.SetSeries(state.Series)
	}
	return true
}

// tick advances the spinner while a request is in flight
func (s *session) tick(msg spinner.TickMsg) tea.Cmd {
	if !s.orch.State().Loading() {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	s.header.SetSpinner(s.spinner.View())
	return cmd
}

func (s *session) setSize(width, height int) {
	s.header.SetWidth(width)
	s.helpBar.SetWidth(width)
	s.logs.SetSize(width, height/3)
	s.chart.SetSize(style.AdaptiveWidth(width, 55)-12, height/4)
}

// emptyView renders the placeholder, plus the failure when configured to.
func (s *session) emptyView(placeholder string) string {
	state := s.orch.State()
	text := style.PlaceholderStyle.Render(placeholder)
	if s.surfaceErrors && state.Phase == tokenview.PhaseEmpty && state.Reason != tokenview.ReasonEmptyResult {
		text += "\n" + style.ErrorStyle.Render(tokenview.Describe(state))
	}
	return text
}

func (s *session) close() {
	s.cancel()
}
