package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/tokenview/internal/tokenview"
	"github.com/rovshanmuradov/tokenview/internal/ui"
	"github.com/rovshanmuradov/tokenview/internal/ui/component"
	"github.com/rovshanmuradov/tokenview/internal/ui/router"
	"github.com/rovshanmuradov/tokenview/internal/ui/style"
	"go.uber.org/zap"
)

const (
	fieldQuery   = "query"
	fieldNetwork = "network"

	// SearchPlaceholder is shown while there is no pair to display
	SearchPlaceholder = "address or token ticker"
)

// SearchScreen looks up a token on DexScreener and shows its pair card and
// price-change chart.
type SearchScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	*session
	form *component.Form
	card *tokenview.Card
}

// NewSearchScreen creates a search screen with its own orchestrator
func NewSearchScreen(services ui.ServiceProvider) *SearchScreen {
	keyMap := ui.InputKeyMap()

	options := make([]string, 0, len(tokenview.Networks))
	for _, n := range tokenview.Networks {
		options = append(options, n.String())
	}

	form := component.NewForm().
		AddField(fieldQuery, component.FieldTypeText, "Token", SearchPlaceholder).
		AddField(fieldNetwork, component.FieldTypeSelect, "Network", "")
	form.SetFieldOptions(fieldNetwork, options)

	s := &SearchScreen{
		keyMap:  keyMap,
		session: newSession(services, "TokenView · Search", ui.RouteSearch, keyMap),
		form:    form,
	}

	if n, err := tokenview.ParseNetwork(services.GetConfig().DefaultNetwork); err == nil {
		form.SetFieldValue(fieldNetwork, n.String())
		s.header.SetNetwork(n)
	}
	return s
}

// Init initializes the search screen
func (s *SearchScreen) Init() tea.Cmd {
	return nil
}

// Update handles screen updates
func (s *SearchScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Quit):
			return s, tea.Quit
		case key.Matches(msg, s.keyMap.Submit):
			return s, s.submit()
		case key.Matches(msg, s.keyMap.PrevPoint):
			s.chart.MoveCursor(-1)
			return s, nil
		case key.Matches(msg, s.keyMap.NextPoint):
			s.chart.MoveCursor(1)
			return s, nil
		case key.Matches(msg, s.keyMap.Logs):
			s.logs.Toggle()
			return s, nil
		}

		var cmd tea.Cmd
		s.form, cmd = s.form.Update(msg)
		s.header.SetNetwork(s.network())
		return s, cmd

	case ui.FetchResultMsg:
		if s.receive(msg) {
			s.card = nil
			if state := s.orch.State(); state.HasData() {
				card := tokenview.NewCard(*state.Pair)
				s.card = &card
			}
		}
		return s, nil

	case spinner.TickMsg:
		return s, s.tick(msg)
	}

	return s, s.logs.Update(msg)
}

// submit starts a lookup for the form's query. Blank queries are ignored.
func (s *SearchScreen) submit() tea.Cmd {
	q := tokenview.NewQuery(s.form.GetValue(fieldQuery), s.network())
	if q.Text == "" {
		return nil
	}
	s.logger.Debug("search submitted",
		zap.String("query", q.Text),
		zap.Stringer("network", q.Network),
		zap.Stringer("strategy", tokenview.Classify(q.Text)))

	s.card = nil
	return s.start(tokenview.SearchTrigger(q))
}

func (s *SearchScreen) network() tokenview.Network {
	n, err := tokenview.ParseNetwork(s.form.GetValue(fieldNetwork))
	if err != nil {
		return tokenview.NetworkUnset
	}
	return n
}

// View renders the search screen
func (s *SearchScreen) View() string {
	if s.width == 0 || s.height == 0 {
		return "Loading..."
	}

	body := s.emptyView(SearchPlaceholder)
	state := s.orch.State()
	switch {
	case state.Loading():
		body = style.MutedStyle.Render(fmt.Sprintf("%s Searching...", s.spinner.View()))
	case state.HasData() && s.card != nil:
		body = style.AdaptiveJoinHorizontal(s.width,
			style.PanelStyle.Render(renderCard(*s.card)),
			style.PanelStyle.Render(s.chart.View()),
		)
	}

	return style.ContainerStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.header.View(),
		s.form.View(),
		body,
		s.logs.View(),
		s.helpBar.View(),
	))
}

// SetSize sets the screen dimensions
func (s *SearchScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.form.SetWidth(style.AdaptiveWidth(width, 50))
	s.setSize(width, height)
}

// Close cancels the in-flight request
func (s *SearchScreen) Close() {
	s.close()
}

func renderCard(c tokenview.Card) string {
	var b strings.Builder

	b.WriteString(style.CardTitleStyle.Render(c.Title))
	b.WriteString("\n")
	b.WriteString(style.MutedStyle.Render(fmt.Sprintf("%s · %s", c.Chain, c.DEX)))
	b.WriteString("\n\n")

	for _, fields := range [][]tokenview.Field{c.Fields, c.Changes} {
		for _, f := range fields {
			b.WriteString(style.CardLabelStyle.Render(f.Label))
			b.WriteString(style.CardValueStyle.Render(f.Value))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if c.URL != "" {
		b.WriteString(style.LinkStyle.Render(c.URL))
	}
	return strings.TrimRight(b.String(), "\n")
}
