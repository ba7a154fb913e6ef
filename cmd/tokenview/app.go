package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/tokenview/internal/ui"
	"github.com/rovshanmuradov/tokenview/internal/ui/router"
	"github.com/rovshanmuradov/tokenview/internal/ui/screen"
)

// AppModel represents the main TUI application model
type AppModel struct {
	router   *router.Router
	services ui.ServiceProvider
	start    ui.Route
	width    int
	height   int
}

// NewAppModel creates the application model. The main menu is always the
// bottom of the stack, start is pushed on top when it names another screen.
func NewAppModel(services ui.ServiceProvider, start ui.Route) *AppModel {
	m := &AppModel{services: services, start: start}
	m.router = router.New(screen.NewMainMenuScreen(services), m.newScreen)
	return m
}

func (m *AppModel) newScreen(route ui.Route) router.Screen {
	switch route {
	case ui.RouteMainMenu:
		return screen.NewMainMenuScreen(m.services)
	case ui.RouteSearch:
		return screen.NewSearchScreen(m.services)
	case ui.RouteGas:
		return screen.NewGasScreen(m.services)
	default:
		return nil
	}
}

// Init initializes the application
func (m *AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Init()}
	if m.start != ui.RouteMainMenu {
		cmds = append(cmds, ui.Navigate(m.start))
	}
	return tea.Batch(cmds...)
}

// Update handles application-level updates
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.router.Close()
			return m, tea.Quit
		}
	}

	_, cmd := m.router.Update(msg)
	return m, cmd
}

// View renders the application
func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	return m.router.View()
}
