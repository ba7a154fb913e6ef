package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/tokenview/internal/tokenview"
)

// Tea message types for UI communication

// RouterMsg represents navigation between screens
type RouterMsg struct {
	To Route
}

// FetchResultMsg carries a finished request back into the event loop.
// Owner identifies the orchestrator that issued it so a result can never
// land on a different screen instance.
type FetchResultMsg struct {
	Owner   *tokenview.Orchestrator
	Outcome tokenview.Outcome
}

// RefreshTickMsg asks a polling screen to fetch again
type RefreshTickMsg struct {
	Owner *tokenview.Orchestrator
	At    time.Time
}

// Navigate returns a command that emits a RouterMsg
func Navigate(route Route) tea.Cmd {
	return func() tea.Msg {
		return RouterMsg{To: route}
	}
}

// Route represents different screens in the application
type Route int

const (
	RouteMainMenu Route = iota
	RouteSearch
	RouteGas
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteMainMenu:
		return "main_menu"
	case RouteSearch:
		return "search"
	case RouteGas:
		return "gas"
	default:
		return "unknown"
	}
}

// ParseRoute maps a configured mode onto its screen
func ParseRoute(mode string) Route {
	switch mode {
	case "search":
		return RouteSearch
	case "gas":
		return RouteGas
	default:
		return RouteMainMenu
	}
}
