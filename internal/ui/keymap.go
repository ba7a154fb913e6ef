package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application
type KeyMap struct {
	// Global navigation
	Quit      key.Binding
	ForceQuit key.Binding
	Back      key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Tab      key.Binding
	ShiftTab key.Binding

	// Application specific
	Search  key.Binding
	Gas     key.Binding
	Submit  key.Binding
	Refresh key.Binding
	Logs    key.Binding
	Help    key.Binding

	// Chart cursor
	PrevPoint key.Binding
	NextPoint key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Global navigation
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),

		// Application specific
		Search: key.NewBinding(
			key.WithKeys("s", "/"),
			key.WithHelp("s", "search"),
		),
		Gas: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "gas"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r/F5", "refresh"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "logs"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "all keys"),
		),

		PrevPoint: key.NewBinding(
			key.WithKeys("left", "h", "shift+left"),
			key.WithHelp("←", "prev point"),
		),
		NextPoint: key.NewBinding(
			key.WithKeys("right", "l", "shift+right"),
			key.WithHelp("→", "next point"),
		),
	}
}

// InputKeyMap is DefaultKeyMap for screens with a focused text input: only
// keys that cannot be typed stay bound.
func InputKeyMap() KeyMap {
	k := DefaultKeyMap()
	k.Quit = k.ForceQuit
	k.PrevPoint = key.NewBinding(
		key.WithKeys("shift+left", "ctrl+b"),
		key.WithHelp("shift+←", "prev point"),
	)
	k.NextPoint = key.NewBinding(
		key.WithKeys("shift+right", "ctrl+f"),
		key.WithHelp("shift+→", "next point"),
	)
	return k
}

// ShortHelp returns key help text for the current context
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

// ContextualHelp returns help text based on the current route
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteMainMenu:
		return []key.Binding{k.Up, k.Down, k.Enter, k.Search, k.Gas, k.Help, k.Quit}
	case RouteSearch:
		return []key.Binding{k.Submit, k.Tab, k.PrevPoint, k.NextPoint, k.Logs, k.Back, k.Quit}
	case RouteGas:
		return []key.Binding{k.Refresh, k.PrevPoint, k.NextPoint, k.Logs, k.Help, k.Back, k.Quit}
	default:
		return k.ShortHelp()
	}
}
