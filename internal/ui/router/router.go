package router

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/tokenview/internal/ui"
)

// Screen represents a screen that can be navigated to
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Closer is implemented by screens that hold in-flight work. Close is called
// when the screen leaves the stack.
type Closer interface {
	Close()
}

// Factory builds the screen for a route, nil for unknown routes
type Factory func(route ui.Route) Screen

// Router manages navigation between screens using a stack-based approach
type Router struct {
	stack   []Screen
	factory Factory
	width   int
	height  int
}

// New creates a new router with the initial screen
func New(initialScreen Screen, factory Factory) *Router {
	return &Router{
		stack:   []Screen{initialScreen},
		factory: factory,
	}
}

// Init initializes the router
func (r *Router) Init() tea.Cmd {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1].Init()
}

// Update processes messages and updates the current screen
func (r *Router) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle router-specific messages
	switch msg := msg.(type) {
	case ui.RouterMsg:
		return r, r.Navigate(msg.To)

	case tea.WindowSizeMsg:
		r.SetSize(msg.Width, msg.Height)
		return r, nil

	case tea.KeyMsg:
		if msg.String() == "esc" && len(r.stack) > 1 {
			return r, r.Back()
		}
	}

	// Update current screen
	if len(r.stack) == 0 {
		return r, nil
	}
	currentScreen := r.stack[len(r.stack)-1]
	updatedScreen, cmd := currentScreen.Update(msg)
	r.stack[len(r.stack)-1] = updatedScreen

	return r, cmd
}

// View renders the current screen
func (r *Router) View() string {
	if len(r.stack) == 0 {
		return "No screen available"
	}
	return r.stack[len(r.stack)-1].View()
}

// SetSize sets the size for the router and current screen
func (r *Router) SetSize(width, height int) {
	r.width = width
	r.height = height

	if len(r.stack) > 0 {
		r.stack[len(r.stack)-1].SetSize(width, height)
	}
}

// Push adds a new screen to the navigation stack
func (r *Router) Push(screen Screen) tea.Cmd {
	screen.SetSize(r.width, r.height)
	r.stack = append(r.stack, screen)
	return screen.Init()
}

// Pop removes the current screen from the stack
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil // Can't pop the last screen
	}

	closeScreen(r.stack[len(r.stack)-1])
	r.stack = r.stack[:len(r.stack)-1]

	currentScreen := r.stack[len(r.stack)-1]
	currentScreen.SetSize(r.width, r.height)
	return currentScreen.Init()
}

// Replace replaces the current screen with a new one
func (r *Router) Replace(screen Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(screen)
	}

	closeScreen(r.stack[len(r.stack)-1])
	screen.SetSize(r.width, r.height)
	r.stack[len(r.stack)-1] = screen
	return screen.Init()
}

// Navigate builds the route's screen. The main menu replaces the whole stack,
// anything else is pushed.
func (r *Router) Navigate(route ui.Route) tea.Cmd {
	if r.factory == nil {
		return nil
	}
	screen := r.factory(route)
	if screen == nil {
		return nil
	}
	if route == ui.RouteMainMenu {
		r.Clear()
		return r.Replace(screen)
	}
	return r.Push(screen)
}

// Back navigates back to the previous screen
func (r *Router) Back() tea.Cmd {
	return r.Pop()
}

// Current returns the current screen
func (r *Router) Current() Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the current navigation depth
func (r *Router) Depth() int {
	return len(r.stack)
}

// Clear removes all screens except the first one
func (r *Router) Clear() {
	for len(r.stack) > 1 {
		closeScreen(r.stack[len(r.stack)-1])
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// CanGoBack returns true if there are screens to go back to
func (r *Router) CanGoBack() bool {
	return len(r.stack) > 1
}

// Close closes every screen on the stack
func (r *Router) Close() {
	for i := len(r.stack) - 1; i >= 0; i-- {
		closeScreen(r.stack[i])
	}
}

func closeScreen(s Screen) {
	if c, ok := s.(Closer); ok {
		c.Close()
	}
}
