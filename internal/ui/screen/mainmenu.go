package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/tokenview/internal/ui"
	"github.com/rovshanmuradov/tokenview/internal/ui/component"
	"github.com/rovshanmuradov/tokenview/internal/ui/router"
	"github.com/rovshanmuradov/tokenview/internal/ui/style"
)

// MenuItem represents a menu item
type MenuItem struct {
	Label       string
	Description string
	Route       ui.Route
}

// MainMenuScreen represents the main menu screen
type MainMenuScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	helpBar *component.HelpBar

	selectedIndex int
	menuItems     []MenuItem
	subtitle      string

	titleStyle       lipgloss.Style
	menuItemStyle    lipgloss.Style
	selectedStyle    lipgloss.Style
	descriptionStyle lipgloss.Style
	headerStyle      lipgloss.Style
}

// NewMainMenuScreen creates a new main menu screen
func NewMainMenuScreen(services ui.ServiceProvider) *MainMenuScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()
	cfg := services.GetConfig()

	menuItems := []MenuItem{
		{
			Label:       "🔍 Token Search",
			Description: "Look up a token by address or ticker on DexScreener",
			Route:       ui.RouteSearch,
		},
		{
			Label:       "⛽ Gas Prices",
			Description: "Average gas price of recent blocks",
			Route:       ui.RouteGas,
		},
	}

	network := cfg.DefaultNetwork
	if network == "" {
		network = "any"
	}

	return &MainMenuScreen{
		keyMap:    keyMap,
		menuItems: menuItems,
		helpBar:   component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.RouteMainMenu)),
		subtitle:  fmt.Sprintf("Network: %s • Timeout: %s", network, cfg.RequestTimeout),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0).
			Align(lipgloss.Center),

		menuItemStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 2).
			Margin(0, 0, 1, 0),

		selectedStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Padding(0, 2).
			Margin(0, 0, 1, 0).
			Bold(true),

		descriptionStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Padding(0, 4).
			Margin(0, 0, 1, 0).
			Italic(true),

		headerStyle: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Padding(0, 2),
	}
}

// Init initializes the main menu screen
func (m *MainMenuScreen) Init() tea.Cmd {
	return nil
}

// Update handles screen updates
func (m *MainMenuScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msgKey, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msgKey, m.keyMap.Up):
		m.moveUp()

	case key.Matches(msgKey, m.keyMap.Down):
		m.moveDown()

	case key.Matches(msgKey, m.keyMap.Enter):
		return m, ui.Navigate(m.GetSelectedRoute())

	// Direct shortcuts
	case key.Matches(msgKey, m.keyMap.Search):
		return m, ui.Navigate(ui.RouteSearch)

	case key.Matches(msgKey, m.keyMap.Gas):
		return m, ui.Navigate(ui.RouteGas)

	case key.Matches(msgKey, m.keyMap.Help):
		m.helpBar.ToggleFull()
	}

	return m, nil
}

// View renders the main menu screen
func (m *MainMenuScreen) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(m.renderHeader())
	content.WriteString("\n\n")
	content.WriteString(m.renderMenu())
	content.WriteString("\n")
	content.WriteString(m.helpBar.SetWidth(m.width).View())

	result := content.String()
	if m.width > 80 {
		result = lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			result)
	}

	return result
}

// SetSize sets the screen dimensions
func (m *MainMenuScreen) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.helpBar.SetWidth(width)
}

func (m *MainMenuScreen) renderHeader() string {
	styledTitle := m.titleStyle.Width(m.width).Render("📈 TokenView")
	styledStatus := m.headerStyle.Width(m.width).Align(lipgloss.Center).Render(m.subtitle)
	return lipgloss.JoinVertical(lipgloss.Center, styledTitle, styledStatus)
}

func (m *MainMenuScreen) renderMenu() string {
	var menuItems []string

	for i, item := range m.menuItems {
		itemStyle := m.menuItemStyle
		if i == m.selectedIndex {
			itemStyle = m.selectedStyle
		}
		menuItems = append(menuItems, itemStyle.Render(item.Label))

		if i == m.selectedIndex {
			menuItems = append(menuItems, m.descriptionStyle.Render(item.Description))
		}
	}

	menuStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.DefaultPalette().Primary).
		Padding(2, 4).
		Margin(1, 0)

	return menuStyle.Render(strings.Join(menuItems, "\n"))
}

func (m *MainMenuScreen) moveUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	} else {
		m.selectedIndex = len(m.menuItems) - 1
	}
}

func (m *MainMenuScreen) moveDown() {
	if m.selectedIndex < len(m.menuItems)-1 {
		m.selectedIndex++
	} else {
		m.selectedIndex = 0
	}
}

// GetSelectedRoute returns the currently selected route
func (m *MainMenuScreen) GetSelectedRoute() ui.Route {
	if m.selectedIndex < len(m.menuItems) {
		return m.menuItems[m.selectedIndex].Route
	}
	return ui.RouteMainMenu
}
