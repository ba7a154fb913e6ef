package component

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/tokenview/internal/tokenview"
	"github.com/rovshanmuradov/tokenview/internal/ui/style"
)

// StatusHeader shows the active view, network filter and fetch status
type StatusHeader struct {
	title    string
	network  tokenview.Network
	state    tokenview.ViewState
	duration time.Duration
	spinner  string
	width    int
	style    StatusHeaderStyle
}

// StatusHeaderStyle contains all styling for the status header
type StatusHeaderStyle struct {
	container lipgloss.Style
	title     lipgloss.Style
	muted     lipgloss.Style
	ok        lipgloss.Style
	bad       lipgloss.Style
	busy      lipgloss.Style
}

// NewStatusHeader creates a new status header component
func NewStatusHeader(title string) *StatusHeader {
	palette := style.DefaultPalette()

	return &StatusHeader{
		title: title,
		style: StatusHeaderStyle{
			container: lipgloss.NewStyle().
				Foreground(palette.Text).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(palette.Primary).
				Padding(0, 2).
				MarginBottom(1),

			title: lipgloss.NewStyle().
				Foreground(palette.Primary).
				Bold(true),

			muted: lipgloss.NewStyle().
				Foreground(palette.TextSecondary),

			ok: lipgloss.NewStyle().
				Foreground(palette.Success).
				Bold(true),

			bad: lipgloss.NewStyle().
				Foreground(palette.Error).
				Bold(true),

			busy: lipgloss.NewStyle().
				Foreground(palette.Warning),
		},
	}
}

// SetNetwork updates the network filter display
func (sh *StatusHeader) SetNetwork(n tokenview.Network) {
	sh.network = n
}

// SetState updates the fetch status from a view state
func (sh *StatusHeader) SetState(s tokenview.ViewState, took time.Duration) {
	sh.state = s
	if !s.Loading() {
		sh.duration = took
	}
}

// SetSpinner sets the frame shown while a fetch is in flight
func (sh *StatusHeader) SetSpinner(frame string) {
	sh.spinner = frame
}

// SetWidth sets the component width for responsive layout
func (sh *StatusHeader) SetWidth(width int) {
	sh.width = width
	sh.style.container = sh.style.container.Width(width - 4)
}

// View renders the status header
func (sh *StatusHeader) View() string {
	content := lipgloss.JoinHorizontal(
		lipgloss.Left,
		sh.style.title.Render(sh.title),
		" | ",
		sh.style.muted.Render(fmt.Sprintf("Network: %s", sh.network)),
		" | ",
		sh.renderStatus(),
	)

	return sh.style.container.Render(content)
}

func (sh *StatusHeader) renderStatus() string {
	switch sh.state.Phase {
	case tokenview.PhaseLoading:
		return sh.style.busy.Render(fmt.Sprintf("%s Loading", sh.spinner))
	case tokenview.PhasePopulated:
		return sh.style.ok.Render(fmt.Sprintf("● Ready (%dms)", sh.duration.Milliseconds()))
	case tokenview.PhaseEmpty:
		if sh.state.Reason == tokenview.ReasonEmptyResult {
			return sh.style.muted.Render("○ No data")
		}
		return sh.style.bad.Render(fmt.Sprintf("● %s", sh.state.Reason))
	default:
		return sh.style.muted.Render("○ Idle")
	}
}

// GetHeight returns the component height for layout calculations
func (sh *StatusHeader) GetHeight() int {
	return 4 // Border + content + margin
}
