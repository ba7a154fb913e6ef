package component

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/tokenview/internal/logger"
	"github.com/rovshanmuradov/tokenview/internal/ui/style"
	"go.uber.org/zap/zapcore"
)

const logTailSize = 50

// CompactLogViewer shows the tail of the in-memory log buffer. Hidden by
// default; while hidden it only reports the newest warning.
type CompactLogViewer struct {
	buffer   *logger.LogBuffer
	viewport viewport.Model
	minLevel zapcore.Level
	style    CompactLogStyle
	width    int
	height   int
	visible  bool
}

// CompactLogStyle contains all styling for the log viewer
type CompactLogStyle struct {
	container lipgloss.Style
	title     lipgloss.Style
	timestamp lipgloss.Style
	error     lipgloss.Style
	warning   lipgloss.Style
	info      lipgloss.Style
	debug     lipgloss.Style
}

// NewCompactLogViewer creates a log viewer over buffer, which may be nil
func NewCompactLogViewer(buffer *logger.LogBuffer) *CompactLogViewer {
	palette := style.DefaultPalette()

	return &CompactLogViewer{
		buffer:   buffer,
		minLevel: zapcore.InfoLevel,
		style: CompactLogStyle{
			container: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(palette.Info).
				Padding(0, 1).
				MarginTop(1),

			title: lipgloss.NewStyle().
				Foreground(palette.Info).
				Bold(true),

			timestamp: lipgloss.NewStyle().
				Foreground(palette.TextMuted),

			error: lipgloss.NewStyle().
				Foreground(palette.Error).
				Bold(true),

			warning: lipgloss.NewStyle().
				Foreground(palette.Warning).
				Bold(true),

			info: lipgloss.NewStyle().
				Foreground(palette.Info),

			debug: lipgloss.NewStyle().
				Foreground(palette.TextMuted),
		},
		viewport: viewport.New(50, 4),
	}
}

// SetSize sets the component dimensions
func (clv *CompactLogViewer) SetSize(width, height int) {
	clv.width = width
	clv.height = height
	clv.style.container = clv.style.container.Width(width - 4)

	viewportHeight := height - 3 // Border + title
	if viewportHeight < 2 {
		viewportHeight = 2
	}

	clv.viewport.Width = width - 6
	clv.viewport.Height = viewportHeight
}

// Toggle flips the visibility of the log pane
func (clv *CompactLogViewer) Toggle() {
	clv.visible = !clv.visible
}

// IsVisible returns whether the log pane is shown
func (clv *CompactLogViewer) IsVisible() bool {
	return clv.visible
}

// SetMinLevel hides entries below level
func (clv *CompactLogViewer) SetMinLevel(level zapcore.Level) {
	clv.minLevel = level
}

// Update handles viewport scrolling
func (clv *CompactLogViewer) Update(msg tea.Msg) tea.Cmd {
	if !clv.visible {
		return nil
	}

	var cmd tea.Cmd
	clv.viewport, cmd = clv.viewport.Update(msg)
	return cmd
}

// View renders the log pane, or the newest warning line when hidden
func (clv *CompactLogViewer) View() string {
	if !clv.visible {
		return clv.lastWarning()
	}

	clv.refresh()
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		clv.style.title.Render(fmt.Sprintf("Logs (≥ %s)", clv.minLevel)),
		clv.viewport.View(),
	)
	return clv.style.container.Render(content)
}

func (clv *CompactLogViewer) lastWarning() string {
	if clv.buffer == nil {
		return ""
	}
	entry, ok := clv.buffer.LastAtLeast(zapcore.WarnLevel)
	if !ok {
		return ""
	}
	return clv.formatLogEntry(entry)
}

func (clv *CompactLogViewer) refresh() {
	if clv.buffer == nil {
		clv.viewport.SetContent("No log buffer available")
		return
	}

	var lines []string
	for _, entry := range clv.buffer.GetRecentLogs(logTailSize) {
		if clv.shouldShowEntry(entry) {
			lines = append(lines, clv.formatLogEntry(entry))
		}
	}
	if len(lines) == 0 {
		clv.viewport.SetContent("No logs yet")
		return
	}

	clv.viewport.SetContent(strings.Join(lines, "\n"))
	clv.viewport.GotoBottom()
}

func (clv *CompactLogViewer) shouldShowEntry(entry logger.LogEntry) bool {
	level, err := zapcore.ParseLevel(strings.ToLower(entry.Level))
	if err != nil {
		level = zapcore.InfoLevel
	}
	return level >= clv.minLevel
}

func (clv *CompactLogViewer) formatLogEntry(entry logger.LogEntry) string {
	timestamp := clv.style.timestamp.Render(entry.Timestamp.Format("15:04:05"))

	var styled lipgloss.Style
	switch strings.ToLower(entry.Level) {
	case "error", "dpanic", "panic", "fatal":
		styled = clv.style.error
	case "warn", "warning":
		styled = clv.style.warning
	case "debug":
		styled = clv.style.debug
	default:
		styled = clv.style.info
	}

	msg := entry.Message
	if entry.Logger != "" {
		msg = entry.Logger + ": " + msg
	}
	return fmt.Sprintf("%s %s", timestamp, styled.Render(msg))
}

// GetHeight returns the component height for layout calculations
func (clv *CompactLogViewer) GetHeight() int {
	if !clv.visible {
		return 1
	}
	return clv.height
}
