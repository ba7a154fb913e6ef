package component

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/tokenview/internal/ui/style"
)

// HelpBar shows the key bindings of the current screen. The bindings go on a
// single line while they fit, otherwise they are laid out in as few rows as
// the width allows.
type HelpBar struct {
	model    help.Model
	bindings []key.Binding
	width    int

	containerStyle lipgloss.Style
}

// NewHelpBar creates a new help bar component
func NewHelpBar() *HelpBar {
	palette := style.DefaultPalette()

	model := help.New()
	model.ShortSeparator = " • "
	model.FullSeparator = "   "
	model.Styles.ShortKey = lipgloss.NewStyle().Foreground(palette.Primary).Bold(true)
	model.Styles.ShortDesc = lipgloss.NewStyle().Foreground(palette.TextMuted)
	model.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(palette.TextMuted)
	model.Styles.FullKey = model.Styles.ShortKey
	model.Styles.FullDesc = model.Styles.ShortDesc
	model.Styles.FullSeparator = model.Styles.ShortSeparator
	model.Styles.Ellipsis = model.Styles.ShortSeparator

	return &HelpBar{
		model: model,
		width: 80,
		containerStyle: lipgloss.NewStyle().
			Padding(0, 1).
			Margin(1, 0, 0, 0),
	}
}

// SetKeyBindings sets the key bindings to display. Disabled bindings and
// bindings without help text are skipped.
func (h *HelpBar) SetKeyBindings(bindings []key.Binding) *HelpBar {
	filtered := make([]key.Binding, 0, len(bindings))
	for _, b := range bindings {
		if b.Enabled() && b.Help().Key != "" && b.Help().Desc != "" {
			filtered = append(filtered, b)
		}
	}
	h.bindings = filtered
	return h
}

// SetWidth sets the help bar width
func (h *HelpBar) SetWidth(width int) *HelpBar {
	h.width = width
	return h
}

// ToggleFull switches between the single line and the full column layout.
func (h *HelpBar) ToggleFull() {
	h.model.ShowAll = !h.model.ShowAll
}

// ShowingFull reports whether the column layout is forced
func (h *HelpBar) ShowingFull() bool {
	return h.model.ShowAll
}

// View renders the help bar
func (h *HelpBar) View() string {
	if len(h.bindings) == 0 {
		return ""
	}

	inner := h.width - h.containerStyle.GetHorizontalFrameSize()
	var content string
	if !h.model.ShowAll && h.measure(func(m help.Model) string { return m.ShortHelpView(h.bindings) }) <= inner {
		content = h.model.ShortHelpView(h.bindings)
	} else {
		content = h.columnsView(inner)
	}
	return h.containerStyle.Width(h.width).Render(content)
}

// columnsView picks the fewest rows whose column layout fits in width.
// Anything still too wide is cut by help.Model with an ellipsis.
func (h *HelpBar) columnsView(width int) string {
	rows := len(h.bindings)
	for r := 1; r < len(h.bindings); r++ {
		groups := columns(h.bindings, r)
		if h.measure(func(m help.Model) string { return m.FullHelpView(groups) }) <= width {
			rows = r
			break
		}
	}
	// A single row lays every binding out as its own column; at least two rows
	// keep the full view distinct from the short one.
	if h.model.ShowAll && rows < 2 && len(h.bindings) > 1 {
		rows = 2
	}

	m := h.model
	m.Width = width
	return m.FullHelpView(columns(h.bindings, rows))
}

func (h *HelpBar) measure(view func(help.Model) string) int {
	m := h.model
	m.Width = 0
	return lipgloss.Width(view(m))
}

// columns splits bindings into groups of at most rows entries
func columns(bindings []key.Binding, rows int) [][]key.Binding {
	groups := make([][]key.Binding, 0, (len(bindings)+rows-1)/rows)
	for start := 0; start < len(bindings); start += rows {
		end := start + rows
		if end > len(bindings) {
			end = len(bindings)
		}
		groups = append(groups, bindings[start:end])
	}
	return groups
}
