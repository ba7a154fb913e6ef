package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/tokenview/internal/ui/style"
)

// FieldType represents the type of form field
type FieldType int

const (
	FieldTypeText FieldType = iota
	FieldTypeSelect
)

// FormField represents a single form field
type FormField struct {
	Name        string
	Label       string
	Type        FieldType
	Value       string
	Options     []string // For select fields
	Placeholder string

	textInput   textinput.Model
	selectedIdx int
}

// Form is a vertical list of fields. Submission is left to the owner, the
// form never consumes enter.
type Form struct {
	fields     []FormField
	focusIndex int
	width      int

	labelStyle   lipgloss.Style
	inputStyle   lipgloss.Style
	focusedStyle lipgloss.Style
	hintStyle    lipgloss.Style
}

// NewForm creates a new form component
func NewForm() *Form {
	palette := style.DefaultPalette()

	return &Form{
		fields: make([]FormField, 0),

		labelStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true).
			MarginRight(1),

		inputStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		focusedStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary),

		hintStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
	}
}

// AddField adds a field to the form
func (f *Form) AddField(name string, fieldType FieldType, label, placeholder string) *Form {
	ti := textinput.New()
	ti.Width = 40
	ti.Placeholder = placeholder

	f.fields = append(f.fields, FormField{
		Name:        name,
		Label:       label,
		Type:        fieldType,
		Placeholder: placeholder,
		textInput:   ti,
	})

	if len(f.fields) == 1 {
		f.focus(0)
	}
	return f
}

// SetFieldOptions sets options for select fields, selecting the first
func (f *Form) SetFieldOptions(name string, options []string) *Form {
	if field := f.field(name); field != nil && field.Type == FieldTypeSelect {
		field.Options = options
		field.selectedIdx = 0
		if len(options) > 0 {
			field.Value = options[0]
		}
	}
	return f
}

// SetFieldValue sets the value of a field. For select fields the value must
// be one of the options.
func (f *Form) SetFieldValue(name, value string) *Form {
	field := f.field(name)
	if field == nil {
		return f
	}
	switch field.Type {
	case FieldTypeSelect:
		for i, opt := range field.Options {
			if opt == value {
				field.selectedIdx = i
				field.Value = value
			}
		}
	default:
		field.Value = value
		field.textInput.SetValue(value)
	}
	return f
}

// GetValue returns the value of a specific field
func (f *Form) GetValue(name string) string {
	if field := f.field(name); field != nil {
		return field.Value
	}
	return ""
}

// Focused returns the name of the focused field
func (f *Form) Focused() string {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[f.focusIndex].Name
}

// SetWidth sets the form width
func (f *Form) SetWidth(width int) *Form {
	f.width = width
	inputWidth := width - 4 // Account for padding and borders
	if inputWidth > 10 {
		for i := range f.fields {
			f.fields[i].textInput.Width = inputWidth
		}
	}
	return f
}

// Update handles focus movement, select cycling and text input
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, nil
	}

	field := &f.fields[f.focusIndex]

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab":
			f.focus((f.focusIndex + 1) % len(f.fields))
			return f, nil
		case "shift+tab":
			f.focus((f.focusIndex - 1 + len(f.fields)) % len(f.fields))
			return f, nil
		case "up", "down", " ":
			if field.Type == FieldTypeSelect {
				delta := 1
				if msg.String() == "up" {
					delta = -1
				}
				f.cycleOption(field, delta)
				return f, nil
			}
		case "enter":
			return f, nil
		}
	}

	if field.Type != FieldTypeText {
		return f, nil
	}

	var cmd tea.Cmd
	field.textInput, cmd = field.textInput.Update(msg)
	field.Value = field.textInput.Value()
	return f, cmd
}

// View renders the form
func (f *Form) View() string {
	var content strings.Builder

	for i, field := range f.fields {
		content.WriteString(f.labelStyle.Render(field.Label))
		content.WriteString("\n")

		fieldStyle := f.inputStyle
		if i == f.focusIndex {
			fieldStyle = f.focusedStyle
		}

		switch field.Type {
		case FieldTypeSelect:
			text := field.Value
			if i == f.focusIndex {
				text += f.hintStyle.Render(" ▲▼")
			}
			content.WriteString(fieldStyle.Render(text))
		default:
			content.WriteString(fieldStyle.Render(field.textInput.View()))
		}
		content.WriteString("\n")
	}

	return content.String()
}

func (f *Form) field(name string) *FormField {
	for i := range f.fields {
		if f.fields[i].Name == name {
			return &f.fields[i]
		}
	}
	return nil
}

func (f *Form) focus(index int) {
	f.fields[f.focusIndex].textInput.Blur()
	f.focusIndex = index
	if f.fields[index].Type == FieldTypeText {
		f.fields[index].textInput.Focus()
	}
}

func (f *Form) cycleOption(field *FormField, delta int) {
	if len(field.Options) == 0 {
		return
	}
	n := len(field.Options)
	field.selectedIdx = (field.selectedIdx + delta + n) % n
	field.Value = field.Options[field.selectedIdx]
}
