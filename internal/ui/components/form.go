package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/compasshq/compass/internal/ui/theme"
)

// Field is one labelled input in a Form.
type Field struct {
	Label string
	Input TextInput
}

// Form is a vertical stack of labelled inputs followed by a submit button.
// Tab, Shift+Tab and the arrow keys move focus; Enter on the last field or
// the button submits.
type Form struct {
	Fields      []Field
	SubmitLabel string
	// Focus is the focused field index; len(Fields) means the button.
	Focus int
}

// SubmitMsg reports that a form was submitted.
type SubmitMsg struct{}

// NewForm creates a form with focus on the first field.
func NewForm(submitLabel string, fields ...Field) Form {
	f := Form{Fields: fields, SubmitLabel: submitLabel}
	f.focus(0)
	return f
}

// Init returns the cursor blink command for the focused field.
func (f *Form) Init() tea.Cmd {
	return f.focus(f.Focus)
}

func (f *Form) focus(i int) tea.Cmd {
	if i < 0 {
		i = 0
	}
	if i > len(f.Fields) {
		i = len(f.Fields)
	}
	f.Focus = i
	var cmd tea.Cmd
	for j := range f.Fields {
		if j == i {
			cmd = f.Fields[j].Input.Focus()
		} else {
			f.Fields[j].Input.Blur()
		}
	}
	return cmd
}

// Value returns the value of field i.
func (f Form) Value(i int) string {
	return f.Fields[i].Input.Value()
}

// SetValue sets the value of field i.
func (f *Form) SetValue(i int, v string) {
	f.Fields[i].Input.SetValue(v)
}

// Update handles focus movement and forwards other keys to the focused
// field. Submitting returns a command yielding SubmitMsg.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return f, f.focus((f.Focus + 1) % (len(f.Fields) + 1))
		case "shift+tab", "up":
			return f, f.focus((f.Focus + len(f.Fields)) % (len(f.Fields) + 1))
		case "enter":
			if f.Focus >= len(f.Fields)-1 {
				return f, func() tea.Msg { return SubmitMsg{} }
			}
			return f, f.focus(f.Focus + 1)
		}
	}

	if f.Focus >= len(f.Fields) {
		return f, nil
	}
	var cmd tea.Cmd
	f.Fields[f.Focus].Input, cmd = f.Fields[f.Focus].Input.Update(msg)
	return f, cmd
}

// View renders the form.
func (f Form) View() string {
	var b strings.Builder
	for i, field := range f.Fields {
		label := theme.InputLabel
		if i == f.Focus {
			label = theme.InputLabelFocused
		}
		b.WriteString(label.Render(field.Label))
		b.WriteString("\n")
		b.WriteString(field.Input.View())
		b.WriteString("\n\n")
	}
	b.WriteString(NewButton(f.SubmitLabel, f.Focus == len(f.Fields), nil).View())
	return b.String()
}
