package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/compasshq/compass/internal/ui/theme"
)

// NoChoice marks a MultiChoice with nothing chosen yet.
const NoChoice = -1

// MultiChoice is a multiple-choice selector. The cursor moves with the
// arrow keys; Enter or Space chooses the option under it. Choosing again is
// allowed until Reveal is set.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int
	Chosen   int

	// Reveal shows CorrectIndex and locks the choice.
	Reveal       bool
	CorrectIndex int
}

// NewMultiChoice creates a new multiple-choice component with chosen
// preselected (NoChoice for none).
func NewMultiChoice(question string, options []string, chosen int) MultiChoice {
	cursor := 0
	if chosen >= 0 && chosen < len(options) {
		cursor = chosen
	}
	return MultiChoice{
		Question:     question,
		Options:      options,
		Cursor:       cursor,
		Chosen:       chosen,
		CorrectIndex: NoChoice,
	}
}

// ChoiceMsg reports that the user chose an option.
type ChoiceMsg struct {
	Index int
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Reveal {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "space", " ", "enter":
		return m.choose(m.Cursor)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if i := int(key[0] - '1'); i < len(m.Options) {
			m.Cursor = i
			return m.choose(i)
		}
	}

	return m, nil
}

func (m MultiChoice) choose(i int) (MultiChoice, tea.Cmd) {
	m.Chosen = i
	return m, func() tea.Msg { return ChoiceMsg{Index: i} }
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Reveal {
			prefix = "▸ "
		}
		mark := "○"
		if i == m.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %c)  %s", prefix, mark, 'A'+rune(i), opt)

		var style lipgloss.Style
		switch {
		case m.Reveal && i == m.CorrectIndex:
			style = theme.Correct
		case m.Reveal && i == m.Chosen:
			style = theme.Incorrect
		case m.Reveal:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Chosen:
			style = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
