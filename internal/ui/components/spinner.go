package components

import (
	"charm.land/bubbles/v2/spinner"
	"charm.land/lipgloss/v2"

	"github.com/compasshq/compass/internal/ui/theme"
)

// NewSpinner returns the spinner shown while the AI is working.
func NewSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary)),
	)
}

// Loading renders a spinner next to a message, centered in the content
// area.
func Loading(s spinner.Model, message string, width, height int) string {
	line := s.View() + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(message)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, line)
}
