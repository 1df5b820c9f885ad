package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/compasshq/compass/internal/screen"
	"github.com/compasshq/compass/internal/ui/theme"
)

// PlaceholderScreen is a "coming soon" screen for navigation entries that
// have no feature behind them yet.
type PlaceholderScreen struct {
	title       string
	description string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen with the given title and a one-line
// description of what the feature will do.
func New(title, description string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, description: description}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	body := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("╌╌ Coming Soon ╌╌") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render(p.description) +
		"\n\n" +
		theme.Hint.Render("This feature is being built. Check back later!")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
