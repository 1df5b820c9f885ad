// Package dashboard is the signed-in home screen: sidebar navigation and
// summary cards.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/compasshq/compass/internal/router"
	"github.com/compasshq/compass/internal/screen"
	"github.com/compasshq/compass/internal/screens/guidance"
	"github.com/compasshq/compass/internal/screens/history"
	"github.com/compasshq/compass/internal/screens/placeholder"
	"github.com/compasshq/compass/internal/screens/prediction"
	"github.com/compasshq/compass/internal/screens/quizzes"
	"github.com/compasshq/compass/internal/services"
	"github.com/compasshq/compass/internal/store"
	"github.com/compasshq/compass/internal/ui/components"
	"github.com/compasshq/compass/internal/ui/layout"
	"github.com/compasshq/compass/internal/ui/theme"
)

const sidebarWidth = 30

// NavLabels are the sidebar entries in display order.
var NavLabels = []string{
	"Dashboard",
	"Interest Quizzes",
	"Career Prediction",
	"Personalized Guidance",
	"Career Profiles",
	"Job Market Analysis",
	"Scholarship News",
	"Sign Out",
}

type summaryMsg struct {
	Stats      store.QuizStats
	Prediction *store.PredictionRecord
	Guidance   *store.GuidanceRecord
	Err        error
}

// DashboardScreen is the home screen after sign-in.
type DashboardScreen struct {
	svc    *services.Services
	menu   components.Menu
	sum    summaryMsg
	loaded bool
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.Focuser = (*DashboardScreen)(nil)

// New creates the dashboard.
func New(svc *services.Services) *DashboardScreen {
	d := &DashboardScreen{svc: svc}

	push := func(s func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd { return router.Push(s()) }
	}
	icons := []string{"⌂", "?", "◎", "✦", "▤", "▲", "✉", "⏻"}
	actions := []func() tea.Cmd{
		func() tea.Cmd { return nil },
		push(func() screen.Screen { return quizzes.New(svc) }),
		push(func() screen.Screen { return prediction.New(svc) }),
		push(func() screen.Screen { return guidance.New(svc) }),
		push(func() screen.Screen {
			return placeholder.New("Career Profiles", "Browse detailed profiles of careers: day-to-day work, skills and salary ranges.")
		}),
		push(func() screen.Screen {
			return placeholder.New("Job Market Analysis", "See demand and growth trends for the careers you are considering.")
		}),
		push(func() screen.Screen {
			return placeholder.New("Scholarship News", "Stay up to date on scholarships that match your goals.")
		}),
		func() tea.Cmd {
			svc.SignOut(context.Background())
			return func() tea.Msg { return services.SignedOutMsg{} }
		},
	}

	items := make([]components.MenuItem, len(NavLabels))
	for i, label := range NavLabels {
		items[i] = components.MenuItem{Label: label, Icon: icons[i], Action: actions[i]}
	}
	d.menu = components.NewMenu(items)
	return d
}

func (d *DashboardScreen) Init() tea.Cmd {
	return d.load()
}

// Focus reloads the cards when returning from a feature screen.
func (d *DashboardScreen) Focus() tea.Cmd {
	return d.load()
}

func (d *DashboardScreen) load() tea.Cmd {
	repo := d.svc.History
	userID := d.svc.UserID()
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		var msg summaryMsg
		if msg.Stats, msg.Err = repo.QuizStats(ctx, userID); msg.Err != nil {
			return msg
		}
		if msg.Prediction, msg.Err = repo.LatestPrediction(ctx, userID); msg.Err != nil {
			return msg
		}
		msg.Guidance, msg.Err = repo.LatestGuidance(ctx, userID)
		return msg
	}
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "H", Description: "Quiz history"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		d.sum = msg
		d.loaded = true
		if msg.Err != nil {
			d.svc.Log().Warn("dashboard load failed", zap.Error(msg.Err))
		}
		return d, nil

	case tea.KeyPressMsg:
		if msg.String() == "h" && d.svc.History != nil {
			return d, router.Push(history.New(d.svc))
		}
	}

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) View(width, height int) string {
	brand := theme.SidebarBrand.Render("◈ " + layout.AppName)
	sidebar := theme.Sidebar.
		Width(sidebarWidth).
		Height(height).
		Render(brand + "\n\n" + d.menu.View())

	mainWidth := width - sidebarWidth - 2
	if mainWidth < 20 {
		mainWidth = 20
	}
	main := d.renderMain(mainWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, lipgloss.NewStyle().PaddingLeft(2).Render(main))
}

func (d *DashboardScreen) renderMain(width int) string {
	var b strings.Builder

	name := d.svc.UserName()
	if name == "" {
		name = "there"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Hello, " + name + "!"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Chart your course to success."))
	b.WriteString("\n\n")

	if !d.loaded {
		b.WriteString(theme.Hint.Render("Loading your progress..."))
		return b.String()
	}
	if d.sum.Err != nil {
		b.WriteString(theme.ErrorText.Render("Could not load your progress."))
		return b.String()
	}

	cardWidth := width - 4
	if !layout.IsCompactWidth(width+sidebarWidth) && cardWidth > 72 {
		cardWidth = 72
	}

	b.WriteString(card("Interest Quizzes", quizCard(d.sum.Stats), cardWidth))
	b.WriteString("\n")
	b.WriteString(card("Career Prediction", predictionCard(d.sum.Prediction), cardWidth))
	b.WriteString("\n")
	b.WriteString(card("Personalized Guidance", guidanceCard(d.sum.Guidance), cardWidth))
	return b.String()
}

func card(title, body string, width int) string {
	head := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(title)
	return theme.Card.Width(width).Padding(0, 2).Render(head + "\n" + body)
}

func quizCard(st store.QuizStats) string {
	if st.Attempts == 0 {
		return theme.Hint.Render("No quizzes yet. Discover your interests with a quick quiz.")
	}
	pct := 0
	if st.Answered > 0 {
		pct = st.Correct * 100 / st.Answered
	}
	return fmt.Sprintf("%d quizzes taken · %d of %d answers correct (%d%%)", st.Attempts, st.Correct, st.Answered, pct)
}

func predictionCard(p *store.PredictionRecord) string {
	if p == nil || len(p.Careers) == 0 {
		return theme.Hint.Render("No prediction yet. Tell us about yourself to see matching careers.")
	}
	return "Top matches: " + lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Join(p.Careers, ", "))
}

func guidanceCard(g *store.GuidanceRecord) string {
	if g == nil {
		return theme.Hint.Render("No guidance yet. Share your preferences to get personalized advice.")
	}
	return "Latest guidance for " + strings.Join(g.CareerOptions, ", ") + "\n" + theme.Hint.Render(firstLine(g.Text, 80))
}

// firstLine returns the first non-empty line of markdown text, cut to max
// runes.
func firstLine(s string, max int) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "#*- "))
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > max {
			return string(r[:max-1]) + "…"
		}
		return line
	}
	return ""
}
