package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/compasshq/compass/internal/quiz"
	"github.com/compasshq/compass/internal/screen"
	"github.com/compasshq/compass/internal/services"
	"github.com/compasshq/compass/internal/store"
	"github.com/compasshq/compass/internal/ui/layout"
	"github.com/compasshq/compass/internal/ui/theme"
)

// historyLimit caps how many attempts are listed.
const historyLimit = 50

type historyLoadedMsg struct {
	Results []quiz.Result
	Err     error
}

// HistoryScreen displays past quiz attempts. Enter expands an attempt to
// show each question.
type HistoryScreen struct {
	repo     store.HistoryRepo
	userID   int
	results  []quiz.Result
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen for the signed-in user.
func New(svc *services.Services) *HistoryScreen {
	return &HistoryScreen{
		repo:     svc.History,
		userID:   svc.UserID(),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, userID := s.repo, s.userID
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		recs, err := repo.QuizResults(context.Background(), store.QueryOpts{UserID: userID, Limit: historyLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		results, err := quiz.FromRecords(recs)
		return historyLoadedMsg{Results: results, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Quiz History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
		case "enter", "space", " ":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.results) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Take an interest quiz to get started!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.results {
		var accuracy float64
		if r.Total > 0 {
			accuracy = float64(r.Score) / float64(r.Total) * 100
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-18s  %-6s  %d/%d  %.0f%%",
			prefix, r.CreatedAt.Format("Jan 02, 2006"), r.TopicName, r.Difficulty, r.Score, r.Total, accuracy)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderReview(r)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderReview(r quiz.Result) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("    " + r.QuizTitle))
	for _, item := range r.Review {
		b.WriteString("\n")
		mark, style := "✓", theme.Correct
		if !item.Correct {
			mark, style = "✗", theme.Incorrect
		}
		answer := item.SelectedOption()
		if answer == "" {
			answer = "(no answer)"
		}
		b.WriteString(style.Render(fmt.Sprintf("    %s %s", mark, item.Question)))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("      " + answer))
	}
	return b.String()
}
