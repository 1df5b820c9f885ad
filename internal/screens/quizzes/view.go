package quizzes

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/compasshq/compass/internal/quiz"
	"github.com/compasshq/compass/internal/ui/components"
	"github.com/compasshq/compass/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch s.session.Phase {
	case quiz.PhaseLoading:
		return components.Loading(s.spinner,
			fmt.Sprintf("Generating your %s quiz... Hang tight, the AI is thinking!", s.session.Topic.Name),
			width, height)
	case quiz.PhaseInProgress:
		return s.renderQuestion(width, height)
	case quiz.PhaseCompleted:
		return s.renderCompleted(width, height)
	}
	return s.renderTopics(width, height)
}

func (s *QuizScreen) renderTopics(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Choose a quiz topic"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Quizzes help us understand your interests and strengths."))
	b.WriteString("\n\n")

	cardWidth := min(width-8, 64)
	for i, t := range s.topics {
		accent := lipgloss.Color(t.Accent)
		var border color.Color = theme.Border
		if i == s.cursor {
			border = accent
		}
		body := lipgloss.NewStyle().Foreground(accent).Bold(true).Render(t.Name) + "\n" +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Description)
		b.WriteString(lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(cardWidth).
			Render(body))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.InputLabel.Render("Difficulty: "))
	for _, d := range difficulties {
		label := " " + string(d) + " "
		if d == s.session.Difficulty {
			b.WriteString(theme.ButtonActive.Render(label))
		} else {
			b.WriteString(theme.ButtonInactive.Render(label))
		}
		b.WriteString(" ")
	}

	if s.session.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Width(cardWidth).Render(s.session.Message))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	contentWidth := min(width-8, 72)
	var b strings.Builder

	b.WriteString(theme.Title.Render(s.session.Quiz.Title))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Question %d of %d", s.session.Index+1, s.session.Total())))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", s.session.Progress(), true, contentWidth).View())
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())
	b.WriteString("\n")
	b.WriteString(components.NewButton(nextLabel(s.session), s.session.CanAdvance(), nil).View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Width(contentWidth).Render(b.String()))
}

func (s *QuizScreen) renderCompleted(width, height int) string {
	res, err := s.session.Result()
	if err != nil {
		return ""
	}
	contentWidth := min(width-8, 76)

	var head strings.Builder
	head.WriteString(theme.Title.Render("Quiz Completed!"))
	head.WriteString("\n")
	head.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(res.Summary()))
	if s.saveStatus != "" {
		head.WriteString("\n")
		head.WriteString(theme.Hint.Render(s.saveStatus))
	}
	head.WriteString("\n\n")

	var lines []string
	for i, item := range res.Review {
		mark := theme.Correct.Render("✓")
		if !item.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		lines = append(lines, fmt.Sprintf("%s %d. %s", mark, i+1, item.Question))
		answer := item.SelectedOption()
		if answer == "" {
			answer = "(no answer)"
		}
		lines = append(lines, theme.Hint.Render("   Your answer: "+answer))
		if !item.Correct {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Success).Render("   Correct answer: "+item.CorrectOption()))
		}
		if item.Explanation != "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Width(contentWidth-3).Render("   "+item.Explanation))
		}
		lines = append(lines, "")
	}

	avail := height - lipgloss.Height(head.String()) - 2
	if avail < 3 {
		avail = 3
	}
	if s.reviewOffset > len(lines)-avail {
		s.reviewOffset = max(0, len(lines)-avail)
	}
	end := min(len(lines), s.reviewOffset+avail)
	review := strings.Join(lines[s.reviewOffset:end], "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Width(contentWidth).PaddingTop(1).Render(head.String()+review))
}
