// Package prediction is the career prediction screen: a profile form, the
// AI call and the predicted careers.
package prediction

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/compasshq/compass/internal/aiflow"
	"github.com/compasshq/compass/internal/career"
	"github.com/compasshq/compass/internal/profile"
	"github.com/compasshq/compass/internal/screen"
	"github.com/compasshq/compass/internal/services"
	"github.com/compasshq/compass/internal/ui/components"
	"github.com/compasshq/compass/internal/ui/layout"
	"github.com/compasshq/compass/internal/ui/theme"
)

const (
	fieldSkills = iota
	fieldEducation
	fieldExperience
	fieldInterests
)

type phase int

const (
	phaseForm phase = iota
	phaseLoading
	phaseResult
)

type profileLoadedMsg struct {
	Profile profile.Profile
}

type predictionMsg struct {
	Prediction *career.Prediction
	Err        error
}

// PredictionScreen collects a profile and shows predicted careers.
type PredictionScreen struct {
	svc     *services.Services
	phase   phase
	form    components.Form
	spinner spinner.Model
	result  *career.Prediction
	errMsg  string
	scroll  int
}

var _ screen.Screen = (*PredictionScreen)(nil)
var _ screen.KeyHintProvider = (*PredictionScreen)(nil)
var _ screen.EscapeHandler = (*PredictionScreen)(nil)

// New creates the prediction screen.
func New(svc *services.Services) *PredictionScreen {
	return &PredictionScreen{
		svc: svc,
		form: components.NewForm("Predict My Career",
			components.Field{Label: "Skills", Input: components.NewTextInput("e.g. programming, public speaking, drawing", false, 500)},
			components.Field{Label: "Education", Input: components.NewTextInput("e.g. BSc Biology, high school", false, 500)},
			components.Field{Label: "Experience", Input: components.NewTextInput("e.g. 2 years retail, volunteer tutor", false, 500)},
			components.Field{Label: "Interests & Hobbies", Input: components.NewTextInput("e.g. chess, hiking, music", false, 500)},
		),
		spinner: components.NewSpinner(),
	}
}

func (s *PredictionScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.form.Init()}
	if s.svc.Profiles != nil && s.svc.UserID() != 0 {
		profiles, userID := s.svc.Profiles, s.svc.UserID()
		cmds = append(cmds, func() tea.Msg {
			p, err := profiles.Get(context.Background(), userID)
			if err != nil {
				return nil
			}
			return profileLoadedMsg{Profile: p}
		})
	}
	return tea.Batch(cmds...)
}

func (s *PredictionScreen) Title() string {
	return "Career Prediction"
}

// HandlesEscape is true on the result view, where Esc returns to the form.
func (s *PredictionScreen) HandlesEscape() bool {
	return s.phase == phaseResult
}

func (s *PredictionScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case phaseResult:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Esc", Description: "Edit profile"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Predict"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PredictionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		p := msg.Profile
		for i, v := range []string{p.Skills, p.Education, p.Experience, p.Interests} {
			if s.form.Value(i) == "" {
				s.form.SetValue(i, v)
			}
		}
		return s, nil

	case predictionMsg:
		if s.phase != phaseLoading {
			return s, nil
		}
		if msg.Err != nil {
			s.phase = phaseForm
			s.errMsg = aiflow.UserMessage(msg.Err)
			return s, nil
		}
		s.phase = phaseResult
		s.result = msg.Prediction
		s.scroll = 0
		return s, nil

	case spinner.TickMsg:
		if s.phase != phaseLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case components.SubmitMsg:
		return s, s.submit()

	case tea.KeyPressMsg:
		switch s.phase {
		case phaseResult:
			switch msg.String() {
			case "esc":
				s.phase = phaseForm
				return s, s.form.Init()
			case "up", "k":
				if s.scroll > 0 {
					s.scroll--
				}
			case "down", "j":
				s.scroll++
			}
			return s, nil
		case phaseLoading:
			return s, nil
		}
	}

	if s.phase != phaseForm {
		return s, nil
	}
	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	return s, cmd
}

func (s *PredictionScreen) submit() tea.Cmd {
	p := profile.Profile{
		Skills:     s.form.Value(fieldSkills),
		Education:  s.form.Value(fieldEducation),
		Experience: s.form.Value(fieldExperience),
		Interests:  s.form.Value(fieldInterests),
	}
	s.errMsg = ""
	s.phase = phaseLoading
	svc := s.svc
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		pred, err := svc.PredictCareers(context.Background(), p)
		return predictionMsg{Prediction: pred, Err: err}
	})
}

func (s *PredictionScreen) View(width, height int) string {
	contentWidth := min(width-8, 80)
	switch s.phase {
	case phaseLoading:
		return components.Loading(s.spinner, "Analyzing your profile... The AI is charting your course!", width, height)
	case phaseResult:
		return s.renderResult(contentWidth, height)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Discover careers that fit you"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Tell us about yourself. Your quiz answers are included automatically."))
	b.WriteString("\n\n")
	b.WriteString(s.form.View())
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Width(contentWidth).Render(s.errMsg))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Width(contentWidth).Render(b.String()))
}

func (s *PredictionScreen) renderResult(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Your predicted careers"))
	b.WriteString("\n\n")
	for i, c := range s.result.Careers {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(
			fmt.Sprintf("  %d. %s", i+1, c)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Why these careers"))
	b.WriteString("\n")
	b.WriteString(components.RenderMarkdown(s.result.Reasoning, width))

	lines := strings.Split(b.String(), "\n")
	if s.scroll > len(lines)-height {
		s.scroll = max(0, len(lines)-height)
	}
	end := min(len(lines), s.scroll+height)
	return lipgloss.NewStyle().PaddingLeft(4).Render(strings.Join(lines[s.scroll:end], "\n"))
}
