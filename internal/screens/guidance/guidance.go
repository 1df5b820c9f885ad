// Package guidance is the personalized guidance screen.
package guidance

import (
	"context"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/compasshq/compass/internal/aiflow"
	"github.com/compasshq/compass/internal/guidance"
	"github.com/compasshq/compass/internal/screen"
	"github.com/compasshq/compass/internal/services"
	"github.com/compasshq/compass/internal/ui/components"
	"github.com/compasshq/compass/internal/ui/layout"
	"github.com/compasshq/compass/internal/ui/theme"
)

const (
	fieldCareers = iota
	fieldImpact
	fieldGeography
	fieldFinances
	fieldPersonality
)

type phase int

const (
	phaseForm phase = iota
	phaseLoading
	phaseResult
)

type suggestionsMsg struct {
	Careers []string
}

type guidanceMsg struct {
	Guidance *guidance.Guidance
	Err      error
}

// GuidanceScreen collects preferences and shows the generated advice.
type GuidanceScreen struct {
	svc     *services.Services
	phase   phase
	form    components.Form
	spinner spinner.Model
	text    string
	errMsg  string
	scroll  int
}

var _ screen.Screen = (*GuidanceScreen)(nil)
var _ screen.KeyHintProvider = (*GuidanceScreen)(nil)
var _ screen.EscapeHandler = (*GuidanceScreen)(nil)

// New creates the guidance screen.
func New(svc *services.Services) *GuidanceScreen {
	impact := components.NewTextInput("1-5", true, 1)
	impact.SetValue("3")
	return &GuidanceScreen{
		svc: svc,
		form: components.NewForm("Get Guidance",
			components.Field{Label: "Career options (comma separated)", Input: components.NewTextInput("e.g. Nurse, Data Analyst", false, 500)},
			components.Field{Label: "Importance of social impact (1-5)", Input: impact},
			components.Field{Label: "Geographical preference", Input: components.NewTextInput("e.g. Remote, Europe, my hometown", false, 200)},
			components.Field{Label: "Financial goals", Input: components.NewTextInput("e.g. pay off loans, save for a house", false, 300)},
			components.Field{Label: "Personality traits", Input: components.NewTextInput("e.g. introverted, detail oriented", false, 300)},
		),
		spinner: components.NewSpinner(),
	}
}

func (s *GuidanceScreen) Init() tea.Cmd {
	svc := s.svc
	return tea.Batch(s.form.Init(), func() tea.Msg {
		return suggestionsMsg{Careers: svc.SuggestedCareers(context.Background())}
	})
}

func (s *GuidanceScreen) Title() string {
	return "Personalized Guidance"
}

// HandlesEscape is true on the result view, where Esc returns to the form.
func (s *GuidanceScreen) HandlesEscape() bool {
	return s.phase == phaseResult
}

func (s *GuidanceScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case phaseResult:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Esc", Description: "Edit preferences"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Get guidance"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GuidanceScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case suggestionsMsg:
		if len(msg.Careers) > 0 && s.form.Value(fieldCareers) == "" {
			s.form.SetValue(fieldCareers, strings.Join(msg.Careers, ", "))
		}
		return s, nil

	case guidanceMsg:
		if s.phase != phaseLoading {
			return s, nil
		}
		if msg.Err != nil {
			s.phase = phaseForm
			s.errMsg = aiflow.UserMessage(msg.Err)
			return s, nil
		}
		s.phase = phaseResult
		s.text = msg.Guidance.Text
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

func (s *GuidanceScreen) input() guidance.Input {
	impact, _ := strconv.Atoi(strings.TrimSpace(s.form.Value(fieldImpact)))
	return guidance.Input{
		CareerOptions:          guidance.SplitOptions(s.form.Value(fieldCareers)),
		SocialImpactImportance: impact,
		GeographicalPreference: s.form.Value(fieldGeography),
		FinancialGoals:         s.form.Value(fieldFinances),
		PersonalityTraits:      s.form.Value(fieldPersonality),
	}
}

func (s *GuidanceScreen) submit() tea.Cmd {
	in, err := s.input().Normalize()
	if err != nil {
		s.errMsg = aiflow.UserMessage(err)
		return nil
	}
	s.errMsg = ""
	s.phase = phaseLoading
	svc := s.svc
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		g, err := svc.Guide(context.Background(), in)
		return guidanceMsg{Guidance: g, Err: err}
	})
}

func (s *GuidanceScreen) View(width, height int) string {
	contentWidth := min(width-8, 80)
	switch s.phase {
	case phaseLoading:
		return components.Loading(s.spinner, "Crafting your guidance... Weighing every option!", width, height)
	case phaseResult:
		return s.renderResult(contentWidth, height)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Plan your next move"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Share the careers you are weighing and what matters to you."))
	b.WriteString("\n\n")
	b.WriteString(s.form.View())
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Width(contentWidth).Render(s.errMsg))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Width(contentWidth).Render(b.String()))
}

func (s *GuidanceScreen) renderResult(width, height int) string {
	lines := strings.Split(components.RenderMarkdown(s.text, width), "\n")
	if s.scroll > len(lines)-height {
		s.scroll = max(0, len(lines)-height)
	}
	end := min(len(lines), s.scroll+height)
	return lipgloss.NewStyle().PaddingLeft(4).Render(strings.Join(lines[s.scroll:end], "\n"))
}
