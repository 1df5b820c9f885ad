// Package quizzes is the interest quiz screen: topic selection, generation,
// answering and the final review.
package quizzes

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/compasshq/compass/internal/quiz"
	"github.com/compasshq/compass/internal/quizgen"
	"github.com/compasshq/compass/internal/screen"
	"github.com/compasshq/compass/internal/services"
	"github.com/compasshq/compass/internal/ui/components"
	"github.com/compasshq/compass/internal/ui/layout"
)

// quizLoadedMsg carries a generated quiz. Seq ties it to the attempt that
// requested it.
type quizLoadedMsg struct {
	Seq  int
	Quiz *quizgen.Quiz
	Err  error
}

type resultSavedMsg struct {
	Err error
}

var difficulties = []quizgen.Difficulty{quizgen.DifficultyEasy, quizgen.DifficultyMedium, quizgen.DifficultyHard}

// QuizScreen runs one quiz session at a time.
type QuizScreen struct {
	svc     *services.Services
	session *quiz.Session
	topics  []quiz.Topic
	cursor  int
	seq     int
	// cancel stops the in-flight generation, if any.
	cancel context.CancelFunc

	spinner spinner.Model
	choice  components.MultiChoice

	reviewOffset int
	saveStatus   string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates the quiz screen at topic selection.
func New(svc *services.Services) *QuizScreen {
	return &QuizScreen{
		svc:     svc,
		session: quiz.NewSession(),
		topics:  quiz.Topics(),
		spinner: components.NewSpinner(),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Interest Quizzes"
}

// HandlesEscape is true while a quiz is loading, running or reviewed, so
// Esc goes back to topic selection instead of leaving the screen.
func (s *QuizScreen) HandlesEscape() bool {
	switch s.session.Phase {
	case quiz.PhaseLoading, quiz.PhaseInProgress, quiz.PhaseCompleted:
		return true
	}
	return false
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.session.Phase {
	case quiz.PhaseLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case quiz.PhaseInProgress:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Choose"},
			{Key: "N", Description: nextLabel(s.session)},
			{Key: "Esc", Description: "Back to topics"},
		}
	case quiz.PhaseCompleted:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "R", Description: "Take another quiz"},
			{Key: "Esc", Description: "Back to topics"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Topic"},
		{Key: "←→", Description: "Difficulty"},
		{Key: "Enter", Description: "Start quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

func nextLabel(sess *quiz.Session) string {
	if sess.IsLast() {
		return "Finish Quiz"
	}
	return "Next Question"
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizLoadedMsg:
		return s, s.handleLoaded(msg)

	case resultSavedMsg:
		if msg.Err != nil {
			s.saveStatus = "Could not save this result."
			s.svc.Log().Warn("save quiz result failed", zap.Error(msg.Err))
		} else {
			s.saveStatus = "Saved to your history."
		}
		return s, nil

	case spinner.TickMsg:
		if s.session.Phase != quiz.PhaseLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case components.ChoiceMsg:
		if err := s.session.Select(msg.Index); err != nil {
			s.svc.Log().Debug("select ignored", zap.Error(err))
		}
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch s.session.Phase {
	case quiz.PhaseLoading:
		if key == "esc" {
			s.stopGeneration()
			s.session.Reset()
		}

	case quiz.PhaseTopicSelection:
		switch key {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.topics)-1 {
				s.cursor++
			}
		case "left", "h":
			s.shiftDifficulty(-1)
		case "right", "l":
			s.shiftDifficulty(1)
		case "enter":
			return s.start()
		}

	case quiz.PhaseInProgress:
		switch key {
		case "esc":
			s.session.Reset()
			return nil
		case "n", "tab":
			return s.next()
		case "enter":
			if s.choice.Chosen == s.choice.Cursor && s.session.CanAdvance() {
				return s.next()
			}
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		return cmd

	case quiz.PhaseCompleted:
		switch key {
		case "esc", "r":
			s.session.Reset()
			s.saveStatus = ""
		case "up", "k":
			if s.reviewOffset > 0 {
				s.reviewOffset--
			}
		case "down", "j":
			s.reviewOffset++
		}
	}
	return nil
}

func (s *QuizScreen) shiftDifficulty(delta int) {
	i := 0
	for j, d := range difficulties {
		if d == s.session.Difficulty {
			i = j
		}
	}
	i = (i + delta + len(difficulties)) % len(difficulties)
	s.session.Difficulty = difficulties[i]
}

func (s *QuizScreen) start() tea.Cmd {
	if s.svc.Quizzes == nil {
		s.session.Message = services.ErrAIUnavailable.Error()
		return nil
	}
	s.stopGeneration()
	s.session.Start(s.topics[s.cursor])
	s.seq++
	seq := s.seq
	in := s.session.Input()
	gen := s.svc.Quizzes
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	return tea.Batch(
		s.spinner.Tick,
		func() tea.Msg {
			defer cancel()
			q, err := gen.Generate(ctx, in)
			return quizLoadedMsg{Seq: seq, Quiz: q, Err: err}
		},
	)
}

func (s *QuizScreen) stopGeneration() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *QuizScreen) handleLoaded(msg quizLoadedMsg) tea.Cmd {
	if msg.Seq != s.seq || s.session.Phase != quiz.PhaseLoading {
		return nil
	}
	s.cancel = nil
	if msg.Err != nil {
		s.svc.Log().Warn("quiz generation failed", zap.String("topic", s.session.Topic.ID), zap.Error(msg.Err))
		s.session.Failed(msg.Err)
		return nil
	}
	if err := s.session.Loaded(msg.Quiz); err != nil {
		return nil
	}
	s.syncChoice()
	return nil
}

func (s *QuizScreen) syncChoice() {
	q := s.session.Current()
	if q == nil {
		return
	}
	s.choice = components.NewMultiChoice(q.Text, q.Options, s.session.Selected())
}

func (s *QuizScreen) next() tea.Cmd {
	if err := s.session.Next(); err != nil {
		return nil
	}
	if s.session.Phase == quiz.PhaseInProgress {
		s.syncChoice()
		return nil
	}
	s.reviewOffset = 0
	return s.save()
}

func (s *QuizScreen) save() tea.Cmd {
	history := s.svc.History
	userID := s.svc.UserID()
	if history == nil || userID == 0 {
		return nil
	}
	res, err := s.session.Result()
	if err != nil {
		return nil
	}
	return func() tea.Msg {
		rec, err := res.Record(userID)
		if err != nil {
			return resultSavedMsg{Err: err}
		}
		if err := history.SaveQuizResult(context.Background(), rec); err != nil {
			return resultSavedMsg{Err: fmt.Errorf("save quiz result: %w", err)}
		}
		return resultSavedMsg{}
	}
}
