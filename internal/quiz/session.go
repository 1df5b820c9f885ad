// Package quiz drives one quiz attempt from topic selection to the final
// score.
package quiz

import (
	"errors"

	"github.com/google/uuid"

	"github.com/compasshq/compass/internal/quizgen"
)

// User-facing messages shown on the topic selection screen after a failed
// generation.
const (
	MsgEmptyQuiz       = "Failed to generate quiz questions. The AI might be busy or the topic too niche. Please try another topic or try again later."
	MsgGenerationError = "An error occurred while generating the quiz. Please check your connection and try again."
)

// Phase is the current step of a quiz attempt.
type Phase int

const (
	PhaseTopicSelection Phase = iota
	PhaseLoading
	PhaseInProgress
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseTopicSelection:
		return "topic-selection"
	case PhaseLoading:
		return "loading"
	case PhaseInProgress:
		return "in-progress"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// Errors returned for transitions that are invalid in the current phase.
var (
	ErrWrongPhase    = errors.New("quiz: operation not allowed in current phase")
	ErrNotAnswered   = errors.New("quiz: current question has no answer")
	ErrOptionInvalid = errors.New("quiz: option index out of range")
)

// unanswered marks a question slot with no selected option.
const unanswered = -1

// Session is the state of one quiz attempt.
type Session struct {
	Phase      Phase
	Topic      Topic
	Difficulty quizgen.Difficulty

	// Message is the error text shown after a failed generation.
	Message string

	AttemptID string
	Quiz      *quizgen.Quiz
	Index     int
	Answers   []int
	Score     int
}

// NewSession returns a session waiting for a topic.
func NewSession() *Session {
	return &Session{Phase: PhaseTopicSelection, Difficulty: quizgen.DifficultyMedium}
}

// Input returns the generation request for the selected topic.
func (s *Session) Input() quizgen.Input {
	return quizgen.Input{
		Topic:             s.Topic.Name,
		NumberOfQuestions: quizgen.DefaultQuestions,
		Difficulty:        s.Difficulty,
	}
}

// Start selects a topic and enters Loading. Prior answers and score are
// cleared.
func (s *Session) Start(topic Topic) {
	s.Topic = topic
	s.Phase = PhaseLoading
	s.Message = ""
	s.Quiz = nil
	s.Index = 0
	s.Answers = nil
	s.Score = 0
	s.AttemptID = ""
}

// Loaded installs a generated quiz. An empty quiz returns to topic
// selection with MsgEmptyQuiz.
func (s *Session) Loaded(q *quizgen.Quiz) error {
	if s.Phase != PhaseLoading {
		return ErrWrongPhase
	}
	if q.Empty() {
		s.Phase = PhaseTopicSelection
		s.Message = MsgEmptyQuiz
		return nil
	}
	s.Quiz = q
	s.Answers = make([]int, len(q.Questions))
	for i := range s.Answers {
		s.Answers[i] = unanswered
	}
	s.AttemptID = uuid.NewString()
	s.Phase = PhaseInProgress
	return nil
}

// Failed returns to topic selection with MsgGenerationError.
func (s *Session) Failed(error) {
	s.Phase = PhaseTopicSelection
	s.Message = MsgGenerationError
	s.Quiz = nil
}

// Current returns the question being answered, or nil outside InProgress.
func (s *Session) Current() *quizgen.Question {
	if s.Phase != PhaseInProgress || s.Quiz == nil {
		return nil
	}
	return &s.Quiz.Questions[s.Index]
}

// Selected returns the chosen option for the current question, or -1.
func (s *Session) Selected() int {
	if s.Phase != PhaseInProgress {
		return unanswered
	}
	return s.Answers[s.Index]
}

// Select records option i for the current question. Changing the answer
// before advancing is allowed.
func (s *Session) Select(i int) error {
	q := s.Current()
	if q == nil {
		return ErrWrongPhase
	}
	if i < 0 || i >= len(q.Options) {
		return ErrOptionInvalid
	}
	s.Answers[s.Index] = i
	return nil
}

// CanAdvance reports whether the current question has been answered.
func (s *Session) CanAdvance() bool {
	return s.Phase == PhaseInProgress && s.Answers[s.Index] != unanswered
}

// IsLast reports whether the current question is the final one.
func (s *Session) IsLast() bool {
	return s.Quiz != nil && s.Index == len(s.Quiz.Questions)-1
}

// Next moves to the following question. On the last question it scores the
// attempt and completes it.
func (s *Session) Next() error {
	if s.Phase != PhaseInProgress {
		return ErrWrongPhase
	}
	if !s.CanAdvance() {
		return ErrNotAnswered
	}
	if !s.IsLast() {
		s.Index++
		return nil
	}
	s.Score = 0
	for i, q := range s.Quiz.Questions {
		if s.Answers[i] == q.CorrectIndex {
			s.Score++
		}
	}
	s.Phase = PhaseCompleted
	return nil
}

// Progress returns the fraction of the quiz reached, counting the current
// question.
func (s *Session) Progress() float64 {
	if s.Quiz == nil || len(s.Quiz.Questions) == 0 {
		return 0
	}
	if s.Phase == PhaseCompleted {
		return 1
	}
	return float64(s.Index+1) / float64(len(s.Quiz.Questions))
}

// Total returns the number of questions in the loaded quiz.
func (s *Session) Total() int {
	if s.Quiz == nil {
		return 0
	}
	return len(s.Quiz.Questions)
}

// Reset abandons the attempt and returns to topic selection.
func (s *Session) Reset() {
	difficulty := s.Difficulty
	*s = *NewSession()
	s.Difficulty = difficulty
}
