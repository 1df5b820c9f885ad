package quizgen

import (
	"fmt"
	"strings"

	"github.com/compasshq/compass/internal/aiflow"
)

// Difficulty is the requested quiz difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question count limits and defaults.
const (
	MinQuestions       = 1
	MaxQuestions       = 20
	DefaultQuestions   = 5
	OptionsPerQuestion = 4
)

// Input describes the quiz to generate.
type Input struct {
	// Topic is free text, e.g. "Logic Puzzles".
	Topic string

	// NumberOfQuestions is 1..20. Zero means DefaultQuestions.
	NumberOfQuestions int

	// Difficulty defaults to medium when empty.
	Difficulty Difficulty
}

// Quiz is a generated quiz.
type Quiz struct {
	Title     string     `json:"quizTitle"`
	Questions []Question `json:"questions"`
}

// Question is a single multiple-choice question.
type Question struct {
	Text string `json:"questionText"`

	// Options are the answer choices shown in order. Normally four.
	Options []string `json:"options"`

	// CorrectIndex is the 0-based index into Options.
	CorrectIndex int `json:"correctAnswerIndex"`

	// Explanation is optional and may be empty.
	Explanation string `json:"explanation"`
}

// Empty reports whether the quiz has no questions.
func (q *Quiz) Empty() bool {
	return q == nil || len(q.Questions) == 0
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// Normalize applies defaults and validates the input.
func (in Input) Normalize() (Input, error) {
	in.Topic = strings.TrimSpace(in.Topic)
	if in.Topic == "" {
		return in, &aiflow.InputError{Field: "topic", Message: "Topic is required."}
	}

	if in.NumberOfQuestions == 0 {
		in.NumberOfQuestions = DefaultQuestions
	}
	if in.NumberOfQuestions < MinQuestions || in.NumberOfQuestions > MaxQuestions {
		return in, &aiflow.InputError{
			Field:   "numberOfQuestions",
			Message: fmt.Sprintf("Number of questions must be between %d and %d.", MinQuestions, MaxQuestions),
		}
	}

	if in.Difficulty == "" {
		in.Difficulty = DifficultyMedium
	}
	d, err := ParseDifficulty(string(in.Difficulty))
	if err != nil {
		return in, err
	}
	in.Difficulty = d
	return in, nil
}

// ParseDifficulty accepts easy, medium or hard in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", &aiflow.InputError{Field: "difficulty", Message: "Difficulty must be easy, medium or hard."}
}

// FallbackTitle is the title used when the model produced no usable quiz.
func FallbackTitle(topic string) string {
	return "Quiz for " + topic
}
