package quizgen

import (
	"fmt"
	"strings"
)

// Validator checks a generated question. Questions that fail are dropped
// from the quiz rather than failing the whole request.
type Validator interface {
	// Name returns a short identifier used in log lines.
	Name() string

	// Validate returns nil if the question is usable.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a question was dropped.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator requires question text and at least two non-empty,
// distinct options.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	if strings.TrimSpace(q.Text) == "" {
		return &ValidationError{Validator: v.Name(), Message: "question text is empty"}
	}
	if len(q.Options) < 2 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("need at least 2 options, got %d", len(q.Options)),
		}
	}
	seen := make(map[string]bool, len(q.Options))
	for i, o := range q.Options {
		key := strings.ToLower(strings.TrimSpace(o))
		if key == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("option %d is empty", i+1)}
		}
		if seen[key] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("duplicate option %q", o)}
		}
		seen[key] = true
	}
	return nil
}

// AnswerIndexValidator requires the correct index to point at an option.
type AnswerIndexValidator struct{}

func (v *AnswerIndexValidator) Name() string { return "answer-index" }

func (v *AnswerIndexValidator) Validate(q *Question) *ValidationError {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("correct index %d out of range for %d options", q.CorrectIndex, len(q.Options)),
		}
	}
	return nil
}
