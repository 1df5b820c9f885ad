// Package aiflow holds what the quiz, career and guidance flows share:
// input errors, the missing-output error and response decoding.
package aiflow

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/compasshq/compass/internal/llm"
)

// ErrNoOutput matches every *NoOutputError via errors.Is.
var ErrNoOutput = errors.New("AI failed to generate output")

// NoOutputError reports that the model answered with no content at all.
type NoOutputError struct {
	// What names the missing output, e.g. "quiz".
	What string
}

func (e *NoOutputError) Error() string {
	return fmt.Sprintf("AI failed to generate %s output.", e.What)
}

func (e *NoOutputError) Is(target error) bool { return target == ErrNoOutput }

// InputError describes a flow input that failed validation.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Decode unmarshals a response into v. Empty or null content yields a
// *NoOutputError naming what.
func Decode(resp *llm.Response, what string, v any) error {
	if resp == nil || llm.IsEmptyContent(resp.Content) {
		return &NoOutputError{What: what}
	}
	if err := json.Unmarshal(resp.Content, v); err != nil {
		return fmt.Errorf("parse %s response: %w", what, err)
	}
	return nil
}

// UserMessage renders a flow error as text for the user.
func UserMessage(err error) string {
	var (
		inErr *InputError
		noOut *NoOutputError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &inErr):
		return inErr.Message
	case errors.As(err, &noOut):
		return noOut.Error()
	}
	return llm.Describe(err)
}
