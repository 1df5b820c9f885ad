package career

import (
	"strings"

	"github.com/compasshq/compass/internal/llm"
)

const systemPrompt = `You are a career advisor. Based on a user's quiz responses and profile information, predict potential career paths.

Consider:
- Interests and hobbies
- Skills and abilities
- Education and experience
- Personality traits

List the predicted careers, most suitable first, and explain the reasoning behind the predictions in a few short paragraphs. Markdown is allowed in the reasoning.`

func buildUserMessage(in Input, maxChars int) string {
	var b strings.Builder

	b.WriteString("Quiz Responses:\n")
	b.WriteString(orNone(truncate(in.QuizResponses, maxChars)))
	b.WriteString("\n\nProfile Information:\n")
	b.WriteString(orNone(truncate(in.ProfileInformation, maxChars)))

	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n[truncated]"
}

func utf8RuneStart(b byte) bool { return b&0xC0 != 0x80 }

// PredictionSchema defines the JSON schema for career prediction responses.
var PredictionSchema = &llm.Schema{
	Name:        "career-prediction",
	Description: "Predicted careers with the reasoning behind them",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"predictedCareers": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Career titles, most suitable first",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "Why these careers fit the user",
			},
		},
		"required":             []any{"predictedCareers", "reasoning"},
		"additionalProperties": false,
	},
}
