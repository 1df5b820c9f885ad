package quizgen

import "github.com/compasshq/compass/internal/llm"

// QuizSchema defines the JSON schema for quiz generation responses.
// Every property is required so OpenAI strict mode accepts it; an
// explanation may still be the empty string.
var QuizSchema = &llm.Schema{
	Name:        "quiz",
	Description: "A multiple-choice quiz with a title and questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quizTitle": map[string]any{
				"type":        "string",
				"description": "A short, engaging title for the quiz",
			},
			"questions": map[string]any{
				"type":        "array",
				"description": "The quiz questions, in the order they are asked",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"questionText": map[string]any{
							"type":        "string",
							"description": "The question shown to the user",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer options",
						},
						"correctAnswerIndex": map[string]any{
							"type":        "integer",
							"description": "0-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One or two sentences on why the answer is correct. May be empty.",
						},
					},
					"required":             []any{"questionText", "options", "correctAnswerIndex", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"quizTitle", "questions"},
		"additionalProperties": false,
	},
}
