package llm

import (
	"errors"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel("gemini", tt.input)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quizTitle": map[string]any{"type": "string"},
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 20,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"options":            map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"correctAnswerIndex": map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
					},
				},
			},
			"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
		},
		"required":             []any{"quizTitle", "questions"},
		"additionalProperties": false,
	}

	schema := buildGeminiSchema(def)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(schema.Properties))
	}
	if got := schema.PropertyOrdering; len(got) != 2 || got[0] != "quizTitle" {
		t.Fatalf("expected property ordering from required list, got %v", got)
	}

	questions := schema.Properties["questions"]
	if questions.Type != genai.TypeArray {
		t.Fatalf("expected ARRAY for questions, got %s", questions.Type)
	}
	if questions.MinItems == nil || *questions.MinItems != 1 {
		t.Fatalf("expected minItems 1, got %v", questions.MinItems)
	}
	if questions.MaxItems == nil || *questions.MaxItems != 20 {
		t.Fatalf("expected maxItems 20, got %v", questions.MaxItems)
	}

	idx := questions.Items.Properties["correctAnswerIndex"]
	if idx.Type != genai.TypeInteger {
		t.Fatalf("expected INTEGER for index, got %s", idx.Type)
	}
	if idx.Maximum == nil || *idx.Maximum != 3 {
		t.Fatalf("expected maximum 3, got %v", idx.Maximum)
	}
	if questions.Items.Properties["options"].Items.Type != genai.TypeString {
		t.Fatal("expected STRING option items")
	}

	if len(schema.Properties["difficulty"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["difficulty"].Enum))
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestMapGeminiError(t *testing.T) {
	err := mapGeminiError(genai.APIError{Code: 429, Message: "quota"})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T", err)
	}

	err = mapGeminiError(genai.APIError{Code: 503, Message: "overloaded"})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", err)
	}
}
