package guidance

import (
	"fmt"
	"strings"

	"github.com/compasshq/compass/internal/llm"
)

const systemPrompt = `You are a career counselor providing personalized guidance.

Weigh the user's career options against their stated preferences. Say which options fit best, how the user can achieve their goals, and what challenges they may face. Format the guidance as Markdown.`

func buildUserMessage(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Career Options: %s\n", strings.Join(in.CareerOptions, ", "))
	fmt.Fprintf(&b, "Importance of Social Impact (1-5): %d\n", in.SocialImpactImportance)
	fmt.Fprintf(&b, "Geographical Preference: %s\n", orUnspecified(in.GeographicalPreference))
	fmt.Fprintf(&b, "Financial Goals: %s\n", orUnspecified(in.FinancialGoals))
	fmt.Fprintf(&b, "Personality Traits: %s\n", orUnspecified(in.PersonalityTraits))
	return b.String()
}

func orUnspecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

// GuidanceSchema defines the JSON schema for guidance responses.
var GuidanceSchema = &llm.Schema{
	Name:        "guidance",
	Description: "Personalized career guidance",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"guidance": map[string]any{
				"type":        "string",
				"description": "Guidance text in Markdown",
			},
		},
		"required":             []any{"guidance"},
		"additionalProperties": false,
	},
}
