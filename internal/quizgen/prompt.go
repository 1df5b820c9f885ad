package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert quiz creator.

Rules:
- Generate a quiz title and exactly the requested number of questions about the given topic.
- Each question must have exactly 4 options and exactly one correct option.
- correctAnswerIndex is the 0-based position of the correct option in the options array.
- Match the requested difficulty. Easy questions test recall, hard questions need reasoning.
- Questions must be self-contained and must not repeat.
- Keep explanations to one or two sentences.
- Return the output strictly as a JSON object matching the provided schema. Do not include any preamble or explanation outside the JSON structure.`

// buildUserMessage constructs the user message from a normalized Input.
func buildUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	fmt.Fprintf(&b, "Number of Questions: %d\n", in.NumberOfQuestions)
	fmt.Fprintf(&b, "Difficulty: %s\n", in.Difficulty)
	fmt.Fprintf(&b, "\nGenerate a quiz title and %d questions. ", in.NumberOfQuestions)
	fmt.Fprintf(&b, "Each question must have %d options and a correct answer index.", OptionsPerQuestion)

	return b.String()
}
