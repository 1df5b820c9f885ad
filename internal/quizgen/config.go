package quizgen

// Config controls the behavior of the Generator.
type Config struct {
	// Validators run in order on every question; the first failure drops
	// the question.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerIndexValidator{},
		},
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}
