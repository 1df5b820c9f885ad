package quizgen

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/compasshq/compass/internal/aiflow"
	"github.com/compasshq/compass/internal/llm"
)

// Generator produces quizzes with an LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// New creates a Generator. logger may be nil.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{provider: provider, config: cfg, logger: logger.Named("quizgen")}
}

// Generate produces a quiz for the input.
//
// Invalid input returns *aiflow.InputError and no content at all returns an
// error matching aiflow.ErrNoOutput. When the model returns a quiz with no
// usable questions, Generate logs a warning and returns an empty quiz titled
// "Quiz for <topic>" with a nil error.
func (g *Generator) Generate(ctx context.Context, input Input) (*Quiz, error) {
	in, err := input.Normalize()
	if err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	var raw Quiz
	if err := aiflow.Decode(resp, "quiz", &raw); err != nil {
		return nil, err
	}

	quiz := &Quiz{
		Title:     strings.TrimSpace(raw.Title),
		Questions: g.keepValid(raw.Questions, in.NumberOfQuestions),
	}

	if quiz.Empty() {
		g.logger.Warn("model returned no usable questions; using fallback quiz",
			zap.String("topic", in.Topic),
			zap.Int("returned", len(raw.Questions)),
		)
		return &Quiz{Title: FallbackTitle(in.Topic), Questions: []Question{}}, nil
	}
	if quiz.Title == "" {
		quiz.Title = FallbackTitle(in.Topic)
	}

	g.logger.Debug("quiz generated",
		zap.String("topic", in.Topic),
		zap.String("difficulty", string(in.Difficulty)),
		zap.Int("questions", len(quiz.Questions)),
	)
	return quiz, nil
}

// keepValid drops questions that fail a validator or repeat an earlier
// question, then trims to want.
func (g *Generator) keepValid(questions []Question, want int) []Question {
	out := make([]Question, 0, min(len(questions), want))
	seen := make(map[string]bool, len(questions))

	for i := range questions {
		q := questions[i]
		q.Text = strings.TrimSpace(q.Text)
		q.Explanation = strings.TrimSpace(q.Explanation)

		if verr := g.validate(&q); verr != nil {
			g.logger.Warn("dropping invalid question",
				zap.Int("index", i),
				zap.String("validator", verr.Validator),
				zap.String("reason", verr.Message),
			)
			continue
		}

		key := strings.ToLower(q.Text)
		if seen[key] {
			g.logger.Warn("dropping duplicate question", zap.Int("index", i))
			continue
		}
		seen[key] = true

		if len(out) == want {
			g.logger.Debug("trimming extra questions", zap.Int("returned", len(questions)), zap.Int("want", want))
			break
		}
		out = append(out, q)
	}
	return out
}

func (g *Generator) validate(q *Question) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}
