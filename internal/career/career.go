// Package career predicts suitable careers from quiz answers and a user
// profile.
package career

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/compasshq/compass/internal/aiflow"
	"github.com/compasshq/compass/internal/llm"
)

// Input holds the stringified context sent to the model.
type Input struct {
	// QuizResponses is a JSON document of quiz questions and the user's
	// answers.
	QuizResponses string

	// ProfileInformation is a JSON document of the user's skills,
	// education and experience.
	ProfileInformation string
}

// Prediction is the model's answer.
type Prediction struct {
	Careers   []string `json:"predictedCareers"`
	Reasoning string   `json:"reasoning"`
}

// Config controls the Predictor.
type Config struct {
	MaxTokens   int
	Temperature float64
	// MaxInputChars caps each stringified input; longer inputs are cut.
	MaxInputChars int
}

// DefaultConfig returns recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     2048,
		Temperature:   0.7,
		MaxInputChars: 12000,
	}
}

// Predictor runs the career prediction flow.
type Predictor struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// New creates a Predictor. logger may be nil.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *Predictor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Predictor{provider: provider, config: cfg, logger: logger.Named("career")}
}

// Predict asks the model for careers matching the input.
func (p *Predictor) Predict(ctx context.Context, in Input) (*Prediction, error) {
	in.QuizResponses = strings.TrimSpace(in.QuizResponses)
	in.ProfileInformation = strings.TrimSpace(in.ProfileInformation)
	if in.QuizResponses == "" && in.ProfileInformation == "" {
		return nil, &aiflow.InputError{
			Field:   "profileInformation",
			Message: "Take a quiz or fill in your profile before requesting a prediction.",
		}
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeCareerPrediction)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in, p.config.MaxInputChars)},
		},
		Schema:      PredictionSchema,
		MaxTokens:   p.config.MaxTokens,
		Temperature: p.config.Temperature,
	}

	resp, err := p.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("predict careers: %w", err)
	}

	var out Prediction
	if err := aiflow.Decode(resp, "career prediction", &out); err != nil {
		return nil, err
	}

	careers := out.Careers[:0]
	for _, c := range out.Careers {
		if c = strings.TrimSpace(c); c != "" {
			careers = append(careers, c)
		}
	}
	out.Careers = careers
	out.Reasoning = strings.TrimSpace(out.Reasoning)

	p.logger.Debug("careers predicted", zap.Strings("careers", out.Careers))
	return &out, nil
}
