// Package guidance generates personalized career guidance.
package guidance

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/compasshq/compass/internal/aiflow"
	"github.com/compasshq/compass/internal/llm"
)

// Social impact importance bounds.
const (
	MinSocialImpact = 1
	MaxSocialImpact = 5
)

// Input describes the user's preferences.
type Input struct {
	CareerOptions          []string
	SocialImpactImportance int
	GeographicalPreference string
	FinancialGoals         string
	PersonalityTraits      string
}

// Normalize trims fields, drops blank career options and validates.
func (in Input) Normalize() (Input, error) {
	var opts []string
	for _, c := range in.CareerOptions {
		if c = strings.TrimSpace(c); c != "" {
			opts = append(opts, c)
		}
	}
	in.CareerOptions = opts
	in.GeographicalPreference = strings.TrimSpace(in.GeographicalPreference)
	in.FinancialGoals = strings.TrimSpace(in.FinancialGoals)
	in.PersonalityTraits = strings.TrimSpace(in.PersonalityTraits)

	if len(in.CareerOptions) == 0 {
		return in, &aiflow.InputError{Field: "careerOptions", Message: "List at least one career option."}
	}
	if in.SocialImpactImportance < MinSocialImpact || in.SocialImpactImportance > MaxSocialImpact {
		return in, &aiflow.InputError{
			Field:   "socialImpactImportance",
			Message: fmt.Sprintf("Social impact importance must be between %d and %d.", MinSocialImpact, MaxSocialImpact),
		}
	}
	return in, nil
}

// SplitOptions parses a comma or newline separated list of careers.
func SplitOptions(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' })
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Guidance is the generated advice, in Markdown.
type Guidance struct {
	Text string `json:"guidance"`
}

// Config controls the Advisor.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns recommended defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 3072, Temperature: 0.7}
}

// Advisor runs the guidance flow.
type Advisor struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// New creates an Advisor. logger may be nil.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{provider: provider, config: cfg, logger: logger.Named("guidance")}
}

// Advise generates guidance for the given preferences.
func (a *Advisor) Advise(ctx context.Context, in Input) (*Guidance, error) {
	in, err := in.Normalize()
	if err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeGuidance)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in)},
		},
		Schema:      GuidanceSchema,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate guidance: %w", err)
	}

	var out Guidance
	if err := aiflow.Decode(resp, "guidance", &out); err != nil {
		return nil, err
	}
	out.Text = strings.TrimSpace(out.Text)
	if out.Text == "" {
		return nil, &aiflow.NoOutputError{What: "guidance"}
	}

	a.logger.Debug("guidance generated",
		zap.Strings("careers", in.CareerOptions),
		zap.Int("chars", len(out.Text)))
	return &out, nil
}
