package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/compasshq/compass/internal/career"
	"github.com/compasshq/compass/internal/guidance"
	"github.com/compasshq/compass/internal/profile"
	"github.com/compasshq/compass/internal/quiz"
	"github.com/compasshq/compass/internal/store"
)

// quizHistoryLimit caps how many past attempts feed a prediction.
const quizHistoryLimit = 10

// PredictCareers saves p as the user's profile, gathers their recent quiz
// answers, runs the prediction and stores the result.
func (s *Services) PredictCareers(ctx context.Context, p profile.Profile) (*career.Prediction, error) {
	if s.Careers == nil {
		return nil, ErrAIUnavailable
	}
	userID := s.UserID()

	if s.Profiles != nil && userID != 0 {
		if err := s.Profiles.Save(ctx, userID, p); err != nil {
			return nil, err
		}
	}

	var responses string
	if s.History != nil && userID != 0 {
		recs, err := s.History.QuizResults(ctx, store.QueryOpts{UserID: userID, Limit: quizHistoryLimit})
		if err != nil {
			return nil, fmt.Errorf("load quiz history: %w", err)
		}
		results, err := quiz.FromRecords(recs)
		if err != nil {
			return nil, err
		}
		if responses, err = career.QuizResponsesJSON(results); err != nil {
			return nil, err
		}
	}

	profileJSON, err := p.JSON()
	if err != nil {
		return nil, err
	}

	pred, err := s.Careers.Predict(ctx, career.Input{QuizResponses: responses, ProfileInformation: profileJSON})
	if err != nil {
		return nil, err
	}

	if s.History != nil && userID != 0 {
		rec := &store.PredictionRecord{UserID: userID, Careers: pred.Careers, Reasoning: pred.Reasoning}
		if err := s.History.SavePrediction(ctx, rec); err != nil {
			s.Log().Warn("save prediction failed", zap.Error(err))
		}
	}
	return pred, nil
}

// Guide runs the guidance flow and stores the result.
func (s *Services) Guide(ctx context.Context, in guidance.Input) (*guidance.Guidance, error) {
	if s.Guidance == nil {
		return nil, ErrAIUnavailable
	}
	g, err := s.Guidance.Advise(ctx, in)
	if err != nil {
		return nil, err
	}
	if userID := s.UserID(); s.History != nil && userID != 0 {
		norm, _ := in.Normalize()
		rec := &store.GuidanceRecord{UserID: userID, CareerOptions: norm.CareerOptions, Text: g.Text}
		if err := s.History.SaveGuidance(ctx, rec); err != nil {
			s.Log().Warn("save guidance failed", zap.Error(err))
		}
	}
	return g, nil
}

// SuggestedCareers returns the careers of the user's latest prediction, for
// prefilling the guidance form.
func (s *Services) SuggestedCareers(ctx context.Context) []string {
	if s.History == nil || s.UserID() == 0 {
		return nil
	}
	p, err := s.History.LatestPrediction(ctx, s.UserID())
	if err != nil || p == nil {
		return nil
	}
	return p.Careers
}
