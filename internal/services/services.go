// Package services bundles what the TUI screens need: the account
// services, the history repo, the AI flows and the signed-in user.
package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/compasshq/compass/internal/auth"
	"github.com/compasshq/compass/internal/career"
	"github.com/compasshq/compass/internal/guidance"
	"github.com/compasshq/compass/internal/profile"
	"github.com/compasshq/compass/internal/quizgen"
	"github.com/compasshq/compass/internal/store"
)

// ErrAIUnavailable is returned by the flow accessors when no LLM provider
// is configured.
var ErrAIUnavailable = errors.New("AI features are unavailable: no LLM provider is configured")

// QuizGenerator generates quizzes.
type QuizGenerator interface {
	Generate(ctx context.Context, in quizgen.Input) (*quizgen.Quiz, error)
}

// CareerPredictor predicts careers.
type CareerPredictor interface {
	Predict(ctx context.Context, in career.Input) (*career.Prediction, error)
}

// GuidanceAdvisor generates guidance.
type GuidanceAdvisor interface {
	Advise(ctx context.Context, in guidance.Input) (*guidance.Guidance, error)
}

// Services is shared by every screen. Flow fields are nil when the LLM is
// not configured.
type Services struct {
	Auth     *auth.Service
	Profiles *profile.Service
	History  store.HistoryRepo

	Quizzes  QuizGenerator
	Careers  CareerPredictor
	Guidance GuidanceAdvisor

	// TokenPath is where the session token is remembered. Empty disables
	// remembering.
	TokenPath string
	Logger    *zap.Logger

	// Account is the signed-in user, or nil.
	Account *auth.Account
}

// UserID returns the signed-in user's ID, or 0.
func (s *Services) UserID() int {
	if s.Account == nil {
		return 0
	}
	return s.Account.User.ID
}

// UserName returns the signed-in user's name, or "".
func (s *Services) UserName() string {
	if s.Account == nil {
		return ""
	}
	return s.Account.User.Name
}

// Log returns the logger, never nil.
func (s *Services) Log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// SignIn records acct as the current user and remembers its token.
func (s *Services) SignIn(acct *auth.Account) {
	s.Account = acct
	if s.TokenPath == "" {
		return
	}
	if err := auth.SaveToken(s.TokenPath, acct.Session.Token); err != nil {
		s.Log().Warn("remember session failed", zap.Error(err))
	}
}

// SignOut revokes the current session and forgets it.
func (s *Services) SignOut(ctx context.Context) {
	if s.Account != nil && s.Auth != nil {
		if err := s.Auth.Logout(ctx, s.Account.Session.Token); err != nil {
			s.Log().Warn("revoke session failed", zap.Error(err))
		}
	}
	s.Account = nil
	if s.TokenPath == "" {
		return
	}
	if err := auth.ClearToken(s.TokenPath); err != nil {
		s.Log().Warn("forget session failed", zap.Error(err))
	}
}

// Resume signs in from the remembered token, if any is still valid.
func (s *Services) Resume(ctx context.Context) {
	if s.TokenPath == "" || s.Auth == nil {
		return
	}
	token, err := auth.LoadToken(s.TokenPath)
	if err != nil || token == "" {
		return
	}
	acct, err := s.Auth.Resume(ctx, token)
	if err != nil {
		s.Log().Info("remembered session not resumed", zap.Error(err))
		if auth.IsCode(err, auth.CodeSessionExpired) || auth.IsCode(err, auth.CodeUserDisabled) {
			_ = auth.ClearToken(s.TokenPath)
		}
		return
	}
	s.Account = acct
}

// SignedInMsg tells the app that a user signed in.
type SignedInMsg struct{}

// SignedOutMsg tells the app that the user signed out.
type SignedOutMsg struct{}
