// Package auth implements local email/password accounts and sign-in
// sessions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/compasshq/compass/internal/store"
)

const (
	opLogin  = "login"
	opSignup = "signup"
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 6

// DefaultSessionTTL is how long a sign-in lasts without activity.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SignupInput is the signup form.
type SignupInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginInput is the login form.
type LoginInput struct {
	Email    string
	Password string
}

// Account is a signed-in user and the session that proves it.
type Account struct {
	User    store.User
	Session store.Session
}

// Options configures a Service.
type Options struct {
	SessionTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	Logger     *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Service signs users up and in.
type Service struct {
	users    store.UserRepo
	sessions store.SessionRepo
	ttl      time.Duration
	cost     int
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a Service.
func NewService(users store.UserRepo, sessions store.SessionRepo, opts Options) *Service {
	s := &Service{
		users:    users,
		sessions: sessions,
		ttl:      opts.SessionTTL,
		cost:     opts.BcryptCost,
		logger:   opts.Logger,
		now:      opts.Now,
	}
	if s.ttl <= 0 {
		s.ttl = DefaultSessionTTL
	}
	if s.cost == 0 {
		s.cost = bcrypt.DefaultCost
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.logger = s.logger.Named("auth")
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@")+1:], ".")
}

// Signup validates the form, creates the account and signs it in.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*Account, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	switch {
	case name == "" || email == "" || in.Password == "" || in.ConfirmPassword == "":
		return nil, &Error{Code: CodeMissingFields, Op: opSignup}
	case in.Password != in.ConfirmPassword:
		return nil, &Error{Code: CodePasswordMismatch, Op: opSignup}
	case len(in.Password) < MinPasswordLen:
		return nil, &Error{Code: CodePasswordTooShort, Op: opSignup}
	case !validEmail(email):
		return nil, &Error{Code: CodeInvalidEmail, Op: opSignup}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, &Error{Code: CodeWeakPassword, Op: opSignup, Err: err}
	}
	if err != nil {
		return nil, &Error{Code: CodeUnknown, Op: opSignup, Err: fmt.Errorf("hash password: %w", err)}
	}

	u := &store.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, &Error{Code: CodeEmailInUse, Op: opSignup}
		}
		return nil, &Error{Code: CodeUnknown, Op: opSignup, Err: err}
	}
	s.logger.Info("account created", zap.Int("user_id", u.ID))

	sess, err := s.startSession(ctx, u.ID)
	if err != nil {
		return nil, &Error{Code: CodeUnknown, Op: opSignup, Err: err}
	}
	return &Account{User: *u, Session: *sess}, nil
}

// Login checks credentials and starts a session.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Account, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, &Error{Code: CodeMissingFields, Op: opLogin}
	}
	if !validEmail(email) {
		return nil, &Error{Code: CodeInvalidEmail, Op: opLogin}
	}

	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return nil, &Error{Code: CodeUnknown, Op: opLogin, Err: err}
	}
	if u == nil {
		return nil, &Error{Code: CodeInvalidCredential, Op: opLogin}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		s.logger.Info("login rejected", zap.Int("user_id", u.ID))
		return nil, &Error{Code: CodeInvalidCredential, Op: opLogin}
	}
	if u.Disabled {
		return nil, &Error{Code: CodeUserDisabled, Op: opLogin}
	}

	sess, err := s.startSession(ctx, u.ID)
	if err != nil {
		return nil, &Error{Code: CodeUnknown, Op: opLogin, Err: err}
	}
	s.logger.Info("signed in", zap.Int("user_id", u.ID))
	return &Account{User: *u, Session: *sess}, nil
}

func (s *Service) startSession(ctx context.Context, userID int) (*store.Session, error) {
	now := s.now()
	sess := &store.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if n, err := s.sessions.DeleteExpired(ctx, now); err == nil && n > 0 {
		s.logger.Debug("expired sessions pruned", zap.Int("count", n))
	}
	return sess, nil
}

// Resume returns the account for a stored session token. Unknown or
// expired tokens yield CodeSessionExpired and expired ones are deleted; a
// disabled account yields CodeUserDisabled and revokes the token.
func (s *Service) Resume(ctx context.Context, token string) (*Account, error) {
	if token == "" {
		return nil, &Error{Code: CodeSessionExpired, Op: opLogin}
	}
	sess, err := s.sessions.ByToken(ctx, token)
	if err != nil {
		return nil, &Error{Code: CodeUnknown, Op: opLogin, Err: err}
	}
	if sess == nil {
		return nil, &Error{Code: CodeSessionExpired, Op: opLogin}
	}
	if !s.now().Before(sess.ExpiresAt) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			s.logger.Warn("delete expired session failed", zap.Error(err))
		}
		return nil, &Error{Code: CodeSessionExpired, Op: opLogin}
	}
	u, err := s.users.ByID(ctx, sess.UserID)
	if err != nil {
		return nil, &Error{Code: CodeUnknown, Op: opLogin, Err: err}
	}
	if u == nil {
		return nil, &Error{Code: CodeSessionExpired, Op: opLogin}
	}
	if u.Disabled {
		_ = s.sessions.Delete(ctx, token)
		return nil, &Error{Code: CodeUserDisabled, Op: opLogin}
	}
	return &Account{User: *u, Session: *sess}, nil
}

// Logout revokes a session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// Users lists all accounts.
func (s *Service) Users(ctx context.Context) ([]store.User, error) {
	return s.users.List(ctx)
}

// SetDisabled disables or re-enables the account with the given email.
func (s *Service) SetDisabled(ctx context.Context, email string, disabled bool) error {
	if err := s.users.SetDisabled(ctx, normalizeEmail(email), disabled); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no account for %s: %w", email, err)
		}
		return err
	}
	s.logger.Info("account updated", zap.String("email", normalizeEmail(email)), zap.Bool("disabled", disabled))
	return nil
}
