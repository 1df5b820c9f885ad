package store

import (
	"context"
	"time"
)

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // filter by purpose (LLM events only)
	UserID  int    // filter by owner (0 = all users)
}

// User is a local account.
type User struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
	Disabled     bool
	CreatedAt    time.Time
}

// Session is a sign-in token bound to a user.
type Session struct {
	Token     string
	UserID    int
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Profile holds the free-text background a user enters for predictions.
type Profile struct {
	UserID     int
	Skills     string
	Education  string
	Experience string
	Interests  string
	UpdatedAt  time.Time
}

// QuizResult is a completed quiz attempt. Answers holds the JSON-encoded
// per-question review.
type QuizResult struct {
	ID         int
	AttemptID  string
	UserID     int
	TopicID    string
	QuizTitle  string
	Difficulty string
	Score      int
	Total      int
	Answers    string
	CreatedAt  time.Time
}

// PredictionRecord is a stored career prediction.
type PredictionRecord struct {
	ID        int
	UserID    int
	Careers   []string
	Reasoning string
	CreatedAt time.Time
}

// GuidanceRecord is a stored piece of personalized guidance.
type GuidanceRecord struct {
	ID            int
	UserID        int
	CareerOptions []string
	Text          string
	CreatedAt     time.Time
}

// QuizStats summarizes a user's quiz history.
type QuizStats struct {
	Attempts int
	Correct  int
	Answered int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	Failures     int
}

// UserRepo manages accounts.
type UserRepo interface {
	// Create inserts a new user and sets u.ID. Returns ErrDuplicate when the
	// email is already registered.
	Create(ctx context.Context, u *User) error

	// ByEmail returns the user with the given email, or nil if none exists.
	ByEmail(ctx context.Context, email string) (*User, error)

	// ByID returns the user with the given ID, or nil if none exists.
	ByID(ctx context.Context, id int) (*User, error)

	// List returns all users ordered by ID.
	List(ctx context.Context) ([]User, error)

	// SetDisabled enables or disables the account with the given email.
	SetDisabled(ctx context.Context, email string, disabled bool) error
}

// SessionRepo manages sign-in tokens.
type SessionRepo interface {
	// Create stores a new session.
	Create(ctx context.Context, s *Session) error

	// ByToken returns the session for token, or nil if none exists.
	ByToken(ctx context.Context, token string) (*Session, error)

	// Delete removes the session for token. Missing tokens are not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes sessions that expired before now.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// ProfileRepo manages user profiles.
type ProfileRepo interface {
	// Get returns the profile for userID, or nil if none has been saved.
	Get(ctx context.Context, userID int) (*Profile, error)

	// Save inserts or replaces the profile for p.UserID.
	Save(ctx context.Context, p *Profile) error
}

// HistoryRepo stores the outputs of completed quizzes, predictions and
// guidance requests.
type HistoryRepo interface {
	SaveQuizResult(ctx context.Context, r *QuizResult) error
	QuizResults(ctx context.Context, opts QueryOpts) ([]QuizResult, error)
	QuizStats(ctx context.Context, userID int) (QuizStats, error)

	SavePrediction(ctx context.Context, p *PredictionRecord) error
	LatestPrediction(ctx context.Context, userID int) (*PredictionRecord, error)
	Predictions(ctx context.Context, opts QueryOpts) ([]PredictionRecord, error)

	SaveGuidance(ctx context.Context, g *GuidanceRecord) error
	LatestGuidance(ctx context.Context, userID int) (*GuidanceRecord, error)
	Guidances(ctx context.Context, opts QueryOpts) ([]GuidanceRecord, error)
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event by ID, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates events grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates events grouped by model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
