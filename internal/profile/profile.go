// Package profile manages the background a user enters for career
// predictions.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/compasshq/compass/internal/store"
)

// Profile is a user's self-described background.
type Profile struct {
	Skills     string `json:"skills,omitempty"`
	Education  string `json:"education,omitempty"`
	Experience string `json:"experience,omitempty"`
	Interests  string `json:"interests,omitempty"`
}

// Empty reports whether no field has content.
func (p Profile) Empty() bool {
	return strings.TrimSpace(p.Skills+p.Education+p.Experience+p.Interests) == ""
}

// JSON renders the profile as the stringified JSON the career predictor
// expects. An empty profile renders as "".
func (p Profile) JSON() (string, error) {
	p = p.trimmed()
	if p.Empty() {
		return "", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}
	return string(b), nil
}

func (p Profile) trimmed() Profile {
	return Profile{
		Skills:     strings.TrimSpace(p.Skills),
		Education:  strings.TrimSpace(p.Education),
		Experience: strings.TrimSpace(p.Experience),
		Interests:  strings.TrimSpace(p.Interests),
	}
}

// Service loads and saves profiles.
type Service struct {
	repo store.ProfileRepo
}

// NewService creates a Service.
func NewService(repo store.ProfileRepo) *Service {
	return &Service{repo: repo}
}

// Get returns the saved profile, or an empty one.
func (s *Service) Get(ctx context.Context, userID int) (Profile, error) {
	rec, err := s.repo.Get(ctx, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	if rec == nil {
		return Profile{}, nil
	}
	return Profile{
		Skills:     rec.Skills,
		Education:  rec.Education,
		Experience: rec.Experience,
		Interests:  rec.Interests,
	}, nil
}

// Save stores p for userID, replacing any earlier profile.
func (s *Service) Save(ctx context.Context, userID int, p Profile) error {
	p = p.trimmed()
	err := s.repo.Save(ctx, &store.Profile{
		UserID:     userID,
		Skills:     p.Skills,
		Education:  p.Education,
		Experience: p.Experience,
		Interests:  p.Interests,
	})
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
