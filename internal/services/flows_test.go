package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/compasshq/compass/internal/auth"
	"github.com/compasshq/compass/internal/career"
	"github.com/compasshq/compass/internal/guidance"
	"github.com/compasshq/compass/internal/llm"
	"github.com/compasshq/compass/internal/profile"
	"github.com/compasshq/compass/internal/store"
)

func signedIn(t *testing.T, mock *llm.MockProvider) (*Services, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "compass.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	u := &store.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}
	if err := st.UserRepo().Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &Services{
		Profiles: profile.NewService(st.ProfileRepo()),
		History:  st.HistoryRepo(),
		Careers:  career.New(mock, career.DefaultConfig(), nil),
		Guidance: guidance.New(mock, guidance.DefaultConfig(), nil),
		Account:  &auth.Account{User: *u},
	}, st
}

func TestPredictCareers(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"predictedCareers": []string{"Teacher", "Counselor"},
		"reasoning":        "You enjoy helping people.",
	}))
	svc, st := signedIn(t, mock)
	ctx := context.Background()

	err := st.HistoryRepo().SaveQuizResult(ctx, &store.QuizResult{
		AttemptID: "a1", UserID: svc.UserID(), TopicID: "career-aptitude", QuizTitle: "Aptitude",
		Difficulty: "medium", Score: 1, Total: 1,
		Answers: `[{"question":"Preferred setting?","options":["Office","Classroom"],"selected":1,"correctIndex":1,"correct":true}]`,
	})
	if err != nil {
		t.Fatalf("SaveQuizResult: %v", err)
	}

	pred, err := svc.PredictCareers(ctx, profile.Profile{Skills: "Public speaking", Interests: "Mentoring"})
	if err != nil {
		t.Fatalf("PredictCareers: %v", err)
	}
	if strings.Join(pred.Careers, ",") != "Teacher,Counselor" {
		t.Fatalf("Careers = %v", pred.Careers)
	}

	req, _ := mock.LastCall()
	msg := req.Messages[0].Content
	for _, want := range []string{"Classroom", "Career Aptitude", "Public speaking"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("prompt missing %q:\n%s", want, msg)
		}
	}

	saved, err := svc.Profiles.Get(ctx, svc.UserID())
	if err != nil || saved.Interests != "Mentoring" {
		t.Fatalf("profile not saved: %+v, %v", saved, err)
	}
	latest, err := st.HistoryRepo().LatestPrediction(ctx, svc.UserID())
	if err != nil || latest == nil || latest.Reasoning != "You enjoy helping people." {
		t.Fatalf("prediction not stored: %+v, %v", latest, err)
	}
	if got := svc.SuggestedCareers(ctx); strings.Join(got, ",") != "Teacher,Counselor" {
		t.Fatalf("SuggestedCareers = %v", got)
	}
}

func TestGuide(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{"guidance": "Start volunteering."}))
	svc, st := signedIn(t, mock)
	ctx := context.Background()

	g, err := svc.Guide(ctx, guidance.Input{CareerOptions: []string{" Teacher "}, SocialImpactImportance: 5})
	if err != nil {
		t.Fatalf("Guide: %v", err)
	}
	if g.Text != "Start volunteering." {
		t.Fatalf("Text = %q", g.Text)
	}
	latest, err := st.HistoryRepo().LatestGuidance(ctx, svc.UserID())
	if err != nil || latest == nil || strings.Join(latest.CareerOptions, ",") != "Teacher" {
		t.Fatalf("guidance not stored: %+v, %v", latest, err)
	}
}

func TestFlowsWithoutProvider(t *testing.T) {
	var s Services
	if _, err := s.PredictCareers(context.Background(), profile.Profile{Skills: "x"}); !errors.Is(err, ErrAIUnavailable) {
		t.Fatalf("PredictCareers err = %v", err)
	}
	if _, err := s.Guide(context.Background(), guidance.Input{}); !errors.Is(err, ErrAIUnavailable) {
		t.Fatalf("Guide err = %v", err)
	}
}
