package guidance

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/compasshq/compass/internal/aiflow"
	"github.com/compasshq/compass/internal/llm"
)

func validInput() Input {
	return Input{
		CareerOptions:          []string{"Teacher", "Data Analyst"},
		SocialImpactImportance: 4,
		GeographicalPreference: "Remote",
		FinancialGoals:         "Stable income",
	}
}

func TestAdvise_HappyPath(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{"guidance": "## Teacher\nGreat fit.\n"}))
	g, err := New(mock, DefaultConfig(), nil).Advise(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Text != "## Teacher\nGreat fit." {
		t.Fatalf("Text = %q", g.Text)
	}

	req, _ := mock.LastCall()
	if req.Schema != GuidanceSchema {
		t.Fatal("expected GuidanceSchema")
	}
	for _, want := range []string{"achieve their goals", "challenges they may face"} {
		if !strings.Contains(req.System, want) {
			t.Fatalf("system prompt missing %q", want)
		}
	}
	msg := req.Messages[0].Content
	for _, want := range []string{
		"Career Options: Teacher, Data Analyst",
		"Importance of Social Impact (1-5): 4",
		"Geographical Preference: Remote",
		"Personality Traits: Not specified",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("user message missing %q:\n%s", want, msg)
		}
	}
}

func TestAdvise_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Input)
		field string
	}{
		{"no careers", func(in *Input) { in.CareerOptions = []string{" ", ""} }, "careerOptions"},
		{"impact zero", func(in *Input) { in.SocialImpactImportance = 0 }, "socialImpactImportance"},
		{"impact six", func(in *Input) { in.SocialImpactImportance = 6 }, "socialImpactImportance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider()
			in := validInput()
			tt.mut(&in)
			_, err := New(mock, DefaultConfig(), nil).Advise(context.Background(), in)
			var inErr *aiflow.InputError
			if !errors.As(err, &inErr) || inErr.Field != tt.field {
				t.Fatalf("expected InputError on %s, got %v", tt.field, err)
			}
			if mock.CallCount() != 0 {
				t.Fatal("provider should not be called")
			}
		})
	}
}

func TestAdvise_NoOutput(t *testing.T) {
	for _, resp := range []llm.MockResponse{
		{Content: json.RawMessage("")},
		llm.MockJSON(map[string]any{"guidance": "   "}),
	} {
		_, err := New(llm.NewMockProvider(resp), DefaultConfig(), nil).Advise(context.Background(), validInput())
		if !errors.Is(err, aiflow.ErrNoOutput) {
			t.Fatalf("expected ErrNoOutput, got %v", err)
		}
		if aiflow.UserMessage(err) != "AI failed to generate guidance output." {
			t.Fatalf("UserMessage = %q", aiflow.UserMessage(err))
		}
	}
}

type purposeRecorder struct {
	*llm.MockProvider
	purpose string
}

func (r *purposeRecorder) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	r.purpose = llm.PurposeFrom(ctx)
	return r.MockProvider.Generate(ctx, req)
}

func TestAdvise_Purpose(t *testing.T) {
	rec := &purposeRecorder{MockProvider: llm.NewMockProvider(llm.MockJSON(map[string]any{"guidance": "ok"}))}
	if _, err := New(rec, DefaultConfig(), nil).Advise(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.purpose != llm.PurposeGuidance {
		t.Fatalf("purpose = %q, want %q", rec.purpose, llm.PurposeGuidance)
	}
}

func TestSplitOptions(t *testing.T) {
	got := SplitOptions("Teacher, Nurse\n\n, Software Engineer ,")
	if strings.Join(got, "|") != "Teacher|Nurse|Software Engineer" {
		t.Fatalf("SplitOptions = %v", got)
	}
}
