package career

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/compasshq/compass/internal/aiflow"
	"github.com/compasshq/compass/internal/llm"
	"github.com/compasshq/compass/internal/quiz"
)

const profileJSON = `{"skills":"Go, SQL","education":"BSc Computer Science","experience":"2 years backend"}`

func TestPredict_HappyPath(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"predictedCareers": []string{"Backend Engineer", " ", "Data Engineer"},
		"reasoning":        "  Strong **systems** skills.  ",
	}))
	p := New(mock, DefaultConfig(), nil)

	got, err := p.Predict(context.Background(), Input{ProfileInformation: profileJSON})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(got.Careers, ",") != "Backend Engineer,Data Engineer" {
		t.Fatalf("Careers = %v", got.Careers)
	}
	if got.Reasoning != "Strong **systems** skills." {
		t.Fatalf("Reasoning = %q", got.Reasoning)
	}

	req, _ := mock.LastCall()
	if req.Schema != PredictionSchema {
		t.Fatal("expected PredictionSchema")
	}
	for _, want := range []string{"Interests and hobbies", "Skills and abilities", "Education and experience", "Personality traits"} {
		if !strings.Contains(req.System, want) {
			t.Fatalf("system prompt missing %q", want)
		}
	}
	msg := req.Messages[0].Content
	if !strings.Contains(msg, "Quiz Responses:\nNone") || !strings.Contains(msg, profileJSON) {
		t.Fatalf("user message = %q", msg)
	}
}

func TestPredict_PurposeLabel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{"predictedCareers": []string{"Nurse"}, "reasoning": "r"}))
	var purpose string
	spy := providerFunc(func(ctx context.Context, req llm.Request) (*llm.Response, error) {
		purpose = llm.PurposeFrom(ctx)
		return mock.Generate(ctx, req)
	})
	if _, err := New(spy, DefaultConfig(), nil).Predict(context.Background(), Input{QuizResponses: "[]x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if purpose != llm.PurposeCareerPrediction {
		t.Fatalf("purpose = %q", purpose)
	}
}

type providerFunc func(context.Context, llm.Request) (*llm.Response, error)

func (f providerFunc) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	return f(ctx, req)
}

func (f providerFunc) ModelID() string { return "func" }

func TestPredict_EmptyInput(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := New(mock, DefaultConfig(), nil).Predict(context.Background(), Input{QuizResponses: "  "})
	var inErr *aiflow.InputError
	if !errors.As(err, &inErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatal("provider should not be called")
	}
}

func TestPredict_NoOutput(t *testing.T) {
	for _, content := range []string{"", "null"} {
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(content)})
		_, err := New(mock, DefaultConfig(), nil).Predict(context.Background(), Input{ProfileInformation: profileJSON})
		if !errors.Is(err, aiflow.ErrNoOutput) {
			t.Fatalf("content %q: expected ErrNoOutput, got %v", content, err)
		}
		if err.Error() != "AI failed to generate career prediction output." {
			t.Fatalf("message = %q", err.Error())
		}
	}
}

func TestPredict_EmptyCareersReturned(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{"predictedCareers": []string{" "}, "reasoning": "Not enough to go on yet."}))
	pred, err := New(mock, DefaultConfig(), nil).Predict(context.Background(), Input{ProfileInformation: profileJSON})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pred.Careers) != 0 || pred.Reasoning != "Not enough to go on yet." {
		t.Fatalf("prediction = %+v", pred)
	}
}

func TestBuildUserMessage_Sections(t *testing.T) {
	msg := buildUserMessage(Input{ProfileInformation: profileJSON}, 0)
	if !strings.Contains(msg, "Quiz Responses:\nNone") || !strings.Contains(msg, "Profile Information:\n"+profileJSON) {
		t.Fatalf("unexpected message:\n%s", msg)
	}
	if strings.Contains(msg, "Return between") {
		t.Fatalf("message should not constrain the career count:\n%s", msg)
	}
}

func TestPredict_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("connection refused")}})
	_, err := New(mock, DefaultConfig(), nil).Predict(context.Background(), Input{ProfileInformation: profileJSON})
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestBuildUserMessage_Truncates(t *testing.T) {
	msg := buildUserMessage(Input{QuizResponses: strings.Repeat("é", 20)}, 7)
	if !strings.Contains(msg, "[truncated]") {
		t.Fatalf("expected truncation marker: %q", msg)
	}
	if strings.Contains(msg, "�") {
		t.Fatal("truncation split a rune")
	}
}

func TestQuizResponsesJSON(t *testing.T) {
	results := []quiz.Result{{
		TopicName: "Career Aptitude",
		Review: []quiz.ReviewItem{
			{Question: "Preferred work setting?", Options: []string{"Office", "Outdoors"}, Selected: 1},
			{Question: "Skipped?", Options: []string{"a", "b"}, Selected: -1},
		},
	}}
	got, err := QuizResponsesJSON(results)
	if err != nil {
		t.Fatalf("QuizResponsesJSON: %v", err)
	}
	var decoded []map[string]string
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["answer"] != "Outdoors" || decoded[0]["topic"] != "Career Aptitude" {
		t.Fatalf("decoded = %v", decoded)
	}

	empty, err := QuizResponsesJSON(nil)
	if err != nil || empty != "" {
		t.Fatalf("empty = %q, %v", empty, err)
	}
}
