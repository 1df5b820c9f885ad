package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/compasshq/compass/internal/auth"
	"github.com/compasshq/compass/internal/llm"
	"github.com/compasshq/compass/internal/quiz"
	"github.com/compasshq/compass/internal/quizgen"
	"github.com/compasshq/compass/internal/services"
	"github.com/compasshq/compass/internal/store"
)

func quizServices(t *testing.T, mock *llm.MockProvider, signedIn bool) (*services.Services, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "compass.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	svc := &services.Services{
		History: st.HistoryRepo(),
		Quizzes: quizgen.New(mock, quizgen.DefaultConfig(), nil),
	}
	if signedIn {
		u := &store.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}
		if err := st.UserRepo().Create(context.Background(), u); err != nil {
			t.Fatalf("create user: %v", err)
		}
		svc.Account = &auth.Account{User: *u}
	}
	return svc, st
}

func twoQuestions() llm.MockResponse {
	return llm.MockJSON(map[string]any{
		"quizTitle": "Work Styles",
		"questions": []map[string]any{
			{"questionText": "Pick a setting", "options": []string{"Lab", "Studio", "Office", "Outdoors"}, "correctAnswerIndex": 1, "explanation": "Creative fit."},
			{"questionText": "Pick a tool", "options": []string{"Pen", "Code", "Saw", "Brush"}, "correctAnswerIndex": 0, "explanation": ""},
		},
	})
}

func TestPlayQuiz_SavesSignedInResult(t *testing.T) {
	svc, st := quizServices(t, llm.NewMockProvider(twoQuestions()), true)
	sess := quiz.NewSession()
	sess.Start(resolveTopic("career-aptitude"))

	var out bytes.Buffer
	answers := strings.NewReader("9\nx\n2\n4\n")
	if err := playQuiz(context.Background(), svc, sess, sess.Input(), answers, &out); err != nil {
		t.Fatalf("playQuiz: %v", err)
	}

	text := out.String()
	for _, want := range []string{"Work Styles", "Question 1/2", "Enter a number from 1 to 4", "✓ Correct!", "Explanation: Creative fit.", "Answer: Pen", "You answered 1 out of 2 questions correctly."} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}

	recs, err := st.HistoryRepo().QuizResults(context.Background(), store.QueryOpts{UserID: svc.UserID()})
	if err != nil {
		t.Fatalf("QuizResults: %v", err)
	}
	if len(recs) != 1 || recs[0].Score != 1 || recs[0].TopicID != "career-aptitude" {
		t.Fatalf("saved = %+v", recs)
	}
}

func TestPlayQuiz_AnonymousNotSaved(t *testing.T) {
	svc, st := quizServices(t, llm.NewMockProvider(twoQuestions()), false)
	sess := quiz.NewSession()
	sess.Start(resolveTopic("Marine Biology"))

	var out bytes.Buffer
	if err := playQuiz(context.Background(), svc, sess, sess.Input(), strings.NewReader("1\n1\n"), &out); err != nil {
		t.Fatalf("playQuiz: %v", err)
	}
	recs, _ := st.HistoryRepo().QuizResults(context.Background(), store.QueryOpts{})
	if len(recs) != 0 {
		t.Fatalf("anonymous attempt should not be saved, got %d", len(recs))
	}
}

func TestPlayQuiz_InputClosed(t *testing.T) {
	svc, _ := quizServices(t, llm.NewMockProvider(twoQuestions()), false)
	sess := quiz.NewSession()
	sess.Start(resolveTopic("logic-puzzles"))

	var out bytes.Buffer
	if err := playQuiz(context.Background(), svc, sess, sess.Input(), strings.NewReader(""), &out); err != nil {
		t.Fatalf("playQuiz: %v", err)
	}
	if !strings.Contains(out.String(), "(input closed)") {
		t.Fatalf("expected closed input notice:\n%s", out.String())
	}
}

func TestPlayQuiz_EmptyQuiz(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{"quizTitle": "x", "questions": []any{}}))
	svc, _ := quizServices(t, mock, false)
	sess := quiz.NewSession()
	sess.Start(resolveTopic("general-knowledge"))

	err := playQuiz(context.Background(), svc, sess, sess.Input(), strings.NewReader(""), &bytes.Buffer{})
	if err == nil || err.Error() != quiz.MsgEmptyQuiz {
		t.Fatalf("err = %v, want %q", err, quiz.MsgEmptyQuiz)
	}
}

func TestResolveTopic(t *testing.T) {
	if got := resolveTopic("Logic Puzzles"); got.ID != "logic-puzzles" {
		t.Fatalf("built-in name should match, got %+v", got)
	}
	got := resolveTopic("  Marine   Biology ")
	if got.ID != "marine-biology" || got.Name != "Marine   Biology" {
		t.Fatalf("free text topic = %+v", got)
	}
}
