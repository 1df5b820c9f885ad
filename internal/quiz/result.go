package quiz

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/compasshq/compass/internal/quizgen"
	"github.com/compasshq/compass/internal/store"
)

// ReviewItem describes how one question was answered.
type ReviewItem struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	Selected     int      `json:"selected"`
	CorrectIndex int      `json:"correctIndex"`
	Correct      bool     `json:"correct"`
	Explanation  string   `json:"explanation,omitempty"`
}

// SelectedOption returns the chosen option text, or "" when unanswered.
func (r ReviewItem) SelectedOption() string {
	if r.Selected < 0 || r.Selected >= len(r.Options) {
		return ""
	}
	return r.Options[r.Selected]
}

// CorrectOption returns the correct option text.
func (r ReviewItem) CorrectOption() string {
	if r.CorrectIndex < 0 || r.CorrectIndex >= len(r.Options) {
		return ""
	}
	return r.Options[r.CorrectIndex]
}

// Result is a completed attempt ready to persist.
type Result struct {
	AttemptID  string
	TopicID    string
	TopicName  string
	QuizTitle  string
	Difficulty quizgen.Difficulty
	Score      int
	Total      int
	Review     []ReviewItem
	CreatedAt  time.Time
}

// Review lists each question with the user's answer. Unanswered questions
// have Selected = -1.
func (s *Session) Review() []ReviewItem {
	if s.Quiz == nil {
		return nil
	}
	items := make([]ReviewItem, len(s.Quiz.Questions))
	for i, q := range s.Quiz.Questions {
		items[i] = ReviewItem{
			Question:     q.Text,
			Options:      q.Options,
			Selected:     s.Answers[i],
			CorrectIndex: q.CorrectIndex,
			Correct:      s.Answers[i] == q.CorrectIndex,
			Explanation:  q.Explanation,
		}
	}
	return items
}

// Result returns the completed attempt. It fails unless the session is in
// PhaseCompleted.
func (s *Session) Result() (Result, error) {
	if s.Phase != PhaseCompleted {
		return Result{}, ErrWrongPhase
	}
	return Result{
		AttemptID:  s.AttemptID,
		TopicID:    s.Topic.ID,
		TopicName:  s.Topic.Name,
		QuizTitle:  s.Quiz.Title,
		Difficulty: s.Difficulty,
		Score:      s.Score,
		Total:      len(s.Quiz.Questions),
		Review:     s.Review(),
		CreatedAt:  time.Now(),
	}, nil
}

// Summary is the completion line shown to the user.
func (r Result) Summary() string {
	return fmt.Sprintf("You answered %d out of %d questions correctly.", r.Score, r.Total)
}

// Record converts the result to its stored form.
func (r Result) Record(userID int) (*store.QuizResult, error) {
	answers, err := json.Marshal(r.Review)
	if err != nil {
		return nil, fmt.Errorf("marshal review: %w", err)
	}
	return &store.QuizResult{
		AttemptID:  r.AttemptID,
		UserID:     userID,
		TopicID:    r.TopicID,
		QuizTitle:  r.QuizTitle,
		Difficulty: string(r.Difficulty),
		Score:      r.Score,
		Total:      r.Total,
		Answers:    string(answers),
		CreatedAt:  r.CreatedAt,
	}, nil
}

// FromRecord rebuilds a Result from its stored form.
func FromRecord(rec store.QuizResult) (Result, error) {
	var review []ReviewItem
	if rec.Answers != "" {
		if err := json.Unmarshal([]byte(rec.Answers), &review); err != nil {
			return Result{}, fmt.Errorf("decode answers for attempt %s: %w", rec.AttemptID, err)
		}
	}
	name := rec.TopicID
	if t, ok := TopicByID(rec.TopicID); ok {
		name = t.Name
	}
	return Result{
		AttemptID:  rec.AttemptID,
		TopicID:    rec.TopicID,
		TopicName:  name,
		QuizTitle:  rec.QuizTitle,
		Difficulty: quizgen.Difficulty(rec.Difficulty),
		Score:      rec.Score,
		Total:      rec.Total,
		Review:     review,
		CreatedAt:  rec.CreatedAt,
	}, nil
}

// FromRecords converts stored results in order.
func FromRecords(recs []store.QuizResult) ([]Result, error) {
	out := make([]Result, 0, len(recs))
	for _, rec := range recs {
		r, err := FromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
