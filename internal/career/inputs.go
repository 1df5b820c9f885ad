package career

import (
	"encoding/json"
	"fmt"

	"github.com/compasshq/compass/internal/quiz"
)

type answeredQuestion struct {
	Topic    string `json:"topic"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizResponsesJSON renders the questions and answers of past attempts as
// the stringified JSON the predictor expects. Unanswered questions are
// skipped; no answers renders as "".
func QuizResponsesJSON(results []quiz.Result) (string, error) {
	var answers []answeredQuestion
	for _, r := range results {
		for _, item := range r.Review {
			opt := item.SelectedOption()
			if opt == "" {
				continue
			}
			answers = append(answers, answeredQuestion{
				Topic:    r.TopicName,
				Question: item.Question,
				Answer:   opt,
			})
		}
	}
	if len(answers) == 0 {
		return "", nil
	}
	b, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal quiz responses: %w", err)
	}
	return string(b), nil
}
