package quizgen

import "testing"

func TestValidators(t *testing.T) {
	tests := []struct {
		name      string
		q         Question
		validator Validator
		wantFail  bool
	}{
		{"structural ok", Question{Text: "Q?", Options: []string{"a", "b", "c", "d"}}, &StructuralValidator{}, false},
		{"two options ok", Question{Text: "Q?", Options: []string{"yes", "no"}}, &StructuralValidator{}, false},
		{"empty text", Question{Text: " ", Options: []string{"a", "b"}}, &StructuralValidator{}, true},
		{"one option", Question{Text: "Q?", Options: []string{"a"}}, &StructuralValidator{}, true},
		{"blank option", Question{Text: "Q?", Options: []string{"a", ""}}, &StructuralValidator{}, true},
		{"duplicate option", Question{Text: "Q?", Options: []string{"Paris", " paris"}}, &StructuralValidator{}, true},
		{"index ok", Question{Options: []string{"a", "b"}, CorrectIndex: 1}, &AnswerIndexValidator{}, false},
		{"index negative", Question{Options: []string{"a", "b"}, CorrectIndex: -1}, &AnswerIndexValidator{}, true},
		{"index too large", Question{Options: []string{"a", "b"}, CorrectIndex: 2}, &AnswerIndexValidator{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := tt.validator.Validate(&tt.q)
			if (verr != nil) != tt.wantFail {
				t.Fatalf("Validate() = %v, wantFail %v", verr, tt.wantFail)
			}
			if verr != nil && verr.Validator != tt.validator.Name() {
				t.Fatalf("Validator = %q, want %q", verr.Validator, tt.validator.Name())
			}
		})
	}
}
