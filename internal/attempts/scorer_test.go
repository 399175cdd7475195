package attempts

import (
	"testing"

	"github.com/incharge-incontrol/backend/internal/models"
)

func makeResponses(inCharge, inControl int) []models.Response {
	responses := make([]models.Response, 0, inCharge+inControl)
	for i := 0; i < inCharge; i++ {
		responses = append(responses, models.Response{AnswerType: models.OptionInCharge})
	}
	for i := 0; i < inControl; i++ {
		responses = append(responses, models.Response{AnswerType: models.OptionInControl})
	}
	return responses
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		inCharge  int
		inControl int
		want      models.AttemptResult
	}{
		{"even split is balanced", 5, 5, models.ResultBalanced},
		{"all in-charge", 10, 0, models.ResultInCharge},
		{"all in-control", 0, 10, models.ResultInControl},
		{"seven three leans balanced", 7, 3, models.ResultBalanced},
		{"three seven leans balanced", 3, 7, models.ResultBalanced},
		{"nine one is in-charge", 9, 1, models.ResultInCharge},
		{"one nine is in-control", 1, 9, models.ResultInControl},
		{"small all in-charge", 3, 0, models.ResultInCharge},
		{"two one is balanced", 2, 1, models.ResultBalanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, result := Score(makeResponses(tt.inCharge, tt.inControl))
			if score.InCharge != tt.inCharge || score.InControl != tt.inControl {
				t.Fatalf("score = %d/%d, want %d/%d", score.InCharge, score.InControl, tt.inCharge, tt.inControl)
			}
			if result != tt.want {
				t.Fatalf("result = %s, want %s", result, tt.want)
			}
		})
	}
}

func TestScoreEmptyResponses(t *testing.T) {
	score, result := Score(nil)
	if score.InCharge != 0 || score.InControl != 0 {
		t.Fatalf("score = %d/%d, want 0/0", score.InCharge, score.InControl)
	}
	if result != models.ResultBalanced {
		t.Fatalf("result = %s, want %s", result, models.ResultBalanced)
	}
}

func TestScoreIgnoresUnknownTypes(t *testing.T) {
	responses := append(makeResponses(2, 0), models.Response{AnswerType: "Other"})
	score, _ := Score(responses)
	if score.InCharge != 2 || score.InControl != 0 {
		t.Fatalf("score = %d/%d, want 2/0", score.InCharge, score.InControl)
	}
}
