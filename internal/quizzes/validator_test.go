package quizzes

import (
	"errors"
	"testing"

	"github.com/incharge-incontrol/backend/internal/models"
)

func validQuestion() models.Question {
	return models.Question{
		QuestionText: "A deadline slips. What do you do?",
		Options: []models.Option{
			{Text: "Take over the work yourself.", Type: models.OptionInCharge},
			{Text: "Re-plan with the team.", Type: models.OptionInControl},
			{Text: "Ask owners what they need.", Type: models.OptionInControl},
			{Text: "Reset stakeholder expectations.", Type: models.OptionInControl},
		},
	}
}

func validCandidate() Candidate {
	return Candidate{
		Languages: []string{"english"},
		Content: map[string]models.QuizContent{
			"english": {
				Title:     "Daily Check-In",
				Questions: []models.Question{validQuestion(), validQuestion()},
			},
		},
	}
}

func TestValidateStructureValid(t *testing.T) {
	if err := ValidateStructure(validCandidate(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateStructureViolations(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Candidate)
		enforceFull bool
		wantMessage string
	}{
		{
			name: "missing language content",
			mutate: func(c *Candidate) {
				c.Languages = append(c.Languages, "hindi")
			},
			wantMessage: "Content for language 'hindi' is missing.",
		},
		{
			name: "no questions",
			mutate: func(c *Candidate) {
				content := c.Content["english"]
				content.Questions = []models.Question{}
				c.Content["english"] = content
			},
			wantMessage: "[english] Quiz must have at least 1 question.",
		},
		{
			name: "nil questions",
			mutate: func(c *Candidate) {
				content := c.Content["english"]
				content.Questions = nil
				c.Content["english"] = content
			},
			wantMessage: "[english] Questions array is missing or invalid.",
		},
		{
			name: "wrong option count",
			mutate: func(c *Candidate) {
				content := c.Content["english"]
				content.Questions[1].Options = content.Questions[1].Options[:3]
				c.Content["english"] = content
			},
			wantMessage: "[english] Question 2 must have exactly 4 options.",
		},
		{
			name: "two in-charge options",
			mutate: func(c *Candidate) {
				content := c.Content["english"]
				content.Questions[0].Options[1].Type = models.OptionInCharge
				c.Content["english"] = content
			},
			wantMessage: "[english] Question 1 must have exactly 1 'In-Charge' option.",
		},
		{
			name: "untagged option",
			mutate: func(c *Candidate) {
				content := c.Content["english"]
				content.Questions[0].Options[1].Type = "Neutral"
				c.Content["english"] = content
			},
			wantMessage: "[english] Question 1 must have exactly 3 'In-Control' options.",
		},
		{
			name: "missing title on full check",
			mutate: func(c *Candidate) {
				content := c.Content["english"]
				content.Title = ""
				c.Content["english"] = content
			},
			enforceFull: true,
			wantMessage: "[english] Quiz title is required.",
		},
		{
			name: "missing question text on full check",
			mutate: func(c *Candidate) {
				content := c.Content["english"]
				content.Questions[1].QuestionText = ""
				c.Content["english"] = content
			},
			enforceFull: true,
			wantMessage: "[english] Question 2 text is required.",
		},
		{
			name: "missing option text on full check",
			mutate: func(c *Candidate) {
				content := c.Content["english"]
				content.Questions[0].Options[2].Text = ""
				c.Content["english"] = content
			},
			enforceFull: true,
			wantMessage: "[english] Question 1 options must all have text.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := validCandidate()
			tt.mutate(&candidate)
			err := ValidateStructure(candidate, tt.enforceFull)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if vErr.Message != tt.wantMessage {
				t.Fatalf("message = %q, want %q", vErr.Message, tt.wantMessage)
			}
		})
	}
}

func TestValidateStructureLenientAllowsEmptyText(t *testing.T) {
	candidate := validCandidate()
	content := candidate.Content["english"]
	content.Title = ""
	content.Questions[0].QuestionText = ""
	candidate.Content["english"] = content

	if err := ValidateStructure(candidate, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateStructureLegacyQuestions(t *testing.T) {
	candidate := Candidate{Questions: []models.Question{validQuestion()}}
	if err := ValidateStructure(candidate, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	candidate.Questions[0].Options = candidate.Questions[0].Options[:2]
	err := ValidateStructure(candidate, false)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if got := err.Error(); got != "Question 1 must have exactly 4 options." {
		t.Fatalf("message = %q", got)
	}
}
