package quizzes

import (
	"fmt"

	"github.com/incharge-incontrol/backend/internal/models"
)

// ValidationError reports the first structural rule a candidate quiz breaks.
// The message names the offending language and 1-based question index.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Candidate is the subset of quiz fields the validator inspects.
type Candidate struct {
	Questions []models.Question
	Content   map[string]models.QuizContent
	Languages []string
}

// ValidateStructure checks a candidate quiz against the structural rules:
// at least 1 question, exactly 4 options per question, exactly 1 'In-Charge'
// and 3 'In-Control' options. With enforceFull it additionally requires
// title, question text and option text to be non-empty (approval-time check).
//
// Validation is fail-fast: the first violation is returned and nothing else
// is inspected. The function is pure and safe for concurrent use.
func ValidateStructure(candidate Candidate, enforceFull bool) error {
	// Multi-language content takes precedence over the legacy questions list.
	if candidate.Content != nil && candidate.Languages != nil {
		for _, lang := range candidate.Languages {
			langContent, ok := candidate.Content[lang]
			if !ok {
				return validationErrorf("Content for language '%s' is missing.", lang)
			}
			if err := validateQuestions(langContent.Questions, lang, langContent.Title, enforceFull); err != nil {
				return err
			}
		}
		return nil
	}

	return validateQuestions(candidate.Questions, "", "", enforceFull)
}

func validateQuestions(questions []models.Question, lang, title string, enforceFull bool) error {
	prefix := ""
	if lang != "" {
		prefix = "[" + lang + "] "
	}

	if enforceFull && lang != "" && title == "" {
		return validationErrorf("%sQuiz title is required.", prefix)
	}

	if questions == nil {
		return validationErrorf("%sQuestions array is missing or invalid.", prefix)
	}
	if len(questions) < 1 {
		return validationErrorf("%sQuiz must have at least 1 question.", prefix)
	}

	for i, q := range questions {
		if enforceFull && q.QuestionText == "" {
			return validationErrorf("%sQuestion %d text is required.", prefix, i+1)
		}

		if len(q.Options) != 4 {
			return validationErrorf("%sQuestion %d must have exactly 4 options.", prefix, i+1)
		}

		inCharge := 0
		inControl := 0
		for _, opt := range q.Options {
			if enforceFull && opt.Text == "" {
				return validationErrorf("%sQuestion %d options must all have text.", prefix, i+1)
			}
			switch opt.Type {
			case models.OptionInCharge:
				inCharge++
			case models.OptionInControl:
				inControl++
			}
		}

		if inCharge != 1 {
			return validationErrorf("%sQuestion %d must have exactly 1 'In-Charge' option.", prefix, i+1)
		}
		if inControl != 3 {
			return validationErrorf("%sQuestion %d must have exactly 3 'In-Control' options.", prefix, i+1)
		}
	}
	return nil
}
