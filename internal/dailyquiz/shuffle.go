package dailyquiz

import (
	"math/rand"

	"github.com/incharge-incontrol/backend/internal/models"
)

// ShuffledCopy returns a deep copy of the quiz with every question's options
// shuffled, independently per question and per language entry (including the
// legacy questions list). The stored quiz is never mutated: repeated reads
// stay stable in content while only presentation order changes, so no
// positional bias reveals an option's type across views.
func ShuffledCopy(q models.Quiz) models.Quiz {
	out := q
	out.Questions = shuffledQuestions(q.Questions)
	if q.Content != nil {
		out.Content = make(map[string]models.QuizContent, len(q.Content))
		for lang, content := range q.Content {
			content.Questions = shuffledQuestions(content.Questions)
			out.Content[lang] = content
		}
	}
	return out
}

func shuffledQuestions(questions []models.Question) []models.Question {
	if questions == nil {
		return nil
	}
	out := make([]models.Question, len(questions))
	for i, q := range questions {
		options := make([]models.Option, len(q.Options))
		copy(options, q.Options)
		// Fisher-Yates, fresh draw per question per call.
		rand.Shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})
		q.Options = options
		out[i] = q
	}
	return out
}
