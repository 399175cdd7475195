package dailyquiz

import (
	"sort"
	"testing"

	"github.com/incharge-incontrol/backend/internal/models"
)

func shuffleFixture() models.Quiz {
	question := models.Question{
		QuestionText: "A deadline slips. What do you do?",
		Options: []models.Option{
			{Text: "a", Type: models.OptionInCharge},
			{Text: "b", Type: models.OptionInControl},
			{Text: "c", Type: models.OptionInControl},
			{Text: "d", Type: models.OptionInControl},
		},
	}
	quiz := models.Quiz{
		Languages: []string{"english", "hindi"},
		Content: map[string]models.QuizContent{
			"english": {Title: "Check-In", Questions: []models.Question{question}},
			"hindi":   {Title: "Check-In (HI)", Questions: []models.Question{question}},
		},
	}
	quiz.SyncLegacyFromEnglish()
	return quiz
}

func optionTexts(q models.Question) []string {
	texts := make([]string, len(q.Options))
	for i, opt := range q.Options {
		texts[i] = opt.Text
	}
	return texts
}

func TestShuffledCopyPreservesOptions(t *testing.T) {
	quiz := shuffleFixture()
	got := ShuffledCopy(quiz)

	for lang, content := range got.Content {
		if len(content.Questions) != 1 {
			t.Fatalf("%s: question count = %d", lang, len(content.Questions))
		}
		texts := optionTexts(content.Questions[0])
		sort.Strings(texts)
		if len(texts) != 4 || texts[0] != "a" || texts[1] != "b" || texts[2] != "c" || texts[3] != "d" {
			t.Fatalf("%s: options changed content: %v", lang, texts)
		}
	}
	texts := optionTexts(got.Questions[0])
	sort.Strings(texts)
	if len(texts) != 4 || texts[0] != "a" {
		t.Fatalf("legacy options changed content: %v", texts)
	}
}

func TestShuffledCopyDoesNotMutateSource(t *testing.T) {
	quiz := shuffleFixture()
	original := optionTexts(quiz.Content["english"].Questions[0])

	for i := 0; i < 50; i++ {
		_ = ShuffledCopy(quiz)
	}

	after := optionTexts(quiz.Content["english"].Questions[0])
	for i := range original {
		if original[i] != after[i] {
			t.Fatalf("source option order changed at %d: %v -> %v", i, original, after)
		}
	}
}

func TestShuffledCopyChangesOrder(t *testing.T) {
	quiz := shuffleFixture()
	// With 4 options the identity permutation has probability 1/24 per draw;
	// 100 draws all landing on it means the shuffle is broken.
	for i := 0; i < 100; i++ {
		got := ShuffledCopy(quiz)
		texts := optionTexts(got.Questions[0])
		if texts[0] != "a" || texts[1] != "b" || texts[2] != "c" || texts[3] != "d" {
			return
		}
	}
	t.Fatal("options never left their original order")
}

func TestShuffledCopyNilQuestions(t *testing.T) {
	got := ShuffledCopy(models.Quiz{})
	if got.Questions != nil {
		t.Fatalf("expected nil questions, got %v", got.Questions)
	}
	if got.Content != nil {
		t.Fatalf("expected nil content, got %v", got.Content)
	}
}
