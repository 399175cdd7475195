package dailyquiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/incharge-incontrol/backend/internal/models"
	"github.com/incharge-incontrol/backend/internal/quizzes"
)

type countingSource struct {
	quiz  *models.Quiz
	err   error
	loads int
}

func (s *countingSource) GetActiveForDate(ctx context.Context, dayStart, dayEnd time.Time) (*models.Quiz, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return s.quiz, nil
}

func newTestCache(t *testing.T, source ActiveQuizSource) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCache(client, source, time.Minute, zap.NewNop())
}

func testQuiz() *models.Quiz {
	quiz := &models.Quiz{
		ID:        uuid.New(),
		Languages: []string{"english"},
		Content: map[string]models.QuizContent{
			"english": {Title: "Check-In"},
		},
		Status: models.StatusActive,
	}
	quiz.SyncLegacyFromEnglish()
	return quiz
}

func TestCacheServesSecondReadFromRedis(t *testing.T) {
	source := &countingSource{quiz: testQuiz()}
	cache := newTestCache(t, source)
	ctx := context.Background()
	dayStart, dayEnd := quizzes.DayWindow(time.Now())

	first, err := cache.GetActiveForDate(ctx, dayStart, dayEnd)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := cache.GetActiveForDate(ctx, dayStart, dayEnd)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}

	if source.loads != 1 {
		t.Fatalf("source loads = %d, want 1", source.loads)
	}
	if first.ID != source.quiz.ID || second.ID != source.quiz.ID {
		t.Fatalf("cache returned wrong quiz")
	}
	if second.Title != "Check-In" {
		t.Fatalf("cached quiz lost content: %+v", second)
	}
}

func TestCacheInvalidateForcesReload(t *testing.T) {
	source := &countingSource{quiz: testQuiz()}
	cache := newTestCache(t, source)
	ctx := context.Background()
	dayStart, dayEnd := quizzes.DayWindow(time.Now())

	if _, err := cache.GetActiveForDate(ctx, dayStart, dayEnd); err != nil {
		t.Fatalf("first read: %v", err)
	}
	cache.Invalidate(ctx, dayStart)
	if _, err := cache.GetActiveForDate(ctx, dayStart, dayEnd); err != nil {
		t.Fatalf("read after invalidate: %v", err)
	}

	if source.loads != 2 {
		t.Fatalf("source loads = %d, want 2", source.loads)
	}
}

func TestCacheDoesNotCacheNotFound(t *testing.T) {
	source := &countingSource{err: quizzes.ErrNotFound}
	cache := newTestCache(t, source)
	ctx := context.Background()
	dayStart, dayEnd := quizzes.DayWindow(time.Now())

	for i := 0; i < 2; i++ {
		_, err := cache.GetActiveForDate(ctx, dayStart, dayEnd)
		if !errors.Is(err, quizzes.ErrNotFound) {
			t.Fatalf("read %d: err = %v, want ErrNotFound", i, err)
		}
	}
	if source.loads != 2 {
		t.Fatalf("source loads = %d, want 2", source.loads)
	}
}
