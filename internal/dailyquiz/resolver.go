package dailyquiz

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/incharge-incontrol/backend/internal/attempts"
	"github.com/incharge-incontrol/backend/internal/models"
	"github.com/incharge-incontrol/backend/internal/quizzes"
)

// ErrNoActiveQuiz means no quiz is scheduled for the current UTC day. This is
// a normal "nothing to show" outcome, not a server fault.
var ErrNoActiveQuiz = errors.New("no active quiz for today")

// Result is what the resolver hands to the presentation layer.
type Result struct {
	Quiz             models.Quiz         `json:"quiz"`
	AlreadyAttempted bool                `json:"alreadyAttempted"`
	Attempt          *models.QuizAttempt `json:"attempt"`
}

// Resolver determines which quiz a user may see today.
type Resolver struct {
	source      ActiveQuizSource
	attemptRepo *attempts.Repository
	now         func() time.Time
}

// NewResolver creates a resolver. source is typically the Cache, or the quiz
// repository directly when Redis is not configured.
func NewResolver(source ActiveQuizSource, attemptRepo *attempts.Repository) *Resolver {
	return &Resolver{source: source, attemptRepo: attemptRepo, now: time.Now}
}

// NewResolverWithClock is test-only for deterministic "today".
func NewResolverWithClock(source ActiveQuizSource, attemptRepo *attempts.Repository, now func() time.Time) *Resolver {
	return &Resolver{source: source, attemptRepo: attemptRepo, now: now}
}

// ResolveForToday finds the quiz active on the current UTC calendar day,
// reports whether the user already attempted it, and returns a copy with
// freshly shuffled options. At most one quiz can match (activation enforces
// date exclusivity). Returns ErrNoActiveQuiz when nothing is scheduled.
func (r *Resolver) ResolveForToday(ctx context.Context, userID uuid.UUID) (*Result, error) {
	dayStart, dayEnd := quizzes.DayWindow(r.now())

	quiz, err := r.source.GetActiveForDate(ctx, dayStart, dayEnd)
	if err != nil {
		if errors.Is(err, quizzes.ErrNotFound) {
			return nil, ErrNoActiveQuiz
		}
		return nil, err
	}

	result := &Result{Quiz: ShuffledCopy(*quiz)}

	attempt, err := r.attemptRepo.GetByUserAndQuiz(ctx, userID, quiz.ID)
	switch {
	case err == nil:
		result.AlreadyAttempted = true
		result.Attempt = attempt
	case !errors.Is(err, attempts.ErrNotFound):
		return nil, err
	}
	return result, nil
}
