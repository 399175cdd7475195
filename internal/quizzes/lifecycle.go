package quizzes

import (
	"errors"
	"time"

	"github.com/incharge-incontrol/backend/internal/models"
)

var (
	// ErrNotFound indicates the referenced quiz does not exist.
	ErrNotFound = errors.New("quiz not found")
	// ErrDateTaken indicates another quiz is already active for the target date.
	ErrDateTaken = errors.New("another quiz is already active for this date")
)

// CanApprove reports whether a quiz may transition to APPROVED.
func CanApprove(status models.QuizStatus) bool {
	return status == models.StatusDraft
}

// CanActivate reports whether a quiz may transition to ACTIVE.
// Re-activation of an already ACTIVE quiz (date change) is allowed.
func CanActivate(status models.QuizStatus) bool {
	switch status {
	case models.StatusDraft, models.StatusApproved, models.StatusActive:
		return true
	}
	return false
}

// NormalizeActiveDate truncates a timestamp to UTC midnight, the granularity
// at which active-date exclusivity is enforced.
func NormalizeActiveDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayWindow returns the [midnight, midnight+24h) UTC interval containing t.
func DayWindow(t time.Time) (start, end time.Time) {
	start = NormalizeActiveDate(t)
	return start, start.AddDate(0, 0, 1)
}

// ParseActiveDate accepts an RFC3339 timestamp or a plain YYYY-MM-DD date and
// normalizes it to UTC midnight.
func ParseActiveDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NormalizeActiveDate(t), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeActiveDate(t), nil
}
