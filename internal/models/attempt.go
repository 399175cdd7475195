package models

import (
	"time"

	"github.com/google/uuid"
)

// AttemptResult is the derived three-way classification.
type AttemptResult string

const (
	ResultInCharge  AttemptResult = "In-Charge"
	ResultInControl AttemptResult = "In-Control"
	ResultBalanced  AttemptResult = "Balanced"
)

// Response records the option type a user picked for one question.
type Response struct {
	QuestionID string     `json:"questionId"`
	AnswerType OptionType `json:"answerType"`
}

// Score tallies response types for an attempt.
type Score struct {
	InCharge  int `json:"inCharge"`
	InControl int `json:"inControl"`
}

// QuizAttempt is one user's single, immutable completed run through a quiz.
// At most one attempt exists per (UserID, QuizID); the database unique
// constraint is the authoritative guard.
type QuizAttempt struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"userId"`
	QuizID      uuid.UUID     `json:"quizId"`
	Responses   []Response    `json:"responses"`
	Score       Score         `json:"score"`
	Result      AttemptResult `json:"result"`
	Language    string        `json:"language"`
	CompletedAt time.Time     `json:"completedAt"`
}

// AttemptHistoryItem is an attempt enriched with quiz data for history views.
// Quiz fields fall back gracefully when the quiz has since been deleted.
type AttemptHistoryItem struct {
	ID            uuid.UUID              `json:"id"`
	QuizID        uuid.UUID              `json:"quizId"`
	QuizTitle     string                 `json:"quizTitle"`
	Date          time.Time              `json:"date"`
	Result        AttemptResult          `json:"result"`
	Score         Score                  `json:"score"`
	Responses     []Response             `json:"responses"`
	Language      string                 `json:"language"`
	QuizContent   map[string]QuizContent `json:"quizContent,omitempty"`
	QuizQuestions []Question             `json:"quizQuestions"`
}
