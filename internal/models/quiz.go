package models

import (
	"time"

	"github.com/google/uuid"
)

// QuizStatus represents a quiz's place in its lifecycle.
type QuizStatus string

const (
	StatusDraft    QuizStatus = "DRAFT"
	StatusApproved QuizStatus = "APPROVED"
	StatusActive   QuizStatus = "ACTIVE"
	StatusArchived QuizStatus = "ARCHIVED"
)

// GeneratedBy tags quiz provenance.
type GeneratedBy string

const (
	GeneratedManual GeneratedBy = "MANUAL"
	GeneratedAI     GeneratedBy = "AI"
)

// OptionType is a leadership-style tag on an answer option.
// "Balanced" is a derived result, never a valid option type.
type OptionType string

const (
	OptionInCharge  OptionType = "In-Charge"
	OptionInControl OptionType = "In-Control"
)

// DefaultLanguage is assumed whenever no language is given.
const DefaultLanguage = "english"

// Option is one of the four answers offered per question.
type Option struct {
	Text string     `json:"text"`
	Type OptionType `json:"type"`
}

// Question holds a prompt and exactly four options
// (one In-Charge, three In-Control; enforced by the validator).
type Question struct {
	QuestionText string   `json:"questionText"`
	Options      []Option `json:"options"`
}

// QuizContent is the per-language quiz body.
type QuizContent struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// Quiz represents a daily leadership-style quiz.
//
// Content keyed by language code is the authoritative representation; the
// top-level Title/Description/Questions mirror Content["english"] for older
// clients and are re-derived on every content write, never edited directly.
type Quiz struct {
	ID                    uuid.UUID              `json:"id"`
	Languages             []string               `json:"languages"`
	Content               map[string]QuizContent `json:"content,omitempty"`
	Title                 string                 `json:"title"`
	Description           string                 `json:"description"`
	Questions             []Question             `json:"questions"`
	Status                QuizStatus             `json:"status"`
	GeneratedBy           GeneratedBy            `json:"generatedBy"`
	RequiresAdminApproval bool                   `json:"requiresAdminApproval"`
	ActiveDate            *time.Time             `json:"activeDate,omitempty"`
	CreatedAt             time.Time              `json:"createdAt"`
	UpdatedAt             time.Time              `json:"updatedAt"`
}

// SyncLegacyFromEnglish re-derives the legacy mirror fields from the english
// content entry, if present.
func (q *Quiz) SyncLegacyFromEnglish() {
	english, ok := q.Content[DefaultLanguage]
	if !ok {
		return
	}
	q.Title = english.Title
	q.Description = english.Description
	q.Questions = english.Questions
}
