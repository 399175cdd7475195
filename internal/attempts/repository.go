package attempts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/incharge-incontrol/backend/internal/models"
)

var (
	// ErrNotFound indicates no attempt exists for the lookup.
	ErrNotFound = errors.New("attempt not found")
	// ErrAlreadyAttempted indicates the user has already attempted the quiz.
	ErrAlreadyAttempted = errors.New("already attempted")
)

// Repository handles quiz attempt persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an attempts repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts an attempt. The unique constraint on (user_id, quiz_id) is
// the backstop against concurrent duplicate submissions: the losing insert
// surfaces as ErrAlreadyAttempted regardless of request interleaving.
func (r *Repository) Create(ctx context.Context, a *models.QuizAttempt) error {
	respJSON, err := json.Marshal(a.Responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}
	const q = `INSERT INTO quiz_attempts (user_id, quiz_id, responses, score_in_charge, score_in_control, result, language)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, completed_at`
	err = r.pool.QueryRow(ctx, q, a.UserID, a.QuizID, respJSON,
		a.Score.InCharge, a.Score.InControl, string(a.Result), a.Language).
		Scan(&a.ID, &a.CompletedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyAttempted
		}
		return err
	}
	return nil
}

// GetByUserAndQuiz returns the user's attempt for a quiz, or ErrNotFound.
func (r *Repository) GetByUserAndQuiz(ctx context.Context, userID, quizID uuid.UUID) (*models.QuizAttempt, error) {
	const q = `SELECT id, user_id, quiz_id, responses, score_in_charge, score_in_control, result, language, completed_at
		FROM quiz_attempts WHERE user_id = $1 AND quiz_id = $2`
	var (
		a        models.QuizAttempt
		respJSON []byte
	)
	err := r.pool.QueryRow(ctx, q, userID, quizID).
		Scan(&a.ID, &a.UserID, &a.QuizID, &respJSON, &a.Score.InCharge, &a.Score.InControl,
			&a.Result, &a.Language, &a.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(respJSON, &a.Responses); err != nil {
		return nil, fmt.Errorf("unmarshal responses: %w", err)
	}
	return &a, nil
}

// History returns all attempts for a user, newest first, each enriched with
// the quiz's title and content. Deleted quizzes produce NULL joins and the
// fallback title "Untitled Quiz".
func (r *Repository) History(ctx context.Context, userID uuid.UUID) ([]models.AttemptHistoryItem, error) {
	const q = `SELECT a.id, a.quiz_id, a.responses, a.score_in_charge, a.score_in_control, a.result, a.language, a.completed_at,
			q.title, q.content, q.questions
		FROM quiz_attempts a
		LEFT JOIN quizzes q ON q.id = a.quiz_id
		WHERE a.user_id = $1
		ORDER BY a.completed_at DESC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.AttemptHistoryItem{}
	for rows.Next() {
		var (
			item        models.AttemptHistoryItem
			respJSON    []byte
			legacyTitle *string
			contentJSON []byte
			questJSON   []byte
		)
		err := rows.Scan(&item.ID, &item.QuizID, &respJSON, &item.Score.InCharge, &item.Score.InControl,
			&item.Result, &item.Language, &item.Date, &legacyTitle, &contentJSON, &questJSON)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(respJSON, &item.Responses); err != nil {
			return nil, fmt.Errorf("unmarshal responses: %w", err)
		}
		if len(contentJSON) > 0 {
			if err := json.Unmarshal(contentJSON, &item.QuizContent); err != nil {
				return nil, fmt.Errorf("unmarshal quiz content: %w", err)
			}
		}
		if len(questJSON) > 0 {
			if err := json.Unmarshal(questJSON, &item.QuizQuestions); err != nil {
				return nil, fmt.Errorf("unmarshal quiz questions: %w", err)
			}
		}
		if item.QuizQuestions == nil {
			item.QuizQuestions = []models.Question{}
		}
		item.QuizTitle = resolveTitle(item.QuizContent, legacyTitle)
		items = append(items, item)
	}
	return items, rows.Err()
}

// resolveTitle picks a title from whichever content language is available,
// falling back to the legacy title.
func resolveTitle(content map[string]models.QuizContent, legacyTitle *string) string {
	if c, ok := content[models.DefaultLanguage]; ok && c.Title != "" {
		return c.Title
	}
	for _, c := range content {
		if c.Title != "" {
			return c.Title
		}
	}
	if legacyTitle != nil && *legacyTitle != "" {
		return *legacyTitle
	}
	return "Untitled Quiz"
}
