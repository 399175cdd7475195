package quizzes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/incharge-incontrol/backend/internal/models"
)

// Repository handles quiz persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a quizzes repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const quizColumns = `id, languages, content, title, description, questions, status, generated_by, requires_admin_approval, active_date, created_at, updated_at`

func scanQuiz(row pgx.Row) (*models.Quiz, error) {
	var (
		q           models.Quiz
		contentJSON []byte
		questJSON   []byte
	)
	err := row.Scan(&q.ID, &q.Languages, &contentJSON, &q.Title, &q.Description, &questJSON,
		&q.Status, &q.GeneratedBy, &q.RequiresAdminApproval, &q.ActiveDate, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(contentJSON) > 0 {
		if err := json.Unmarshal(contentJSON, &q.Content); err != nil {
			return nil, fmt.Errorf("unmarshal quiz content: %w", err)
		}
	}
	if len(questJSON) > 0 {
		if err := json.Unmarshal(questJSON, &q.Questions); err != nil {
			return nil, fmt.Errorf("unmarshal quiz questions: %w", err)
		}
	}
	return &q, nil
}

func marshalQuizJSON(q *models.Quiz) (contentJSON, questJSON []byte, err error) {
	if q.Content != nil {
		contentJSON, err = json.Marshal(q.Content)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal quiz content: %w", err)
		}
	}
	questions := q.Questions
	if questions == nil {
		questions = []models.Question{}
	}
	questJSON, err = json.Marshal(questions)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal quiz questions: %w", err)
	}
	return contentJSON, questJSON, nil
}

// Create inserts a new quiz and fills in generated fields.
func (r *Repository) Create(ctx context.Context, q *models.Quiz) error {
	contentJSON, questJSON, err := marshalQuizJSON(q)
	if err != nil {
		return err
	}
	const query = `INSERT INTO quizzes (languages, content, title, description, questions, status, generated_by, requires_admin_approval, active_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, q.Languages, contentJSON, q.Title, q.Description, questJSON,
		string(q.Status), string(q.GeneratedBy), q.RequiresAdminApproval, q.ActiveDate).
		Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// GetByID returns a quiz by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	return scanQuiz(r.pool.QueryRow(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE id = $1`, id))
}

// List returns quizzes newest first, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status models.QuizStatus) ([]models.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes ORDER BY created_at DESC`
	args := []interface{}{}
	if status != "" {
		query = `SELECT ` + quizColumns + ` FROM quizzes WHERE status = $1 ORDER BY created_at DESC`
		args = append(args, string(status))
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *q)
	}
	return list, rows.Err()
}

// Update persists the mutable quiz fields (content, languages, legacy mirror,
// status, active date).
func (r *Repository) Update(ctx context.Context, q *models.Quiz) error {
	contentJSON, questJSON, err := marshalQuizJSON(q)
	if err != nil {
		return err
	}
	const query = `UPDATE quizzes
		SET languages = $1, content = $2, title = $3, description = $4, questions = $5,
			status = $6, active_date = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at`
	err = r.pool.QueryRow(ctx, query, q.Languages, contentJSON, q.Title, q.Description, questJSON,
		string(q.Status), q.ActiveDate, q.ID).Scan(&q.UpdatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case isUniqueViolation(err):
		// Moving an ACTIVE quiz onto a date another ACTIVE quiz holds trips
		// the partial unique index just like activation does.
		return ErrDateTaken
	}
	return err
}

// UpdateStatus sets the quiz status only.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.QuizStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE quizzes SET status = $1, updated_at = NOW() WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Activate transitions a quiz to ACTIVE for the given UTC-midnight date.
//
// The conflict check and the write run in one transaction, and the partial
// unique index on (active_date) WHERE status='ACTIVE' is the authoritative
// backstop: two concurrent activations for the same date cannot both commit.
func (r *Repository) Activate(ctx context.Context, id uuid.UUID, date time.Time) error {
	dayStart := date
	dayEnd := dayStart.AddDate(0, 0, 1)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var conflicting uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM quizzes WHERE status = 'ACTIVE' AND id <> $1 AND active_date >= $2 AND active_date < $3`,
		id, dayStart, dayEnd).Scan(&conflicting)
	switch {
	case err == nil:
		return ErrDateTaken
	case !errors.Is(err, pgx.ErrNoRows):
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE quizzes SET status = 'ACTIVE', active_date = $1, updated_at = NOW() WHERE id = $2`,
		dayStart, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDateTaken
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrDateTaken
		}
		return err
	}
	return nil
}

// Delete removes a quiz permanently. Attempts referencing it are kept.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetActiveForDate returns the single ACTIVE quiz whose active_date falls in
// [dayStart, dayEnd), or ErrNotFound when no quiz is scheduled.
func (r *Repository) GetActiveForDate(ctx context.Context, dayStart, dayEnd time.Time) (*models.Quiz, error) {
	return scanQuiz(r.pool.QueryRow(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE status = 'ACTIVE' AND active_date >= $1 AND active_date < $2`,
		dayStart, dayEnd))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
