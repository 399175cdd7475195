package analytics

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/incharge-incontrol/backend/internal/models"
	"github.com/incharge-incontrol/backend/pkg/response"
)

// Handler handles GET /admin/analytics.
type Handler struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates an analytics handler.
func NewHandler(pool *pgxpool.Pool, logger *zap.Logger) *Handler {
	return &Handler{pool: pool, logger: logger, now: time.Now}
}

// Dashboard handles GET /admin/analytics. The optional "role" query param
// narrows the report to users whose latest result matches ("incharge",
// "incontrol"); anything else means everyone.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.loadStandings(ctx)
	if err != nil {
		h.logger.Error("load analytics standings", zap.Error(err))
		response.Internal(c, "Failed to fetch analytics")
		return
	}
	langCounts, err := h.loadLanguageCounts(ctx)
	if err != nil {
		h.logger.Error("load language counts", zap.Error(err))
		response.Internal(c, "Failed to fetch analytics")
		return
	}

	response.OK(c, buildReport(users, langCounts, c.Query("role"), h.now()))
}

// loadStandings fetches every end user joined with their most recent attempt.
func (h *Handler) loadStandings(ctx context.Context) ([]userStanding, error) {
	const q = `SELECT u.id, u.name, u.email, u.created_at,
			a.score_in_charge, a.score_in_control, a.result, a.completed_at
		FROM users u
		LEFT JOIN (
			SELECT DISTINCT ON (user_id) user_id, score_in_charge, score_in_control, result, completed_at
			FROM quiz_attempts
			ORDER BY user_id, completed_at DESC
		) a ON a.user_id = u.id
		WHERE u.role = 'user'
		ORDER BY u.created_at DESC`
	rows, err := h.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []userStanding{}
	for rows.Next() {
		var (
			u           userStanding
			inCharge    *int
			inControl   *int
			result      *string
			completedAt *time.Time
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt,
			&inCharge, &inControl, &result, &completedAt); err != nil {
			return nil, err
		}
		if result != nil {
			u.LatestAttempt = &latestAttempt{
				Score:       models.Score{InCharge: *inCharge, InControl: *inControl},
				Result:      models.AttemptResult(*result),
				CompletedAt: *completedAt,
			}
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// loadLanguageCounts tallies attempts by the language they were taken in.
func (h *Handler) loadLanguageCounts(ctx context.Context) (map[string]int, error) {
	const q = `SELECT language, COUNT(*) FROM quiz_attempts GROUP BY language`
	rows, err := h.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var (
			lang  string
			count int
		)
		if err := rows.Scan(&lang, &count); err != nil {
			return nil, err
		}
		counts[lang] = count
	}
	return counts, rows.Err()
}
