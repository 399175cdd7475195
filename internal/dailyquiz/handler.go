package dailyquiz

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/incharge-incontrol/backend/internal/middleware"
	"github.com/incharge-incontrol/backend/pkg/response"
)

// Handler handles GET /quiz/active.
type Handler struct {
	resolver *Resolver
	logger   *zap.Logger
}

// NewHandler creates a daily quiz handler.
func NewHandler(resolver *Resolver, logger *zap.Logger) *Handler {
	return &Handler{resolver: resolver, logger: logger}
}

// GetActive handles GET /quiz/active. Options come back shuffled per call;
// callers must not allow submission when alreadyAttempted is set.
func (h *Handler) GetActive(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	result, err := h.resolver.ResolveForToday(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNoActiveQuiz) {
			response.NotFound(c, "No active quiz for today")
			return
		}
		h.logger.Error("resolve active quiz", zap.Error(err))
		response.Internal(c, "Server error")
		return
	}
	response.OK(c, result)
}
