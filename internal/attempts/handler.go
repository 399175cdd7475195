package attempts

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/incharge-incontrol/backend/internal/middleware"
	"github.com/incharge-incontrol/backend/internal/models"
	"github.com/incharge-incontrol/backend/internal/quizzes"
	"github.com/incharge-incontrol/backend/pkg/response"
)

// SubmitRequest is the body for POST /quiz/submit.
type SubmitRequest struct {
	QuizID    uuid.UUID         `json:"quizId" binding:"required"`
	Responses []models.Response `json:"responses" binding:"required"`
	Language  string            `json:"language"`
}

// Handler handles quiz submission and history endpoints.
type Handler struct {
	repo     *Repository
	quizRepo *quizzes.Repository
	logger   *zap.Logger
}

// NewHandler creates an attempts handler.
func NewHandler(repo *Repository, quizRepo *quizzes.Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, quizRepo: quizRepo, logger: logger}
}

// Submit handles POST /quiz/submit. One attempt per user per quiz, ever; the
// storage unique constraint settles the race between check and insert, so at
// most one of two concurrent submissions persists.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	if _, err := h.quizRepo.GetByID(c.Request.Context(), req.QuizID); err != nil {
		if errors.Is(err, quizzes.ErrNotFound) {
			response.NotFound(c, "Quiz not found")
			return
		}
		h.logger.Error("get quiz", zap.Error(err))
		response.Internal(c, "Submission failed")
		return
	}

	if _, err := h.repo.GetByUserAndQuiz(c.Request.Context(), userID, req.QuizID); err == nil {
		response.Forbidden(c, "Already attempted")
		return
	} else if !errors.Is(err, ErrNotFound) {
		h.logger.Error("check attempt", zap.Error(err))
		response.Internal(c, "Submission failed")
		return
	}

	language := req.Language
	if language == "" {
		language = models.DefaultLanguage
	}

	score, result := Score(req.Responses)
	attempt := &models.QuizAttempt{
		UserID:    userID,
		QuizID:    req.QuizID,
		Responses: req.Responses,
		Score:     score,
		Result:    result,
		Language:  language,
	}

	if err := h.repo.Create(c.Request.Context(), attempt); err != nil {
		if errors.Is(err, ErrAlreadyAttempted) {
			response.Forbidden(c, "Already attempted")
			return
		}
		h.logger.Error("create attempt", zap.Error(err))
		response.Internal(c, "Submission failed")
		return
	}
	response.OK(c, attempt)
}

// History handles GET /quiz/history: the user's attempts newest first, each
// enriched with quiz title and content for detail rendering.
func (h *Handler) History(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	items, err := h.repo.History(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("fetch history", zap.Error(err))
		response.Internal(c, "Server error fetching history")
		return
	}
	response.OK(c, items)
}
