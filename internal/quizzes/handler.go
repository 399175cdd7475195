package quizzes

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/incharge-incontrol/backend/internal/models"
	"github.com/incharge-incontrol/backend/pkg/response"
)

// CacheInvalidator drops cached active-quiz entries for the given dates.
// Lifecycle writes call it so same-day changes are visible immediately.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, dates ...time.Time)
}

// CreateRequest is the body for POST /admin/quizzes.
type CreateRequest struct {
	Title       string                        `json:"title"`
	Description string                        `json:"description"`
	Questions   []models.Question             `json:"questions"`
	ActiveDate  string                        `json:"activeDate"`
	Languages   []string                      `json:"languages"`
	Content     map[string]models.QuizContent `json:"content"`
}

// UpdateRequest is the body for PUT /admin/quizzes/:id. Pointer fields are
// merged only when present; a present-but-empty activeDate clears the date.
type UpdateRequest struct {
	Title       *string                       `json:"title"`
	Description *string                       `json:"description"`
	Questions   []models.Question             `json:"questions"`
	ActiveDate  *string                       `json:"activeDate"`
	Languages   []string                      `json:"languages"`
	Content     map[string]models.QuizContent `json:"content"`
}

// ActivateRequest is the body for PUT /admin/quizzes/:id/activate.
type ActivateRequest struct {
	ActiveDate string `json:"activeDate"`
}

// Handler handles admin quiz lifecycle endpoints.
type Handler struct {
	repo   *Repository
	cache  CacheInvalidator
	logger *zap.Logger
}

// NewHandler creates a quizzes handler. cache may be nil when no cache is configured.
func NewHandler(repo *Repository, cache CacheInvalidator, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, cache: cache, logger: logger}
}

func (h *Handler) invalidate(ctx context.Context, dates ...*time.Time) {
	if h.cache == nil {
		return
	}
	var present []time.Time
	for _, d := range dates {
		if d != nil {
			present = append(present, *d)
		}
	}
	if len(present) > 0 {
		h.cache.Invalidate(ctx, present...)
	}
}

// Create handles POST /admin/quizzes (manual authoring; quizzes enter DRAFT).
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := ValidateStructure(Candidate{Questions: req.Questions, Content: req.Content, Languages: req.Languages}, false); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var activeDate *time.Time
	if req.ActiveDate != "" {
		parsed, err := ParseActiveDate(req.ActiveDate)
		if err != nil {
			response.BadRequest(c, "invalid active date")
			return
		}
		activeDate = &parsed
	}

	languages := req.Languages
	if languages == nil {
		languages = []string{models.DefaultLanguage}
	}

	quiz := &models.Quiz{
		Languages:             languages,
		Content:               req.Content,
		Title:                 req.Title,
		Description:           req.Description,
		Questions:             req.Questions,
		Status:                models.StatusDraft,
		GeneratedBy:           models.GeneratedManual,
		RequiresAdminApproval: true,
		ActiveDate:            activeDate,
	}
	quiz.SyncLegacyFromEnglish()

	if err := h.repo.Create(c.Request.Context(), quiz); err != nil {
		h.logger.Error("create quiz", zap.Error(err))
		response.Internal(c, "failed to create quiz")
		return
	}
	response.Created(c, quiz)
}

// Update handles PUT /admin/quizzes/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid quiz id")
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	quiz, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "quiz not found")
			return
		}
		h.logger.Error("get quiz", zap.Error(err))
		response.Internal(c, "failed to load quiz")
		return
	}

	if err := ValidateStructure(Candidate{Questions: req.Questions, Content: req.Content, Languages: req.Languages}, false); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	previousDate := quiz.ActiveDate

	if req.Content != nil {
		quiz.Content = req.Content
		quiz.SyncLegacyFromEnglish()
	}
	if req.Languages != nil {
		quiz.Languages = req.Languages
	}
	if req.Content == nil {
		if req.Title != nil {
			quiz.Title = *req.Title
		}
		if req.Description != nil {
			quiz.Description = *req.Description
		}
		if req.Questions != nil {
			quiz.Questions = req.Questions
		}
	}
	if req.ActiveDate != nil {
		if *req.ActiveDate == "" {
			quiz.ActiveDate = nil
		} else {
			parsed, err := ParseActiveDate(*req.ActiveDate)
			if err != nil {
				response.BadRequest(c, "invalid active date")
				return
			}
			quiz.ActiveDate = &parsed
		}
	}

	if err := h.repo.Update(c.Request.Context(), quiz); err != nil {
		if errors.Is(err, ErrDateTaken) {
			date := ""
			if quiz.ActiveDate != nil {
				date = " for " + quiz.ActiveDate.Format("2006-01-02")
			}
			response.Conflict(c, "Another quiz is already active"+date+".")
			return
		}
		h.logger.Error("update quiz", zap.Error(err))
		response.Internal(c, "failed to update quiz")
		return
	}
	h.invalidate(c.Request.Context(), previousDate, quiz.ActiveDate)
	response.OK(c, quiz)
}

// List handles GET /admin/quizzes with an optional ?status= filter.
func (h *Handler) List(c *gin.Context) {
	status := models.QuizStatus(c.Query("status"))
	list, err := h.repo.List(c.Request.Context(), status)
	if err != nil {
		h.logger.Error("list quizzes", zap.Error(err))
		response.Internal(c, "failed to list quizzes")
		return
	}
	if list == nil {
		list = []models.Quiz{}
	}
	response.OK(c, list)
}

// Get handles GET /admin/quizzes/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid quiz id")
		return
	}
	quiz, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "quiz not found")
			return
		}
		h.logger.Error("get quiz", zap.Error(err))
		response.Internal(c, "failed to load quiz")
		return
	}
	response.OK(c, quiz)
}

// Approve handles PUT /admin/quizzes/:id/approve. Only DRAFT quizzes may be
// approved, and the full-content validation must pass; a failed approval
// leaves the status untouched.
func (h *Handler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid quiz id")
		return
	}
	quiz, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "quiz not found")
			return
		}
		h.logger.Error("get quiz", zap.Error(err))
		response.Internal(c, "failed to load quiz")
		return
	}

	if !CanApprove(quiz.Status) {
		response.BadRequest(c, "Only DRAFT quizzes can be approved.")
		return
	}

	if err := ValidateStructure(Candidate{Questions: quiz.Questions, Content: quiz.Content, Languages: quiz.Languages}, true); err != nil {
		response.BadRequest(c, "Cannot approve incomplete quiz: "+err.Error())
		return
	}

	if err := h.repo.UpdateStatus(c.Request.Context(), id, models.StatusApproved); err != nil {
		h.logger.Error("approve quiz", zap.Error(err))
		response.Internal(c, "failed to approve quiz")
		return
	}
	quiz.Status = models.StatusApproved
	response.OK(c, quiz)
}

// Activate handles PUT /admin/quizzes/:id/activate.
func (h *Handler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid quiz id")
		return
	}

	var req ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ActiveDate == "" {
		response.BadRequest(c, "Active date is required.")
		return
	}
	targetDate, err := ParseActiveDate(req.ActiveDate)
	if err != nil {
		response.BadRequest(c, "invalid active date")
		return
	}

	quiz, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "quiz not found")
			return
		}
		h.logger.Error("get quiz", zap.Error(err))
		response.Internal(c, "failed to load quiz")
		return
	}

	if !CanActivate(quiz.Status) {
		response.BadRequest(c, "Quiz must be DRAFT or APPROVED before activation.")
		return
	}

	if err := h.repo.Activate(c.Request.Context(), id, targetDate); err != nil {
		switch {
		case errors.Is(err, ErrDateTaken):
			response.Conflict(c, "Another quiz is already active for "+targetDate.Format("2006-01-02")+".")
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "quiz not found")
		default:
			h.logger.Error("activate quiz", zap.Error(err))
			response.Internal(c, "failed to activate quiz")
		}
		return
	}

	h.invalidate(c.Request.Context(), quiz.ActiveDate, &targetDate)
	quiz.Status = models.StatusActive
	quiz.ActiveDate = &targetDate
	response.OK(c, quiz)
}

// Delete handles DELETE /admin/quizzes/:id. Attempts referencing the quiz
// are kept; history views fall back gracefully.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid quiz id")
		return
	}

	quiz, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "quiz not found")
			return
		}
		h.logger.Error("get quiz", zap.Error(err))
		response.Internal(c, "failed to load quiz")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "quiz not found")
			return
		}
		h.logger.Error("delete quiz", zap.Error(err))
		response.Internal(c, "failed to delete quiz")
		return
	}
	h.invalidate(c.Request.Context(), quiz.ActiveDate)
	response.OK(c, gin.H{"message": "Quiz deleted successfully"})
}
