package admin

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/incharge-incontrol/backend/internal/models"
	"github.com/incharge-incontrol/backend/pkg/response"
	"github.com/incharge-incontrol/backend/pkg/utils"
)

// Handler handles admin user management endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates an admin handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// Users handles GET /admin/users.
func (h *Handler) Users(c *gin.Context) {
	list, err := h.repo.ListEndUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("list users", zap.Error(err))
		response.Internal(c, "Failed to fetch users")
		return
	}
	response.OK(c, list)
}

// Import handles POST /admin/import: a multipart CSV of users. Rows upsert by
// email; created users get a derived temp password and must change it on
// first login. Row failures are reported in the summary, not as a request
// failure.
func (h *Handler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file uploaded")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	rows, err := ParseUserCSV(file)
	if err != nil {
		response.BadRequest(c, "Import failed: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	summary := ImportSummary{Details: []ImportDetail{}}

	for _, row := range rows {
		name := row["name"]
		email := row["email"]
		mobile := row["mobile"]
		company := row["company"]
		accessFlag := ParseAccessFlag(row["accessflag"])

		if name == "" || email == "" || mobile == "" {
			summary.Failure++
			detailEmail := email
			if detailEmail == "" {
				detailEmail = "Unknown"
			}
			summary.Details = append(summary.Details, ImportDetail{Email: detailEmail, Error: "Missing mandatory fields"})
			continue
		}

		existing, err := h.repo.GetByEmail(ctx, email)
		if err == nil {
			changed := existing.Name != name || existing.Mobile != mobile ||
				existing.Company != company || existing.AccessFlag != accessFlag
			if !changed {
				summary.Duplicates++
				continue
			}
			existing.Name = name
			existing.Mobile = mobile
			existing.Company = company
			existing.AccessFlag = accessFlag
			if err := h.repo.UpdateProfile(ctx, existing); err != nil {
				summary.Failure++
				summary.Details = append(summary.Details, ImportDetail{Email: email, Error: err.Error()})
				continue
			}
			summary.Updated++
			continue
		}
		if !errors.Is(err, ErrUserNotFound) {
			summary.Failure++
			summary.Details = append(summary.Details, ImportDetail{Email: email, Error: err.Error()})
			continue
		}

		hash, err := utils.HashPassword(TempPassword(name, mobile))
		if err != nil {
			summary.Failure++
			summary.Details = append(summary.Details, ImportDetail{Email: email, Error: err.Error()})
			continue
		}
		user := &models.User{
			Name:               name,
			Email:              email,
			Mobile:             mobile,
			Company:            company,
			Password:           hash,
			Role:               models.RoleUser,
			AccessFlag:         accessFlag,
			FirstLoginRequired: true,
		}
		if err := h.repo.Create(ctx, user); err != nil {
			summary.Failure++
			summary.Details = append(summary.Details, ImportDetail{Email: email, Error: err.Error()})
			continue
		}
		summary.Success++
	}

	response.OK(c, summary)
}

// Export handles GET /admin/export: streams end users as a CSV attachment.
func (h *Handler) Export(c *gin.Context) {
	users, err := h.repo.ListEndUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("export users", zap.Error(err))
		response.Internal(c, "Export failed")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=users_export.csv")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Name", "Email", "Mobile", "Company", "Access Flag", "First Login Required"})
	for _, u := range users {
		_ = w.Write([]string{
			u.Name, u.Email, u.Mobile, u.Company,
			strconv.FormatBool(u.AccessFlag), strconv.FormatBool(u.FirstLoginRequired),
		})
	}
	w.Flush()
}
