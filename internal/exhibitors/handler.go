package exhibitors

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smart-exhibitor/backend/internal/middleware"
	"github.com/smart-exhibitor/backend/internal/models"
	"github.com/smart-exhibitor/backend/pkg/response"
	"github.com/smart-exhibitor/backend/pkg/storage"
)

// CompanyInfoRequest is the body for POST /api/exhibitors/company-info.
type CompanyInfoRequest struct {
	Description    string   `json:"description" binding:"required"`
	Products       []string `json:"products" binding:"required"`
	TargetAudience string   `json:"targetAudience" binding:"required"`
}

// BoothUpgradeRequest is the body for POST /api/exhibitors/booth-upgrade.
type BoothUpgradeRequest struct {
	RequestedSize models.BoothSize `json:"requestedSize" binding:"required"`
}

// WebinarDateRequest is the body for POST /api/exhibitors/webinar-date.
type WebinarDateRequest struct {
	Date time.Time `json:"date" binding:"required"`
}

// Handler serves the exhibitor self-service endpoints. Every route operates
// on the authenticated exhibitor's own record.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates an exhibitor handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// WriteError maps service errors onto the response envelope. Shared with the
// admin handler so both surfaces report the state machine's errors the same
// way.
func WriteError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "exhibitor not found")
	case errors.Is(err, ErrDuplicateEmail):
		response.Conflict(c, "email already registered")
	default:
		logger.Error(fallback, zap.Error(err))
		response.Internal(c, fallback)
	}
}

func selfID(c *gin.Context) uuid.UUID {
	return c.MustGet(middleware.ContextUserID).(uuid.UUID)
}

// Dashboard handles GET /api/exhibitors/dashboard.
func (h *Handler) Dashboard(c *gin.Context) {
	ex, err := h.svc.Dashboard(c.Request.Context(), selfID(c))
	if err != nil {
		WriteError(c, h.logger, err, "failed to load dashboard")
		return
	}
	response.OK(c, ex)
}

// UploadLogo handles POST /api/exhibitors/logo (multipart, form field: logo).
func (h *Handler) UploadLogo(c *gin.Context) {
	file, err := c.FormFile("logo")
	if err != nil {
		response.BadRequest(c, "missing file (form field: logo)")
		return
	}
	if file.Size > storage.MaxLogoFileSize {
		response.BadRequest(c, "file exceeds 5MB limit")
		return
	}
	rc, err := file.Open()
	if err != nil {
		h.logger.Error("open uploaded file failed", zap.Error(err))
		response.Internal(c, "failed to read file")
		return
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, storage.MaxLogoFileSize+1))
	if err != nil {
		h.logger.Error("read uploaded file failed", zap.Error(err))
		response.Internal(c, "failed to read file")
		return
	}

	sub, err := h.svc.SubmitLogo(c.Request.Context(), selfID(c), file.Filename, file.Header.Get("Content-Type"), data)
	if err != nil {
		WriteError(c, h.logger, err, "failed to store logo")
		return
	}
	response.OK(c, sub)
}

// SubmitCompanyInfo handles POST /api/exhibitors/company-info.
func (h *Handler) SubmitCompanyInfo(c *gin.Context) {
	var req CompanyInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	info, err := h.svc.SubmitCompanyInfo(c.Request.Context(), selfID(c), req.Description, req.Products, req.TargetAudience)
	if err != nil {
		WriteError(c, h.logger, err, "failed to save company info")
		return
	}
	response.OK(c, info)
}

// RequestBoothUpgrade handles POST /api/exhibitors/booth-upgrade.
func (h *Handler) RequestBoothUpgrade(c *gin.Context) {
	var req BoothUpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	upgrade, err := h.svc.RequestBoothUpgrade(c.Request.Context(), selfID(c), req.RequestedSize)
	if err != nil {
		WriteError(c, h.logger, err, "failed to request booth upgrade")
		return
	}
	response.OK(c, upgrade)
}

// ListWebinarDates handles GET /api/exhibitors/webinar-dates.
func (h *Handler) ListWebinarDates(c *gin.Context) {
	slots, err := h.svc.AvailableWebinarDates(c.Request.Context(), selfID(c))
	if err != nil {
		WriteError(c, h.logger, err, "failed to list webinar dates")
		return
	}
	response.OK(c, slots)
}

// SelectWebinarDate handles POST /api/exhibitors/webinar-date.
func (h *Handler) SelectWebinarDate(c *gin.Context) {
	var req WebinarDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	date, err := h.svc.SelectWebinarDate(c.Request.Context(), selfID(c), req.Date)
	if err != nil {
		WriteError(c, h.logger, err, "failed to select webinar date")
		return
	}
	response.OK(c, gin.H{"webinarDate": date})
}

// GenerateBanner handles POST /api/exhibitors/banner.
func (h *Handler) GenerateBanner(c *gin.Context) {
	b, err := h.svc.GenerateBanner(c.Request.Context(), selfID(c))
	if err != nil {
		WriteError(c, h.logger, err, "failed to generate banner")
		return
	}
	response.OK(c, b)
}
