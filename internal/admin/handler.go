package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smart-exhibitor/backend/internal/exhibitors"
	"github.com/smart-exhibitor/backend/internal/models"
	"github.com/smart-exhibitor/backend/pkg/response"
)

// ApprovalRequest is the body for the PUT approval endpoints.
type ApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// PaymentRequest is the body for PUT /api/admin/exhibitors/:id/payment.
type PaymentRequest struct {
	Status models.PaymentStatus `json:"status" binding:"required"`
}

// ChecklistRequest is the body for PUT /api/admin/exhibitors/:id/checklist.
type ChecklistRequest struct {
	Item string `json:"item" binding:"required"`
	Done *bool  `json:"done" binding:"required"`
}

// CreateExhibitorRequest is the body for POST /api/admin/exhibitors.
type CreateExhibitorRequest struct {
	Email         string               `json:"email" binding:"required,email"`
	Password      string               `json:"password" binding:"required,min=6"`
	CompanyName   string               `json:"companyName" binding:"required"`
	ContactName   string               `json:"contactName" binding:"required"`
	Phone         string               `json:"phone"`
	Website       string               `json:"website"`
	BoothNumber   string               `json:"boothNumber"`
	BoothSize     models.BoothSize     `json:"boothSize"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
}

// Handler serves the admin review endpoints.
type Handler struct {
	svc    *exhibitors.Service
	logger *zap.Logger
}

// NewHandler creates an admin handler.
func NewHandler(svc *exhibitors.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

func targetID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid exhibitor id")
		return uuid.Nil, false
	}
	return id, true
}

// ListExhibitors handles GET /api/admin/exhibitors.
func (h *Handler) ListExhibitors(c *gin.Context) {
	list, err := h.svc.ListExhibitors(c.Request.Context())
	if err != nil {
		exhibitors.WriteError(c, h.logger, err, "failed to list exhibitors")
		return
	}
	response.OK(c, list)
}

// GetExhibitor handles GET /api/admin/exhibitors/:id.
func (h *Handler) GetExhibitor(c *gin.Context) {
	id, ok := targetID(c)
	if !ok {
		return
	}
	ex, err := h.svc.GetExhibitor(c.Request.Context(), id)
	if err != nil {
		exhibitors.WriteError(c, h.logger, err, "failed to load exhibitor")
		return
	}
	response.OK(c, ex)
}

// CreateExhibitor handles POST /api/admin/exhibitors.
func (h *Handler) CreateExhibitor(c *gin.Context) {
	var req CreateExhibitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	ex, err := h.svc.CreateExhibitor(c.Request.Context(), exhibitors.CreateParams{
		Email:         req.Email,
		Password:      req.Password,
		CompanyName:   req.CompanyName,
		ContactName:   req.ContactName,
		Phone:         req.Phone,
		Website:       req.Website,
		BoothNumber:   req.BoothNumber,
		BoothSize:     req.BoothSize,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		exhibitors.WriteError(c, h.logger, err, "failed to create exhibitor")
		return
	}
	response.Created(c, ex)
}

func (h *Handler) approve(c *gin.Context, domain exhibitors.ApprovalDomain) {
	id, ok := targetID(c)
	if !ok {
		return
	}
	var req ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	ex, err := h.svc.Approve(c.Request.Context(), id, domain, *req.Approved)
	if err != nil {
		exhibitors.WriteError(c, h.logger, err, "failed to update approval")
		return
	}
	response.OK(c, ex.ToPublic())
}

// ApproveLogo handles PUT /api/admin/exhibitors/:id/logo. Approval regenerates
// the marketing banner with the approved logo.
func (h *Handler) ApproveLogo(c *gin.Context) {
	h.approve(c, exhibitors.DomainLogo)
}

// ApproveCompanyInfo handles PUT /api/admin/exhibitors/:id/company-info.
func (h *Handler) ApproveCompanyInfo(c *gin.Context) {
	h.approve(c, exhibitors.DomainCompanyInfo)
}

// ApproveBoothUpgrade handles PUT /api/admin/exhibitors/:id/booth-upgrade.
// Approval applies the requested booth size.
func (h *Handler) ApproveBoothUpgrade(c *gin.Context) {
	h.approve(c, exhibitors.DomainBoothUpgrade)
}

// SetPayment handles PUT /api/admin/exhibitors/:id/payment.
func (h *Handler) SetPayment(c *gin.Context) {
	id, ok := targetID(c)
	if !ok {
		return
	}
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	ex, err := h.svc.SetPaymentStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		exhibitors.WriteError(c, h.logger, err, "failed to update payment status")
		return
	}
	response.OK(c, ex.ToPublic())
}

// SetChecklist handles PUT /api/admin/exhibitors/:id/checklist.
func (h *Handler) SetChecklist(c *gin.Context) {
	id, ok := targetID(c)
	if !ok {
		return
	}
	var req ChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	ex, err := h.svc.SetChecklistItem(c.Request.Context(), id, req.Item, *req.Done)
	if err != nil {
		exhibitors.WriteError(c, h.logger, err, "failed to update checklist")
		return
	}
	response.OK(c, ex.ToPublic())
}

// Dashboard handles GET /api/admin/dashboard.
func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		exhibitors.WriteError(c, h.logger, err, "failed to compute stats")
		return
	}
	response.OK(c, stats)
}

// ResetDemo handles POST /api/admin/reset-demo. Wipes every exhibitor except
// the admin account and purges uploaded assets. Reseeding is a separate
// concern: POST /api/auth/init.
func (h *Handler) ResetDemo(c *gin.Context) {
	deleted, err := h.svc.ResetDemoData(c.Request.Context())
	if err != nil {
		exhibitors.WriteError(c, h.logger, err, "failed to reset demo data")
		return
	}
	h.logger.Info("demo data reset", zap.Int64("exhibitors_deleted", deleted))
	response.OK(c, gin.H{"exhibitorsDeleted": deleted})
}
