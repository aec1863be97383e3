package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smart-exhibitor/backend/internal/middleware"
	"github.com/smart-exhibitor/backend/internal/models"
	"github.com/smart-exhibitor/backend/pkg/response"
	"github.com/smart-exhibitor/backend/pkg/utils"
)

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token string                 `json:"token"`
	User  models.ExhibitorPublic `json:"user"`
	Role  string                 `json:"role"`
}

// Accounts looks up exhibitor records for authentication.
type Accounts interface {
	GetByEmail(ctx context.Context, email string) (*models.Exhibitor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Exhibitor, error)
}

// Seeder provisions the demo accounts.
type Seeder interface {
	EnsureDemoAccounts(ctx context.Context) error
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	accounts   Accounts
	seeder     Seeder
	jwt        *JWTService
	revoker    *Revoker
	adminEmail string
	logger     *zap.Logger
}

// NewHandler creates an auth handler. revoker may be nil, in which case
// logout is a no-op on the server side.
func NewHandler(accounts Accounts, seeder Seeder, jwt *JWTService, revoker *Revoker, adminEmail string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{accounts: accounts, seeder: seeder, jwt: jwt, revoker: revoker, adminEmail: adminEmail, logger: logger}
}

func (h *Handler) roleFor(email string) string {
	if strings.EqualFold(email, h.adminEmail) {
		return string(models.RoleAdmin)
	}
	return string(models.RoleExhibitor)
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	ex, err := h.accounts.GetByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		response.Unauthorized(c, "invalid email or password")
		return
	}
	if !utils.CheckPassword(req.Password, ex.Password) {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	role := h.roleFor(ex.Email)
	token, err := h.jwt.Generate(ex.ID, ex.Email, role)
	if err != nil {
		h.logger.Error("generate token failed", zap.Error(err))
		response.Internal(c, "failed to generate token")
		return
	}

	response.OK(c, TokenResponse{Token: token, User: ex.ToPublic(), Role: role})
}

// Logout handles POST /api/auth/logout. Revokes the presented token's jti so it
// stops working before its natural expiry.
func (h *Handler) Logout(c *gin.Context) {
	if h.revoker != nil {
		claims := c.MustGet(middleware.ContextClaims).(*Claims)
		if err := h.revoker.Revoke(c.Request.Context(), claims.ID, claims.TTL()); err != nil {
			h.logger.Warn("revoke token failed", zap.Error(err))
		}
	}
	response.OK(c, gin.H{"message": "logged out"})
}

// Session handles GET /api/auth/session. Returns the authenticated account.
func (h *Handler) Session(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	ex, err := h.accounts.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Unauthorized(c, "session account no longer exists")
		return
	}
	response.OK(c, gin.H{"user": ex.ToPublic(), "role": h.roleFor(ex.Email)})
}

// Init handles POST /api/auth/init. Seeds the demo exhibitor and admin accounts;
// idempotent.
func (h *Handler) Init(c *gin.Context) {
	if err := h.seeder.EnsureDemoAccounts(c.Request.Context()); err != nil {
		h.logger.Error("seed demo accounts failed", zap.Error(err))
		response.Internal(c, "failed to initialize demo accounts")
		return
	}
	response.OK(c, gin.H{"message": "demo accounts ready"})
}
