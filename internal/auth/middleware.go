package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smart-exhibitor/backend/internal/middleware"
	"github.com/smart-exhibitor/backend/pkg/response"
)

// Middleware returns a guard that validates the bearer token, rejects
// revoked sessions and sets the account claims in gin context. revoker may
// be nil, disabling the revocation lookup.
func Middleware(jwt *JWTService, revoker *Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := jwt.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		if revoker != nil && claims.ID != "" {
			revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, "session has been logged out")
				c.Abort()
				return
			}
		}
		c.Set(middleware.ContextUserID, claims.UserID)
		c.Set(middleware.ContextUserRole, claims.Role)
		c.Set(middleware.ContextUserEmail, claims.Email)
		c.Set(middleware.ContextClaims, claims)
		c.Next()
	}
}
