package middleware

import (
	"net/http"
	"strings"

	"stockmaster_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID   = "userID"
	ContextEmail    = "email"
	ContextUserRole = "userRole"
)

// TokenValidator verifies a bearer token.
type TokenValidator interface {
	ValidateToken(tokenString string) (*utils.Claims, error)
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
// A missing token is 401; a token that fails validation is 403.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Access token required", ""))
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Access token required", "Use Bearer <token>"))
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			utils.LogDebug("Rejected access token", map[string]interface{}{"reason": err.Error(), "path": c.Request.URL.Path})
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Invalid or expired token", ""))
			return
		}

		// Set user information in the context for downstream handlers
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}
