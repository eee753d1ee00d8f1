package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mddstore/backend/internal/infrastructure/auth"
	"github.com/mddstore/backend/internal/interfaces/http/dto"
)

// Context keys set by Authenticate
const (
	CtxUserID  = "user_id"
	CtxEmail   = "user_email"
	CtxIsAdmin = "user_is_admin"
)

// Authenticate validates the Bearer token and stashes the caller's identity
// in the request context
func Authenticate(jwt *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Err("UNAUTHORIZED", "Missing bearer token"))
			return
		}

		claims, err := jwt.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Err("UNAUTHORIZED", "Invalid or expired token"))
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

// RequireAdmin rejects non-admin callers. Must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Err("FORBIDDEN", "Administrator access required"))
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's id
func UserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// IsAdmin reports whether the caller has admin rights
func IsAdmin(c *gin.Context) bool {
	if v, ok := c.Get(CtxIsAdmin); ok {
		if admin, ok := v.(bool); ok {
			return admin
		}
	}
	return false
}
