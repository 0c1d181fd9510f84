package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/gitala/gitala_branch/internal/core/domain"
	"github.com/gitala/gitala_branch/internal/utils"
)

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// issued to branch staff.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		username := claims.Subject
		if username == "" {
			logger.Error("Username (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, username)
		ctx = context.WithValue(ctx, roleKey, domain.StaffRole(claims.Role))

		enrichedLogger := logger.With(slog.String("user_id", username))
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireOwner aborts requests from staff without the owner role. Applied to
// destructive and maintenance routes.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRoleFromCtx(c.Request.Context())
		if !ok || role != domain.RoleOwner {
			GetLoggerFromCtx(c.Request.Context()).Warn("Owner-only route refused", "role", string(role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Owner role required"})
			return
		}
		c.Next()
	}
}
