package middleware

import (
	"context"

	"github.com/gitala/gitala_branch/internal/core/domain"
)

const (
	userIDKey = contextKey("userID")
	roleKey   = contextKey("role")
)

// GetUserIDFromCtx retrieves the authenticated staff username from the
// context. The second return reports whether auth middleware set it.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// GetRoleFromCtx retrieves the authenticated staff role from the context.
func GetRoleFromCtx(ctx context.Context) (domain.StaffRole, bool) {
	role, ok := ctx.Value(roleKey).(domain.StaffRole)
	return role, ok
}
