package handler

import (
	"strings"

	"invite-auth/internal/domain"
	"invite-auth/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

// AuthMiddleware verifies the bearer token before any handler runs.
// Verification never touches the store.
func (h *AuthHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrUnauthorized)
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			zap.L().Warn("Invalid Authorization header format")
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrUnauthorized)
			return
		}

		identity, err := h.authService.VerifyToken(c.Request.Context(), parts[1])
		tokenVerificationsTotal.WithLabelValues(outcome(err)).Inc()
		if err != nil {
			zap.L().Debug("Token verification failed", zap.Error(err))
			handleServiceError(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the verified identity carries role.
// It must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			handleServiceError(c, models.ErrUnauthorized)
			return
		}
		if !models.HasRole(identity.Roles, role) {
			zap.L().Warn("Role check failed",
				zap.String("userID", identity.UserID.String()),
				zap.String("requiredRole", role),
				zap.Strings("roles", identity.Roles),
			)
			handleServiceError(c, models.ErrForbidden)
			return
		}
		c.Next()
	}
}

func identityFromContext(c *gin.Context) (*domain.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*domain.Identity)
	return identity, ok && identity != nil
}
