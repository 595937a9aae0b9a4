package handler

import (
	"invite-auth/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @Summary Current user profile
// @Description Returns the profile of the user the bearer token was issued to.
// @Tags user
// @Produce json
// @Success 200 {object} models.Response "data: userResponse"
// @Failure 401 {object} models.Response "Missing, invalid or expired token"
// @Failure 404 {object} models.Response "User no longer exists"
// @Security BearerAuth
// @Router /auth/user-info [get]
func (h *AuthHandler) userInfo(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		handleServiceError(c, models.ErrUnauthorized)
		return
	}

	user, err := h.authService.UserInfo(c.Request.Context(), identity.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	zap.L().Debug("User info retrieved", zap.String("userID", user.ID.String()))
	respondOK(c, "ok", newUserResponse(user))
}
