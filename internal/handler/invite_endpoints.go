package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"invite-auth/internal/service"
	"invite-auth/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @Summary Issue an invite code
// @Description Admin only. Omitted fields default to a generated code, one use and no expiry.
// @Tags invite
// @Accept json
// @Produce json
// @Param request body createInviteCodeRequest false "Invite code options"
// @Success 200 {object} models.Response "data: inviteCodeResponse"
// @Failure 400 {object} models.Response "Invalid options"
// @Failure 401 {object} models.Response "Missing or invalid token"
// @Failure 403 {object} models.Response "Not an admin"
// @Failure 409 {object} models.Response "Code already exists"
// @Security BearerAuth
// @Router /auth/invite-codes [post]
func (h *AuthHandler) createInviteCode(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		handleServiceError(c, models.ErrUnauthorized)
		return
	}

	var req createInviteCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	input := service.CreateInviteCodeInput{
		Code:      req.Code,
		MaxUses:   req.MaxUses,
		CreatedBy: &identity.UserID,
	}
	if req.ExpireDate != nil && *req.ExpireDate != "" {
		expireDate, err := time.Parse(time.DateOnly, *req.ExpireDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "expireDate must be formatted as YYYY-MM-DD")
			return
		}
		input.ExpireDate = &expireDate
	}

	invite, err := h.authService.CreateInviteCode(c.Request.Context(), input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	inviteCodesCreatedTotal.Inc()
	zap.L().Info("Invite code issued", zap.String("createdBy", identity.UserID.String()), zap.Int("maxUses", invite.MaxUses))
	respondOK(c, "invite code created", newInviteCodeResponse(invite))
}
