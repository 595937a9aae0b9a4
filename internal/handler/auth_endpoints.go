package handler

import (
	"net/http"

	"invite-auth/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @Summary Check an invite code
// @Description Reports whether the invite code can currently be used. Never consumes it.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validateInviteCodeRequest true "Invite code"
// @Success 200 {object} models.Response "data: {valid: bool}"
// @Failure 400 {object} models.Response "Missing invite code"
// @Router /auth/validate-invite-code [post]
func (h *AuthHandler) validateInviteCode(c *gin.Context) {
	var req validateInviteCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	valid, err := h.authService.ValidateInviteCode(c.Request.Context(), req.InviteCode)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if !valid {
		inviteValidationsTotal.WithLabelValues("invalid").Inc()
		respondOK(c, "invite code is invalid", validateInviteCodeResponse{Valid: false})
		return
	}
	inviteValidationsTotal.WithLabelValues("valid").Inc()
	respondOK(c, "invite code is valid", validateInviteCodeResponse{Valid: true})
}

// @Summary Register a user
// @Description Creates an account, consumes one use of the invite code and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Registration data"
// @Success 200 {object} models.Response "data: authResponse"
// @Failure 400 {object} models.Response "Invalid input or invite code"
// @Failure 409 {object} models.Response "Username already taken"
// @Router /auth/register [post]
func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		registrationsTotal.WithLabelValues("failure").Inc()
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username:   req.Username,
		Password:   req.Password,
		InviteCode: req.InviteCode,
		Email:      req.Email,
	})
	registrationsTotal.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondOK(c, "registered successfully", authResponse{
		Token: result.Token,
		User:  newUserResponse(result.User),
	})
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} models.Response "data: authResponse"
// @Failure 400 {object} models.Response "Missing fields"
// @Failure 401 {object} models.Response "Invalid username or password"
// @Router /auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		loginsTotal.WithLabelValues("failure").Inc()
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	loginsTotal.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondOK(c, "logged in successfully", authResponse{
		Token: result.Token,
		User:  newUserResponse(result.User),
	})
}

// logout is a no-op: tokens are stateless and the client discards its copy.
func (h *AuthHandler) logout(c *gin.Context) {
	zap.L().Debug("Logout requested", zap.String("ip", c.ClientIP()))
	respondOK(c, "logged out successfully", nil)
}
