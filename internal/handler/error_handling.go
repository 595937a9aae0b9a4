package handler

import (
	"errors"
	"net/http"

	"invite-auth/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgInvalidBody       = "invalid request body"
	msgUnauthorized      = "unauthorized, please log in"
	msgTokenExpired      = "token expired"
	msgTokenInvalid      = "invalid token"
	msgForbidden         = "forbidden"
	msgInvalidCredential = "invalid username or password"
	msgUsernameTaken     = "username is already taken"
	msgInternal          = "internal server error"
)

func handleServiceError(c *gin.Context, err error) {
	var validationErr *models.ValidationError

	switch {
	case errors.As(err, &validationErr):
		respondError(c, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, models.ErrInviteCodeNotFound),
		errors.Is(err, models.ErrInviteCodeExhausted),
		errors.Is(err, models.ErrInviteCodeExpired),
		errors.Is(err, models.ErrInviteCodeInactive):
		respondError(c, http.StatusBadRequest, inviteCodeMessage(err))
	case errors.Is(err, models.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, models.ErrInvalidInput.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, msgInvalidCredential)
	case errors.Is(err, models.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, msgTokenExpired)
	case errors.Is(err, models.ErrTokenInvalid), errors.Is(err, models.ErrTokenMalformed):
		respondError(c, http.StatusUnauthorized, msgTokenInvalid)
	case errors.Is(err, models.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, models.ErrForbidden):
		respondError(c, http.StatusForbidden, msgForbidden)
	case errors.Is(err, models.ErrUserNotFound):
		respondError(c, http.StatusNotFound, models.ErrUserNotFound.Error())
	case errors.Is(err, models.ErrNotFound):
		respondError(c, http.StatusNotFound, models.ErrNotFound.Error())
	case errors.Is(err, models.ErrUserAlreadyExists):
		respondError(c, http.StatusConflict, msgUsernameTaken)
	case errors.Is(err, models.ErrInviteCodeAlreadyExists):
		respondError(c, http.StatusConflict, models.ErrInviteCodeAlreadyExists.Error())
	default:
		zap.L().Error("Unhandled internal error in handleServiceError",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, msgInternal)
	}
}

func inviteCodeMessage(err error) string {
	for _, sentinel := range []error{
		models.ErrInviteCodeNotFound,
		models.ErrInviteCodeExhausted,
		models.ErrInviteCodeExpired,
		models.ErrInviteCodeInactive,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
