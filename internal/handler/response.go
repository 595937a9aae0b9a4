package handler

import (
	"net/http"

	"invite-auth/shared/middleware"
	"invite-auth/shared/models"

	"github.com/gin-gonic/gin"
)

// respondOK writes a success envelope.
func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, models.Response{Code: http.StatusOK, Message: message, Data: data})
}

// respondError writes an error envelope and aborts the chain. The transport
// status stays 200; clients read the outcome from the envelope code.
func respondError(c *gin.Context, code int, message string) {
	c.Set(middleware.ResponseCodeKey, code)
	c.AbortWithStatusJSON(http.StatusOK, models.Response{Code: code, Message: message, Data: nil})
}
