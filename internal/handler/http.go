package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func noRoute(c *gin.Context) {
	respondError(c, http.StatusNotFound, "route not found")
}

// Recovery turns a panic into a 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		zap.L().Error("Recovered from panic",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		respondError(c, http.StatusInternalServerError, msgInternal)
	})
}
