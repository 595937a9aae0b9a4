package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"

	// ResponseCodeKey holds the application code of an envelope that was sent
	// with a different transport status. It drives the log level when set.
	ResponseCodeKey = "response_code"
)

var skippedPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// GinZapLogger logs every request through zap once the handler chain has run.
// Health checks and metrics scrapes are not logged. Each request carries an
// X-Request-ID, taken from the caller or generated here.
func GinZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		path := c.Request.URL.Path
		if _, skip := skippedPaths[path]; skip {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		if rawQuery := c.Request.URL.RawQuery; rawQuery != "" {
			path = path + "?" + rawQuery
		}
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("request_id", requestID),
		}
		level := status
		if code := c.GetInt(ResponseCodeKey); code != 0 {
			level = code
			fields = append(fields, zap.Int("code", code))
		}

		if len(c.Errors) > 0 {
			for _, ginErr := range c.Errors.ByType(gin.ErrorTypeAny) {
				log.Error("Request error", append(fields, zap.Error(ginErr.Err))...)
			}
			return
		}

		switch {
		case level >= http.StatusInternalServerError:
			log.Error("Server error", fields...)
		case level >= http.StatusBadRequest:
			log.Warn("Client error", fields...)
		default:
			log.Info("Request completed", fields...)
		}
	}
}

// RequestID returns the id assigned by GinZapLogger, or "".
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
