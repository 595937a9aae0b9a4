package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedRouter() (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	router := gin.New()
	router.Use(GinZapLogger(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })
	router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.Status(http.StatusInternalServerError)
	})
	router.GET("/envelope/:code", func(c *gin.Context) {
		code := http.StatusUnauthorized
		if c.Param("code") == "500" {
			code = http.StatusInternalServerError
		}
		c.Set(ResponseCodeKey, code)
		c.Status(http.StatusOK)
	})
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router, logs
}

func TestGinZapLogger_LevelsByStatus(t *testing.T) {
	router, logs := newObservedRouter()

	for _, path := range []string{"/ok?x=1", "/bad", "/boom"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok?x=1", entries[0].ContextMap()["path"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "Request error", entries[2].Message)
}

func TestGinZapLogger_SkipsHealth(t *testing.T) {
	router, logs := newObservedRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, logs.Len())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestGinZapLogger_RequestID(t *testing.T) {
	router, _ := newObservedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-42", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())
}

func TestGinZapLogger_LevelsByEnvelopeCode(t *testing.T) {
	router, logs := newObservedRouter()

	for _, path := range []string{"/envelope/401", "/envelope/500"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, int64(http.StatusUnauthorized), entries[0].ContextMap()["code"])
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}
