package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.POST("/convert/:kind", func(c *gin.Context) {
		c.Set(ConversionSourceKey, c.Param("kind"))
		c.Set(ConversionStrategyKey, "placeholder")
		c.String(http.StatusOK, "<p>ok</p>")
	})
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(zap.NewNop()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())
}

func TestRequestIDReused(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	newRouter(zap.NewNop()).ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequestIDTooLongIsReplaced(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
	w := httptest.NewRecorder()
	newRouter(zap.NewNop()).ServeHTTP(w, req)

	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestRequestLoggerLevels(t *testing.T) {
	tests := []struct {
		path    string
		level   zapcore.Level
		message string
	}{
		{path: "/ok?x=1", level: zapcore.InfoLevel, message: "request"},
		{path: "/bad", level: zapcore.WarnLevel, message: "client error"},
		{path: "/boom", level: zapcore.ErrorLevel, message: "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			newRouter(zap.New(core)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
			assert.Equal(t, tt.message, entries[0].Message)
			assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
		})
	}
}

func TestRequestLoggerConversionFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	newRouter(zap.New(core)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/convert/text", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/convert/:kind", fields["route"])
	assert.Equal(t, int64(len("<p>ok</p>")), fields["bytes_out"])
	assert.Equal(t, "text", fields[ConversionSourceKey])
	assert.Equal(t, "placeholder", fields[ConversionStrategyKey])
	assert.NotContains(t, fields, ErrorKindKey)
}

func TestRequestLoggerOmitsUnsetFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	newRouter(zap.New(core)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.NotContains(t, fields, "route")
	assert.NotContains(t, fields, ConversionSourceKey)
	assert.NotContains(t, fields, ConversionStrategyKey)
}
