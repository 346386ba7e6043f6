package middleware

import (
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

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name          string
		handlerStatus int
		requestID     string
		expectedLevel zapcore.Level
	}{
		{name: "OK response", handlerStatus: http.StatusOK, expectedLevel: zapcore.InfoLevel},
		{name: "Client error", handlerStatus: http.StatusNotFound, expectedLevel: zapcore.WarnLevel},
		{name: "Server error", handlerStatus: http.StatusInternalServerError, expectedLevel: zapcore.ErrorLevel},
		{name: "Client request ID", handlerStatus: http.StatusOK, requestID: "req-123", expectedLevel: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)

			r := gin.New()
			r.Use(RequestLogger(zap.New(core).Sugar()))
			r.GET("/ping", func(c *gin.Context) {
				c.String(tt.handlerStatus, "pong")
			})

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.requestID != "" {
				req.Header.Set("X-Request-ID", tt.requestID)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.handlerStatus, w.Code)
			reqID := w.Header().Get("X-Request-ID")
			assert.NotEmpty(t, reqID)
			if tt.requestID != "" {
				assert.Equal(t, tt.requestID, reqID)
			}

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.expectedLevel, entry.Level)
			assert.Equal(t, reqID, entry.ContextMap()["request_id"])
			assert.Equal(t, "/ping", entry.ContextMap()["path"])
		})
	}
}
