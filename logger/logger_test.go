package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	prev := Log
	Log = zap.New(core)
	t.Cleanup(func() { Log = prev })

	var seen string
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ok", func(c *gin.Context) {
		seen = RequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusUnauthorized) })

	t.Run("propagates incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok?x=1", nil)
		req.Header.Set("X-Request-ID", "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "req-123", seen)
	})

	t.Run("generates id and warns on 4xx", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}

func TestRequestID_Unknown(t *testing.T) {
	assert.Equal(t, "unknown", RequestID(context.Background()))
	assert.Equal(t, "abc", RequestID(WithContext(context.Background(), "abc")))
}
