package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerRecordsQueryAndIdentity(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/posts", func(c *gin.Context) {
		c.Set(ContextKeyUserID, "user-1")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts?published=false", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "/posts", fields["path"])
	assert.Equal(t, "published=false", fields["query"])
	assert.Equal(t, "user-1", fields["user_id"])
}

func TestLoggerOmitsEmptyFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.NotContains(t, fields, "query")
	assert.NotContains(t, fields, "user_id")
}
