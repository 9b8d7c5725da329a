package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inkstone/core/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangePasswordResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t)

	_, u, err := svc.Register(&RegisterDTO{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	}, "", "")
	require.NoError(t, err)

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/"), func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, u.ID)
		c.Next()
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/auth/password",
		strings.NewReader(`{"currentPassword":"hunter22","newPassword":"newpassword"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "password updated", body.Message)
}
