package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"warehouse_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

var testSecret = []byte("middleware-test-secret")

func newEngine(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/protected", AuthMiddleware(testSecret), RoleAuthMiddleware(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextMemberID))
	})
	return engine
}

func TestAuthMiddleware(t *testing.T) {
	adminToken, err := utils.GenerateAccessToken(testSecret, time.Hour, "m-1", "admin@company.com", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	userToken, err := utils.GenerateAccessToken(testSecret, time.Hour, "m-2", "user@company.com", "user")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, ""},
		{"role not allowed", "Bearer " + userToken, http.StatusForbidden, ""},
		{"admin", "Bearer " + adminToken, http.StatusOK, "m-1"},
		{"scheme is case-insensitive", "bearer " + adminToken, http.StatusOK, "m-1"},
	}
	engine := newEngine("admin", "manager")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
			if tt.body != "" && w.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.body)
			}
		})
	}
}

func TestPassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/open", PassThrough(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
}
