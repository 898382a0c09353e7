package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/library/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequireAuth_InjectsEditor(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour, "library")
	token, err := manager.GenerateToken("alice")
	assert.NoError(t, err)

	var editor string
	r := gin.New()
	r.GET("/secure", NewAuthMiddleware(manager).RequireAuth(), func(c *gin.Context) {
		editor = GetEditor(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "alice", editor)
}

func TestRequireAuth_AbortsWithoutToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour, "library")

	called := false
	r := gin.New()
	r.GET("/secure", NewAuthMiddleware(manager).RequireAuth(), func(c *gin.Context) {
		called = true
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secure", nil))

	assert.False(t, called)
	assert.Contains(t, w.Body.String(), `"code":40100`)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var seen string
	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/books/:index", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	t.Run("沿用客户端的请求ID", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/books/3", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
		assert.Contains(t, buf.String(), `"route":"/books/:index"`)
		assert.Contains(t, buf.String(), `"status":200`)
	})

	t.Run("生成新的请求ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/1", nil))

		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})
}
