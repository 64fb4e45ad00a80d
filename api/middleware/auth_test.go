package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func authRouter(keys []string) *gin.Engine {
	r := gin.New()
	r.Use(Auth(keys))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(APIKeyContextKey)) })
	return r
}

func TestAuth(t *testing.T) {
	r := authRouter([]string{"alpha", " beta "})

	tests := []struct {
		name   string
		header [2]string
		status int
		key    string
	}{
		{"missing", [2]string{}, http.StatusUnauthorized, ""},
		{"wrong key", [2]string{"X-API-Key", "gamma"}, http.StatusUnauthorized, ""},
		{"prefix of key", [2]string{"X-API-Key", "alp"}, http.StatusUnauthorized, ""},
		{"x-api-key", [2]string{"X-API-Key", "alpha"}, http.StatusOK, "alpha"},
		{"trimmed config key", [2]string{"X-API-Key", "beta"}, http.StatusOK, "beta"},
		{"bearer", [2]string{"Authorization", "Bearer beta"}, http.StatusOK, "beta"},
		{"bearer lowercase scheme", [2]string{"Authorization", "bearer alpha"}, http.StatusOK, "alpha"},
		{"basic scheme", [2]string{"Authorization", "Basic alpha"}, http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header[0] != "" {
				req.Header.Set(tt.header[0], tt.header[1])
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.key, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"error":"unauthorized"`)
			}
		})
	}
}

func TestAuth_NoKeysIsOpen(t *testing.T) {
	r := authRouter([]string{"", "  "})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
