package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type staticParser map[string]uint64

func (p staticParser) ParseToken(token string) (uint64, error) {
	if id, ok := p[token]; ok {
		return id, nil
	}
	return 0, errors.New("invalid token")
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	parser := staticParser{"good": 7}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   uint64
	}{
		{"valid token", "Bearer good", http.StatusOK, 7},
		{"missing header", "", http.StatusUnauthorized, 0},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, 0},
		{"empty token", "Bearer  ", http.StatusUnauthorized, 0},
		{"bad token", "Bearer bad", http.StatusUnauthorized, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			_, r := gin.CreateTestContext(w)

			var got uint64
			r.GET("/me", RequireAuth(parser), func(c *gin.Context) {
				got, _ = UserID(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantUser, got)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"code":"auth_error"`)
			}
		})
	}
}

func TestUserID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := UserID(c)
	assert.False(t, ok)
}
