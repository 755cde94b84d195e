package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestValidateIDParam(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		wantStatus int
	}{
		{"valid", "42", http.StatusOK},
		{"zero", "0", http.StatusBadRequest},
		{"negative", "-1", http.StatusBadRequest},
		{"not a number", "abc", http.StatusBadRequest},
		{"empty", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			c.Params = gin.Params{{Key: "brand_id", Value: tt.value}}

			ValidateIDParam("brand_id")(c)

			if tt.wantStatus == http.StatusOK {
				assert.False(t, c.IsAborted())
			} else {
				assert.True(t, c.IsAborted())
				assert.Equal(t, tt.wantStatus, w.Code)
			}
		})
	}
}

func TestValidateConversationIDParam(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		wantStatus int
	}{
		{"generated", "conv_0123456789abcdef", http.StatusOK},
		{"client supplied", "my-chat_1", http.StatusOK},
		{"too long", strings.Repeat("a", 65), http.StatusBadRequest},
		{"invalid chars", "conv 1;drop", http.StatusBadRequest},
		{"empty", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			c.Params = gin.Params{{Key: "conversation_id", Value: tt.value}}

			ValidateConversationIDParam()(c)

			if tt.wantStatus == http.StatusOK {
				assert.False(t, c.IsAborted())
			} else {
				assert.True(t, c.IsAborted())
				assert.Equal(t, tt.wantStatus, w.Code)
			}
		})
	}
}

func TestValidateDomain(t *testing.T) {
	assert.True(t, ValidateDomain("nike.com"))
	assert.True(t, ValidateDomain("shop.acme-co.co.uk"))
	assert.False(t, ValidateDomain("localhost"))
	assert.False(t, ValidateDomain("-bad.com"))
	assert.False(t, ValidateDomain("nike.com/path"))
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"allow all by default", nil, "https://app.example.com", "*"},
		{"listed origin", []string{"https://app.example.com/"}, "https://app.example.com", "https://app.example.com"},
		{"unlisted origin", []string{"https://app.example.com"}, "https://evil.example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			_, r := gin.CreateTestContext(w)
			r.Use(CORSMiddleware(tt.allowed))
			r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Origin", tt.origin)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}

	t.Run("preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.Use(CORSMiddleware(nil))
		r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

		r.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/test", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello world", SanitizeString("  hello\x00 world\n "))
}

func TestPayloadSizeLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 测试正常大小的请求
	t.Run("normal size", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, r := gin.CreateTestContext(w)
		r.Use(PayloadSizeLimit(1024))
		r.POST("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		body := bytes.NewBufferString("test")
		c.Request = httptest.NewRequest("POST", "/test", body)
		r.ServeHTTP(w, c.Request)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	// 测试超大请求
	t.Run("oversized", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, r := gin.CreateTestContext(w)
		r.Use(PayloadSizeLimit(10))
		r.POST("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		body := bytes.NewBufferString(strings.Repeat("a", 20))
		c.Request = httptest.NewRequest("POST", "/test", body)
		c.Request.ContentLength = 20
		r.ServeHTTP(w, c.Request)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("generate request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, r := gin.CreateTestContext(w)
		r.Use(RequestIDMiddleware())
		r.GET("/test", func(c *gin.Context) {
			requestID, exists := c.Get("request_id")
			assert.True(t, exists)
			assert.NotEmpty(t, requestID)
			c.String(http.StatusOK, "ok")
		})

		c.Request = httptest.NewRequest("GET", "/test", nil)
		r.ServeHTTP(w, c.Request)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("use existing request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, r := gin.CreateTestContext(w)
		r.Use(RequestIDMiddleware())
		r.GET("/test", func(c *gin.Context) {
			requestID, _ := c.Get("request_id")
			assert.Equal(t, "test-123", requestID)
			c.String(http.StatusOK, "ok")
		})

		c.Request = httptest.NewRequest("GET", "/test", nil)
		c.Request.Header.Set("X-Request-ID", "test-123")
		r.ServeHTTP(w, c.Request)

		assert.Equal(t, "test-123", w.Header().Get("X-Request-ID"))
	})
}
