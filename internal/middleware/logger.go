package middleware

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/azhengyongqin/brandpilot/internal/logger"
)

const (
	// MaxBodyLogSize 最大记录的请求/响应体大小（字节）
	MaxBodyLogSize = 4096
)

// responseWriter 包装 gin.ResponseWriter，统计响应大小并缓存前 4KB 响应体，
// 用于在 5xx 时把响应体写进日志
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
	size int
}

func (w *responseWriter) Write(b []byte) (int, error) {
	size, err := w.ResponseWriter.Write(b)
	w.size += size
	if w.body.Len()+len(b) <= MaxBodyLogSize {
		w.body.Write(b)
	}
	return size, err
}

// shouldLogBody 认证接口含密码、multipart 是图片，都不记录请求体
func shouldLogBody(c *gin.Context) bool {
	switch c.Request.Method {
	case "POST", "PUT", "PATCH":
	default:
		return false
	}
	if strings.Contains(c.Request.URL.Path, "/auth/") {
		return false
	}
	return !strings.HasPrefix(c.ContentType(), "multipart/")
}

// LoggingMiddleware 记录请求日志
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := GetRequestID(c)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		var requestBody string
		if c.Request.Body != nil && shouldLogBody(c) {
			bodyBytes, err := io.ReadAll(c.Request.Body)
			if err == nil {
				// 恢复请求体，以便后续处理器可以读取
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

				if len(bodyBytes) > MaxBodyLogSize {
					requestBody = string(bodyBytes[:MaxBodyLogSize]) + "... (truncated)"
				} else {
					requestBody = string(bodyBytes)
				}
			}
		}

		blw := &responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = blw

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		var logEvent *zerolog.Event
		switch {
		case status >= 500:
			logEvent = logger.L.Error()
		case status >= 400:
			logEvent = logger.L.Warn()
		default:
			logEvent = logger.L.Info()
		}

		if requestID != "" {
			logEvent = logEvent.Str("request_id", requestID)
		}
		if uid, ok := UserID(c); ok {
			logEvent = logEvent.Uint64("user_id", uid)
		}
		logEvent = logEvent.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("duration(ms)", duration).
			Int("response_size", blw.size).
			Str("client_ip", c.ClientIP())

		if c.Request.URL.RawQuery != "" {
			logEvent = logEvent.Str("query", c.Request.URL.RawQuery)
		}
		if requestBody != "" {
			logEvent = logEvent.Str("request_body", requestBody)
		}
		if len(c.Errors) > 0 {
			logEvent = logEvent.Str("errors", c.Errors.String())
		}
		if status >= 500 && blw.body.Len() > 0 {
			logEvent = logEvent.Str("response_body", blw.body.String())
		}

		logEvent.Msg("HTTP 请求")
	}
}

// GetRequestID 从上下文中获取请求 ID
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}
