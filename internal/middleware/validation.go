package middleware

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// MaxPayloadSize 最大请求体大小（12MB，产品图上传上限 10MB）
	MaxPayloadSize = 12 * 1024 * 1024
)

var (
	// ConversationIDRegex 对话 ID（字母数字下划线连字符，1-64字符）
	ConversationIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

	// DomainRegex 品牌域名
	DomainRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?)+$`)
)

// PayloadSizeLimit 请求体大小限制
func PayloadSizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "request body too large",
				"code":  "validation_error",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

// ValidateConversationID 验证对话 ID
func ValidateConversationID(id string) bool {
	return ConversationIDRegex.MatchString(id)
}

// ValidateDomain 验证域名
func ValidateDomain(domain string) bool {
	return len(domain) <= 253 && DomainRegex.MatchString(domain)
}

// ValidateIDParam 验证路径参数为正整数
func ValidateIDParam(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(name), 10, 64)
		if err != nil || id == 0 {
			abortBadRequest(c, name+" must be a positive integer")
			return
		}
		c.Next()
	}
}

// ValidateConversationIDParam 验证路径参数 conversation_id
func ValidateConversationIDParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ValidateConversationID(c.Param("conversation_id")) {
			abortBadRequest(c, "conversation_id must be 1-64 letters, digits, underscores or hyphens")
			return
		}
		c.Next()
	}
}

// ValidateDomainParam 验证路径参数 domain
func ValidateDomainParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ValidateDomain(strings.ToLower(c.Param("domain"))) {
			abortBadRequest(c, "invalid domain")
			return
		}
		c.Next()
	}
}

// SanitizeString 去除首尾空白与控制字符
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)

	var builder strings.Builder
	for _, r := range s {
		if r >= 32 && r != 127 {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// CORSMiddleware 允许的来源为空或包含 "*" 时放开所有来源
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		h := c.Writer.Header()
		if allowAll {
			h.Set("Access-Control-Allow-Origin", "*")
		} else if _, ok := allowed[origin]; ok && origin != "" {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func abortBadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error": msg,
		"code":  "validation_error",
	})
}
