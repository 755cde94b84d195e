package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// TokenParser 校验 bearer token 并返回用户 id
type TokenParser interface {
	ParseToken(token string) (uint64, error)
}

// RequireAuth 要求 Authorization: Bearer <jwt>，通过后把用户 id 写入上下文
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		uid, err := parser.ParseToken(strings.TrimSpace(token))
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		c.Set(userIDKey, uid)
		c.Next()
	}
}

// UserID 当前登录用户；未经过 RequireAuth 时返回 false
func UserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": msg,
		"code":  "auth_error",
	})
}
