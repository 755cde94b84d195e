package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/middleware"
	"github.com/azhengyongqin/brandpilot/internal/publisher"
	"github.com/azhengyongqin/brandpilot/internal/server/dto"
)

// respondError 按错误类型映射状态码；5xx 挂到 c.Errors 交给日志中间件记录
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	code := string(apperr.KindOf(err))
	if code == "" {
		code = "internal_error"
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, dto.ErrorResponse{
		Error:     apperr.PublicMessage(err),
		Code:      code,
		Retryable: apperr.Retryable(err),
	})
}

// respondPublishError X 凭据缺失单独返回 503 not_configured
func respondPublishError(c *gin.Context, err error) {
	if errors.Is(err, publisher.ErrNotConfigured) {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error(), Code: "not_configured"})
		return
	}
	respondError(c, err)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg, Code: string(apperr.KindValidation)})
}

// currentUser 取 RequireAuth 写入的用户 id；路由未挂鉴权时返回 401
func currentUser(c *gin.Context) (uint64, bool) {
	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required", Code: string(apperr.KindAuth)})
		return 0, false
	}
	return uid, true
}

func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
