package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind 错误分类
type Kind string

const (
	KindTransport  Kind = "transport_error"
	KindRemoteAPI  Kind = "remote_api_error"
	KindTimeout    Kind = "timeout_error"
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation_error"
	KindAuth       Kind = "auth_error"
	KindConflict   Kind = "conflict"
	KindMalformed  Kind = "malformed_response"
)

// Error 统一错误类型
// Op 标识出错的操作（如 kie.submit、brandfetch.lookup），Code 为远端返回的业务码/HTTP 状态码
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is 按 Kind 匹配，便于 errors.Is(err, apperr.ErrNotFound)
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Message == ""
}

// 哨兵错误，仅用于 errors.Is 比较
var (
	ErrTransport  = &Error{Kind: KindTransport}
	ErrRemoteAPI  = &Error{Kind: KindRemoteAPI}
	ErrTimeout    = &Error{Kind: KindTimeout}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrValidation = &Error{Kind: KindValidation}
	ErrAuth       = &Error{Kind: KindAuth}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrMalformed  = &Error{Kind: KindMalformed}
)

// Transport 网络/HTTP 层失败
func Transport(op string, err error) error {
	return &Error{Kind: KindTransport, Op: op, Err: err}
}

// RemoteAPI 第三方服务返回非成功状态或错误载荷
func RemoteAPI(op string, code int, msg string) error {
	if msg == "" {
		msg = fmt.Sprintf("remote returned code %d", code)
	}
	return &Error{Kind: KindRemoteAPI, Op: op, Code: code, Message: msg}
}

// Timeout 轮询超出次数/时间预算
func Timeout(op string, attempts int, elapsed time.Duration) error {
	return &Error{
		Kind:    KindTimeout,
		Op:      op,
		Message: fmt.Sprintf("still pending after %d attempts (%s)", attempts, elapsed.Round(time.Millisecond)),
	}
}

// NotFound 实体不存在
func NotFound(entity string) error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Validation 参数校验失败
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Auth 认证失败（token 无效/过期、密码错误）
func Auth(msg string) error {
	return &Error{Kind: KindAuth, Message: msg}
}

// Conflict 唯一约束冲突
func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Malformed 远端返回了无法使用的响应（如 success 但没有结果 URL）
func Malformed(op, msg string) error {
	return &Error{Kind: KindMalformed, Op: op, Message: msg}
}

// KindOf 返回错误链上第一个 *Error 的 Kind，没有则返回空串
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Retryable 是否属于“暂时不可用，稍后重试”
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindTransport, KindTimeout:
		return true
	default:
		return false
	}
}

// HTTPStatus 把错误映射为 HTTP 状态码
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTransport:
		return http.StatusServiceUnavailable
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindRemoteAPI:
		if e.Code == http.StatusPaymentRequired {
			return http.StatusPaymentRequired
		}
		return http.StatusBadGateway
	case KindMalformed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage 面向调用方的错误描述
func PublicMessage(err error) string {
	switch KindOf(err) {
	case KindTransport:
		return "service temporarily unavailable, retry later: " + err.Error()
	case KindTimeout:
		return "generation is taking longer than expected, retry later: " + err.Error()
	case "":
		return "internal error"
	default:
		return err.Error()
	}
}
