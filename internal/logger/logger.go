package logger

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

var (
	// L 全局 logger
	L zerolog.Logger
)

// Init 初始化日志器
func Init(production bool) error {
	// 设置时间格式
	zerolog.TimeFieldFormat = time.RFC3339

	if production {
		// 生产环境：JSON 格式输出
		L = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Caller().
			Logger()
	} else {
		// 开发环境：控制台友好格式
		output := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
			// 字段输出顺序：先请求维度，再业务维度
			FieldsOrder: []string{
				"request_id",
				"method",
				"path",
				"status",
				"duration(ms)",
				"response_size",
				"client_ip",
				"task_id",
				"kind",
				"remote_id",
				"post_id",
				"query",
				"request_body",
				"response_body",
				"errors",
			},
		}
		L = zerolog.New(output).
			With().
			Timestamp().
			Caller().
			Logger()
	}

	// 设置全局日志级别
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	return nil
}

// Sync zerolog 不需要显式 sync，保留接口兼容性
func Sync() {}

// SetLevel 设置日志级别
func SetLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// WithRequestID 添加 request_id
func WithRequestID(requestID string) zerolog.Logger {
	return L.With().Str("request_id", requestID).Logger()
}

// WithTaskID 添加生成任务的本地 task_id
func WithTaskID(taskID uint64) zerolog.Logger {
	return L.With().Str("task_id", strconv.FormatUint(taskID, 10)).Logger()
}

// WithPostID 添加定时发布的 post_id
func WithPostID(postID uint64) zerolog.Logger {
	return L.With().Str("post_id", strconv.FormatUint(postID, 10)).Logger()
}
