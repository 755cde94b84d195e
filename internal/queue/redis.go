package asynqx

import (
	"fmt"

	"github.com/hibiken/asynq"
)

// NewRedisConnOpt 仅接受 URI（例如 redis://localhost:6379/6）。
// 统一用 asynq.ParseRedisURI，避免手工拆分 addr/db。
func NewRedisConnOpt(redisURI string) (asynq.RedisClientOpt, error) {
	connOpt, err := asynq.ParseRedisURI(redisURI)
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("parse redis uri: %w", err)
	}
	opt, ok := connOpt.(asynq.RedisClientOpt)
	if !ok {
		return asynq.RedisClientOpt{}, fmt.Errorf("unexpected redis conn opt type: %T", connOpt)
	}
	return opt, nil
}
