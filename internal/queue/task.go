package asynqx

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TypeGenerationRefresh 后台刷新生成任务状态
	TypeGenerationRefresh = "generation:refresh"

	// QueueGeneration 生成任务刷新使用的队列
	QueueGeneration = "generation"
)

// RefreshPayload 刷新任务载荷
type RefreshPayload struct {
	TaskID   uint64        `json:"task_id"`
	Attempt  int           `json:"attempt"`
	Interval time.Duration `json:"interval"`
	// Deadline 超过后不再续期，留给客户端轮询
	Deadline time.Time `json:"deadline"`
}

func NewRefreshTask(p RefreshPayload) (*asynq.Task, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal refresh payload: %w", err)
	}
	return asynq.NewTask(TypeGenerationRefresh, b), nil
}

func ParseRefreshPayload(t *asynq.Task) (RefreshPayload, error) {
	var p RefreshPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("unmarshal refresh payload: %w", err)
	}
	if p.TaskID == 0 {
		return p, fmt.Errorf("refresh payload missing task_id")
	}
	return p, nil
}

type EnqueueParams struct {
	TaskKey  string
	Queue    string
	MaxRetry int
	Timeout  time.Duration
	Delay    time.Duration
}

func EnqueueOptions(p EnqueueParams) []asynq.Option {
	var opts []asynq.Option

	if p.Queue != "" {
		opts = append(opts, asynq.Queue(p.Queue))
	}
	if p.MaxRetry >= 0 {
		opts = append(opts, asynq.MaxRetry(p.MaxRetry))
	}
	if p.Timeout > 0 {
		opts = append(opts, asynq.Timeout(p.Timeout))
	}
	if p.Delay > 0 {
		opts = append(opts, asynq.ProcessIn(p.Delay))
	}

	// 同一个 key 只能入队一次，重复入队返回 asynq.ErrTaskIDConflict
	if p.TaskKey != "" {
		opts = append(opts, asynq.TaskID(p.TaskKey))
	}

	return opts
}

// RefreshTaskKey 每个任务每一轮刷新一个 key
func RefreshTaskKey(p RefreshPayload) string {
	return fmt.Sprintf("generation-refresh-%d-%d", p.TaskID, p.Attempt)
}
